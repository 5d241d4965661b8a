package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrNotStructPointer is returned when the target is not a pointer to a struct.
var ErrNotStructPointer = errors.New("config: target must be a non-nil pointer to a struct")

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> reflect.Value (struct copy)
	loadMu     sync.Mutex
)

// Load parses environment variables into cfg. The first call for a given
// type parses the environment and caches the result; later calls for the
// same type copy the cached value. A .env file in the working directory is
// loaded once, without overriding variables already set.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNotStructPointer
	}
	t := reflect.TypeOf(*cfg)
	if t.Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	if cached, ok := cache.Load(t); ok {
		*cfg = cached.(T)
		return nil
	}

	loadMu.Lock()
	defer loadMu.Unlock()

	if cached, ok := cache.Load(t); ok {
		*cfg = cached.(T)
		return nil
	}

	loadDotenv()

	var fresh T
	if err := env.Parse(&fresh); err != nil {
		return fmt.Errorf("config: parse %s: %w", t.Name(), err)
	}
	cache.Store(t, fresh)
	*cfg = fresh
	return nil
}

// MustLoad is like Load but panics on error. Meant for startup code.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Parse parses environment variables into cfg without touching the cache.
func Parse[T any](cfg *T) error {
	if cfg == nil {
		return ErrNotStructPointer
	}
	loadDotenv()
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse: %w", err)
	}
	return nil
}

// LoadYAML decodes the YAML file at path into v. Unknown keys are an error.
func LoadYAML(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

// Reset clears the per-type cache. Tests use it to reload after changing
// the environment.
func Reset() {
	cache.Range(func(key, _ any) bool {
		cache.Delete(key)
		return true
	})
}

func loadDotenv() {
	dotenvOnce.Do(func() {
		// A missing .env file is the normal case outside development.
		_ = godotenv.Load()
	})
}
