package repository

import (
	"fmt"
	"time"
)

type scanner interface {
	Scan(dest ...any) error
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
}

// timestamp scans DATETIME columns. sqlite may hand back text while
// postgres returns time.Time.
type timestamp struct {
	t *time.Time
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*ts.t = time.Time{}
		return nil
	case time.Time:
		*ts.t = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case int64:
		*ts.t = time.Unix(v, 0).UTC()
		return nil
	}
	return fmt.Errorf("repository: cannot scan %T into timestamp", src)
}

func (ts timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*ts.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("repository: unrecognized timestamp %q", s)
}
