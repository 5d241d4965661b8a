package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/streaminghub/catalog/core/logger"
)

const (
	MinScore = 1
	MaxScore = 10

	maxTitleLength    = 255
	maxUsernameLength = 64
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

// Service validates input and applies the catalog rules on top of a Store.
type Service struct {
	store      Store
	log        *slog.Logger
	newToken   func() string
	bcryptCost int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithTokenGenerator replaces the login token generator (default: UUID v4).
func WithTokenGenerator(fn func() string) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.newToken = fn
		}
	}
}

// WithBcryptCost sets the password hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

// NewService creates a Service backed by store.
func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store:      store,
		log:        slog.Default(),
		newToken:   uuid.NewString,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Films(ctx context.Context) ([]Film, error) {
	return s.store.ListFilms(ctx)
}

func (s *Service) Film(ctx context.Context, id int64) (Film, error) {
	if id <= 0 {
		return Film{}, ErrNotFound
	}
	return s.store.GetFilm(ctx, id)
}

// CreateFilm requires a title. The URL is optional but must be absolute
// http(s) when present.
func (s *Service) CreateFilm(ctx context.Context, in FilmInput) (Film, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)
	if err := validateTitle(in.Title); err != nil {
		return Film{}, err
	}
	if in.URL != "" {
		u, err := url.Parse(in.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return Film{}, invalid("url", "url must be an absolute http(s) URL")
		}
	}
	return s.store.CreateFilm(ctx, in)
}

func (s *Service) AllSeries(ctx context.Context) ([]Series, error) {
	return s.store.ListSeries(ctx)
}

func (s *Service) Series(ctx context.Context, id int64) (Series, error) {
	if id <= 0 {
		return Series{}, ErrNotFound
	}
	return s.store.GetSeries(ctx, id)
}

func (s *Service) CreateSeries(ctx context.Context, in SeriesInput) (Series, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateTitle(in.Title); err != nil {
		return Series{}, err
	}
	return s.store.CreateSeries(ctx, in)
}

func (s *Service) Items(ctx context.Context) ([]Item, error) {
	return s.store.ListItems(ctx)
}

func (s *Service) Item(ctx context.Context, id int64) (Item, error) {
	if id <= 0 {
		return Item{}, ErrNotFound
	}
	return s.store.GetItem(ctx, id)
}

func (s *Service) CreateItem(ctx context.Context, in ItemInput) (Item, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateTitle(in.Title); err != nil {
		return Item{}, err
	}
	return s.store.CreateItem(ctx, in)
}

// UpdateItem replaces both writable fields of an existing item.
func (s *Service) UpdateItem(ctx context.Context, id int64, in ItemInput) (Item, error) {
	if id <= 0 {
		return Item{}, ErrNotFound
	}
	in.Title = strings.TrimSpace(in.Title)
	if err := validateTitle(in.Title); err != nil {
		return Item{}, err
	}
	return s.store.UpdateItem(ctx, id, in)
}

func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	return s.store.DeleteItem(ctx, id)
}

// Ratings lists ratings matching f.
func (s *Service) Ratings(ctx context.Context, f RatingFilter) ([]Rating, error) {
	return s.store.ListRatings(ctx, f)
}

// Rating returns the rating a user gave a movie, or nil when there is none.
func (s *Service) Rating(ctx context.Context, movieID, userID int64) (*Rating, error) {
	rows, err := s.store.ListRatings(ctx, RatingFilter{MovieID: movieID, UserID: userID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Rate stores a score for (movie, user), replacing any previous score.
func (s *Service) Rate(ctx context.Context, r Rating) (Rating, error) {
	switch {
	case r.MovieID <= 0:
		return Rating{}, invalid("movie_id", "movie_id, user_id, score required")
	case r.UserID <= 0:
		return Rating{}, invalid("user_id", "movie_id, user_id, score required")
	case r.Score == 0:
		return Rating{}, invalid("score", "movie_id, user_id, score required")
	case r.Score < MinScore || r.Score > MaxScore:
		return Rating{}, invalid("score", fmt.Sprintf("score must be between %d and %d", MinScore, MaxScore))
	}
	return s.store.UpsertRating(ctx, r)
}

// Library lists a user's library; a non-positive id means DefaultUserID.
func (s *Service) Library(ctx context.Context, userID int64) ([]LibraryEntry, error) {
	return s.store.ListLibrary(ctx, orDefaultUser(userID))
}

func (s *Service) AddToLibrary(ctx context.Context, in LibraryInput) (LibraryEntry, error) {
	in.UserID = orDefaultUser(in.UserID)
	if !in.ItemType.Valid() {
		return LibraryEntry{}, invalid("item_type", "item_type must be film or series")
	}
	if in.ItemID <= 0 {
		return LibraryEntry{}, invalid("item_id", "item_id required")
	}
	return s.store.AddLibraryEntry(ctx, in)
}

// Friends lists a user's friendships; a non-positive id means DefaultUserID.
func (s *Service) Friends(ctx context.Context, userID int64) ([]Friend, error) {
	return s.store.ListFriends(ctx, orDefaultUser(userID))
}

func (s *Service) AddFriend(ctx context.Context, in FriendInput) (Friend, error) {
	in.UserID = orDefaultUser(in.UserID)
	if in.FriendUserID <= 0 {
		return Friend{}, invalid("friend_user_id", "friend_user_id required")
	}
	if in.FriendUserID == in.UserID {
		return Friend{}, invalid("friend_user_id", "cannot befriend yourself")
	}
	return s.store.AddFriend(ctx, in)
}

// Login authenticates a user. Unknown usernames are registered on the fly
// with the given password. The token is opaque and not verified anywhere.
func (s *Service) Login(ctx context.Context, c Credentials) (Session, error) {
	c.Username = strings.TrimSpace(c.Username)
	switch {
	case c.Username == "" || c.Password == "":
		return Session{}, invalid("username", "username/password required")
	case utf8.RuneCountInString(c.Username) > maxUsernameLength:
		return Session{}, invalid("username", fmt.Sprintf("username must be at most %d characters", maxUsernameLength))
	case len(c.Password) > maxPasswordBytes:
		return Session{}, invalid("password", fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}

	user, err := s.store.UserByUsername(ctx, c.Username)
	switch {
	case errors.Is(err, ErrNotFound):
		user, err = s.register(ctx, c)
		if err != nil {
			return Session{}, err
		}
	case err != nil:
		return Session{}, err
	default:
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(c.Password)); err != nil {
			s.log.WarnContext(ctx, "login rejected",
				logger.Component("catalog"),
				logger.Event("login"),
				logger.Result("invalid_credentials"),
			)
			return Session{}, ErrInvalidCredentials
		}
	}

	return Session{User: user, Token: s.newToken()}, nil
}

func (s *Service) register(ctx context.Context, c Credentials) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), s.bcryptCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.store.CreateUser(ctx, c.Username, string(hash))
	if err != nil {
		return User{}, err
	}
	s.log.InfoContext(ctx, "user registered",
		logger.Component("catalog"),
		logger.Event("register"),
		logger.Key("user_id", user.ID),
	)
	return user, nil
}

func validateTitle(title string) error {
	if title == "" {
		return invalid("title", "title required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return invalid("title", fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}
	return nil
}

func orDefaultUser(id int64) int64 {
	if id <= 0 {
		return DefaultUserID
	}
	return id
}
