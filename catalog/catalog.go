package catalog

import "time"

// DefaultUserID is used by library and friends lookups that do not name a user.
const DefaultUserID int64 = 1

// ItemType names what a library entry points at.
type ItemType string

const (
	ItemTypeFilm   ItemType = "film"
	ItemTypeSeries ItemType = "series"
)

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	return t == ItemTypeFilm || t == ItemTypeSeries
}

// FriendStatusAccepted is the status given to new friendships.
const FriendStatusAccepted = "accepted"

type Film struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}

type Series struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Item struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// User is an account. The password hash never leaves the store layer in JSON.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Rating is keyed by (MovieID, UserID); saving again replaces the score.
type Rating struct {
	MovieID int64 `json:"movie_id"`
	UserID  int64 `json:"user_id"`
	Score   int   `json:"score"`
}

type LibraryEntry struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	ItemType ItemType  `json:"item_type"`
	ItemID   int64     `json:"item_id"`
	AddedAt  time.Time `json:"added_at"`
}

// Friend is a friendship row joined with the friend's username, which is
// empty when the friend account no longer exists.
type Friend struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	FriendUserID   int64  `json:"friend_user_id"`
	Status         string `json:"status"`
	FriendUsername string `json:"friend_username"`
}

// FilmInput carries the writable film fields.
type FilmInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// SeriesInput carries the writable series fields.
type SeriesInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ItemInput carries the writable item fields, for both create and update.
type ItemInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// LibraryInput adds a film or series to a user's library.
type LibraryInput struct {
	UserID   int64    `json:"user_id"`
	ItemType ItemType `json:"item_type"`
	ItemID   int64    `json:"item_id"`
}

// FriendInput creates a friendship.
type FriendInput struct {
	UserID       int64 `json:"user_id"`
	FriendUserID int64 `json:"friend_user_id"`
}

// RatingFilter narrows a rating listing. Zero fields match everything.
type RatingFilter struct {
	MovieID int64
	UserID  int64
}

// Credentials are the login form fields.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is returned by a successful login.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
