package catalog

import "context"

// Store persists catalog records. Lookups of missing rows return
// ErrNotFound; inserts violating a uniqueness constraint return ErrConflict.
// Lists are ordered newest first unless stated otherwise.
type Store interface {
	ListFilms(ctx context.Context) ([]Film, error)
	GetFilm(ctx context.Context, id int64) (Film, error)
	CreateFilm(ctx context.Context, in FilmInput) (Film, error)

	ListSeries(ctx context.Context) ([]Series, error)
	GetSeries(ctx context.Context, id int64) (Series, error)
	CreateSeries(ctx context.Context, in SeriesInput) (Series, error)

	ListItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id int64) (Item, error)
	CreateItem(ctx context.Context, in ItemInput) (Item, error)
	UpdateItem(ctx context.Context, id int64, in ItemInput) (Item, error)
	// DeleteItem succeeds whether or not the item existed.
	DeleteItem(ctx context.Context, id int64) error

	// ListRatings returns ratings ordered by movie then user.
	ListRatings(ctx context.Context, f RatingFilter) ([]Rating, error)
	UpsertRating(ctx context.Context, r Rating) (Rating, error)

	ListLibrary(ctx context.Context, userID int64) ([]LibraryEntry, error)
	AddLibraryEntry(ctx context.Context, in LibraryInput) (LibraryEntry, error)

	// ListFriends returns friendships in insertion order.
	ListFriends(ctx context.Context, userID int64) ([]Friend, error)
	AddFriend(ctx context.Context, in FriendInput) (Friend, error)

	UserByUsername(ctx context.Context, username string) (User, error)
	CreateUser(ctx context.Context, username, passwordHash string) (User, error)
}
