package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/streaminghub/catalog/catalog"
	"github.com/streaminghub/catalog/integration/database/pg"
	"github.com/streaminghub/catalog/integration/database/sqlite"
)

// ErrUnknownDialect is returned for unsupported database drivers.
var ErrUnknownDialect = errors.New("repository: unknown dialect")

var _ catalog.Store = (*Repository)(nil)

// Repository implements catalog.Store on database/sql. The same queries
// run on sqlite and postgres; only placeholders differ.
type Repository struct {
	db       *sql.DB
	dialect  Dialect
	isUnique func(error) bool
}

// New creates a Repository using db, which must already be migrated.
func New(db *sql.DB, dialect Dialect) (*Repository, error) {
	r := &Repository{db: db, dialect: dialect}
	switch dialect {
	case DialectSQLite:
		r.isUnique = sqlite.IsUniqueViolation
	case DialectPostgres:
		r.isUnique = pg.IsDuplicateKeyError
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}
	return r, nil
}

func (r *Repository) q(query string) string {
	if r.dialect == DialectPostgres {
		return rebind(query)
	}
	return query
}

// classify maps driver errors onto catalog sentinels.
func (r *Repository) classify(op string, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return catalog.ErrNotFound
	case r.isUnique(err):
		return fmt.Errorf("%s: %w", op, catalog.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func list[T any](ctx context.Context, r *Repository, op, query string, scan func(scanner) (T, error), args ...any) ([]T, error) {
	rows, err := r.db.QueryContext(ctx, r.q(query), args...)
	if err != nil {
		return nil, r.classify(op, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, r.classify(op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, r.classify(op, err)
	}
	return out, nil
}

func one[T any](ctx context.Context, r *Repository, op, query string, scan func(scanner) (T, error), args ...any) (T, error) {
	v, err := scan(r.db.QueryRowContext(ctx, r.q(query), args...))
	if err != nil {
		var zero T
		return zero, r.classify(op, err)
	}
	return v, nil
}

const filmColumns = "id, title, description, url, created_at"

func scanFilm(s scanner) (catalog.Film, error) {
	var f catalog.Film
	err := s.Scan(&f.ID, &f.Title, &f.Description, &f.URL, timestamp{&f.CreatedAt})
	return f, err
}

func (r *Repository) ListFilms(ctx context.Context) ([]catalog.Film, error) {
	return list(ctx, r, "list films",
		"SELECT "+filmColumns+" FROM films ORDER BY created_at DESC, id DESC", scanFilm)
}

func (r *Repository) GetFilm(ctx context.Context, id int64) (catalog.Film, error) {
	return one(ctx, r, "get film",
		"SELECT "+filmColumns+" FROM films WHERE id = ?", scanFilm, id)
}

func (r *Repository) CreateFilm(ctx context.Context, in catalog.FilmInput) (catalog.Film, error) {
	return one(ctx, r, "create film",
		"INSERT INTO films (title, description, url) VALUES (?, ?, ?) RETURNING "+filmColumns,
		scanFilm, in.Title, in.Description, in.URL)
}

const seriesColumns = "id, title, description, created_at"

func scanSeries(s scanner) (catalog.Series, error) {
	var v catalog.Series
	err := s.Scan(&v.ID, &v.Title, &v.Description, timestamp{&v.CreatedAt})
	return v, err
}

func (r *Repository) ListSeries(ctx context.Context) ([]catalog.Series, error) {
	return list(ctx, r, "list series",
		"SELECT "+seriesColumns+" FROM series ORDER BY created_at DESC, id DESC", scanSeries)
}

func (r *Repository) GetSeries(ctx context.Context, id int64) (catalog.Series, error) {
	return one(ctx, r, "get series",
		"SELECT "+seriesColumns+" FROM series WHERE id = ?", scanSeries, id)
}

func (r *Repository) CreateSeries(ctx context.Context, in catalog.SeriesInput) (catalog.Series, error) {
	return one(ctx, r, "create series",
		"INSERT INTO series (title, description) VALUES (?, ?) RETURNING "+seriesColumns,
		scanSeries, in.Title, in.Description)
}

const itemColumns = "id, title, content, created_at"

func scanItem(s scanner) (catalog.Item, error) {
	var it catalog.Item
	err := s.Scan(&it.ID, &it.Title, &it.Content, timestamp{&it.CreatedAt})
	return it, err
}

func (r *Repository) ListItems(ctx context.Context) ([]catalog.Item, error) {
	return list(ctx, r, "list items",
		"SELECT "+itemColumns+" FROM items ORDER BY created_at DESC, id DESC", scanItem)
}

func (r *Repository) GetItem(ctx context.Context, id int64) (catalog.Item, error) {
	return one(ctx, r, "get item",
		"SELECT "+itemColumns+" FROM items WHERE id = ?", scanItem, id)
}

func (r *Repository) CreateItem(ctx context.Context, in catalog.ItemInput) (catalog.Item, error) {
	return one(ctx, r, "create item",
		"INSERT INTO items (title, content) VALUES (?, ?) RETURNING "+itemColumns,
		scanItem, in.Title, in.Content)
}

func (r *Repository) UpdateItem(ctx context.Context, id int64, in catalog.ItemInput) (catalog.Item, error) {
	return one(ctx, r, "update item",
		"UPDATE items SET title = ?, content = ? WHERE id = ? RETURNING "+itemColumns,
		scanItem, in.Title, in.Content, id)
}

func (r *Repository) DeleteItem(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.q("DELETE FROM items WHERE id = ?"), id); err != nil {
		return r.classify("delete item", err)
	}
	return nil
}

func scanRating(s scanner) (catalog.Rating, error) {
	var v catalog.Rating
	err := s.Scan(&v.MovieID, &v.UserID, &v.Score)
	return v, err
}

func (r *Repository) ListRatings(ctx context.Context, f catalog.RatingFilter) ([]catalog.Rating, error) {
	var (
		conds []string
		args  []any
	)
	if f.MovieID != 0 {
		conds = append(conds, "movie_id = ?")
		args = append(args, f.MovieID)
	}
	if f.UserID != 0 {
		conds = append(conds, "user_id = ?")
		args = append(args, f.UserID)
	}

	query := "SELECT movie_id, user_id, score FROM ratings"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY movie_id, user_id"

	return list(ctx, r, "list ratings", query, scanRating, args...)
}

func (r *Repository) UpsertRating(ctx context.Context, v catalog.Rating) (catalog.Rating, error) {
	return one(ctx, r, "upsert rating",
		`INSERT INTO ratings (movie_id, user_id, score) VALUES (?, ?, ?)
		ON CONFLICT (movie_id, user_id) DO UPDATE SET score = excluded.score
		RETURNING movie_id, user_id, score`,
		scanRating, v.MovieID, v.UserID, v.Score)
}

const libraryColumns = "id, user_id, item_type, item_id, added_at"

func scanLibraryEntry(s scanner) (catalog.LibraryEntry, error) {
	var e catalog.LibraryEntry
	err := s.Scan(&e.ID, &e.UserID, &e.ItemType, &e.ItemID, timestamp{&e.AddedAt})
	return e, err
}

func (r *Repository) ListLibrary(ctx context.Context, userID int64) ([]catalog.LibraryEntry, error) {
	return list(ctx, r, "list library",
		"SELECT "+libraryColumns+" FROM library WHERE user_id = ? ORDER BY added_at DESC, id DESC",
		scanLibraryEntry, userID)
}

func (r *Repository) AddLibraryEntry(ctx context.Context, in catalog.LibraryInput) (catalog.LibraryEntry, error) {
	return one(ctx, r, "add library entry",
		"INSERT INTO library (user_id, item_type, item_id) VALUES (?, ?, ?) RETURNING "+libraryColumns,
		scanLibraryEntry, in.UserID, string(in.ItemType), in.ItemID)
}

const friendSelect = `SELECT f.id, f.user_id, f.friend_user_id, f.status, COALESCE(u.username, '')
	FROM friends f LEFT JOIN users u ON u.id = f.friend_user_id`

func scanFriend(s scanner) (catalog.Friend, error) {
	var fr catalog.Friend
	err := s.Scan(&fr.ID, &fr.UserID, &fr.FriendUserID, &fr.Status, &fr.FriendUsername)
	return fr, err
}

func (r *Repository) ListFriends(ctx context.Context, userID int64) ([]catalog.Friend, error) {
	return list(ctx, r, "list friends",
		friendSelect+" WHERE f.user_id = ? ORDER BY f.id", scanFriend, userID)
}

func (r *Repository) AddFriend(ctx context.Context, in catalog.FriendInput) (catalog.Friend, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		r.q("INSERT INTO friends (user_id, friend_user_id, status) VALUES (?, ?, ?) RETURNING id"),
		in.UserID, in.FriendUserID, catalog.FriendStatusAccepted,
	).Scan(&id)
	if err != nil {
		return catalog.Friend{}, r.classify("add friend", err)
	}
	return one(ctx, r, "get friend", friendSelect+" WHERE f.id = ?", scanFriend, id)
}

const userColumns = "id, username, password_hash, created_at"

func scanUser(s scanner) (catalog.User, error) {
	var u catalog.User
	err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, timestamp{&u.CreatedAt})
	return u, err
}

func (r *Repository) UserByUsername(ctx context.Context, username string) (catalog.User, error) {
	return one(ctx, r, "get user",
		"SELECT "+userColumns+" FROM users WHERE username = ?", scanUser, username)
}

func (r *Repository) CreateUser(ctx context.Context, username, passwordHash string) (catalog.User, error) {
	return one(ctx, r, "create user",
		"INSERT INTO users (username, password_hash) VALUES (?, ?) RETURNING "+userColumns,
		scanUser, username, passwordHash)
}
