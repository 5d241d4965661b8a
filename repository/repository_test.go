package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streaminghub/catalog/catalog"
	"github.com/streaminghub/catalog/integration/database/sqlite"
	"github.com/streaminghub/catalog/repository"
)

func newRepository(t *testing.T) *repository.Repository {
	t.Helper()

	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.Config{Path: sqlite.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	fsys, err := repository.Migrations(repository.DialectSQLite)
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(ctx, db, sqlite.Config{}, fsys, nil))

	repo, err := repository.New(db, repository.DialectSQLite)
	require.NoError(t, err)
	return repo
}

func TestNewUnknownDialect(t *testing.T) {
	t.Parallel()

	_, err := repository.New(nil, "mysql")
	assert.ErrorIs(t, err, repository.ErrUnknownDialect)
}

func TestFilms(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	ctx := context.Background()

	empty, err := repo.ListFilms(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	first, err := repo.CreateFilm(ctx, catalog.FilmInput{Title: "Heat", URL: "https://example.com/heat"})
	require.NoError(t, err)
	assert.Positive(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, "", first.Description)

	second, err := repo.CreateFilm(ctx, catalog.FilmInput{Title: "Ronin"})
	require.NoError(t, err)

	films, err := repo.ListFilms(ctx)
	require.NoError(t, err)
	require.Len(t, films, 2)
	assert.Equal(t, second.ID, films[0].ID, "newest first")
	assert.Equal(t, first.ID, films[1].ID)

	got, err := repo.GetFilm(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Heat", got.Title)
	assert.Equal(t, "https://example.com/heat", got.URL)

	_, err = repo.GetFilm(ctx, 999)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestSeries(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	ctx := context.Background()

	created, err := repo.CreateSeries(ctx, catalog.SeriesInput{Title: "Dark", Description: "time travel"})
	require.NoError(t, err)

	got, err := repo.GetSeries(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "time travel", got.Description)

	all, err := repo.ListSeries(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = repo.GetSeries(ctx, created.ID+1)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestItemsCRUD(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	ctx := context.Background()

	item, err := repo.CreateItem(ctx, catalog.ItemInput{Title: "draft"})
	require.NoError(t, err)

	updated, err := repo.UpdateItem(ctx, item.ID, catalog.ItemInput{Title: "final", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, item.ID, updated.ID)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, "body", updated.Content)
	assert.True(t, item.CreatedAt.Equal(updated.CreatedAt))

	_, err = repo.UpdateItem(ctx, item.ID+100, catalog.ItemInput{Title: "x"})
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	require.NoError(t, repo.DeleteItem(ctx, item.ID))
	require.NoError(t, repo.DeleteItem(ctx, item.ID), "deleting twice succeeds")

	_, err = repo.GetItem(ctx, item.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRatingsUpsert(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	ctx := context.Background()

	_, err := repo.UpsertRating(ctx, catalog.Rating{MovieID: 1, UserID: 1, Score: 3})
	require.NoError(t, err)
	_, err = repo.UpsertRating(ctx, catalog.Rating{MovieID: 1, UserID: 2, Score: 8})
	require.NoError(t, err)
	replaced, err := repo.UpsertRating(ctx, catalog.Rating{MovieID: 1, UserID: 1, Score: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, replaced.Score)

	tests := []struct {
		name   string
		filter catalog.RatingFilter
		want   []catalog.Rating
	}{
		{
			name:   "all",
			filter: catalog.RatingFilter{},
			want:   []catalog.Rating{{MovieID: 1, UserID: 1, Score: 10}, {MovieID: 1, UserID: 2, Score: 8}},
		},
		{
			name:   "by_user",
			filter: catalog.RatingFilter{UserID: 2},
			want:   []catalog.Rating{{MovieID: 1, UserID: 2, Score: 8}},
		},
		{
			name:   "by_movie_and_user",
			filter: catalog.RatingFilter{MovieID: 1, UserID: 1},
			want:   []catalog.Rating{{MovieID: 1, UserID: 1, Score: 10}},
		},
		{
			name:   "no_match",
			filter: catalog.RatingFilter{MovieID: 2},
			want:   []catalog.Rating{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListRatings(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLibrary(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	ctx := context.Background()

	_, err := repo.AddLibraryEntry(ctx, catalog.LibraryInput{UserID: 1, ItemType: catalog.ItemTypeFilm, ItemID: 5})
	require.NoError(t, err)
	latest, err := repo.AddLibraryEntry(ctx, catalog.LibraryInput{UserID: 1, ItemType: catalog.ItemTypeSeries, ItemID: 6})
	require.NoError(t, err)
	_, err = repo.AddLibraryEntry(ctx, catalog.LibraryInput{UserID: 2, ItemType: catalog.ItemTypeFilm, ItemID: 5})
	require.NoError(t, err)

	entries, err := repo.ListLibrary(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, latest.ID, entries[0].ID)
	assert.Equal(t, catalog.ItemTypeSeries, entries[0].ItemType)

	_, err = repo.AddLibraryEntry(ctx, catalog.LibraryInput{UserID: 1, ItemType: "book", ItemID: 1})
	assert.Error(t, err, "check constraint rejects unknown item types")
}

func TestFriendsAndUsers(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	ctx := context.Background()

	ala, err := repo.CreateUser(ctx, "ala", "hash-a")
	require.NoError(t, err)
	ola, err := repo.CreateUser(ctx, "ola", "hash-o")
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, "ala", "other")
	assert.ErrorIs(t, err, catalog.ErrConflict)

	got, err := repo.UserByUsername(ctx, "ala")
	require.NoError(t, err)
	assert.Equal(t, ala.ID, got.ID)
	assert.Equal(t, "hash-a", got.PasswordHash)

	_, err = repo.UserByUsername(ctx, "ela")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	fr, err := repo.AddFriend(ctx, catalog.FriendInput{UserID: ala.ID, FriendUserID: ola.ID})
	require.NoError(t, err)
	assert.Equal(t, "ola", fr.FriendUsername)
	assert.Equal(t, catalog.FriendStatusAccepted, fr.Status)

	_, err = repo.AddFriend(ctx, catalog.FriendInput{UserID: ala.ID, FriendUserID: ola.ID})
	assert.ErrorIs(t, err, catalog.ErrConflict)

	_, err = repo.AddFriend(ctx, catalog.FriendInput{UserID: ala.ID, FriendUserID: 999})
	require.NoError(t, err)

	friends, err := repo.ListFriends(ctx, ala.ID)
	require.NoError(t, err)
	require.Len(t, friends, 2)
	assert.Equal(t, "ola", friends[0].FriendUsername)
	assert.Equal(t, "", friends[1].FriendUsername, "missing account joins to empty username")

	none, err := repo.ListFriends(ctx, ola.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}
