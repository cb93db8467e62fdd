package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/kovalyov-valentin/atomfeed/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"title", "url", "content", "published_at", "updated_at", "author", "email", "tags"}

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func TestEntryPostgresStorage_Items(t *testing.T) {
	db, mock := newMock(t)

	now := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	published := time.Date(2020, 2, 1, 10, 0, 0, 0, time.UTC)
	updated := time.Date(2020, 2, 2, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(columns).
		AddRow("Second", "https://ex.org/2", "<p>2</p>", published, updated, "B", "b@ex.org", "{go,atom}").
		AddRow("First", "https://ex.org/1", "<p>1</p>", published.AddDate(0, 0, -7), nil, nil, nil, "{}")

	mock.ExpectQuery(regexp.QuoteMeta(postsQuery)).
		WithArgs(now, sqlmock.AnyArg()).
		WillReturnRows(rows)

	storage := NewEntryPostgresStorage(db, clock.Fixed(now), 10)
	items, err := storage.Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	second := items[0]
	assert.Equal(t, "Second", second.Entry.Title())
	assert.Equal(t, "https://ex.org/2", second.Entry.URL())
	assert.Equal(t, "<p>2</p>", second.Entry.Content())
	assert.True(t, published.Equal(second.Entry.Date()))
	assert.Equal(t, []string{"go", "atom"}, second.Categories)
	assert.Equal(t, "postgres:posts", second.SourceName)

	gotUpdated, ok := second.Entry.DateUpdated()
	assert.True(t, ok)
	assert.True(t, updated.Equal(gotUpdated))
	author, ok := second.Entry.Author()
	assert.True(t, ok)
	assert.Equal(t, "B", author)

	first := items[1]
	_, ok = first.Entry.DateUpdated()
	assert.False(t, ok)
	_, ok = first.Entry.Author()
	assert.False(t, ok)
	_, ok = first.Entry.Email()
	assert.False(t, ok)
	assert.Empty(t, first.Categories)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryPostgresStorage_QueryError(t *testing.T) {
	db, mock := newMock(t)

	boom := errors.New("relation \"posts\" does not exist")
	mock.ExpectQuery(regexp.QuoteMeta(postsQuery)).WillReturnError(boom)

	_, err := NewEntryPostgresStorage(db, clock.Real(), 0).Items(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
