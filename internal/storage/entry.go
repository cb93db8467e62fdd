package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kovalyov-valentin/atomfeed/internal/clock"
	"github.com/kovalyov-valentin/atomfeed/internal/model"
	"github.com/lib/pq"
)

// Опубликованные посты, новые первыми.
// LIMIT NULL в postgres означает "без ограничения"
const postsQuery = `SELECT title, url, content, published_at, updated_at, author, email, tags
FROM posts
WHERE published_at <= $1
ORDER BY published_at DESC
LIMIT $2`

// Записи ленты из таблицы posts блога
type EntryPostgresStorage struct {
	db *sqlx.DB
	// Посты с датой публикации в будущем еще не попадают в ленту
	clock clock.Clock
	// 0 - без ограничения
	limit int
}

func NewEntryPostgresStorage(db *sqlx.DB, c clock.Clock, limit int) *EntryPostgresStorage {
	return &EntryPostgresStorage{
		db:    db,
		clock: c,
		limit: limit,
	}
}

func (s *EntryPostgresStorage) Name() string {
	return "postgres:posts"
}

func (s *EntryPostgresStorage) Items(ctx context.Context) ([]model.Item, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	limit := sql.NullInt64{Int64: int64(s.limit), Valid: s.limit > 0}

	var rows []dbEntry
	if err := conn.SelectContext(ctx, &rows, postsQuery, s.clock.Now(), limit); err != nil {
		return nil, err
	}

	items := make([]model.Item, 0, len(rows))
	for _, row := range rows {
		entry, err := row.toEntry()
		if err != nil {
			return nil, fmt.Errorf("post %s: %w", row.URL, err)
		}

		items = append(items, model.Item{
			Entry:      entry,
			Categories: row.Tags,
			SourceName: s.Name(),
		})
	}

	return items, nil
}

// Внутренняя модель, чтобы правильно мапить колонки таблицы
type dbEntry struct {
	Title       string         `db:"title"`
	URL         string         `db:"url"`
	Content     string         `db:"content"`
	PublishedAt time.Time      `db:"published_at"`
	UpdatedAt   sql.NullTime   `db:"updated_at"`
	Author      sql.NullString `db:"author"`
	Email       sql.NullString `db:"email"`
	Tags        pq.StringArray `db:"tags"`
}

// NULL колонки превращаются в незаданные поля записи
func (e dbEntry) toEntry() (model.Entry, error) {
	b := model.NewEntryBuilder().
		Title(e.Title).
		URL(e.URL).
		Content(e.Content).
		Date(e.PublishedAt)

	if e.UpdatedAt.Valid {
		b.DateUpdated(e.UpdatedAt.Time)
	}
	if e.Author.Valid {
		b.Author(e.Author.String)
	}
	if e.Email.Valid {
		b.Email(e.Email.String)
	}

	return b.Build()
}
