package model

import "time"

// Лента, провалидированная FeedBuilder.
// Поля скрыты, чтобы собрать ленту в обход билдера было нельзя
type Feed struct {
	id      string
	title   string
	homeURL string
	feedURL string
	// Автор по умолчанию для всех записей
	author string
	email  string
	// Если не задано, при записи подставится текущее время
	dateUpdated *time.Time
}

func (f Feed) ID() string      { return f.id }
func (f Feed) Title() string   { return f.title }
func (f Feed) HomeURL() string { return f.homeURL }
func (f Feed) FeedURL() string { return f.feedURL }
func (f Feed) Author() string  { return f.author }
func (f Feed) Email() string   { return f.email }

func (f Feed) DateUpdated() (time.Time, bool) {
	return optional(f.dateUpdated)
}

// Запись ленты, провалидированная EntryBuilder
type Entry struct {
	title string
	// Ссылка, она же id записи в Atom
	url string
	// XHTML разметка, кладется в ленту как есть
	content string
	// Дата публикации
	date        time.Time
	dateUpdated *time.Time
	// Переопределение автора ленты
	author *string
	email  *string
}

func (e Entry) Title() string   { return e.title }
func (e Entry) URL() string     { return e.url }
func (e Entry) Content() string { return e.content }
func (e Entry) Date() time.Time { return e.date }

func (e Entry) DateUpdated() (time.Time, bool) {
	return optional(e.dateUpdated)
}

func (e Entry) Author() (string, bool) {
	return optional(e.author)
}

func (e Entry) Email() (string, bool) {
	return optional(e.email)
}

// Запись вместе с метаданными, по которым ее отбирают в ленту.
// В саму ленту категории не попадают
type Item struct {
	Entry Entry
	// Категории (теги) записи
	Categories []string
	// Имя источника, откуда пришла запись
	SourceName string
}

func optional[T any](v *T) (T, bool) {
	if v == nil {
		var zero T
		return zero, false
	}

	return *v, true
}
