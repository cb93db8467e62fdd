package model

import (
	"time"

	"github.com/kovalyov-valentin/atomfeed/internal/atomerr"
)

// Черновик ленты. Каждый сеттер запоминает одно поле и возвращает билдер,
// чтобы вызовы можно было чейнить
type FeedBuilder struct {
	id          *string
	title       *string
	homeURL     *string
	feedURL     *string
	author      *string
	email       *string
	dateUpdated *time.Time
}

func NewFeedBuilder() *FeedBuilder {
	return &FeedBuilder{}
}

func (b *FeedBuilder) ID(id string) *FeedBuilder {
	b.id = &id
	return b
}

func (b *FeedBuilder) Title(title string) *FeedBuilder {
	b.title = &title
	return b
}

func (b *FeedBuilder) HomeURL(homeURL string) *FeedBuilder {
	b.homeURL = &homeURL
	return b
}

func (b *FeedBuilder) FeedURL(feedURL string) *FeedBuilder {
	b.feedURL = &feedURL
	return b
}

func (b *FeedBuilder) Author(author string) *FeedBuilder {
	b.author = &author
	return b
}

func (b *FeedBuilder) Email(email string) *FeedBuilder {
	b.email = &email
	return b
}

func (b *FeedBuilder) DateUpdated(date time.Time) *FeedBuilder {
	b.dateUpdated = &date
	return b
}

// Проверяем обязательные поля в фиксированном порядке
// и возвращаем ошибку по первому незаполненному.
// Пустая строка считается заданным значением
func (b *FeedBuilder) Build() (Feed, error) {
	checks := []requiredField{
		{b.id, "Feed id is mandatory"},
		{b.title, "Feed title is mandatory"},
		{b.homeURL, "Feed home URL is mandatory"},
		{b.feedURL, "Feed URL is mandatory"},
		{b.author, "Feed author is mandatory"},
		{b.email, "Feed email is mandatory"},
	}
	if err := firstMissing(checks); err != nil {
		return Feed{}, err
	}

	return Feed{
		id:          *b.id,
		title:       *b.title,
		homeURL:     *b.homeURL,
		feedURL:     *b.feedURL,
		author:      *b.author,
		email:       *b.email,
		dateUpdated: b.dateUpdated,
	}, nil
}

// Черновик записи
type EntryBuilder struct {
	title       *string
	url         *string
	content     *string
	date        *time.Time
	dateUpdated *time.Time
	author      *string
	email       *string
}

func NewEntryBuilder() *EntryBuilder {
	return &EntryBuilder{}
}

func (b *EntryBuilder) Title(title string) *EntryBuilder {
	b.title = &title
	return b
}

func (b *EntryBuilder) URL(url string) *EntryBuilder {
	b.url = &url
	return b
}

func (b *EntryBuilder) Content(content string) *EntryBuilder {
	b.content = &content
	return b
}

func (b *EntryBuilder) Date(date time.Time) *EntryBuilder {
	b.date = &date
	return b
}

func (b *EntryBuilder) DateUpdated(date time.Time) *EntryBuilder {
	b.dateUpdated = &date
	return b
}

func (b *EntryBuilder) Author(author string) *EntryBuilder {
	b.author = &author
	return b
}

func (b *EntryBuilder) Email(email string) *EntryBuilder {
	b.email = &email
	return b
}

// Порядок проверки: title, url, content, date
func (b *EntryBuilder) Build() (Entry, error) {
	checks := []requiredField{
		{b.title, "Entry title is mandatory"},
		{b.url, "Entry url is mandatory"},
		{b.content, "Entry content is mandatory"},
	}
	if err := firstMissing(checks); err != nil {
		return Entry{}, err
	}
	if b.date == nil {
		return Entry{}, atomerr.Validation("Entry date is mandatory")
	}

	return Entry{
		title:       *b.title,
		url:         *b.url,
		content:     *b.content,
		date:        *b.date,
		dateUpdated: b.dateUpdated,
		author:      b.author,
		email:       b.email,
	}, nil
}

type requiredField struct {
	value  *string
	reason string
}

func firstMissing(checks []requiredField) error {
	for _, c := range checks {
		if c.value == nil {
			return atomerr.Validation(c.reason)
		}
	}

	return nil
}
