package atom

import (
	"fmt"
	"strings"
	"time"
)

type PersonBuilder struct {
	person Person
}

func NewPersonBuilder() *PersonBuilder {
	return &PersonBuilder{}
}

func (b *PersonBuilder) Name(name string) *PersonBuilder {
	b.person.Name = name
	return b
}

func (b *PersonBuilder) Email(email string) *PersonBuilder {
	b.person.Email = email
	return b
}

func (b *PersonBuilder) URI(uri string) *PersonBuilder {
	b.person.URI = uri
	return b
}

func (b *PersonBuilder) Build() (Person, error) {
	if b.person.Name == "" {
		return Person{}, invalid("person name is required")
	}

	return b.person, nil
}

type EntryBuilder struct {
	entry Entry
}

func NewEntryBuilder() *EntryBuilder {
	return &EntryBuilder{}
}

func (b *EntryBuilder) Title(title string) *EntryBuilder {
	b.entry.Title = title
	return b
}

func (b *EntryBuilder) ID(id string) *EntryBuilder {
	b.entry.ID = id
	return b
}

func (b *EntryBuilder) Published(published string) *EntryBuilder {
	b.entry.Published = published
	return b
}

func (b *EntryBuilder) Updated(updated string) *EntryBuilder {
	b.entry.Updated = updated
	return b
}

func (b *EntryBuilder) Authors(authors []Person) *EntryBuilder {
	b.entry.Authors = authors
	return b
}

func (b *EntryBuilder) Content(content Content) *EntryBuilder {
	b.entry.Content = &content
	return b
}

func (b *EntryBuilder) Build() (Entry, error) {
	e := b.entry

	switch {
	case e.ID == "":
		return Entry{}, invalid("entry id is required")
	case e.Title == "":
		return Entry{}, invalid("entry %q: title is required", e.ID)
	}

	if err := checkDate("entry "+e.ID+" updated", e.Updated); err != nil {
		return Entry{}, err
	}
	if e.Published != "" {
		if err := checkDate("entry "+e.ID+" published", e.Published); err != nil {
			return Entry{}, err
		}
	}
	if e.Content != nil {
		if err := checkContentType(e.Content.Type); err != nil {
			return Entry{}, err
		}
	}

	return e, nil
}

type FeedBuilder struct {
	feed Feed
}

func NewFeedBuilder() *FeedBuilder {
	return &FeedBuilder{}
}

func (b *FeedBuilder) ID(id string) *FeedBuilder {
	b.feed.ID = id
	return b
}

func (b *FeedBuilder) Title(title string) *FeedBuilder {
	b.feed.Title = title
	return b
}

func (b *FeedBuilder) Links(links []Link) *FeedBuilder {
	b.feed.Links = links
	return b
}

func (b *FeedBuilder) Entries(entries []Entry) *FeedBuilder {
	b.feed.Entries = entries
	return b
}

func (b *FeedBuilder) Updated(updated string) *FeedBuilder {
	b.feed.Updated = updated
	return b
}

func (b *FeedBuilder) Build() (Feed, error) {
	f := b.feed

	switch {
	case f.ID == "":
		return Feed{}, invalid("feed id is required")
	case f.Title == "":
		return Feed{}, invalid("feed title is required")
	}

	if err := checkDate("feed updated", f.Updated); err != nil {
		return Feed{}, err
	}

	for i, link := range f.Links {
		if link.Href == "" {
			return Feed{}, invalid("feed link %d: href is required", i)
		}
	}

	return f, nil
}

// Date construct по RFC 4287 - это RFC 3339
func checkDate(field, value string) error {
	if value == "" {
		return invalid("%s is required", field)
	}
	if _, err := time.Parse(time.RFC3339, value); err != nil {
		return invalid("%s: %q is not an RFC 3339 timestamp", field, value)
	}

	return nil
}

// Либо один из типов Atom, либо MIME тип
func checkContentType(contentType string) error {
	if contentType == "" || contentTypes.Contains(contentType) || strings.Contains(contentType, "/") {
		return nil
	}

	return invalid("unsupported content type %q", contentType)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
