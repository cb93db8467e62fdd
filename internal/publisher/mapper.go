package publisher

import (
	"fmt"
	"time"

	"github.com/kovalyov-valentin/atomfeed/internal/atom"
	"github.com/kovalyov-valentin/atomfeed/internal/atomerr"
	"github.com/kovalyov-valentin/atomfeed/internal/model"
	"github.com/samber/lo"
)

// RFC 3339 с явным смещением: нулевое смещение пишется как +00:00, а не Z.
// Дробная часть секунд выводится группами по 3 цифры и только если она есть
const (
	timeLayout      = "2006-01-02T15:04:05-07:00"
	timeLayoutMilli = "2006-01-02T15:04:05.000-07:00"
	timeLayoutMicro = "2006-01-02T15:04:05.000000-07:00"
	timeLayoutNano  = "2006-01-02T15:04:05.000000000-07:00"
)

// В RFC 3339 год ровно из 4 цифр, поэтому даты вне 0000-9999 отклоняем
func formatTime(field string, t time.Time) (string, error) {
	if year := t.Year(); year < 0 || year > 9999 {
		return "", atomerr.Validation(fmt.Sprintf("%s: year %d cannot be written as RFC 3339", field, year))
	}

	switch nanos := t.Nanosecond(); {
	case nanos == 0:
		return t.Format(timeLayout), nil
	case nanos%1_000_000 == 0:
		return t.Format(timeLayoutMilli), nil
	case nanos%1_000 == 0:
		return t.Format(timeLayoutMicro), nil
	default:
		return t.Format(timeLayoutNano), nil
	}
}

// Значение записи, а если его нет - значение ленты
func resolve(value string, ok bool, fallback string) string {
	return lo.Ternary(ok, value, fallback)
}

func makeAtomEntry(feed model.Feed, entry model.Entry) (atom.Entry, error) {
	published, err := formatTime("Entry date", entry.Date())
	if err != nil {
		return atom.Entry{}, err
	}

	updated := published
	if date, ok := entry.DateUpdated(); ok {
		if updated, err = formatTime("Entry date updated", date); err != nil {
			return atom.Entry{}, err
		}
	}

	content := atom.Content{
		Type:  "xhtml",
		Value: entry.Content(),
	}

	name, ok := entry.Author()
	name = resolve(name, ok, feed.Author())
	email, ok := entry.Email()
	email = resolve(email, ok, feed.Email())

	person, err := atom.NewPersonBuilder().
		Name(name).
		Email(email).
		URI(feed.HomeURL()).
		Build()
	if err != nil {
		return atom.Entry{}, atomerr.Downstream(err)
	}

	atomEntry, err := atom.NewEntryBuilder().
		Title(entry.Title()).
		ID(entry.URL()).
		Published(published).
		Updated(updated).
		Authors([]atom.Person{person}).
		Content(content).
		Build()
	if err != nil {
		return atom.Entry{}, atomerr.Downstream(err)
	}

	return atomEntry, nil
}

func makeAtomFeed(feed model.Feed, entries []atom.Entry, now func() time.Time) (atom.Feed, error) {
	// Порядок ссылок важен: сначала self, потом сайт
	links := []atom.Link{
		{Href: feed.FeedURL(), Rel: "self"},
		{Href: feed.HomeURL()},
	}

	date, ok := feed.DateUpdated()
	if !ok {
		date = now()
	}
	updated, err := formatTime("Feed date updated", date)
	if err != nil {
		return atom.Feed{}, err
	}

	atomFeed, err := atom.NewFeedBuilder().
		ID(feed.ID()).
		Title(feed.Title()).
		Links(links).
		Entries(entries).
		Updated(updated).
		Build()
	if err != nil {
		return atom.Feed{}, atomerr.Downstream(err)
	}

	return atomFeed, nil
}
