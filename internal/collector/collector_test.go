package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kovalyov-valentin/atomfeed/internal/model"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	name  string
	items []model.Item
	err   error
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) Items(context.Context) ([]model.Item, error) {
	return s.items, s.err
}

var base = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func item(t *testing.T, url, title string, day int, categories ...string) model.Item {
	t.Helper()

	entry, err := model.NewEntryBuilder().
		Title(title).
		URL(url).
		Content("c").
		Date(base.AddDate(0, 0, day)).
		Build()
	require.NoError(t, err)

	return model.Item{Entry: entry, Categories: categories, SourceName: "stub"}
}

func urls(entries []model.Entry) []string {
	return lo.Map(entries, func(e model.Entry, _ int) string { return e.URL() })
}

func TestCollect_MergesAndSortsNewestFirst(t *testing.T) {
	c := New([]Source{
		stubSource{name: "a", items: []model.Item{item(t, "a1", "A1", 1), item(t, "a3", "A3", 3)}},
		stubSource{name: "b", items: []model.Item{item(t, "b2", "B2", 2), item(t, "b3", "B3", 3)}},
	}, nil, 0)

	entries, err := c.Collect(context.Background())
	require.NoError(t, err)

	// при равной дате a3 раньше b3, как и источники
	assert.Equal(t, []string{"a3", "b3", "b2", "a1"}, urls(entries))
}

func TestCollect_FilterKeywords(t *testing.T) {
	c := New([]Source{
		stubSource{name: "a", items: []model.Item{
			item(t, "keep", "Release notes", 1, "go"),
			item(t, "by-category", "Weekly", 2, "Drafts"),
			item(t, "by-title", "Sponsored: buy now", 3),
		}},
	}, []string{" drafts ", "SPONSORED"}, 0)

	entries, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, urls(entries))
}

func TestCollect_MaxEntries(t *testing.T) {
	c := New([]Source{
		stubSource{name: "a", items: []model.Item{item(t, "1", "t", 1), item(t, "2", "t", 2), item(t, "3", "t", 3)}},
	}, nil, 2)

	entries, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "2"}, urls(entries))
}

func TestCollect_SourceError(t *testing.T) {
	boom := errors.New("boom")
	c := New([]Source{
		stubSource{name: "ok", items: []model.Item{item(t, "1", "t", 1)}},
		stubSource{name: "broken", err: boom},
	}, nil, 0)

	_, err := c.Collect(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "source broken")
}

func TestCollect_NoSources(t *testing.T) {
	entries, err := New(nil, nil, 0).Collect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
