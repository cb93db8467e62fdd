package collector

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/kovalyov-valentin/atomfeed/internal/model"
	"github.com/samber/lo"
	"github.com/tomakado/containers/set"
	"golang.org/x/sync/errgroup"
)

// Источник записей: манифест, база и т.д.
type Source interface {
	Name() string
	Items(ctx context.Context) ([]model.Item, error)
}

// Собирает записи из всех источников в один список для ленты
type Collector struct {
	sources []Source
	// Записи с этими словами в заголовке или категориях в ленту не попадают
	filterKeywords []string
	// 0 - без ограничения
	maxEntries int
}

func New(sources []Source, filterKeywords []string, maxEntries int) *Collector {
	return &Collector{
		sources: sources,
		filterKeywords: lo.Map(filterKeywords, func(keyword string, _ int) string {
			return strings.ToLower(strings.TrimSpace(keyword))
		}),
		maxEntries: maxEntries,
	}
}

// Источники опрашиваем параллельно, первая ошибка отменяет остальные.
// Результат отсортирован от новых к старым, при равной дате
// сохраняется порядок источников
func (c *Collector) Collect(ctx context.Context) ([]model.Entry, error) {
	results := make([][]model.Item, len(c.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range c.sources {
		g.Go(func() error {
			items, err := src.Items(gctx)
			if err != nil {
				return fmt.Errorf("source %s: %w", src.Name(), err)
			}

			results[i] = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var items []model.Item
	for _, sourceItems := range results {
		for _, item := range sourceItems {
			if c.itemShouldBeSkipped(item) {
				log.Printf("[DEBUG] skipping %q from %s: matches filter keywords", item.Entry.Title(), item.SourceName)
				continue
			}
			items = append(items, item)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Entry.Date().After(items[j].Entry.Date())
	})

	if c.maxEntries > 0 && len(items) > c.maxEntries {
		items = items[:c.maxEntries]
	}

	return lo.Map(items, func(item model.Item, _ int) model.Entry {
		return item.Entry
	}), nil
}

// Ключевое слово в категориях (точное совпадение) или в заголовке (подстрока)
func (c *Collector) itemShouldBeSkipped(item model.Item) bool {
	if len(c.filterKeywords) == 0 {
		return false
	}

	categoriesSet := set.New(lo.Map(item.Categories, func(category string, _ int) string {
		return strings.ToLower(category)
	})...)
	title := strings.ToLower(item.Entry.Title())

	for _, keyword := range c.filterKeywords {
		if keyword == "" {
			continue
		}
		if categoriesSet.Contains(keyword) || strings.Contains(title, keyword) {
			return true
		}
	}

	return false
}
