package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl"
	"github.com/kovalyov-valentin/atomfeed/internal/model"
)

// Записи из hcl манифеста.
//
//	entry {
//	  title        = "Hello"
//	  url          = "https://ex.org/hello"
//	  date         = "2020-01-01T00:00:00+01:00"
//	  categories   = ["go"]
//	  content_file = "posts/hello.md"
//	}
type ManifestSource struct {
	// Путь до манифеста. Относительные content_file считаются от его папки
	Path     string
	renderer *Renderer
}

func NewManifestSource(path string, renderer *Renderer) ManifestSource {
	return ManifestSource{
		Path:     path,
		renderer: renderer,
	}
}

type manifest struct {
	Entries []manifestEntry `hcl:"entry"`
}

// Необязательные поля: пустая строка значит "не задано"
type manifestEntry struct {
	Title       string   `hcl:"title"`
	URL         string   `hcl:"url"`
	Date        string   `hcl:"date"`
	Updated     string   `hcl:"updated"`
	Author      string   `hcl:"author"`
	Email       string   `hcl:"email"`
	Categories  []string `hcl:"categories"`
	Content     string   `hcl:"content"`
	ContentFile string   `hcl:"content_file"`
}

func (s ManifestSource) Name() string {
	return s.Path
}

// Записи в порядке манифеста. Ошибки по всем записям собираются в одну
func (s ManifestSource) Items(ctx context.Context) ([]model.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}

	var m manifest
	if err := hcl.Decode(&m, string(data)); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", s.Path, err)
	}

	var (
		items  = make([]model.Item, 0, len(m.Entries))
		result *multierror.Error
	)
	for i, raw := range m.Entries {
		entry, err := s.buildEntry(raw)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("entry #%d %q: %w", i+1, raw.Title, err))
			continue
		}

		items = append(items, model.Item{
			Entry:      entry,
			Categories: raw.Categories,
			SourceName: s.Name(),
		})
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return items, nil
}

func (s ManifestSource) buildEntry(raw manifestEntry) (model.Entry, error) {
	b := model.NewEntryBuilder()

	if raw.Title != "" {
		b.Title(raw.Title)
	}
	if raw.URL != "" {
		b.URL(raw.URL)
	}
	if raw.Author != "" {
		b.Author(raw.Author)
	}
	if raw.Email != "" {
		b.Email(raw.Email)
	}

	if raw.Date != "" {
		date, err := time.Parse(time.RFC3339, raw.Date)
		if err != nil {
			return model.Entry{}, fmt.Errorf("date: %w", err)
		}
		b.Date(date)
	}
	if raw.Updated != "" {
		updated, err := time.Parse(time.RFC3339, raw.Updated)
		if err != nil {
			return model.Entry{}, fmt.Errorf("updated: %w", err)
		}
		b.DateUpdated(updated)
	}

	switch {
	case raw.ContentFile != "":
		path := raw.ContentFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(s.Path), path)
		}

		content, err := s.renderer.RenderFile(path, raw.URL)
		if err != nil {
			return model.Entry{}, fmt.Errorf("content: %w", err)
		}
		b.Content(content)
	case raw.Content != "":
		content, err := s.renderer.Inline(raw.Content)
		if err != nil {
			return model.Entry{}, fmt.Errorf("content: %w", err)
		}
		b.Content(content)
	}

	return b.Build()
}
