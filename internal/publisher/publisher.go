package publisher

import (
	"bytes"
	"io"
	"log"
	"os"
	"strings"

	"github.com/kovalyov-valentin/atomfeed/internal/atom"
	"github.com/kovalyov-valentin/atomfeed/internal/atomerr"
	"github.com/kovalyov-valentin/atomfeed/internal/clock"
	"github.com/kovalyov-valentin/atomfeed/internal/model"
)

// Логгер, в который уходит отладочный дамп ленты. *log.Logger подходит
type Logger interface {
	Printf(format string, v ...any)
}

// Собирает Atom документ из ленты и записей и пишет его в приемник.
// Состояния между вызовами не хранит
type Publisher struct {
	// Откуда брать время, если у ленты не задан updated
	clock  clock.Clock
	logger Logger
}

type Option func(*Publisher)

func WithClock(c clock.Clock) Option {
	return func(p *Publisher) { p.clock = c }
}

func WithLogger(l Logger) Option {
	return func(p *Publisher) { p.logger = l }
}

func New(opts ...Option) *Publisher {
	// Без WithLogger отладочный дамп никуда не пишется
	p := &Publisher{
		clock:  clock.Real(),
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Пишет ленту в w. w не закрывается.
// Записи выводятся в том порядке, в котором переданы
func (p *Publisher) WriteFeed(feed model.Feed, entries []model.Entry, w io.Writer) error {
	atomEntries := make([]atom.Entry, 0, len(entries))
	for _, entry := range entries {
		atomEntry, err := makeAtomEntry(feed, entry)
		if err != nil {
			return err
		}
		atomEntries = append(atomEntries, atomEntry)
	}

	atomFeed, err := makeAtomFeed(feed, atomEntries, p.clock.Now)
	if err != nil {
		return err
	}

	// Ошибки самого приемника отделяем от ошибок кодирования
	sink := &sinkWriter{w: w}
	if _, err := atomFeed.WriteTo(sink); err != nil {
		if sink.err != nil {
			return atomerr.IO(sink.err)
		}
		return atomerr.Downstream(err)
	}

	var buf bytes.Buffer
	if _, err := atomFeed.WriteTo(&buf); err != nil {
		return atomerr.Downstream(err)
	}
	p.logger.Printf("[DEBUG] feed xml: %s", strings.ToValidUTF8(buf.String(), "�"))

	return nil
}

// Создает (или обрезает) файл path и пишет в него ленту.
// Файл закрывается на любом пути выхода
func (p *Publisher) WriteFile(feed model.Feed, entries []model.Entry, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return atomerr.IO(err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = atomerr.IO(closeErr)
		}
	}()

	return p.WriteFeed(feed, entries, f)
}

// Пишет ленту с реальными часами и без отладочного дампа
func WriteFeed(feed model.Feed, entries []model.Entry, w io.Writer) error {
	return New().WriteFeed(feed, entries, w)
}

func WriteFile(feed model.Feed, entries []model.Entry, path string) error {
	return New().WriteFile(feed, entries, path)
}

type sinkWriter struct {
	w   io.Writer
	err error
}

func (s *sinkWriter) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	if err != nil && s.err == nil {
		s.err = err
	}

	return n, err
}
