package config

import (
	"fmt"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfighcl"
)

// Конфиг генератора. Читается из hcl файлов и переменных окружения
// с префиксом ATOMFEED_ (например ATOMFEED_FEED_ID).
// Поля ленты намеренно не required: о пропущенном поле сообщит FeedBuilder
type Config struct {
	FeedID    string `hcl:"feed_id" env:"FEED_ID"`
	FeedTitle string `hcl:"feed_title" env:"FEED_TITLE"`
	HomeURL   string `hcl:"home_url" env:"HOME_URL"`
	FeedURL   string `hcl:"feed_url" env:"FEED_URL"`
	Author    string `hcl:"author" env:"AUTHOR"`
	Email     string `hcl:"email" env:"EMAIL"`
	// RFC 3339. Пусто - время генерации
	Updated string `hcl:"updated" env:"UPDATED"`

	// Куда писать ленту, "-" - stdout
	Output string `hcl:"output" env:"OUTPUT" default:"atom.xml"`
	// hcl манифест с записями
	EntriesFile string `hcl:"entries_file" env:"ENTRIES_FILE"`
	// Если задан, записи также берутся из таблицы posts
	DatabaseDSN string `hcl:"database_dsn" env:"DATABASE_DSN"`
	// 0 - без ограничения
	MaxEntries     int      `hcl:"max_entries" env:"MAX_ENTRIES" default:"0"`
	FilterKeywords []string `hcl:"filter_keywords" env:"FILTER_KEYWORDS"`
	// Прогонять html записей из манифеста через санитайзер
	SanitizeHTML bool `hcl:"sanitize_html" env:"SANITIZE_HTML" default:"false"`

	LogLevel string `hcl:"log_level" env:"LOG_LEVEL" default:"INFO"`
	// Для воспроизводимой сборки: фиксирует "текущее" время
	SourceDateEpoch int64 `hcl:"source_date_epoch" env:"SOURCE_DATE_EPOCH" default:"0"`
}

// Файлы, которые ищем по умолчанию. Отсутствующие пропускаются
var DefaultFiles = []string{"./atomfeed.hcl", "./atomfeed.local.hcl"}

// Загружаем конфиг из DefaultFiles и extraFiles, более поздние файлы
// перекрывают ранние, окружение перекрывает файлы
func Load(extraFiles ...string) (Config, error) {
	var cfg Config

	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		// Флаги разбирает main через pflag
		SkipFlags:  true,
		EnvPrefix:  "ATOMFEED",
		MergeFiles: true,
		Files:      append(append([]string{}, DefaultFiles...), extraFiles...),
		FileDecoders: map[string]aconfig.FileDecoder{
			".hcl": aconfighcl.New(),
		},
	})

	if err := loader.Load(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}
