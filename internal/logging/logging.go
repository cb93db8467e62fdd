package logging

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/hashicorp/logutils"
	"github.com/samber/lo"
)

// Уровни по возрастанию. Строка лога с префиксом [DEBUG] пройдет фильтр,
// только если минимальный уровень DEBUG
var Levels = []logutils.LogLevel{"DEBUG", "INFO", "WARN", "ERROR"}

// Логгер, который отбрасывает строки ниже level.
// Строки без префикса уровня проходят всегда
func New(w io.Writer, level string) (*log.Logger, error) {
	minLevel := logutils.LogLevel(strings.ToUpper(strings.TrimSpace(level)))
	if !lo.Contains(Levels, minLevel) {
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	filter := &logutils.LevelFilter{
		Levels:   Levels,
		MinLevel: minLevel,
		Writer:   w,
	}

	return log.New(filter, "", log.LstdFlags), nil
}
