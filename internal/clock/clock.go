// Package clock отдает текущее время. Прямой вызов time.Now прячем за
// интерфейсом, чтобы время можно было зафиксировать в тестах и при
// воспроизводимой сборке ленты.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Локальное время процесса
func Real() Clock {
	return realClock{}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

// Часы, которые всегда показывают t
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

// Часы из SOURCE_DATE_EPOCH (секунды unix) в зоне loc.
// Ноль и отрицательные значения означают реальное время
func FromEpoch(seconds int64, loc *time.Location) Clock {
	if seconds <= 0 {
		return Real()
	}

	return Fixed(time.Unix(seconds, 0).In(loc))
}
