package atomerr

import (
	"errors"
	"fmt"
)

// Вид ошибки. Вызывающий код ветвится именно по нему
type Kind int

const (
	// Не заполнено обязательное поле
	KindValidation Kind = iota + 1
	// Ошибка записи в приемник байтов (в том числе создания файла)
	KindIO
	// Ошибка, которую вернул Atom эмиттер
	KindDownstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindIO:
		return "io"
	case KindDownstream:
		return "downstream"
	default:
		return "unknown"
	}
}

// Единая ошибка ядра.
// Для Validation заполнен Reason, для IO и Downstream - Err
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindValidation:
		return "feed error: " + e.Reason
	case KindIO:
		return fmt.Sprintf("io error: %v", e.Err)
	case KindDownstream:
		return fmt.Sprintf("atom error: %v", e.Err)
	default:
		return fmt.Sprintf("unknown error: %v", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(reason string) error {
	return &Error{Kind: KindValidation, Reason: reason}
}

// Поднимаем ошибку приемника до IO.
// Если она уже наша, то не оборачиваем повторно
func IO(err error) error {
	return lift(KindIO, err)
}

// Поднимаем ошибку эмиттера до Downstream
func Downstream(err error) error {
	return lift(KindDownstream, err)
}

func lift(kind Kind, err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return err
	}

	return &Error{Kind: kind, Err: err}
}

// Достаем вид ошибки из цепочки. 0 если ошибка не наша
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }

func IsIO(err error) bool { return KindOf(err) == KindIO }

func IsDownstream(err error) bool { return KindOf(err) == KindDownstream }
