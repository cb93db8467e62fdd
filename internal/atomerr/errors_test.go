package atomerr

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorDisplay(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation",
			err:  Validation("Feed id is mandatory"),
			want: "feed error: Feed id is mandatory",
		},
		{
			name: "io",
			err:  IO(io.ErrClosedPipe),
			want: "io error: io: read/write on closed pipe",
		},
		{
			name: "downstream",
			err:  Downstream(errors.New("missing title")),
			want: "atom error: missing title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("x")))
	assert.Equal(t, KindIO, KindOf(IO(io.EOF)))
	assert.Equal(t, KindDownstream, KindOf(Downstream(io.EOF)))
	assert.Equal(t, Kind(0), KindOf(io.EOF))
	assert.Equal(t, Kind(0), KindOf(nil))

	wrapped := fmt.Errorf("write feed: %w", IO(io.ErrShortWrite))
	assert.True(t, IsIO(wrapped))
	assert.False(t, IsDownstream(wrapped))
	assert.False(t, IsValidation(wrapped))
}

func TestLiftKeepsCause(t *testing.T) {
	err := IO(io.ErrShortWrite)
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrShortWrite)

	assert.NoError(t, IO(nil))
	assert.NoError(t, Downstream(nil))
}

func TestLiftDoesNotRewrap(t *testing.T) {
	inner := IO(io.ErrShortWrite)

	// ошибка приемника, прошедшая через эмиттер, остается IO
	assert.True(t, IsIO(Downstream(inner)))
	assert.Same(t, inner, Downstream(inner))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "io", KindIO.String())
	assert.Equal(t, "downstream", KindDownstream.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
