package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/roach88/protosim/internal/sim"
)

func TestPrompter_Choices(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  sim.Mode
	}{
		{"login", "1\n", sim.ModeLogin},
		{"readonly", "2\n", sim.ModeReadOnly},
		{"surrounding whitespace", "  2  \n", sim.ModeReadOnly},
		{"windows line ending", "1\r\n", sim.ModeLogin},
		{"unterminated last line", "2", sim.ModeReadOnly},
		{"reprompts until valid", "3\nyes\n\n1\n", sim.ModeLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			p := NewPrompter(New(buf, 0, 0), strings.NewReader(tt.input))

			mode, err := p.SelectMode(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
		})
	}
}

func TestPrompter_MenuGolden(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPrompter(New(buf, 0, 0), strings.NewReader("x\n\n2\n"))

	mode, err := p.SelectMode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sim.ModeReadOnly, mode)

	newGoldie(t).Assert(t, "menu", buf.Bytes())
}

func TestPrompter_EOFIsError(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPrompter(New(buf, 0, 0), strings.NewReader("nope\n"))

	_, err := p.SelectMode(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 1, strings.Count(buf.String(), "Invalid selection"))
}

func TestPrompter_CancelWhileWaiting(t *testing.T) {
	defer goleak.VerifyNone(t)

	pr, pw := io.Pipe()
	p := NewPrompter(New(io.Discard, 0, 0), pr)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.SelectMode(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Unblock the reader goroutine so it can observe the closed done channel.
	require.NoError(t, pw.Close())
}
