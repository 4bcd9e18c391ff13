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
)

func TestPrompt_ReadsLines(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("asthma\r\n\nlast"), &out, false)
	ctx := context.Background()

	got, err := c.Prompt(ctx, "Topic: ")
	require.NoError(t, err)
	assert.Equal(t, "asthma", got)

	got, err = c.Prompt(ctx, "Focus: ")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = c.Prompt(ctx, "Answer: ")
	require.NoError(t, err)
	assert.Equal(t, "last", got, "unterminated final line is still returned")

	_, err = c.Prompt(ctx, "Next: ")
	assert.ErrorIs(t, err, io.EOF)

	_, err = c.Prompt(ctx, "Again: ")
	assert.ErrorIs(t, err, io.EOF, "EOF is sticky")

	assert.Equal(t, "Topic: Focus: Answer: Next: \nAgain: \n", out.String())
}

func TestPrompt_EmptyInput(t *testing.T) {
	c := New(strings.NewReader(""), io.Discard, false)
	_, err := c.Prompt(context.Background(), "> ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrompt_Cancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	c := New(r, io.Discard, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Prompt(ctx, "> ")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClose_StopsReader(t *testing.T) {
	c := New(strings.NewReader("one\ntwo\nthree\nfour\n"), io.Discard, false)
	ctx := context.Background()

	got, err := c.Prompt(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "one", got)

	require.NoError(t, c.Close())
	select {
	case <-c.stopped:
	case <-time.After(time.Second):
		t.Fatal("reader still blocked after Close")
	}

	_, err = c.Prompt(ctx, "> ")
	assert.ErrorIs(t, err, io.EOF, "unread lines are dropped")
	require.NoError(t, c.Close(), "second Close is a no-op")
}

func TestClose_BeforePrompt(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	c := New(r, io.Discard, false)
	require.NoError(t, c.Close())

	_, err := c.Prompt(context.Background(), "> ")
	assert.ErrorIs(t, err, io.EOF)
	select {
	case <-c.stopped:
	default:
		t.Fatal("reader started after Close")
	}
}

func TestOutput_Unstyled(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out, false)

	c.Title("HealthBot")
	c.Heading("Quiz Question:")
	c.Block("What is asthma?")
	c.Hint("press Enter")
	c.Result("Grade: A", ToneGood)
	c.Println("bye")

	assert.Equal(t, "HealthBot\n\nQuiz Question:\nWhat is asthma?\npress Enter\nGrade: A\nbye\n", out.String())
}

func TestOutput_Styled(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out, true)

	c.Result("Grade: F", TonePoor)
	assert.Contains(t, out.String(), "Grade: F")
	assert.NotEqual(t, "Grade: F\n", out.String())
}

func TestColorEnabled_NoColor(t *testing.T) {
	assert.False(t, ColorEnabled(nil, true))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(nil, false))
}
