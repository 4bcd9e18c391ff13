package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthaibot/healthbot/internal/llm"
)

const testSummary = "Diabetes is a chronic condition that affects how the body turns food into energy."

func TestGenerator_Create(t *testing.T) {
	mock := llm.NewMockProvider(llm.Text("Question: What does diabetes affect?\nWhat else?"))
	g := NewGenerator(mock, DefaultConfig())

	q, err := g.Create(context.Background(), testSummary, []string{"Is diabetes chronic?"})
	require.NoError(t, err)
	assert.Equal(t, "What does diabetes affect?", q.Text)
	assert.Equal(t, []string{"What else?"}, q.Discarded)
	assert.False(t, q.Fallback)

	req := mock.LastCall()
	assert.Equal(t, 256, req.MaxTokens)
	assert.Equal(t, 0.3, req.Temperature)
	require.Len(t, req.Messages, 1)
	prompt := req.Messages[0].Content
	assert.Contains(t, prompt, testSummary)
	assert.Contains(t, prompt, "PREVIOUS QUESTIONS:\n1. Is diabetes chronic?")
	assert.True(t, strings.HasSuffix(prompt, "QUESTION:"))
}

func TestGenerator_CreateTagsPurpose(t *testing.T) {
	offline := llm.NewOfflineProvider()
	g := NewGenerator(offline, DefaultConfig())

	q, err := g.Create(context.Background(), testSummary, nil)
	require.NoError(t, err)
	assert.Equal(t, "What is one main point the summary makes about this topic?", q.Text)
	assert.Contains(t, offline.LastCall().Messages[0].Content, "PREVIOUS QUESTIONS:\nNone")
}

func TestGenerator_CreateFallback(t *testing.T) {
	t.Run("provider error", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
		q, err := NewGenerator(mock, DefaultConfig()).Create(context.Background(), testSummary, nil)
		require.Error(t, err)
		var unavailable *llm.ErrProviderUnavailable
		assert.True(t, errors.As(err, &unavailable))
		assert.Equal(t, FallbackQuestion, q.Text)
		assert.True(t, q.Fallback)
	})

	t.Run("empty output", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.Text("   "))
		q, err := NewGenerator(mock, DefaultConfig()).Create(context.Background(), testSummary, nil)
		require.Error(t, err)
		assert.Equal(t, FallbackQuestion, q.Text)
		assert.True(t, strings.HasSuffix(q.Text, "?"))
	})

	t.Run("label without a question", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.Text("Question:"))
		q, err := NewGenerator(mock, DefaultConfig()).Create(context.Background(), testSummary, nil)
		require.Error(t, err)
		assert.Equal(t, FallbackQuestion, q.Text)
		assert.Equal(t, "Question:", q.Raw)
		assert.True(t, q.Fallback)
	})
}

func TestBuildPrevious(t *testing.T) {
	assert.Equal(t, "None", buildPrevious(nil, 10))
	assert.Equal(t, "1. a?\n2. b?", buildPrevious([]string{"a?", "b?"}, 10))
	assert.Equal(t, "1. b?\n2. c?", buildPrevious([]string{"a?", "b?", "c?"}, 2))
}

func TestGenerator_ListsEveryPreviousQuestion(t *testing.T) {
	previous := make([]string, 15)
	for i := range previous {
		previous[i] = fmt.Sprintf("Question %d?", i+1)
	}
	mock := llm.NewMockProvider(llm.Text("What is new?"))

	_, err := NewGenerator(mock, DefaultConfig()).Create(context.Background(), testSummary, previous)
	require.NoError(t, err)

	prompt := mock.LastCall().Messages[0].Content
	assert.Contains(t, prompt, "1. Question 1?\n")
	assert.Contains(t, prompt, "15. Question 15?\n")
}

func TestGrader_Grade(t *testing.T) {
	mock := llm.NewMockProvider(llm.Text("Grade: B\nJustification: Mentions energy use but not chronicity."))
	g := NewGrader(mock, DefaultConfig())

	res, err := g.Grade(context.Background(), testSummary, "What does diabetes affect?", "How the body uses food")
	require.NoError(t, err)
	assert.Equal(t, GradeB, res.Grade)
	assert.Equal(t, "Mentions energy use but not chronicity.", res.Justification)

	req := mock.LastCall()
	assert.Equal(t, gradingSystemPrompt, req.System)
	prompt := req.Messages[0].Content
	assert.Contains(t, prompt, "USER ANSWER:\nHow the body uses food")
	assert.Contains(t, prompt, "QUESTION:\nWhat does diabetes affect?")
	assert.Contains(t, prompt, "F = Incorrect or largely not based on SUMMARY")
}

func TestGrader_GradeFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	res, err := NewGrader(mock, DefaultConfig()).Grade(context.Background(), testSummary, "q?", "a")

	require.Error(t, err)
	assert.Equal(t, GradeF, res.Grade)
	assert.Equal(t, UnavailableJustification, res.Justification)
}
