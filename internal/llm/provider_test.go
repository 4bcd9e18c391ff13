package llm

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: "first summary", Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		Text("What causes asthma?"),
	)

	resp1, err := mock.Generate(context.Background(), UserPrompt("", "first"))
	require.NoError(t, err)
	assert.Equal(t, "first summary", resp1.Text())
	assert.Equal(t, 10, resp1.Usage.InputTokens)
	assert.Equal(t, "end", resp1.StopReason)

	resp2, err := mock.Generate(context.Background(), UserPrompt("", "second"))
	require.NoError(t, err)
	assert.Equal(t, "What causes asthma?", resp2.Text())
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(Text("ok"))

	_, _ = mock.Generate(context.Background(), UserPrompt("sys", "hello"))

	require.Equal(t, 1, mock.CallCount())
	last := mock.LastCall()
	assert.Equal(t, "sys", last.System)
	require.Len(t, last.Messages, 1)
	assert.Equal(t, RoleUser, last.Messages[0].Role)
	assert.Equal(t, "hello", last.Messages[0].Content)
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	require.ErrorAs(t, err, &rl)
}

func TestMockProvider_FallbackAfterQueue(t *testing.T) {
	mock := NewMockProvider(Text("queued"))
	mock.Fallback = func(context.Context, Request) MockResponse { return Text("fallback") }

	first, err := mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	second, err := mock.Generate(context.Background(), Request{})
	require.NoError(t, err)

	assert.Equal(t, "queued", first.Text())
	assert.Equal(t, "fallback", second.Text())
}

func TestOfflineProvider_AnswersByPurpose(t *testing.T) {
	p := NewOfflineProvider()

	quiz, err := p.Generate(WithPurpose(context.Background(), PurposeQuiz), Request{})
	require.NoError(t, err)
	assert.Contains(t, quiz.Text(), "?")

	grade, err := p.Generate(WithPurpose(context.Background(), PurposeGrading), Request{})
	require.NoError(t, err)
	assert.Contains(t, grade.Text(), "Grade: C")

	summary, err := p.Generate(WithPurpose(context.Background(), PurposeSummary), Request{})
	require.NoError(t, err)
	assert.NotEmpty(t, summary.Text())
}

func TestResponseText(t *testing.T) {
	var nilResp *Response
	assert.Equal(t, "", nilResp.Text())
	assert.Equal(t, "padded", (&Response{Content: "\n  padded \n"}).Text())
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))

	ctx = WithPurpose(ctx, PurposeGrading)
	assert.Equal(t, "grading", PurposeFrom(ctx))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"openai with key", Config{Provider: ProviderOpenAI, OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, true},
		{"ollama needs a model", Config{Provider: ProviderOllama}, true},
		{"ollama with model", Config{Provider: ProviderOllama, Ollama: OllamaConfig{Model: "gemma3:1b"}}, false},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"temperature out of range", Config{Provider: ProviderMock, Temperature: 3}, true},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig_IsLocalOllama(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, "gemma3:1b", cfg.Ollama.Model)
	assert.InDelta(t, 0.3, cfg.Temperature, 1e-9)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_SetModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetModel("llama3.2")
	assert.Equal(t, "llama3.2", cfg.Ollama.Model)

	cfg.Provider = ProviderOpenAI
	cfg.SetModel("gpt-4.1-mini")
	assert.Equal(t, "gpt-4.1-mini", cfg.OpenAI.Model)

	cfg.SetModel("")
	assert.Equal(t, "gpt-4.1-mini", cfg.OpenAI.Model, "empty model keeps the current one")
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	_, ok := DiscoverConfig(os.Getenv)
	assert.False(t, ok)

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	cfg, ok := DiscoverConfig(os.Getenv)
	require.True(t, ok)
	assert.Equal(t, ProviderAnthropic, cfg.Provider, "anthropic outranks openrouter")
	assert.Equal(t, "sk-ant", cfg.Anthropic.APIKey)
}

func TestNewProvider_MockIsWrapped(t *testing.T) {
	repo := &recordingRepo{}
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock

	p, err := NewProvider(context.Background(), cfg, repo, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	_, err = p.Generate(WithPurpose(context.Background(), PurposeSummary), Request{})
	require.NoError(t, err)
	require.Len(t, repo.llm, 1)
	assert.Equal(t, ProviderMock, repo.llm[0].Provider)
	assert.Equal(t, PurposeSummary, repo.llm[0].Purpose)
}

func TestNewProvider_RejectsInvalidConfig(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: ProviderOpenAI}, nil, nil)
	assert.Error(t, err)
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestWithTimeout_BoundsCall(t *testing.T) {
	p := WithTimeout(slowProvider{}, 10*time.Millisecond)

	start := time.Now()
	_, err := p.Generate(context.Background(), Request{})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, "slow", p.ModelID())
}

func TestWithTimeout_ZeroDisables(t *testing.T) {
	mock := NewMockProvider()
	assert.Same(t, Provider(mock), WithTimeout(mock, 0))
}
