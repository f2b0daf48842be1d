package agents

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"themis/internal/adapters/ai"
	"themis/pkg/errors"
)

// mockProvider is a deterministic in-memory ChatProvider. It records every
// request and answers via the configured respond function.
type mockProvider struct {
	mu      sync.Mutex
	calls   []ai.CompletionRequest
	respond func(call int, req ai.CompletionRequest) (string, error)
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Chat(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	call := len(m.calls)
	m.mu.Unlock()

	content, err := m.respond(call, req)
	if err != nil {
		return nil, err
	}
	return &ai.CompletionResponse{Content: content, Usage: ai.Usage{TotalTokens: 10}}, nil
}

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// content returns the non-system message content of the n-th call (1-based).
func (m *mockProvider) content(call int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[call-1].Messages[1].Content
}

// echoProvider answers every call with "<ROLE>: " followed by the input.
func echoProvider() *mockProvider {
	roleByCall := []string{"QUESTIONER", "CRIMINAL", "CIVIL", "ETHICS", "SYNTHESIZER"}
	return &mockProvider{
		respond: func(call int, req ai.CompletionRequest) (string, error) {
			return fmt.Sprintf("<%s>: %s", roleByCall[call-1], req.Messages[1].Content), nil
		},
	}
}

func newTestOrchestrator(p ai.ChatProvider) *Orchestrator {
	return NewOrchestrator(NewRoleInvoker(p, "test-model"))
}

func TestConsult_TraceShapeAndOrder(t *testing.T) {
	provider := echoProvider()
	orch := newTestOrchestrator(provider)

	res, err := orch.Consult(context.Background(), "Can I terminate a lease early?", "prior discussion")
	require.NoError(t, err)
	require.NotNil(t, res)

	require.Len(t, res.ReasoningTrace, 5, "trace must hold exactly five labeled entries")

	wantLabels := []string{
		LabelSeniorLawyer,
		LabelCriminalLawyer,
		LabelCivilLawyer,
		LabelEthicsLawyer,
		LabelSeniorLawyer,
	}
	for i, label := range wantLabels {
		assert.True(t, strings.HasPrefix(res.ReasoningTrace[i], label+": "),
			"trace entry %d should be labeled %q, got %q", i, label, res.ReasoningTrace[i][:40])
	}

	assert.Equal(t, 5, provider.callCount(), "exactly five role invocations per consultation")

	// Final answer is the synthesizer's output without the trace label
	assert.Equal(t, LabelSeniorLawyer+": "+res.FinalAnswer, res.ReasoningTrace[4])
}

func TestConsult_TranscriptAccumulation(t *testing.T) {
	provider := echoProvider()
	orch := newTestOrchestrator(provider)

	_, err := orch.Consult(context.Background(), "Can I terminate a lease early?", "")
	require.NoError(t, err)

	criminalOut := strings.TrimSpace(mustResponse(t, provider, 2))
	civilOut := strings.TrimSpace(mustResponse(t, provider, 3))

	// Civil (call 3) must see Criminal's full output in its input
	assert.Contains(t, provider.content(3), criminalOut)

	// Ethics (call 4) must see both Criminal's and Civil's outputs
	assert.Contains(t, provider.content(4), criminalOut)
	assert.Contains(t, provider.content(4), civilOut)

	// Criminal (call 2) must not see any specialist output yet, only the
	// client query and the questioner's decomposition
	assert.Contains(t, provider.content(2), LabelClient+": Can I terminate a lease early?")
	assert.NotContains(t, provider.content(2), LabelCivilLawyer+":")
	assert.NotContains(t, provider.content(2), LabelEthicsLawyer+":")
}

func TestConsult_SpecialistContextFixed(t *testing.T) {
	provider := echoProvider()
	orch := newTestOrchestrator(provider)

	query := "Is a verbal agreement binding?"
	background := "the client runs a small business"
	_, err := orch.Consult(context.Background(), query, background)
	require.NoError(t, err)

	wantPrefix := "Context: " + background + "\n\nclient question: " + query + "\n\n"

	// All three specialists get the identical context prefix, built once
	// before the specialist phase
	for call := 2; call <= 4; call++ {
		assert.True(t, strings.HasPrefix(provider.content(call), wantPrefix),
			"specialist call %d should start with the fixed specialist context", call)
	}
}

func TestConsult_StanceSlots(t *testing.T) {
	provider := echoProvider()
	orch := newTestOrchestrator(provider)

	_, err := orch.Consult(context.Background(), "q", "b")
	require.NoError(t, err)

	// Questioner and Synthesizer speak as the end user, specialists as peers
	wantSlots := []ai.MessageRole{ai.RoleUser, ai.RoleAssistant, ai.RoleAssistant, ai.RoleAssistant, ai.RoleUser}
	for i, want := range wantSlots {
		msg := provider.calls[i].Messages[1]
		assert.Equal(t, want, msg.Role, "call %d content slot", i+1)
		assert.Equal(t, ai.RoleSystem, provider.calls[i].Messages[0].Role)
	}
}

func TestConsult_FailFast(t *testing.T) {
	tests := []struct {
		name      string
		failAt    int
		wantCalls int
	}{
		{"questioner fails", 1, 1},
		{"criminal fails", 2, 2},
		{"civil fails", 3, 3},
		{"ethics fails", 4, 4},
		{"synthesizer fails", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cause := errors.Wrap(errors.ErrExternal, "upstream exploded")
			provider := &mockProvider{
				respond: func(call int, req ai.CompletionRequest) (string, error) {
					if call == tt.failAt {
						return "", cause
					}
					return "fine", nil
				},
			}
			orch := newTestOrchestrator(provider)

			res, err := orch.Consult(context.Background(), "query", "background")
			require.Error(t, err)
			assert.Nil(t, res, "no partial result on failure")
			assert.Equal(t, tt.wantCalls, provider.callCount(), "no wasted calls after the failure")

			var failure *CompletionFailure
			require.ErrorAs(t, err, &failure)
			assert.ErrorIs(t, err, errors.ErrExternal, "upstream cause must be preserved")
		})
	}
}

func TestConsult_DeterministicStructure(t *testing.T) {
	// Structure (length, label order) must not vary across repeated calls
	// with a deterministic provider, even though content may
	for i := 0; i < 3; i++ {
		provider := echoProvider()
		orch := newTestOrchestrator(provider)

		res, err := orch.Consult(context.Background(), "same query", "same background")
		require.NoError(t, err)
		require.Len(t, res.ReasoningTrace, 5)
		assert.Equal(t, 5, provider.callCount())
	}
}

func TestConsult_SynthesizerInput(t *testing.T) {
	provider := echoProvider()
	orch := newTestOrchestrator(provider)

	query := "Can I sublet my flat?"
	background := "tenant since 2019"
	_, err := orch.Consult(context.Background(), query, background)
	require.NoError(t, err)

	// Synthesizer sees background, query, the full transcript with all
	// three specialist entries, and the trailing prompt cue
	synthesizerInput := provider.content(5)
	assert.Contains(t, synthesizerInput, "Context: "+background)
	assert.Contains(t, synthesizerInput, "client question: "+query)
	assert.Contains(t, synthesizerInput, LabelCriminalLawyer+": ")
	assert.Contains(t, synthesizerInput, LabelCivilLawyer+": ")
	assert.Contains(t, synthesizerInput, LabelEthicsLawyer+": ")
	assert.True(t, strings.HasSuffix(synthesizerInput, "Senior Lawyer to User: "))
}

// mustResponse replays the mock's respond function for the n-th call to
// recover what the provider answered.
func mustResponse(t *testing.T, m *mockProvider, call int) string {
	t.Helper()
	m.mu.Lock()
	req := m.calls[call-1]
	m.mu.Unlock()
	content, err := m.respond(call, req)
	require.NoError(t, err)
	return content
}
