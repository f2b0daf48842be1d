package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"themis/internal/adapters/ai"
	"themis/internal/metrics"
)

// CompletionFailure reports that the completion service could not produce a
// response for one role invocation. The upstream cause is preserved and the
// consultation that hit it is aborted without retry.
type CompletionFailure struct {
	Role  string
	Cause error
}

// Error implements the error interface
func (e *CompletionFailure) Error() string {
	return fmt.Sprintf("completion failed for role %s: %v", e.Role, e.Cause)
}

// Unwrap returns the upstream cause
func (e *CompletionFailure) Unwrap() error {
	return e.Cause
}

// RoleInvoker executes roles against the completion service. It is stateless
// aside from the shared provider client and safe for concurrent use.
type RoleInvoker struct {
	provider ai.ChatProvider
	model    string
}

// NewRoleInvoker creates an invoker bound to a provider and model.
func NewRoleInvoker(provider ai.ChatProvider, model string) *RoleInvoker {
	return &RoleInvoker{provider: provider, model: model}
}

// Invoke runs one role over a query+context pair and returns the trimmed
// completion text. It is a pass-through formatter: no validation of inputs,
// no parsing of the model output.
func (inv *RoleInvoker) Invoke(ctx context.Context, role Role, query, contextText string) (string, error) {
	content := query
	if contextText != "" {
		content = contextText + "\n\n" + query
	}

	slot := ai.RoleUser
	if role.Stance == StancePeer {
		slot = ai.RoleAssistant
	}

	req := ai.CompletionRequest{
		Model: inv.model,
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: role.Instruction},
			{Role: slot, Content: content},
		},
	}

	start := time.Now()
	resp, err := inv.provider.Chat(ctx, req)
	if err != nil {
		metrics.RecordRoleInvocation(role.Name, time.Since(start), 0, err)
		return "", &CompletionFailure{Role: role.Name, Cause: err}
	}

	metrics.RecordRoleInvocation(role.Name, time.Since(start), resp.Usage.TotalTokens, nil)

	return strings.TrimSpace(resp.Content), nil
}
