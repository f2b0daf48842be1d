package agents

import (
	"context"
	"time"

	"themis/internal/metrics"
	"themis/pkg/logger"
)

// Orchestrator drives the five-role consultation pipeline: a Questioner
// decomposes the client's query, three specialists answer in a fixed
// sequence over an accumulating transcript, and a Synthesizer produces the
// final answer. The sequence never branches on content.
type Orchestrator struct {
	invoker *RoleInvoker
	log     *logger.Logger
}

// NewOrchestrator creates a consultation orchestrator.
func NewOrchestrator(invoker *RoleInvoker) *Orchestrator {
	return &Orchestrator{
		invoker: invoker,
		log:     logger.Get().With("component", "consultation"),
	}
}

// specialists in invocation order. Each sees strictly more transcript than
// the previous one; this ordering is load-bearing and must not change.
var specialists = []Role{
	RoleCriminalLawyer,
	RoleCivilLawyer,
	RoleEthicsLawyer,
}

// Consult runs one consultation. Any single role failure aborts the whole
// pipeline: the CompletionFailure is returned unchanged and no partial
// trace is produced.
func (o *Orchestrator) Consult(ctx context.Context, query, background string) (*Result, error) {
	start := time.Now()
	c := NewConsultation(query, background)

	o.log.Infow("Consultation started", "query_len", len(query), "background_len", len(background))

	// Questioning phase: decompose the query into sub-questions for the
	// specialists. The result is opaque text forwarded downstream.
	questions, err := o.invoker.Invoke(ctx, RoleQuestioner, query, "Context:\n"+background)
	if err != nil {
		return nil, o.abort(c, RoleQuestioner, start, err)
	}
	c.advance(StateQuestioned)

	c.Transcript.Append(LabelClient, query)
	c.Transcript.Append(LabelSeniorLawyer, questions)

	// Fixed for all three specialists; built once, before the specialist
	// phase, and independent of transcript growth.
	specialistContext := "Context: " + background + "\n\nclient question: " + query

	specialistStates := []State{StateCriminalDone, StateCivilDone, StateEthicsDone}
	for i, role := range specialists {
		resp, err := o.invoker.Invoke(ctx, role, c.Transcript.Render(), specialistContext)
		if err != nil {
			return nil, o.abort(c, role, start, err)
		}
		c.recordSpecialist(role.Label, resp)
		c.advance(specialistStates[i])
	}

	// Synthesis phase: one combined prompt over everything said so far,
	// with an empty context argument.
	combined := "Context: " + background +
		"\n\nclient question: " + query +
		"\n\n" + c.Transcript.Render() +
		"\n\nSenior Lawyer to User: "

	answer, err := o.invoker.Invoke(ctx, RoleSynthesizer, combined, "")
	if err != nil {
		return nil, o.abort(c, RoleSynthesizer, start, err)
	}
	c.FinalAnswer = answer
	c.advance(StateSynthesized)

	trace := []string{
		LabelSeniorLawyer + ": " + questions,
	}
	for _, out := range c.SpecialistOutputs {
		trace = append(trace, out.Speaker+": "+out.Text)
	}
	trace = append(trace, LabelSeniorLawyer+": "+answer)

	c.advance(StateComplete)
	metrics.RecordConsultation(time.Since(start), nil)
	o.log.Infow("Consultation complete", "duration", time.Since(start), "trace_len", len(trace))

	return &Result{
		FinalAnswer:    answer,
		ReasoningTrace: trace,
	}, nil
}

// abort marks the consultation failed and surfaces the role failure as-is.
func (o *Orchestrator) abort(c *Consultation, role Role, start time.Time, err error) error {
	c.fail()
	metrics.RecordConsultation(time.Since(start), err)
	o.log.Errorw("Consultation aborted", "role", role.Name, "state", c.State(), "error", err)
	return err
}
