package agents

import (
	"strings"
)

// State tracks consultation progress through the fixed pipeline.
// No transition skips a state and none is revisited; StateFailed absorbs
// from any non-terminal state on invocation failure.
type State string

const (
	StateStart        State = "start"
	StateQuestioned   State = "questioned"
	StateCriminalDone State = "criminal_done"
	StateCivilDone    State = "civil_done"
	StateEthicsDone   State = "ethics_done"
	StateSynthesized  State = "synthesized"
	StateComplete     State = "complete"
	StateFailed       State = "failed"
)

// Entry is a single transcript record: who said what.
type Entry struct {
	Speaker string
	Text    string
}

// Transcript is the append-only ordered record of all role outputs within
// one consultation. Its ordering is the single source of truth for
// "who said what when".
type Transcript struct {
	entries []Entry
}

// Append adds an entry; existing entries are never mutated.
func (t *Transcript) Append(speaker, text string) {
	t.entries = append(t.entries, Entry{Speaker: speaker, Text: text})
}

// Entries returns a copy of the recorded entries in order.
func (t *Transcript) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Render flattens the transcript into the text form passed to specialists.
func (t *Transcript) Render() string {
	var b strings.Builder
	for i, e := range t.entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(e.Speaker)
		b.WriteString(": ")
		b.WriteString(e.Text)
	}
	return b.String()
}

// Consultation holds the state of one orchestration call. It is created per
// incoming query, never shared between callers, and discarded once the
// result is returned.
type Consultation struct {
	Query      string
	Background string
	Transcript Transcript

	// SpecialistOutputs is a derived index into the transcript;
	// insertion order is invocation order (Criminal, Civil, Ethics).
	SpecialistOutputs []Entry

	FinalAnswer string
	state       State
}

// NewConsultation starts a consultation for one query.
func NewConsultation(query, background string) *Consultation {
	return &Consultation{
		Query:      query,
		Background: background,
		state:      StateStart,
	}
}

// State returns the current pipeline state.
func (c *Consultation) State() State {
	return c.state
}

// advance moves the consultation to the next pipeline state.
func (c *Consultation) advance(next State) {
	c.state = next
}

// fail moves the consultation into the absorbing failure state.
func (c *Consultation) fail() {
	c.state = StateFailed
}

// recordSpecialist appends a specialist response to both the transcript and
// the derived output index.
func (c *Consultation) recordSpecialist(label, text string) {
	c.Transcript.Append(label, text)
	c.SpecialistOutputs = append(c.SpecialistOutputs, Entry{Speaker: label, Text: text})
}

// Result is the caller-visible outcome of a completed consultation.
type Result struct {
	FinalAnswer string

	// ReasoningTrace holds exactly five labeled entries on success:
	// Questioner, Criminal, Civil, Ethics, Synthesizer - in invocation order.
	ReasoningTrace []string
}
