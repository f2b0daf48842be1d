package document

import (
	"time"
)

// Document represents an uploaded legal document after text extraction.
// How the text was obtained (PDF parsing etc.) is a collaborator's concern;
// this service only ever sees extracted text.
type Document struct {
	SessionID  string    `json:"session_id"`
	Filename   string    `json:"filename"`
	Category   Category  `json:"category"`
	Text       string    `json:"text"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// NewDocument creates a document for a session
func NewDocument(sessionID, filename, text string) *Document {
	return &Document{
		SessionID:  sessionID,
		Filename:   filename,
		Text:       text,
		UploadedAt: time.Now(),
	}
}

// Truncate returns at most limit characters of the document text.
func (d *Document) Truncate(limit int) string {
	if limit <= 0 || len(d.Text) <= limit {
		return d.Text
	}
	return d.Text[:limit]
}

// Category is one of the fixed document classification categories.
type Category string

const (
	CategoryLegalNotice     Category = "Legal Notice"
	CategoryOwnership       Category = "Ownership Documents"
	CategoryContracts       Category = "Contracts & Agreements"
	CategoryFinancial       Category = "Financial Documents"
	CategoryTermsPrivacy    Category = "Terms & Conditions / Privacy Policies"
	CategoryIntellectual    Category = "Intellectual Property Documents"
	CategoryCriminalOffense Category = "Criminal Offense Documents"
	CategoryRegulatory      Category = "Regulatory Compliance Documents"
	CategoryEmployment      Category = "Employment Documents"
	CategoryCourtJudgments  Category = "Court Judgments & Legal Precedents"
)

// AllCategories returns the fixed category set in presentation order.
func AllCategories() []Category {
	return []Category{
		CategoryLegalNotice,
		CategoryOwnership,
		CategoryContracts,
		CategoryFinancial,
		CategoryTermsPrivacy,
		CategoryIntellectual,
		CategoryCriminalOffense,
		CategoryRegulatory,
		CategoryEmployment,
		CategoryCourtJudgments,
	}
}

// IsValid checks if the category is one of the known set.
func (c Category) IsValid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Metrics returns the extraction metrics relevant for the category.
func (c Category) Metrics() []string {
	return categoryMetrics[c]
}

// categoryMetrics maps each category to the metrics extracted during
// document processing.
var categoryMetrics = map[Category][]string{
	CategoryLegalNotice: {
		"Severity Score", "Violations & Broken Rules", "Legal Consequences", "Actionable Steps",
		"Urgency Detection", "Tone Analysis", "Recommended Actions",
	},
	CategoryOwnership: {
		"Ownership Rights & Obligations", "Transfer, Leasing, Sale, Mortgaging Clauses",
		"Financial Liabilities", "Terms & Conditions", "Important Dates", "Document Validity", "Summary Type",
	},
	CategoryContracts: {
		"Parties Involved & Roles", "Terms & Conditions", "Termination Clauses", "Penalties for Breach",
		"Severity Score", "Obligations & Rights", "Actionable Steps",
	},
	CategoryFinancial: {
		"Financial Obligations", "Coverage Details", "Deadlines & Payment Schedules",
		"Legal Implications", "Severity Score", "Urgency Detection", "Risk Analysis",
	},
	CategoryTermsPrivacy: {
		"User Rights & Restrictions", "Data Usage & Privacy Clauses", "Liability Clauses",
		"Termination & Suspension Rules", "Severity Score", "Personal Implications", "Suggested Actions",
	},
	CategoryIntellectual: {
		"Ownership & Usage Rights", "Infringement Clauses", "Exclusivity & Licensing Terms",
		"Penalties for Violation", "Severity Score", "Urgency Detection", "Recommended Actions",
	},
	CategoryCriminalOffense: {
		"Charges Filed", "Potential Penalties", "Required Actions", "Severity Score",
		"Urgency Detection", "Tone Analysis", "Suggested Actions",
	},
	CategoryRegulatory: {
		"Compliance Requirements", "Penalties for Non-Compliance", "Renewal Deadlines & Conditions",
		"Guidelines for Rectification", "Severity Score", "Urgency Detection", "Recommended Actions",
	},
	CategoryEmployment: {
		"Terms of Employment", "Termination Conditions", "Confidentiality Clauses",
		"Breach Consequences", "Severity Score", "Urgency Detection", "Suggested Actions",
	},
	CategoryCourtJudgments: {
		"Summary of Judgment", "Legal Basis", "Potential Consequences",
		"Severity Score", "Urgency Detection", "Recommended Actions",
	},
}
