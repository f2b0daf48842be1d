package draft

import (
	"time"

	"github.com/google/uuid"

	"themis/internal/domain/document"
)

// Draft is a generated response letter, cached for download by ID.
type Draft struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Template  string    `json:"template"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDraft creates a draft with a fresh download identifier
func NewDraft(template, content string) *Draft {
	now := time.Now()
	return &Draft{
		ID:        uuid.New().String(),
		Filename:  "Legal_Draft_" + now.Format("20060102") + ".txt",
		Template:  template,
		Content:   content,
		CreatedAt: now,
	}
}

// Alignment of a rendered block.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
)

// BlockFormat describes how one letter section is rendered.
type BlockFormat struct {
	Font  string    `json:"font"`
	Size  int       `json:"size"`
	Bold  bool      `json:"bold"`
	Align Alignment `json:"align"`
}

// Margins in inches.
type Margins struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// Template describes the formatting of a draft letter. The formatting
// metadata travels with the draft so a rendering collaborator can lay out
// the final document; this service itself produces the text content.
type Template struct {
	Name              string      `json:"name"`
	Margins           Margins     `json:"margins"`
	Header            BlockFormat `json:"header_format"`
	Body              BlockFormat `json:"body_format"`
	Signature         BlockFormat `json:"signature_format"`
	DateLayout        string      `json:"date_layout"` // Go reference-time layout
	IncludesHeader    bool        `json:"includes_header"`
	IncludesDate      bool        `json:"includes_date"`
	IncludesSignature bool        `json:"includes_signature"`
}

// Template names.
const (
	TemplateLegalNoticeResponse = "Legal Notice Response"
	TemplateContractResponse    = "Contract Response"
	TemplateGeneralLetter       = "General Letter"
	TemplateLegalMemo           = "Legal Memo"
)

var standardMargins = Margins{Top: 1.0, Bottom: 1.0, Left: 1.25, Right: 1.25}

var templates = map[string]Template{
	TemplateLegalNoticeResponse: {
		Name:              TemplateLegalNoticeResponse,
		Margins:           standardMargins,
		Header:            BlockFormat{Font: "Times New Roman", Size: 12, Bold: true, Align: AlignCenter},
		Body:              BlockFormat{Font: "Times New Roman", Size: 12, Align: AlignLeft},
		Signature:         BlockFormat{Font: "Times New Roman", Size: 12, Align: AlignLeft},
		DateLayout:        "January 2, 2006",
		IncludesHeader:    true,
		IncludesDate:      true,
		IncludesSignature: true,
	},
	TemplateContractResponse: {
		Name:              TemplateContractResponse,
		Margins:           standardMargins,
		Header:            BlockFormat{Font: "Arial", Size: 12, Bold: true, Align: AlignCenter},
		Body:              BlockFormat{Font: "Arial", Size: 11, Align: AlignLeft},
		Signature:         BlockFormat{Font: "Arial", Size: 11, Align: AlignLeft},
		DateLayout:        "02/01/2006",
		IncludesHeader:    true,
		IncludesDate:      true,
		IncludesSignature: true,
	},
	TemplateGeneralLetter: {
		Name:              TemplateGeneralLetter,
		Margins:           standardMargins,
		Header:            BlockFormat{Font: "Calibri", Size: 12, Bold: true, Align: AlignLeft},
		Body:              BlockFormat{Font: "Calibri", Size: 11, Align: AlignLeft},
		Signature:         BlockFormat{Font: "Calibri", Size: 11, Align: AlignLeft},
		DateLayout:        "January 2, 2006",
		IncludesHeader:    true,
		IncludesDate:      true,
		IncludesSignature: true,
	},
	TemplateLegalMemo: {
		Name:              TemplateLegalMemo,
		Margins:           standardMargins,
		Header:            BlockFormat{Font: "Times New Roman", Size: 14, Bold: true, Align: AlignCenter},
		Body:              BlockFormat{Font: "Times New Roman", Size: 12, Align: AlignLeft},
		Signature:         BlockFormat{Font: "Times New Roman", Size: 12, Align: AlignLeft},
		DateLayout:        "January 2, 2006",
		IncludesHeader:    true,
		IncludesDate:      true,
		IncludesSignature: false,
	},
}

// categoryTemplates maps document categories to letter templates.
var categoryTemplates = map[document.Category]string{
	document.CategoryLegalNotice:     TemplateLegalNoticeResponse,
	document.CategoryContracts:       TemplateContractResponse,
	document.CategoryOwnership:       TemplateLegalMemo,
	document.CategoryFinancial:       TemplateLegalMemo,
	document.CategoryTermsPrivacy:    TemplateLegalMemo,
	document.CategoryIntellectual:    TemplateLegalMemo,
	document.CategoryCriminalOffense: TemplateLegalNoticeResponse,
	document.CategoryRegulatory:      TemplateLegalMemo,
	document.CategoryEmployment:      TemplateLegalMemo,
	document.CategoryCourtJudgments:  TemplateLegalMemo,
}

// TemplateByName returns a template definition by name.
func TemplateByName(name string) (Template, bool) {
	t, ok := templates[name]
	return t, ok
}

// TemplateForCategory returns the template used for a document category,
// falling back to the general letter for unknown categories.
func TemplateForCategory(category document.Category) Template {
	if name, ok := categoryTemplates[category]; ok {
		return templates[name]
	}
	return templates[TemplateGeneralLetter]
}
