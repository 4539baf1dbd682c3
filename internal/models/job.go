package models

import (
	"strconv"
	"strings"
	"time"
)

type SalaryKind string

const (
	SalaryConfidential SalaryKind = "confidencial"
	SalaryUnparsed     SalaryKind = "na"
	SalarySingle       SalaryKind = "single"
	SalaryRange        SalaryKind = "range"
)

// Salary is the canonical form of a free-text salary field: either one of the
// two sentinels or a parsed amount/range with an optional currency tag.
type Salary struct {
	Kind     SalaryKind `json:"kind"`
	Min      float64    `json:"min,omitempty"`
	Max      float64    `json:"max,omitempty"`
	Currency string     `json:"currency,omitempty"`
}

// Display renders the salary the way listings show it. The output is stable
// under re-normalization: feeding it back through the salary parser yields the
// same Salary.
func (s Salary) Display() string {
	switch s.Kind {
	case SalaryConfidential:
		return "Confidencial"
	case SalarySingle:
		return strings.TrimSpace(formatAmount(s.Min) + " " + s.Currency)
	case SalaryRange:
		return strings.TrimSpace(formatAmount(s.Min) + " - " + formatAmount(s.Max) + " " + s.Currency)
	default:
		return "N/A"
	}
}

// formatAmount uses a comma decimal separator so the parser reads it back as
// a decimal rather than a thousands group.
func formatAmount(v float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(v, 'f', -1, 64), ".", ",")
}

// RawJob is what a site adapter extracts from one listing container, before
// any normalization. Free-text fields stay as found on the page; only
// SourceURL is mandatory (it is the dedup key downstream).
type RawJob struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Description string     `json:"description"`
	Salary      string     `json:"salary"`
	Experience  string     `json:"experience"`
	Modality    string     `json:"modality"`
	Location    string     `json:"location"`
	Posted      string     `json:"posted"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	SourceURL   string     `json:"source_url"`
	SourceName  string     `json:"source_name"`
	Country     string     `json:"country"`
}

// CanonicalJob is a RawJob after normalization: fixed vocabularies for
// modality/experience, a typed salary, resolved absolute dates.
type CanonicalJob struct {
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Description  string     `json:"description"`
	Salary       Salary     `json:"salary"`
	Modality     string     `json:"modality"`
	Experience   string     `json:"experience"`
	Location     string     `json:"location"`
	CreationDate *time.Time `json:"creation_date,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	SourceURL    string     `json:"source_url"`
	SourceName   string     `json:"source_name"`
	Country      string     `json:"country"`
}

// StoredJob is a CanonicalJob plus the identity and audit timestamps the
// database assigns on upsert.
type StoredJob struct {
	ID int64 `json:"id"`
	CanonicalJob
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
