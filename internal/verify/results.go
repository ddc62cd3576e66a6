package verify

import (
	"time"

	"github.com/hyeonlab/lawtrace/internal/domain"
)

// Status is the structured outcome of a verification call. Unknown statutes,
// unknown articles and malformed input are results, never errors.
type Status string

const (
	StatusVerified        Status = "VERIFIED"
	StatusMatch           Status = "MATCH"
	StatusPartialMatch    Status = "PARTIAL_MATCH"
	StatusMismatch        Status = "MISMATCH"
	StatusNotFound        Status = "NOT_FOUND"
	StatusArticleNotFound Status = "ARTICLE_NOT_FOUND"
	StatusInvalidInput    Status = "INVALID_INPUT"
	StatusOK              Status = "OK"
	StatusUndetermined    Status = "UNDETERMINED"
)

// WarnFutureChange flags diffs taking effect after the audited as-of date.
const WarnFutureChange = "FUTURE_CHANGE_DETECTED"

type AuditRequest struct {
	StatuteName string
	ArticleNo   string
	AsOf        time.Time
	ClaimedText string
}

type AuditResult struct {
	Status        Status              `json:"status"`
	StatuteName   string              `json:"statute_name,omitempty"`
	ArticleNo     string              `json:"article_no,omitempty"`
	CurrentText   string              `json:"current_text,omitempty"`
	Similarity    float64             `json:"similarity,omitempty"`
	Warnings      []string            `json:"warnings,omitempty"`
	FutureChanges []domain.DiffRecord `json:"future_changes,omitempty"`
}

type HierarchyResult struct {
	Status Status `json:"status"`
	Winner string `json:"winner,omitempty"`
	Basis  string `json:"basis,omitempty"`
	RankA  int    `json:"rank_a,omitempty"`
	RankB  int    `json:"rank_b,omitempty"`
	Note   string `json:"note,omitempty"`
}

type TimelineResult struct {
	Status      Status              `json:"status"`
	StatuteName string              `json:"statute_name,omitempty"`
	Diffs       []domain.DiffRecord `json:"diffs,omitempty"`
	Note        string              `json:"note,omitempty"`
}

type EnforcementResult struct {
	Status          Status               `json:"status"`
	StatuteName     string               `json:"statute_name,omitempty"`
	StatuteStatus   domain.StatuteStatus `json:"statute_status,omitempty"`
	EnforcementDate time.Time            `json:"enforcement_date"`
	Pending         []domain.DiffRecord  `json:"pending,omitempty"`
}

type PrecedentResult struct {
	Status Status `json:"status"`
	CaseNo string `json:"case_no,omitempty"`
	Exists bool   `json:"exists"`
}

type DailyDiffResult struct {
	Status Status              `json:"status"`
	Date   time.Time           `json:"date"`
	Diffs  []domain.DiffRecord `json:"diffs,omitempty"`
}
