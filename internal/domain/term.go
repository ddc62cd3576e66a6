package domain

import "github.com/google/uuid"

// LegalTerm is a defined term extracted from article text by regex. Extraction
// is best-effort annotation only; Confidence tells consumers how much to trust
// it, and a missing term never means the statute does not define one.
type LegalTerm struct {
	StatuteID       uuid.UUID
	Term            string
	NormalizedTerm  string
	Definition      string
	SourceArticleNo string
	Confidence      float64
}
