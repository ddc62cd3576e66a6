package domain

import (
	"time"

	"github.com/google/uuid"
)

// Article is one numbered clause of a statute. Content is the canonical text
// produced by the normalizer; ContentHash is a sha256 hex over it. At most one
// row per (StatuteID, NormalizedNo) is current at any instant.
type Article struct {
	ID             uuid.UUID
	StatuteID      uuid.UUID
	ArticleNo      string
	NormalizedNo   string
	Title          string
	Content        string
	ContentHash    string
	EffectiveFrom  time.Time
	EffectiveUntil *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CurrentAt reports whether this row is the in-force version at the given instant.
func (a *Article) CurrentAt(at time.Time) bool {
	return a.EffectiveUntil == nil || a.EffectiveUntil.After(at)
}
