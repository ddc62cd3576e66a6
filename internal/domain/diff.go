package domain

import (
	"time"

	"github.com/google/uuid"
)

type ChangeType string

const (
	ChangeAdded    ChangeType = "ADDED"
	ChangeModified ChangeType = "MODIFIED"
	ChangeDeleted  ChangeType = "DELETED"
)

// DiffRecord is one detected content change for one article between two sync
// passes. Records are append-only: never mutated, never deleted.
type DiffRecord struct {
	ID            uuid.UUID
	StatuteID     uuid.UUID
	ArticleID     *uuid.UUID
	ChangeType    ChangeType
	Previous      string
	Current       string
	Summary       string
	IsCritical    bool
	EffectiveFrom time.Time
	DetectedAt    time.Time
}
