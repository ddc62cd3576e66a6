package domain

import (
	"time"

	"github.com/google/uuid"
)

type StatuteStatus string

const (
	StatuteActive  StatuteStatus = "ACTIVE"
	StatutePending StatuteStatus = "PENDING"
	StatuteExpired StatuteStatus = "EXPIRED"
)

// Statute is one law/decree/rule tracked across sync passes. MasterID is the
// registry's master number and is the natural key: exactly one row per MasterID.
type Statute struct {
	ID               uuid.UUID
	MasterID         string
	Name             string
	NormalizedName   string
	StatuteType      string
	PromulgationDate time.Time
	EnforcementDate  time.Time
	Status           StatuteStatus
	Retired          bool
	Checksum         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DeriveStatus computes the status from the enforcement date. EXPIRED is never
// derived: it only happens on explicit retirement.
func DeriveStatus(enforcement time.Time, retired bool, today time.Time) StatuteStatus {
	if retired {
		return StatuteExpired
	}
	if enforcement.After(today) {
		return StatutePending
	}
	return StatuteActive
}

// EnforcedBy reports whether the statute was in force on the given date.
func (s *Statute) EnforcedBy(asOf time.Time) bool {
	return !s.EnforcementDate.After(asOf)
}
