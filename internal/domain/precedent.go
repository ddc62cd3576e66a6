package domain

import "time"

// Precedent stores existence only: the verifier answers "does this case number
// exist", it never serves precedent text.
type Precedent struct {
	CaseNo           string
	NormalizedCaseNo string
	CourtName        string
	SeenAt           time.Time
}
