// Package storage defines the persistence contract consumed by the sync
// orchestrator and the verification service. Store handles are passed in
// explicitly; there is no process-wide connection, so tests run isolated
// instances side by side.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hyeonlab/lawtrace/internal/domain"
)

var (
	ErrNotFound = errors.New("storage: not found")

	// ErrDuplicateStatute means an upsert would violate master-id uniqueness.
	// The registry's natural key was observed duplicated in the wild; the
	// store enforces it instead of assuming it.
	ErrDuplicateStatute = errors.New("storage: duplicate statute master id")
)

// Store is the downstream persistence contract: natural-key upserts for
// statutes and articles, append-only diff records, indexed lookups by
// normalized name, normalized article number and date range.
type Store interface {
	// UpsertStatute inserts or updates by MasterID. created reports whether a
	// new row was inserted.
	UpsertStatute(ctx context.Context, s *domain.Statute) (created bool, err error)
	StatuteByMasterID(ctx context.Context, masterID string) (*domain.Statute, error)
	StatutesByNormalizedName(ctx context.Context, normalizedName string) ([]domain.Statute, error)

	// UpsertArticle inserts or updates the current row keyed by
	// (StatuteID, NormalizedNo).
	UpsertArticle(ctx context.Context, a *domain.Article) (created bool, err error)
	CurrentArticle(ctx context.Context, statuteID uuid.UUID, normalizedNo string) (*domain.Article, error)
	ArticlesByStatute(ctx context.Context, statuteID uuid.UUID) ([]domain.Article, error)

	AppendDiff(ctx context.Context, d *domain.DiffRecord) error
	// DiffsByStatute returns records with EffectiveFrom in [from, to], ascending.
	DiffsByStatute(ctx context.Context, statuteID uuid.UUID, from, to time.Time) ([]domain.DiffRecord, error)
	// DiffsDetectedBetween returns records by detection instant, ascending.
	DiffsDetectedBetween(ctx context.Context, from, to time.Time) ([]domain.DiffRecord, error)

	ReplaceTerms(ctx context.Context, statuteID uuid.UUID, terms []domain.LegalTerm) error
	TermsByStatute(ctx context.Context, statuteID uuid.UUID) ([]domain.LegalTerm, error)

	SavePrecedent(ctx context.Context, p *domain.Precedent) error
	PrecedentExists(ctx context.Context, normalizedCaseNo string) (bool, error)

	Ping(ctx context.Context) error
	Close()
}
