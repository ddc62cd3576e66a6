package registry

import (
	"context"
	"time"
)

// Client is what the sync orchestrator and sources see of the upstream registry.
type Client interface {
	// Search returns statutes whose name matches the query.
	Search(ctx context.Context, name string) ([]StatuteSummary, error)

	// Detail fetches the full article tree for one statute master number.
	Detail(ctx context.Context, masterID string) (*StatuteDetail, error)

	// RecentlyAmended lists statutes amended since the given date.
	RecentlyAmended(ctx context.Context, since time.Time) ([]StatuteSummary, error)

	// CatalogPage fetches one page of the full catalog. Pages are 1-based.
	CatalogPage(ctx context.Context, page, size int) (*CatalogPage, error)

	// PrecedentExists checks whether a case number is known to the registry.
	PrecedentExists(ctx context.Context, caseNo string) (bool, error)
}
