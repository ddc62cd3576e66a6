package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hyeonlab/lawtrace/internal/normalize"
	"github.com/hyeonlab/lawtrace/internal/registry"
)

// Result is one statute summary off a source channel, or the error that stood
// in its place.
type Result struct {
	Summary registry.StatuteSummary
	Err     error
}

// Source feeds the per-statute pipeline. Three interchangeable implementations:
// a fixed priority name list, the recent-amendments window and the full
// paginated catalog.
type Source interface {
	Name() string
	Collect(ctx context.Context) (<-chan Result, error)
}

// PrioritySource resolves a fixed list of statute names through registry search.
type PrioritySource struct {
	client registry.Client
	names  []string
}

func NewPrioritySource(client registry.Client, names []string) *PrioritySource {
	return &PrioritySource{client: client, names: names}
}

func (s *PrioritySource) Name() string { return "priority" }

func (s *PrioritySource) Collect(ctx context.Context) (<-chan Result, error) {
	out := make(chan Result)
	go func() {
		defer close(out)
		for _, name := range s.names {
			if ctx.Err() != nil {
				return
			}
			summaries, err := s.client.Search(ctx, name)
			if err != nil {
				emit(ctx, out, Result{Err: fmt.Errorf("search %q: %w", name, err)})
				continue
			}
			match, ok := bestMatch(name, summaries)
			if !ok {
				emit(ctx, out, Result{Err: fmt.Errorf("no registry match for %q", name)})
				continue
			}
			emit(ctx, out, Result{Summary: match})
		}
	}()
	return out, nil
}

// bestMatch prefers an exact normalized-name hit, falling back to the
// registry's first result.
func bestMatch(name string, summaries []registry.StatuteSummary) (registry.StatuteSummary, bool) {
	if len(summaries) == 0 {
		return registry.StatuteSummary{}, false
	}
	want := normalize.StatuteName(name)
	for _, sum := range summaries {
		if normalize.StatuteName(sum.Name) == want {
			return sum, true
		}
	}
	return summaries[0], true
}

// RecentSource lists statutes amended within the last N days.
type RecentSource struct {
	client registry.Client
	days   int
}

func NewRecentSource(client registry.Client, days int) *RecentSource {
	if days <= 0 {
		days = 7
	}
	return &RecentSource{client: client, days: days}
}

func (s *RecentSource) Name() string { return "recent" }

func (s *RecentSource) Collect(ctx context.Context) (<-chan Result, error) {
	since := time.Now().AddDate(0, 0, -s.days)
	summaries, err := s.client.RecentlyAmended(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list recently amended: %w", err)
	}

	out := make(chan Result)
	go func() {
		defer close(out)
		for _, sum := range summaries {
			if !emit(ctx, out, Result{Summary: sum}) {
				return
			}
		}
	}()
	return out, nil
}

// CatalogSource walks the full paginated catalog until the reported total is
// exhausted or a page comes back empty.
type CatalogSource struct {
	client   registry.Client
	pageSize int
}

func NewCatalogSource(client registry.Client, pageSize int) *CatalogSource {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &CatalogSource{client: client, pageSize: pageSize}
}

func (s *CatalogSource) Name() string { return "catalog" }

func (s *CatalogSource) Collect(ctx context.Context) (<-chan Result, error) {
	out := make(chan Result)
	go func() {
		defer close(out)
		emitted := 0
		for page := 1; ; page++ {
			if ctx.Err() != nil {
				return
			}
			p, err := s.client.CatalogPage(ctx, page, s.pageSize)
			if err != nil {
				emit(ctx, out, Result{Err: fmt.Errorf("catalog page %d: %w", page, err)})
				return
			}
			if len(p.Statutes) == 0 {
				return
			}
			for _, sum := range p.Statutes {
				if !emit(ctx, out, Result{Summary: sum}) {
					return
				}
				emitted++
			}
			if p.Total > 0 && emitted >= p.Total {
				slog.Debug("catalog scan exhausted reported total", "total", p.Total)
				return
			}
		}
	}()
	return out, nil
}

func emit(ctx context.Context, out chan<- Result, r Result) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- r:
		return true
	}
}
