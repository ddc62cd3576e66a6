// Package verify answers time-aware queries against the snapshot the sync
// orchestrator builds. Reads may run concurrently with an in-flight sync:
// every query filters explicitly by enforcement/effective date instead of
// assuming a settled snapshot.
package verify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/hyeonlab/lawtrace/internal/domain"
	"github.com/hyeonlab/lawtrace/internal/normalize"
	"github.com/hyeonlab/lawtrace/internal/storage"
)

const (
	matchThreshold   = 0.8
	partialThreshold = 0.5

	resolveCacheTTL = 5 * time.Minute
)

// farFuture bounds open-ended "anything after as-of" diff queries.
var farFuture = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// PrecedentSource answers case-number existence against the upstream
// registry. The store is consulted first; upstream hits are written back so
// repeat checks stay local.
type PrecedentSource interface {
	PrecedentExists(ctx context.Context, caseNo string) (bool, error)
}

type Service struct {
	store      storage.Store
	precedents PrecedentSource
	cache      *gocache.Cache
	now        func() time.Time
}

type ServiceOption func(*Service)

// WithClock overrides the evaluation clock for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithPrecedentSource enables the registry fallback on precedent checks.
// Without it, checks answer from the store alone.
func WithPrecedentSource(src PrecedentSource) ServiceOption {
	return func(s *Service) {
		s.precedents = src
	}
}

func NewService(store storage.Store, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		cache: gocache.New(resolveCacheTTL, 2*resolveCacheTTL),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveStatute picks the active statute version with the maximal enforcement
// date not after asOf. Nil statute means NOT_FOUND.
func (s *Service) ResolveStatute(ctx context.Context, name string, asOf time.Time) (*domain.Statute, error) {
	norm := normalize.StatuteName(name)
	if norm == "" {
		return nil, nil
	}

	key := norm + "@" + asOf.Format("2006-01-02")
	if cached, ok := s.cache.Get(key); ok {
		st := cached.(domain.Statute)
		return &st, nil
	}

	candidates, err := s.store.StatutesByNormalizedName(ctx, norm)
	if err != nil {
		return nil, fmt.Errorf("lookup statute %q: %w", name, err)
	}

	var best *domain.Statute
	for i := range candidates {
		st := &candidates[i]
		if st.Status == domain.StatuteExpired || !st.EnforcedBy(asOf) {
			continue
		}
		if best == nil || st.EnforcementDate.After(best.EnforcementDate) {
			best = st
		}
	}
	if best == nil {
		return nil, nil
	}

	s.cache.Set(key, *best, gocache.DefaultExpiration)
	return best, nil
}

// ResolveArticle returns the article current at evaluation time. Nil means
// ARTICLE_NOT_FOUND; an emptied (deleted) article counts as not found.
func (s *Service) ResolveArticle(ctx context.Context, st *domain.Statute, articleNo string) (*domain.Article, error) {
	norm := normalize.ArticleNo(articleNo)
	if norm == "" {
		return nil, nil
	}

	article, err := s.store.CurrentArticle(ctx, st.ID, norm)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup article %s: %w", articleNo, err)
	}
	if article.Content == "" {
		return nil, nil
	}
	return article, nil
}

// Audit verifies one citation: statute name + article number + as-of date,
// optionally scoring claimed text against the stored canonical text.
func (s *Service) Audit(ctx context.Context, req AuditRequest) (*AuditResult, error) {
	if req.StatuteName == "" || req.ArticleNo == "" {
		return &AuditResult{Status: StatusInvalidInput, Warnings: []string{"statute name and article number are required"}}, nil
	}
	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = s.now()
	}

	st, err := s.ResolveStatute(ctx, req.StatuteName, asOf)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return &AuditResult{Status: StatusNotFound, StatuteName: req.StatuteName}, nil
	}

	article, err := s.ResolveArticle(ctx, st, req.ArticleNo)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return &AuditResult{Status: StatusArticleNotFound, StatuteName: st.Name, ArticleNo: req.ArticleNo}, nil
	}

	result := &AuditResult{
		Status:      StatusVerified,
		StatuteName: st.Name,
		ArticleNo:   article.ArticleNo,
		CurrentText: article.Content,
	}

	if req.ClaimedText != "" {
		result.Similarity = similarity(req.ClaimedText, article.Content)
		switch {
		case result.Similarity > matchThreshold:
			result.Status = StatusMatch
		case result.Similarity > partialThreshold:
			result.Status = StatusPartialMatch
			result.Warnings = append(result.Warnings, "claimed text deviates from the stored article text")
		default:
			result.Status = StatusMismatch
			result.Warnings = append(result.Warnings, "claimed text does not match the stored article text")
		}
	}

	future, err := s.store.DiffsByStatute(ctx, st.ID, asOf.Add(time.Nanosecond), farFuture)
	if err != nil {
		return nil, fmt.Errorf("lookup future diffs: %w", err)
	}
	if len(future) > 0 {
		result.FutureChanges = future
		result.Warnings = append(result.Warnings, WarnFutureChange)
	}

	return result, nil
}

// CompareHierarchy ranks two statutes: lex superior first, lex posterior at
// equal rank. Specific-vs-general (lex specialis) is intentionally not
// automated; equal rank and date comes back UNDETERMINED.
func (s *Service) CompareHierarchy(ctx context.Context, nameA, nameB string) (*HierarchyResult, error) {
	if nameA == "" || nameB == "" {
		return &HierarchyResult{Status: StatusInvalidInput, Note: "two statute names are required"}, nil
	}

	now := s.now()
	a, err := s.ResolveStatute(ctx, nameA, now)
	if err != nil {
		return nil, err
	}
	b, err := s.ResolveStatute(ctx, nameB, now)
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil {
		missing := nameA
		if a != nil {
			missing = nameB
		}
		return &HierarchyResult{Status: StatusNotFound, Note: fmt.Sprintf("statute %q not found", missing)}, nil
	}

	result := &HierarchyResult{
		Status: StatusOK,
		RankA:  rankOf(a.StatuteType, a.Name),
		RankB:  rankOf(b.StatuteType, b.Name),
	}

	switch {
	case result.RankA < result.RankB:
		result.Winner = a.Name
		result.Basis = "lex superior"
	case result.RankB < result.RankA:
		result.Winner = b.Name
		result.Basis = "lex superior"
	case a.EnforcementDate.After(b.EnforcementDate):
		result.Winner = a.Name
		result.Basis = "lex posterior"
	case b.EnforcementDate.After(a.EnforcementDate):
		result.Winner = b.Name
		result.Basis = "lex posterior"
	default:
		result.Status = StatusUndetermined
		result.Note = "equal rank and enforcement date; specific-vs-general precedence requires manual review"
	}
	return result, nil
}

// ForecastTimeline lists the statute's diff records effective within
// [start, end], ascending.
func (s *Service) ForecastTimeline(ctx context.Context, name string, start, end time.Time) (*TimelineResult, error) {
	if name == "" || start.IsZero() || end.IsZero() || end.Before(start) {
		return &TimelineResult{Status: StatusInvalidInput, Note: "need a statute name and an ordered date range"}, nil
	}

	st, err := s.ResolveStatute(ctx, name, end)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return &TimelineResult{Status: StatusNotFound, StatuteName: name}, nil
	}

	diffs, err := s.store.DiffsByStatute(ctx, st.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("lookup diff window: %w", err)
	}
	return &TimelineResult{Status: StatusOK, StatuteName: st.Name, Diffs: diffs}, nil
}

// DailyDiffs lists diffs detected on the given day, optionally filtered by a
// risk category name or "critical".
func (s *Service) DailyDiffs(ctx context.Context, day time.Time, category string) (*DailyDiffResult, error) {
	if day.IsZero() {
		day = s.now()
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	diffs, err := s.store.DiffsDetectedBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("lookup daily diffs: %w", err)
	}

	if category != "" {
		filtered := diffs[:0]
		for _, d := range diffs {
			if matchesCategory(d, category) {
				filtered = append(filtered, d)
			}
		}
		diffs = filtered
	}
	return &DailyDiffResult{Status: StatusOK, Date: dayStart, Diffs: diffs}, nil
}

func matchesCategory(d domain.DiffRecord, category string) bool {
	if category == "critical" {
		return d.IsCritical
	}
	return strings.Contains(strings.ToLower(d.Summary), strings.ToLower(category))
}

// CheckEnforcement reports a statute's current status, its enforcement date
// and any changes still pending.
func (s *Service) CheckEnforcement(ctx context.Context, name string) (*EnforcementResult, error) {
	if name == "" {
		return &EnforcementResult{Status: StatusInvalidInput}, nil
	}

	candidates, err := s.store.StatutesByNormalizedName(ctx, normalize.StatuteName(name))
	if err != nil {
		return nil, fmt.Errorf("lookup statute %q: %w", name, err)
	}
	if len(candidates) == 0 {
		return &EnforcementResult{Status: StatusNotFound, StatuteName: name}, nil
	}

	// Latest version wins here, pending or not: the caller is asking when the
	// statute takes (or took) effect.
	latest := candidates[len(candidates)-1]

	now := s.now()
	pending, err := s.store.DiffsByStatute(ctx, latest.ID, now.Add(time.Nanosecond), farFuture)
	if err != nil {
		return nil, fmt.Errorf("lookup pending diffs: %w", err)
	}

	return &EnforcementResult{
		Status:          StatusOK,
		StatuteName:     latest.Name,
		StatuteStatus:   latest.Status,
		EnforcementDate: latest.EnforcementDate,
		Pending:         pending,
	}, nil
}

// CheckPrecedent answers existence only; precedent text is never stored.
// Store misses fall through to the registry when a source is wired, and
// upstream hits are saved so the next check never leaves the store.
func (s *Service) CheckPrecedent(ctx context.Context, caseNo string) (*PrecedentResult, error) {
	norm := normalize.CaseNo(caseNo)
	if norm == "" {
		return &PrecedentResult{Status: StatusInvalidInput}, nil
	}

	exists, err := s.store.PrecedentExists(ctx, norm)
	if err != nil {
		return nil, fmt.Errorf("lookup precedent %q: %w", caseNo, err)
	}
	if !exists && s.precedents != nil {
		exists, err = s.precedents.PrecedentExists(ctx, norm)
		if err != nil {
			return nil, fmt.Errorf("check precedent %q upstream: %w", caseNo, err)
		}
		if exists {
			if err := s.store.SavePrecedent(ctx, &domain.Precedent{
				CaseNo:           caseNo,
				NormalizedCaseNo: norm,
				SeenAt:           s.now(),
			}); err != nil {
				return nil, fmt.Errorf("save precedent %q: %w", caseNo, err)
			}
		}
	}
	status := StatusOK
	if !exists {
		status = StatusNotFound
	}
	return &PrecedentResult{Status: status, CaseNo: caseNo, Exists: exists}, nil
}
