// Package in_mem keeps the whole snapshot in maps behind a RWMutex. It backs
// tests and small local runs; semantics mirror the Postgres store, including
// master-id uniqueness and the single-current-article rule.
package in_mem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hyeonlab/lawtrace/internal/domain"
	"github.com/hyeonlab/lawtrace/internal/storage"
)

type Store struct {
	mu           sync.RWMutex
	statutes     map[string]*domain.Statute // keyed by MasterID
	statutesByID map[uuid.UUID]*domain.Statute
	articles     map[uuid.UUID]map[string]*domain.Article // statuteID → normalizedNo
	diffs        []domain.DiffRecord
	terms        map[uuid.UUID][]domain.LegalTerm
	precedents   map[string]domain.Precedent
}

func NewStore() *Store {
	return &Store{
		statutes:     make(map[string]*domain.Statute),
		statutesByID: make(map[uuid.UUID]*domain.Statute),
		articles:     make(map[uuid.UUID]map[string]*domain.Article),
		terms:        make(map[uuid.UUID][]domain.LegalTerm),
		precedents:   make(map[string]domain.Precedent),
	}
}

func (s *Store) UpsertStatute(ctx context.Context, st *domain.Statute) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if existing, ok := s.statutes[st.MasterID]; ok {
		st.ID = existing.ID
		st.CreatedAt = existing.CreatedAt
		st.UpdatedAt = now
		cp := *st
		s.statutes[st.MasterID] = &cp
		s.statutesByID[st.ID] = &cp
		return false, nil
	}

	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	st.CreatedAt = now
	st.UpdatedAt = now
	cp := *st
	s.statutes[st.MasterID] = &cp
	s.statutesByID[st.ID] = &cp
	return true, nil
}

func (s *Store) StatuteByMasterID(ctx context.Context, masterID string) (*domain.Statute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.statutes[masterID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (s *Store) StatutesByNormalizedName(ctx context.Context, normalizedName string) ([]domain.Statute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Statute
	for _, st := range s.statutes {
		if st.NormalizedName == normalizedName {
			out = append(out, *st)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EnforcementDate.Before(out[j].EnforcementDate)
	})
	return out, nil
}

func (s *Store) UpsertArticle(ctx context.Context, a *domain.Article) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byNo, ok := s.articles[a.StatuteID]
	if !ok {
		byNo = make(map[string]*domain.Article)
		s.articles[a.StatuteID] = byNo
	}

	now := time.Now()
	if existing, ok := byNo[a.NormalizedNo]; ok {
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
		a.UpdatedAt = now
		cp := *a
		byNo[a.NormalizedNo] = &cp
		return false, nil
	}

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	cp := *a
	byNo[a.NormalizedNo] = &cp
	return true, nil
}

func (s *Store) CurrentArticle(ctx context.Context, statuteID uuid.UUID, normalizedNo string) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[statuteID][normalizedNo]
	if !ok || !a.CurrentAt(time.Now()) {
		return nil, storage.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *Store) ArticlesByStatute(ctx context.Context, statuteID uuid.UUID) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Article
	for _, a := range s.articles[statuteID] {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NormalizedNo < out[j].NormalizedNo })
	return out, nil
}

func (s *Store) AppendDiff(ctx context.Context, d *domain.DiffRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	s.diffs = append(s.diffs, *d)
	return nil
}

func (s *Store) DiffsByStatute(ctx context.Context, statuteID uuid.UUID, from, to time.Time) ([]domain.DiffRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.DiffRecord
	for _, d := range s.diffs {
		if d.StatuteID != statuteID {
			continue
		}
		if d.EffectiveFrom.Before(from) || d.EffectiveFrom.After(to) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EffectiveFrom.Before(out[j].EffectiveFrom) })
	return out, nil
}

func (s *Store) DiffsDetectedBetween(ctx context.Context, from, to time.Time) ([]domain.DiffRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.DiffRecord
	for _, d := range s.diffs {
		if d.DetectedAt.Before(from) || d.DetectedAt.After(to) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DetectedAt.Before(out[j].DetectedAt) })
	return out, nil
}

func (s *Store) ReplaceTerms(ctx context.Context, statuteID uuid.UUID, terms []domain.LegalTerm) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.terms[statuteID] = append([]domain.LegalTerm(nil), terms...)
	return nil
}

func (s *Store) TermsByStatute(ctx context.Context, statuteID uuid.UUID) ([]domain.LegalTerm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.LegalTerm(nil), s.terms[statuteID]...), nil
}

func (s *Store) SavePrecedent(ctx context.Context, p *domain.Precedent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.precedents[p.NormalizedCaseNo] = *p
	return nil
}

func (s *Store) PrecedentExists(ctx context.Context, normalizedCaseNo string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.precedents[normalizedCaseNo]
	return ok, nil
}

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) Close() {}
