// Package sync drives the fetch → normalize → diff → persist cycle across a
// statute universe, one statute at a time.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hyeonlab/lawtrace/internal/addenda"
	"github.com/hyeonlab/lawtrace/internal/diff"
	"github.com/hyeonlab/lawtrace/internal/domain"
	"github.com/hyeonlab/lawtrace/internal/normalize"
	"github.com/hyeonlab/lawtrace/internal/registry"
	"github.com/hyeonlab/lawtrace/internal/storage"
	"github.com/hyeonlab/lawtrace/internal/terms"
)

const (
	defaultDelay         = 500 * time.Millisecond
	defaultProgressEvery = 50
)

// Orchestrator runs a sync pass. It is strictly sequential: one statute's
// cycle completes before the next begins, with a politeness delay in between.
// Concurrent runs against the same store must be serialized externally.
type Orchestrator struct {
	client        registry.Client
	store         storage.Store
	delay         time.Duration
	progressEvery int
	now           func() time.Time
}

type Option func(*Orchestrator)

// WithDelay sets the inter-statute throttle delay.
func WithDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.delay = d
	}
}

// WithProgressEvery sets how many statutes pass between progress log lines.
func WithProgressEvery(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.progressEvery = n
		}
	}
}

// WithClock overrides the time source. Tests pin "today" with it.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

func NewOrchestrator(client registry.Client, store storage.Store, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:        client,
		store:         store,
		delay:         defaultDelay,
		progressEvery: defaultProgressEvery,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run drains the source and syncs each statute. Cancellation is honored
// between statute iterations, never mid-fetch.
func (o *Orchestrator) Run(ctx context.Context, source Source) (*Report, error) {
	start := o.now()
	report := &Report{Source: source.Name(), StartedAt: start}

	slog.Info("🛫 Starting sync run", "source", source.Name(), "delay", o.delay)

	results, err := source.Collect(ctx)
	if err != nil {
		return report, fmt.Errorf("collect statute list: %w", err)
	}

	var summaries []registry.StatuteSummary
	for res := range results {
		if res.Err != nil {
			slog.Error("Error collecting statute", "error", res.Err, "source", source.Name())
			report.Errored++
			continue
		}
		summaries = append(summaries, res.Summary)
	}
	report.Total = len(summaries) + report.Errored

	for i, sum := range summaries {
		if err := ctx.Err(); err != nil {
			report.Duration = o.now().Sub(start)
			return report, err
		}
		if i > 0 && o.delay > 0 {
			if err := sleep(ctx, o.delay); err != nil {
				report.Duration = o.now().Sub(start)
				return report, err
			}
		}

		if err := o.syncOne(ctx, sum, report); err != nil {
			slog.Error("Statute sync failed, skipping",
				"error", err,
				"master_id", sum.MasterID,
				"name", sum.Name,
			)
			report.Errored++
		}

		if (i+1)%o.progressEvery == 0 {
			slog.Info("Sync progress",
				"source", source.Name(),
				"pct", fmt.Sprintf("%.1f", float64(i+1)/float64(len(summaries))*100),
				"processed", i+1,
				"added", report.Added,
				"updated", report.Updated,
				"diffed", report.Diffed,
				"errors", report.Errored,
			)
		}
	}

	report.Duration = o.now().Sub(start)
	slog.Info("Sync run completed",
		"source", source.Name(),
		"duration", report.Duration,
		"total", report.Total,
		"added", report.Added,
		"updated", report.Updated,
		"unchanged", report.Unchanged,
		"diffed", report.Diffed,
		"skipped", report.Skipped,
		"errors", report.Errored,
		"warnings", len(report.Warnings),
	)
	return report, nil
}

// syncOne runs the per-statute contract: fetch detail, upsert the statute,
// normalize and diff every article, record deletions, refresh term annotations.
func (o *Orchestrator) syncOne(ctx context.Context, sum registry.StatuteSummary, report *Report) error {
	detail, err := o.client.Detail(ctx, sum.MasterID)
	if err != nil {
		return fmt.Errorf("fetch detail: %w", err)
	}

	today := o.now()
	normName := normalize.StatuteName(detail.Name)
	checksum := statuteChecksum(detail)

	// Same name under a different master number usually means the registry
	// handed out a duplicate-looking record. Non-fatal, but worth surfacing.
	if twins, err := o.store.StatutesByNormalizedName(ctx, normName); err == nil {
		for _, twin := range twins {
			if twin.MasterID != detail.MasterID && twin.EnforcementDate.Equal(detail.EnforcementDate) {
				report.warn(fmt.Sprintf("statute %q: master id %s duplicates %s", detail.Name, detail.MasterID, twin.MasterID))
			}
		}
	}

	existing, err := o.store.StatuteByMasterID(ctx, detail.MasterID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("load statute: %w", err)
	}

	status := domain.DeriveStatus(detail.EnforcementDate, detail.Abolished, today)
	if existing != nil && existing.Checksum == checksum && existing.Status == status {
		// Nothing upstream changed; rerunning must leave the store untouched.
		report.Unchanged++
		return nil
	}

	parsed := addenda.Parse(detail.AddendaText, detail.PromulgationDate)
	for _, cond := range parsed.Conditions {
		report.warn(fmt.Sprintf("statute %q: effective date delegated (%s)", detail.Name, cond))
	}

	effectiveFrom := detail.EnforcementDate
	if effectiveFrom.IsZero() {
		effectiveFrom = today
	}
	if parsed.EffectiveDate != nil && parsed.EffectiveDate.After(today) {
		// Forward-looking change: diffs carry the future date so audits can
		// flag upcoming amendments.
		effectiveFrom = *parsed.EffectiveDate
	}

	st := &domain.Statute{
		MasterID:         detail.MasterID,
		Name:             detail.Name,
		NormalizedName:   normName,
		StatuteType:      detail.StatuteType,
		PromulgationDate: detail.PromulgationDate,
		EnforcementDate:  detail.EnforcementDate,
		Status:           status,
		Retired:          detail.Abolished,
		Checksum:         checksum,
	}
	created, err := o.store.UpsertStatute(ctx, st)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateStatute) {
			report.warn(fmt.Sprintf("statute %q: rejected duplicate master id %s", detail.Name, detail.MasterID))
		}
		return fmt.Errorf("upsert statute: %w", err)
	}
	if created {
		report.Added++
	} else {
		report.Updated++
	}

	seen := make(map[string]bool)
	var extracted []domain.LegalTerm
	for _, raw := range detail.Articles {
		if !normalize.IsArticle(raw) {
			report.Skipped++
			continue
		}

		no := normalize.ArticleNo(raw.No)
		canonical := normalize.CanonicalText(raw)
		hash := normalize.ContentHash(canonical)
		seen[no] = true
		extracted = append(extracted, terms.Extract(st.ID, displayArticleNo(no), canonical)...)

		prev, err := o.store.CurrentArticle(ctx, st.ID, no)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("load article %s: %w", no, err)
		}

		prevContent := ""
		if prev != nil {
			if prev.ContentHash == hash {
				continue
			}
			prevContent = prev.Content
		}

		rec := diff.Compare(prevContent, canonical)
		article := &domain.Article{
			StatuteID:     st.ID,
			ArticleNo:     displayArticleNo(no),
			NormalizedNo:  no,
			Title:         raw.Title,
			Content:       canonical,
			ContentHash:   hash,
			EffectiveFrom: effectiveFrom,
		}
		if _, err := o.store.UpsertArticle(ctx, article); err != nil {
			return fmt.Errorf("upsert article %s: %w", no, err)
		}
		if err := o.appendDiff(ctx, st, article, rec, effectiveFrom, today); err != nil {
			return err
		}
		report.Diffed++
	}

	// Articles gone from the feed stay in the store with emptied content and a
	// DELETED record, preserving history.
	stored, err := o.store.ArticlesByStatute(ctx, st.ID)
	if err != nil {
		return fmt.Errorf("list stored articles: %w", err)
	}
	for _, a := range stored {
		if seen[a.NormalizedNo] || a.Content == "" || !a.CurrentAt(today) {
			continue
		}
		rec := diff.Compare(a.Content, "")
		a.Content = ""
		a.ContentHash = normalize.ContentHash("")
		a.EffectiveFrom = effectiveFrom
		if _, err := o.store.UpsertArticle(ctx, &a); err != nil {
			return fmt.Errorf("empty deleted article %s: %w", a.NormalizedNo, err)
		}
		if err := o.appendDiff(ctx, st, &a, rec, effectiveFrom, today); err != nil {
			return err
		}
		report.Diffed++
	}

	if len(extracted) > 0 {
		if err := o.store.ReplaceTerms(ctx, st.ID, extracted); err != nil {
			return fmt.Errorf("save terms: %w", err)
		}
	}

	return nil
}

func (o *Orchestrator) appendDiff(ctx context.Context, st *domain.Statute, a *domain.Article, rec diff.Record, effectiveFrom, detectedAt time.Time) error {
	d := &domain.DiffRecord{
		StatuteID:     st.ID,
		ArticleID:     &a.ID,
		ChangeType:    rec.ChangeType,
		Previous:      rec.Previous,
		Current:       rec.Current,
		Summary:       rec.Summary,
		IsCritical:    rec.IsCritical,
		EffectiveFrom: effectiveFrom,
		DetectedAt:    detectedAt,
	}
	if err := o.store.AppendDiff(ctx, d); err != nil {
		return fmt.Errorf("append diff for article %s: %w", a.NormalizedNo, err)
	}
	return nil
}

// statuteChecksum fingerprints the whole fetched detail so an unchanged
// statute can be skipped wholesale. Addenda text is part of the fingerprint:
// a delegated commencement date later fixed arrives as an addenda-only
// amendment and must not be skipped.
func statuteChecksum(detail *registry.StatuteDetail) string {
	var b strings.Builder
	b.WriteString(detail.Name)
	b.WriteString("|")
	b.WriteString(detail.EnforcementDate.Format("20060102"))
	b.WriteString("|")
	b.WriteString(detail.AddendaText)
	for _, raw := range detail.Articles {
		if !normalize.IsArticle(raw) {
			continue
		}
		b.WriteString("|")
		b.WriteString(normalize.ArticleNo(raw.No))
		b.WriteString("=")
		b.WriteString(normalize.ContentHash(normalize.CanonicalText(raw)))
	}
	return normalize.ContentHash(b.String())
}

// displayArticleNo renders the canonical display form from the normalized
// number: "23의2" → "제23조의2".
func displayArticleNo(normalized string) string {
	if normalized == "" {
		return ""
	}
	base, suffix, found := strings.Cut(normalized, "의")
	if found {
		return "제" + base + "조의" + suffix
	}
	return "제" + base + "조"
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
