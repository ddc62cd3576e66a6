// Package diff compares two canonical texts of one article and classifies the
// change for the sync orchestrator.
package diff

import (
	"fmt"
	"strings"

	"github.com/hyeonlab/lawtrace/internal/domain"
)

// Record is the classified outcome of comparing one article's previous and
// current canonical content.
type Record struct {
	ChangeType domain.ChangeType
	Previous   string
	Current    string
	Summary    string
	IsCritical bool
}

// Compare classifies the change between prev (empty = article did not exist)
// and curr (blank = article removed).
func Compare(prev, curr string) Record {
	switch {
	case prev == "":
		return Record{
			ChangeType: domain.ChangeAdded,
			Current:    curr,
			Summary:    "newly created",
			IsCritical: true,
		}
	case strings.TrimSpace(curr) == "":
		return Record{
			ChangeType: domain.ChangeDeleted,
			Previous:   prev,
			Summary:    "removed",
			IsCritical: true,
		}
	case foldWhitespace(prev) == foldWhitespace(curr):
		return Record{
			ChangeType: domain.ChangeModified,
			Previous:   prev,
			Current:    curr,
			Summary:    "formatting only",
			IsCritical: false,
		}
	}

	rec := Record{
		ChangeType: domain.ChangeModified,
		Previous:   prev,
		Current:    curr,
	}

	var parts []string
	for _, p := range riskPatterns {
		if matches(p.re, prev).equal(matches(p.re, curr)) {
			continue
		}
		rec.IsCritical = true
		if p.valued {
			parts = append(parts, fmt.Sprintf("%s changed: %s → %s",
				p.category,
				renderValues(distinct(p.re, prev)),
				renderValues(distinct(p.re, curr))))
		} else {
			parts = append(parts, fmt.Sprintf("%s terms changed", p.category))
		}
	}

	if len(parts) > 0 {
		rec.Summary = strings.Join(parts, "; ")
	} else {
		rec.Summary = "partial content change"
	}
	return rec
}

func renderValues(vals []string) string {
	if len(vals) == 0 {
		return "(none)"
	}
	return strings.Join(vals, ", ")
}

func foldWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
