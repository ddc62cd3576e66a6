// Package terms pulls defined terms ("X"란 …을 말한다) out of article text.
// This is a best-effort annotation layer over legal prose: results carry a
// confidence score and absence never means the statute defines nothing.
package terms

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/hyeonlab/lawtrace/internal/domain"
	"github.com/hyeonlab/lawtrace/internal/normalize"
)

var definitionPatterns = []struct {
	re         *regexp.Regexp
	confidence float64
}{
	// modern drafting style: "근로자"란 …를 말한다
	{regexp.MustCompile(`["“]([^"”]{1,40})["”]\s*(?:이란|란)\s*(.{2,200}?)(?:을|를)\s*말한다`), 0.9},
	// older style: "근로자"라 함은 …을 말한다
	{regexp.MustCompile(`["“]([^"”]{1,40})["”]\s*(?:이라|라)\s*함은\s*(.{2,200}?)(?:을|를)\s*말한다`), 0.8},
}

// Extract scans canonical article text for definition clauses.
func Extract(statuteID uuid.UUID, articleNo, content string) []domain.LegalTerm {
	var out []domain.LegalTerm
	seen := map[string]bool{}

	for _, p := range definitionPatterns {
		for _, m := range p.re.FindAllStringSubmatch(content, -1) {
			term := strings.TrimSpace(m[1])
			norm := normalize.StatuteName(term)
			if norm == "" || seen[norm] {
				continue
			}
			seen[norm] = true
			out = append(out, domain.LegalTerm{
				StatuteID:       statuteID,
				Term:            term,
				NormalizedTerm:  norm,
				Definition:      strings.TrimSpace(m[2]),
				SourceArticleNo: articleNo,
				Confidence:      p.confidence,
			})
		}
	}
	return out
}
