// Package normalize turns raw registry records into canonical, hashable text
// and owns the name/number folding shared by the sync and verification sides.
package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/hyeonlab/lawtrace/internal/registry"
)

// Chapter/section/part headings arrive in the same article slot as real
// articles. They carry no clause text and must never be stored.
var headingPattern = regexp.MustCompile(`^제\s*\d+\s*(편|장|절|관)`)

// IsArticle reports whether the raw record is a storable article: not a
// structural heading, and numbered with a numeric prefix.
func IsArticle(raw registry.RawArticle) bool {
	if headingPattern.MatchString(strings.TrimSpace(raw.Content)) {
		return false
	}
	return ArticleNo(raw.No) != ""
}

// CanonicalText flattens the paragraph/item/sub-item tree into one string by
// document-order concatenation with two-space indentation per depth. Identical
// structural input always yields an identical string; content hashing depends
// on that.
func CanonicalText(raw registry.RawArticle) string {
	var b strings.Builder

	writeLine(&b, 0, raw.Content)
	for _, para := range raw.Paragraphs {
		writeLine(&b, 1, para.Content)
		for _, item := range para.Items {
			writeLine(&b, 2, item.Content)
			for _, sub := range item.SubItems {
				writeLine(&b, 3, sub)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeLine(b *strings.Builder, depth int, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
	b.WriteString(text)
	b.WriteString("\n")
}

// ContentHash returns the sha256 hex digest of canonical article text.
func ContentHash(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
