package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// StatuteName folds a statute name for lookup: whitespace, punctuation and
// symbols stripped, roman letters case-folded. "근로기준법 시행령" and
// "근로기준법시행령" resolve identically.
func StatuteName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

var articleNoPattern = regexp.MustCompile(`^제?\s*0*(\d+)\s*조?(?:\s*의\s*(\d+))?`)

// ArticleNo folds an article number into digit/suffix form: "제23조" → "23",
// "제23조의2" → "23의2", registry-padded "0023" → "23". Returns "" when the
// input has no numeric prefix.
func ArticleNo(no string) string {
	m := articleNoPattern.FindStringSubmatch(strings.TrimSpace(no))
	if m == nil || m[1] == "" {
		return ""
	}
	if m[2] != "" {
		return m[1] + "의" + m[2]
	}
	return m[1]
}

// CaseNo folds a precedent case number: spaces removed, roman letters upper-cased.
func CaseNo(no string) string {
	var b strings.Builder
	for _, r := range no {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
