package diff

import (
	"regexp"
	"strings"
)

// Risk categories tracked for criticality. Legal edits touching money,
// deadlines or penalties are high-stakes; a change in the matched set for any
// category flags the diff as critical so consumers can triage without reading
// full texts.
type Category string

const (
	CategoryAmount      Category = "amount"
	CategoryDuration    Category = "duration"
	CategoryPenalty     Category = "penalty"
	CategoryTermination Category = "termination"
)

type riskPattern struct {
	category Category
	re       *regexp.Regexp
	// valued categories render "X changed: A → B" summaries from the
	// matched strings themselves
	valued bool
}

var riskPatterns = []riskPattern{
	{CategoryAmount, regexp.MustCompile(`\d[\d,]*\s*(?:억|천만|백만|만)?\s*원`), true},
	{CategoryDuration, regexp.MustCompile(`\d+\s*(?:개월|년|주|일)`), true},
	{CategoryPenalty, regexp.MustCompile(`징역|금고|벌금|과태료|과징금|구류|몰수|자격정지`), false},
	{CategoryTermination, regexp.MustCompile(`해고|해지|해제|계약\s*종료|퇴직`), false},
}

// matchSet is a multiset of pattern matches. Two texts differ in a category
// when their multisets differ, so "30일" appearing twice vs once still counts.
type matchSet map[string]int

func matches(re *regexp.Regexp, text string) matchSet {
	set := matchSet{}
	for _, m := range re.FindAllString(text, -1) {
		set[compactMatch(m)]++
	}
	return set
}

func compactMatch(m string) string {
	return strings.Join(strings.Fields(m), "")
}

func (s matchSet) equal(other matchSet) bool {
	if len(s) != len(other) {
		return false
	}
	for k, n := range s {
		if other[k] != n {
			return false
		}
	}
	return true
}

// distinct returns the multiset's keys in first-appearance order within text.
func distinct(re *regexp.Regexp, text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range re.FindAllString(text, -1) {
		c := compactMatch(m)
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
