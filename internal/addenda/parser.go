// Package addenda parses a statute's trailing commencement clause (부칙) into a
// concrete effective date or a delegation condition.
package addenda

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Result is the parsed commencement clause. EffectiveDate is nil when the
// clause delegates the date to a subordinate decree; Conditions then records
// the delegation phrase for human review.
type Result struct {
	EffectiveDate   *time.Time
	HasTransitional bool
	Conditions      []string
}

var (
	absolutePattern   = regexp.MustCompile(`(\d{4})\s*년\s*(\d{1,2})\s*월\s*(\d{1,2})\s*일\s*부터\s*시행`)
	relativePattern   = regexp.MustCompile(`공포\s*후\s*(\d+)\s*(개월|년)\s*이?\s*경과한\s*날\s*부터\s*시행`)
	promulPattern     = regexp.MustCompile(`공포\s*한?\s*날\s*부터\s*시행`)
	delegationPattern = regexp.MustCompile(`(대통령령|총리령|부령|조례|규칙)\s*(?:으로|로|에서)\s*정하는\s*날\s*부터\s*시행`)
	transitionalVocab = regexp.MustCompile(`경과조치|종전의\s*규정|종전\s*규정|이\s*법\s*시행\s*당시`)
)

// Parse resolves the clause against the promulgation date. Resolution order,
// first match wins: absolute date, relative offset from promulgation, effective
// on promulgation day, delegation to subordinate decree.
func Parse(text string, promulgated time.Time) Result {
	res := Result{
		HasTransitional: transitionalVocab.MatchString(text),
	}

	if m := absolutePattern.FindStringSubmatch(text); m != nil {
		if t, err := time.Parse("2006-1-2", fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])); err == nil {
			res.EffectiveDate = &t
			return res
		}
	}

	if m := relativePattern.FindStringSubmatch(text); m != nil {
		n := atoi(m[1])
		var t time.Time
		if m[2] == "년" {
			t = promulgated.AddDate(n, 0, 0)
		} else {
			t = promulgated.AddDate(0, n, 0)
		}
		res.EffectiveDate = &t
		return res
	}

	if promulPattern.MatchString(text) {
		t := promulgated
		res.EffectiveDate = &t
		return res
	}

	if m := delegationPattern.FindString(text); m != "" {
		res.Conditions = append(res.Conditions, strings.TrimSpace(m))
	}

	return res
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
