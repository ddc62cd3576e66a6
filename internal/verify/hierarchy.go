package verify

import "strings"

// Hierarchy ranks, lex superior order. Unknown or unrecognized types sit below
// everything that is recognized.
const (
	rankConstitution = 1
	rankAct          = 2
	rankPresidential = 3
	rankMinisterial  = 4
	rankOrdinance    = 5
	rankAdminRule    = 6
	rankUnknown      = 7
)

var typeRanks = map[string]int{
	"헌법":   rankConstitution,
	"법률":   rankAct,
	"대통령령": rankPresidential,
	"총리령":  rankMinisterial,
	"부령":   rankMinisterial,
	"조례":   rankOrdinance,
	"행정규칙": rankAdminRule,
}

// rankOf maps a registry statute type to its hierarchy rank, falling back to
// a name-suffix guess (시행령/시행규칙) when the type is blank.
func rankOf(statuteType, name string) int {
	if r, ok := typeRanks[strings.TrimSpace(statuteType)]; ok {
		return r
	}
	switch {
	case strings.HasSuffix(name, "시행령"):
		return rankPresidential
	case strings.HasSuffix(name, "시행규칙"):
		return rankMinisterial
	}
	return rankUnknown
}
