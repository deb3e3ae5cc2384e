// Package textutil resolves free-text language names against the
// judge's compiler list.
package textutil

import (
	"fmt"
	"strings"

	"acmcli/lib/judge"

	"github.com/antzucaro/matchr"
)

// common short names expanded before matching against compiler labels
var languageAliases = map[string]string{
	"c":       "c11",
	"c++":     "c++14",
	"python":  "python 3",
	"python2": "python 2.7",
	"python3": "python 3",
}

// ResolveLanguage maps a user-supplied language name to a compiler id:
// the name is lowercased, expanded through the alias table, then matched
// as a substring of each compiler description (case-insensitive, first
// hit wins). On no match the NotFoundError includes the closest
// description by edit distance as a hint.
func ResolveLanguage(name string, languages []judge.Language) (judge.Language, error) {
	needle := strings.ToLower(name)
	if alias, ok := languageAliases[needle]; ok {
		needle = alias
	}

	for _, lang := range languages {
		if strings.Contains(strings.ToLower(lang.Description), needle) {
			return lang, nil
		}
	}

	notFound := judge.NotFoundError{Kind: "language", ID: name}
	if suggestion := closestDescription(needle, languages); suggestion != "" {
		return judge.Language{}, fmt.Errorf("%w (did you mean %q?)", notFound, suggestion)
	}
	return judge.Language{}, notFound
}

func closestDescription(needle string, languages []judge.Language) string {
	best := ""
	bestDistance := -1
	for _, lang := range languages {
		d := matchr.Levenshtein(needle, strings.ToLower(lang.Description))
		if bestDistance < 0 || d < bestDistance {
			best = lang.Description
			bestDistance = d
		}
	}
	return best
}
