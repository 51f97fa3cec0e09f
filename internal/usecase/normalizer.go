package usecase

import (
	"strings"
	"unicode"
)

// synonymPairs maps Korean brand and line markers to canonical Latin tokens
// so "갤럭시 S24" and "galaxys24" land on the same matching key. Applied in
// order after lowercasing and whitespace stripping; longer patterns come
// first so they are not partially consumed by shorter overlapping ones
// (갤럭시버즈 before 갤럭시 and 버즈).
var synonymPairs = [][2]string{
	{"갤럭시버즈", "buds"},
	{"갤럭시", "galaxy"},
	{"에어팟", "airpods"},
	{"아이폰", "iphone"},
	{"맥북", "macbook"},
	{"버즈", "buds"},
	{"삼성", "samsung"},
	{"애플", "apple"},
	{"울트라", "ultra"},
	{"플러스", "plus"},
	{"프로", "pro"},
	{"맥스", "max"},
}

// Normalize canonicalizes a string for substring matching: lowercase, strip
// all whitespace, substitute brand synonyms. Deterministic and idempotent;
// both the query and the candidate field must pass through it before
// comparison. Empty input normalizes to ""; callers decide whether that
// means "match all" (listing) or "no results" (live search).
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	lowered := strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()

	for _, pair := range synonymPairs {
		out = strings.ReplaceAll(out, pair[0], pair[1])
	}
	return out
}

// MatchesNormalized reports whether the already-normalized query is a
// substring of the candidate after normalization. An empty normalized query
// matches everything (substring of "").
func MatchesNormalized(normalizedQuery, candidate string) bool {
	return strings.Contains(Normalize(candidate), normalizedQuery)
}
