// Package moderation provides the lexical content gate applied to
// donor-entered text before any money-moving action or persistence.

// Important notice: the denylist below and the test data contain slurs
// and offensive terms. They are required for the filter to work and are
// technical artifacts only; skip this file if you prefer not to read
// them.
package moderation

import "strings"

// denylist holds the disallowed terms, lowercase. Multi-word phrases are
// matched with their whitespace stripped in the no-space view.
var denylist = []string{
	"nigger", "nigga", "chink", "spic", "wetback", "kike", "fag", "faggot", "tranny", "retard", "retarded",
	"coon", "gook", "porchmonkey", "jigaboo", "zipperhead", "raghead", "sandnigger", "towelhead",
	"whitepower", "white supremacy", "heilhitler", "siegheil", "gas the jews", "kill all jews",
	"lynch", "monkey person", "go back to", "great replacement",
	"fuck", "motherfucker", "cunt",
}

// leet collapses common character-substitution obfuscations back to the
// letters they stand in for. Digits with no mapping are dropped entirely.
var leet = map[rune]rune{
	'0': 'o',
	'1': 'i',
	'!': 'i',
	'3': 'e',
	'4': 'a',
	'@': 'a',
	'$': 's',
	'5': 's',
	'7': 't',
	'+': 't',
}

func isWordRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// normalize produces the two views the matcher runs against: a spaced
// view where every run of non-alphanumeric characters collapses to a
// single space (padded with a leading and trailing space, so terms can
// be matched on word boundaries), and a no-space view with all
// whitespace removed (so terms split by inserted junk still surface).
func normalize(input string) (spaced, nospace string) {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range strings.ToLower(input) {
		if rep, ok := leet[r]; ok {
			b.WriteRune(rep)
			continue
		}
		if r >= '0' && r <= '9' {
			// Unmapped digit: drop it, matching the substitution pass.
			continue
		}
		b.WriteRune(r)
	}

	var sb strings.Builder
	lastSpace := true
	for _, r := range b.String() {
		if isWordRune(r) {
			sb.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			sb.WriteRune(' ')
			lastSpace = true
		}
	}
	spaced = " " + strings.TrimSpace(sb.String()) + " "
	nospace = strings.ReplaceAll(spaced, " ", "")
	return spaced, nospace
}

// IsOffensive reports whether text contains a denylisted term, after
// normalizing away case, leetspeak substitutions, and inserted
// punctuation. Pure predicate; callers decide whether to reject or to
// fall back to an anonymized placeholder.
func IsOffensive(text string) bool {
	if text == "" {
		return false
	}
	spaced, nospace := normalize(text)
	for _, term := range denylist {
		if strings.Contains(spaced, " "+term+" ") {
			return true
		}
		if strings.Contains(nospace, strings.ReplaceAll(term, " ", "")) {
			return true
		}
	}
	return false
}
