package voice

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/Harsh7114/Inventory-Tracker/internal/inventory"
)

const (
	suggestPhoneticThreshold = 0.70
	suggestFuzzyThreshold    = 0.85
)

// Suggest returns the inventory item name closest to the spoken name, for
// use in a "did you mean" message when resolution finds no match. It does
// not participate in resolution itself.
//
// Candidates that share a Double Metaphone code with the spoken name are
// ranked by Jaro-Winkler similarity and accepted above 0.70; without a
// phonetic overlap a stricter 0.85 similarity is required. Returns the empty
// string when nothing is convincingly close.
func Suggest(name string, items []inventory.Item) string {
	spoken := strings.ToLower(strings.TrimSpace(name))
	if spoken == "" || len(items) == 0 {
		return ""
	}

	spokenPrimary, spokenSecondary := matchr.DoubleMetaphone(spoken)

	var (
		bestName     string
		bestScore    float64
		bestPhonetic bool
	)
	for _, it := range items {
		candidate := strings.ToLower(strings.TrimSpace(it.Name))
		if candidate == "" {
			continue
		}

		score := bestTokenScore(spoken, candidate)
		phonetic := phoneticOverlap(spokenPrimary, spokenSecondary, candidate)

		switch {
		case phonetic && score >= suggestPhoneticThreshold:
			if !bestPhonetic || score > bestScore {
				bestName, bestScore, bestPhonetic = it.Name, score, true
			}
		case !phonetic && !bestPhonetic && score >= suggestFuzzyThreshold && score > bestScore:
			bestName, bestScore = it.Name, score
		}
	}
	return bestName
}

// bestTokenScore computes the highest Jaro-Winkler similarity between the
// spoken name and the candidate, comparing the full strings and each
// candidate token individually (item names may be multi-word, spoken names
// are single tokens).
func bestTokenScore(spoken, candidate string) float64 {
	score := matchr.JaroWinkler(spoken, candidate, false)
	for _, token := range strings.Fields(candidate) {
		if s := matchr.JaroWinkler(spoken, token, false); s > score {
			score = s
		}
	}
	return score
}

// phoneticOverlap reports whether any token of candidate shares a Double
// Metaphone code with the spoken name.
func phoneticOverlap(spokenPrimary, spokenSecondary, candidate string) bool {
	for _, token := range strings.Fields(candidate) {
		p, s := matchr.DoubleMetaphone(token)
		if p != "" && (p == spokenPrimary || p == spokenSecondary) {
			return true
		}
		if s != "" && (s == spokenPrimary || s == spokenSecondary) {
			return true
		}
	}
	return false
}
