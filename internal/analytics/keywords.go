package analytics

import "strings"

// Keyword tables used by the priority rule engine, tag extraction, and the
// lexicon sentiment estimate. Priority tiers are evaluated in the order
// declared here; the first tier with a match wins.

var criticalKeywords = []string{"crash", "broken", "cannot", "not working"}

var highKeywords = []string{"urgent", "asap", "important"}

var mediumKeywords = []string{"should", "could", "feature"}

// tagVocabularies maps token vocabularies to the tag emitted on a match.
// The tag is emitted, not the matched word.
var tagVocabularies = []struct {
	Tag   string
	Words []string
}{
	{
		Tag: "feature",
		Words: []string{
			"feature", "dashboard", "export", "report", "chart",
			"analytics", "insights", "search", "filter", "integration",
		},
	},
	{
		Tag: "bug",
		Words: []string{
			"bug", "error", "crash", "glitch", "broken", "freeze", "issue",
		},
	},
	{
		Tag: "ui",
		Words: []string{
			"ui", "design", "layout", "button", "color", "font", "theme", "menu",
		},
	},
}

var positiveWords = []string{
	"love", "great", "good", "amazing", "excellent", "awesome",
	"wonderful", "helpful", "fantastic", "perfect", "nice", "easy",
}

var negativeWords = []string{
	"terrible", "awful", "bad", "hate", "worst", "useless",
	"horrible", "poor", "annoying", "slow", "confusing", "frustrating",
}

func containsWord(words []string, token string) bool {
	for _, w := range words {
		if w == token {
			return true
		}
	}
	return false
}

func containsAnySubstring(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
