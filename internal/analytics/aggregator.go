// Pure, stateless aggregation over in-memory feedback and NPS records.
// No I/O happens here; callers fetch the records and hand them in.
package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/growthhub-io/growthhub/backend/internal/models"
)

// NPS buckets.
const (
	NPSPromoter  = "promoter"
	NPSPassive   = "passive"
	NPSDetractor = "detractor"
)

// DefaultCategory labels records submitted without a category.
const DefaultCategory = "General"

// Static values reported until response tracking, resolution workflows, and
// per-category sentiment bucketing produce real numbers. Callers should not
// treat these as measurements.
const (
	placeholderNPSScore       = 0.0
	placeholderResponseRate   = 0.68
	placeholderResolutionRate = 0.82
	placeholderRatingDelta    = 0.0
	placeholderVolumeDelta    = 0.0

	placeholderPositiveShare = 0.60
	placeholderNeutralShare  = 0.30
	placeholderNegativeShare = 0.10
)

// Sentiment bucket thresholds: scores above the positive threshold count as
// positive, below its negation as negative, everything between as neutral.
const sentimentThreshold = 0.1

const themeLimit = 5

type OverviewMetrics struct {
	TotalCount       int     `json:"total_count"`
	AverageRating    float64 `json:"average_rating"`
	AverageSentiment float64 `json:"average_sentiment"`
	NPSScore         float64 `json:"nps_score"`
	ResponseRate     float64 `json:"response_rate"`
	ResolutionRate   float64 `json:"resolution_rate"`
	RatingDelta      float64 `json:"rating_delta"`
	VolumeDelta      float64 `json:"volume_delta"`
}

type CategoryRollup struct {
	Category         string  `json:"category"`
	Count            int     `json:"count"`
	AverageRating    float64 `json:"average_rating"`
	AverageSentiment float64 `json:"average_sentiment"`
	PositiveShare    float64 `json:"positive_share"`
	NeutralShare     float64 `json:"neutral_share"`
	NegativeShare    float64 `json:"negative_share"`
}

type SentimentDistribution struct {
	Overall       float64 `json:"overall"`
	PositiveShare float64 `json:"positive_share"`
	NeutralShare  float64 `json:"neutral_share"`
	NegativeShare float64 `json:"negative_share"`
	SampleSize    int     `json:"sample_size"`
}

// NPSSummary holds promoter/passive/detractor counts and the aggregate
// score. Score is only meaningful when Total > 0; with no responses it stays
// 0 and callers should treat it as undefined.
type NPSSummary struct {
	Promoters  int     `json:"promoters"`
	Passives   int     `json:"passives"`
	Detractors int     `json:"detractors"`
	Total      int     `json:"total"`
	Score      float64 `json:"score"`
}

type ActionItem struct {
	Category       string `json:"category"`
	Count          int    `json:"count"`
	Recommendation string `json:"recommendation"`
}

// ClassifyPriority matches the message against the fixed keyword tiers in
// strict precedence order: critical, then high, then medium, defaulting to
// low. Matching is case-insensitive substring search; once a tier matches,
// later tiers are not considered. The category argument carries the
// submission's feedback type, which can raise the tier on its own.
func ClassifyPriority(message, category string) string {
	m := strings.ToLower(message)

	if containsAnySubstring(m, criticalKeywords) {
		return models.PriorityCritical
	}
	if containsAnySubstring(m, highKeywords) || category == models.FeedbackTypeBugReport {
		return models.PriorityHigh
	}
	if containsAnySubstring(m, mediumKeywords) || category == models.FeedbackTypeImprovement {
		return models.PriorityMedium
	}
	return models.PriorityLow
}

// ExtractTags tokenizes the message on whitespace (case-folded) and checks
// each token for membership in the tag vocabularies, emitting each matching
// vocabulary's tag once. A message with no matching tokens yields an empty
// set.
func ExtractTags(message string) models.StringArray {
	seen := make(map[string]bool)
	tags := models.StringArray{}

	for _, token := range tokenize(message) {
		for _, vocab := range tagVocabularies {
			if !seen[vocab.Tag] && containsWord(vocab.Words, token) {
				seen[vocab.Tag] = true
				tags = append(tags, vocab.Tag)
			}
		}
	}

	return tags
}

// EstimateSentiment is a bag-of-words polarity score: positive-word count
// minus negative-word count, normalized by token count and clamped to
// [-1, 1]. Empty and no-match messages score 0.
func EstimateSentiment(message string) float64 {
	tokens := tokenize(message)
	if len(tokens) == 0 {
		return 0
	}

	score := 0
	for _, token := range tokens {
		if containsWord(positiveWords, token) {
			score++
		} else if containsWord(negativeWords, token) {
			score--
		}
	}

	normalized := float64(score) / float64(len(tokens))
	if normalized > 1 {
		return 1
	}
	if normalized < -1 {
		return -1
	}
	return normalized
}

// ClassifyNPS buckets a 0-10 score: promoter at 9 or above, passive at 7-8,
// detractor at 6 or below.
func ClassifyNPS(score int) string {
	switch {
	case score >= 9:
		return NPSPromoter
	case score >= 7:
		return NPSPassive
	default:
		return NPSDetractor
	}
}

// SummarizeNPS counts buckets and computes the aggregate score
// (promoters - detractors) / total * 100. With zero responses the score is
// left at 0 rather than dividing.
func SummarizeNPS(records []models.NPSRecord) NPSSummary {
	var s NPSSummary
	for _, r := range records {
		switch ClassifyNPS(r.Score) {
		case NPSPromoter:
			s.Promoters++
		case NPSPassive:
			s.Passives++
		default:
			s.Detractors++
		}
	}

	s.Total = len(records)
	if s.Total > 0 {
		s.Score = float64(s.Promoters-s.Detractors) / float64(s.Total) * 100
	}
	return s
}

// ComputeOverview returns the headline metrics. Mean rating and mean
// sentiment only average the records that carry a value, with zero-count
// divisions guarded to 0. The remaining fields are placeholder constants.
func ComputeOverview(records []models.FeedbackRecord) OverviewMetrics {
	m := OverviewMetrics{
		TotalCount:     len(records),
		NPSScore:       placeholderNPSScore,
		ResponseRate:   placeholderResponseRate,
		ResolutionRate: placeholderResolutionRate,
		RatingDelta:    placeholderRatingDelta,
		VolumeDelta:    placeholderVolumeDelta,
	}

	var ratingSum float64
	var sentimentSum float64
	rated := 0
	scored := 0

	for _, r := range records {
		if r.Rating != nil {
			ratingSum += float64(*r.Rating)
			rated++
		}
		if r.SentimentScore != nil {
			sentimentSum += *r.SentimentScore
			scored++
		}
	}

	if rated > 0 {
		m.AverageRating = ratingSum / float64(rated)
	}
	if scored > 0 {
		m.AverageSentiment = sentimentSum / float64(scored)
	}
	return m
}

// ComputeCategoryRollup partitions every record into exactly one category
// group (DefaultCategory when absent) with per-group counts and guarded
// averages. The positive/neutral/negative split is the fixed placeholder
// ratio, not a measured distribution. Groups come back ordered by count
// descending, ties by name.
func ComputeCategoryRollup(records []models.FeedbackRecord) []CategoryRollup {
	type group struct {
		count        int
		ratingSum    float64
		rated        int
		sentimentSum float64
		scored       int
	}

	groups := make(map[string]*group)
	for _, r := range records {
		category := r.Category
		if category == "" {
			category = DefaultCategory
		}

		g, ok := groups[category]
		if !ok {
			g = &group{}
			groups[category] = g
		}
		g.count++
		if r.Rating != nil {
			g.ratingSum += float64(*r.Rating)
			g.rated++
		}
		if r.SentimentScore != nil {
			g.sentimentSum += *r.SentimentScore
			g.scored++
		}
	}

	rollups := make([]CategoryRollup, 0, len(groups))
	for category, g := range groups {
		rollup := CategoryRollup{
			Category:      category,
			Count:         g.count,
			PositiveShare: placeholderPositiveShare,
			NeutralShare:  placeholderNeutralShare,
			NegativeShare: placeholderNegativeShare,
		}
		if g.rated > 0 {
			rollup.AverageRating = g.ratingSum / float64(g.rated)
		}
		if g.scored > 0 {
			rollup.AverageSentiment = g.sentimentSum / float64(g.scored)
		}
		rollups = append(rollups, rollup)
	}

	sort.Slice(rollups, func(i, j int) bool {
		if rollups[i].Count != rollups[j].Count {
			return rollups[i].Count > rollups[j].Count
		}
		return rollups[i].Category < rollups[j].Category
	})

	return rollups
}

// ComputeSentimentDistribution buckets the records that carry a sentiment
// score and reports the bucket fractions plus the overall mean. All
// fractions are guarded against a zero sample.
func ComputeSentimentDistribution(records []models.FeedbackRecord) SentimentDistribution {
	var d SentimentDistribution
	var sum float64
	positive, neutral, negative := 0, 0, 0

	for _, r := range records {
		if r.SentimentScore == nil {
			continue
		}
		score := *r.SentimentScore
		sum += score
		d.SampleSize++

		switch {
		case score > sentimentThreshold:
			positive++
		case score < -sentimentThreshold:
			negative++
		default:
			neutral++
		}
	}

	if d.SampleSize > 0 {
		total := float64(d.SampleSize)
		d.Overall = sum / total
		d.PositiveShare = float64(positive) / total
		d.NeutralShare = float64(neutral) / total
		d.NegativeShare = float64(negative) / total
	}
	return d
}

// ExtractCommonThemes lowercases all messages, splits on whitespace, counts
// words longer than 3 characters, and returns the 5 most frequent raw
// tokens. No stop-word removal or stemming; this is a crude frequency count.
// Ties break alphabetically so output is stable.
func ExtractCommonThemes(records []models.FeedbackRecord) []string {
	counts := make(map[string]int)
	for _, r := range records {
		for _, word := range strings.Fields(strings.ToLower(r.Message)) {
			if len(word) > 3 {
				counts[word]++
			}
		}
	}

	words := make([]string, 0, len(counts))
	for word := range counts {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > themeLimit {
		words = words[:themeLimit]
	}
	return words
}

// GenerateActionItems finds the single most frequent category and emits one
// recommendation referencing it. Records without a category are skipped; if
// none carry one, the list is empty.
func GenerateActionItems(records []models.FeedbackRecord) []ActionItem {
	counts := make(map[string]int)
	for _, r := range records {
		if r.Category != "" {
			counts[r.Category]++
		}
	}

	if len(counts) == 0 {
		return []ActionItem{}
	}

	top := ""
	for category, n := range counts {
		if top == "" || n > counts[top] || (n == counts[top] && category < top) {
			top = category
		}
	}

	return []ActionItem{{
		Category: top,
		Count:    counts[top],
		Recommendation: fmt.Sprintf(
			"Review recent %q feedback and schedule follow-ups with the affected users", top),
	}}
}

// tokenize lowercases the message, splits on whitespace, and strips
// surrounding punctuation from each token.
func tokenize(message string) []string {
	fields := strings.Fields(strings.ToLower(message))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, `.,!?;:"'()[]`)
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
