package feedback

import (
	"sort"
	"unicode/utf8"

	"github.com/interviewace/interviewace/internal/models"
)

// The scorer is a deliberate heuristic stand-in for semantic evaluation:
// answers are bucketed by length alone. The three tiers (and their exact
// boundaries at 10 and 50 characters) are load-bearing for callers. Length is
// counted in characters, not bytes, so multi-byte answers bucket the same.

const neutralScore = 3.0

func Score(question, answer string) models.QuestionFeedback {
	fb := models.QuestionFeedback{
		Question: question,
		Answer:   answer,
	}

	switch n := utf8.RuneCountInString(answer); {
	case n < 10:
		fb.Score = 2
		fb.Commentary = "Your answer was too brief. Consider providing more specific examples and detail."
		fb.Strengths = []string{"Concise communication"}
		fb.Improvements = []string{
			"Add more specific details",
			"Provide concrete examples",
			"Structure your answer more clearly",
		}
	case n < 50:
		fb.Score = 3
		fb.Commentary = "Your answer addressed the question but could use more depth and examples."
		fb.Strengths = []string{"Clear communication", "Addressed the question"}
		fb.Improvements = []string{
			"Add more specific examples",
			"Elaborate on your approach",
		}
	default:
		fb.Score = 4
		fb.Commentary = "Strong, detailed answer with good examples and structure."
		fb.Strengths = []string{"Comprehensive response", "Well-structured", "Good examples"}
		fb.Improvements = []string{"Consider adding quantifiable results"}
	}
	return fb
}

// Summarize scores every answer and aggregates the session: overall score is
// the mean of per-question scores (neutral when there are no questions), and
// the top three strength/improvement tags are picked by frequency with ties
// broken by first appearance.
func Summarize(questions, answers []string) *models.SessionResult {
	res := &models.SessionResult{
		Questions: make([]models.QuestionFeedback, 0, len(questions)),
	}

	var total int
	var strengths, improvements []string
	for i, q := range questions {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		fb := Score(q, answer)
		res.Questions = append(res.Questions, fb)
		total += fb.Score
		strengths = append(strengths, fb.Strengths...)
		improvements = append(improvements, fb.Improvements...)
	}

	if len(res.Questions) == 0 {
		res.OverallScore = neutralScore
	} else {
		res.OverallScore = float64(total) / float64(len(res.Questions))
	}

	res.TopStrengths = topTags(strengths, 3)
	res.TopImprovements = topTags(improvements, 3)
	return res
}

func topTags(tags []string, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, t := range tags {
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}

	// stable keeps first-seen order among equal counts
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}
