package scoring

import "strings"

// Seniority cue tables. Matching is case-insensitive substring search,
// the same heuristic level as the rest of the engine.
var (
	juniorCues = []string{"junior", "entry", "intern", "new grad"}
	seniorCues = []string{"senior", "lead", "architect", "principal"}

	leadershipVerbs = []string{"led", "managed", "architected", "designed", "mentored"}
)

// seniorityAlignment scores how the resume's leadership signal fits the
// posting's seniority cues. Junior postings mildly penalize heavy
// leadership signal (over-qualification); senior postings reward it up to
// a cap; postings with neither cue sit at a neutral 0.7.
func seniorityAlignment(jobText string, bullets []MatchedBullet) float64 {
	lowered := strings.ToLower(jobText)

	leadership := leadershipCount(bullets)

	if containsAny(lowered, juniorCues) {
		if leadership <= 1 {
			return 0.8
		}
		return 0.5
	}

	if containsAny(lowered, seniorCues) {
		score := 0.5 + 0.15*float64(leadership)
		if score > 1.0 {
			score = 1.0
		}
		return score
	}

	return 0.7
}

func leadershipCount(bullets []MatchedBullet) int {
	count := 0
	for _, bullet := range bullets {
		lowered := strings.ToLower(bullet.Text)
		for _, verb := range leadershipVerbs {
			if strings.Contains(lowered, verb) {
				count++
			}
		}
	}
	return count
}

func containsAny(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}
