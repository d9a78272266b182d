package scoring

// MatchedBullet is one resume unit that cleared the similarity threshold
// for at least one covered requirement.
type MatchedBullet struct {
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
}

// MatchResult is the full scoring breakdown for one posting. Percentage
// fields are 0-100, rounded to one decimal. The result is written to the
// match cache as a whole and overwritten on recomputation, never
// partially updated.
type MatchResult struct {
	JobID                string          `json:"job_id"`
	FitScore             float64         `json:"fit_score"`
	Coverage             float64         `json:"coverage"`
	SkillMatch           float64         `json:"skill_match"`
	KeywordMatch         float64         `json:"keyword_match"`
	SeniorityAlignment   float64         `json:"seniority_alignment"`
	MatchedBullets       []MatchedBullet `json:"matched_bullets"`
	MatchedTechnologies  []string        `json:"matched_technologies"`
	MissingTechnologies  []string        `json:"missing_technologies"`
	MissingMustHaves     int             `json:"missing_must_haves"`
	MustHavePenalty      float64         `json:"must_have_penalty"`
	RequirementsAnalyzed int             `json:"requirements_analyzed"`
	Error                string          `json:"error,omitempty"`
}
