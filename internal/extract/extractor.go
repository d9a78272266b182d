// Package extract turns a job posting's free-text fields into a
// structured, prioritized requirement set.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mkraev/jobfit/internal/job"
	"github.com/mkraev/jobfit/internal/resume"
)

const (
	minSkillLineLen          = 15
	minResponsibilityLineLen = 20
	minSummarySentenceLen    = 30

	maxMustHaveQueries   = 10
	maxRespQueries       = 5
	maxNiceToHaveQueries = 3
	maxSummarySentences  = 3
)

// RequirementSet is the structured extraction of one posting. All is the
// capped, priority-ordered concatenation used as the semantic search
// budget: must-haves dominate, responsibilities and nice-to-haves fill
// the remainder.
type RequirementSet struct {
	MustHave         []string
	NiceToHave       []string
	Responsibilities []string
	All              []string
}

// Empty reports the degenerate case of a posting with no extractable
// requirements. The scorer treats it as zero-confidence, not an error.
func (r *RequirementSet) Empty() bool {
	return len(r.All) == 0
}

// Extract derives the requirement set from a posting. Absent or empty
// fields simply contribute nothing.
func Extract(p *job.Posting) *RequirementSet {
	set := &RequirementSet{}

	extractSkills(Normalize(p.Skills), set)
	extractResponsibilities(Normalize(p.Responsibilities), set)
	extractSummary(Normalize(p.Summary), set)

	set.All = append(set.All, capped(set.MustHave, maxMustHaveQueries)...)
	set.All = append(set.All, capped(set.Responsibilities, maxRespQueries)...)
	set.All = append(set.All, capped(set.NiceToHave, maxNiceToHaveQueries)...)

	return set
}

func extractSkills(text string, set *RequirementSet) {
	for _, line := range strings.Split(text, "\n") {
		line = resume.StripBullet(line)
		if len(line) < minSkillLineLen {
			continue
		}
		if strings.HasSuffix(line, ":") {
			continue
		}
		if isSectionHeader(line) {
			continue
		}
		if !Meaningful(line) {
			continue
		}
		if isNiceToHave(line) {
			set.NiceToHave = append(set.NiceToHave, line)
		} else {
			set.MustHave = append(set.MustHave, line)
		}
	}
}

func extractResponsibilities(text string, set *RequirementSet) {
	for _, line := range strings.Split(text, "\n") {
		line = resume.StripBullet(line)
		if len(line) <= minResponsibilityLineLen {
			continue
		}
		if strings.HasSuffix(line, ":") {
			continue
		}
		if isSectionHeader(line) {
			continue
		}
		if !Meaningful(line) {
			continue
		}
		set.Responsibilities = append(set.Responsibilities, line)
	}
}

func extractSummary(text string, set *RequirementSet) {
	normalized := strings.NewReplacer("!", ".", "?", ".").Replace(text)

	kept := 0
	for _, sentence := range strings.Split(normalized, ".") {
		if kept >= maxSummarySentences {
			break
		}
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= minSummarySentenceLen {
			continue
		}
		if !Meaningful(sentence) {
			continue
		}
		if !hasIntentCue(sentence) {
			continue
		}
		set.Responsibilities = append(set.Responsibilities, sentence)
		kept++
	}
}

// Meaningful applies the two-step filter: reject lines carrying generic
// filler phrases, then require at least one technical or action-oriented
// token. Pure keyword screens over-match HR language; demanding a
// technical signal keeps precision high without real NLP.
func Meaningful(line string) bool {
	lowered := " " + strings.ToLower(line) + " "

	for _, filler := range fillerPhrases {
		if strings.Contains(lowered, filler) {
			return false
		}
	}

	for _, token := range technicalTokens {
		if strings.Contains(lowered, token) {
			return true
		}
	}

	return false
}

func isSectionHeader(line string) bool {
	lowered := strings.ToLower(line)
	for _, header := range sectionHeaders {
		if strings.HasPrefix(lowered, header) {
			return true
		}
	}
	return false
}

func isNiceToHave(line string) bool {
	lowered := strings.ToLower(line)
	for _, cue := range niceToHaveCues {
		if strings.Contains(lowered, cue) {
			return true
		}
	}
	return false
}

func hasIntentCue(sentence string) bool {
	lowered := strings.ToLower(sentence)
	for _, cue := range intentCues {
		if strings.Contains(lowered, cue) {
			return true
		}
	}
	return false
}

func capped(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

// htmlLineBreaks are rewritten to newlines before tag stripping so list
// items stay line-separated.
var htmlLineBreaks = strings.NewReplacer(
	"<br>", "\n", "<br/>", "\n", "<br />", "\n",
	"</li>", "\n", "</p>", "\n", "</ul>", "\n",
	"</ol>", "\n", "</div>", "\n", "</h1>", "\n",
	"</h2>", "\n", "</h3>", "\n",
)

// Normalize flattens HTML fragments (job boards deliver descriptions as
// HTML) into plain text. Plain text passes through untouched.
func Normalize(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}

	withBreaks := htmlLineBreaks.Replace(text)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(withBreaks))
	if err != nil {
		return text
	}
	return doc.Text()
}
