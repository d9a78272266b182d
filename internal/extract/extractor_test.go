package extract

import (
	"strings"
	"testing"

	"github.com/mkraev/jobfit/internal/job"
)

func TestExtractClassifiesSkillLines(t *testing.T) {
	posting := &job.Posting{
		ID: "1",
		Skills: strings.Join([]string{
			"Required:",
			"5+ years of experience with Python development",
			"Experience with AWS and Docker deployment",
			"Kubernetes experience would be a plus",
			"Go",
			"Strong communication skills and attention to detail",
		}, "\n"),
	}

	set := Extract(posting)

	if len(set.MustHave) != 2 {
		t.Fatalf("expected 2 must-haves, got %d: %v", len(set.MustHave), set.MustHave)
	}
	if len(set.NiceToHave) != 1 {
		t.Fatalf("expected 1 nice-to-have, got %d: %v", len(set.NiceToHave), set.NiceToHave)
	}
	if !strings.Contains(set.NiceToHave[0], "Kubernetes") {
		t.Fatalf("unexpected nice-to-have: %q", set.NiceToHave[0])
	}
}

func TestExtractDropsFillerAndHeaders(t *testing.T) {
	posting := &job.Posting{
		ID: "1",
		Skills: strings.Join([]string{
			"Qualifications we look for in a candidate",
			"You must be a team player with Python experience",
			"Positive attitude and willingness to learn new things",
			"Ability to design scalable database schemas",
		}, "\n"),
	}

	set := Extract(posting)

	if len(set.MustHave) != 1 {
		t.Fatalf("expected exactly 1 must-have, got %d: %v", len(set.MustHave), set.MustHave)
	}
	if !strings.Contains(set.MustHave[0], "database") {
		t.Fatalf("unexpected surviving line: %q", set.MustHave[0])
	}
}

func TestExtractSummaryKeepsAtMostThreeSentences(t *testing.T) {
	posting := &job.Posting{
		ID: "1",
		Summary: "You will build distributed backend services in Go! " +
			"We are looking for an engineer to design our cloud infrastructure. " +
			"You will develop APIs consumed by millions of requests per day? " +
			"You will also deploy and monitor our Kubernetes infrastructure. " +
			"We ship software every single day to our cloud environments and you will build that.",
	}

	set := Extract(posting)

	if len(set.Responsibilities) != 3 {
		t.Fatalf("expected 3 summary sentences, got %d: %v", len(set.Responsibilities), set.Responsibilities)
	}
}

func TestExtractCapsAllRequirements(t *testing.T) {
	var lines []string
	for i := 0; i < 15; i++ {
		lines = append(lines, "Experience building Python services with cloud infrastructure variant "+strings.Repeat("x", i+1))
	}

	posting := &job.Posting{
		ID:               "1",
		Skills:           strings.Join(lines, "\n"),
		Responsibilities: strings.Join(lines, "\n"),
	}

	set := Extract(posting)

	if len(set.MustHave) != 15 {
		t.Fatalf("expected 15 must-haves, got %d", len(set.MustHave))
	}
	// 10 must-haves + 5 responsibilities + 0 nice-to-haves
	if len(set.All) != 15 {
		t.Fatalf("expected capped all-requirements of 15, got %d", len(set.All))
	}
	if set.All[0] != set.MustHave[0] {
		t.Fatalf("must-haves should lead the search budget")
	}
}

func TestExtractEmptyPosting(t *testing.T) {
	set := Extract(&job.Posting{
		ID:               "1",
		Summary:          "N/A",
		Responsibilities: "N/A",
		Skills:           "N/A",
		AdditionalInfo:   "N/A",
	})

	if !set.Empty() {
		t.Fatalf("expected empty requirement set, got %+v", set)
	}
}

func TestNormalizeFlattensHTML(t *testing.T) {
	html := "<ul><li>Develop Python services</li><li>Deploy with Docker</li></ul>"

	text := Normalize(html)

	if strings.Contains(text, "<") {
		t.Fatalf("expected tags stripped, got %q", text)
	}
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected list items on separate lines, got %q", text)
	}
}

func TestMeaningfulRequiresTechnicalSignal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want bool
	}{
		{
			name: "filler phrase rejected despite tech token",
			line: "Team player with strong communication skills and Python",
			want: false,
		},
		{
			name: "technical line kept",
			line: "Develop and deploy REST APIs",
			want: true,
		},
		{
			name: "generic line without signal rejected",
			line: "A great opportunity to grow your career",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Meaningful(tt.line); got != tt.want {
				t.Fatalf("Meaningful(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
