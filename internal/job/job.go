package job

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	PostingIDField      = "ID"
	PostingCompanyField = "Company"
)

// Postings is a mutable working set of job postings for one run.
type Postings struct {
	Items []*Posting
}

// Posting is a single job posting as delivered by an exporter or scraper.
// The engine treats it as read-only input.
type Posting struct {
	ID               string `json:"id,omitempty" mapstructure:"id"`
	Title            string `json:"title,omitempty" mapstructure:"title"`
	Company          string `json:"company,omitempty" mapstructure:"company"`
	Location         string `json:"location,omitempty" mapstructure:"location"`
	Level            string `json:"level,omitempty" mapstructure:"level"`
	Summary          string `json:"summary,omitempty" mapstructure:"summary"`
	Responsibilities string `json:"responsibilities,omitempty" mapstructure:"responsibilities"`
	Skills           string `json:"skills,omitempty" mapstructure:"skills"`
	AdditionalInfo   string `json:"additional_info,omitempty" mapstructure:"additional_info"`
	WorkArrangement  string `json:"work_arrangement,omitempty" mapstructure:"work_arrangement"`
	Salary           string `json:"salary,omitempty" mapstructure:"salary"`
	URL              string `json:"url,omitempty" mapstructure:"url"`
	PostedAt         string `json:"posted_at,omitempty" mapstructure:"posted_at"`
}

// CombinedText joins the free-text fields of a posting into one blob for
// keyword and seniority scans.
func (p *Posting) CombinedText() string {
	parts := []string{p.Title, p.Level, p.Summary, p.Responsibilities, p.Skills, p.AdditionalInfo}
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, "\n")
}

// SearchableText joins the fields consulted by the keyword content filter.
func (p *Posting) SearchableText() string {
	return strings.Join([]string{p.Title, p.Summary, p.Responsibilities, p.Skills, p.AdditionalInfo}, "\n")
}

func (p *Posting) GetStringField(name string) string {
	switch name {
	case PostingIDField:
		return p.ID
	case PostingCompanyField:
		return p.Company
	default:
		return ""
	}
}

func (p *Postings) Len() int {
	return len(p.Items)
}

func (p *Postings) FindByID(id string) *Posting {
	for _, posting := range p.Items {
		if posting.ID == id {
			return posting
		}
	}
	return nil
}

// IDs returns posting ids preserving input order.
func (p *Postings) IDs() []string {
	ids := make([]string, 0, len(p.Items))
	for _, posting := range p.Items {
		ids = append(ids, posting.ID)
	}
	return ids
}

// Exclude returns the postings whose field value is not in values. The run
// command uses it to drop already-shortlisted postings before scoring.
func (p *Postings) Exclude(field string, values []string) *Postings {
	excluded := make(map[string]struct{}, len(values))
	for _, value := range values {
		excluded[value] = struct{}{}
	}

	kept := &Postings{}
	for _, posting := range p.Items {
		if _, ok := excluded[posting.GetStringField(field)]; ok {
			continue
		}
		kept.Items = append(kept.Items, posting)
	}
	return kept
}

// ReportByCompany groups postings into a printable report keyed by company.
func (p *Postings) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, posting := range p.Items {
		key := posting.Company
		if key == "" {
			key = "unknown company"
		}
		report[key] = append(report[key], map[string]string{
			"title":    posting.Title,
			"location": posting.Location,
			"level":    posting.Level,
			"url":      posting.URL,
		})
	}
	return report
}

func (p *Postings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "postings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Validate reports postings that cannot be scored. An id is mandatory since
// it keys the match cache.
func (p *Postings) Validate() error {
	seen := make(map[string]struct{}, len(p.Items))
	for i, posting := range p.Items {
		if strings.TrimSpace(posting.ID) == "" {
			return fmt.Errorf("posting at position %d has no id", i)
		}
		if _, ok := seen[posting.ID]; ok {
			return fmt.Errorf("duplicate posting id %q", posting.ID)
		}
		seen[posting.ID] = struct{}{}
	}
	return nil
}
