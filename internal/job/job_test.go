package job

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "postings.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestFromFileBareArray(t *testing.T) {
	path := writeFile(t, `[
		{"id": "1", "title": "Backend Engineer", "company": "Initech"},
		{"id": "2", "title": "Data Engineer", "salary": "90k"}
	]`)

	postings, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if postings.Len() != 2 {
		t.Fatalf("expected 2 postings, got %d", postings.Len())
	}
	if postings.Items[0].Company != "Initech" {
		t.Fatalf("unexpected company: %q", postings.Items[0].Company)
	}
	if postings.Items[1].Salary != "90k" {
		t.Fatalf("unexpected salary: %q", postings.Items[1].Salary)
	}
}

func TestFromFileWrappedItems(t *testing.T) {
	path := writeFile(t, `{"items": [{"id": "1", "title": "SRE"}]}`)

	postings, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if postings.Len() != 1 || postings.Items[0].Title != "SRE" {
		t.Fatalf("unexpected postings: %+v", postings.Items)
	}
}

func TestFromFileRejectsDuplicates(t *testing.T) {
	path := writeFile(t, `[{"id": "1"}, {"id": "1"}]`)

	if _, err := FromFile(path); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestValidateRequiresID(t *testing.T) {
	postings := &Postings{Items: []*Posting{{ID: "  "}}}
	if err := postings.Validate(); err == nil {
		t.Fatal("expected error for blank id")
	}
}

func TestFindByID(t *testing.T) {
	postings := &Postings{Items: []*Posting{{ID: "a"}, {ID: "b"}}}

	if got := postings.FindByID("b"); got == nil || got.ID != "b" {
		t.Fatalf("FindByID(b) = %+v", got)
	}
	if got := postings.FindByID("missing"); got != nil {
		t.Fatalf("expected nil for unknown id, got %+v", got)
	}
}

func TestExcludeByID(t *testing.T) {
	postings := &Postings{Items: []*Posting{{ID: "a"}, {ID: "b"}, {ID: "c"}}}

	left := postings.Exclude(PostingIDField, []string{"b", "missing"})

	if left.Len() != 2 {
		t.Fatalf("expected 2 postings left, got %d", left.Len())
	}
	if left.FindByID("b") != nil {
		t.Fatal("excluded posting still present")
	}
	// The original set stays untouched.
	if postings.Len() != 3 {
		t.Fatalf("input mutated: %d postings", postings.Len())
	}
}

func TestExcludeByCompany(t *testing.T) {
	postings := &Postings{Items: []*Posting{
		{ID: "1", Company: "Initech"},
		{ID: "2", Company: "Hooli"},
	}}

	left := postings.Exclude(PostingCompanyField, []string{"Hooli"})

	if left.Len() != 1 || left.Items[0].ID != "1" {
		t.Fatalf("unexpected postings left: %+v", left.Items)
	}
}

func TestShortlistIDs(t *testing.T) {
	shortlist := &Shortlist{}
	shortlist.Add(&Posting{ID: "a"}, 80)
	shortlist.Add(&Posting{ID: "b"}, 60)

	ids := shortlist.IDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestCombinedTextSkipsEmptyFields(t *testing.T) {
	posting := &Posting{Title: "Engineer", Skills: "Go"}

	combined := posting.CombinedText()
	if combined != "Engineer\nGo" {
		t.Fatalf("unexpected combined text: %q", combined)
	}
}

func TestReportByCompany(t *testing.T) {
	postings := &Postings{Items: []*Posting{
		{ID: "1", Company: "Initech", Title: "Engineer"},
		{ID: "2", Company: "Initech", Title: "SRE"},
		{ID: "3", Title: "Analyst"},
	}}

	report := postings.ReportByCompany()
	if len(report["Initech"]) != 2 {
		t.Fatalf("expected 2 Initech entries, got %v", report["Initech"])
	}
	if len(report["unknown company"]) != 1 {
		t.Fatalf("expected companyless posting grouped, got %v", report)
	}
}

func TestShortlistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shortlist.json")

	shortlist, err := ShortlistFromFile(path)
	if err != nil {
		t.Fatalf("ShortlistFromFile on missing file: %v", err)
	}
	if shortlist.Len() != 0 {
		t.Fatalf("expected empty shortlist, got %d entries", shortlist.Len())
	}

	posting := &Posting{ID: "1", Title: "Engineer", Company: "Initech"}
	if !shortlist.Add(posting, 72.5) {
		t.Fatal("expected first add to succeed")
	}
	if shortlist.Add(posting, 72.5) {
		t.Fatal("expected duplicate add to be rejected")
	}

	if err := shortlist.ToFile(path); err != nil {
		t.Fatalf("ToFile: %v", err)
	}

	loaded, err := ShortlistFromFile(path)
	if err != nil {
		t.Fatalf("ShortlistFromFile: %v", err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("expected 1 entry after reload, got %d", loaded.Len())
	}
	if loaded.Items[0].FitScore != 72.5 || loaded.Items[0].Company != "Initech" {
		t.Fatalf("entry changed across persistence: %+v", loaded.Items[0])
	}
}
