package tech

import "testing"

func TestExtractCanonicalizesAliases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain names",
			text: "We use Python and Docker in production",
			want: []string{"Python", "Docker"},
		},
		{
			name: "aliases resolve to canonical",
			text: "Frontend in JS, deployed on k8s, services in golang",
			want: []string{"JavaScript", "Kubernetes", "Go"},
		},
		{
			name: "symbolic names survive tokenizing",
			text: "Modern C++ and C# codebases, some .NET tooling",
			want: []string{"C++", "C#", ".NET"},
		},
		{
			name: "phrase aliases",
			text: "Hosted on Amazon Web Services with machine learning workloads",
			want: []string{"AWS", "Machine Learning"},
		},
		{
			name: "trailing punctuation stripped",
			text: "Experience with Terraform.",
			want: []string{"Terraform"},
		},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := e.Extract(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Extract(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for _, name := range tt.want {
				if _, ok := got[name]; !ok {
					t.Fatalf("Extract(%q) missing %q: got %v", tt.text, name, got)
				}
			}
		})
	}
}

func TestExtractEmptyText(t *testing.T) {
	e := NewExtractor()

	if got := e.Extract(""); len(got) != 0 {
		t.Fatalf("expected empty set for empty text, got %v", got)
	}
	if got := e.Extract("   \n\t "); len(got) != 0 {
		t.Fatalf("expected empty set for blank text, got %v", got)
	}
}

func TestExtractDoesNotMatchSubstrings(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("We value restraint and gophers")
	if _, ok := got["REST"]; ok {
		t.Fatalf("matched REST inside 'restraint': %v", got)
	}
	if _, ok := got["Go"]; ok {
		t.Fatalf("matched Go inside 'gophers': %v", got)
	}
}
