// Package tech extracts canonical technology names from free text. It is
// the keyword-overlap collaborator of the scorer: best-effort, never
// failing, returning an empty set rather than an error.
package tech

import (
	"strings"
	"unicode"
)

// entry maps a canonical technology name to the spellings it is matched
// under. The table is data so additions never touch the matching code.
type entry struct {
	Canonical string
	Aliases   []string
}

// vocabulary lists the technologies the extractor recognizes. Aliases are
// matched case-insensitively; multi-word aliases are matched as phrases.
var vocabulary = []entry{
	{"Python", []string{"python"}},
	{"Go", []string{"golang", "go"}},
	{"Java", []string{"java"}},
	{"JavaScript", []string{"javascript", "js", "ecmascript"}},
	{"TypeScript", []string{"typescript", "ts"}},
	{"C++", []string{"c++", "cpp"}},
	{"C#", []string{"c#", "csharp"}},
	{"C", []string{"c"}},
	{"Ruby", []string{"ruby"}},
	{"Rust", []string{"rust"}},
	{"PHP", []string{"php"}},
	{"Swift", []string{"swift"}},
	{"Kotlin", []string{"kotlin"}},
	{"Scala", []string{"scala"}},
	{"R", []string{"r"}},
	{"SQL", []string{"sql"}},
	{"HTML", []string{"html", "html5"}},
	{"CSS", []string{"css", "css3"}},
	{"React", []string{"react", "react.js", "reactjs"}},
	{"Angular", []string{"angular", "angularjs"}},
	{"Vue", []string{"vue", "vue.js", "vuejs"}},
	{"Node.js", []string{"node.js", "nodejs", "node"}},
	{"Django", []string{"django"}},
	{"Flask", []string{"flask"}},
	{"FastAPI", []string{"fastapi"}},
	{"Spring", []string{"spring", "spring boot"}},
	{"Rails", []string{"rails", "ruby on rails"}},
	{".NET", []string{".net", "dotnet", "asp.net"}},
	{"Express", []string{"express", "express.js"}},
	{"GraphQL", []string{"graphql"}},
	{"REST", []string{"rest", "restful"}},
	{"gRPC", []string{"grpc"}},
	{"AWS", []string{"aws", "amazon web services"}},
	{"Azure", []string{"azure"}},
	{"GCP", []string{"gcp", "google cloud", "google cloud platform"}},
	{"Docker", []string{"docker"}},
	{"Kubernetes", []string{"kubernetes", "k8s"}},
	{"Terraform", []string{"terraform"}},
	{"Ansible", []string{"ansible"}},
	{"Jenkins", []string{"jenkins"}},
	{"Git", []string{"git"}},
	{"GitHub", []string{"github"}},
	{"GitLab", []string{"gitlab"}},
	{"CI/CD", []string{"ci/cd", "cicd", "continuous integration"}},
	{"Linux", []string{"linux", "unix"}},
	{"PostgreSQL", []string{"postgresql", "postgres"}},
	{"MySQL", []string{"mysql"}},
	{"SQLite", []string{"sqlite"}},
	{"MongoDB", []string{"mongodb", "mongo"}},
	{"Redis", []string{"redis"}},
	{"Elasticsearch", []string{"elasticsearch", "elastic search"}},
	{"Cassandra", []string{"cassandra"}},
	{"DynamoDB", []string{"dynamodb"}},
	{"Kafka", []string{"kafka"}},
	{"RabbitMQ", []string{"rabbitmq"}},
	{"Spark", []string{"spark", "apache spark"}},
	{"Hadoop", []string{"hadoop"}},
	{"Airflow", []string{"airflow"}},
	{"Snowflake", []string{"snowflake"}},
	{"Pandas", []string{"pandas"}},
	{"NumPy", []string{"numpy"}},
	{"scikit-learn", []string{"scikit-learn", "sklearn"}},
	{"TensorFlow", []string{"tensorflow"}},
	{"PyTorch", []string{"pytorch"}},
	{"Machine Learning", []string{"machine learning", "ml"}},
	{"NLP", []string{"nlp", "natural language processing"}},
	{"Grafana", []string{"grafana"}},
	{"Prometheus", []string{"prometheus"}},
}

// Extractor resolves technology mentions to canonical names.
type Extractor struct {
	tokens  map[string]string
	phrases []phrase
}

type phrase struct {
	alias     string
	canonical string
}

// NewExtractor builds the matcher from the package vocabulary.
func NewExtractor() *Extractor {
	e := &Extractor{tokens: make(map[string]string)}
	for _, item := range vocabulary {
		for _, alias := range item.Aliases {
			alias = strings.ToLower(alias)
			if strings.Contains(alias, " ") {
				e.phrases = append(e.phrases, phrase{alias: alias, canonical: item.Canonical})
				continue
			}
			// First entry wins for ambiguous aliases.
			if _, exists := e.tokens[alias]; !exists {
				e.tokens[alias] = item.Canonical
			}
		}
	}
	return e
}

// Extract returns the set of canonical technology names mentioned in the
// text. An empty or unrecognized text yields an empty set.
func (e *Extractor) Extract(text string) map[string]struct{} {
	found := make(map[string]struct{})
	if strings.TrimSpace(text) == "" {
		return found
	}

	lowered := strings.ToLower(text)

	for _, token := range tokenize(lowered) {
		if canonical, ok := e.tokens[token]; ok {
			found[canonical] = struct{}{}
		}
	}

	// Phrase aliases need word-ish boundaries so "html" never matches
	// inside "xhtml5-ish" prose pulled from postings.
	padded := " " + collapseSeparators(lowered) + " "
	for _, p := range e.phrases {
		if strings.Contains(padded, " "+p.alias+" ") {
			found[p.canonical] = struct{}{}
		}
	}

	return found
}

// tokenize splits text into alias-comparable tokens. Symbols that are part
// of technology names (+, #, ., /, -) stay inside tokens; trailing dots
// from sentence ends are stripped.
func tokenize(text string) []string {
	isTokenRune := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' || r == '/' || r == '-'
	}

	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() == 0 {
			return
		}
		token := strings.TrimRight(current.String(), ".")
		token = strings.Trim(token, "-")
		if token != "" {
			tokens = append(tokens, token)
		}
		current.Reset()
	}

	for _, r := range text {
		if isTokenRune(r) {
			current.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	return tokens
}

func collapseSeparators(text string) string {
	return strings.Join(strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), " ")
}
