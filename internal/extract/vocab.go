package extract

// The classification vocabularies live here as plain data so they can be
// unit-tested and extended without touching the extraction control flow.
// The technical-token list is a tunable heuristic, not a complete
// classifier; recall on stacks outside this vocabulary is limited.

// sectionHeaders are case-insensitive line prefixes that mark section
// titles rather than requirements.
var sectionHeaders = []string{
	"required",
	"requirements",
	"preferred",
	"qualifications",
	"responsibilities",
	"nice to have",
	"what you",
	"who you",
	"about the",
	"benefits",
	"skills",
}

// fillerPhrases mark generic HR language that carries no distinguishing
// signal. A line containing any of them is discarded outright.
var fillerPhrases = []string{
	"team player",
	"strong communication",
	"excellent communication",
	"communication skills",
	"attention to detail",
	"detail oriented",
	"detail-oriented",
	"fast-paced environment",
	"fast paced environment",
	"self-starter",
	"self starter",
	"self-motivated",
	"work ethic",
	"interpersonal skills",
	"problem solver",
	"problem-solving skills",
	"can-do attitude",
	"positive attitude",
	"go-getter",
	"passion for",
	"passionate about",
	"willingness to learn",
	"team environment",
	"work independently",
	"multitask",
	"organizational skills",
}

// technicalTokens are the signals a line must carry to survive the
// meaningfulness filter: technology names, action verbs and
// engineering nouns.
var technicalTokens = []string{
	// languages and platforms
	"python", "java", "golang", " go ", "javascript", "typescript", "ruby",
	"rust", "c++", "c#", "php", "scala", "kotlin", "swift", "sql", "html",
	"css", "react", "angular", "vue", "node", "django", "flask", "spring",
	".net", "rails", "linux", "unix",
	// infrastructure and data
	"aws", "azure", "gcp", "cloud", "docker", "kubernetes", "terraform",
	"database", "postgres", "mysql", "mongodb", "redis", "kafka",
	"elasticsearch", "spark", "hadoop", "etl", "pipeline", "warehouse",
	"api", "rest", "graphql", "grpc", "microservice", "distributed",
	"infrastructure", "ci/cd", "devops", "git",
	// action verbs and engineering nouns
	"develop", "deploy", "architect", "build", "built", "design",
	"implement", "engineer", "integrate", "optimize", "automate", "debug",
	"maintain", "migrate", "scale", "monitor", "test", "code",
	"programming", "software", "backend", "frontend", "full-stack",
	"full stack", "data", "machine learning", "analytics", "security",
	"network", "algorithm", "framework", "automation",
}

// niceToHaveCues classify a requirement as optional rather than mandatory.
var niceToHaveCues = []string{
	"nice to have",
	"bonus",
	"preferred",
	"plus",
	"asset",
	"would be",
}

// intentCues gate which summary sentences read like actual requirements
// or role descriptions instead of company boilerplate.
var intentCues = []string{
	"will",
	"looking for",
	"seeking",
	"experience",
	"build",
	"develop",
	"design",
	"create",
}
