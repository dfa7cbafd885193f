package matching

import (
	"strings"
	"unicode/utf8"
)

// Skill is one canonical taxonomy entry. Name is the lowercase canonical
// form reported in extraction results, Synonyms are surface variants that
// fold into it ("golang" -> "go", "k8s" -> "kubernetes").
type Skill struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Synonyms []string `json:"synonyms,omitempty"`
}

// Taxonomy is the skill dictionary an Engine matches against. It is plain
// data, the engine derives its lookup index from it at construction.
type Taxonomy struct {
	skills []Skill
}

func NewTaxonomy(skills []Skill) *Taxonomy {
	kept := make([]Skill, 0, len(skills))
	for _, s := range skills {
		s.Name = strings.ToLower(strings.TrimSpace(s.Name))
		if s.Name == "" {
			continue
		}
		kept = append(kept, s)
	}
	return &Taxonomy{skills: kept}
}

func DefaultTaxonomy() *Taxonomy {
	return NewTaxonomy(defaultSkills)
}

// Skills returns a copy of the entries, in authored order.
func (t *Taxonomy) Skills() []Skill {
	out := make([]Skill, len(t.skills))
	copy(out, t.skills)
	return out
}

func (t *Taxonomy) Len() int { return len(t.skills) }

// aliasIndex maps normalized alias phrases to canonical skill names. Alias
// phrases go through the same tokenizer and stop-word filter as input text,
// so "Ruby on Rails" indexes as "ruby rails" and meets the token stream on
// equal terms. Phrases longer than three tokens are never probed and are
// dropped at build time.
type aliasIndex struct {
	byPhrase  map[string]string
	maxWindow int
}

const maxAliasWindow = 3

func buildAliasIndex(t *Taxonomy, stop Stopwords) aliasIndex {
	idx := aliasIndex{byPhrase: make(map[string]string, len(t.skills)*3)}
	for _, s := range t.skills {
		idx.add(s.Name, s.Name, stop)
		for _, syn := range s.Synonyms {
			idx.add(syn, s.Name, stop)
		}
	}
	return idx
}

func (idx *aliasIndex) add(alias, canonical string, stop Stopwords) {
	toks := tokenize(alias)
	kept := toks[:0]
	for _, tok := range toks {
		if stop.Has(tok) || utf8.RuneCountInString(tok) < minTokenLen {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 || len(kept) > maxAliasWindow {
		return
	}
	phrase := strings.Join(kept, " ")
	if _, taken := idx.byPhrase[phrase]; taken {
		return
	}
	idx.byPhrase[phrase] = canonical
	if len(kept) > idx.maxWindow {
		idx.maxWindow = len(kept)
	}
}

func (idx *aliasIndex) canonical(phrase string) (string, bool) {
	name, ok := idx.byPhrase[phrase]
	return name, ok
}

func (idx *aliasIndex) isAlias(token string) bool {
	_, ok := idx.byPhrase[token]
	return ok
}

// Category labels for the default taxonomy, also used by the skill seeder.
const (
	CategoryLanguage  = "Programming Language"
	CategoryFrontend  = "Frontend"
	CategoryBackend   = "Backend"
	CategoryDatabase  = "Database"
	CategoryCloud     = "Cloud"
	CategoryDevOps    = "DevOps"
	CategoryData      = "Data & ML"
	CategoryMobile    = "Mobile"
	CategoryTesting   = "Testing"
	CategoryPractices = "Practices"
	CategoryTooling   = "Tooling"
)

var defaultSkills = []Skill{
	{Name: "python", Category: CategoryLanguage, Synonyms: []string{"py", "python3"}},
	{Name: "go", Category: CategoryLanguage, Synonyms: []string{"golang"}},
	{Name: "javascript", Category: CategoryLanguage, Synonyms: []string{"js", "ecmascript"}},
	{Name: "typescript", Category: CategoryLanguage, Synonyms: []string{"ts"}},
	{Name: "java", Category: CategoryLanguage},
	{Name: "c++", Category: CategoryLanguage, Synonyms: []string{"cpp", "cplusplus"}},
	{Name: "c#", Category: CategoryLanguage, Synonyms: []string{"csharp"}},
	{Name: "php", Category: CategoryLanguage},
	{Name: "ruby", Category: CategoryLanguage},
	{Name: "rust", Category: CategoryLanguage},
	{Name: "kotlin", Category: CategoryLanguage},
	{Name: "swift", Category: CategoryLanguage},
	{Name: "scala", Category: CategoryLanguage},
	{Name: "sql", Category: CategoryLanguage},
	{Name: "bash", Category: CategoryLanguage, Synonyms: []string{"shell scripting"}},
	{Name: "html", Category: CategoryLanguage, Synonyms: []string{"html5"}},
	{Name: "css", Category: CategoryLanguage, Synonyms: []string{"css3"}},
	{Name: "dart", Category: CategoryLanguage},
	{Name: "elixir", Category: CategoryLanguage},

	{Name: "react", Category: CategoryFrontend, Synonyms: []string{"reactjs", "react.js"}},
	{Name: "angular", Category: CategoryFrontend, Synonyms: []string{"angularjs"}},
	{Name: "vue", Category: CategoryFrontend, Synonyms: []string{"vuejs", "vue.js"}},
	{Name: "next.js", Category: CategoryFrontend, Synonyms: []string{"nextjs"}},
	{Name: "svelte", Category: CategoryFrontend},
	{Name: "redux", Category: CategoryFrontend},
	{Name: "jquery", Category: CategoryFrontend},
	{Name: "tailwind", Category: CategoryFrontend, Synonyms: []string{"tailwindcss"}},
	{Name: "webpack", Category: CategoryFrontend},
	{Name: "sass", Category: CategoryFrontend, Synonyms: []string{"scss"}},

	{Name: "node.js", Category: CategoryBackend, Synonyms: []string{"node", "nodejs"}},
	{Name: "django", Category: CategoryBackend},
	{Name: "flask", Category: CategoryBackend},
	{Name: "fastapi", Category: CategoryBackend},
	{Name: "spring", Category: CategoryBackend, Synonyms: []string{"spring boot", "springboot"}},
	{Name: "express", Category: CategoryBackend, Synonyms: []string{"expressjs", "express.js"}},
	{Name: "rails", Category: CategoryBackend, Synonyms: []string{"ruby on rails"}},
	{Name: "laravel", Category: CategoryBackend},
	{Name: ".net", Category: CategoryBackend, Synonyms: []string{"dotnet", "asp.net"}},
	{Name: "gin", Category: CategoryBackend},
	{Name: "fiber", Category: CategoryBackend},
	{Name: "graphql", Category: CategoryBackend},
	{Name: "grpc", Category: CategoryBackend},
	{Name: "rest", Category: CategoryBackend, Synonyms: []string{"restful", "rest api", "rest apis"}},
	{Name: "microservices", Category: CategoryBackend, Synonyms: []string{"microservice"}},

	{Name: "postgresql", Category: CategoryDatabase, Synonyms: []string{"postgres", "psql"}},
	{Name: "mysql", Category: CategoryDatabase},
	{Name: "mongodb", Category: CategoryDatabase, Synonyms: []string{"mongo"}},
	{Name: "redis", Category: CategoryDatabase},
	{Name: "sqlite", Category: CategoryDatabase},
	{Name: "elasticsearch", Category: CategoryDatabase, Synonyms: []string{"elastic"}},
	{Name: "cassandra", Category: CategoryDatabase},
	{Name: "dynamodb", Category: CategoryDatabase},
	{Name: "oracle", Category: CategoryDatabase},
	{Name: "sql server", Category: CategoryDatabase, Synonyms: []string{"mssql", "microsoft sql server"}},
	{Name: "mariadb", Category: CategoryDatabase},
	{Name: "clickhouse", Category: CategoryDatabase},

	{Name: "aws", Category: CategoryCloud, Synonyms: []string{"amazon web services"}},
	{Name: "gcp", Category: CategoryCloud, Synonyms: []string{"google cloud", "google cloud platform"}},
	{Name: "azure", Category: CategoryCloud, Synonyms: []string{"microsoft azure"}},
	{Name: "heroku", Category: CategoryCloud},
	{Name: "digitalocean", Category: CategoryCloud},
	{Name: "cloudflare", Category: CategoryCloud},
	{Name: "lambda", Category: CategoryCloud, Synonyms: []string{"aws lambda"}},
	{Name: "s3", Category: CategoryCloud, Synonyms: []string{"aws s3"}},

	{Name: "docker", Category: CategoryDevOps, Synonyms: []string{"docker compose"}},
	{Name: "kubernetes", Category: CategoryDevOps, Synonyms: []string{"k8s", "kube"}},
	{Name: "terraform", Category: CategoryDevOps},
	{Name: "ansible", Category: CategoryDevOps},
	{Name: "jenkins", Category: CategoryDevOps},
	{Name: "git", Category: CategoryDevOps},
	{Name: "github", Category: CategoryDevOps},
	{Name: "gitlab", Category: CategoryDevOps},
	{Name: "bitbucket", Category: CategoryDevOps},
	{Name: "ci/cd", Category: CategoryDevOps, Synonyms: []string{"cicd", "continuous integration", "continuous delivery"}},
	{Name: "linux", Category: CategoryDevOps, Synonyms: []string{"unix"}},
	{Name: "nginx", Category: CategoryDevOps},
	{Name: "apache", Category: CategoryDevOps},
	{Name: "prometheus", Category: CategoryDevOps},
	{Name: "grafana", Category: CategoryDevOps},
	{Name: "helm", Category: CategoryDevOps},
	{Name: "rabbitmq", Category: CategoryDevOps},
	{Name: "kafka", Category: CategoryDevOps, Synonyms: []string{"apache kafka"}},

	{Name: "machine learning", Category: CategoryData, Synonyms: []string{"ml"}},
	{Name: "deep learning", Category: CategoryData},
	{Name: "tensorflow", Category: CategoryData},
	{Name: "pytorch", Category: CategoryData},
	{Name: "pandas", Category: CategoryData},
	{Name: "numpy", Category: CategoryData},
	{Name: "scikit-learn", Category: CategoryData, Synonyms: []string{"sklearn"}},
	{Name: "spark", Category: CategoryData, Synonyms: []string{"apache spark", "pyspark"}},
	{Name: "hadoop", Category: CategoryData},
	{Name: "airflow", Category: CategoryData, Synonyms: []string{"apache airflow"}},
	{Name: "tableau", Category: CategoryData},
	{Name: "power bi", Category: CategoryData, Synonyms: []string{"powerbi"}},
	{Name: "excel", Category: CategoryData, Synonyms: []string{"microsoft excel"}},
	{Name: "etl", Category: CategoryData},
	{Name: "nlp", Category: CategoryData, Synonyms: []string{"natural language processing"}},
	{Name: "computer vision", Category: CategoryData, Synonyms: []string{"opencv"}},
	{Name: "data analysis", Category: CategoryData, Synonyms: []string{"data analytics"}},
	{Name: "snowflake", Category: CategoryData},
	{Name: "dbt", Category: CategoryData},

	{Name: "android", Category: CategoryMobile},
	{Name: "ios", Category: CategoryMobile},
	{Name: "react native", Category: CategoryMobile},
	{Name: "flutter", Category: CategoryMobile},

	{Name: "selenium", Category: CategoryTesting},
	{Name: "cypress", Category: CategoryTesting},
	{Name: "jest", Category: CategoryTesting},
	{Name: "pytest", Category: CategoryTesting},
	{Name: "junit", Category: CategoryTesting},
	{Name: "playwright", Category: CategoryTesting},
	{Name: "unit testing", Category: CategoryTesting, Synonyms: []string{"unit tests"}},

	{Name: "agile", Category: CategoryPractices},
	{Name: "scrum", Category: CategoryPractices},
	{Name: "kanban", Category: CategoryPractices},
	{Name: "oop", Category: CategoryPractices, Synonyms: []string{"object oriented programming", "object-oriented programming"}},
	{Name: "tdd", Category: CategoryPractices, Synonyms: []string{"test driven development", "test-driven development"}},
	{Name: "devops", Category: CategoryPractices},

	{Name: "jira", Category: CategoryTooling},
	{Name: "confluence", Category: CategoryTooling},
	{Name: "websocket", Category: CategoryTooling, Synonyms: []string{"websockets"}},
	{Name: "oauth", Category: CategoryTooling, Synonyms: []string{"oauth2"}},
	{Name: "jwt", Category: CategoryTooling},
	{Name: "json", Category: CategoryTooling},
	{Name: "xml", Category: CategoryTooling},
	{Name: "protobuf", Category: CategoryTooling, Synonyms: []string{"protocol buffers"}},
	{Name: "figma", Category: CategoryTooling},
}
