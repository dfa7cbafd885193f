package importer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"talentsift/internal/config"
)

func newTestImporter(domains ...string) *Importer {
	cfg := config.ImporterConfig{
		AllowedDomains: domains,
		RequestTimeout: 5 * time.Second,
	}
	return New(cfg, zap.NewNop())
}

func TestFetchJSONLDPosting(t *testing.T) {
	page := `<html><head>
		<script type="application/ld+json">{
			"@context": "https://schema.org",
			"@graph": [
				{"@type": "Organization", "name": "Initech"},
				{
					"@type": "JobPosting",
					"title": "Senior Backend Engineer",
					"description": "<p>We need <b>Go</b> &amp; PostgreSQL experience.</p><ul><li>5 years backend</li></ul>",
					"hiringOrganization": {"@type": "Organization", "name": "Initech"},
					"jobLocation": [{"@type": "Place", "address": {"addressLocality": "Austin", "addressRegion": "TX"}}]
				}
			]
		}</script>
		</head><body><h1>Careers</h1></body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	p, err := newTestImporter().Fetch(context.Background(), server.URL+"/jobs/42")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if p.Title != "Senior Backend Engineer" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.Company != "Initech" {
		t.Errorf("Company = %q", p.Company)
	}
	if p.Location != "Austin" {
		t.Errorf("Location = %q", p.Location)
	}
	if strings.Contains(p.Description, "<") {
		t.Errorf("Description still has markup: %q", p.Description)
	}
	for _, want := range []string{"Go & PostgreSQL", "5 years backend"} {
		if !strings.Contains(p.Description, want) {
			t.Errorf("Description missing %q: %q", want, p.Description)
		}
	}
}

func TestFetchHeuristicFallback(t *testing.T) {
	page := `<html><head>
		<title>Data Analyst - Initech Careers</title>
		<meta property="og:title" content="Data Analyst">
		<meta property="og:site_name" content="Initech">
		</head><body>
		<h1>Data Analyst</h1>
		<script>var tracking = "NOISE_TOKEN";</script>
		<p>Analyze dashboards with SQL and Python. Communicate findings to stakeholders.</p>
		</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	p, err := newTestImporter().Fetch(context.Background(), server.URL+"/careers/analyst")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if p.Title != "Data Analyst" {
		t.Errorf("Title = %q, want og:title to win", p.Title)
	}
	if p.Company != "Initech" {
		t.Errorf("Company = %q", p.Company)
	}
	if !strings.Contains(p.Description, "SQL and Python") {
		t.Errorf("Description missing body text: %q", p.Description)
	}
	if strings.Contains(p.Description, "NOISE_TOKEN") {
		t.Errorf("Description includes script content: %q", p.Description)
	}
}

func TestFetchDomainNotAllowed(t *testing.T) {
	im := newTestImporter("example.com")
	_, err := im.Fetch(context.Background(), "http://127.0.0.1:9/jobs/1")
	if !errors.Is(err, ErrDomainNotAllowed) {
		t.Fatalf("Fetch = %v, want ErrDomainNotAllowed", err)
	}
}

func TestFetchInvalidURL(t *testing.T) {
	im := newTestImporter()
	for _, raw := range []string{"", "not a url", "ftp://example.com/jobs", "/relative/path"} {
		if _, err := im.Fetch(context.Background(), raw); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("Fetch(%q) = %v, want ErrInvalidURL", raw, err)
		}
	}
}

func TestFetchEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Jobs</title></head><body> hi </body></html>`))
	}))
	defer server.Close()

	_, err := newTestImporter().Fetch(context.Background(), server.URL+"/jobs")
	if !errors.Is(err, ErrEmptyPosting) {
		t.Fatalf("Fetch = %v, want ErrEmptyPosting", err)
	}
}

func TestDomainAllowedSuffix(t *testing.T) {
	im := newTestImporter("example.com")

	tests := []struct {
		host string
		want bool
	}{
		{"example.com", true},
		{"jobs.example.com", true},
		{"EXAMPLE.com", true},
		{"evilexample.com", false},
		{"example.com.evil.io", false},
	}
	for _, tt := range tests {
		if got := im.domainAllowed(tt.host); got != tt.want {
			t.Errorf("domainAllowed(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}

func TestParseJobPostingShapes(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   Posting
		wantOK bool
	}{
		{
			name:   "top level object",
			raw:    `{"@type": "JobPosting", "title": "SRE", "description": "Keep the lights on for ops", "hiringOrganization": "Hooli"}`,
			want:   Posting{Title: "SRE", Company: "Hooli", Description: "Keep the lights on for ops"},
			wantOK: true,
		},
		{
			name:   "array with type list",
			raw:    `[{"@type": ["ListItem"]}, {"@type": ["Thing", "JobPosting"], "title": "QA Engineer", "description": "Test the platform end to end"}]`,
			want:   Posting{Title: "QA Engineer", Description: "Test the platform end to end"},
			wantOK: true,
		},
		{
			name:   "location as place name",
			raw:    `{"@type": "JobPosting", "title": "Writer", "description": "Write docs for the API team", "jobLocation": {"@type": "Place", "name": "Remote"}}`,
			want:   Posting{Title: "Writer", Description: "Write docs for the API team", Location: "Remote"},
			wantOK: true,
		},
		{
			name:   "no job posting",
			raw:    `{"@type": "Organization", "name": "Initech"}`,
			wantOK: false,
		},
		{
			name:   "invalid json",
			raw:    `{"@type": "JobPosting",`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		got, ok := parseJobPosting(tt.raw)
		if ok != tt.wantOK {
			t.Errorf("%s: ok = %v, want %v", tt.name, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if got.Title != tt.want.Title || got.Company != tt.want.Company ||
			got.Location != tt.want.Location || got.Description != tt.want.Description {
			t.Errorf("%s: parseJobPosting = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}
