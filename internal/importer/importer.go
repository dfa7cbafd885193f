// Package importer fetches a job posting from a careers page URL and
// reduces it to the title, company, location and description the job
// pipeline stores. Structured JSON-LD data is preferred; page heuristics
// and an optional headless browser cover the rest.
package importer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"talentsift/internal/config"
)

var (
	ErrInvalidURL       = errors.New("invalid job posting url")
	ErrDomainNotAllowed = errors.New("domain not allowed")
	ErrEmptyPosting     = errors.New("no job posting found at url")
)

// Descriptions shorter than this are treated as a failed extraction.
const minDescriptionChars = 10

type Posting struct {
	Title       string
	Company     string
	Location    string
	Description string
	URL         string
}

func (p Posting) usable() bool {
	return strings.TrimSpace(p.Title) != "" &&
		len(strings.TrimSpace(p.Description)) >= minDescriptionChars
}

type Importer struct {
	cfg    config.ImporterConfig
	logger *zap.Logger
}

func New(cfg config.ImporterConfig, logger *zap.Logger) *Importer {
	return &Importer{cfg: cfg, logger: logger}
}

// Fetch downloads the page at rawURL and extracts a job posting from it.
// The static pass runs first; when it comes back unusable and headless
// mode is enabled, a browser render is tried before giving up.
func (im *Importer) Fetch(ctx context.Context, rawURL string) (Posting, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Posting{}, ErrInvalidURL
	}
	host := hostWithoutPort(u.Host)
	if !im.domainAllowed(host) {
		return Posting{}, fmt.Errorf("%w: %s", ErrDomainNotAllowed, host)
	}

	p, staticErr := im.fetchStatic(ctx, u.String(), host)
	if staticErr == nil && p.usable() {
		return p, nil
	}

	if im.cfg.Headless {
		if im.logger != nil {
			im.logger.Info("static fetch unusable, retrying headless",
				zap.String("url", u.String()), zap.Error(staticErr))
		}
		hp, headlessErr := im.fetchHeadless(ctx, u.String())
		if headlessErr == nil && hp.usable() {
			return hp, nil
		}
		if staticErr == nil {
			staticErr = headlessErr
		}
	}

	if staticErr != nil {
		return Posting{}, fmt.Errorf("fetch job posting: %w", staticErr)
	}
	return Posting{}, ErrEmptyPosting
}

// pageCapture holds everything the collector saw; the best candidate per
// field is resolved after the crawl finishes.
type pageCapture struct {
	ld       Posting
	ldFound  bool
	ogTitle  string
	ogSite   string
	h1       string
	docTitle string
	bodyText string
}

func (im *Importer) fetchStatic(ctx context.Context, pageURL, host string) (Posting, error) {
	c := colly.NewCollector(colly.AllowedDomains(host))
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, RandomDelay: 500 * time.Millisecond, Delay: 250 * time.Millisecond})
	c.SetRequestTimeout(im.requestTimeout())

	var page pageCapture
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})

	c.OnHTML(`script[type="application/ld+json"]`, func(e *colly.HTMLElement) {
		if page.ldFound {
			return
		}
		if p, ok := parseJobPosting(e.Text); ok {
			page.ld = p
			page.ldFound = true
		}
	})

	c.OnHTML(`meta[property="og:title"]`, func(e *colly.HTMLElement) {
		if page.ogTitle == "" {
			page.ogTitle = strings.TrimSpace(e.Attr("content"))
		}
	})

	c.OnHTML(`meta[property="og:site_name"]`, func(e *colly.HTMLElement) {
		if page.ogSite == "" {
			page.ogSite = strings.TrimSpace(e.Attr("content"))
		}
	})

	c.OnHTML("h1", func(e *colly.HTMLElement) {
		if page.h1 == "" {
			page.h1 = strings.TrimSpace(e.Text)
		}
	})

	c.OnHTML("title", func(e *colly.HTMLElement) {
		if page.docTitle == "" {
			page.docTitle = strings.TrimSpace(e.Text)
		}
	})

	c.OnHTML("body", func(e *colly.HTMLElement) {
		body := e.DOM.Clone()
		body.Find("script,style,noscript").Remove()
		page.bodyText = strings.TrimSpace(body.Text())
	})

	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return Posting{}, ctx.Err()
	}
	if err := c.Visit(pageURL); err != nil {
		return Posting{}, err
	}
	c.Wait()
	if reqErr != nil {
		return Posting{}, reqErr
	}

	return page.resolve(pageURL), nil
}

func (p pageCapture) resolve(pageURL string) Posting {
	out := Posting{URL: pageURL}
	if p.ldFound {
		out.Title = p.ld.Title
		out.Company = p.ld.Company
		out.Location = p.ld.Location
		out.Description = p.ld.Description
	}
	out.Title = firstNonEmpty(out.Title, p.ogTitle, p.h1, p.docTitle)
	out.Company = firstNonEmpty(out.Company, p.ogSite)
	if strings.TrimSpace(out.Description) == "" {
		out.Description = p.bodyText
	}
	return out
}

func (im *Importer) domainAllowed(host string) bool {
	if len(im.cfg.AllowedDomains) == 0 {
		return true
	}
	host = strings.ToLower(host)
	for _, d := range im.cfg.AllowedDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func (im *Importer) requestTimeout() time.Duration {
	if im.cfg.RequestTimeout > 0 {
		return im.cfg.RequestTimeout
	}
	return 20 * time.Second
}

func hostWithoutPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func httpHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "TalentSiftImporter/0.1",
		"Accept-Language": "en-US,en;q=0.9",
	}
}
