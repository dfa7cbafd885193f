package importer

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// fetchHeadless renders the page in headless Chrome for postings that
// only exist after client-side hydration. JSON-LD blocks injected by the
// app are still preferred over the rendered text.
func (im *Importer) fetchHeadless(ctx context.Context, pageURL string) (Posting, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(httpHeaders()["User-Agent"]),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, im.requestTimeout())
	defer reqCancel()

	var title, bodyText string
	var ldBlocks []string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.Title(&title),
		chromedp.EvaluateAsDevTools(`Array.from(document.querySelectorAll('script[type="application/ld+json"]'))
			.map(s => s.textContent)`, &ldBlocks),
		chromedp.EvaluateAsDevTools(`document.body ? document.body.innerText : ''`, &bodyText),
	)
	if err != nil {
		return Posting{}, err
	}

	for _, raw := range ldBlocks {
		if p, ok := parseJobPosting(raw); ok {
			p.URL = pageURL
			p.Title = firstNonEmpty(p.Title, title)
			if strings.TrimSpace(p.Description) == "" {
				p.Description = strings.TrimSpace(bodyText)
			}
			return p, nil
		}
	}

	p := Posting{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(bodyText),
		URL:         pageURL,
	}
	if !p.usable() {
		return Posting{}, ErrEmptyPosting
	}
	return p, nil
}
