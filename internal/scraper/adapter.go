// Shared adapter contract plus the one extraction loop every site shares.
// Per-site packages supply only selectors and a domain table.

package scraper

import (
	"log"
	"net/url"
	"strings"
	"time"

	"go-empleo-scraper/internal/fetch"
	"go-empleo-scraper/internal/models"
	"go-empleo-scraper/internal/normalizer"

	"github.com/PuerkitoBio/goquery"
)

// SiteAdapter is site-specific extraction logic. Implementations hold no
// mutable state; the orchestrator decides which adapters run for which
// country.
type SiteAdapter interface {
	// Name identifies the originating site on every extracted record.
	Name() string

	// Mode says which fetch strategy the site needs.
	Mode() fetch.Kind

	// SearchURL builds the results-page URL for a keyword/country pair.
	// Errors only when the site has no domain for the country.
	SearchURL(keyword, country string) (string, error)

	// SelectListings scopes the document to its listing containers.
	SelectListings(doc *goquery.Document) *goquery.Selection

	// ExtractOne pulls one raw record out of a listing container.
	ExtractOne(sel *goquery.Selection) (models.RawJob, error)
}

// ExtractAll parses fetched markup and runs the per-listing loop for an
// adapter: extract, skip-and-log listings without a detail URL, rewrite
// relative URLs against baseURL, resolve relative posted text against now.
func ExtractAll(a SiteAdapter, markup, baseURL, country string, now time.Time) []models.RawJob {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		log.Printf("⚠️ %s: could not parse markup: %v", a.Name(), err)
		return nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		log.Printf("⚠️ %s: bad base url %q: %v", a.Name(), baseURL, err)
		return nil
	}

	var jobs []models.RawJob
	a.SelectListings(doc).Each(func(i int, sel *goquery.Selection) {
		job, err := a.ExtractOne(sel)
		if err != nil {
			log.Printf("    ⚠️ %s: skipping listing %d: %v", a.Name(), i, err)
			return
		}

		// a listing without a detail URL cannot be deduplicated or linked
		job.SourceURL = strings.TrimSpace(job.SourceURL)
		if job.SourceURL == "" {
			log.Printf("    ⚠️ %s: skipping listing %d: no detail URL", a.Name(), i)
			return
		}
		job.SourceURL = Absolutize(base, job.SourceURL)

		job.SourceName = a.Name()
		job.Country = country
		if job.PostedAt == nil && job.Posted != "" {
			job.PostedAt = normalizer.ResolveDate(job.Posted, now)
		}
		jobs = append(jobs, job)
	})
	return jobs
}

// Absolutize rewrites a relative detail URL against the site base.
func Absolutize(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// Slugify turns a keyword into a URL path segment the way the sites expect:
// lowercased, accents stripped, spaces to dashes ("desarrollador móvil" ->
// "desarrollador-movil").
func Slugify(keyword string) string {
	folded := normalizer.Fold(strings.TrimSpace(keyword))
	return strings.ReplaceAll(strings.Join(strings.Fields(folded), " "), " ", "-")
}
