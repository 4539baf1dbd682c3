// Elempleo builds its result list client-side, so it needs the rendered
// fetch. Colombia only.

package elempleo

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"go-empleo-scraper/internal/fetch"
	"go-empleo-scraper/internal/models"
	"go-empleo-scraper/internal/normalizer"

	"github.com/PuerkitoBio/goquery"
)

var domains = map[string]string{
	"co": "https://www.elempleo.com/co",
}

type Scraper struct{}

func New() *Scraper {
	return &Scraper{}
}

func (s *Scraper) Name() string {
	return "Elempleo"
}

func (s *Scraper) Mode() fetch.Kind {
	return fetch.KindRendered
}

func (s *Scraper) SearchURL(keyword, country string) (string, error) {
	domain, ok := domains[country]
	if !ok {
		return "", fmt.Errorf("elempleo has no site for country %q", country)
	}
	return domain + "/ofertas-empleo/?Keyword=" + url.QueryEscape(strings.TrimSpace(keyword)), nil
}

func (s *Scraper) SelectListings(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div.result-item")
}

func (s *Scraper) ExtractOne(sel *goquery.Selection) (models.RawJob, error) {
	titleEl := sel.Find("a.js-offer-title").First()
	if titleEl.Length() == 0 {
		titleEl = sel.Find("h2 a").First()
	}
	title := strings.TrimSpace(titleEl.Text())
	href, _ := titleEl.Attr("href")

	if title == "" && href == "" {
		return models.RawJob{}, fmt.Errorf("listing has neither title nor link")
	}

	company := strings.TrimSpace(sel.Find("span.info-company-name").First().Text())
	salary := strings.TrimSpace(sel.Find("span.info-salary").First().Text())
	location := strings.TrimSpace(sel.Find("span.info-city").First().Text())
	description := strings.TrimSpace(sel.Find("div.info-description").First().Text())

	// "Publicado 12 Jun" or a relative form; strip the label either way
	posted := strings.TrimSpace(sel.Find("span.info-publish-date").First().Text())
	posted = strings.TrimSpace(strings.TrimPrefix(posted, "Publicado"))

	job := models.RawJob{
		Title:       title,
		Company:     company,
		Description: description,
		Salary:      salary,
		Location:    location,
		Posted:      posted,
		SourceURL:   href,
	}

	// the deadline is printed as an absolute dd/mm/yyyy, so the anchor
	// passed to ResolveDate is irrelevant
	if raw := strings.TrimSpace(sel.Find("span.info-expiration-date").First().Text()); raw != "" {
		if fields := strings.Fields(raw); len(fields) > 0 {
			job.Deadline = normalizer.ResolveDate(fields[len(fields)-1], time.Time{})
		}
	}
	return job, nil
}
