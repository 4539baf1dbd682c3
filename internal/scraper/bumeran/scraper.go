// Bumeran is a React app, so listing cards only exist after scripts run.

package bumeran

import (
	"fmt"
	"strings"

	"go-empleo-scraper/internal/fetch"
	"go-empleo-scraper/internal/models"
	"go-empleo-scraper/internal/scraper"

	"github.com/PuerkitoBio/goquery"
)

var domains = map[string]string{
	"ar": "https://www.bumeran.com.ar",
	"pe": "https://www.bumeran.com.pe",
	"mx": "https://www.bumeran.com.mx",
}

type Scraper struct{}

func New() *Scraper {
	return &Scraper{}
}

func (s *Scraper) Name() string {
	return "Bumeran"
}

func (s *Scraper) Mode() fetch.Kind {
	return fetch.KindRendered
}

func (s *Scraper) SearchURL(keyword, country string) (string, error) {
	domain, ok := domains[country]
	if !ok {
		return "", fmt.Errorf("bumeran has no site for country %q", country)
	}
	return domain + "/empleos-busqueda-" + scraper.Slugify(keyword) + ".html", nil
}

func (s *Scraper) SelectListings(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div#listado-avisos > a")
}

func (s *Scraper) ExtractOne(sel *goquery.Selection) (models.RawJob, error) {
	title := strings.TrimSpace(sel.Find("h2").First().Text())
	href, _ := sel.Attr("href")

	if title == "" && href == "" {
		return models.RawJob{}, fmt.Errorf("listing has neither title nor link")
	}

	company := strings.TrimSpace(sel.Find("h3").First().Text())
	// anonymous postings render the company slot as "Confidencial" already,
	// which the normalizer keeps as-is

	location := strings.TrimSpace(sel.Find(`[aria-label="location"]`).First().Text())
	modality := strings.TrimSpace(sel.Find(`[aria-label="modalidad de trabajo"]`).First().Text())
	salary := strings.TrimSpace(sel.Find(`[aria-label="salario"]`).First().Text())
	posted := strings.TrimSpace(sel.Find("h4").Last().Text())

	return models.RawJob{
		Title:     title,
		Company:   company,
		Salary:    salary,
		Modality:  modality,
		Location:  location,
		Posted:    posted,
		SourceURL: href,
	}, nil
}
