// Computrabajo serves its result pages fully server-rendered, so the static
// fetch is enough. One subdomain per country.

package computrabajo

import (
	"fmt"
	"strings"

	"go-empleo-scraper/internal/fetch"
	"go-empleo-scraper/internal/models"
	"go-empleo-scraper/internal/scraper"

	"github.com/PuerkitoBio/goquery"
)

var domains = map[string]string{
	"co": "https://co.computrabajo.com",
	"mx": "https://mx.computrabajo.com",
	"ar": "https://ar.computrabajo.com",
	"pe": "https://pe.computrabajo.com",
	"cl": "https://cl.computrabajo.com",
}

type Scraper struct{}

func New() *Scraper {
	return &Scraper{}
}

func (s *Scraper) Name() string {
	return "Computrabajo"
}

func (s *Scraper) Mode() fetch.Kind {
	return fetch.KindStatic
}

func (s *Scraper) SearchURL(keyword, country string) (string, error) {
	domain, ok := domains[country]
	if !ok {
		return "", fmt.Errorf("computrabajo has no site for country %q", country)
	}
	return domain + "/trabajo-de-" + scraper.Slugify(keyword), nil
}

func (s *Scraper) SelectListings(doc *goquery.Document) *goquery.Selection {
	listings := doc.Find("article.box_offer")
	if listings.Length() == 0 {
		// older markup still served on some country subdomains
		listings = doc.Find("article.bRS")
	}
	return listings
}

func (s *Scraper) ExtractOne(sel *goquery.Selection) (models.RawJob, error) {
	titleEl := sel.Find("h2.fs18 a.js-o-link").First()
	if titleEl.Length() == 0 {
		titleEl = sel.Find("h2 a").First()
	}
	title := strings.TrimSpace(titleEl.Text())
	href, _ := titleEl.Attr("href")

	if title == "" && href == "" {
		return models.RawJob{}, fmt.Errorf("listing has neither title nor link")
	}

	company := strings.TrimSpace(sel.Find("p.dIB a.fc_base").First().Text())
	if company == "" {
		company = strings.TrimSpace(sel.Find(".it-blanket").First().Text())
	}

	location := strings.TrimSpace(sel.Find("p.fs16 span.mr10").First().Text())
	salary := strings.TrimSpace(sel.Find("span.icon.i_salary").Parent().Text())
	modality := strings.TrimSpace(sel.Find("span.icon.i_home_office").Parent().Text())
	posted := strings.TrimSpace(sel.Find("p.fs13.fc_aux").Last().Text())
	description := strings.TrimSpace(sel.Find("p.fc_aux.mt10").First().Text())

	return models.RawJob{
		Title:       title,
		Company:     company,
		Description: description,
		Salary:      salary,
		Modality:    modality,
		Location:    location,
		Posted:      posted,
		SourceURL:   href,
	}, nil
}
