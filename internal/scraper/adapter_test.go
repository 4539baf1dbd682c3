package scraper

import (
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"go-empleo-scraper/internal/fetch"
	"go-empleo-scraper/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
)

type fakeAdapter struct{}

func (f *fakeAdapter) Name() string     { return "Fake" }
func (f *fakeAdapter) Mode() fetch.Kind { return fetch.KindStatic }

func (f *fakeAdapter) SearchURL(keyword, country string) (string, error) {
	return "https://jobs.example.com/search?q=" + url.QueryEscape(keyword), nil
}

func (f *fakeAdapter) SelectListings(doc *goquery.Document) *goquery.Selection {
	return doc.Find("li.offer")
}

func (f *fakeAdapter) ExtractOne(sel *goquery.Selection) (models.RawJob, error) {
	link := sel.Find("a").First()
	href, _ := link.Attr("href")
	title := strings.TrimSpace(link.Text())
	if title == "" && href == "" {
		return models.RawJob{}, fmt.Errorf("empty listing")
	}
	return models.RawJob{
		Title:     title,
		Posted:    strings.TrimSpace(sel.Find("span.date").Text()),
		SourceURL: href,
	}, nil
}

const fixtureHTML = `
<html><body><ul>
	<li class="offer"><a href="/ofertas/1">Backend Dev</a><span class="date">hace 3 días</span></li>
	<li class="offer"><span>broken listing without a link</span></li>
	<li class="offer"><a href="https://other.example.com/ofertas/2">Data Engineer</a><span class="date">hoy</span></li>
</ul></body></html>`

func TestExtractAll(t *testing.T) {
	now := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)
	jobs := ExtractAll(&fakeAdapter{}, fixtureHTML, "https://jobs.example.com/search?q=go", "co", now)

	//the listing without a detail URL is skipped, not an error
	assert.Len(t, jobs, 2)

	assert.Equal(t, "Backend Dev", jobs[0].Title)
	assert.Equal(t, "https://jobs.example.com/ofertas/1", jobs[0].SourceURL, "relative URL rewritten against the site domain")
	assert.Equal(t, "Fake", jobs[0].SourceName)
	assert.Equal(t, "co", jobs[0].Country)
	if assert.NotNil(t, jobs[0].PostedAt) {
		assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), *jobs[0].PostedAt)
	}

	assert.Equal(t, "https://other.example.com/ofertas/2", jobs[1].SourceURL, "absolute URL untouched")
	if assert.NotNil(t, jobs[1].PostedAt) {
		assert.Equal(t, now, *jobs[1].PostedAt)
	}
}

func TestExtractAllBadMarkup(t *testing.T) {
	//goquery parses almost anything; a non-HTML payload just yields no listings
	jobs := ExtractAll(&fakeAdapter{}, "{\"error\": \"blocked\"}", "https://jobs.example.com/", "co", time.Now())
	assert.Empty(t, jobs)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "desarrollador-movil", Slugify("Desarrollador Móvil"))
	assert.Equal(t, "golang-developer", Slugify("  Golang   Developer "))
	assert.Equal(t, "diseno-grafico", Slugify("Diseño Gráfico"))
}
