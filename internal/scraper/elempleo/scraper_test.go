package elempleo

import (
	"testing"
	"time"

	"go-empleo-scraper/internal/fetch"
	"go-empleo-scraper/internal/scraper"

	"github.com/stretchr/testify/assert"
)

const resultsPage = `
<html><body>
<div class="result-item">
	<h2><a class="js-offer-title" href="/co/ofertas-trabajo/desarrollador-java-1886000000">Desarrollador Java</a></h2>
	<span class="info-company-name">Banco de Occidente</span>
	<span class="info-salary">$4,5 a $5,5 millones COP</span>
	<span class="info-city">Bogotá</span>
	<span class="info-publish-date">Publicado ayer</span>
	<span class="info-expiration-date">Vence 15/08/2024</span>
	<div class="info-description">Desarrollo de microservicios para banca digital.</div>
</div>
<div class="result-item">
	<h2>Oferta sin enlace</h2>
</div>
</body></html>`

func TestSearchURL(t *testing.T) {
	s := New()

	url, err := s.SearchURL("desarrollador java", "co")
	assert.NoError(t, err)
	assert.Equal(t, "https://www.elempleo.com/co/ofertas-empleo/?Keyword=desarrollador+java", url)

	_, err = s.SearchURL("ventas", "mx")
	assert.Error(t, err, "elempleo only maps Colombia")
}

func TestMode(t *testing.T) {
	assert.Equal(t, fetch.KindRendered, New().Mode())
}

func TestExtract(t *testing.T) {
	now := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)
	jobs := scraper.ExtractAll(New(), resultsPage, "https://www.elempleo.com/co/ofertas-empleo/?Keyword=java", "co", now)

	if !assert.Len(t, jobs, 1) {
		return
	}
	job := jobs[0]

	assert.Equal(t, "Desarrollador Java", job.Title)
	assert.Equal(t, "Banco de Occidente", job.Company)
	assert.Equal(t, "https://www.elempleo.com/co/ofertas-trabajo/desarrollador-java-1886000000", job.SourceURL)
	assert.Equal(t, "Bogotá", job.Location)
	assert.Contains(t, job.Salary, "COP")
	assert.Equal(t, "Elempleo", job.SourceName)

	//"Publicado ayer" resolves against the scrape time
	if assert.NotNil(t, job.PostedAt) {
		assert.Equal(t, now.AddDate(0, 0, -1), *job.PostedAt)
	}

	//deadline is an absolute literal
	if assert.NotNil(t, job.Deadline) {
		assert.Equal(t, time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC), *job.Deadline)
	}
}
