package normalizer

import (
	"testing"
	"time"

	"go-empleo-scraper/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCollapse(t *testing.T) {
	assert.Equal(t, "Desarrollador Backend Go", Collapse("  Desarrollador \n\t Backend   Go  "))
	assert.Equal(t, "", Collapse("   \n\t  "))
}

func TestCompanySentinel(t *testing.T) {
	assert.Equal(t, "Confidencial", Company(""))
	assert.Equal(t, "Confidencial", Company("   "))
	assert.Equal(t, "Globant", Company(" Globant "))
}

func TestLocationSentinel(t *testing.T) {
	assert.Equal(t, "No especificada", Location(""))
	assert.Equal(t, "No especificada", Location("n/a"))
	assert.Equal(t, "No especificada", Location("N/A"))
	assert.Equal(t, "Bogotá, D.C.", Location("  Bogotá,   D.C. "))
}

func TestSalaryRange(t *testing.T) {
	s := Salary("$60.000 - $80.000 USD")
	assert.Equal(t, models.SalaryRange, s.Kind)
	assert.Equal(t, 60000.0, s.Min)
	assert.Equal(t, 80000.0, s.Max)
	assert.Equal(t, "USD", s.Currency)
}

func TestSalarySingle(t *testing.T) {
	s := Salary("COP 3.500.000 al mes")
	assert.Equal(t, models.SalarySingle, s.Kind)
	assert.Equal(t, 3500000.0, s.Min)
	assert.Equal(t, "COP", s.Currency)
}

func TestSalaryConfidential(t *testing.T) {
	assert.Equal(t, models.SalaryConfidential, Salary("").Kind)
	assert.Equal(t, models.SalaryConfidential, Salary("n/a").Kind)
	assert.Equal(t, models.SalaryConfidential, Salary("Salario confidencial").Kind)
}

func TestSalaryNoNumbers(t *testing.T) {
	assert.Equal(t, models.SalaryUnparsed, Salary("negotiable").Kind)
	assert.Equal(t, models.SalaryUnparsed, Salary("a convenir").Kind)
}

func TestSalaryDecimalComma(t *testing.T) {
	s := Salary("1.234,56 EUR")
	assert.Equal(t, models.SalarySingle, s.Kind)
	assert.Equal(t, 1234.56, s.Min)
	assert.Equal(t, "EUR", s.Currency)
}

func TestSalaryCommaThousands(t *testing.T) {
	// MX formats thousands with commas
	s := Salary("$20,000 - $25,000 MXN mensual")
	assert.Equal(t, models.SalaryRange, s.Kind)
	assert.Equal(t, 20000.0, s.Min)
	assert.Equal(t, 25000.0, s.Max)
	assert.Equal(t, "MXN", s.Currency)
}

func TestSalaryRangeOrdered(t *testing.T) {
	s := Salary("entre 80.000 y 60.000 USD")
	assert.Equal(t, 60000.0, s.Min)
	assert.Equal(t, 80000.0, s.Max)
}

func TestSalaryDisplayRoundTrip(t *testing.T) {
	//a displayed salary must parse back to itself
	for _, text := range []string{"$60.000 - $80.000 USD", "COP 3.500.000", "Confidencial", "1.234,56 EUR"} {
		first := Salary(text)
		second := Salary(first.Display())
		assert.Equal(t, first, second, "display of %q not stable", text)
	}
}

func TestModality(t *testing.T) {
	assert.Equal(t, "Remoto", Modality("100% remoto"))
	assert.Equal(t, "Remoto", Modality("Teletrabajo"))
	assert.Equal(t, "Presencial", Modality("Trabajo Presencial"))
	assert.Equal(t, "Presencial", Modality("On-site"))
	assert.Equal(t, "Híbrido", Modality("Esquema híbrido"))
	assert.Equal(t, "Híbrido", Modality("Hybrid"))
	assert.Equal(t, "No especificado", Modality("tiempo completo"))
}

func TestExperience(t *testing.T) {
	assert.Equal(t, "Junior", Experience("Desarrollador Junior"))
	assert.Equal(t, "Semi-Senior", Experience("Semi-senior"))
	assert.Equal(t, "Semi-Senior", Experience("Mid level"))
	assert.Equal(t, "Senior", Experience("Ingeniero Senior"))
	assert.Equal(t, "3+ años", Experience("mínimo 3 años de experiencia"))
	assert.Equal(t, "5+ años", Experience("5+ years of experience"))
	assert.Equal(t, "No especificado", Experience("con experiencia"))
}

func TestNormalizeIdempotent(t *testing.T) {
	n := New()
	fixed := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)
	n.Now = func() time.Time { return fixed }

	raw := models.RawJob{
		Title:      "  Desarrollador   Backend ",
		Company:    "",
		Salary:     "$60.000 - $80.000 USD",
		Modality:   "remoto",
		Experience: "junior",
		Location:   "Bogotá",
		Posted:     "hace 3 días",
		SourceURL:  "https://co.computrabajo.com/ofertas/123",
		SourceName: "Computrabajo",
		Country:    "co",
	}

	first := n.Normalize(raw)

	// feed the canonical values back through as if re-scraped
	roundTrip := models.RawJob{
		Title:      first.Title,
		Company:    first.Company,
		Salary:     first.Salary.Display(),
		Modality:   first.Modality,
		Experience: first.Experience,
		Location:   first.Location,
		PostedAt:   first.CreationDate,
		SourceURL:  first.SourceURL,
		SourceName: first.SourceName,
		Country:    first.Country,
	}
	second := n.Normalize(roundTrip)

	assert.Equal(t, first, second)
	assert.Equal(t, "Confidencial", first.Company)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), *first.CreationDate)
}

func TestNormalizeResolvedDatePassthrough(t *testing.T) {
	n := New()
	resolved := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	out := n.Normalize(models.RawJob{
		PostedAt:  &resolved,
		Posted:    "hace 3 días", //stale text must lose against the parsed date
		SourceURL: "https://example.com/1",
	})
	assert.Equal(t, resolved, *out.CreationDate)
}
