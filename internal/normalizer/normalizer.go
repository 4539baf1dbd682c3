// Turns raw scraped fields into the canonical vocabularies the rest of the
// app displays. Every rule here is total: bad input degrades to a sentinel,
// never to an error, and re-normalizing canonical output is a no-op.

package normalizer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go-empleo-scraper/internal/models"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	CompanyUndisclosed  = "Confidencial"
	LocationUnspecified = "No especificada"

	ModalityRemote      = "Remoto"
	ModalityOnSite      = "Presencial"
	ModalityHybrid      = "Híbrido"
	ModalityUnspecified = "No especificado"

	ExperienceJunior      = "Junior"
	ExperienceSemiSenior  = "Semi-Senior"
	ExperienceSenior      = "Senior"
	ExperienceUnspecified = "No especificado"
)

var (
	amountRegex = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)*`)
	yearsRegex  = regexp.MustCompile(`(\d+)\s*\+?\s*(?:anos?|years?)`)

	// check order matters: first marker found wins
	currencyMarkers = []struct {
		marker string
		code   string
	}{
		{"usd", "USD"},
		{"eur", "EUR"},
		{"cop", "COP"},
		{"brl", "BRL"},
		{"mxn", "MXN"},
		{"ars", "ARS"},
		{"pen", "PEN"},
		{"clp", "CLP"},
	}
)

type Normalizer struct {
	// Now is injectable so relative-date resolution is testable.
	Now func() time.Time
}

func New() *Normalizer {
	return &Normalizer{Now: time.Now}
}

// Fold lowercases and strips accents, so "Híbrido" matches "hibrid".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.ToLower(result)
}

// Collapse squeezes whitespace runs to single spaces and trims.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func Company(s string) string {
	s = Collapse(s)
	if s == "" {
		return CompanyUndisclosed
	}
	return s
}

func Location(s string) string {
	s = Collapse(s)
	if s == "" || Fold(s) == "n/a" {
		return LocationUnspecified
	}
	return s
}

// Salary parses free text into a typed value. Empty or explicitly
// confidential text is the Confidencial sentinel; text with no numeric
// tokens (e.g. "negotiable") stays N/A.
func Salary(text string) models.Salary {
	folded := Fold(Collapse(text))
	if folded == "" || folded == "n/a" || strings.Contains(folded, "confidencial") {
		return models.Salary{Kind: models.SalaryConfidential}
	}

	currency := ""
	for _, c := range currencyMarkers {
		if strings.Contains(folded, c.marker) {
			currency = c.code
			break
		}
	}

	tokens := amountRegex.FindAllString(folded, 2)
	switch len(tokens) {
	case 1:
		v, ok := parseAmount(tokens[0])
		if !ok {
			return models.Salary{Kind: models.SalaryUnparsed}
		}
		return models.Salary{Kind: models.SalarySingle, Min: v, Currency: currency}
	case 2:
		lo, okLo := parseAmount(tokens[0])
		hi, okHi := parseAmount(tokens[1])
		if !okLo || !okHi {
			return models.Salary{Kind: models.SalaryUnparsed}
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		return models.Salary{Kind: models.SalaryRange, Min: lo, Max: hi, Currency: currency}
	default:
		return models.Salary{Kind: models.SalaryUnparsed}
	}
}

// parseAmount reads one numeric token using the site convention of "." as
// thousands separator and "," as decimal separator. A lone separator whose
// trailing groups are all three digits is treated as a thousands separator
// (Computrabajo MX writes "60,000" where CO writes "60.000").
func parseAmount(tok string) (float64, bool) {
	tok = strings.Trim(tok, ".,")
	hasDot := strings.Contains(tok, ".")
	hasComma := strings.Contains(tok, ",")
	switch {
	case hasDot && hasComma:
		tok = strings.ReplaceAll(tok, ".", "")
		tok = strings.Replace(tok, ",", ".", 1)
	case hasComma:
		if groupsOfThree(tok, ",") {
			tok = strings.ReplaceAll(tok, ",", "")
		} else {
			tok = strings.Replace(tok, ",", ".", 1)
		}
	case hasDot:
		if groupsOfThree(tok, ".") {
			tok = strings.ReplaceAll(tok, ".", "")
		}
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func groupsOfThree(tok, sep string) bool {
	parts := strings.Split(tok, sep)
	if len(parts) < 2 || len(parts[0]) == 0 || len(parts[0]) > 3 {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return false
		}
	}
	return true
}

// Modality maps free text onto the fixed modality vocabulary.
func Modality(text string) string {
	folded := Fold(text)
	switch {
	case strings.Contains(folded, "remot"), strings.Contains(folded, "teletrabajo"):
		return ModalityRemote
	case strings.Contains(folded, "presencial"), strings.Contains(folded, "on-site"),
		strings.Contains(folded, "on site"), strings.Contains(folded, "in-person"):
		return ModalityOnSite
	case strings.Contains(folded, "hibrid"), strings.Contains(folded, "hybrid"):
		return ModalityHybrid
	default:
		return ModalityUnspecified
	}
}

// Experience maps free text onto the fixed seniority vocabulary, falling back
// to a "<N>+ años" extraction when no level keyword is present.
func Experience(text string) string {
	folded := Fold(text)
	switch {
	case strings.Contains(folded, "junior"):
		return ExperienceJunior
	case strings.Contains(folded, "semi-senior"), strings.Contains(folded, "semi senior"),
		strings.Contains(folded, "mid"):
		return ExperienceSemiSenior
	case strings.Contains(folded, "senior"):
		return ExperienceSenior
	}
	if m := yearsRegex.FindStringSubmatch(folded); m != nil {
		return m[1] + "+ años"
	}
	return ExperienceUnspecified
}

// Normalize canonicalizes one raw record. It never fails; every field has a
// defined fallback.
func (n *Normalizer) Normalize(raw models.RawJob) models.CanonicalJob {
	job := models.CanonicalJob{
		Title:       Collapse(raw.Title),
		Company:     Company(raw.Company),
		Description: Collapse(raw.Description),
		Salary:      Salary(raw.Salary),
		Modality:    Modality(raw.Modality),
		Experience:  Experience(raw.Experience),
		Location:    Location(raw.Location),
		Deadline:    raw.Deadline,
		SourceURL:   strings.TrimSpace(raw.SourceURL),
		SourceName:  raw.SourceName,
		Country:     strings.ToLower(strings.TrimSpace(raw.Country)),
	}

	// already-resolved dates pass through untouched
	if raw.PostedAt != nil {
		job.CreationDate = raw.PostedAt
	} else {
		job.CreationDate = ResolveDate(raw.Posted, n.Now())
	}
	return job
}

// NormalizeAll applies Normalize per record; records never see each other.
func (n *Normalizer) NormalizeAll(raw []models.RawJob) []models.CanonicalJob {
	jobs := make([]models.CanonicalJob, 0, len(raw))
	for _, r := range raw {
		jobs = append(jobs, n.Normalize(r))
	}
	return jobs
}
