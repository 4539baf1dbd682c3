package normalizer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	relativeRegex = regexp.MustCompile(`hace\s+(\d+|un|una)\s+(hora|dia|semana|mes|ano)s?`)
	isoDateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	slashRegex    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// ResolveDate turns a posted-date string into an absolute time anchored at
// now. Handles the relative forms the sites use ("hoy", "ayer",
// "hace N horas/días/semanas/meses/años") plus ISO and dd/mm/yyyy literals.
// Anything unparseable resolves to nil, never an error.
func ResolveDate(text string, now time.Time) *time.Time {
	folded := Fold(Collapse(text))
	if folded == "" {
		return nil
	}

	switch folded {
	case "hoy", "publicado hoy":
		return &now
	case "ayer", "publicado ayer":
		t := now.AddDate(0, 0, -1)
		return &t
	}

	if m := relativeRegex.FindStringSubmatch(folded); m != nil {
		n := 1
		if m[1] != "un" && m[1] != "una" {
			n, _ = strconv.Atoi(m[1])
		}
		var t time.Time
		switch m[2] {
		case "hora":
			t = now.Add(-time.Duration(n) * time.Hour)
		case "dia":
			t = now.AddDate(0, 0, -n)
		case "semana":
			t = now.AddDate(0, 0, -7*n)
		case "mes":
			t = now.AddDate(0, -n, 0)
		case "ano":
			t = now.AddDate(-n, 0, 0)
		}
		return &t
	}

	// absolute forms pass through unchanged
	if isoDateRegex.MatchString(folded) {
		if t, err := time.Parse("2006-01-02", folded[:10]); err == nil {
			return &t
		}
	}
	if m := slashRegex.FindStringSubmatch(strings.TrimSpace(folded)); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			return &t
		}
	}

	return nil
}
