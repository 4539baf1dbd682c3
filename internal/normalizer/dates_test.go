package normalizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var anchor = time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)

func TestResolveDateRelative(t *testing.T) {
	cases := map[string]time.Time{
		"hoy":            anchor,
		"Hoy":            anchor,
		"ayer":           anchor.AddDate(0, 0, -1),
		"hace 3 días":    time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		"Hace 3 dias":    time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		"hace un día":    anchor.AddDate(0, 0, -1),
		"hace 5 horas":   anchor.Add(-5 * time.Hour),
		"hace una hora":  anchor.Add(-time.Hour),
		"hace 2 semanas": anchor.AddDate(0, 0, -14),
		"hace 1 mes":     anchor.AddDate(0, -1, 0),
		"hace 2 años":    anchor.AddDate(-2, 0, 0),
	}
	for input, want := range cases {
		got := ResolveDate(input, anchor)
		if assert.NotNil(t, got, "input %q", input) {
			assert.Equal(t, want, *got, "input %q", input)
		}
	}
}

func TestResolveDateAbsolute(t *testing.T) {
	got := ResolveDate("2024-06-15", anchor)
	if assert.NotNil(t, got) {
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), *got)
	}

	got = ResolveDate("15/06/2024", anchor)
	if assert.NotNil(t, got) {
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), *got)
	}
}

func TestResolveDateUnparseable(t *testing.T) {
	assert.Nil(t, ResolveDate("", anchor))
	assert.Nil(t, ResolveDate("Recent", anchor))
	assert.Nil(t, ResolveDate("publicación destacada", anchor))
	assert.Nil(t, ResolveDate("99/99/2024", anchor))
}
