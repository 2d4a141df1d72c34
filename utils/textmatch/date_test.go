package textmatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateMatches(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		isoDate  string
		expected bool
	}{
		{"day month year", "Né le 07112004 à Rabat", "2004-11-07", true},
		{"year month day", "20041107", "2004-11-07", true},
		{"two digit year", "07/11/04", "2004-11-07", true},
		{"two digit year first", "04.11.07", "2004-11-07", true},
		{"separators dropped with noise", "Session: 15/06/2022 N°123", "2022-06-15", true},
		{"arabic-indic digits", "تاريخ الازدياد ١٥/٠٦/٢٠٢٢", "2022-06-15", true},
		{"unrelated digits", "19990101", "2004-11-07", false},
		{"padding zero lost", "1562022", "2022-06-15", false},
		{"digits transposed", "70112004", "2004-11-07", false},
		{"no digits", "ROYAUME DU MAROC", "2004-11-07", false},
		{"empty text", "", "2004-11-07", false},
		{"impossible date", "30022023", "2023-02-30", false},
		{"garbage date", "07112004", "not a date", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DateMatches(tt.text, tt.isoDate))
		})
	}
}

func TestDatePatterns(t *testing.T) {
	d := time.Date(2004, time.November, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"07112004", "20041107", "071104", "041107"}, DatePatterns(d))
}

func TestFindDateReportsPattern(t *testing.T) {
	p, ok := FindDate("bac 2022 obtenu le 220615", "2022-06-15")
	require.True(t, ok)
	assert.Equal(t, "220615", p)
}

func TestParseISODate(t *testing.T) {
	d, err := ParseISODate(" 2022-06-15 ")
	require.NoError(t, err)
	assert.Equal(t, 2022, d.Year())

	d, err = ParseISODate("2004-11-07T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.November, d.Month())

	_, err = ParseISODate("2021-13-01")
	assert.Error(t, err)
}
