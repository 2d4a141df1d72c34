package utils

import (
	"regexp"
	"strings"
	"time"

	"github.com/Aashish23092/inscription-verification/dto"
	"github.com/Aashish23092/inscription-verification/utils/textmatch"
)

var (
	cinLabelRegex    = regexp.MustCompile(`\b(?:C\.?I\.?N\.?|N°|NO)\s*[:.]?\s*([A-Z]{1,2}[0-9]{5,7})\b`)
	cinRegex         = regexp.MustCompile(`\b[A-Z]{1,2}[0-9]{5,7}\b`)
	massarLabelRegex = regexp.MustCompile(`MASSAR\s*[:.]?\s*([A-Z][0-9]{9})\b`)
	massarRegex      = regexp.MustCompile(`\b[A-Z][0-9]{9}\b`)
	dateRegex        = regexp.MustCompile(`\b([0-9]{1,2})[./-]([0-9]{1,2})[./-]([0-9]{4})\b`)
)

// ParseIdentityHints picks out the identifiers printed on a diploma or an
// identity card. They are shown to the reviewer next to the verdicts and take
// no part in the decision.
func ParseIdentityHints(text string) dto.IdentityHints {
	t := strings.ToUpper(textmatch.FoldDigits(text))

	return dto.IdentityHints{
		CINNumber:  extractLabelled(t, cinLabelRegex, cinRegex),
		CodeMassar: extractLabelled(t, massarLabelRegex, massarRegex),
		Dates:      extractDates(t),
	}
}

// extractLabelled prefers a value that follows its label and falls back to
// the first value of the right shape anywhere in the text.
func extractLabelled(text string, labelled, bare *regexp.Regexp) string {
	if m := labelled.FindStringSubmatch(text); len(m) > 1 {
		return m[1]
	}
	return bare.FindString(text)
}

// extractDates returns the day-first dates found in text as YYYY-MM-DD,
// without duplicates, in order of appearance.
func extractDates(text string) []string {
	var dates []string
	seen := make(map[string]bool)

	for _, m := range dateRegex.FindAllStringSubmatch(text, -1) {
		day, month := m[1], m[2]
		if len(day) == 1 {
			day = "0" + day
		}
		if len(month) == 1 {
			month = "0" + month
		}

		iso := m[3] + "-" + month + "-" + day
		if _, err := time.Parse("2006-01-02", iso); err != nil {
			continue
		}
		if !seen[iso] {
			seen[iso] = true
			dates = append(dates, iso)
		}
	}

	return dates
}
