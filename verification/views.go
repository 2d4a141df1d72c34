package verification

import (
	"strings"
	"sync"
	"unicode"

	"github.com/Aashish23092/inscription-verification/dto"
	"github.com/Aashish23092/inscription-verification/utils/textmatch"
)

type normalization int

const (
	normText normalization = iota
	normAlnum
	normDigits
)

type viewKey struct {
	view View
	norm normalization
}

// textViews derives the per-request views of the recognized text and caches
// their normalized forms. Safe for concurrent use by field evaluators.
type textViews struct {
	raw map[View]string

	mu       sync.Mutex
	prepared map[viewKey]string
}

func newTextViews(docs []dto.RecognizedText) *textViews {
	var all, bac, cin []string
	for _, d := range docs {
		all = append(all, d.Raw)
		switch d.Source {
		case dto.DocTypeBac:
			bac = append(bac, d.Raw)
		case dto.DocTypeCIN:
			cin = append(cin, d.Raw)
		}
	}

	combined := strings.Join(all, " ")

	return &textViews{
		raw: map[View]string{
			ViewCombined: combined,
			ViewArabic:   textmatch.FilterScript(combined, unicode.Arabic),
			ViewBac:      strings.Join(bac, " "),
			ViewCIN:      strings.Join(cin, " "),
		},
		prepared: make(map[viewKey]string),
	}
}

func (tv *textViews) get(view View, norm normalization) string {
	key := viewKey{view: view, norm: norm}

	tv.mu.Lock()
	defer tv.mu.Unlock()

	if s, ok := tv.prepared[key]; ok {
		return s
	}

	raw := tv.raw[view]
	var s string
	switch norm {
	case normAlnum:
		s = textmatch.NormalizeAlnum(raw)
	case normDigits:
		s = textmatch.Digits(raw)
	default:
		s = textmatch.PrepareText(raw)
	}

	tv.prepared[key] = s
	return s
}
