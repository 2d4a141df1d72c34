package verification

import (
	"errors"
	"fmt"
	"os"

	"github.com/Aashish23092/inscription-verification/dto"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidThreshold = errors.New("threshold must be in (0,1]")
	ErrUnknownStrategy  = errors.New("unknown match strategy")
	ErrUnknownView      = errors.New("unknown text view")
)

// Kind is the way a claimed value is looked for in the recognized text.
type Kind string

const (
	KindExact      Kind = "exact"
	KindFuzzyText  Kind = "fuzzy_text"
	KindFuzzyAlnum Kind = "fuzzy_alnum"
	KindDate       Kind = "date"
)

// View selects which recognized text a field is checked against.
type View string

const (
	// ViewCombined is the text of every document joined together.
	ViewCombined View = "combined"
	// ViewArabic is ViewCombined restricted to Arabic script.
	ViewArabic View = "arabic"
	ViewBac    View = "bac"
	ViewCIN    View = "cin"
)

// Rule binds a field to a strategy, its threshold and a text view.
// Threshold is only read by the fuzzy strategies.
type Rule struct {
	Kind      Kind    `yaml:"strategy"`
	Threshold float64 `yaml:"threshold,omitempty"`
	View      View    `yaml:"view"`
}

func (r Rule) fuzzy() bool {
	return r.Kind == KindFuzzyText || r.Kind == KindFuzzyAlnum
}

// Validate checks that the rule can be evaluated.
func (r Rule) Validate() error {
	switch r.Kind {
	case KindExact, KindDate, KindFuzzyText, KindFuzzyAlnum:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, r.Kind)
	}

	switch r.View {
	case ViewCombined, ViewArabic, ViewBac, ViewCIN:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownView, r.View)
	}

	if r.fuzzy() && (r.Threshold <= 0 || r.Threshold > 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, r.Threshold)
	}

	return nil
}

// RuleSet is the field -> rule table. Fields missing from Fields fall back to
// the rule registered for their script.
type RuleSet struct {
	Fields  map[dto.FieldID]Rule `yaml:"fields"`
	Scripts map[dto.Script]Rule  `yaml:"scripts"`
}

// DefaultRuleSet returns the thresholds the service ships with. Arabic fields
// are matched against the Arabic-only view with looser thresholds because
// recognition of Arabic script is noisier.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Fields: map[dto.FieldID]Rule{
			dto.FieldNomFr:         {Kind: KindExact, View: ViewCombined},
			dto.FieldPrenomFr:      {Kind: KindExact, View: ViewCombined},
			dto.FieldCIN:           {Kind: KindFuzzyAlnum, Threshold: 0.8, View: ViewCombined},
			dto.FieldCodeMassar:    {Kind: KindFuzzyAlnum, Threshold: 0.7, View: ViewBac},
			dto.FieldDateNaissance: {Kind: KindDate, View: ViewCombined},
			dto.FieldDateBac:       {Kind: KindDate, View: ViewCombined},
			dto.FieldVilleFr:       {Kind: KindExact, View: ViewCombined},
			dto.FieldVilleAr:       {Kind: KindFuzzyText, Threshold: 0.8, View: ViewArabic},
			dto.FieldNomAr:         {Kind: KindFuzzyText, Threshold: 0.5, View: ViewArabic},
			dto.FieldPrenomAr:      {Kind: KindFuzzyText, Threshold: 0.5, View: ViewArabic},
		},
		Scripts: map[dto.Script]Rule{
			dto.ScriptLatin:     {Kind: KindExact, View: ViewCombined},
			dto.ScriptArabic:    {Kind: KindFuzzyText, Threshold: 0.5, View: ViewArabic},
			dto.ScriptAlnumCode: {Kind: KindFuzzyAlnum, Threshold: 0.8, View: ViewCombined},
			dto.ScriptDate:      {Kind: KindDate, View: ViewCombined},
		},
	}
}

// Merge overwrites rules of rs with the ones present in overlay.
func (rs *RuleSet) Merge(overlay RuleSet) {
	if rs.Fields == nil {
		rs.Fields = make(map[dto.FieldID]Rule)
	}
	if rs.Scripts == nil {
		rs.Scripts = make(map[dto.Script]Rule)
	}
	for field, rule := range overlay.Fields {
		rs.Fields[field] = rule
	}
	for script, rule := range overlay.Scripts {
		rs.Scripts[script] = rule
	}
}

// Validate checks every rule of the set.
func (rs RuleSet) Validate() error {
	for field, rule := range rs.Fields {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("field %s: %w", field, err)
		}
	}
	for script, rule := range rs.Scripts {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("script %s: %w", script, err)
		}
	}
	return nil
}

// LoadRules reads a YAML rule table and merges it over DefaultRuleSet.
//
//	fields:
//	  nom_ar: {strategy: fuzzy_text, threshold: 0.6, view: arabic}
func LoadRules(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	var overlay RuleSet
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return RuleSet{}, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	rs := DefaultRuleSet()
	rs.Merge(overlay)

	if err := rs.Validate(); err != nil {
		return RuleSet{}, fmt.Errorf("invalid rules file %s: %w", path, err)
	}

	return rs, nil
}
