// Package verification decides, field by field, whether the values claimed in
// a submission are corroborated by the recognized text of its documents.
package verification

import (
	"strings"

	"github.com/Aashish23092/inscription-verification/dto"
	"github.com/Aashish23092/inscription-verification/utils/textmatch"
	"golang.org/x/sync/errgroup"
)

// Verifier evaluates claimed fields against recognized text using a rule
// table. It holds no per-request state and may be shared.
type Verifier struct {
	rules       RuleSet
	concurrency int
}

type Option func(*Verifier)

// WithRuleSet replaces the default rule table.
func WithRuleSet(rs RuleSet) Option {
	return func(v *Verifier) {
		v.rules = rs
	}
}

// WithConcurrency evaluates up to n fields in parallel. n <= 1 is sequential.
func WithConcurrency(n int) Option {
	return func(v *Verifier) {
		v.concurrency = n
	}
}

// New builds a Verifier and validates its rule table.
func New(opts ...Option) (*Verifier, error) {
	v := &Verifier{rules: DefaultRuleSet()}
	for _, opt := range opts {
		opt(v)
	}

	if err := v.rules.Validate(); err != nil {
		return nil, err
	}

	return v, nil
}

// RuleFor returns the rule used for f: its field rule if one exists, else the
// rule of its script, else an exact match on the combined text.
func (v *Verifier) RuleFor(f dto.ClaimedField) Rule {
	if rule, ok := v.rules.Fields[f.Name]; ok {
		return rule
	}
	if rule, ok := v.rules.Scripts[f.Script]; ok {
		return rule
	}
	return Rule{Kind: KindExact, View: ViewCombined}
}

// Verify produces one verdict per claimed field, in input order, and the
// overall status. A failed field never stops the others from being checked.
func (v *Verifier) Verify(fields []dto.ClaimedField, docs []dto.RecognizedText) dto.VerificationResult {
	views := newTextViews(docs)
	verdicts := make([]dto.FieldVerdict, len(fields))

	if v.concurrency > 1 {
		var g errgroup.Group
		g.SetLimit(v.concurrency)
		for i, f := range fields {
			i, f := i, f
			g.Go(func() error {
				verdicts[i] = v.evaluate(f, views)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, f := range fields {
			verdicts[i] = v.evaluate(f, views)
		}
	}

	return dto.VerificationResult{
		Verdicts: verdicts,
		Status:   Aggregate(verdicts),
	}
}

// Aggregate is a strict AND: any unmatched verdict sends the submission to
// review.
func Aggregate(verdicts []dto.FieldVerdict) dto.VerificationStatus {
	for _, v := range verdicts {
		if !v.Matched {
			return dto.StatusNeedsReview
		}
	}
	return dto.StatusAutoValidated
}

func (v *Verifier) evaluate(f dto.ClaimedField, views *textViews) dto.FieldVerdict {
	rule := v.RuleFor(f)
	verdict := dto.FieldVerdict{
		Field:    f.Name,
		Strategy: string(rule.Kind),
		View:     string(rule.View),
	}

	switch rule.Kind {
	case KindFuzzyText:
		m := textmatch.Locate(views.get(rule.View, normText), textmatch.PrepareText(f.Value), rule.Threshold)
		verdict.Matched, verdict.BestScore = m.Matched, m.BestScore

	case KindFuzzyAlnum:
		m := textmatch.Locate(views.get(rule.View, normAlnum), textmatch.NormalizeAlnum(f.Value), rule.Threshold)
		verdict.Matched, verdict.BestScore = m.Matched, m.BestScore

	case KindDate:
		_, verdict.Matched = textmatch.FindDateInDigits(views.get(rule.View, normDigits), f.Value)

	default:
		needle := textmatch.PrepareText(f.Value)
		verdict.Matched = needle != "" && strings.Contains(views.get(rule.View, normText), needle)
	}

	if verdict.Matched && !rule.fuzzy() {
		verdict.BestScore = 1
	}

	return verdict
}
