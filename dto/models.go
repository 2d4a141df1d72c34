package dto

type DocumentType string

const (
	DocTypeBac DocumentType = "bac"
	DocTypeCIN DocumentType = "cin"
)

// Script tells which writing system a claimed value is written in, which in
// turn decides how it can be verified.
type Script string

const (
	ScriptLatin     Script = "latin"
	ScriptArabic    Script = "arabic"
	ScriptAlnumCode Script = "alnum_code"
	ScriptDate      Script = "date"
)

type FieldID string

const (
	FieldCodeMassar    FieldID = "code_massar"
	FieldNomFr         FieldID = "nom_fr"
	FieldNomAr         FieldID = "nom_ar"
	FieldPrenomFr      FieldID = "prenom_fr"
	FieldPrenomAr      FieldID = "prenom_ar"
	FieldDateNaissance FieldID = "date_naissance"
	FieldDateBac       FieldID = "date_bac"
	FieldCIN           FieldID = "cin"
	FieldVilleFr       FieldID = "ville_fr"
	FieldVilleAr       FieldID = "ville_ar"
)

// ClaimedField is a value the applicant asserts, to be found in the scans.
type ClaimedField struct {
	Name   FieldID `json:"name" yaml:"name"`
	Value  string  `json:"value" yaml:"value"`
	Script Script  `json:"script" yaml:"script"`
}

// RecognizedText is the OCR output of one scanned document. Raw is empty when
// recognition failed.
type RecognizedText struct {
	Source DocumentType `json:"source"`
	Raw    string       `json:"raw"`
}

type VerificationStatus string

const (
	StatusAutoValidated VerificationStatus = "auto_validated"
	StatusNeedsReview   VerificationStatus = "needs_review"
)

// FieldVerdict is the decision for one claimed field. BestScore is the
// highest similarity reached; exact and date strategies report 1 or 0.
type FieldVerdict struct {
	Field     FieldID `json:"field"`
	Matched   bool    `json:"matched"`
	BestScore float64 `json:"best_score"`
	Strategy  string  `json:"strategy"`
	View      string  `json:"view"`
}

type VerificationResult struct {
	Verdicts []FieldVerdict     `json:"verdicts"`
	Status   VerificationStatus `json:"status"`
}

// Checks flattens the verdicts into a field -> matched map.
func (r VerificationResult) Checks() map[FieldID]bool {
	checks := make(map[FieldID]bool, len(r.Verdicts))
	for _, v := range r.Verdicts {
		checks[v.Field] = v.Matched
	}
	return checks
}

// Verdict returns the verdict recorded for field, if any.
func (r VerificationResult) Verdict(field FieldID) (FieldVerdict, bool) {
	for _, v := range r.Verdicts {
		if v.Field == field {
			return v, true
		}
	}
	return FieldVerdict{}, false
}

type DocumentQuality struct {
	OcrConfidence float64  `json:"ocr_confidence"`
	Provider      string   `json:"provider"`
	Issues        []string `json:"issues"`
}

// IdentityHints are identifiers read off a document for the reviewer.
type IdentityHints struct {
	CINNumber  string   `json:"cin_number,omitempty"`
	CodeMassar string   `json:"code_massar,omitempty"`
	Dates      []string `json:"dates,omitempty"`
}
