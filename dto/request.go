package dto

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// InscriptionRequest is the multipart form of an inscription submission.
type InscriptionRequest struct {
	CodeMassar    string `form:"code_massar" binding:"required,max=50"`
	NomFr         string `form:"nom_fr" binding:"required,max=100"`
	NomAr         string `form:"nom_ar" binding:"required,max=100"`
	PrenomFr      string `form:"prenom_fr" binding:"required,max=100"`
	PrenomAr      string `form:"prenom_ar" binding:"required,max=100"`
	DateNaissance string `form:"date_naissance" binding:"required,datetime=2006-01-02"`
	DateBac       string `form:"date_bac" binding:"required,datetime=2006-01-02"`
	CIN           string `form:"cin" binding:"required,max=20"`
	VilleFr       string `form:"ville_fr" binding:"required,max=100"`
	VilleAr       string `form:"ville_ar" binding:"required,max=100"`

	BacImage *multipart.FileHeader `form:"bac_image" binding:"required"`
	CinImage *multipart.FileHeader `form:"cin_image" binding:"required"`
}

var allowedExtensions = []string{".pdf", ".png", ".jpg", ".jpeg"}

// Validate checks the uploaded documents. Field formats are enforced by the
// binding tags.
func (r *InscriptionRequest) Validate(maxFileSize int64) error {
	docs := []struct {
		name string
		file *multipart.FileHeader
	}{
		{"bac_image", r.BacImage},
		{"cin_image", r.CinImage},
	}

	for _, d := range docs {
		if d.file == nil {
			return fmt.Errorf("%s: %w", d.name, ErrMissingDocument)
		}
		if maxFileSize > 0 && d.file.Size > maxFileSize {
			return fmt.Errorf("%s: %w", d.name, ErrFileTooLarge)
		}
		if !hasAllowedExtension(d.file.Filename) {
			return fmt.Errorf("%s: %w", d.name, ErrUnsupportedFileType)
		}
	}

	return nil
}

// ClaimedFields lists the submitted values in verification order.
func (r *InscriptionRequest) ClaimedFields() []ClaimedField {
	return []ClaimedField{
		{Name: FieldNomFr, Value: r.NomFr, Script: ScriptLatin},
		{Name: FieldPrenomFr, Value: r.PrenomFr, Script: ScriptLatin},
		{Name: FieldCIN, Value: r.CIN, Script: ScriptAlnumCode},
		{Name: FieldCodeMassar, Value: r.CodeMassar, Script: ScriptAlnumCode},
		{Name: FieldDateNaissance, Value: r.DateNaissance, Script: ScriptDate},
		{Name: FieldDateBac, Value: r.DateBac, Script: ScriptDate},
		{Name: FieldVilleFr, Value: r.VilleFr, Script: ScriptLatin},
		{Name: FieldVilleAr, Value: r.VilleAr, Script: ScriptArabic},
		{Name: FieldNomAr, Value: r.NomAr, Script: ScriptArabic},
		{Name: FieldPrenomAr, Value: r.PrenomAr, Script: ScriptArabic},
	}
}

func hasAllowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
