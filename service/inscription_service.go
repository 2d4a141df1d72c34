package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Aashish23092/inscription-verification/dto"
	"github.com/Aashish23092/inscription-verification/utils"
	"github.com/Aashish23092/inscription-verification/verification"
)

const inscriptionMessage = "Inscription analysée"

// Upload is one document of a submission, already read into memory.
type Upload struct {
	Type     dto.DocumentType
	Filename string
	Data     []byte
}

type InscriptionService struct {
	store      DocumentStore
	recognizer *DocumentRecognizer
	verifier   *verification.Verifier
}

func NewInscriptionService(
	store DocumentStore,
	recognizer *DocumentRecognizer,
	verifier *verification.Verifier,
) *InscriptionService {
	return &InscriptionService{
		store:      store,
		recognizer: recognizer,
		verifier:   verifier,
	}
}

// Submit stores the two scans, reads them and checks the claimed fields
// against their text.
func (s *InscriptionService) Submit(ctx context.Context, req *dto.InscriptionRequest) (*dto.InscriptionResponse, error) {
	bac, err := readUpload(dto.DocTypeBac, req.BacImage)
	if err != nil {
		return nil, err
	}
	cin, err := readUpload(dto.DocTypeCIN, req.CinImage)
	if err != nil {
		return nil, err
	}

	return s.Analyze(ctx, req.ClaimedFields(), bac, cin)
}

// Analyze runs a submission whose documents are already in memory. Only
// storage errors fail it; a document that cannot be read counts as empty
// text and is reported in OCRErrors.
func (s *InscriptionService) Analyze(ctx context.Context, claims []dto.ClaimedField, bac, cin Upload) (*dto.InscriptionResponse, error) {
	id := uuid.NewString()
	uploads := []Upload{bac, cin}

	paths := make([]string, len(uploads))
	for i, u := range uploads {
		path, err := s.store.Save(u.Type, u.Filename, u.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to store %s document: %w", u.Type, err)
		}
		paths[i] = path
	}

	texts := make([]string, len(uploads))
	qualities := make([]dto.DocumentQuality, len(uploads))
	ocrErrs := make([]error, len(uploads))

	var g errgroup.Group
	for i, u := range uploads {
		i, u := i, u
		g.Go(func() error {
			texts[i], qualities[i], ocrErrs[i] = s.recognizer.Recognize(ctx, u.Data, u.Filename)
			return nil
		})
	}
	_ = g.Wait()

	docs := make([]dto.RecognizedText, len(uploads))
	quality := make(map[string]dto.DocumentQuality, len(uploads))
	hints := make(map[string]dto.IdentityHints, len(uploads))
	var ocrErrors map[string]string
	for i, u := range uploads {
		docs[i] = dto.RecognizedText{Source: u.Type, Raw: texts[i]}
		quality[string(u.Type)] = qualities[i]
		hints[string(u.Type)] = utils.ParseIdentityHints(texts[i])
		if ocrErrs[i] != nil {
			log.Printf("Inscription %s: OCR of %s failed: %v", id, u.Type, ocrErrs[i])
			if ocrErrors == nil {
				ocrErrors = make(map[string]string)
			}
			ocrErrors[string(u.Type)] = ocrErrs[i].Error()
		}
	}

	result := s.verifier.Verify(claims, docs)

	matched := 0
	for _, v := range result.Verdicts {
		if v.Matched {
			matched++
		}
	}
	log.Printf("Inscription %s: %s (%d/%d fields matched, bac %d chars, cin %d chars)",
		id, result.Status, matched, len(result.Verdicts), len(texts[0]), len(texts[1]))

	return &dto.InscriptionResponse{
		ID:           id,
		Message:      inscriptionMessage,
		Status:       result.Status,
		Verification: result.Verdicts,
		Checks:       result.Checks(),
		OCR:          dto.DocumentPair{Bac: texts[0], Cin: texts[1]},
		OCRErrors:    ocrErrors,
		Quality:      quality,
		Hints:        hints,
		Paths:        dto.DocumentPair{Bac: paths[0], Cin: paths[1]},
		ProcessedAt:  time.Now().Format(time.RFC3339),
	}, nil
}

func readUpload(docType dto.DocumentType, header *multipart.FileHeader) (Upload, error) {
	if header == nil {
		return Upload{}, fmt.Errorf("%s: %w", docType, dto.ErrMissingDocument)
	}

	f, err := header.Open()
	if err != nil {
		return Upload{}, fmt.Errorf("failed to open %s: %w", header.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Upload{}, fmt.Errorf("failed to read %s: %w", header.Filename, err)
	}

	return Upload{Type: docType, Filename: header.Filename, Data: data}, nil
}
