package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/inscription-verification/dto"
	"github.com/Aashish23092/inscription-verification/verification"
)

const bacScan = `ROYAUME DU MAROC
BACCALAUREAT - SESSION NORMALE
Nom: ALAMI BENALI   Prenom: YOUSSEF
Code Massar: R130042777
Né le 07/11/2004 à RABAT
Date d'obtention: 15/06/2022
المملكة المغربية
الاسم العلوي النسب يوسف
الرباط`

const cinScan = `CARTE NATIONALE D'IDENTITE
ALAMI BENALI YOUSSEF
A8123456
07.11.2004 RABAT
يوسف العلوي`

func inscriptionRequest() *dto.InscriptionRequest {
	return &dto.InscriptionRequest{
		CodeMassar:    "R130042777",
		NomFr:         "Alami",
		NomAr:         "العلوي",
		PrenomFr:      "Youssef",
		PrenomAr:      "يوسف",
		DateNaissance: "2004-11-07",
		DateBac:       "2022-06-15",
		CIN:           "AB123456",
		VilleFr:       "Rabat",
		VilleAr:       "الرباط",
	}
}

func newInscriptionService(t *testing.T, ocr TextRecognizer, store DocumentStore) *InscriptionService {
	t.Helper()
	v, err := verification.New(verification.WithConcurrency(4))
	require.NoError(t, err)
	recognizer := NewDocumentRecognizer(NewRecognizerChain(ocr), &fakePDF{}, nil, 0)
	return NewInscriptionService(store, recognizer, v)
}

func scans() (Upload, Upload) {
	return Upload{Type: dto.DocTypeBac, Filename: "bac.png", Data: []byte("bac-scan")},
		Upload{Type: dto.DocTypeCIN, Filename: "cin.JPG", Data: []byte("cin-scan")}
}

func TestAnalyzeAutoValidates(t *testing.T) {
	root := t.TempDir()
	ocr := &fakeRecognizer{texts: map[string]string{"bac-scan": bacScan, "cin-scan": cinScan}}
	svc := newInscriptionService(t, ocr, NewLocalStore(root))

	bac, cin := scans()
	resp, err := svc.Analyze(context.Background(), inscriptionRequest().ClaimedFields(), bac, cin)

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Inscription analysée", resp.Message)
	assert.Equal(t, dto.StatusAutoValidated, resp.Status)
	assert.Len(t, resp.Verification, 10)
	assert.Len(t, resp.Checks, 10)
	assert.Equal(t, bacScan, resp.OCR.Bac)
	assert.Equal(t, cinScan, resp.OCR.Cin)
	assert.Nil(t, resp.OCRErrors)
	assert.NotEmpty(t, resp.ProcessedAt)
	assert.Equal(t, "R130042777", resp.Hints["bac"].CodeMassar)
	assert.Equal(t, "A8123456", resp.Hints["cin"].CINNumber)

	assert.True(t, strings.HasPrefix(resp.Paths.Bac, "bacs/"))
	assert.True(t, strings.HasSuffix(resp.Paths.Cin, ".jpg"))
	stored, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(resp.Paths.Cin)))
	require.NoError(t, err)
	assert.Equal(t, "cin-scan", string(stored))
}

func TestAnalyzeOCRFailureNeedsReview(t *testing.T) {
	ocr := &fakeRecognizer{
		texts: map[string]string{"bac-scan": bacScan},
		errs:  map[string]error{"cin-scan": errors.New("engine down")},
	}
	svc := newInscriptionService(t, ocr, NewLocalStore(t.TempDir()))

	bac, cin := scans()
	resp, err := svc.Analyze(context.Background(), inscriptionRequest().ClaimedFields(), bac, cin)

	require.NoError(t, err)
	assert.Equal(t, dto.StatusNeedsReview, resp.Status)
	assert.Empty(t, resp.OCR.Cin)
	assert.Contains(t, resp.OCRErrors["cin"], "engine down")
	assert.Contains(t, resp.Quality["cin"].Issues, issueOCRFailed)
	assert.False(t, resp.Checks[dto.FieldCIN])
	assert.True(t, resp.Checks[dto.FieldCodeMassar])
}

type failingStore struct{}

func (failingStore) Save(dto.DocumentType, string, []byte) (string, error) {
	return "", errors.New("disk full")
}

func TestAnalyzeStoreFailure(t *testing.T) {
	ocr := &fakeRecognizer{}
	svc := newInscriptionService(t, ocr, failingStore{})

	bac, cin := scans()
	_, err := svc.Analyze(context.Background(), inscriptionRequest().ClaimedFields(), bac, cin)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, int32(0), ocr.calls.Load())
}

func fileHeaders(t *testing.T, files map[string]string) map[string]*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for field, content := range files {
		part, err := w.CreateFormFile(field, field+".png")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	headers := make(map[string]*multipart.FileHeader)
	for field, fhs := range form.File {
		headers[field] = fhs[0]
	}
	return headers
}

func TestSubmitReadsUploadedFiles(t *testing.T) {
	ocr := &fakeRecognizer{texts: map[string]string{"bac-scan": bacScan, "cin-scan": cinScan}}
	svc := newInscriptionService(t, ocr, NewLocalStore(t.TempDir()))

	headers := fileHeaders(t, map[string]string{"bac_image": "bac-scan", "cin_image": "cin-scan"})
	req := inscriptionRequest()
	req.BacImage = headers["bac_image"]
	req.CinImage = headers["cin_image"]

	resp, err := svc.Submit(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, dto.StatusAutoValidated, resp.Status)
	assert.Equal(t, int32(2), ocr.calls.Load())
}

func TestSubmitMissingDocument(t *testing.T) {
	svc := newInscriptionService(t, &fakeRecognizer{}, NewLocalStore(t.TempDir()))

	_, err := svc.Submit(context.Background(), inscriptionRequest())

	assert.ErrorIs(t, err, dto.ErrMissingDocument)
}

func TestLocalStoreSave(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root)

	path, err := store.Save(dto.DocTypeBac, "Diplome.PDF", []byte("%PDF"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "bacs/"))
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(path)))
	assert.NoError(t, err)

	other, err := store.Save(dto.DocTypeBac, "Diplome.PDF", []byte("%PDF"))
	require.NoError(t, err)
	assert.NotEqual(t, path, other)

	_, err = store.Save(dto.DocumentType("passport"), "p.png", nil)
	assert.Error(t, err)
}
