package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Aashish23092/inscription-verification/dto"
)

// DocumentStore keeps the uploaded scans for later manual review.
type DocumentStore interface {
	// Save writes the document and returns its path relative to the store root.
	Save(docType dto.DocumentType, filename string, data []byte) (string, error)
}

// LocalStore writes documents below a root directory, one sub-directory per
// document type.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func storeDir(docType dto.DocumentType) (string, error) {
	switch docType {
	case dto.DocTypeBac:
		return "bacs", nil
	case dto.DocTypeCIN:
		return "cins", nil
	default:
		return "", fmt.Errorf("unknown document type %q", docType)
	}
}

func (s *LocalStore) Save(docType dto.DocumentType, filename string, data []byte) (string, error) {
	dir, err := storeDir(docType)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	rel := filepath.ToSlash(filepath.Join(dir, name))

	if err := os.WriteFile(filepath.Join(s.root, dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store %s: %w", docType, err)
	}

	return rel, nil
}
