// Package validation checks dataset files and directories before the
// pipeline touches them, so path problems surface as one clear error
// instead of a parse failure deep in ingestion.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "autotrends/internal/errors"
)

// datasetExtensions are the file types the ingest layer can read.
var datasetExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// FileValidator validates dataset input files and output directories.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator.
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateDatasetFile checks that a raw dataset file exists, is a regular
// file, is non-empty, and carries a readable extension.
func (v *FileValidator) ValidateDatasetFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("dataset file does not exist", slog.String("path", path))
		return apperrors.NewNotFoundError(fmt.Sprintf("dataset file %s", path))
	}
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat dataset file %s", path), err)
	}
	if info.IsDir() {
		return apperrors.NewValidationError(fmt.Sprintf("%s is a directory, not a dataset file", path))
	}
	if info.Size() == 0 {
		return apperrors.NewValidationError(fmt.Sprintf("dataset file %s is empty", path))
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !datasetExtensions[ext] {
		return apperrors.NewValidationError(fmt.Sprintf("unsupported dataset file type %q (want .csv or .xlsx)", ext))
	}

	v.logger.Debug("dataset file validated",
		slog.String("path", path),
		slog.Int64("size_bytes", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures the output directory exists (creating
// it if needed) and is writable.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("test"), 0644); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	os.Remove(probe)

	return nil
}
