package gismcp

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ExtractKMZ unpacks a KMZ (zip) archive and returns the text of its primary
// KML payload. When outputDir is empty a fresh directory is created under the
// system temp dir. An archive that is not valid zip data is reported as a
// structured failure; the absence of any KML entry is a hard error.
func ExtractKMZ(kmzPath, outputDir string) (*KMZExtractionResult, error) {
	logger := slog.With("kmz_path", kmzPath)
	logger.Debug("extracting KMZ")

	if outputDir == "" {
		outputDir = filepath.Join(os.TempDir(), "kmz-extract-"+uuid.NewString())
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create extraction directory: %w", err)
	}

	reader, err := zip.OpenReader(kmzPath)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			logger.Error("invalid KMZ file", "error", err)
			return &KMZExtractionResult{
				Success: false,
				Error:   "Invalid KMZ file (not a valid ZIP archive)",
			}, nil
		}
		return nil, fmt.Errorf("failed to open KMZ file: %w", err)
	}
	defer reader.Close()

	extractedFiles := make([]string, 0, len(reader.File))
	for _, file := range reader.File {
		if err := extractZipFile(file, outputDir); err != nil {
			return nil, fmt.Errorf("failed to extract file %s: %w", file.Name, err)
		}
		extractedFiles = append(extractedFiles, file.Name)
	}

	var kmlFiles []string
	for _, name := range extractedFiles {
		if strings.HasSuffix(strings.ToLower(name), ".kml") {
			kmlFiles = append(kmlFiles, name)
		}
	}
	if len(kmlFiles) == 0 {
		return nil, fmt.Errorf("no KML file found in KMZ archive")
	}

	// Prefer an entry literally named doc.kml, else take the first KML entry.
	mainKML := kmlFiles[0]
	for _, name := range kmlFiles {
		if name == "doc.kml" {
			mainKML = name
			break
		}
	}

	content, err := os.ReadFile(filepath.Join(outputDir, mainKML))
	if err != nil {
		return nil, fmt.Errorf("failed to read KML content: %w", err)
	}

	logger.Debug("KMZ extracted", "kml_file", mainKML, "entries", len(extractedFiles))

	return &KMZExtractionResult{
		Success:        true,
		KMLContent:     string(content),
		KMLFilename:    mainKML,
		ExtractedFiles: extractedFiles,
		ExtractionPath: outputDir,
		KMLFileCount:   len(kmlFiles),
	}, nil
}

// extractZipFile writes a single archive entry under destDir.
func extractZipFile(file *zip.File, destDir string) error {
	filePath := filepath.Join(destDir, file.Name)

	if file.FileInfo().IsDir() {
		return os.MkdirAll(filePath, file.Mode())
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}

	srcFile, err := file.Open()
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
