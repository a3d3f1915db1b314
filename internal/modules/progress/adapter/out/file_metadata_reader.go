package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rsc.io/pdf"

	progressout "studyquest/internal/modules/progress/port/out"
)

// FileMetadataReader pulls a book title from a local file: the Info
// dictionary title for PDFs, the first heading for markdown.
type FileMetadataReader struct{}

func NewFileMetadataReader() progressout.BookMetadataReader {
	return &FileMetadataReader{}
}

func (r *FileMetadataReader) ReadTitle(_ context.Context, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return readPDFTitle(path)
	case ".md", ".markdown":
		return readMarkdownTitle(path)
	default:
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("stat book file: %w", err)
		}
		return "", nil
	}
}

func readPDFTitle(path string) (string, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	return strings.TrimSpace(doc.Trailer().Key("Info").Key("Title").Text()), nil
}

func readMarkdownTitle(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read markdown: %w", err)
	}
	for _, line := range strings.Split(string(raw), "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return strings.TrimSpace(rest), nil
		}
	}
	return "", nil
}
