package localfs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

// File is a document candidate read from the local filesystem. Its MIME
// type is sniffed from content, not taken from the extension.
type File struct {
	path     string
	name     string
	mimeType string
}

// Open resolves path (expanding a leading ~) and sniffs its type.
func Open(path string) (*File, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", resolved)
	}

	mtype, err := mimetype.DetectFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("detect mime type: %w", err)
	}
	return &File{
		path:     resolved,
		name:     filepath.Base(resolved),
		mimeType: baseType(mtype.String()),
	}, nil
}

func (f *File) Name() string {
	return f.name
}

func (f *File) MIMEType() string {
	return f.mimeType
}

func (f *File) Open() (io.ReadCloser, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return file, nil
}

// Pages counts pages of a PDF document.
func (f *File) Pages() (pages int, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("parse pdf: %v", r)
		}
	}()

	file, reader, err := pdf.Open(f.path)
	if err != nil {
		return 0, fmt.Errorf("parse pdf: %w", err)
	}
	defer file.Close()
	return reader.NumPage(), nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	path = strings.Trim(path, `"'`)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Clean(path), nil
}

func baseType(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.TrimSpace(mimeType)
}
