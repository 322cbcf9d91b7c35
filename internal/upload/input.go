package upload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/five82/glyphart/internal/glyphsvc"
)

// ErrEmptyInput is returned by LoadInput for zero-byte files.
var ErrEmptyInput = errors.New("file is empty")

// Input is the file selected for submission.
type Input struct {
	Path     string
	Name     string
	MIMEType string
	Data     []byte
}

// LoadInput reads the file at path and detects its MIME type from content.
// The type is not restricted to images; the service decides what it accepts.
func LoadInput(path string) (Input, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return Input{}, fmt.Errorf("path is empty")
	}
	info, err := os.Stat(trimmed)
	if err != nil {
		return Input{}, fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		return Input{}, fmt.Errorf("%s is a directory", trimmed)
	}
	data, err := os.ReadFile(trimmed)
	if err != nil {
		return Input{}, fmt.Errorf("read input: %w", err)
	}
	if len(data) == 0 {
		return Input{}, fmt.Errorf("%s: %w", trimmed, ErrEmptyInput)
	}
	return Input{
		Path:     trimmed,
		Name:     filepath.Base(trimmed),
		MIMEType: mimetype.Detect(data).String(),
		Data:     data,
	}, nil
}

// IsImage reports whether the detected type is an image type.
func (in Input) IsImage() bool {
	return strings.HasPrefix(in.MIMEType, "image/")
}

// Size returns the input length in bytes.
func (in Input) Size() int {
	return len(in.Data)
}

func (in Input) image() glyphsvc.Image {
	return glyphsvc.Image{Name: in.Name, MIMEType: in.MIMEType, Data: in.Data}
}
