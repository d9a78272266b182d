package resume

import (
	"fmt"
	"os"
	"strings"
)

// FileSource reads the resume text from a plain-text file exported by the
// document-conversion side.
type FileSource struct {
	Path string
}

func (f *FileSource) Text() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("reading resume file %q: %w", f.Path, err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("resume file %q is empty", f.Path)
	}
	return text, nil
}
