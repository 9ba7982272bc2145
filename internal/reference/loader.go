package reference

import (
	"os"
	"strings"

	"github.com/howtojaydes/ghostwriter-api/internal/logger"
)

// MaxChars bounds how much of the corpus is fed to the model as grounding.
const MaxChars = 14000

// Loader reads the reference corpus used as few-shot grounding.
// The corpus is re-read on every call so edits to the file take effect
// immediately; a failed read degrades to an empty string, never an error.
type Loader struct {
	path string
}

// NewLoader creates a loader for the corpus at path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Path returns the configured corpus location.
func (l *Loader) Path() string {
	return l.path
}

// Load returns the first MaxChars characters of the corpus.
// Missing or unreadable file yields "" - the orchestrator turns that
// into a configuration failure rather than crashing the request.
func (l *Loader) Load() string {
	data, err := os.ReadFile(l.path)
	if err != nil {
		logger.Warn("failed to read reference corpus", logger.Fields{
			"path":  l.path,
			"error": err.Error(),
		})
		return ""
	}
	return Truncate(string(data), MaxChars)
}

// Truncate caps s at n characters, preserving rune boundaries.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// IsBlank reports whether the corpus text is effectively empty.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
