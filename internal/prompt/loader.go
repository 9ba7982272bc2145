package prompt

import (
	"strings"

	"github.com/howtojaydes/ghostwriter-api/pkg/embedded"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetPersona loads the ghost-writer persona block
func (l *Loader) GetPersona() string {
	return strings.TrimSpace(string(embedded.PersonaTxt))
}

// GetReferenceSanitization loads the reference filtering instructions
func (l *Loader) GetReferenceSanitization() string {
	return strings.TrimSpace(string(embedded.ReferenceSanitizationTxt))
}

// GetVoiceFingerprint loads the six-axis fingerprint instructions
func (l *Loader) GetVoiceFingerprint() string {
	return strings.TrimSpace(string(embedded.VoiceFingerprintTxt))
}

// GetLyricsOutputFormat loads the plain-lyrics output block
func (l *Loader) GetLyricsOutputFormat() string {
	return strings.TrimSpace(string(embedded.OutputLyricsTxt))
}

// GetCoachOutputFormat loads the coaching-document output block
func (l *Loader) GetCoachOutputFormat() string {
	return strings.TrimSpace(string(embedded.OutputCoachTxt))
}
