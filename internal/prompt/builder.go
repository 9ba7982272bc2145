package prompt

import (
	"strings"

	"github.com/howtojaydes/ghostwriter-api/internal/reference"
	"github.com/howtojaydes/ghostwriter-api/internal/services"
)

// Intent selects which instruction shape the builder produces.
type Intent string

const (
	IntentGenerate Intent = "generate"
	IntentRewrite  Intent = "rewrite"
	IntentCoach    Intent = "coach"
)

// Field caps applied before insertion, regardless of upstream validation.
const (
	MaxUserPromptChars   = 2000
	MaxSourceLyricsChars = 9000
)

// Inputs carries everything the builder needs for one composition.
type Inputs struct {
	Reference    string
	UserPrompt   string
	SourceLyrics string
	Profile      services.CreativityProfile
}

// Builder assembles the full instruction text sent to the model.
// Composition is pure string concatenation of fixed blocks plus the
// capped input fields: same inputs, byte-identical output.
type Builder struct {
	loader *Loader
}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() *Builder {
	return &Builder{loader: NewPromptLoader()}
}

// Compose builds the instruction text for the given intent.
// It is total over validated inputs - no error path.
func (b *Builder) Compose(intent Intent, in Inputs) string {
	ref := reference.Truncate(in.Reference, reference.MaxChars)
	userPrompt := strings.TrimSpace(reference.Truncate(in.UserPrompt, MaxUserPromptChars))
	lyrics := strings.TrimSpace(reference.Truncate(in.SourceLyrics, MaxSourceLyricsChars))

	var sections []string
	sections = append(sections,
		b.loader.GetPersona(),
		b.loader.GetReferenceSanitization(),
		b.loader.GetVoiceFingerprint(),
		in.Profile.VocabularyPolicy,
		"Reference:\n---\n"+ref+"\n---",
	)

	if intent == IntentRewrite || intent == IntentCoach {
		sections = append(sections, "Lyrics:\n---\n"+lyrics+"\n---")
	}

	if userPrompt != "" {
		sections = append(sections, "Prompt:\n"+userPrompt)
	}

	switch intent {
	case IntentRewrite:
		sections = append(sections, b.loader.GetLyricsOutputFormat(), "Rewrite.")
	case IntentCoach:
		sections = append(sections, b.loader.GetCoachOutputFormat(), "Coach.")
	default:
		sections = append(sections, b.loader.GetLyricsOutputFormat(), "Write.")
	}

	return strings.Join(sections, "\n\n")
}
