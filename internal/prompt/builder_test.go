package prompt

import (
	"strings"
	"testing"

	"github.com/howtojaydes/ghostwriter-api/internal/services"
	"github.com/stretchr/testify/assert"
)

func testInputs(level int) Inputs {
	return Inputs{
		Reference:    "ice on my wrist\ncold in my chest",
		UserPrompt:   "a song about rain",
		SourceLyrics: "walked through the storm\nno umbrella no warning",
		Profile:      services.ResolveCreativity(level),
	}
}

func TestComposeDeterministic(t *testing.T) {
	builder := NewPromptBuilder()
	in := testInputs(100)

	first := builder.Compose(IntentGenerate, in)
	second := builder.Compose(IntentGenerate, in)

	assert.Equal(t, first, second)
}

func TestComposeContainsFixedBlocks(t *testing.T) {
	builder := NewPromptBuilder()
	out := builder.Compose(IntentGenerate, testInputs(50))

	assert.Contains(t, out, "howtojaydes")
	assert.Contains(t, out, "REFERENCE SANITIZATION")
	assert.Contains(t, out, "VOICE FINGERPRINT")
	assert.Contains(t, out, "lexicon")
	assert.Contains(t, out, "Output only lyrics.")
	assert.True(t, strings.HasSuffix(out, "Write."))
}

func TestComposeInjectsVocabularyPolicy(t *testing.T) {
	builder := NewPromptBuilder()

	strict := builder.Compose(IntentGenerate, testInputs(95))
	assert.Contains(t, strict, "VOCABULARY POLICY (CLOSED)")
	assert.Contains(t, strict, "...")

	free := builder.Compose(IntentGenerate, testInputs(10))
	assert.Contains(t, free, "VOCABULARY POLICY (SOFT)")
	assert.NotContains(t, free, "VOCABULARY POLICY (CLOSED)")
}

func TestComposeGenerateOmitsLyricsBlock(t *testing.T) {
	builder := NewPromptBuilder()
	out := builder.Compose(IntentGenerate, testInputs(100))

	assert.NotContains(t, out, "Lyrics:")
	assert.Contains(t, out, "Prompt:\na song about rain")
}

func TestComposeRewriteIncludesLyrics(t *testing.T) {
	builder := NewPromptBuilder()
	out := builder.Compose(IntentRewrite, testInputs(100))

	assert.Contains(t, out, "Lyrics:\n---\nwalked through the storm")
	assert.True(t, strings.HasSuffix(out, "Rewrite."))
}

func TestComposeRewriteOmitsEmptyPrompt(t *testing.T) {
	builder := NewPromptBuilder()
	in := testInputs(100)
	in.UserPrompt = "  "

	out := builder.Compose(IntentRewrite, in)
	assert.NotContains(t, out, "Prompt:")
}

func TestComposeCoachUsesCoachingFormat(t *testing.T) {
	builder := NewPromptBuilder()
	out := builder.Compose(IntentCoach, testInputs(100))

	assert.Contains(t, out, "COACHING DOCUMENT")
	assert.Contains(t, out, "Line-by-Line Coaching")
	assert.Contains(t, out, "Breath Plan")
	assert.NotContains(t, out, "Output only lyrics.")
	assert.True(t, strings.HasSuffix(out, "Coach."))
}

func TestComposeCapsOversizedFields(t *testing.T) {
	builder := NewPromptBuilder()
	in := testInputs(100)
	in.UserPrompt = strings.Repeat("x", MaxUserPromptChars+100)
	in.SourceLyrics = strings.Repeat("y", MaxSourceLyricsChars+100)

	out := builder.Compose(IntentRewrite, in)
	assert.NotContains(t, out, strings.Repeat("x", MaxUserPromptChars+1))
	assert.NotContains(t, out, strings.Repeat("y", MaxSourceLyricsChars+1))
}

func TestComposeTotalOverEmptyInputs(t *testing.T) {
	builder := NewPromptBuilder()
	out := builder.Compose(IntentGenerate, Inputs{Profile: services.ResolveCreativity(0)})

	assert.NotEmpty(t, out)
	assert.Contains(t, out, "Reference:\n---\n\n---")
}
