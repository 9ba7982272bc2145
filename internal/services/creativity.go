package services

import (
	"fmt"
	"math"
)

// StrictThreshold is the creativity level at or above which generation
// switches to the closed-vocabulary policy.
const StrictThreshold = 85

// DefaultCreativity is used when the client omits the control.
const DefaultCreativity = 100

// Sampling parameter bounds and anchors.
const (
	strictTemperature = 0.35
	strictTopP        = 0.90

	freeTemperatureBase  = 0.65
	freeTemperatureSpan  = 0.55
	freeTemperatureFloor = 0.2
	freeTemperatureCeil  = 1.3

	freeTopPBase  = 0.92
	freeTopPSpan  = 0.06
	freeTopPFloor = 0.7
	freeTopPCeil  = 0.99

	minNewWordPercent = 6
)

// CreativityProfile is derived per request from the 0-100 creativity control.
// High levels trade freedom for vocabulary fidelity to the reference corpus.
type CreativityProfile struct {
	Level            int
	Strict           bool
	Temperature      float64
	TopP             float64
	VocabularyPolicy string
}

// CoerceCreativity turns the raw (optional, possibly fractional) JSON value
// into a whole level in [0,100]; absent values default to DefaultCreativity.
func CoerceCreativity(raw *float64) int {
	if raw == nil || math.IsNaN(*raw) || math.IsInf(*raw, 0) {
		return DefaultCreativity
	}
	return clampLevel(int(math.Round(*raw)))
}

// ResolveCreativity maps a creativity level to sampling parameters and the
// vocabulary policy text injected into the composed prompt.
// Pure and deterministic: same level, same profile.
func ResolveCreativity(level int) CreativityProfile {
	level = clampLevel(level)

	if level >= StrictThreshold {
		return CreativityProfile{
			Level:            level,
			Strict:           true,
			Temperature:      strictTemperature,
			TopP:             strictTopP,
			VocabularyPolicy: closedVocabularyPolicy,
		}
	}

	// Lower level = more creative = hotter sampling.
	slack := 1.0 - float64(level)/100.0
	return CreativityProfile{
		Level:            level,
		Strict:           false,
		Temperature:      clampFloat(freeTemperatureBase+slack*freeTemperatureSpan, freeTemperatureFloor, freeTemperatureCeil),
		TopP:             clampFloat(freeTopPBase+slack*freeTopPSpan, freeTopPFloor, freeTopPCeil),
		VocabularyPolicy: softVocabularyPolicy(newWordPercent(level)),
	}
}

// newWordPercent is the ceiling on out-of-reference words, as a percentage
// of total output words, for non-strict levels.
func newWordPercent(level int) int {
	pct := int(math.Round(float64(100-level) / 6.0))
	if pct < minNewWordPercent {
		pct = minNewWordPercent
	}
	return pct
}

const closedVocabularyPolicy = `VOCABULARY POLICY (CLOSED):
Every word you output must appear verbatim in the filtered reference.
No new words. No synonyms. No variants that are not already in the reference.
Before finishing, re-check every word of your draft against the filtered reference.
If you cannot comply for any line, output exactly: ...
Output the sentinel instead of partial or non-compliant text.`

func softVocabularyPolicy(newWordPct int) string {
	return fmt.Sprintf(`VOCABULARY POLICY (SOFT):
Strongly prefer words that appear in the filtered reference.
New words are allowed only when necessary and only if they sound native to the reference voice.
Hard ceiling: at most %d%% of your output words may be absent from the filtered reference.`, newWordPct)
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
