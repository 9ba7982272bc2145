package services

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCreativityStrictThreshold(t *testing.T) {
	for level := 0; level <= 100; level++ {
		profile := ResolveCreativity(level)
		assert.Equal(t, level >= StrictThreshold, profile.Strict, "level %d", level)
	}
}

func TestResolveCreativityStrictParameters(t *testing.T) {
	profile := ResolveCreativity(95)

	assert.True(t, profile.Strict)
	assert.InDelta(t, 0.35, profile.Temperature, 1e-9)
	assert.InDelta(t, 0.90, profile.TopP, 1e-9)
	assert.Contains(t, profile.VocabularyPolicy, "CLOSED")
	assert.Contains(t, profile.VocabularyPolicy, "...")
}

func TestResolveCreativityBounds(t *testing.T) {
	for level := 0; level <= 100; level++ {
		profile := ResolveCreativity(level)
		assert.GreaterOrEqual(t, profile.Temperature, 0.2, "level %d", level)
		assert.LessOrEqual(t, profile.Temperature, 1.3, "level %d", level)
		assert.GreaterOrEqual(t, profile.TopP, 0.7, "level %d", level)
		assert.LessOrEqual(t, profile.TopP, 0.99, "level %d", level)
	}
}

func TestResolveCreativityMonotonicBelowThreshold(t *testing.T) {
	// More creative (lower level) means hotter sampling.
	prev := ResolveCreativity(0)
	for level := 1; level < StrictThreshold; level++ {
		cur := ResolveCreativity(level)
		assert.LessOrEqual(t, cur.Temperature, prev.Temperature, "level %d", level)
		assert.LessOrEqual(t, cur.TopP, prev.TopP, "level %d", level)
		prev = cur
	}
}

func TestResolveCreativitySoftPolicyCeiling(t *testing.T) {
	low := ResolveCreativity(10)
	assert.False(t, low.Strict)
	assert.Contains(t, low.VocabularyPolicy, "SOFT")
	assert.Contains(t, low.VocabularyPolicy, "15%") // round(90/6)

	high := ResolveCreativity(84)
	assert.Contains(t, high.VocabularyPolicy, "6%") // floor of max(6, round(16/6))
}

func TestResolveCreativityFreeVsStrictTemperature(t *testing.T) {
	free := ResolveCreativity(10)
	strict := ResolveCreativity(90)
	assert.Greater(t, free.Temperature, strict.Temperature)
}

func TestResolveCreativityClampsLevel(t *testing.T) {
	assert.Equal(t, 0, ResolveCreativity(-5).Level)
	assert.Equal(t, 100, ResolveCreativity(250).Level)
}

func TestResolveCreativityDeterministic(t *testing.T) {
	for _, level := range []int{0, 42, 84, 85, 100} {
		assert.Equal(t, ResolveCreativity(level), ResolveCreativity(level))
	}
}

func TestCoerceCreativity(t *testing.T) {
	assert.Equal(t, DefaultCreativity, CoerceCreativity(nil))

	nan := math.NaN()
	assert.Equal(t, DefaultCreativity, CoerceCreativity(&nan))

	inf := math.Inf(1)
	assert.Equal(t, DefaultCreativity, CoerceCreativity(&inf))

	half := 49.6
	assert.Equal(t, 50, CoerceCreativity(&half))

	neg := -12.0
	assert.Equal(t, 0, CoerceCreativity(&neg))

	big := 900.0
	assert.Equal(t, 100, CoerceCreativity(&big))
}

func TestClosedPolicyDiffersFromSoft(t *testing.T) {
	strict := ResolveCreativity(StrictThreshold)
	free := ResolveCreativity(StrictThreshold - 1)
	assert.False(t, strings.Contains(free.VocabularyPolicy, "CLOSED"))
	assert.NotEqual(t, strict.VocabularyPolicy, free.VocabularyPolicy)
}
