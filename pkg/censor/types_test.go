package censor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType_IsIsnt(t *testing.T) {
	crap := FromWeights([weightCount]int{2, 0, 0, 0, 0})

	assert.True(t, crap.Is(INAPPROPRIATE))
	assert.True(t, crap.Is(PROFANE&MODERATE))
	assert.True(t, crap.Is(PROFANE&MILD))
	assert.False(t, crap.Is(PROFANE&SEVERE))
	assert.True(t, crap.Isnt(PROFANE&SEVERE|SEXUAL))

	mean := FromWeights([weightCount]int{0, 0, 0, 1, 0})
	assert.False(t, mean.Is(INAPPROPRIATE))
	assert.True(t, mean.Is(ANY))

	for _, typ := range []Type{NONE, SAFE, crap, mean, ANY} {
		for _, mask := range []Type{NONE, INAPPROPRIATE, SEVERE, SPAM, SAFE} {
			assert.Equal(t, !typ.Is(mask), typ.Isnt(mask), "%s against %b", typ, mask)
		}
	}
}

func TestType_Weights(t *testing.T) {
	weights := [weightCount]int{2, 0, 3, 1, 0}
	typ := FromWeights(weights)

	assert.Equal(t, weights, typ.Weights())
	assert.Equal(t, Type(0b010|0b100<<6|0b001<<9), typ)
}

func TestType_String(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{NONE, "no detections"},
		{SAFE, "safe"},
		{FromWeights([weightCount]int{2, 0, 0, 1, 0}), "moderately profane, mildly mean"},
		{OFFENSIVE & SEVERE, "severely offensive"},
		{SPAM & mildOnly, "mildly spam"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.String())
	}
}

func TestType_Labels(t *testing.T) {
	assert.Equal(t, []string{"profane", "safe"}, (PROFANE&MODERATE | SAFE).Labels())
	assert.Empty(t, NONE.Labels())
}

func TestParseType(t *testing.T) {
	tests := []struct {
		expr string
		want Type
	}{
		{"inappropriate", INAPPROPRIATE},
		{"offensive & severe", OFFENSIVE & SEVERE},
		{"Offensive & Severe | sexual", OFFENSIVE&SEVERE | SEXUAL},
		{"profane & moderate | mean & severe", PROFANE&MODERATE | MEAN&SEVERE},
		{"safe", SAFE},
		{"none", NONE},
		{"any", ANY},
	}

	for _, tt := range tests {
		got, err := ParseType(tt.expr)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.want, got, tt.expr)
	}

	for _, expr := range []string{"", "  ", "rude", "profane &", "| sexual"} {
		_, err := ParseType(expr)
		assert.ErrorIs(t, err, ErrInvalidOption, expr)
	}
}
