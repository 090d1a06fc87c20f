package censor

import (
	"fmt"
	"strings"
)

// Type represents a type or severity of inappropriateness. Values combine with
// the usual bitwise operators and are not mutually exclusive.
//
// Each category owns three bits: mild, moderate and severe, from low to high.
type Type uint32

const (
	// PROFANE covers bad words.
	PROFANE Type = 0b0_000_000_000_000_000_111
	// OFFENSIVE covers offensive words.
	OFFENSIVE Type = 0b0_000_000_000_000_111_000
	// SEXUAL covers sexual words.
	SEXUAL Type = 0b0_000_000_000_111_000_000
	// MEAN covers mean words.
	MEAN Type = 0b0_000_000_111_000_000_000
	// EVASIVE covers words intended to evade detection.
	EVASIVE Type = 0b0_000_111_000_000_000_000
	// SPAM covers spam, gibberish and SHOUTING.
	SPAM Type = 0b0_111_000_000_000_000_000

	// SAFE marks input made up entirely of one known safe phrase.
	SAFE Type = 0b1_000_000_000_000_000_000

	// MILD selects mild or worse.
	MILD Type = 0b0_111_111_111_111_111_111
	// MODERATE selects moderate or worse.
	MODERATE Type = 0b0_110_110_110_110_110_110
	// SEVERE selects severe only.
	SEVERE Type = 0b0_100_100_100_100_100_100

	// INAPPROPRIATE is profane, offensive, sexual, or severely mean.
	INAPPROPRIATE = PROFANE | OFFENSIVE | SEXUAL | (MEAN & SEVERE)

	// ANY is every detection except SAFE.
	ANY = PROFANE | OFFENSIVE | SEXUAL | MEAN | EVASIVE | SPAM

	// NONE is no detection at all.
	NONE Type = 0
)

// weightCount is the number of categories a dictionary weight vector covers:
// profane, offensive, sexual, mean, evasive.
const (
	weightCount = 5
	weightBits  = 3
)

const (
	mildWeight     = 1
	moderateWeight = 2
	severeWeight   = 3
)

// Is reports whether t meets the threshold, i.e. shares at least one bit with it.
func (t Type) Is(threshold Type) bool {
	return t&threshold != NONE
}

// Isnt is the logical opposite of Is.
func (t Type) Isnt(threshold Type) bool {
	return t&threshold == NONE
}

// FromWeights builds a Type from per-category weights in the order profane,
// offensive, sexual, mean, evasive. A weight of 0 means absent, 1 mild,
// 2 moderate and 3 severe.
func FromWeights(weights [weightCount]int) Type {
	var t Type
	for i, w := range weights {
		var severity Type
		switch {
		case w >= severeWeight:
			severity = 0b100
		case w == moderateWeight:
			severity = 0b010
		case w == mildWeight:
			severity = 0b001
		}
		t |= severity << (i * weightBits)
	}
	return t
}

// Weights is the inverse of FromWeights, reporting the highest severity set
// for each category.
func (t Type) Weights() [weightCount]int {
	var weights [weightCount]int
	for i := range weights {
		weights[i] = bitsToWeight(uint32(t>>(i*weightBits)) & 0b111)
	}
	return weights
}

func bitsToWeight(bits uint32) int {
	switch {
	case bits&0b100 != 0:
		return severeWeight
	case bits&0b010 != 0:
		return moderateWeight
	case bits&0b001 != 0:
		return mildWeight
	}
	return 0
}

var categoryNames = [...]string{"profane", "offensive", "sexual", "mean", "evasive", "spam"}

// String describes t in words, e.g. "moderately profane, mildly mean".
func (t Type) String() string {
	var parts []string
	for i, name := range categoryNames {
		switch bitsToWeight(uint32(t>>(i*weightBits)) & 0b111) {
		case severeWeight:
			parts = append(parts, "severely "+name)
		case moderateWeight:
			parts = append(parts, "moderately "+name)
		case mildWeight:
			parts = append(parts, "mildly "+name)
		}
	}
	if t.Is(SAFE) {
		parts = append(parts, "safe")
	}
	if len(parts) == 0 {
		return "no detections"
	}
	return strings.Join(parts, ", ")
}

// Labels lists the categories present in t, without severities.
func (t Type) Labels() []string {
	var labels []string
	for i, name := range categoryNames {
		if t.Is(0b111 << (i * weightBits)) {
			labels = append(labels, name)
		}
	}
	if t.Is(SAFE) {
		labels = append(labels, "safe")
	}
	return labels
}

var typeNames = map[string]Type{
	"profane":       PROFANE,
	"offensive":     OFFENSIVE,
	"sexual":        SEXUAL,
	"mean":          MEAN,
	"evasive":       EVASIVE,
	"spam":          SPAM,
	"safe":          SAFE,
	"mild":          MILD,
	"moderate":      MODERATE,
	"severe":        SEVERE,
	"inappropriate": INAPPROPRIATE,
	"any":           ANY,
	"none":          NONE,
}

// ParseType parses a mask expression such as "offensive & severe | sexual".
// '&' binds tighter than '|'. Names are case-insensitive.
func ParseType(s string) (Type, error) {
	if strings.TrimSpace(s) == "" {
		return NONE, fmt.Errorf("%w: empty type expression", ErrInvalidOption)
	}

	var result Type
	for _, term := range strings.Split(s, "|") {
		t := MILD | SAFE
		for _, factor := range strings.Split(term, "&") {
			name := strings.ToLower(strings.TrimSpace(factor))
			v, ok := typeNames[name]
			if !ok {
				return NONE, fmt.Errorf("%w: unknown type %q in %q", ErrInvalidOption, name, s)
			}
			t &= v
		}
		result |= t
	}
	return result, nil
}
