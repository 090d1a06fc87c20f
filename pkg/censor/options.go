package censor

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidOption is returned for option values the censor cannot honour.
var ErrInvalidOption = errors.New("invalid option")

// Options control analysis and censoring.
type Options struct {
	// CensorThreshold selects the matches whose text is replaced.
	CensorThreshold Type
	// CensorFirstCharacterThreshold selects the matches whose first character
	// is replaced too; other censored matches keep it visible.
	CensorFirstCharacterThreshold Type
	// IgnoreFalsePositives disables false positive suppression, so "push it"
	// counts as containing a profanity.
	IgnoreFalsePositives bool
	// IgnoreSelfCensoring stops symbols such as '*' standing in for letters.
	IgnoreSelfCensoring bool
	// Replacement is the character written over censored text.
	Replacement rune
}

// DefaultOptions returns the recommended options.
func DefaultOptions() Options {
	return Options{
		CensorThreshold:               INAPPROPRIATE,
		CensorFirstCharacterThreshold: OFFENSIVE & SEVERE,
		Replacement:                   '*',
	}
}

// Validate rejects options that cannot produce well defined output.
func (o Options) Validate() error {
	r := o.Replacement
	switch {
	case r == 0:
		return fmt.Errorf("%w: empty replacement", ErrInvalidOption)
	case r == utf8.RuneError || !utf8.ValidRune(r):
		return fmt.Errorf("%w: replacement %U is not a valid character", ErrInvalidOption, r)
	case unicode.IsSpace(r) || !unicode.IsGraphic(r):
		return fmt.Errorf("%w: replacement %U is not visible", ErrInvalidOption, r)
	case unicode.IsLetter(r) || unicode.IsDigit(r):
		return fmt.Errorf("%w: replacement %q would be read as a letter", ErrInvalidOption, r)
	}
	return nil
}

// Config is the textual form of Options used in configuration files and
// requests. Empty fields keep their defaults.
type Config struct {
	Threshold               string `toml:"threshold" json:"threshold,omitempty"`
	FirstCharacterThreshold string `toml:"firstCharacterThreshold" json:"first_character_threshold,omitempty"`
	IgnoreFalsePositives    bool   `toml:"ignoreFalsePositives" json:"ignore_false_positives,omitempty"`
	IgnoreSelfCensoring     bool   `toml:"ignoreSelfCensoring" json:"ignore_self_censoring,omitempty"`
	Replacement             string `toml:"replacement" json:"replacement,omitempty"`
}

// Options converts c on top of base.
func (c Config) Options(base Options) (Options, error) {
	o := base
	if c.Threshold != "" {
		t, err := ParseType(c.Threshold)
		if err != nil {
			return Options{}, fmt.Errorf("threshold: %w", err)
		}
		o.CensorThreshold = t
	}
	if c.FirstCharacterThreshold != "" {
		t, err := ParseType(c.FirstCharacterThreshold)
		if err != nil {
			return Options{}, fmt.Errorf("first character threshold: %w", err)
		}
		o.CensorFirstCharacterThreshold = t
	}
	if c.Replacement != "" {
		r, err := ParseReplacement(c.Replacement)
		if err != nil {
			return Options{}, err
		}
		o.Replacement = r
	}
	o.IgnoreFalsePositives = o.IgnoreFalsePositives || c.IgnoreFalsePositives
	o.IgnoreSelfCensoring = o.IgnoreSelfCensoring || c.IgnoreSelfCensoring

	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// ParseReplacement accepts exactly one character.
func ParseReplacement(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: replacement %q must be exactly one character", ErrInvalidOption, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0, fmt.Errorf("%w: replacement %q is not valid UTF-8", ErrInvalidOption, s)
	}
	return r, nil
}
