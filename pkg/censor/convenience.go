package censor

import "sync"

var defaultCensor = sync.OnceValue(func() *Censor {
	c, err := New(Default(), DefaultOptions())
	if err != nil {
		panic(err)
	}
	return c
})

// CensorString censors text with the built-in dictionary and default options.
func CensorString(text string) string {
	s, _ := defaultCensor().Censor(text)
	return s
}

// IsInappropriate reports whether text is INAPPROPRIATE.
func IsInappropriate(text string) bool {
	return defaultCensor().Is(text, INAPPROPRIATE)
}

// Is reports whether the analysis of text meets threshold.
func Is(text string, threshold Type) bool {
	return defaultCensor().Is(text, threshold)
}

// Isnt is the logical opposite of Is.
func Isnt(text string, threshold Type) bool {
	return defaultCensor().Isnt(text, threshold)
}
