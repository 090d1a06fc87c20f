package censor

import (
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// class tags a canonical character for the collapser.
type class uint8

const (
	classLetter class = iota
	// classFiller is absorbed between letters: spaces, punctuation, symbols.
	classFiller
	// classBoundary ends any in-progress match: line and paragraph breaks.
	classBoundary
	// classWildcard may stand in for a letter when self-censoring is honoured.
	classWildcard
	// classIgnored is transparent: format characters such as zero-width
	// joiners and bidi overrides.
	classIgnored
)

// unit is one canonical character produced by the normalizer.
type unit struct {
	r     rune
	class class
	// replaced is set when the confusable table rewrote the character.
	replaced bool
}

var (
	marks   = runes.In(unicode.Mn)
	formats = runes.In(unicode.Cf)
)

// Casers keep internal state and are not safe for concurrent use.
var folders = sync.Pool{
	New: func() any {
		c := cases.Fold()
		return &c
	},
}

// isWildcard reports whether r is a typical self-censoring symbol.
func isWildcard(r, replacement rune) bool {
	switch r {
	case '*', '#', '%', '&':
		return true
	}
	return r == replacement
}

// normalize maps one input rune to zero or more canonical units.
// Every rune has a defined output, so it never fails.
func normalize(dst []unit, r rune, replacement rune) []unit {
	switch {
	case r == '\n' || r == '\r' || r == '\v' || r == '\f' || r == '\u2028' || r == '\u2029':
		return append(dst, unit{r: r, class: classBoundary})
	case isWildcard(r, replacement):
		return append(dst, unit{r: r, class: classWildcard})
	case r < utf8.RuneSelf:
		return append(dst, classify(unicode.ToLower(r)))
	case formats.Contains(r) || r == utf8.RuneError:
		return append(dst, unit{r: r, class: classIgnored})
	}

	s := width.Fold.String(string(r))
	s = norm.NFKD.String(s)

	c := folders.Get().(*cases.Caser)
	s = c.String(s)
	folders.Put(c)

	n := len(dst)
	for _, d := range s {
		if marks.Contains(d) || formats.Contains(d) {
			continue
		}
		dst = append(dst, classify(d))
	}
	if len(dst) == n {
		// Nothing but marks: the rune is decoration on a neighbour.
		dst = append(dst, unit{r: r, class: classIgnored})
	}
	return dst
}

func classify(r rune) unit {
	c, replaced := confusable(r)
	switch {
	case unicode.IsLetter(c) || unicode.IsDigit(c):
		return unit{r: c, class: classLetter, replaced: replaced}
	case unicode.IsSpace(c):
		return unit{r: ' ', class: classFiller}
	}
	return unit{r: c, class: classFiller, replaced: replaced}
}
