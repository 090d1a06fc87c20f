package censor

import "unicode"

// Exact severities, as opposed to the "or worse" masks MILD and MODERATE.
const (
	mildOnly     Type = 0b0_001_001_001_001_001_001
	moderateOnly Type = 0b0_010_010_010_010_010_010
	severeOnly        = SEVERE
)

// shortInput is the position below which ratios are not meaningful: a single
// acronym would otherwise look like shouting.
const shortInput = 6

// counters accumulates whole-input evidence of spam and self-censoring.
type counters struct {
	lastPos       int
	uppercase     int
	repetitions   int
	gibberish     int
	replacements  int
	selfCensoring int

	last     rune
	hasLast  bool
	separate bool
}

func newCounters() counters {
	return counters{lastPos: -1, separate: true}
}

// observe records one raw input rune and the units it normalized to.
func (c *counters) observe(r rune, units []unit, replacement rune) {
	c.lastPos++

	if r == replacement && (!c.separate || (c.hasLast && c.last == replacement)) {
		c.selfCensoring++
	}
	if unicode.IsUpper(r) {
		c.uppercase++
	}

	replaced := false
	letter := false
	for _, u := range units {
		replaced = replaced || u.replaced
		letter = letter || u.class == classLetter
	}

	if c.hasLast {
		if r == c.last {
			c.repetitions++
		}
		// Swapping a letter for a look-alike is suspicious, a number is not.
		if replaced && !(r >= 'a' && r <= 'z') && !(isDigit(r) && isDigit(c.last)) {
			c.replacements++
		}
		if isGibberish(r) && isGibberish(c.last) {
			c.gibberish++
		}
	}

	c.last, c.hasLast = r, true
	c.separate = !letter
}

// evaluate converts the counters into SPAM and self-censoring detections.
func (c *counters) evaluate(ignoreSelfCensoring bool) Type {
	if c.lastPos < shortInput {
		return NONE
	}

	// The bias keeps a few words in a short text from producing huge ratios.
	total := c.lastPos + shortInput
	spam := max(c.uppercase, c.repetitions, c.gibberish/2, c.replacements)

	percentSpam := 100 * spam / total
	percentSelfCensoring := 100 * c.selfCensoring / total

	var t Type
	switch {
	case percentSpam >= 70 && c.lastPos >= 20:
		t |= SPAM & severeOnly
	case percentSpam >= 50 && c.lastPos >= 10:
		t |= SPAM & moderateOnly
	case percentSpam >= 30:
		t |= SPAM & mildOnly
	}

	if !ignoreSelfCensoring && percentSelfCensoring > 20 {
		t |= PROFANE & mildOnly
	}
	return t
}

// isGibberish reports home row keys, which keyboard mashing hits the most.
func isGibberish(r rune) bool {
	switch r {
	case 'a', 's', 'd', 'f', 'j', 'k', 'l', ';':
		return true
	}
	return false
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
