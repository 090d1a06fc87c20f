package censor

// maxFillerRun is the longest run of filler characters that still joins the
// letters on either side into one candidate word, as in "f u c k" or "s.h.i.t".
const maxFillerRun = 3

// Token is one letter of the compacted stream.
type Token struct {
	Letter rune
	// Start and End delimit the original runes the token was derived from.
	Start, End int
	// Space is set when a short filler run separates the token from the previous one.
	Space bool
	// Break is set on the first token and after a boundary or a long filler
	// run. Matches never cross it.
	Break bool
	// Wildcard marks a self-censoring symbol standing in for a letter.
	Wildcard bool
	// Repeated marks a run of three or more identical letters.
	Repeated bool
}

func (t Token) wordStart() bool {
	return t.Space || t.Break
}

// collapser turns classified units into tokens, collapsing long letter runs
// and merging letters separated by short filler runs.
type collapser struct {
	selfCensor bool

	run    Token
	runLen int
	second int
	open   bool

	filler   int
	boundary bool
	started  bool
}

func (c *collapser) feed(u unit, pos int, emit func(Token)) {
	switch u.class {
	case classIgnored:
		return
	case classBoundary:
		c.close(emit)
		c.boundary = true
		return
	case classWildcard:
		if !c.selfCensor {
			c.close(emit)
			c.filler++
			return
		}
	case classFiller:
		c.close(emit)
		c.filler++
		return
	}

	wildcard := u.class == classWildcard
	if c.open && !wildcard && !c.run.Wildcard && c.run.Letter == u.r {
		c.runLen++
		if c.runLen == 2 {
			c.second = pos
		}
		c.run.End = pos + 1
		return
	}

	c.close(emit)
	brk := !c.started || c.boundary || c.filler > maxFillerRun
	c.run = Token{
		Letter:   u.r,
		Start:    pos,
		End:      pos + 1,
		Break:    brk,
		Space:    !brk && c.filler > 0,
		Wildcard: wildcard,
	}
	c.runLen = 1
	c.open = true
	c.started = true
	c.filler = 0
	c.boundary = false
}

// close emits the open run, if any. Runs of two stay two tokens; longer runs
// become one repeated token.
func (c *collapser) close(emit func(Token)) {
	if !c.open {
		return
	}
	c.open = false

	switch {
	case c.runLen >= 3:
		c.run.Repeated = true
		emit(c.run)
	case c.runLen == 2:
		first := c.run
		first.End = c.second
		emit(first)
		emit(Token{Letter: c.run.Letter, Start: c.second, End: c.run.End})
	default:
		emit(c.run)
	}
}

// pending reports the start of the run that has not been emitted yet.
func (c *collapser) pending() (int, bool) {
	return c.run.Start, c.open
}
