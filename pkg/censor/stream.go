package censor

import "slices"

// Stream censors and analyzes text one character at a time. Output lags the
// input only as long as a dictionary word may still be forming, and the
// concatenated output of every Push and the final Close equals the batch
// result for the same text.
//
// A Stream is not safe for concurrent use. Many streams may share one Tree.
type Stream struct {
	tree *Tree
	opts Options

	col  collapser
	mat  matcher
	spam counters
	out  renderer
	emit func(Token)

	units []unit
	pos   int

	// tokens is a window of the token stream starting at index tokBase.
	tokens   []Token
	tokBase  int
	tokCount int

	pending []Match
	matches []Match
	typ     Type
	safeEnd int
	closed  bool
}

func newStream(tree *Tree, opts Options) *Stream {
	s := &Stream{
		tree:    tree,
		opts:    opts,
		col:     collapser{selfCensor: !opts.IgnoreSelfCensoring},
		mat:     matcher{tree: tree, selfCensor: !opts.IgnoreSelfCensoring},
		spam:    newCounters(),
		out:     renderer{replacement: opts.Replacement},
		safeEnd: -1,
	}
	s.emit = s.step
	return s
}

// Push feeds one character. It returns the analysis so far and the part of
// the censored output that can no longer change.
func (s *Stream) Push(r rune) (Type, string) {
	if s.closed {
		return s.Analysis(), ""
	}

	s.units = normalize(s.units[:0], r, s.opts.Replacement)
	s.spam.observe(r, s.units, s.opts.Replacement)
	s.out.push(r, transparent(s.units))
	for _, u := range s.units {
		s.col.feed(u, s.pos, s.emit)
	}
	s.pos++

	s.commit()
	out := s.out.flush(s.finalized())
	s.trim()
	return s.Analysis(), out
}

// PushString feeds every character of text.
func (s *Stream) PushString(text string) (Type, string) {
	var out []byte
	for _, r := range text {
		_, o := s.Push(r)
		out = append(out, o...)
	}
	return s.Analysis(), string(out)
}

// Close flushes the input. The returned analysis is final. Close is
// idempotent.
func (s *Stream) Close() (Type, string) {
	if s.closed {
		return s.Analysis(), ""
	}
	s.col.close(s.emit)
	s.closed = true
	s.commit()
	out := s.out.flush(s.pos)
	s.tokens, s.mat.paths = nil, nil
	return s.Analysis(), out
}

// Analysis returns the accumulated classification. Whole-input heuristics
// are only reliable after Close.
func (s *Stream) Analysis() Type {
	t := s.typ | s.spam.evaluate(s.opts.IgnoreSelfCensoring)
	if _, open := s.col.pending(); !open && s.safeEnd >= 0 && s.safeEnd == s.tokCount-1 {
		t |= SAFE
	}
	return t
}

// Matches returns the confirmed detections so far, in confirmation order.
func (s *Stream) Matches() []Match {
	return slices.Clone(s.matches)
}

// step consumes one token from the collapser.
func (s *Stream) step(t Token) {
	idx := s.tokCount
	s.tokens = append(s.tokens, t)
	s.tokCount++

	found := s.mat.step(idx, t)
	for _, m := range found {
		if m.Entry.Flagged() && !s.mostlyWildcards(m) {
			s.pending = append(s.pending, m)
		}
	}
	if s.opts.IgnoreFalsePositives {
		return
	}

	for _, f := range found {
		if !f.Entry.Suppress {
			continue
		}
		s.pending = slices.DeleteFunc(s.pending, func(m Match) bool {
			return contains(f, m)
		})
		if f.Entry.Type.Is(SAFE) && f.Start == 0 && f.Breaks == f.Entry.Breaks {
			s.safeEnd = idx
		}
	}
}

// commit confirms every pending match that nothing can suppress anymore:
// no live path starts at or before it and the token after it is known.
func (s *Stream) commit() {
	oldest, live := s.mat.oldest()
	kept := s.pending[:0]
	for _, m := range s.pending {
		if !s.closed && ((live && oldest <= m.Start) || m.End+1 >= s.tokCount) {
			kept = append(kept, m)
			continue
		}
		s.confirm(m)
	}
	s.pending = kept
}

func (s *Stream) confirm(m Match) {
	if !s.opts.IgnoreFalsePositives && splitAcrossWords(m, s.token, s.wordEnd(m)) {
		return
	}

	t := m.Type()
	s.typ |= t
	s.matches = append(s.matches, m)
	if t.Is(s.opts.CensorThreshold) {
		s.out.mark(s.token(m.Start).Start, s.token(m.End).End, t.Isnt(s.opts.CensorFirstCharacterThreshold))
	}
}

// mostlyWildcards rejects self-censored matches with more symbols than
// letters: "c***" could be any four letter word.
func (s *Stream) mostlyWildcards(m Match) bool {
	if !m.SelfCensored {
		return false
	}
	wild := 0
	for i := m.Start; i <= m.End; i++ {
		if s.token(i).Wildcard {
			wild++
		}
	}
	return 2*wild > m.End-m.Start+1
}

func (s *Stream) wordEnd(m Match) bool {
	if m.End+1 < s.tokCount {
		return s.token(m.End + 1).wordStart()
	}
	return s.closed
}

func (s *Stream) token(i int) Token {
	return s.tokens[i-s.tokBase]
}

// finalized returns the input position before which no rune can be censored
// by a match that is still forming.
func (s *Stream) finalized() int {
	limit := s.pos
	if start, open := s.col.pending(); open {
		limit = min(limit, start)
	}
	if i, ok := s.mat.oldest(); ok {
		limit = min(limit, s.token(i).Start)
	}
	for _, m := range s.pending {
		limit = min(limit, s.token(m.Start).Start)
	}
	return limit
}

// trim drops tokens that no live path or pending match refers to. The last
// token is kept as lookahead for the next one.
func (s *Stream) trim() {
	low := s.tokCount - 1
	if i, ok := s.mat.oldest(); ok {
		low = min(low, i)
	}
	for _, m := range s.pending {
		low = min(low, m.Start)
	}
	if n := low - s.tokBase; n > 0 {
		s.tokens = append(s.tokens[:0], s.tokens[n:]...)
		s.tokBase = low
	}
}

func transparent(units []unit) bool {
	for _, u := range units {
		if u.class != classIgnored {
			return false
		}
	}
	return len(units) > 0
}
