package censor

// Match is a dictionary word found in the token stream.
type Match struct {
	// Start and End are the first and last token indices, inclusive.
	Start, End int
	Entry      *Entry
	// Gaps counts the filler runs crossed inside the match.
	Gaps int
	// Breaks has bit i set when a gap preceded the i-th matched letter.
	Breaks uint64
	// SelfCensored is set when a wildcard stood in for a letter.
	SelfCensored bool
}

// Type is the classification the match contributes.
func (m Match) Type() Type {
	return m.Entry.Type
}

// path is one partial walk of the tree that may still reach a word.
type path struct {
	node   int32
	start  int
	last   rune
	gaps   int
	breaks uint64
	wild   bool
}

// better reports whether p is the stronger evidence of two walks that
// reached the same node from the same start.
func (p path) better(q path) bool {
	if p.gaps != q.gaps {
		return p.gaps < q.gaps
	}
	return !p.wild && q.wild
}

// matcher walks the tree over the token stream, keeping every live path.
type matcher struct {
	tree       *Tree
	selfCensor bool

	paths []path
	next  []path
	found []Match
}

func (m *matcher) reset() {
	m.paths = m.paths[:0]
}

// step feeds the token at index idx and returns every word ending there.
// The returned slice is reused by the next call.
func (m *matcher) step(idx int, t Token) []Match {
	if t.Break {
		m.paths = m.paths[:0]
	}

	m.next = m.next[:0]
	for _, p := range m.paths {
		m.extend(p, t)
	}
	if !t.Wildcard {
		m.extend(path{node: root, start: idx}, t)
	}
	m.paths, m.next = m.next, m.paths

	m.found = m.found[:0]
	for _, p := range m.paths {
		e, ok := m.tree.entry(p.node)
		if !ok {
			continue
		}
		m.found = append(m.found, Match{
			Start:        p.start,
			End:          idx,
			Entry:        e,
			Gaps:         p.gaps,
			Breaks:       p.breaks,
			SelfCensored: p.wild,
		})
	}
	return m.found
}

func (m *matcher) extend(p path, t Token) {
	crossing := p.node != root && t.Space
	if crossing {
		p.gaps++
		p.breaks |= 1 << m.tree.nodes[p.node].depth
	}

	if t.Wildcard {
		// Only a symbol attached to the letters before it reads as one.
		if p.node == root || !m.selfCensor || t.wordStart() {
			return
		}
		for _, e := range m.tree.nodes[p.node].edges {
			m.add(path{node: e.next, start: p.start, last: e.r, gaps: p.gaps, breaks: p.breaks, wild: true})
		}
		return
	}

	c := t.Letter
	if next, ok := m.tree.child(p.node, c); ok {
		q := p
		q.node, q.last = next, c
		m.add(q)
		if t.Repeated {
			if again, ok := m.tree.child(next, c); ok {
				q.node = again
				m.add(q)
			}
		}
	}

	// Tolerate doubled letters that the word does not have, as in "craap".
	if !crossing && p.node != root && c == p.last {
		m.add(p)
	}
}

func (m *matcher) add(p path) {
	for i := range m.next {
		q := &m.next[i]
		if q.node == p.node && q.start == p.start {
			if p.better(*q) {
				*q = p
			}
			return
		}
	}
	m.next = append(m.next, p)
}

// oldest returns the smallest start of any live path.
func (m *matcher) oldest() (int, bool) {
	if len(m.paths) == 0 {
		return 0, false
	}
	min := m.paths[0].start
	for _, p := range m.paths[1:] {
		if p.start < min {
			min = p.start
		}
	}
	return min, true
}
