package censor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T, flagged []string, suppress []string) *Tree {
	t.Helper()

	b := NewBuilder()
	for _, w := range flagged {
		b.Add(w, PROFANE&MODERATE, false)
	}
	for _, w := range suppress {
		b.Add(w, NONE, true)
	}
	tree, err := b.Build()
	require.NoError(t, err)
	return tree
}

// matchAll describes every match as "word start-end".
func matchAll(tree *Tree, text string, selfCensor bool) []string {
	m := matcher{tree: tree, selfCensor: selfCensor}
	var found []string
	for i, tok := range collapse(text, true) {
		for _, match := range m.step(i, tok) {
			found = append(found, fmt.Sprintf("%s %d-%d", match.Entry.Word, match.Start, match.End))
		}
	}
	return found
}

func TestMatcher(t *testing.T) {
	tree := buildTree(t, []string{"ass", "crap", "fuck"}, []string{"assassin"})

	tests := []struct {
		name       string
		text       string
		selfCensor bool
		want       []string
	}{
		{"embedded words", "assassin", false, []string{"ass 0-2", "ass 3-5", "assassin 0-7"}},
		{"repeated letters", "fuuuuck", false, []string{"fuck 0-3"}},
		{"doubled letter", "craap", false, []string{"crap 0-4"}},
		{"spaced", "cr ap", false, []string{"crap 0-3"}},
		{"line break", "cr\nap", false, nil},
		{"wildcard", "f*ck", true, []string{"fuck 0-3"}},
		{"wildcard ignored", "f*ck", false, nil},
		{"wildcard at word start", "as *", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchAll(tree, tt.text, tt.selfCensor))
		})
	}
}

func TestMatcher_Gaps(t *testing.T) {
	tree := buildTree(t, []string{"crap"}, nil)
	m := matcher{tree: tree}

	var found []Match
	for i, tok := range collapse("c r ap", false) {
		found = append(found, m.step(i, tok)...)
	}
	require.Len(t, found, 1)
	assert.Equal(t, 2, found[0].Gaps)
	assert.Equal(t, uint64(1<<1|1<<2), found[0].Breaks)
	assert.False(t, found[0].SelfCensored)
}

func TestMatcher_Oldest(t *testing.T) {
	tree := buildTree(t, []string{"crap"}, nil)
	m := matcher{tree: tree}

	_, ok := m.oldest()
	assert.False(t, ok)

	tokens := collapse("x cr", false)
	for i, tok := range tokens {
		m.step(i, tok)
	}
	start, ok := m.oldest()
	require.True(t, ok)
	assert.Equal(t, 1, start)

	m.reset()
	_, ok = m.oldest()
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	ass := &Entry{Word: "ass", Type: PROFANE & MODERATE}
	assassin := &Entry{Word: "assassin", Suppress: true}

	assert.True(t, contains(Match{Start: 0, End: 7, Entry: assassin}, Match{Start: 3, End: 5, Entry: ass}))
	assert.False(t, contains(Match{Start: 0, End: 7, Entry: assassin, Gaps: 1}, Match{Start: 3, End: 5, Entry: ass}))
	assert.False(t, contains(Match{Start: 0, End: 4, Entry: assassin}, Match{Start: 3, End: 5, Entry: ass}))
	assert.False(t, contains(Match{Start: 0, End: 2, Entry: ass}, Match{Start: 0, End: 2, Entry: ass}))
}

func TestSplitAcrossWords(t *testing.T) {
	shit := &Entry{Word: "shit"}
	fuck := &Entry{Word: "fuck"}
	idiot := &Entry{Word: "idiot"}
	shutUp := &Entry{Word: "shutup", Breaks: 1 << 4}

	tests := []struct {
		name    string
		text    string
		match   Match
		wordEnd bool
		want    bool
	}{
		{"starts inside a word", "push it", Match{Start: 2, End: 5, Entry: shit, Gaps: 1, Breaks: 1 << 2}, true, true},
		{"ends inside a word", "f uckle", Match{Start: 0, End: 3, Entry: fuck, Gaps: 1, Breaks: 1 << 1}, false, true},
		{"spelled out", "f u c k", Match{Start: 0, End: 3, Entry: fuck, Gaps: 3, Breaks: 0b1110}, true, false},
		{"one fragment is not a word", "fu ck", Match{Start: 0, End: 3, Entry: fuck, Gaps: 1, Breaks: 1 << 2}, true, false},
		{"every fragment is a word", "id iot", Match{Start: 0, End: 4, Entry: idiot, Gaps: 1, Breaks: 1 << 2}, true, true},
		{"phrase layout", "shut up", Match{Start: 0, End: 5, Entry: shutUp, Gaps: 1, Breaks: 1 << 4}, true, false},
		{"no gaps", "fuck", Match{Start: 0, End: 3, Entry: fuck}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := collapse(tt.text, false)
			at := func(i int) Token { return tokens[i] }
			assert.Equal(t, tt.want, splitAcrossWords(tt.match, at, tt.wordEnd))
		})
	}
}
