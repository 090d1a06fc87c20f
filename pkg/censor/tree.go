package censor

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

// ErrEmptyDictionary is returned when a tree would contain no words.
var ErrEmptyDictionary = errors.New("dictionary has no words")

// maxDepth bounds word length so phrase gaps fit in a uint64 mask.
const maxDepth = 63

// Entry is one dictionary word in canonical form.
type Entry struct {
	Word string
	Type Type
	// Suppress marks known safe words that cancel shorter flagged words
	// found inside them, e.g. "assassin".
	Suppress bool
	// Breaks has bit i set when the original phrase had a space before its
	// i-th letter.
	Breaks uint64
}

// Flagged reports whether a match against e is a detection.
func (e *Entry) Flagged() bool {
	return e.Type.Is(ANY)
}

type edge struct {
	r    rune
	next int32
}

type node struct {
	edges []edge // sorted by rune
	entry int32  // index into Tree.entries, or -1
	depth uint8
}

// Tree is an immutable trie over canonical letters. Nodes live in one slice
// and refer to each other by index, so a Tree is safe for concurrent reads.
type Tree struct {
	nodes   []node
	entries []Entry
}

const root int32 = 0

func (t *Tree) child(n int32, r rune) (int32, bool) {
	edges := t.nodes[n].edges
	if len(edges) <= 8 {
		for _, e := range edges {
			if e.r == r {
				return e.next, true
			}
		}
		return 0, false
	}
	i := sort.Search(len(edges), func(i int) bool { return edges[i].r >= r })
	if i < len(edges) && edges[i].r == r {
		return edges[i].next, true
	}
	return 0, false
}

func (t *Tree) entry(n int32) (*Entry, bool) {
	i := t.nodes[n].entry
	if i < 0 {
		return nil, false
	}
	return &t.entries[i], true
}

// Len returns the number of words in the tree.
func (t *Tree) Len() int {
	return len(t.entries)
}

// Lookup returns the entry for a word, normalizing it the same way text is.
func (t *Tree) Lookup(word string) (Entry, bool) {
	letters, _, err := canonical(word)
	if err != nil {
		return Entry{}, false
	}
	n := root
	for _, r := range letters {
		next, ok := t.child(n, r)
		if !ok {
			return Entry{}, false
		}
		n = next
	}
	e, ok := t.entry(n)
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Builder accumulates words for a Tree. It is not safe for concurrent use.
type Builder struct {
	tree Tree
	errs []error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{tree: Tree{nodes: []node{{entry: -1}}}}
}

// Add inserts a word. Adding the same canonical word twice merges the types.
func (b *Builder) Add(word string, typ Type, suppress bool) {
	letters, breaks, err := canonical(word)
	if err != nil {
		b.errs = append(b.errs, err)
		return
	}

	t := &b.tree
	n := root
	for _, r := range letters {
		next, ok := t.child(n, r)
		if !ok {
			next = int32(len(t.nodes))
			t.nodes = append(t.nodes, node{entry: -1, depth: t.nodes[n].depth + 1})
			edges := t.nodes[n].edges
			i := sort.Search(len(edges), func(i int) bool { return edges[i].r >= r })
			edges = append(edges, edge{})
			copy(edges[i+1:], edges[i:])
			edges[i] = edge{r: r, next: next}
			t.nodes[n].edges = edges
		}
		n = next
	}

	if i := t.nodes[n].entry; i >= 0 {
		e := &t.entries[i]
		e.Type |= typ
		e.Suppress = e.Suppress || suppress
		return
	}
	t.nodes[n].entry = int32(len(t.entries))
	t.entries = append(t.entries, Entry{
		Word:     string(letters),
		Type:     typ,
		Suppress: suppress,
		Breaks:   breaks,
	})
}

// Build returns the finished tree. The Builder must not be used afterwards.
func (b *Builder) Build() (*Tree, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	if len(b.tree.entries) == 0 {
		return nil, ErrEmptyDictionary
	}
	t := b.tree
	b.tree = Tree{}
	return &t, nil
}

// canonical normalizes a dictionary word into the letters the matcher sees,
// recording where spaces separated the words of a phrase.
func canonical(word string) ([]rune, uint64, error) {
	if !utf8.ValidString(word) {
		return nil, 0, fmt.Errorf("word %q is not valid UTF-8", word)
	}

	var (
		letters []rune
		breaks  uint64
		gap     bool
		buf     []unit
	)
	for _, r := range word {
		buf = normalize(buf[:0], r, 0)
		for _, u := range buf {
			switch u.class {
			case classLetter:
				if gap && len(letters) > 0 {
					breaks |= 1 << len(letters)
				}
				gap = false
				letters = append(letters, u.r)
			case classIgnored:
			default:
				gap = true
			}
		}
	}

	if len(letters) == 0 {
		return nil, 0, fmt.Errorf("word %q has no letters", word)
	}
	if len(letters) > maxDepth {
		return nil, 0, fmt.Errorf("word %q is longer than %d letters", word, maxDepth)
	}
	return letters, breaks, nil
}
