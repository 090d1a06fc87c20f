package censor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collapse(text string, selfCensor bool) []Token {
	c := collapser{selfCensor: selfCensor}
	var (
		tokens []Token
		buf    []unit
	)
	emit := func(t Token) { tokens = append(tokens, t) }
	for i, r := range []rune(text) {
		buf = normalize(buf[:0], r, '*')
		for _, u := range buf {
			c.feed(u, i, emit)
		}
	}
	c.close(emit)
	return tokens
}

func TestCollapse(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		selfCensor bool
		want       []Token
	}{
		{
			name: "long run",
			text: "craaap",
			want: []Token{
				{Letter: 'c', Start: 0, End: 1, Break: true},
				{Letter: 'r', Start: 1, End: 2},
				{Letter: 'a', Start: 2, End: 5, Repeated: true},
				{Letter: 'p', Start: 5, End: 6},
			},
		},
		{
			name: "double letter",
			text: "aa",
			want: []Token{
				{Letter: 'a', Start: 0, End: 1, Break: true},
				{Letter: 'a', Start: 1, End: 2},
			},
		},
		{
			name: "short filler",
			text: "f.u",
			want: []Token{
				{Letter: 'f', Start: 0, End: 1, Break: true},
				{Letter: 'u', Start: 2, End: 3, Space: true},
			},
		},
		{
			name: "long filler",
			text: "a    b",
			want: []Token{
				{Letter: 'a', Start: 0, End: 1, Break: true},
				{Letter: 'b', Start: 5, End: 6, Break: true},
			},
		},
		{
			name: "line break",
			text: "a\nb",
			want: []Token{
				{Letter: 'a', Start: 0, End: 1, Break: true},
				{Letter: 'b', Start: 2, End: 3, Break: true},
			},
		},
		{
			name: "leading filler",
			text: "  hi",
			want: []Token{
				{Letter: 'h', Start: 2, End: 3, Break: true},
				{Letter: 'i', Start: 3, End: 4},
			},
		},
		{
			name: "ignored characters are transparent",
			text: "a\u200bb",
			want: []Token{
				{Letter: 'a', Start: 0, End: 1, Break: true},
				{Letter: 'b', Start: 2, End: 3},
			},
		},
		{
			name:       "wildcard",
			text:       "f*ck",
			selfCensor: true,
			want: []Token{
				{Letter: 'f', Start: 0, End: 1, Break: true},
				{Letter: '*', Start: 1, End: 2, Wildcard: true},
				{Letter: 'c', Start: 2, End: 3},
				{Letter: 'k', Start: 3, End: 4},
			},
		},
		{
			name: "wildcard as filler",
			text: "f*ck",
			want: []Token{
				{Letter: 'f', Start: 0, End: 1, Break: true},
				{Letter: 'c', Start: 2, End: 3, Space: true},
				{Letter: 'k', Start: 3, End: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collapse(tt.text, tt.selfCensor))
		})
	}
}

func TestCollapse_Pending(t *testing.T) {
	var c collapser
	emit := func(Token) {}

	_, open := c.pending()
	assert.False(t, open)

	c.feed(unit{r: 'a', class: classLetter}, 4, emit)
	start, open := c.pending()
	assert.True(t, open)
	assert.Equal(t, 4, start)

	c.feed(unit{r: ' ', class: classFiller}, 5, emit)
	_, open = c.pending()
	assert.False(t, open)
}
