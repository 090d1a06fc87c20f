package censor

import "strings"

// renderer holds the original runes that have not been written out yet,
// together with the censoring decisions taken for them.
type renderer struct {
	replacement rune

	// base is the input position of text[0].
	base  int
	text  []rune
	marks []bool
	// transparent runes, such as zero-width joiners, survive censoring.
	transparent []bool
}

func (r *renderer) push(c rune, transparent bool) {
	r.text = append(r.text, c)
	r.marks = append(r.marks, false)
	r.transparent = append(r.transparent, transparent)
}

// mark censors the input positions [from, to). With keepFirst the rune at
// from stays visible.
func (r *renderer) mark(from, to int, keepFirst bool) {
	if keepFirst {
		from++
	}
	from = max(from-r.base, 0)
	to = min(to-r.base, len(r.marks))
	for i := from; i < to; i++ {
		if !r.transparent[i] {
			r.marks[i] = true
		}
	}
}

// flush writes out every rune before the input position upTo.
func (r *renderer) flush(upTo int) string {
	n := min(upTo-r.base, len(r.text))
	if n <= 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(n)
	for i, c := range r.text[:n] {
		if r.marks[i] {
			c = r.replacement
		}
		b.WriteRune(c)
	}

	r.text = append(r.text[:0], r.text[n:]...)
	r.marks = append(r.marks[:0], r.marks[n:]...)
	r.transparent = append(r.transparent[:0], r.transparent[n:]...)
	r.base += n
	return b.String()
}
