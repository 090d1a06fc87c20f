// Package censor detects and censors profane, offensive, sexual, mean and
// evasive language, including text obfuscated with look-alike characters,
// spacing, repetition and self-censoring symbols.

// Important notice: the dictionary and test data contain examples of explicit
// language and offensive terms required for validation. These examples:
// - Are intentionally provocative to test edge cases
// - Do not represent the author's views
// - Should be treated as technical test artifacts only

// If you find such content disturbing or prefer to avoid exposure
// to sensitive language patterns:
// 1. Do not inspect the 'data' and 'test_data' directories
// 2. Avoid reviewing test case literals
package censor

import "fmt"

// Censor analyzes and censors text against a dictionary. It is immutable and
// safe for concurrent use.
type Censor struct {
	tree *Tree
	opts Options
}

// New returns a Censor for tree. A nil tree selects the built-in dictionary.
func New(tree *Tree, opts Options) (*Censor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if tree == nil {
		tree = Default()
	}
	return &Censor{tree: tree, opts: opts}, nil
}

// With returns a Censor sharing the dictionary of c with different options.
func (c *Censor) With(opts Options) (*Censor, error) {
	return New(c.tree, opts)
}

// Options returns the options of c.
func (c *Censor) Options() Options {
	return c.opts
}

// NewStream starts an incremental analysis.
func (c *Censor) NewStream() *Stream {
	return newStream(c.tree, c.opts)
}

// Result is the outcome of a batch analysis.
type Result struct {
	Censored string
	Analysis Type
	Matches  []Match
}

// Detect runs text through a Stream to completion.
func (c *Censor) Detect(text string) Result {
	s := c.NewStream()
	_, head := s.PushString(text)
	typ, tail := s.Close()
	return Result{
		Censored: head + tail,
		Analysis: typ,
		Matches:  s.matches,
	}
}

// Censor returns the censored text and its analysis.
func (c *Censor) Censor(text string) (string, Type) {
	r := c.Detect(text)
	return r.Censored, r.Analysis
}

// Analyze classifies text without keeping the censored output.
func (c *Censor) Analyze(text string) Type {
	return c.Detect(text).Analysis
}

// Check reports whether text contains anything at or above the censor
// threshold.
func (c *Censor) Check(text string) bool {
	return c.Analyze(text).Is(c.opts.CensorThreshold)
}

// Is reports whether the analysis of text meets threshold.
func (c *Censor) Is(text string, threshold Type) bool {
	return c.Analyze(text).Is(threshold)
}

// Isnt is the logical opposite of Is.
func (c *Censor) Isnt(text string, threshold Type) bool {
	return !c.Is(text, threshold)
}

// Words lists the dictionary words of the matches.
func (r Result) Words() []string {
	words := make([]string, 0, len(r.Matches))
	for _, m := range r.Matches {
		words = append(words, m.Entry.Word)
	}
	return words
}

func (r Result) String() string {
	return fmt.Sprintf("%q (%s)", r.Censored, r.Analysis)
}
