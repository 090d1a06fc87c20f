package censor

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Word is a flagged dictionary word with its weight (0-3) per category.
type Word struct {
	Text      string `json:"word"`
	Profane   int    `json:"profane"`
	Offensive int    `json:"offensive"`
	Sexual    int    `json:"sexual"`
	Mean      int    `json:"mean"`
	Evasive   int    `json:"evasive"`
}

// Type converts the weights of w.
func (w Word) Type() Type {
	return FromWeights([weightCount]int{w.Profane, w.Offensive, w.Sexual, w.Mean, w.Evasive})
}

func (w Word) validate() error {
	for _, v := range [...]int{w.Profane, w.Offensive, w.Sexual, w.Mean, w.Evasive} {
		if v < 0 || v > severeWeight {
			return fmt.Errorf("word %q has weight %d outside 0..%d", w.Text, v, severeWeight)
		}
	}
	if w.Type() == NONE {
		return fmt.Errorf("word %q has no weights", w.Text)
	}
	return nil
}

// Dictionary is the JSON form of a word list.
type Dictionary struct {
	Profanity []Word `json:"profanity"`
	// Safe phrases mark the whole input SAFE and cancel words inside them.
	Safe []string `json:"safe"`
	// FalsePositives only cancel words inside them, e.g. "assassin".
	FalsePositives []string `json:"false_positives"`
}

// Tree builds the dictionary into an immutable tree.
func (d *Dictionary) Tree() (*Tree, error) {
	b := NewBuilder()
	for _, w := range d.Profanity {
		if err := w.validate(); err != nil {
			return nil, err
		}
		b.Add(w.Text, w.Type(), false)
	}
	for _, s := range d.Safe {
		b.Add(s, SAFE, true)
	}
	for _, s := range d.FalsePositives {
		b.Add(s, NONE, true)
	}
	return b.Build()
}

// Parse builds a tree from a JSON dictionary.
func Parse(data []byte) (*Tree, error) {
	var d Dictionary
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary: %w", err)
	}
	return d.Tree()
}

// LoadFromJSON reads and builds a dictionary file.
func LoadFromJSON(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary %s: %w", path, err)
	}
	log.Debugf("[censor] loaded %d words from %s", t.Len(), path)
	return t, nil
}

//go:embed data/words.json
var defaultWords []byte

var (
	defaultOnce sync.Once
	defaultTree *Tree
)

// Default returns the compiled-in dictionary, building it on first use.
// It panics if the embedded data is corrupt.
func Default() *Tree {
	defaultOnce.Do(func() {
		t, err := Parse(defaultWords)
		if err != nil {
			panic(fmt.Sprintf("censor: embedded dictionary: %v", err))
		}
		defaultTree = t
	})
	return defaultTree
}
