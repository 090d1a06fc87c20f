package censor

// contains reports whether s, a suppressing word found within a single word,
// covers the flagged match m, as "assassin" covers both of its "ass"es.
func contains(s, m Match) bool {
	return s.Entry.Suppress &&
		s.Gaps == 0 &&
		s.Entry != m.Entry &&
		s.Start <= m.Start &&
		m.End <= s.End
}

// splitAcrossWords reports whether a match crossing word gaps is only an
// accident of where the words meet, as "shit" is in "push it".
//
// The match is kept when it spans whole words and reads like a word spelled
// out with gaps ("f u c k", "fu ck"), or when its gaps sit exactly where the
// dictionary phrase has them.
func splitAcrossWords(m Match, tokens func(int) Token, wordEnd bool) bool {
	if m.Gaps == 0 {
		return false
	}
	if !tokens(m.Start).wordStart() || !wordEnd {
		return true
	}
	if m.Breaks == m.Entry.Breaks {
		return false
	}

	var (
		letters int
		vowel   bool
	)
	for i := m.Start; i <= m.End; i++ {
		t := tokens(i)
		if i > m.Start && t.Space {
			if !wordLike(letters, vowel) {
				return false
			}
			letters, vowel = 0, false
		}
		letters++
		vowel = vowel || (!t.Wildcard && isVowel(t.Letter))
	}
	return wordLike(letters, vowel)
}

// wordLike is the test for a fragment that could stand on its own as a word.
func wordLike(letters int, vowel bool) bool {
	return letters >= 2 && vowel
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
