// SPDX-FileCopyrightText:  Copyright 2024 Roland Csaszar
// SPDX-License-Identifier: MIT
//
// Project:  go-grapheme-buffer
// File:     word-extractor.go
// Date:     19.Mar.2024
//
// =============================================================================

package gapbuffer

// WordSeparators is a set of code points that split the buffer's content into
// words. A grapheme is a separator if any of its code points is in the set.
//
// The set is supplied by the surrounding application's settings, the package
// default is [DefaultWordSeparators].
type WordSeparators map[rune]struct{}

// NewWordSeparators returns a separator set holding every code point of the
// given string.
func NewWordSeparators(runes string) WordSeparators {
	seps := make(WordSeparators, len(runes))

	for _, r := range runes {
		seps[r] = struct{}{}
	}

	return seps
}

// DefaultWordSeparators returns the default separator set: whitespace and the
// usual punctuation.
func DefaultWordSeparators() WordSeparators {
	return NewWordSeparators(" \t\n.,;:!?\"'()[]{}<>+-*/=|\\&@#$%^~`")
}

// IsSeparator returns true if the code point `r` is in the set.
func (s WordSeparators) IsSeparator(r rune) bool {
	_, ok := s[r]

	return ok
}

// containsAny returns true if any code point of the grapheme `grpm` is in the
// set.
func (s WordSeparators) containsAny(grpm []rune) bool {
	for _, r := range grpm {
		if s.IsSeparator(r) {
			return true
		}
	}

	return false
}

// Words returns up to `count` word [Subject]s of the buffer, walking grapheme
// by grapheme from the index `start` in the direction `dir`. A word is a
// maximal run of graphemes holding no separator code point; separators are
// boundaries only and are never part of a subject. A word still open when the
// walk reaches either end of the buffer is finalized there.
//
// Subjects always read in text order: `Start` is the lower grapheme index,
// `End` the higher, and the text is never reversed, independent of `dir`.
//
// Only subjects accepted by `pred` are returned and counted, rejected words
// are skipped. A nil predicate accepts every word, a nil separator set means
// [DefaultWordSeparators]. `start` is clamped into [0, [GapBuffer.Length]).
// The buffer is never mutated; the returned subjects own their text.
//
// Panics with [ErrInvalidArgument] if `count` is negative.
func Words(
	g *GapBuffer,
	start GrpmIdx,
	dir Direction,
	count int,
	seps WordSeparators,
	pred Predicate,
) []Subject {
	checkCount("Words", count)

	if pred == nil {
		pred = AcceptAll
	}

	if seps == nil {
		seps = DefaultWordSeparators()
	}

	total := g.Length()
	subjects := make([]Subject, 0, count)

	if total == 0 || count == 0 {
		return subjects
	}

	content := g.Runes()
	starts := g.contentClusterStarts(content)

	step := 1
	if dir == Back {
		step = -1
	}

	var word []rune

	mark := 0
	inWord := false

	emit := func(first, last int) {
		subject := Subject{Start: GrpmIdx(first), End: GrpmIdx(last), Text: word}
		if pred(subject) {
			subjects = append(subjects, subject)
		}

		word = nil
		inWord = false
	}

	idx := min(max(int(start), 0), total-1)

	for ; idx >= 0 && idx < total && len(subjects) < count; idx += step {
		grpm := content[starts[idx]:starts[idx+1]]

		if seps.containsAny(grpm) {
			if inWord {
				if dir == Front {
					emit(mark, idx-1)
				} else {
					emit(idx+1, mark)
				}
			}

			continue
		}

		if !inWord {
			inWord = true
			mark = idx
		}

		if dir == Front {
			word = append(word, grpm...)
		} else {
			// prepend, so the word reads in text order when walking back.
			word = append(append(make([]rune, 0, len(grpm)+len(word)), grpm...), word...)
		}
	}

	if inWord && len(subjects) < count {
		if dir == Front {
			emit(mark, total-1)
		} else {
			emit(0, mark)
		}
	}

	return subjects
}
