// SPDX-FileCopyrightText:  Copyright 2024 Roland Csaszar
// SPDX-License-Identifier: MIT
//
// Project:  go-grapheme-buffer
// File:     position.go
// Date:     19.Mar.2024
//
// =============================================================================

package gapbuffer

// Three integer spaces are used by the gap buffer and they must not be mixed:
// raw indices into the backing array including the gap ([BufIdx]), logical
// code point indices with the gap removed ([CPIdx]) and grapheme indices
// ([GrpmIdx]). As the buffer stores one 32 bit unicode scalar per element, a
// code point index is also a code unit index.

// GrpmIdx is a grapheme index, the position of a user visible character.
//
// Grapheme indices used with [GapBuffer.At] and [GapBuffer.Slice] start at 0,
// cursor positions like the return value of [GapBuffer.CursorPos] start at 1.
// A cursor position `p` is the position directly before the grapheme with
// index `p - 1`.
type GrpmIdx int

// CPIdx is a logical code point index into the buffer's content, as if the
// gap did not exist.
type CPIdx int

// BufIdx is a raw index into the backing array of the gap buffer, including
// the gap.
type BufIdx int

// LineNumber is the number of a line in the buffer's content, starting at 1.
type LineNumber int

// Direction is the direction of travel of the line and word extractors.
type Direction int

const (
	// Front walks towards the end of the buffer.
	Front Direction = iota

	// Back walks towards the start of the buffer.
	Back
)

// ContentIdxToBufferIdx converts the logical code point index `idx` to the
// raw index of that code point in the backing array: indices right of the gap
// are shifted by the current gap size.
//
// Panics with [ErrOutOfBounds] if `idx` is outside of the content.
func (g *GapBuffer) ContentIdxToBufferIdx(idx CPIdx) BufIdx {
	if idx < 0 || int(idx) >= g.RuneLength() {
		outOfBounds("ContentIdxToBufferIdx", int(idx), g.RuneLength())
	}

	if int(idx) < g.start {
		return BufIdx(idx)
	}

	return BufIdx(int(idx) + g.curGapSize())
}

// GrpmToCP converts the grapheme index `idx` to the logical code point index
// of the first code point of that grapheme. `idx` may be the grapheme length
// of the buffer, the returned index is the code point length then.
//
// Panics with [ErrOutOfBounds] if `idx` is outside of [0, [GapBuffer.Length]].
func (g *GapBuffer) GrpmToCP(idx GrpmIdx) CPIdx {
	if idx < 0 || int(idx) > g.Length() {
		outOfBounds("GrpmToCP", int(idx), g.Length()+1)
	}

	if g.fast() {
		return CPIdx(idx)
	}

	if int(idx) <= g.beforeGrpm {
		cp, _ := strideClusters(g.beforeRunes(), int(idx))

		return CPIdx(cp)
	}

	cp, _ := strideClusters(g.afterRunes(), int(idx)-g.beforeGrpm)

	return CPIdx(g.start + cp)
}

// cpToGrpm converts the logical code point index `idx` to the index of the
// grapheme it belongs to. `idx` must lie on a grapheme boundary or be the code
// point length of the content.
func (g *GapBuffer) cpToGrpm(idx CPIdx) GrpmIdx {
	if g.fast() {
		return GrpmIdx(idx)
	}

	if int(idx) <= g.start {
		return GrpmIdx(clusterCount(g.beforeRunes()[:idx]))
	}

	after := g.afterRunes()[:int(idx)-g.start]

	return GrpmIdx(g.beforeGrpm + clusterCount(after))
}

// At returns the grapheme with index `idx` as a newly allocated slice of its
// code points. Most graphemes are a single code point, graphemes with
// combining characters span more than one.
//
// Panics with [ErrOutOfBounds] if `idx` is outside of [0, [GapBuffer.Length]).
func (g *GapBuffer) At(idx GrpmIdx) []rune {
	if idx < 0 || int(idx) >= g.Length() {
		outOfBounds("At", int(idx), g.Length())
	}

	if g.fast() {
		bufIdx := g.ContentIdxToBufferIdx(CPIdx(idx))

		return []rune{g.data[bufIdx]}
	}

	side := g.beforeRunes()
	i := int(idx)

	if i >= g.beforeGrpm {
		side = g.afterRunes()
		i -= g.beforeGrpm
	}

	skip, _ := strideClusters(side, i)
	width, _ := strideClusters(side[skip:], 1)
	grpm := make([]rune, width)
	copy(grpm, side[skip:skip+width])

	return grpm
}

// Slice returns the code points of the graphemes with indices in [from, to)
// as a newly allocated slice.
//
// Panics with [ErrOutOfBounds] unless 0 <= from <= to <= [GapBuffer.Length].
func (g *GapBuffer) Slice(from, to GrpmIdx) []rune {
	if from < 0 || from > to {
		outOfBounds("Slice", int(from), int(to)+1)
	}

	if int(to) > g.Length() {
		outOfBounds("Slice", int(to), g.Length()+1)
	}

	return g.logicalRange(g.GrpmToCP(from), g.GrpmToCP(to))
}

// logicalRange returns a newly allocated copy of the content's code points in
// [from, to), stitching the range together if it spans the gap.
func (g *GapBuffer) logicalRange(from, to CPIdx) []rune {
	out := make([]rune, 0, int(to-from))
	before := g.beforeRunes()

	if int(from) < len(before) {
		hi := min(int(to), len(before))
		out = append(out, before[from:hi]...)
	}

	if int(to) > len(before) {
		lo := max(int(from)-len(before), 0)
		out = append(out, g.afterRunes()[lo:int(to)-len(before)]...)
	}

	return out
}

// Graphemes returns a channel that yields every grapheme of the buffer's
// content starting at the grapheme index `from`, each as a newly allocated
// code point slice. The channel is closed after the last grapheme.
//
// The channel iterates over a snapshot of the content, mutations of the
// buffer do not influence a running iteration.
func (g *GapBuffer) Graphemes(from GrpmIdx) <-chan []rune {
	content := g.Runes()
	starts := g.contentClusterStarts(content)
	ch := make(chan []rune)

	go func() {
		defer close(ch)

		if from < 0 || int(from) >= len(starts)-1 {
			return
		}

		for i := int(from); i < len(starts)-1; i++ {
			grpm := make([]rune, starts[i+1]-starts[i])
			copy(grpm, content[starts[i]:starts[i+1]])
			ch <- grpm
		}
	}()

	return ch
}

// contentClusterStarts returns the cluster start offsets of `content`. On the
// fast path every code point is its own grapheme.
func (g *GapBuffer) contentClusterStarts(content []rune) []int {
	if !g.fast() {
		return clusterStarts(content)
	}

	starts := make([]int, len(content)+1)
	for i := range starts {
		starts[i] = i
	}

	return starts
}
