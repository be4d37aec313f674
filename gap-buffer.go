// SPDX-FileCopyrightText:  Copyright 2024 Roland Csaszar
// SPDX-License-Identifier: MIT
//
// Project:  go-grapheme-buffer
// File:     gap-buffer.go
// Date:     19.Mar.2024
//
// =============================================================================

// This library implements a unicode aware gap buffer, which is a data
// structure to be used as the container of the text for a (simple or not so
// simple) text editor.
// A gap buffer is not ideal for using multiple cursors, as that would involve
// multiple jumps and copying of data in the gap buffer.
//
// The buffer stores one 32 bit unicode scalar per array element, so a code
// point index is an array index and no UTF-8 decoding happens on any hot
// path. All movement and deletion counts are in graphemes, the user visible
// characters: a grapheme with combining characters like "r̈" spans more than
// one code point but counts as one character.
//
// This gap buffer includes line movements (up and down a line from the
// current one) but it splits lines based on the newline character '\n'. So
// Windows-style CR LF (`\r\n`) line endings are not supported.
//
// A gap buffer is an array with a gap at the cursor position, where text is
// to be inserted and deleted.
//
// The string "Hello world!" with the cursor at the end of "Hello" -
// "Hello| world!" - looks like this in a gap buffer array:
//
//	Hello|< gap start, the cursor position            gap end >| world!
//
//	['H', 'e', 'l', 'l', 'o', 0, 0, 0, 0, 0, ' ', 'w', 'o', 'r', 'l', 'd', '!']
//	  0    1    2    3    4  |     gap     |  5    6    7    8    9    10   11
//
// Movement in the gap buffer works by moving the start and end of the gap,
// same with deletion of graphemes in both directions.
//
// Moving the cursor two graphemes to the left:
//
//	Hel|< gap start, the cursor position            gap end >|lo world!
//
//	['H', 'e', 'l', 0, 0, 0, 0, 0, 'l', 'o', ' ', 'w', 'o', 'r', 'l', 'd', '!']
//	  0    1    2   |     gap    |  3    4    5    6    7    8    9    10   11
//
// Insertion happens at the cursor position by appending at the start of the
// gap and moving the start of the gap accordingly. If the inserted text is not
// shorter than the gap, the buffer is reallocated with a fresh gap of the
// configured size.
package gapbuffer

import (
	"fmt"
	"strings"
)

// GapBuffer represents a unicode aware gap buffer.
type GapBuffer struct {
	// The index in the gap buffer `GapBuffer.data` of the start of the gap.
	// The position of the cursor.
	start int

	// The index in the gap buffer `GapBuffer.data` of the end of the gap.
	// The index of the first code point after the cursor.
	end int

	// The configured gap size. After every reallocation the gap is at least
	// this big again. Always greater than 1.
	gapSize int

	// The number of graphemes left of the gap. The cursor position minus one.
	beforeGrpm int

	// The number of graphemes right of the gap.
	afterGrpm int

	// True if the content holds at least one grapheme spanning more than one
	// code point. Deletions never clear this flag, it may stay conservatively
	// true until the next reallocation or recheck.
	hasCombined bool

	// If true, every grapheme aware path treats the content as if it had no
	// combining characters, trading display correctness for speed.
	forceFast bool

	// `wantsCol` is the grapheme column the cursor wants to hold when going
	// up or down a line.
	wantsCol int

	// The number of reallocations of the backing array so far.
	reallocs int

	// The number of reallocations that had to extend the gap back to the
	// configured size.
	gapGrowths int

	// The data of the gap buffer.
	data []rune
}

// The default gap size of a gap buffer in code points. If you know that you
// insert bigger chunks of text at once, a bigger gap saves reallocations.
const defaultGapSize = 1024

// Construct a new, empty GapBuffer with the default gap size.
//
// See also [NewGap], [NewStr], [NewStrGap].
func New() *GapBuffer {
	return NewStrGap("", defaultGapSize)
}

// Construct a new, empty GapBuffer with the given gap size in code points.
//
// Panics with [ErrInvalidConfiguration] if `size` is not greater than 1.
//
// See also [New], [NewStr], [NewStrGap].
func NewGap(size int) *GapBuffer {
	return NewStrGap("", size)
}

// Construct a new GapBuffer holding the given string, with the default gap
// size. The cursor is set to position 1, the start of the text.
//
// See also [New], [NewGap], [NewStrGap].
func NewStr(text string) *GapBuffer {
	return NewStrGap(text, defaultGapSize)
}

// Construct a new GapBuffer holding the given string, with the given gap size
// in code points. The buffer is laid out as `[gap | text]` and the cursor is
// set to position 1, the start of the text.
//
// Panics with [ErrInvalidConfiguration] if `size` is not greater than 1.
//
// See also [New], [NewGap], [NewStr].
func NewStrGap(text string, size int) *GapBuffer {
	checkGapSize(size)

	gapBuf := &GapBuffer{gapSize: size}
	gapBuf.layout([]rune(text), false)

	return gapBuf
}

// layout discards the backing array and rebuilds it from `text`: as
// `[text | gap]` with the cursor at the end if `cursorAtEnd` is true, as
// `[gap | text]` with the cursor at position 1 otherwise. Rescans the text
// for combining graphemes and refreshes both grapheme caches.
func (g *GapBuffer) layout(text []rune, cursorAtEnd bool) {
	g.data = make([]rune, len(text)+g.gapSize)

	if cursorAtEnd {
		copy(g.data, text)
		g.start = len(text)
		g.end = len(g.data)
	} else {
		copy(g.data[g.gapSize:], text)
		g.start = 0
		g.end = g.gapSize
	}

	g.recheck()
	g.wantsCol = g.Col()
}

// recheck rescans both sides of the buffer for combining graphemes and
// refreshes the grapheme count caches.
func (g *GapBuffer) recheck() {
	g.hasCombined = containsCombined(g.beforeRunes()) ||
		containsCombined(g.afterRunes())
	g.beforeGrpm = g.countGraphemes(g.beforeRunes())
	g.afterGrpm = g.countGraphemes(g.afterRunes())
}

// fast returns true if the grapheme aware paths may treat every code point as
// one grapheme.
func (g *GapBuffer) fast() bool {
	return g.forceFast || !g.hasCombined
}

// countGraphemes returns the number of graphemes in `runes` under the current
// unicode mode.
func (g *GapBuffer) countGraphemes(runes []rune) int {
	if g.fast() {
		return len(runes)
	}

	return clusterCount(runes)
}

// curGapSize returns the current size of the gap in code points.
func (g *GapBuffer) curGapSize() int {
	return g.end - g.start
}

// beforeRunes returns the content left of the gap as a borrowed slice.
func (g *GapBuffer) beforeRunes() []rune {
	return g.data[:g.start]
}

// afterRunes returns the content right of the gap as a borrowed slice.
func (g *GapBuffer) afterRunes() []rune {
	return g.data[g.end:]
}

// Return the contents of the gap buffer as a string.
func (g *GapBuffer) String() string {
	var b strings.Builder
	b.Grow(len(g.data) - g.curGapSize())
	b.WriteString(string(g.beforeRunes()))
	b.WriteString(string(g.afterRunes()))

	return b.String()
}

// Return the contents of the gap buffer as two strings. The part to the left
// of the cursor is returned in `left` and the part to the right of the cursor
// is returned in `right`.
func (g *GapBuffer) StringPair() (left string, right string) {
	return string(g.beforeRunes()), string(g.afterRunes())
}

// Return the contents of the gap buffer as a newly allocated code point
// slice.
//
// See also [GapBuffer.RunesPair] for the zero copy variant.
func (g *GapBuffer) Runes() []rune {
	out := make([]rune, 0, g.RuneLength())
	out = append(out, g.beforeRunes()...)
	out = append(out, g.afterRunes()...)

	return out
}

// Return the contents of the gap buffer as two borrowed code point slices,
// the part left of the cursor and the part right of the cursor.
//
// Both slices alias the backing array: they are invalidated by any mutation
// of the buffer and must not be held across one.
func (g *GapBuffer) RunesPair() (left []rune, right []rune) {
	return g.beforeRunes(), g.afterRunes()
}

// Return the length of the buffer's content in graphemes, the number of user
// visible characters. O(1).
//
// See also [GapBuffer.RuneLength].
func (g *GapBuffer) Length() int {
	return g.beforeGrpm + g.afterGrpm
}

// Return the length of the buffer's content in code points. O(1).
//
// See also [GapBuffer.Length].
func (g *GapBuffer) RuneLength() int {
	return len(g.data) - g.curGapSize()
}

// Return the current number of code points in the backing array, including
// the "empty" space in the gap.
func (g *GapBuffer) Size() int {
	return len(g.data)
}

// Return the cursor position as a 1-based grapheme position: the cursor sits
// directly before the grapheme with index CursorPos() - 1. O(1).
func (g *GapBuffer) CursorPos() GrpmIdx {
	return GrpmIdx(g.beforeGrpm + 1)
}

// Set the cursor to the given 1-based grapheme position. The position is
// clamped to [1, [GapBuffer.Length] + 1], so any value is safe.
//
// Returns the new cursor position.
func (g *GapBuffer) SetCursorPos(pos GrpmIdx) GrpmIdx {
	target := min(max(int(pos), 1), g.Length()+1)
	cur := g.beforeGrpm + 1

	switch {
	case target > cur:
		g.RightMv(target - cur)
	case target < cur:
		g.LeftMv(cur - target)
	}

	return g.CursorPos()
}

// Move the cursor up to `n` graphemes to the right, clamped at the end of the
// buffer.
//
// Panics with [ErrInvalidArgument] if `n` is negative.
//
// Returns the new cursor position.
//
// See also [GapBuffer.LeftMv], [GapBuffer.LeftDel], [GapBuffer.RightDel],
// [GapBuffer.UpMv], [GapBuffer.DownMv]
func (g *GapBuffer) RightMv(n int) GrpmIdx {
	checkCount("RightMv", n)

	cp, grpm := g.strideAfter(n)
	if cp > 0 {
		// dst starts before src in the same array, copy is memmove-like and
		// handles the overlap.
		copy(g.data[g.start:g.start+cp], g.data[g.end:g.end+cp])
		g.start += cp
		g.end += cp
		g.beforeGrpm += grpm
		g.afterGrpm -= grpm
	}

	g.wantsCol = g.Col()

	return g.CursorPos()
}

// Move the cursor up to `n` graphemes to the left, clamped at the start of
// the buffer.
//
// Panics with [ErrInvalidArgument] if `n` is negative.
//
// Returns the new cursor position.
//
// See also [GapBuffer.RightMv], [GapBuffer.LeftDel], [GapBuffer.RightDel],
// [GapBuffer.UpMv], [GapBuffer.DownMv]
func (g *GapBuffer) LeftMv(n int) GrpmIdx {
	checkCount("LeftMv", n)

	cp, grpm := g.strideBefore(n)
	if cp > 0 {
		copy(g.data[g.end-cp:g.end], g.data[g.start-cp:g.start])
		g.start -= cp
		g.end -= cp
		g.beforeGrpm -= grpm
		g.afterGrpm += grpm
	}

	g.wantsCol = g.Col()

	return g.CursorPos()
}

// strideAfter returns the number of code points and graphemes covered by up
// to `n` graphemes right of the gap.
func (g *GapBuffer) strideAfter(n int) (codePoints int, graphemes int) {
	if g.fast() {
		d := min(n, len(g.afterRunes()))

		return d, d
	}

	return strideClusters(g.afterRunes(), n)
}

// strideBefore returns the number of code points and graphemes covered by up
// to `n` graphemes left of the gap.
func (g *GapBuffer) strideBefore(n int) (codePoints int, graphemes int) {
	if g.fast() {
		d := min(n, len(g.beforeRunes()))

		return d, d
	}

	return strideClustersBack(g.beforeRunes(), n)
}

// Delete up to `n` graphemes to the left of the cursor, clamped at the start
// of the buffer. Like holding the "backspace" key. Only the gap is widened,
// no data is moved or rescanned: a deleted combining grapheme may leave
// [GapBuffer.HasCombinedGraphemes] conservatively true until the next
// reallocation or recheck.
//
// Panics with [ErrInvalidArgument] if `n` is negative.
//
// Returns the new cursor position.
//
// See also [GapBuffer.RightDel], [GapBuffer.LeftMv], [GapBuffer.RightMv]
func (g *GapBuffer) LeftDel(n int) GrpmIdx {
	checkCount("LeftDel", n)

	cp, grpm := g.strideBefore(n)
	g.start -= cp
	g.beforeGrpm -= grpm
	g.wantsCol = g.Col()

	return g.CursorPos()
}

// Delete up to `n` graphemes to the right of the cursor, clamped at the end
// of the buffer. Like holding the "delete" key. Only the gap is widened, no
// data is moved or rescanned.
//
// Panics with [ErrInvalidArgument] if `n` is negative.
//
// Returns the new cursor position.
//
// See also [GapBuffer.LeftDel], [GapBuffer.LeftMv], [GapBuffer.RightMv]
func (g *GapBuffer) RightDel(n int) GrpmIdx {
	checkCount("RightDel", n)

	cp, grpm := g.strideAfter(n)
	g.end += cp
	g.afterGrpm -= grpm

	return g.CursorPos()
}

// Insert inserts the given string at the current cursor position. The string
// can be a single code point or text of arbitrary size and anything in
// between (like a single grapheme).
//
// If the text is shorter than the current gap it is copied there directly,
// otherwise (a text as long as the gap included) the buffer is reallocated
// with the text spliced in before a fresh gap.
//
// Returns the new cursor position, the end of the inserted text.
func (g *GapBuffer) Insert(text string) GrpmIdx {
	return g.InsertRunes([]rune(text))
}

// InsertRunes inserts the given code points at the current cursor position,
// like [GapBuffer.Insert] without the string conversion.
//
// Returns the new cursor position, the end of the inserted text.
func (g *GapBuffer) InsertRunes(runes []rune) GrpmIdx {
	if len(runes) == 0 {
		return g.CursorPos()
	}

	if len(runes) < g.curGapSize() {
		copy(g.data[g.start:], runes)
		g.start += len(runes)

		if !g.hasCombined && containsCombined(runes) {
			g.hasCombined = true
		}

		g.beforeGrpm += g.countGraphemes(runes)
	} else {
		g.reallocate(runes)
	}

	g.wantsCol = g.Col()

	return g.CursorPos()
}

// Reallocate rebuilds the backing array so that the gap is at least the
// configured gap size big again. Content and cursor position are unchanged.
// The content is rescanned for combining graphemes, so a conservatively set
// combining flag heals here.
//
// Returns the cursor position.
func (g *GapBuffer) Reallocate() GrpmIdx {
	g.reallocate(nil)

	return g.CursorPos()
}

// reallocate rebuilds the backing array, splicing `toAdd` in directly before
// the gap. If the gap shrank below the configured size, it is extended back
// to it with a filler of empty elements.
func (g *GapBuffer) reallocate(toAdd []rune) {
	oldAfter := len(g.data) - g.end
	fill := 0

	if g.curGapSize() < g.gapSize {
		fill = g.gapSize - g.curGapSize()
		g.gapGrowths++
	}

	tmp := make([]rune, len(g.data)+len(toAdd)+fill)
	copy(tmp, g.data[:g.start])
	copy(tmp[g.start:], toAdd)
	copy(tmp[len(tmp)-oldAfter:], g.data[g.end:])

	g.data = tmp
	g.start += len(toAdd)
	g.end = len(tmp) - oldAfter
	g.reallocs++

	g.recheck()
}

// Clear discards the whole content and reinitializes the buffer with the
// given text. If `cursorAtEnd` is true the buffer is laid out as
// `[text | gap]` with the cursor at the end of the text, otherwise as
// `[gap | text]` with the cursor at position 1.
//
// The reallocation counters are not reset, they are monotone for the
// lifetime of the buffer.
//
// Returns the new cursor position.
func (g *GapBuffer) Clear(text string, cursorAtEnd bool) GrpmIdx {
	g.layout([]rune(text), cursorAtEnd)

	return g.CursorPos()
}

// Save returns an independently owned deep copy of the gap buffer, suitable
// for snapshotting. The copy shares no state with the original.
func (g *GapBuffer) Save() *GapBuffer {
	clone := *g
	clone.data = make([]rune, len(g.data))
	copy(clone.data, g.data)

	return &clone
}

// GapSize returns the configured gap size in code points.
func (g *GapBuffer) GapSize() int {
	return g.gapSize
}

// SetGapSize sets the configured gap size in code points and reallocates the
// buffer so the new size is in effect.
//
// Panics with [ErrInvalidConfiguration] if `size` is not greater than 1.
//
// Returns the cursor position.
func (g *GapBuffer) SetGapSize(size int) GrpmIdx {
	checkGapSize(size)

	g.gapSize = size

	return g.Reallocate()
}

// ForceFastMode returns true if the buffer is forced to treat every code
// point as one grapheme.
func (g *GapBuffer) ForceFastMode() bool {
	return g.forceFast
}

// SetForceFastMode switches forced fast mode on or off. While forced, all
// grapheme aware paths behave as if the content had no combining characters,
// which miscounts combined graphemes - a trade the caller accepts. Switching
// it off rescans the content and restores exact grapheme counts.
func (g *GapBuffer) SetForceFastMode(force bool) {
	g.forceFast = force

	if force {
		// in forced mode the caches hold code point counts.
		g.beforeGrpm = len(g.beforeRunes())
		g.afterGrpm = len(g.afterRunes())
	} else {
		g.recheck()
	}

	g.wantsCol = g.Col()
}

// HasCombinedGraphemes returns true if the content holds at least one
// grapheme spanning more than one code point. After a deletion this may be
// conservatively true even if the last such grapheme was removed, it heals
// at the next reallocation or [GapBuffer.SetForceFastMode](false).
func (g *GapBuffer) HasCombinedGraphemes() bool {
	return g.hasCombined
}

// ReallocCount returns the number of reallocations of the backing array so
// far. Monotone.
func (g *GapBuffer) ReallocCount() int {
	return g.reallocs
}

// GapExtensionCount returns the number of reallocations that had to extend
// the gap back to the configured size. Monotone.
func (g *GapBuffer) GapExtensionCount() int {
	return g.gapGrowths
}

// DebugContent returns a human readable dump of the buffer's state: both
// content sides around the gap and the bookkeeping values. A development
// aid, the format is not stable.
func (g *GapBuffer) DebugContent() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%q <gap %d> %q\n",
		string(g.beforeRunes()), g.curGapSize(), string(g.afterRunes()))
	fmt.Fprintf(&b, "graphemes: %d+%d cursor: %d line: %d col: %d wants: %d\n",
		g.beforeGrpm, g.afterGrpm, g.CursorPos(), g.Line(), g.Col(), g.wantsCol)
	fmt.Fprintf(&b, "combined: %v forced fast: %v reallocs: %d gap extensions: %d\n",
		g.hasCombined, g.forceFast, g.reallocs, g.gapGrowths)

	return b.String()
}
