// SPDX-FileCopyrightText:  Copyright 2024 Roland Csaszar
// SPDX-License-Identifier: MIT
//
// Project:  go-grapheme-buffer
// File:     line-extractor.go
// Date:     19.Mar.2024
//
// =============================================================================

package gapbuffer

// Lines returns up to `count` line [Subject]s of the buffer, starting with
// the line holding the grapheme with index `start` and walking line by line
// in the direction `dir`. A line's subject spans the line without its newline
// terminator, an empty line yields an empty subject.
//
// Only subjects accepted by `pred` are returned and counted, rejected lines
// are skipped. A nil predicate accepts every line. The walk ends when `count`
// subjects have been emitted or the line number leaves the buffer.
//
// `start` is clamped into [0, [GapBuffer.Length]]. The buffer is never
// mutated; the returned subjects own their text.
//
// Panics with [ErrInvalidArgument] if `count` is negative.
func Lines(g *GapBuffer, start GrpmIdx, dir Direction, count int, pred Predicate) []Subject {
	checkCount("Lines", count)

	if pred == nil {
		pred = AcceptAll
	}

	startIdx := min(max(int(start), 0), g.Length())
	line := int(g.LineNumAtPos(g.GrpmToCP(GrpmIdx(startIdx))))

	step := 1
	if dir == Back {
		step = -1
	}

	subjects := make([]Subject, 0, count)

	for len(subjects) < count && line >= 1 && line <= g.NumLines() {
		first, last := g.LineBounds(LineNumber(line))
		subject := Subject{
			Start: first,
			End:   last,
			Text:  g.Slice(first, last+1),
		}

		if pred(subject) {
			subjects = append(subjects, subject)
		}

		line += step
	}

	return subjects
}
