// SPDX-FileCopyrightText:  Copyright 2024 Roland Csaszar
// SPDX-License-Identifier: MIT
//
// Project:  go-grapheme-buffer
// File:     main.go
// Date:     19.Mar.2024
//
// =============================================================================

// An interactive single line editor on top of the gap buffer: type to
// insert, arrows move the cursor by graphemes, backspace and delete remove
// graphemes, ctrl-w removes the word left of the cursor using the word
// extractor. Enter, escape or ctrl-c quit and print the extracted words.
package main

import (
	"fmt"

	"atomicgo.dev/cursor"
	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"

	gap "github.com/Release-Candidate/go-grapheme-buffer"
)

func main() {
	gapBuffer := gap.NewStr("Hello, World!")
	gapBuffer.SetCursorPos(gap.GrpmIdx(gapBuffer.Length() + 1))
	seps := gap.DefaultWordSeparators()

	fmt.Println("Type to edit. Arrows move, ctrl-w deletes the word to the left,")
	fmt.Println("enter, escape or ctrl-c quits.")

	cursor.Hide()
	defer cursor.Show()

	redraw(gapBuffer)

	_ = keyboard.Listen(func(key keys.Key) (bool, error) {
		switch key.Code {
		case keys.CtrlC, keys.Escape, keys.Enter:
			return true, nil
		case keys.Left:
			gapBuffer.LeftMv(1)
		case keys.Right:
			gapBuffer.RightMv(1)
		case keys.Home:
			gapBuffer.SetCursorPos(1)
		case keys.End:
			gapBuffer.SetCursorPos(gap.GrpmIdx(gapBuffer.Length() + 1))
		case keys.Backspace:
			gapBuffer.LeftDel(1)
		case keys.Delete:
			gapBuffer.RightDel(1)
		case keys.CtrlW:
			deleteWordLeft(gapBuffer, seps)
		case keys.Space:
			gapBuffer.Insert(" ")
		case keys.RuneKey:
			gapBuffer.Insert(string(key.Runes))
		}

		redraw(gapBuffer)

		return false, nil
	})

	fmt.Println()
	fmt.Println("Words in the buffer:")

	for _, word := range gap.Words(
		gapBuffer, 0, gap.Front, gapBuffer.Length(), seps, nil,
	) {
		fmt.Printf("  [%d, %d] %q\n", word.Start, word.End, word.String())
	}
}

// redraw repaints the edited line in place and puts the terminal cursor at
// the buffer's cursor position.
func redraw(gapBuffer *gap.GapBuffer) {
	cursor.StartOfLine()
	cursor.ClearLine()
	fmt.Print("> ", gapBuffer.String())
	cursor.HorizontalAbsolute(2 + int(gapBuffer.CursorPos()))
}

// deleteWordLeft deletes from the cursor back to the start of the word left
// of the cursor, separators in between included.
func deleteWordLeft(gapBuffer *gap.GapBuffer, seps gap.WordSeparators) {
	cursorIdx := int(gapBuffer.CursorPos()) - 1
	if cursorIdx == 0 {
		return
	}

	words := gap.Words(
		gapBuffer, gap.GrpmIdx(cursorIdx-1), gap.Back, 1, seps, nil,
	)
	if len(words) == 0 {
		gapBuffer.LeftDel(cursorIdx)

		return
	}

	gapBuffer.LeftDel(cursorIdx - int(words[0].Start))
}
