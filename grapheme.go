// SPDX-FileCopyrightText:  Copyright 2024 Roland Csaszar
// SPDX-License-Identifier: MIT
//
// Project:  go-grapheme-buffer
// File:     grapheme.go
// Date:     19.Mar.2024
//
// =============================================================================

package gapbuffer

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Grapheme cluster segmentation is delegated to github.com/rivo/uniseg. The
// helpers in this file adapt its string based API to the rune storage of the
// gap buffer. The gap always lies on a cluster boundary, so each side of the
// buffer can be segmented on its own.

// clusterCount returns the number of grapheme clusters in `runes`.
func clusterCount(runes []rune) int {
	return uniseg.GraphemeClusterCount(string(runes))
}

// containsCombined returns true if at least one grapheme in `runes` spans
// more than one code point.
func containsCombined(runes []rune) bool {
	return clusterCount(runes) < len(runes)
}

// strideClusters walks up to `n` grapheme clusters from the start of `runes`
// and returns the number of code points covered and the number of clusters
// actually walked, which is smaller than `n` only if `runes` ends first.
func strideClusters(runes []rune, n int) (codePoints int, clusters int) {
	rest := string(runes)
	state := -1

	var cluster string

	for clusters < n && rest != "" {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		codePoints += utf8.RuneCountInString(cluster)
		clusters++
	}

	return codePoints, clusters
}

// strideClustersBack walks up to `n` grapheme clusters from the end of
// `runes` and returns the number of code points covered and the number of
// clusters actually walked.
func strideClustersBack(runes []rune, n int) (codePoints int, clusters int) {
	starts := clusterStarts(runes)
	total := len(starts) - 1
	clusters = min(n, total)
	codePoints = len(runes) - starts[total-clusters]

	return codePoints, clusters
}

// clusterStarts returns the code point offsets of every grapheme cluster
// start in `runes`, with the length of `runes` appended as the final element.
// The result has one element more than there are clusters.
func clusterStarts(runes []rune) []int {
	starts := make([]int, 0, len(runes)+1)
	rest := string(runes)
	state := -1
	offset := 0

	var cluster string

	for rest != "" {
		starts = append(starts, offset)
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		offset += utf8.RuneCountInString(cluster)
	}

	return append(starts, offset)
}
