// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package textdiff

// HalfMatch looks for a substring shared by both texts that is at least half
// the length of the longer one. It returns the prefix of text1, the suffix of
// text1, the prefix of text2, the suffix of text2 and the common middle, or
// nil when there is no such substring. The speedup can produce non-minimal
// diffs, so it is disabled when the engine has no timeout.
func (e *Engine) HalfMatch(text1, text2 string) []string {
	hm := e.halfMatch([]rune(text1), []rune(text2))
	if hm == nil {
		return nil
	}
	out := make([]string, len(hm))
	for i, r := range hm {
		out[i] = string(r)
	}
	return out
}

func (e *Engine) halfMatch(text1, text2 []rune) [][]rune {
	if e.opts.Timeout <= 0 {
		return nil
	}

	long, short := text1, text2
	if len(text1) <= len(text2) {
		long, short = text2, text1
	}
	if len(long) < 4 || len(short)*2 < len(long) {
		return nil
	}

	// Seed from the second and third quarters of the longer text.
	hm1 := halfMatchAt(long, short, (len(long)+3)/4)
	hm2 := halfMatchAt(long, short, (len(long)+1)/2)

	var hm [][]rune
	switch {
	case hm1 == nil && hm2 == nil:
		return nil
	case hm2 == nil:
		hm = hm1
	case hm1 == nil:
		hm = hm2
	case len(hm1[4]) > len(hm2[4]):
		hm = hm1
	default:
		hm = hm2
	}

	if len(text1) > len(text2) {
		return hm
	}
	return [][]rune{hm[2], hm[3], hm[0], hm[1], hm[4]}
}

// halfMatchAt uses the quarter-length slice of long starting at i as a seed
// and extends every occurrence of it in short as far as possible in both
// directions. The result is ordered long prefix, long suffix, short prefix,
// short suffix, common middle.
func halfMatchAt(long, short []rune, i int) [][]rune {
	seed := long[i : i+len(long)/4]

	var best [][]rune
	bestLen := 0
	for j := indexRunes(short, seed, 0); j != -1; j = indexRunes(short, seed, j+1) {
		prefix := commonPrefix(long[i:], short[j:])
		suffix := commonSuffix(long[:i], short[:j])
		if bestLen < prefix+suffix {
			bestLen = prefix + suffix
			best = [][]rune{
				long[:i-suffix],
				long[i+prefix:],
				short[:j-suffix],
				short[j+prefix:],
				short[j-suffix : j+prefix],
			}
		}
	}
	if bestLen*2 >= len(long) {
		return best
	}
	return nil
}
