// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package textdiff

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func del(s string) Diff { return Diff{Type: Delete, Text: s} }
func ins(s string) Diff { return Diff{Type: Insert, Text: s} }
func eq(s string) Diff  { return Diff{Type: Equal, Text: s} }

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"abc", "xyz", 0},
		{"1234abcdef", "1234xyz", 4},
		{"1234", "1234xyz", 4},
		{"", "abc", 0},
		{"héllo", "hélp", 3},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, CommonPrefix(tt.a, tt.b))
		})
	}
}

func TestCommonSuffix(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"abc", "xyz", 0},
		{"abcdef1234", "xyz1234", 4},
		{"1234", "xyz1234", 4},
		{"abc", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, CommonSuffix(tt.a, tt.b))
		})
	}
}

func TestCommonOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"null", "", "abcd", 0},
		{"whole", "abc", "abcd", 3},
		{"none", "123456", "abcd", 0},
		{"tail", "123456xxx", "xxxabcd", 3},
		// The ligature is not decomposed.
		{"unicode", "fi", "ﬁi", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommonOverlap(tt.a, tt.b))
		})
	}
}

func TestHalfMatch(t *testing.T) {
	e := New(WithTimeout(time.Second))

	tests := []struct {
		name string
		a, b string
		want []string
	}{
		{"no match 1", "1234567890", "abcdef", nil},
		{"no match 2", "12345", "23", nil},
		{"single 1", "1234567890", "a345678z", []string{"12", "90", "a", "z", "345678"}},
		{"single 2", "a345678z", "1234567890", []string{"a", "z", "12", "90", "345678"}},
		{"single 3", "abc56789z", "1234567890", []string{"abc", "z", "1234", "0", "56789"}},
		{"single 4", "a23456xyz", "1234567890", []string{"a", "xyz", "1", "7890", "23456"}},
		{"multiple 1", "121231234123451234123121", "a1234123451234z",
			[]string{"12123", "123121", "a", "z", "1234123451234"}},
		{"multiple 2", "x-=-=-=-=-=-=-=-=-=-=-=-=", "xx-=-=-=-=-=-=-=",
			[]string{"", "-=-=-=-=-=", "x", "", "x-=-=-=-=-=-=-="}},
		{"multiple 3", "-=-=-=-=-=-=-=-=-=-=-=-=y", "-=-=-=-=-=-=-=yy",
			[]string{"-=-=-=-=-=", "", "", "y", "-=-=-=-=-=-=-=y"}},
		// Not the optimal diff, but the heuristic finds it.
		{"non-optimal", "qHilloHelloHew", "xHelloHeHulloy",
			[]string{"qHillo", "w", "x", "Hulloy", "HelloHe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.HalfMatch(tt.a, tt.b))
		})
	}

	t.Run("disabled without timeout", func(t *testing.T) {
		assert.Nil(t, New(WithTimeout(0)).HalfMatch("qHilloHelloHew", "xHelloHeHulloy"))
	})
}

func TestLinesToRunes(t *testing.T) {
	t.Run("shared lines", func(t *testing.T) {
		r1, r2, lines := LinesToRunes("alpha\nbeta\nalpha\n", "beta\nalpha\nbeta\n")
		assert.Equal(t, []rune{1, 2, 1}, r1)
		assert.Equal(t, []rune{2, 1, 2}, r2)
		assert.Equal(t, []string{"", "alpha\n", "beta\n"}, lines)
	})

	t.Run("empty and blank lines", func(t *testing.T) {
		r1, r2, lines := LinesToRunes("", "alpha\r\nbeta\r\n\r\n\r\n")
		assert.Empty(t, r1)
		assert.Equal(t, []rune{1, 2, 3, 3}, r2)
		assert.Equal(t, []string{"", "alpha\r\n", "beta\r\n", "\r\n"}, lines)
	})

	t.Run("no newlines", func(t *testing.T) {
		r1, r2, lines := LinesToRunes("a", "b")
		assert.Equal(t, []rune{1}, r1)
		assert.Equal(t, []rune{2}, r2)
		assert.Equal(t, []string{"", "a", "b"}, lines)
	})

	t.Run("more than 256 lines", func(t *testing.T) {
		var sb strings.Builder
		want := make([]rune, 0, 300)
		for i := 1; i <= 300; i++ {
			fmt.Fprintf(&sb, "%d\n", i)
			want = append(want, rune(i))
		}
		r1, r2, lines := LinesToRunes(sb.String(), "")
		assert.Equal(t, want, r1)
		assert.Empty(t, r2)
		assert.Len(t, lines, 301)
	})
}

func TestRunesToLines(t *testing.T) {
	lines := []string{"", "alpha\n", "beta\n"}
	got := RunesToLines([]Diff{eq("\x01\x02\x01"), ins("\x02\x01\x02")}, lines)
	assert.Equal(t, []Diff{eq("alpha\nbeta\nalpha\n"), ins("beta\nalpha\nbeta\n")}, got)
}

func TestLinesRoundTripPastSurrogates(t *testing.T) {
	// Enough distinct lines to push codes past the surrogate block.
	var sb strings.Builder
	for i := 0; i < 70000; i++ {
		fmt.Fprintf(&sb, "%d\n", i)
	}
	text := sb.String()

	_, r2, lines := LinesToRunes("", text)
	got := RunesToLines([]Diff{ins(string(r2))}, lines)

	require.Len(t, got, 1)
	assert.Equal(t, text, got[0].Text)
}

func TestBisect(t *testing.T) {
	e := New()

	assert.Equal(t,
		[]Diff{del("c"), ins("m"), eq("a"), del("t"), ins("p")},
		e.Bisect("cat", "map", time.Time{}))

	t.Run("deadline passed", func(t *testing.T) {
		assert.Equal(t,
			[]Diff{del("cat"), ins("map")},
			e.Bisect("cat", "map", time.Now().Add(-time.Minute)))
	})
}

func TestEngineMain(t *testing.T) {
	e := New(WithTimeout(0))

	tests := []struct {
		name string
		a, b string
		want []Diff
	}{
		{"null", "", "", nil},
		{"equality", "abc", "abc", []Diff{eq("abc")}},
		{"simple insertion", "abc", "ab123c", []Diff{eq("ab"), ins("123"), eq("c")}},
		{"simple deletion", "a123bc", "abc", []Diff{eq("a"), del("123"), eq("bc")}},
		{"two insertions", "abc", "a123b456c",
			[]Diff{eq("a"), ins("123"), eq("b"), ins("456"), eq("c")}},
		{"two deletions", "a123b456c", "abc",
			[]Diff{eq("a"), del("123"), eq("b"), del("456"), eq("c")}},
		{"single runes", "a", "b", []Diff{del("a"), ins("b")}},
		{"simple case", "Apples are a fruit.", "Bananas are also fruit.",
			[]Diff{del("Apple"), ins("Banana"), eq("s are a"), ins("lso"), eq(" fruit.")}},
		{"non-ascii", "ax\t", "ڀx\x00",
			[]Diff{del("a"), ins("ڀ"), eq("x"), del("\t"), ins("\x00")}},
		{"overlap 1", "1ayb2", "abxab",
			[]Diff{del("1"), eq("a"), del("y"), eq("b"), del("2"), ins("xab")}},
		{"overlap 2", "abcy", "xaxcxabc",
			[]Diff{ins("xaxcx"), eq("abc"), del("y")}},
		{"overlap 3", "ABCDa=bcd=efghijklmnopqrsEFGHIJKLMNOefg", "a-bcd-efghijklmnopqrs",
			[]Diff{del("ABCD"), eq("a"), del("="), ins("-"), eq("bcd"), del("="), ins("-"),
				eq("efghijklmnopqrs"), del("EFGHIJKLMNOefg")}},
		{"large equality", "a [[Pennsylvania]] and [[New", " and [[Pennsylvania]]",
			[]Diff{ins(" "), eq("a"), ins("nd"), eq(" [[Pennsylvania]]"), del(" and [[New")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Main(tt.a, tt.b)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMainTimeout(t *testing.T) {
	timeout := 100 * time.Millisecond
	e := New(WithTimeout(timeout))

	a := "`Twas brillig, and the slithy toves\nDid gyre and gimble in the wabe:\nAll mimsy were the borogoves,\nAnd the mome raths outgrabe.\n"
	b := "I am the very model of a modern major general,\nI've information vegetable, animal, and mineral,\nI know the kings of England, and I quote the fights historical,\nFrom Marathon to Waterloo, in order categorical.\n"
	for i := 0; i < 10; i++ {
		a += a
		b += b
	}

	start := time.Now()
	diffs := e.Main(a, b)
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 20*timeout, "took %s", elapsed)
	assert.Equal(t, a, Text1(diffs))
	assert.Equal(t, b, Text2(diffs))
}

func TestMainLineMode(t *testing.T) {
	chars := New(WithTimeout(0))
	lines := New(WithTimeout(0), WithLineMode(true))

	t.Run("simple", func(t *testing.T) {
		a := strings.Repeat("1234567890\n", 13)
		b := strings.Repeat("abcdefghij\n", 13)
		assert.Equal(t, chars.Main(a, b), lines.Main(a, b))
	})

	t.Run("single line", func(t *testing.T) {
		a := strings.Repeat("1234567890", 13)
		b := strings.Repeat("abcdefghij", 13)
		assert.Equal(t, chars.Main(a, b), lines.Main(a, b))
	})

	t.Run("overlap", func(t *testing.T) {
		a := strings.Repeat("1234567890\n", 13)
		b := "abcdefghij\n1234567890\n1234567890\n1234567890\nabcdefghij\n1234567890\n1234567890\n1234567890\nabcdefghij\n1234567890\n1234567890\n1234567890\nabcdefghij\n"
		got := lines.Main(a, b)
		assert.Equal(t, a, Text1(got))
		assert.Equal(t, b, Text2(got))
		assert.Equal(t, Text2(chars.Main(a, b)), Text2(got))
	})
}

func TestMainChecked(t *testing.T) {
	e := New()
	a, b := "abc", "ab123c"

	got, err := e.MainChecked(&a, &b)
	require.NoError(t, err)
	assert.Equal(t, e.Main(a, b), got)

	_, err = e.MainChecked(nil, &b)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = e.MainChecked(&a, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDiffReaders(t *testing.T) {
	e := New()

	got, err := e.DiffReaders(strings.NewReader("abc"), strings.NewReader("ab123c"))
	require.NoError(t, err)
	assert.Equal(t, []Diff{eq("ab"), ins("123"), eq("c")}, got)

	_, err = e.DiffReaders(nil, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = e.DiffReaders(strings.NewReader("x"), nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	boom := errors.New("boom")
	_, err = e.DiffReaders(strings.NewReader("x"), iotest.ErrReader(boom))
	assert.ErrorIs(t, err, boom)
}

func TestOptions(t *testing.T) {
	assert.Equal(t, DefaultOptions(), New().Options())

	e := New(WithTimeout(-time.Second), WithEditCost(0), WithLineMode(true))
	assert.Equal(t, Options{Timeout: 0, EditCost: 4, LineMode: true}, e.Options())

	e = New(WithOptions(Options{Timeout: time.Minute, EditCost: -1}))
	assert.Equal(t, Options{Timeout: time.Minute, EditCost: 4}, e.Options())
}

func TestOperationString(t *testing.T) {
	assert.Equal(t, "delete", Delete.String())
	assert.Equal(t, "equal", Equal.String())
	assert.Equal(t, "insert", Insert.String())
	assert.Equal(t, "Operation(7)", Operation(7).String())
	assert.Equal(t, `insert:"a\tb"`, ins("a\tb").String())
}

// randomTexts returns a generator of short texts over a tiny alphabet,
// which forces many short matches.
func randomTexts(seed int64, alphabet string) func() string {
	rng := rand.New(rand.NewSource(seed))
	runes := []rune(alphabet)
	return func() string {
		r := make([]rune, rng.Intn(60))
		for i := range r {
			r[i] = runes[rng.Intn(len(runes))]
		}
		return string(r)
	}
}

// TestMainRoundTrip diffs random texts and checks both texts can be rebuilt.
func TestMainRoundTrip(t *testing.T) {
	random := randomTexts(7, "ab\nçд")

	for _, e := range []*Engine{New(WithTimeout(0)), New(), New(WithLineMode(true))} {
		for i := 0; i < 200; i++ {
			a, b := random(), random()
			diffs := e.Main(a, b)
			require.Equal(t, a, Text1(diffs), "text1 for %q -> %q", a, b)
			require.Equal(t, b, Text2(diffs), "text2 for %q -> %q", a, b)
			for _, d := range diffs {
				require.NotEmpty(t, d.Text, "empty fragment for %q -> %q", a, b)
			}
		}
	}
}
