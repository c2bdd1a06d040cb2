// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package textdiff

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrDeltaFormat is wrapped by every *DeltaError.
var ErrDeltaFormat = errors.New("textdiff: malformed delta")

// DeltaReason classifies a delta decoding failure.
type DeltaReason int

const (
	// DeltaTooLong means the delta consumes more runes than the source has.
	DeltaTooLong DeltaReason = iota + 1
	// DeltaTooShort means the delta consumes fewer runes than the source has.
	DeltaTooShort
	// DeltaBadOperation means a token starts with something other than
	// '+', '-' or '='.
	DeltaBadOperation
	// DeltaBadNumber means a '-' or '=' token has a malformed or negative
	// count.
	DeltaBadNumber
	// DeltaBadEscape means a '+' token has a malformed escape sequence.
	DeltaBadEscape
)

func (r DeltaReason) String() string {
	switch r {
	case DeltaTooLong:
		return "delta longer than source text"
	case DeltaTooShort:
		return "delta shorter than source text"
	case DeltaBadOperation:
		return "invalid operation"
	case DeltaBadNumber:
		return "invalid number"
	case DeltaBadEscape:
		return "invalid escape"
	}
	return "unknown"
}

// DeltaError reports the token that could not be decoded.
type DeltaError struct {
	Token  string
	Reason DeltaReason
	// Consumed and Length are the rune counts consumed by the delta and held
	// by the source when the error was detected.
	Consumed int
	Length   int
	Err      error
}

func (e *DeltaError) Error() string {
	switch e.Reason {
	case DeltaTooLong, DeltaTooShort:
		return fmt.Sprintf("%s: %s (%d vs %d) at %q", ErrDeltaFormat, e.Reason, e.Consumed, e.Length, e.Token)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s in %q: %v", ErrDeltaFormat, e.Reason, e.Token, e.Err)
	}
	return fmt.Sprintf("%s: %s in %q", ErrDeltaFormat, e.Reason, e.Token)
}

func (e *DeltaError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrDeltaFormat, e.Err}
	}
	return []error{ErrDeltaFormat}
}

// ToDelta encodes a diff as a tab separated list of operations: "=n" keeps n
// runes of the source, "-n" drops n runes and "+text" inserts the
// percent-escaped text. Together with the source text the delta is enough to
// rebuild the diff.
func ToDelta(diffs []Diff) string {
	tokens := make([]string, 0, len(diffs))
	for _, d := range diffs {
		switch d.Type {
		case Insert:
			tokens = append(tokens, "+"+escapeDelta(d.Text))
		case Delete:
			tokens = append(tokens, "-"+strconv.Itoa(runeLen(d.Text)))
		case Equal:
			tokens = append(tokens, "="+strconv.Itoa(runeLen(d.Text)))
		}
	}
	return strings.Join(tokens, "\t")
}

// FromDelta rebuilds the diff described by delta against the source text1.
func FromDelta(text1, delta string) ([]Diff, error) {
	source := []rune(text1)
	var diffs []Diff
	pointer := 0
	last := ""

	for _, token := range strings.Split(delta, "\t") {
		if token == "" {
			// Blank tokens are fine, e.g. from a trailing tab.
			continue
		}
		last = token
		param := token[1:]

		switch token[0] {
		case '+':
			text, err := unescapeDelta(param)
			if err != nil {
				return nil, &DeltaError{Token: token, Reason: DeltaBadEscape, Err: err}
			}
			diffs = append(diffs, Diff{Type: Insert, Text: text})
		case '-', '=':
			n, err := strconv.Atoi(param)
			if err != nil {
				return nil, &DeltaError{Token: token, Reason: DeltaBadNumber, Err: err}
			}
			if n < 0 {
				return nil, &DeltaError{Token: token, Reason: DeltaBadNumber, Err: errors.New("negative count")}
			}
			if pointer+n > len(source) {
				return nil, &DeltaError{Token: token, Reason: DeltaTooLong, Consumed: pointer + n, Length: len(source)}
			}
			op := Equal
			if token[0] == '-' {
				op = Delete
			}
			diffs = append(diffs, Diff{Type: op, Text: string(source[pointer : pointer+n])})
			pointer += n
		default:
			return nil, &DeltaError{Token: token, Reason: DeltaBadOperation}
		}
	}

	if pointer != len(source) {
		return nil, &DeltaError{Token: last, Reason: DeltaTooShort, Consumed: pointer, Length: len(source)}
	}
	return diffs, nil
}

const hexDigits = "0123456789ABCDEF"

// deltaSafe reports whether b is written as is in an insertion. The set
// matches URI escaping with space and the reserved punctuation left literal.
func deltaSafe(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return true
	}
	return strings.IndexByte(" -_.!~*'();/?:@&=+$,#", b) >= 0
}

func escapeDelta(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		if deltaSafe(b) {
			sb.WriteByte(b)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hexDigits[b>>4])
		sb.WriteByte(hexDigits[b&0x0F])
	}
	return sb.String()
}

// unescapeDelta reverses escapeDelta. '+' stays a literal plus sign and the
// decoded bytes must be valid UTF-8.
func unescapeDelta(s string) (string, error) {
	if strings.IndexByte(s, '%') < 0 {
		return s, nil
	}
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			buf = append(buf, s[i])
			continue
		}
		if i+2 >= len(s) {
			return "", fmt.Errorf("truncated escape %q", s[i:])
		}
		hi, ok1 := unhex(s[i+1])
		lo, ok2 := unhex(s[i+2])
		if !ok1 || !ok2 {
			return "", fmt.Errorf("bad escape %q", s[i:i+3])
		}
		buf = append(buf, hi<<4|lo)
		i += 2
	}
	if !utf8.Valid(buf) {
		return "", errors.New("escape does not decode to UTF-8")
	}
	return string(buf), nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
