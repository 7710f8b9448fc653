package field

import (
	"errors"
	"strings"
)

var (
	// ErrUnexpectedEndOfInput is returned by Next when it is handed an empty
	// header block. There is no logical line to return and no rest to continue
	// with.
	ErrUnexpectedEndOfInput = errors.New("unexpected end of header input")

	// ErrOrphanContinuation is returned by Next when the header block begins
	// with a continuation line. There is no field before it to continue.
	ErrOrphanContinuation = errors.New("header starts with a continuation line")
)

// Line represents a single logical header field line with all of its
// continuation lines joined together and the line terminators removed.
type Line string

// Lines represents zero or more logical header field lines.
type Lines []Line

// String returns the line as a string.
func (l Line) String() string {
	return string(l)
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

// peek returns the byte at index i of s. The second return value is false when
// i is at or beyond the end of s, in which case there is nothing to peek at.
func peek(s string, i int) (byte, bool) {
	if i < 0 || i >= len(s) {
		return 0, false
	}
	return s[i], true
}

// Next extracts a single logical header line from the front of remaining and
// returns it along with the unconsumed rest of the header block. When rest is
// empty, the header block has been exhausted and Next should not be called
// again.
//
// Lines are terminated by "\n". A "\r" immediately preceding the "\n" is
// treated as part of the terminator, so "\r\n" and "\n" input both work. A
// bare "\r" is not a line terminator.
//
// Whenever the line following a terminator begins with a space or a tab, that
// line is a continuation. The terminator and the whole run of leading
// whitespace on the continuation line are replaced with a single space. Thus,
// this input:
//
//	Subject: This is a complex header which goes to
//	 2nd line
//
// results in the logical line:
//
//	Subject: This is a complex header which goes to 2nd line
//
// The scan only ever matches the ASCII bytes for CR, LF, space, and tab. Those
// bytes never occur inside a UTF-8 multibyte sequence, so non-ASCII field
// bodies pass through untouched.
//
// It returns ErrUnexpectedEndOfInput if remaining is empty. It returns
// ErrOrphanContinuation if remaining starts with a space or tab.
func Next(remaining string) (Line, string, error) {
	if remaining == "" {
		return "", "", ErrUnexpectedEndOfInput
	}

	if isSpace(remaining[0]) {
		return "", "", ErrOrphanContinuation
	}

	var line strings.Builder
	pos := 0
	for {
		ix := strings.IndexByte(remaining[pos:], '\n')
		if ix < 0 {
			// no more terminators: the rest of the buffer is the final line
			line.WriteString(strings.TrimSuffix(remaining[pos:], "\r"))
			return Line(line.String()), "", nil
		}

		end := pos + ix
		line.WriteString(strings.TrimSuffix(remaining[pos:end], "\r"))

		next := end + 1
		c, ok := peek(remaining, next)
		if !ok {
			// the terminator was the very last byte of the block
			return Line(line.String()), "", nil
		}

		if !isSpace(c) {
			return Line(line.String()), remaining[next:], nil
		}

		// continuation: collapse the fold to a single space
		for next < len(remaining) && isSpace(remaining[next]) {
			next++
		}
		line.WriteByte(' ')
		pos = next
	}
}

// ParseLines splits a complete header block into logical lines by calling
// Next until the block is exhausted. A header block containing no
// continuation lines yields exactly one Line per physical line, in order.
//
// An empty block results in an empty Lines and no error. If Next fails, the
// lines parsed so far are returned along with the error.
//
// ParseLines is a convenience for callers that only want the logical lines.
// header.Parse drives Next itself because it needs the offset of each line
// for error reporting and must be able to step past a bad line.
func ParseLines(block string) (Lines, error) {
	lines := make(Lines, 0, strings.Count(block, "\n")+1)
	for rest := block; rest != ""; {
		var (
			line Line
			err  error
		)

		line, rest, err = Next(rest)
		if err != nil {
			return lines, err
		}

		lines = append(lines, line)
	}

	return lines, nil
}
