package field

import (
	"errors"
	"strings"
)

// ErrMalformedHeaderLine is returned by Parse when a logical header line has
// no colon separating the field name from the field body, or when the name
// before the colon is empty.
var ErrMalformedHeaderLine = errors.New("header line is missing a field name and colon")

// Parse breaks a single logical header line into a field name and a field
// body. The name is everything before the first colon with any trailing
// whitespace removed. The body is everything after the first colon with a
// single leading space or tab removed, matching the ": " written between name
// and body. Any other whitespace belongs to the body, which is returned
// verbatim.
//
// Splitting happens on the first colon, so a body such as "10:30:00" comes
// through intact.
func Parse(l Line) (name, body string, err error) {
	s := string(l)
	ix := strings.IndexByte(s, ':')
	if ix < 0 {
		return "", "", ErrMalformedHeaderLine
	}

	name = strings.TrimRight(s[:ix], " \t")
	if name == "" {
		return "", "", ErrMalformedHeaderLine
	}

	body = s[ix+1:]
	if body != "" && (body[0] == ' ' || body[0] == '\t') {
		body = body[1:]
	}
	return name, body, nil
}
