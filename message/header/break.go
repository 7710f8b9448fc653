package header

// Break represents the line break used to terminate each header field and the
// header itself.
type Break string

// Line breaks recognized when splitting a message. Output defaults to CRLF, as
// RFC 5322 requires on the wire.
const (
	CRLF Break = "\x0d\x0a" // \r\n - Network linebreak
	LF   Break = "\x0a"     // \n - Unix/Linux/BSD linebreak

	DefaultBreak = CRLF
)

// String returns the break as a string.
func (b Break) String() string {
	return string(b)
}

// Bytes returns the break as a slice of bytes.
func (b Break) Bytes() []byte {
	return []byte(b)
}
