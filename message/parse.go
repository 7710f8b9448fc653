package message

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zostay/go-email-lite/message/header"
)

// Constants related to parse options.
const (
	// DefaultMaxLength is the default maximum number of bytes FromReader and
	// FromFile will read before giving up on a message. Defaults to 16M.
	DefaultMaxLength = 16 << 20
)

// Errors that occur during parsing.
var (
	// ErrMalformedMessage is returned when no blank line separating the header
	// from the body can be found. It is always wrapped in a *header.ParseError
	// with the header.StageSplit stage.
	ErrMalformedMessage = errors.New("missing header/body separator")

	// ErrMessageTooLarge is returned by FromReader and FromFile when the input
	// is longer than the configured WithMaxLength option (or the default,
	// DefaultMaxLength).
	ErrMessageTooLarge = errors.New("the message exceeds the maximum parse length")
)

type parser struct {
	maxLength     int
	lenient       bool
	preserveBreak bool
}

func (pr *parser) clone() *parser {
	p := *pr
	return &p
}

var defaultParser = &parser{
	maxLength: DefaultMaxLength,
}

// ParseOption refers to options that may be passed to the parsing constructors
// to modify how the parser works.
type ParseOption func(pr *parser)

// WithMaxLength is a ParseOption that sets the maximum number of bytes
// FromReader and FromFile will read. Larger input results in
// ErrMessageTooLarge. Setting this to a value less than or equal to 0 removes
// the limit. The default value is DefaultMaxLength.
func WithMaxLength(n int) ParseOption {
	return func(pr *parser) { pr.maxLength = n }
}

// WithLenientHeaders is a ParseOption that skips over header lines that cannot
// be parsed instead of failing. The problems are recorded and can be retrieved
// from the Defects() method of the message. Without this option, a single bad
// header line causes the whole parse to fail.
func WithLenientHeaders() ParseOption {
	return func(pr *parser) { pr.lenient = true }
}

// PreserveBreak is a ParseOption that causes the message to be written back out
// using the line break found at the header/body separator rather than
// header.DefaultBreak.
func PreserveBreak() ParseOption {
	return func(pr *parser) { pr.preserveBreak = true }
}

// Split locates the first blank line in raw and splits the message there. The
// head is everything before the line break ending the last header line. The
// body is everything following the blank line, exactly as given. The line
// break returned is the one used by the blank line.
//
// A blank line is either "\n" or "\r\n" found at the start of a line, so both
// Unix and network line endings work. A bare "\r" is not recognized as a line
// break.
//
// When raw begins with a blank line, the head is empty and the rest of raw is
// the body. If there is no blank line anywhere in raw, it returns a
// *header.ParseError wrapping ErrMalformedMessage.
func Split(raw string) (head, body string, lb header.Break, err error) {
	start, prevBreak := 0, 0
	for {
		rest := raw[start:]
		switch {
		case strings.HasPrefix(rest, header.LF.String()):
			return raw[:start-prevBreak], rest[len(header.LF):], header.LF, nil
		case strings.HasPrefix(rest, header.CRLF.String()):
			return raw[:start-prevBreak], rest[len(header.CRLF):], header.CRLF, nil
		}

		ix := strings.IndexByte(rest, '\n')
		if ix < 0 {
			return "", "", "", &header.ParseError{
				Stage:  header.StageSplit,
				Offset: len(raw),
				Err:    ErrMalformedMessage,
			}
		}

		prevBreak = 1
		if ix > 0 && rest[ix-1] == '\r' {
			prevBreak = 2
		}
		start += ix + 1
	}
}

// FromText parses a complete message. The message is split with Split, the
// header block is parsed with header.Parse and the body is stored as is.
//
// If parsing fails, it returns nil and the error. The error will be a
// *header.ParseError identifying the stage and location of the failure.
func FromText(raw string, opts ...ParseOption) (*Message, error) {
	pr := defaultParser.clone()
	for _, opt := range opts {
		opt(pr)
	}

	return pr.parse(raw)
}

func (pr *parser) parse(raw string) (*Message, error) {
	head, body, lb, err := Split(raw)
	if err != nil {
		return nil, err
	}

	var hopts []header.ParseOption
	if pr.lenient {
		hopts = append(hopts, header.SkipMalformed())
	}
	if pr.preserveBreak {
		hopts = append(hopts, header.WithBreak(lb))
	}

	h, err := header.Parse(head, hopts...)
	if err != nil {
		return nil, err
	}

	return &Message{Header: *h, Body: body}, nil
}

// FromBytes parses a complete message held in a slice of bytes. See FromText.
func FromBytes(raw []byte, opts ...ParseOption) (*Message, error) {
	return FromText(string(raw), opts...)
}

// FromReader reads the entire message from the given io.Reader and parses it.
// It will read no more than the WithMaxLength option (or DefaultMaxLength)
// allows and fails with ErrMessageTooLarge if there is more. See FromText.
func FromReader(r io.Reader, opts ...ParseOption) (*Message, error) {
	pr := defaultParser.clone()
	for _, opt := range opts {
		opt(pr)
	}

	if pr.maxLength > 0 {
		r = io.LimitReader(r, int64(pr.maxLength)+1)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read message: %w", err)
	}

	if pr.maxLength > 0 && len(raw) > pr.maxLength {
		return nil, ErrMessageTooLarge
	}

	return pr.parse(string(raw))
}

// FromFile opens the named file and parses the message it contains. See
// FromReader.
func FromFile(path string, opts ...ParseOption) (*Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open message file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return FromReader(f, opts...)
}
