package header

import (
	"fmt"
	"strings"

	"github.com/zostay/go-email-lite/message/header/field"
)

// Stage identifies the part of the parser that failed.
type Stage int

// The stages of parsing a message.
const (
	StageSplit    Stage = iota + 1 // separating the header from the body
	StageFold                      // breaking the header into logical lines
	StageClassify                  // turning a field body into a typed Value
)

// String returns the name of the stage.
func (s Stage) String() string {
	switch s {
	case StageSplit:
		return "splitting"
	case StageFold:
		return "folding"
	case StageClassify:
		return "classifying"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// ParseError describes a parse failure. It identifies the stage that failed and
// where in the input the failure was found. The underlying cause is available
// through errors.Is and errors.As.
type ParseError struct {
	Stage  Stage  // which stage of the parse failed
	Offset int    // byte offset of the offending line in the input
	Line   int    // physical line number of the offending line, 1-based
	Text   string // the offending logical line, if there is one
	Err    error  // the cause
}

// Error returns the error message.
func (err *ParseError) Error() string {
	if err.Line > 0 {
		return fmt.Sprintf("%s failed at line %d (offset %d): %v",
			err.Stage, err.Line, err.Offset, err.Err)
	}
	return fmt.Sprintf("%s failed: %v", err.Stage, err.Err)
}

// Unwrap returns the cause.
func (err *ParseError) Unwrap() error {
	return err.Err
}

// newParseError builds a ParseError for the line starting at offset in block.
func newParseError(stage Stage, block string, offset int, text string, err error) *ParseError {
	return &ParseError{
		Stage:  stage,
		Offset: offset,
		Line:   strings.Count(block[:offset], "\n") + 1,
		Text:   text,
		Err:    err,
	}
}

type parser struct {
	skipMalformed bool
	lbr           Break
}

// ParseOption refers to options that may be passed to the Parse function to
// modify how the parser works.
type ParseOption func(pr *parser)

// SkipMalformed is a ParseOption that causes Parse to skip over lines that
// cannot be parsed rather than failing. Each skipped line is recorded as a
// *ParseError, which is available from the Defects() method of the returned
// Header.
func SkipMalformed() ParseOption {
	return func(pr *parser) { pr.skipMalformed = true }
}

// WithBreak is a ParseOption that sets the line break the returned Header will
// use when it is written out. The default is DefaultBreak.
func WithBreak(lbr Break) ParseOption {
	return func(pr *parser) { pr.lbr = lbr }
}

// Parse parses a header block into a Header. The block must contain only the
// header, without the blank line that separates it from the body.
//
// Each logical line is extracted with field.Next, split with field.Parse and
// then classified with Classify. A field name repeated later in the block
// replaces the earlier one.
//
// By default, the first line that cannot be parsed causes Parse to return nil
// and a *ParseError. See SkipMalformed() for the alternative.
func Parse(block string, opts ...ParseOption) (*Header, error) {
	pr := &parser{}
	for _, opt := range opts {
		opt(pr)
	}

	h := &Header{lbr: pr.lbr}
	h.initHeader()

	// fail returns true when the parse must stop
	fail := func(perr *ParseError) bool {
		if !pr.skipMalformed {
			return true
		}
		h.defects = append(h.defects, perr)
		return false
	}

	rest := block
	for rest != "" {
		offset := len(block) - len(rest)

		line, next, err := field.Next(rest)
		if err != nil {
			perr := newParseError(StageFold, block, offset, "", err)
			if fail(perr) {
				return nil, perr
			}

			// skip the offending physical line
			_, rest, _ = strings.Cut(rest, "\n")
			continue
		}

		name, body, err := field.Parse(line)
		if err != nil {
			perr := newParseError(StageFold, block, offset, line.String(), err)
			if fail(perr) {
				return nil, perr
			}
			rest = next
			continue
		}

		v, err := Classify(name, body)
		if err != nil {
			perr := newParseError(StageClassify, block, offset, line.String(), err)
			if fail(perr) {
				return nil, perr
			}
			rest = next
			continue
		}

		h.Set(name, v)
		rest = next
	}

	return h, nil
}
