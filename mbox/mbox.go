package mbox

import (
	"errors"
	"fmt"
	"io"
	"os"

	gombox "github.com/emersion/go-mbox"

	"github.com/zostay/go-email-lite/message"
)

// MessageError reports a message in a mailbox that could not be read or
// parsed. Index is the 0-based position of the message in the mailbox.
type MessageError struct {
	Index int
	Err   error
}

// Error returns the error message.
func (err *MessageError) Error() string {
	return fmt.Sprintf("mbox message %d: %v", err.Index, err.Err)
}

// Unwrap returns the cause.
func (err *MessageError) Unwrap() error {
	return err.Err
}

// Reader reads messages from an mbox one at a time.
type Reader struct {
	r     *gombox.Reader
	opts  []message.ParseOption
	index int
	err   error
}

// NewReader returns a Reader that reads messages from r. The options are passed
// through to message.FromReader for every message.
func NewReader(r io.Reader, opts ...message.ParseOption) *Reader {
	return &Reader{
		r:    gombox.NewReader(r),
		opts: opts,
	}
}

// Next returns the next message in the mailbox. It returns io.EOF after the
// last message.
//
// A message that cannot be parsed results in a *MessageError. Reading may
// continue with the next call to Next. Any other error means the mailbox
// itself could not be read. It is returned again from every later call.
func (r *Reader) Next() (*message.Message, error) {
	if r.err != nil {
		return nil, r.err
	}

	mr, err := r.r.NextMessage()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	} else if err != nil {
		r.err = fmt.Errorf("unable to read mbox after message %d: %w", r.index, err)
		return nil, r.err
	}

	ix := r.index
	r.index++

	m, err := message.FromReader(mr, r.opts...)
	if err != nil {
		return nil, &MessageError{Index: ix, Err: err}
	}

	return m, nil
}

// ReadAll reads every message remaining in the mailbox. It stops at the first
// error and returns the messages read so far along with the error.
func (r *Reader) ReadAll() ([]*message.Message, error) {
	var msgs []*message.Message
	for {
		m, err := r.Next()
		if errors.Is(err, io.EOF) {
			return msgs, nil
		} else if err != nil {
			return msgs, err
		}

		msgs = append(msgs, m)
	}
}

// ReadFile opens the named mbox file and reads every message in it.
func ReadFile(path string, opts ...message.ParseOption) ([]*message.Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open mbox file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return NewReader(f, opts...).ReadAll()
}
