// Package email is a small library for reading and writing email messages. It
// grew out of github.com/zostay/go-email, but keeps only the parts needed to
// turn raw message text into a typed header and an opaque body and back again.
//
// The work is split according to part of message:
//
//   - message/header/field turns a raw header block into logical lines,
//     unfolding continuation lines, and splits each line into a name and a
//     body.
//   - message/header classifies each field body into a typed value and keeps
//     the fields in an ordered, case-insensitive header.Header.
//   - message splits a message into its header and body and provides a builder
//     for writing new messages.
//   - message/transfer applies and removes Content-Transfer-Encoding.
//   - mbox reads every message out of a Unix mailbox file.
//
// Messages are parsed with message.FromText or one of its siblings:
//
//	m, err := message.FromText(raw)
//	if err != nil {
//	  panic(err)
//	}
//
// Parsing is strict. The first line that cannot be understood fails the parse
// with a *header.ParseError that tells which stage failed and where. Use
// message.WithLenientHeaders() to skip over those lines instead.
//
// Bodies are never interpreted. Multipart messages are read as one opaque body.
// Header fields are never folded when written, and Date and address fields are
// only parsed when asked for with GetDate(), GetTo() and the like.
package email
