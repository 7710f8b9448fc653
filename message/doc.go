// Package message reads and writes whole email messages. A message is a
// header.Header, made of typed fields, followed by a body that is kept exactly
// as it was found.
//
// Existing messages are read with FromText, FromBytes, FromReader or FromFile:
//
//	m, err := message.FromText(raw)
//	if err != nil {
//	  panic(err)
//	}
//
//	subject, err := m.GetSubject()
//
// The parse works in three stages. First, Split locates the first blank line,
// which separates the header from the body. Then the header is unfolded into
// logical lines. Finally, each line is classified into a typed value. A failure
// in any stage is reported as a *header.ParseError.
//
// New messages are built from New with the chainable builder methods and
// written out with WriteTo, Bytes or String. Header fields are written with a
// CRLF line break unless another is chosen with SetBreak. Fields are never
// folded on output.
package message
