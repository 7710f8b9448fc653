// Package header provides the typed model of an email message header.
//
// Every field body is classified into a Value when it is parsed or set. A
// handful of well-known fields get their own types (To, From, Date, Subject,
// MessageID, ContentType, and ContentTransferEncoding). Everything else is a
// Generic, which holds the body exactly as it was given.
//
// The Header type stores those values keyed by field name without regard to
// case, remembers the order fields were added in, and renders the fields back
// out in that order.
//
// The provided Parse() function turns a header block into a Header. It is
// built on top of field.Next() and field.Parse().
package header
