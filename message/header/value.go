package header

import (
	"errors"
	"strings"
)

// ErrMalformedContentType is returned by Classify when the primary token of a
// Content-type field body is missing the slash between the media type and the
// subtype, or when either side of the slash is empty.
var ErrMalformedContentType = errors.New("content-type is missing a maintype/subtype")

// These are the canonical names used when rendering the typed header values.
const (
	NameContentTransferEncoding = "Content-Transfer-Encoding"
	NameContentType             = "Content-Type"
	NameDate                    = "Date"
	NameFrom                    = "From"
	NameMessageID               = "Message-ID"
	NameSubject                 = "Subject"
	NameTo                      = "To"
)

// Value is a typed header field body. The set of implementations is closed:
// To, From, Date, Subject, MessageID, ContentType, ContentTransferEncoding, and
// Generic. Use a type switch to tell them apart.
type Value interface {
	// String returns the body as it is rendered after the "Name: " prefix.
	String() string

	value()
}

// To is the body of a To field. It is not parsed as an address list. Use
// ParseAddressList if you need that.
type To string

// From is the body of a From field.
type From string

// Date is the body of a Date field. It is not parsed as a time. Use ParseTime
// if you need that.
type Date string

// Subject is the body of a Subject field.
type Subject string

// MessageID is the body of a Message-ID field.
type MessageID string

// ContentTransferEncoding is the body of a Content-Transfer-Encoding field.
type ContentTransferEncoding string

// Generic is the body of any field that does not have a more specific type.
// The body is kept exactly as it was found.
type Generic string

// ContentType is the body of a Content-Type field, broken into the media type
// and subtype. Everything following the first semicolon is kept in Params as
// is, without any attempt to decompose it into individual parameters.
type ContentType struct {
	MainType string
	SubType  string
	Params   string
}

func (v To) String() string                      { return string(v) }
func (v From) String() string                    { return string(v) }
func (v Date) String() string                    { return string(v) }
func (v Subject) String() string                 { return string(v) }
func (v MessageID) String() string               { return string(v) }
func (v ContentTransferEncoding) String() string { return string(v) }
func (v Generic) String() string                 { return string(v) }

// MediaType returns maintype/subtype, e.g., "text/plain".
func (v ContentType) MediaType() string {
	return v.MainType + "/" + v.SubType
}

// String renders the Content-type body. The parameters follow a semicolon and a
// space, but only when there are parameters to render.
func (v ContentType) String() string {
	if v.Params == "" {
		return v.MediaType()
	}
	return v.MediaType() + "; " + v.Params
}

func (To) value()                      {}
func (From) value()                    {}
func (Date) value()                    {}
func (Subject) value()                 {}
func (MessageID) value()               {}
func (ContentTransferEncoding) value() {}
func (Generic) value()                 {}
func (ContentType) value()             {}

// CanonicalName returns the name a typed value is rendered with. It returns
// false for Generic values (and nil), which are rendered using whatever name
// they were stored under.
func CanonicalName(v Value) (string, bool) {
	switch v.(type) {
	case To:
		return NameTo, true
	case From:
		return NameFrom, true
	case Date:
		return NameDate, true
	case Subject:
		return NameSubject, true
	case MessageID:
		return NameMessageID, true
	case ContentType:
		return NameContentType, true
	case ContentTransferEncoding:
		return NameContentTransferEncoding, true
	}
	return "", false
}

// Classify turns a field name and body into a typed Value. The name is matched
// without regard to case. Any name that is not recognized results in a Generic
// value holding the body verbatim.
//
// The body is expected to have had the space following the colon removed
// already, as field.Parse does.
//
// Only Content-type bodies get any parsing. All other recognized bodies are
// stored as opaque strings. It returns ErrMalformedContentType if a
// Content-type body cannot be split into a maintype and subtype.
func Classify(name, body string) (Value, error) {
	switch foldKey(name) {
	case "to":
		return To(body), nil
	case "from":
		return From(body), nil
	case "date":
		return Date(body), nil
	case "subject":
		return Subject(body), nil
	case "message-id":
		return MessageID(body), nil
	case "content-transfer-encoding":
		return ContentTransferEncoding(body), nil
	case "content-type":
		ct, err := ParseContentType(body)
		if err != nil {
			return nil, err
		}
		return ct, nil
	}
	return Generic(body), nil
}

// ParseContentType splits a Content-type body into its parts. The primary
// token is everything before the first semicolon. It is split on the first
// slash, so "application/vnd.foo/bar" has the subtype "vnd.foo/bar". A single
// space or tab after the semicolon is removed from the parameters, which are
// otherwise kept as they are.
func ParseContentType(body string) (ContentType, error) {
	primary, params, _ := strings.Cut(body, ";")

	mt, st, found := strings.Cut(primary, "/")
	mt = strings.TrimSpace(mt)
	st = strings.TrimSpace(st)
	if !found || mt == "" || st == "" {
		return ContentType{}, ErrMalformedContentType
	}

	return ContentType{
		MainType: mt,
		SubType:  st,
		Params:   trimOneSpace(params),
	}, nil
}

// trimOneSpace removes the single space or tab the serializer writes after a
// separator. Any further whitespace belongs to the value.
func trimOneSpace(s string) string {
	if s != "" && (s[0] == ' ' || s[0] == '\t') {
		return s[1:]
	}
	return s
}
