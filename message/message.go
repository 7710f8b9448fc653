package message

import (
	"bytes"
	"io"
	"strings"

	"github.com/zostay/go-email-lite/message/header"
	"github.com/zostay/go-email-lite/message/transfer"
)

// Message is an email message: a typed header and an opaque body. The body is
// never interpreted by the parser. It is kept exactly as it followed the blank
// line separating it from the header.
//
// Messages may be built up from nothing using New() and the builder methods,
// each of which returns the message so calls can be chained:
//
//	m := message.New().
//		From("maxking@example.com").
//		To("testing@example.com").
//		Subject("Welcome to the new library.").
//		ContentType("text", "plain", "").
//		Content("Hello World")
type Message struct {
	// Header holds the typed header fields of the message.
	header.Header

	// Body holds the body content of the message.
	Body string
}

// New returns an empty message, ready to be built.
func New() *Message {
	return &Message{}
}

// AddHeader sets the named header field to the given value, replacing any
// field already set with that name (compared without case).
func (m *Message) AddHeader(name string, v header.Value) *Message {
	m.Set(name, v)
	return m
}

// To sets the To header field.
func (m *Message) To(v string) *Message {
	return m.AddHeader(header.NameTo, header.To(v))
}

// From sets the From header field.
func (m *Message) From(v string) *Message {
	return m.AddHeader(header.NameFrom, header.From(v))
}

// Subject sets the Subject header field.
func (m *Message) Subject(v string) *Message {
	return m.AddHeader(header.NameSubject, header.Subject(v))
}

// Date sets the Date header field from a string. Use SetDate to set it from a
// time.Time.
func (m *Message) Date(v string) *Message {
	return m.AddHeader(header.NameDate, header.Date(v))
}

// MessageID sets the Message-ID header field.
func (m *Message) MessageID(v string) *Message {
	return m.AddHeader(header.NameMessageID, header.MessageID(v))
}

// ContentType sets the Content-Type header field. The params are rendered
// after a semicolon as given. Pass an empty string for no parameters.
func (m *Message) ContentType(mainType, subType, params string) *Message {
	return m.AddHeader(header.NameContentType, header.ContentType{
		MainType: mainType,
		SubType:  subType,
		Params:   params,
	})
}

// TransferEncoding sets the Content-Transfer-Encoding header field. The body
// is not changed. Use EncodeContent to encode the body at the same time.
func (m *Message) TransferEncoding(v string) *Message {
	return m.AddHeader(header.NameContentTransferEncoding, header.ContentTransferEncoding(v))
}

// Content sets the body of the message. It is written out exactly as given.
func (m *Message) Content(body string) *Message {
	m.Body = body
	return m
}

// EncodeContent sets the Content-Transfer-Encoding header field to cte and sets
// the body to data encoded with that transfer encoding. The transfer encodings
// that are not known to the transfer package leave data as is.
func (m *Message) EncodeContent(cte string, data []byte) *Message {
	m.TransferEncoding(cte)

	buf := &bytes.Buffer{}
	w := transfer.ApplyTransferEncoding(&m.Header, buf)
	_, _ = w.Write(data)
	_ = w.Close()

	return m.Content(buf.String())
}

// DecodedBody returns the body after decoding the Content-Transfer-Encoding,
// if any. Bodies of multipart messages are returned as is.
func (m *Message) DecodedBody() ([]byte, error) {
	r := transfer.ApplyTransferDecoding(&m.Header, strings.NewReader(m.Body))
	return io.ReadAll(r)
}

// WriteTo writes the message to the given io.Writer: each header field on its
// own line, a blank line, and then the body exactly as stored. It returns the
// number of bytes written. The only errors are those returned by the
// io.Writer.
func (m *Message) WriteTo(w io.Writer) (int64, error) {
	total, err := m.Header.WriteTo(w)
	if err != nil {
		return total, err
	}

	n, err := io.WriteString(w, m.Body)
	total += int64(n)
	return total, err
}

// Bytes returns the serialized message as a slice of bytes.
func (m *Message) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = m.WriteTo(&buf)
	return buf.Bytes()
}

// String returns the serialized message.
func (m *Message) String() string {
	return string(m.Bytes())
}
