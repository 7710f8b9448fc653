package header

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	"github.com/zostay/go-addr/pkg/addr"
	"golang.org/x/text/cases"
)

// ErrNoSuchField is returned by Header methods when the operation being
// performed failed because the header named does not exist.
var ErrNoSuchField = errors.New("no such header field")

// Even more custom date formats, built from those seen in the wild that the
// usual parsers have trouble with.
const (
	// UnixDateWithEarlyYear is a weird one, eh?
	UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"
)

// foldKey returns the lookup key for a field name. Names are matched without
// regard to ASCII case only. A name holding any non-ASCII byte is its own key,
// so that Unicode folding can never merge two distinct names or turn an
// unknown name into a known one. A new Caser is made on each call because a
// Caser must not be shared between goroutines.
func foldKey(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] >= utf8.RuneSelf {
			return name
		}
	}
	return cases.Fold().String(name)
}

// Field is a single header field: the name it was stored under and its typed
// body.
type Field struct {
	Name  string
	Value Value
}

// RenderName returns the name to use when writing the field. Typed values use
// their canonical name. Generic values use the name as stored, preserving its
// case.
func (f *Field) RenderName() string {
	if n, ok := CanonicalName(f.Value); ok {
		return n
	}
	return f.Name
}

// String returns the complete header field as a string, without a line break.
func (f *Field) String() string {
	var body string
	if f.Value != nil {
		body = f.Value.String()
	}
	return fmt.Sprintf("%s: %s", f.RenderName(), body)
}

// Header is an ordered mapping from field name to typed field body. Names are
// compared without regard to case, so "To", "to", and "TO" all refer to the
// same field. Each name occurs at most once: setting a field that already
// exists replaces it, keeping its original position.
//
// The zero value is an empty header ready to use.
type Header struct {
	lbr     Break
	keys    []string
	fields  map[string]*Field
	defects []*ParseError
}

// initHeader initializes the fields map lazily.
func (h *Header) initHeader() {
	if h.fields == nil {
		h.fields = make(map[string]*Field, 10)
	}
}

// Clone returns a deep copy of the header object.
func (h *Header) Clone() *Header {
	c := &Header{
		lbr:     h.lbr,
		keys:    make([]string, len(h.keys)),
		fields:  make(map[string]*Field, len(h.fields)),
		defects: append([]*ParseError(nil), h.defects...),
	}
	copy(c.keys, h.keys)
	for k, f := range h.fields {
		cf := *f
		c.fields[k] = &cf
	}
	return c
}

// Break returns the line break used to terminate each field and the header.
// This is CRLF unless changed with SetBreak.
func (h *Header) Break() Break {
	if h.lbr == "" {
		return DefaultBreak
	}
	return h.lbr
}

// SetBreak changes the line break to use with this header.
func (h *Header) SetBreak(lbr Break) {
	h.lbr = lbr
}

// Len returns the number of fields in the header.
func (h *Header) Len() int {
	return len(h.keys)
}

// Has returns true if a field with the given name is set.
func (h *Header) Has(name string) bool {
	_, found := h.fields[foldKey(name)]
	return found
}

// Field returns the field with the given name or nil if there is no such
// field.
func (h *Header) Field(name string) *Field {
	return h.fields[foldKey(name)]
}

// Fields returns all the fields in the order they were added.
func (h *Header) Fields() []*Field {
	fs := make([]*Field, len(h.keys))
	for i, k := range h.keys {
		fs[i] = h.fields[k]
	}
	return fs
}

// Names returns the stored names of all the fields in order.
func (h *Header) Names() []string {
	ns := make([]string, len(h.keys))
	for i, k := range h.keys {
		ns[i] = h.fields[k].Name
	}
	return ns
}

// Get returns the typed value of the named field.
//
// If the named field is not set in the header, it will return nil with
// ErrNoSuchField.
func (h *Header) Get(name string) (Value, error) {
	f, found := h.fields[foldKey(name)]
	if !found {
		return nil, ErrNoSuchField
	}
	return f.Value, nil
}

// Set stores the value under the given name. If a field with that name already
// exists (compared without case), its name and value are replaced, but it keeps
// its position in the header. Otherwise, the field is appended to the end.
func (h *Header) Set(name string, v Value) {
	h.initHeader()

	k := foldKey(name)
	if f, found := h.fields[k]; found {
		f.Name = name
		f.Value = v
		return
	}

	h.keys = append(h.keys, k)
	h.fields[k] = &Field{Name: name, Value: v}
}

// SetBody classifies the given body for the named field and stores the result.
// It returns an error if the body cannot be classified.
func (h *Header) SetBody(name, body string) error {
	v, err := Classify(name, body)
	if err != nil {
		return err
	}

	h.Set(name, v)
	return nil
}

// Delete removes the named field. It returns ErrNoSuchField if no such field
// is set.
func (h *Header) Delete(name string) error {
	k := foldKey(name)
	if _, found := h.fields[k]; !found {
		return ErrNoSuchField
	}

	delete(h.fields, k)
	for i, hk := range h.keys {
		if hk == k {
			h.keys = append(h.keys[:i], h.keys[i+1:]...)
			break
		}
	}

	return nil
}

// Defects returns the problems found while parsing the header when malformed
// lines were skipped rather than causing the parse to fail. See
// SkipMalformed().
func (h *Header) Defects() []*ParseError {
	return h.defects
}

// WriteTo writes each field followed by the line break and then a final line
// break to terminate the header. No folding is performed, no matter how long
// the field is.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	lb := h.Break().String()
	total := int64(0)
	for _, f := range h.Fields() {
		n, err := io.WriteString(w, f.String()+lb)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	n, err := io.WriteString(w, lb)
	total += int64(n)
	return total, err
}

// Bytes returns the header as a slice of bytes.
func (h *Header) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = h.WriteTo(&buf)
	return buf.Bytes()
}

// String returns the header as a string.
func (h *Header) String() string {
	return string(h.Bytes())
}

// getString returns the rendered body of the named field.
func (h *Header) getString(name string) (string, error) {
	v, err := h.Get(name)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// GetSubject returns the value of the Subject header field.
//
// If Subject is not set in the header, it will return an empty string with
// ErrNoSuchField.
func (h *Header) GetSubject() (string, error) {
	return h.getString(NameSubject)
}

// SetSubject replaces the Subject header field.
func (h *Header) SetSubject(s string) {
	h.Set(NameSubject, Subject(s))
}

// GetMessageID returns the Message ID found in the Message-ID header, if any.
func (h *Header) GetMessageID() (string, error) {
	return h.getString(NameMessageID)
}

// SetMessageID sets the Message-ID header of the message header.
func (h *Header) SetMessageID(id string) {
	h.Set(NameMessageID, MessageID(id))
}

// GetTransferEncoding returns the content of the Content-Transfer-Encoding
// header.
func (h *Header) GetTransferEncoding() (string, error) {
	return h.getString(NameContentTransferEncoding)
}

// SetTransferEncoding replaces the Content-Transfer-Encoding with the given
// value.
func (h *Header) SetTransferEncoding(cte string) {
	h.Set(NameContentTransferEncoding, ContentTransferEncoding(cte))
}

// GetContentType returns the Content-Type header.
//
// It returns ErrNoSuchField if the field is not set. If the field was stored
// as something other than a ContentType, the body is parsed as one, which may
// fail with ErrMalformedContentType.
func (h *Header) GetContentType() (ContentType, error) {
	v, err := h.Get(NameContentType)
	if err != nil {
		return ContentType{}, err
	}

	if ct, isCT := v.(ContentType); isCT {
		return ct, nil
	}

	return ParseContentType(v.String())
}

// SetContentType replaces the Content-Type header.
func (h *Header) SetContentType(mainType, subType, params string) {
	h.Set(NameContentType, ContentType{mainType, subType, params})
}

// GetMediaType returns maintype/subtype from the Content-Type header.
func (h *Header) GetMediaType() (string, error) {
	ct, err := h.GetContentType()
	if err != nil {
		return "", err
	}
	return ct.MediaType(), nil
}

// ParseTime is a function that provides the time parsing used by GetTime() and
// GetDate() to parse dates to be used on any field body. This will attempt to
// parse the date using the format specified by RFC 5322 first and fallback to
// parsing it in many other formats.
//
// It either returns a parsed time or the parse error.
func ParseTime(body string) (time.Time, error) {
	t, err := mail.ParseDate(body)
	if err == nil {
		return t, nil
	}

	t, err = dateparse.ParseAny(body)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(UnixDateWithEarlyYear, body)
	if err == nil {
		return t, nil
	}

	return t, fmt.Errorf("time string %q cannot be parsed", body)
}

// GetTime parses the named field as a time.Time. Date fields are stored as
// opaque strings, so the parse happens on every call.
func (h *Header) GetTime(name string) (time.Time, error) {
	body, err := h.getString(name)
	if err != nil {
		return time.Time{}, err
	}
	return ParseTime(body)
}

// GetDate retrieves the Date header as a time.Time value.
func (h *Header) GetDate() (time.Time, error) {
	return h.GetTime(NameDate)
}

// SetDate updates the Date header from the given time.Time value. The time
// will be formatted via time.RFC1123Z.
func (h *Header) SetDate(d time.Time) {
	h.Set(NameDate, Date(d.Format(time.RFC1123Z)))
}

// ParseAddressList parses a field body as a list of email addresses. It will
// attempt a strict parse first. If that fails, a lenient parse is performed,
// which will return something for any input, even if it is a little weird.
func ParseAddressList(body string) addr.AddressList {
	al, err := addr.ParseEmailAddressList(body)
	if err != nil {
		al = parseLenientAddressList(body)
	}
	return al
}

// GetAddressList parses the named field as an addr.AddressList.
//
// It will return nil and ErrNoSuchField if the field is not set on the header.
func (h *Header) GetAddressList(name string) (addr.AddressList, error) {
	body, err := h.getString(name)
	if err != nil {
		return nil, err
	}
	return ParseAddressList(body), nil
}

// GetTo returns the To address field as an addr.AddressList.
func (h *Header) GetTo() (addr.AddressList, error) {
	return h.GetAddressList(NameTo)
}

// SetTo sets the To field to the given addresses.
func (h *Header) SetTo(as ...addr.Address) {
	h.Set(NameTo, To(addr.AddressList(as).String()))
}

// GetFrom returns the From address field as an addr.AddressList.
func (h *Header) GetFrom() (addr.AddressList, error) {
	return h.GetAddressList(NameFrom)
}

// SetFrom sets the From field to the given addresses.
func (h *Header) SetFrom(as ...addr.Address) {
	h.Set(NameFrom, From(addr.AddressList(as).String()))
}

// parseLenientAddressList is the fallback used when the strict parser in
// github.com/zostay/go-addr rejects a field body. It splits the body on commas
// and, in each piece, treats the last word as the address and any words before
// it as the display name. Groups and comments are not understood.
func parseLenientAddressList(v string) addr.AddressList {
	mbs := strings.Split(v, ",")
	as := make(addr.AddressList, 0, len(mbs))
	for _, orig := range mbs {
		parts := strings.Fields(orig)
		if len(parts) == 0 {
			continue
		}

		dn := strings.Join(parts[:len(parts)-1], " ")
		email := strings.Trim(parts[len(parts)-1], "<>")

		local, domain, _ := strings.Cut(email, "@")
		spec := addr.NewAddrSpecParsed(local, domain, email)

		mb, err := addr.NewMailboxParsed(dn, spec, "", strings.TrimSpace(orig))
		if err != nil {
			continue
		}

		as = append(as, mb)
	}
	return as
}
