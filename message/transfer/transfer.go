package transfer

import (
	"io"
	"strings"

	"github.com/zostay/go-email-lite/message/header"
)

// Names of the transfer encodings handled by this package.
const (
	None            = ""                 // bytes will be left as-is
	Bit7            = "7bit"             // bytes will be left as-is
	Bit8            = "8bit"             // bytes will be left as-is
	Binary          = "binary"           // bytes will be left as-is
	QuotedPrintable = "quoted-printable" // bytes will be transformed between quoted-printable and binary data
	Base64          = "base64"           // bytes will be transformed between base64 and binary data
)

// Transcoding is a pair of functions that can be used to transform to and from
// a transfer encoding.
type Transcoding struct {
	// Encoder returns an io.WriteCloser, which will encode binary data and
	// write the encoded form to the given io.Writer, using the given line break
	// wherever the encoding needs to break lines. You must call Close() on the
	// returned io.WriteCloser when you are finished.
	Encoder func(io.Writer, header.Break) io.WriteCloser

	// Decoder returns an io.Reader, which will read from the given io.Reader
	// and decode the encoded data back into binary form.
	Decoder func(io.Reader) io.Reader
}

// AsIsTranscoder is just a shortcut to a no-op encoder/decoder.
var AsIsTranscoder = Transcoding{NewAsIsEncoder, NewAsIsDecoder}

// Transcodings defines the supported Content-Transfer-Encodings and how to
// handle them. The keys must be lowercase.
var Transcodings = map[string]Transcoding{
	None:            AsIsTranscoder,
	Bit7:            AsIsTranscoder,
	Bit8:            AsIsTranscoder,
	Binary:          AsIsTranscoder,
	QuotedPrintable: {NewQuotedPrintableEncoder, NewQuotedPrintableDecoder},
	Base64:          {NewBase64Encoder, NewBase64Decoder},
}

// Lookup returns the Transcoding for the named transfer encoding. The name is
// matched without regard to case or surrounding whitespace. It returns false
// if the encoding is unknown.
func Lookup(cte string) (Transcoding, bool) {
	tc, found := Transcodings[strings.ToLower(strings.TrimSpace(cte))]
	return tc, found
}

// ApplyTransferEncoding is a helper that will check the given header to see if
// transfer encoding ought to be performed. It will return an io.WriteCloser
// that will write the encoding (or just pass data through if no encoding is
// necessary). Lines are broken using the header's line break.
//
// You must call Close() on the returned io.WriteCloser when you are finished
// writing.
func ApplyTransferEncoding(h *header.Header, w io.Writer) io.WriteCloser {
	cte, err := h.GetTransferEncoding()
	if err != nil {
		return NewAsIsEncoder(w, h.Break())
	}

	if tc, found := Lookup(cte); found {
		return tc.Encoder(w, h.Break())
	}

	return NewAsIsEncoder(w, h.Break())
}

// ApplyTransferDecoding returns an io.Reader that will modify incoming bytes
// according to the transfer encoding detected from the given header. (Or the
// io.Reader will leave the bytes as is if there's no transfer encoding or the
// transfer encoding is one that is interpreted as-is).
func ApplyTransferDecoding(h *header.Header, r io.Reader) io.Reader {
	// multipart bodies never have a transfer encoding of their own
	ct, err := h.GetContentType()
	if err == nil && strings.EqualFold(ct.MainType, "multipart") {
		return r
	}

	cte, err := h.GetTransferEncoding()
	if err != nil {
		return r
	}

	if tc, found := Lookup(cte); found {
		return tc.Decoder(r)
	}

	return r
}
