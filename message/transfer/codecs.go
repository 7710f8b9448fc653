package transfer

import (
	"encoding/base64"
	"io"
	"mime/quotedprintable"

	"github.com/zostay/go-email-lite/message/header"
)

const defaultBase64LineLength = 76

// writer is an internal helper to make wrapping easier.
type writer struct {
	io.Writer
	io.Closer
}

// Close will close the nested closer, if there is one.
func (w *writer) Close() error {
	if w.Closer != nil {
		return w.Closer.Close()
	}
	return nil
}

// NewAsIsEncoder returns an io.WriteCloser that writes bytes as-is.
func NewAsIsEncoder(w io.Writer, _ header.Break) io.WriteCloser {
	return &writer{w, nil}
}

// NewAsIsDecoder returns an io.Reader that reads bytes as-is.
func NewAsIsDecoder(r io.Reader) io.Reader {
	return r
}

// NewQuotedPrintableEncoder will transform all bytes written to the returned
// io.WriteCloser into quoted-printable form and write them to the given
// io.Writer. The quoted-printable writer always breaks lines with CRLF.
func NewQuotedPrintableEncoder(w io.Writer, _ header.Break) io.WriteCloser {
	qpw := quotedprintable.NewWriter(w)
	return &writer{qpw, qpw}
}

// NewQuotedPrintableDecoder will read bytes from the given io.Reader and return
// them in the returned io.Reader after decoding them from quoted-printable
// format.
func NewQuotedPrintableDecoder(r io.Reader) io.Reader {
	return quotedprintable.NewReader(r)
}

// lineWriter inserts a line break after every n bytes written.
type lineWriter struct {
	n   int
	col int
	lbr []byte
	w   io.Writer
}

func (lw *lineWriter) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		if lw.col == lw.n {
			if _, err := lw.w.Write(lw.lbr); err != nil {
				return total, err
			}
			lw.col = 0
		}

		chunk := lw.n - lw.col
		if chunk > len(p) {
			chunk = len(p)
		}

		n, err := lw.w.Write(p[:chunk])
		total += n
		lw.col += n
		if err != nil {
			return total, err
		}
		p = p[chunk:]
	}
	return total, nil
}

// NewBase64Encoder will translate all bytes written to the returned
// io.WriteCloser into base64 encoding and write those to the give io.Writer,
// with a line break after every 76 characters.
func NewBase64Encoder(w io.Writer, lb header.Break) io.WriteCloser {
	lw := &lineWriter{
		n:   defaultBase64LineLength,
		lbr: lb.Bytes(),
		w:   w,
	}
	return base64.NewEncoder(base64.StdEncoding, lw)
}

// NewBase64Decoder will translate all bytes read from the given io.Reader as
// base64 and return the binary data to the returned io.Reader. Line breaks in
// the input are ignored.
func NewBase64Decoder(r io.Reader) io.Reader {
	return base64.NewDecoder(base64.StdEncoding, r)
}
