// Package transfer interprets the Content-Transfer-Encoding header field of a
// message to decode the body for reading or to encode a body being built.
// Only quoted-printable and base64 actually change the bytes. The 7bit, 8bit,
// and binary encodings, and a missing header field, leave the bytes as is.
//
// For the sake of this package, "decoded" means the body has been transformed
// out of the named transfer encoding and "encoded" means it has been
// transformed into it.
package transfer
