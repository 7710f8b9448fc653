// Package field provides the low-level tooling for breaking a header block up
// into logical header field lines and for breaking each of those lines up into
// a field name and a field body.
//
// Folding in an email header allows a single field to be spread over several
// physical lines. Every physical line that begins with a space or a tab belongs
// to the field on the line before it. The Next function peels one logical line
// off the front of a header block at a time, re-joining these continuation
// lines as it goes.
package field
