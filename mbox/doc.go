// Package mbox reads mailbox files in the Unix mbox format and parses each
// message they contain with the message package. Splitting the mailbox into
// messages and undoing the ">From " quoting is handled by
// github.com/emersion/go-mbox.
package mbox
