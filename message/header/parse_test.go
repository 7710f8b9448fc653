package header_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-email-lite/message/header"
	"github.com/zostay/go-email-lite/message/header/field"
)

func TestParse(t *testing.T) {
	t.Parallel()

	const block = "From: maxking@example.com\n" +
		"To: something@person.com\n" +
		"Date: 9th Oct 2019\n" +
		"Subject: This is a multiline subject\n" +
		" which goes on for a while because I chose\n" +
		" to fold it.\n" +
		"Content-Type: text/plain; charset=utf-8\n" +
		"X-Mailer: the best"

	h, err := header.Parse(block)
	require.NoError(t, err)
	assert.Equal(t, 6, h.Len())
	assert.Empty(t, h.Defects())

	assert.Equal(t, []*header.Field{
		{Name: "From", Value: header.From("maxking@example.com")},
		{Name: "To", Value: header.To("something@person.com")},
		{Name: "Date", Value: header.Date("9th Oct 2019")},
		{Name: "Subject", Value: header.Subject("This is a multiline subject which goes on for a while because I chose to fold it.")},
		{Name: "Content-Type", Value: header.ContentType{MainType: "text", SubType: "plain", Params: "charset=utf-8"}},
		{Name: "X-Mailer", Value: header.Generic("the best")},
	}, h.Fields())
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	h, err := header.Parse("")
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len())
}

func TestParse_LastWins(t *testing.T) {
	t.Parallel()

	h, err := header.Parse("To: first\nSubject: s\nTO: second")
	require.NoError(t, err)
	assert.Equal(t, 2, h.Len())

	v, err := h.Get("to")
	assert.NoError(t, err)
	assert.Equal(t, header.To("second"), v)
	assert.Equal(t, []string{"TO", "Subject"}, h.Names())
}

func TestParse_WithBreak(t *testing.T) {
	t.Parallel()

	h, err := header.Parse("Subject: s", header.WithBreak(header.LF))
	require.NoError(t, err)
	assert.Equal(t, "Subject: s\n\n", h.String())
}

func TestParse_Strict(t *testing.T) {
	t.Parallel()

	h, err := header.Parse("From: a\nTo: b\nthis line has no colon\nSubject: c")
	assert.Nil(t, h)

	var perr *header.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, header.StageFold, perr.Stage)
	assert.Equal(t, 3, perr.Line)
	assert.Equal(t, 14, perr.Offset)
	assert.Equal(t, "this line has no colon", perr.Text)
	assert.ErrorIs(t, err, field.ErrMalformedHeaderLine)
	assert.Equal(t,
		"folding failed at line 3 (offset 14): header line is missing a field name and colon",
		err.Error())

	_, err = header.Parse("From: a\nContent-Type: text\n")
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, header.StageClassify, perr.Stage)
	assert.Equal(t, 2, perr.Line)
	assert.ErrorIs(t, err, header.ErrMalformedContentType)

	_, err = header.Parse(" orphan\nFrom: a")
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, header.StageFold, perr.Stage)
	assert.Equal(t, 1, perr.Line)
	assert.ErrorIs(t, err, field.ErrOrphanContinuation)
}

func TestParse_SkipMalformed(t *testing.T) {
	t.Parallel()

	const block = " orphan one\n" +
		"\tand two\n" +
		"From: a\n" +
		"no colon here\n" +
		"Content-Type: bogus\n" +
		"Subject: kept"

	h, err := header.Parse(block, header.SkipMalformed())
	require.NoError(t, err)
	assert.Equal(t, []string{"From", "Subject"}, h.Names())

	ds := h.Defects()
	require.Len(t, ds, 4)
	assert.ErrorIs(t, ds[0], field.ErrOrphanContinuation)
	assert.Equal(t, 1, ds[0].Line)
	assert.ErrorIs(t, ds[1], field.ErrOrphanContinuation)
	assert.Equal(t, 2, ds[1].Line)
	assert.ErrorIs(t, ds[2], field.ErrMalformedHeaderLine)
	assert.Equal(t, 4, ds[2].Line)
	assert.ErrorIs(t, ds[3], header.ErrMalformedContentType)
	assert.Equal(t, header.StageClassify, ds[3].Stage)
	assert.Equal(t, 5, ds[3].Line)
}

func TestStage_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "splitting", header.StageSplit.String())
	assert.Equal(t, "folding", header.StageFold.String())
	assert.Equal(t, "classifying", header.StageClassify.String())
	assert.Equal(t, "Stage(9)", header.Stage(9).String())
}
