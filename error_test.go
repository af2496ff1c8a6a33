package edgardoc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/edgardoc"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := edgardoc.Errorf(edgardoc.ENOHEADER, "no header in %q", "a.txt")

	assert.Equal(t, edgardoc.ENOHEADER, edgardoc.ErrorCode(err))
	assert.Equal(t, "no header in \"a.txt\"", edgardoc.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, edgardoc.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, edgardoc.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("parse archive: %w", edgardoc.Errorf(edgardoc.ENODOCUMENTS, "no documents found"))

	assert.Equal(t, edgardoc.ENODOCUMENTS, edgardoc.ErrorCode(err))
	assert.Equal(t, "no documents found", edgardoc.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk full")

	assert.Equal(t, edgardoc.EINTERNAL, edgardoc.ErrorCode(err))
	assert.Equal(t, "Internal error.", edgardoc.ErrorMessage(err))
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	cause := errors.New("illegal character")
	err := edgardoc.WrapError(edgardoc.EDECODE, cause, "decode %s", "logo.jpg")

	assert.Equal(t, edgardoc.EDECODE, edgardoc.ErrorCode(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "payload_decode: decode logo.jpg: illegal character", err.Error())
}
