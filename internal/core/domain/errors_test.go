package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkFetchError_Message(t *testing.T) {
	err := &ChunkFetchError{Document: "policy.pdf", Page: 3, Err: errors.New("timeout")}

	assert.Contains(t, err.Error(), "policy.pdf")
	assert.Contains(t, err.Error(), "3")
	assert.Contains(t, err.Error(), "timeout")
}

func TestChunkFetchError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ChunkFetchError{Document: "policy.pdf", Page: 1, Err: cause}

	assert.ErrorIs(t, err, cause)

	var fetchErr *ChunkFetchError
	assert.ErrorAs(t, error(err), &fetchErr)
	assert.Equal(t, 1, fetchErr.Page)
}
