package random

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReference(t *testing.T) {
	g := New()
	pattern := regexp.MustCompile(`^[0-9A-Z]{8}$`)

	for range 20 {
		ref, err := g.Reference(context.Background(), 8)
		require.NoError(t, err)
		assert.Regexp(t, pattern, ref)
	}
}

func TestReferenceUsesFullAlphabet(t *testing.T) {
	g := New()
	beyondHex := regexp.MustCompile(`[G-Z]`)

	var seen bool

	for range 50 {
		ref, err := g.Reference(context.Background(), maxReferenceLength)
		require.NoError(t, err)
		require.Len(t, ref, maxReferenceLength)

		if beyondHex.MatchString(ref) {
			seen = true
		}
	}

	assert.True(t, seen, "references never left the hex range")
}

func TestReferenceLength(t *testing.T) {
	_, err := New().Reference(context.Background(), 0)
	require.ErrorIs(t, err, ErrLength)

	_, err = New().Reference(context.Background(), 33)
	require.ErrorIs(t, err, ErrLength)
}

func TestSessionID(t *testing.T) {
	id, err := New().SessionID(context.Background())
	require.NoError(t, err)

	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}
