// ABOUTME: Tests for the append-only frame log.
// ABOUTME: Covers sequence monotonicity, ordering, and clear semantics.

package framelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend_AssignsIncreasingSequence(t *testing.T) {
	log := New()

	first := log.Append(DirectionSent, `{"type":"say"}`)
	second := log.Append(DirectionReceived, `{"type":"chat"}`)
	third := log.Append(DirectionReceived, "not-json")

	assert.Equal(t, uint64(1), first.Seq)
	assert.Equal(t, uint64(2), second.Seq)
	assert.Equal(t, uint64(3), third.Seq)
	assert.False(t, second.Timestamp.Before(first.Timestamp))
}

func TestAppend_PreservesPayloadVerbatim(t *testing.T) {
	log := New()

	log.Append(DirectionReceived, "not-json")

	entries := log.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "not-json", entries[0].Payload)
	assert.Equal(t, DirectionReceived, entries[0].Direction)
}

func TestEntries_ReturnsAppendOrder(t *testing.T) {
	log := New()
	payloads := []string{"a", "b", "c", "d"}
	for _, p := range payloads {
		log.Append(DirectionSent, p)
	}

	entries := log.Entries()
	require.Len(t, entries, len(payloads))
	for i, e := range entries {
		assert.Equal(t, payloads[i], e.Payload)
		assert.Equal(t, uint64(i+1), e.Seq)
	}
}

func TestEntries_ReturnsCopy(t *testing.T) {
	log := New()
	log.Append(DirectionSent, "a")

	entries := log.Entries()
	entries[0].Payload = "mutated"

	assert.Equal(t, "a", log.Entries()[0].Payload)
}

func TestClear_DiscardsEntriesButNotCounter(t *testing.T) {
	log := New()
	log.Append(DirectionSent, "a")
	log.Append(DirectionReceived, "b")

	log.Clear()

	assert.Zero(t, log.Len())

	// The counter keeps climbing so sequence numbers stay unique.
	next := log.Append(DirectionSent, "c")
	assert.Equal(t, uint64(3), next.Seq)
}
