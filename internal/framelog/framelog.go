// ABOUTME: Append-only record of every raw frame sent or received over the socket.
// ABOUTME: Entries are logged verbatim, pre-interpretation, so the log is a faithful wire trace.

package framelog

import (
	"sync"
	"time"
)

// Direction marks whether a frame left the console or arrived from the
// server.
type Direction string

// Frame directions.
const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// Entry is one logged frame. Entries are immutable after append.
type Entry struct {
	Seq       uint64
	Direction Direction
	Timestamp time.Time
	Payload   string
}

// Log is an append-only, ordered frame record. Sequence numbers are
// strictly increasing and assigned at append time, so entry order always
// matches the real send/receive order. Clear discards entries but never
// rewinds the counter, so sequence numbers stay unique for the life of
// the process.
type Log struct {
	mu      sync.Mutex
	nextSeq uint64
	entries []Entry
}

// New creates an empty frame log.
func New() *Log {
	return &Log{}
}

// Append records a frame with the next sequence number and the current
// time, and returns the stored entry.
func (l *Log) Append(dir Direction, payload string) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextSeq++
	entry := Entry{
		Seq:       l.nextSeq,
		Direction: dir,
		Timestamp: time.Now(),
		Payload:   payload,
	}
	l.entries = append(l.entries, entry)
	return entry
}

// Entries returns a copy of all logged entries in append order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries currently in the log.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear discards all entries. The sequence counter is not reset.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
