// ABOUTME: Classifies raw inbound frames into typed domain events.
// ABOUTME: Pure mapping keyed on the "type" discriminator; anything unrecognized becomes Unparseable.

package protocol

import "encoding/json"

// EventKind identifies the semantic type of a classified inbound frame.
type EventKind string

// Event kinds produced by Classify.
const (
	KindChat        EventKind = "chat"
	KindInfo        EventKind = "info"
	KindError       EventKind = "error"
	KindUnparseable EventKind = "unparseable"
)

// Event is a classified inbound frame. It is a value type and is never
// mutated after Classify returns it.
//
// Conversation and From are set only for KindChat. Text carries the
// message body for chat, info and error events. Raw holds the original
// payload for KindUnparseable so nothing is lost when a frame cannot be
// interpreted.
type Event struct {
	Kind         EventKind
	Conversation string
	From         string
	Text         string
	Raw          string
}

// inboundFrame mirrors the server's tagged message encoding. Pointer
// fields distinguish a missing key from an empty value, so frames that
// omit a required field are rejected rather than silently defaulted.
type inboundFrame struct {
	Type         string  `json:"type"`
	Conversation *string `json:"conversation"`
	From         *string `json:"from"`
	Message      *string `json:"message"`
}

// Classify maps a raw inbound frame to exactly one Event. It is pure:
// no side effects, no session state. Structural parse failures, unknown
// discriminators and missing required fields all yield KindUnparseable
// carrying the raw payload; Classify never fails.
func Classify(raw string) Event {
	var frame inboundFrame
	if err := json.Unmarshal([]byte(raw), &frame); err != nil {
		return Event{Kind: KindUnparseable, Raw: raw}
	}

	switch frame.Type {
	case "chat":
		if frame.Conversation == nil || frame.From == nil || frame.Message == nil {
			return Event{Kind: KindUnparseable, Raw: raw}
		}
		return Event{
			Kind:         KindChat,
			Conversation: *frame.Conversation,
			From:         *frame.From,
			Text:         *frame.Message,
		}
	case "info":
		if frame.Message == nil {
			return Event{Kind: KindUnparseable, Raw: raw}
		}
		return Event{Kind: KindInfo, Text: *frame.Message}
	case "error":
		if frame.Message == nil {
			return Event{Kind: KindUnparseable, Raw: raw}
		}
		return Event{Kind: KindError, Text: *frame.Message}
	default:
		return Event{Kind: KindUnparseable, Raw: raw}
	}
}
