// ABOUTME: Tests for inbound frame classification.
// ABOUTME: Covers the chat/info/error discriminators, missing fields, and malformed payloads.

package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Chat(t *testing.T) {
	raw := `{"type":"chat","conversation":"3fa85f64-5717-4562-b3fc-2c963f66afa6","from":"9b2d6c1e-0a4f-4e3d-8b5a-1c2d3e4f5a6b","message":"hello"}`

	ev := Classify(raw)

	require.Equal(t, KindChat, ev.Kind)
	assert.Equal(t, "3fa85f64-5717-4562-b3fc-2c963f66afa6", ev.Conversation)
	assert.Equal(t, "9b2d6c1e-0a4f-4e3d-8b5a-1c2d3e4f5a6b", ev.From)
	assert.Equal(t, "hello", ev.Text)
	assert.Empty(t, ev.Raw)
}

func TestClassify_ChatAllowsEmptyMessage(t *testing.T) {
	// An empty message field is present, just empty. Only a missing
	// field makes the frame unparseable.
	ev := Classify(`{"type":"chat","conversation":"c","from":"f","message":""}`)

	require.Equal(t, KindChat, ev.Kind)
	assert.Empty(t, ev.Text)
}

func TestClassify_Info(t *testing.T) {
	ev := Classify(`{"type":"info","message":"AUTH OK 3fa85f64-5717-4562-b3fc-2c963f66afa6"}`)

	require.Equal(t, KindInfo, ev.Kind)
	assert.Equal(t, "AUTH OK 3fa85f64-5717-4562-b3fc-2c963f66afa6", ev.Text)
}

func TestClassify_Error(t *testing.T) {
	ev := Classify(`{"type":"error","message":"AUTH FAILED"}`)

	require.Equal(t, KindError, ev.Kind)
	assert.Equal(t, "AUTH FAILED", ev.Text)
}

func TestClassify_Unparseable(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "not-json"},
		{"json scalar", "42"},
		{"json array", `[{"type":"info","message":"x"}]`},
		{"unknown discriminator", `{"type":"presence","message":"x"}`},
		{"missing discriminator", `{"message":"x"}`},
		{"chat missing conversation", `{"type":"chat","from":"f","message":"m"}`},
		{"chat missing from", `{"type":"chat","conversation":"c","message":"m"}`},
		{"chat missing message", `{"type":"chat","conversation":"c","from":"f"}`},
		{"info missing message", `{"type":"info"}`},
		{"error missing message", `{"type":"error"}`},
		{"empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Classify(tt.raw)

			require.Equal(t, KindUnparseable, ev.Kind)
			assert.Equal(t, tt.raw, ev.Raw, "raw payload must be preserved verbatim")
		})
	}
}

func TestEncode_Commands(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{
			name: "authenticate",
			cmd:  NewAuthenticate("tok123"),
			want: `{"type":"authenticate","token":"tok123"}`,
		},
		{
			name: "create_conversation",
			cmd:  NewCreateConversation("3fa85f64-5717-4562-b3fc-2c963f66afa6"),
			want: `{"type":"create_conversation","participant":"3fa85f64-5717-4562-b3fc-2c963f66afa6"}`,
		},
		{
			name: "say",
			cmd:  NewSay("hello there", "3fa85f64-5717-4562-b3fc-2c963f66afa6"),
			want: `{"type":"say","message":"hello there","conversation_id":"3fa85f64-5717-4562-b3fc-2c963f66afa6"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.cmd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeClassify_RoundTrip(t *testing.T) {
	// A say command and the chat frame the server broadcasts back share
	// the conversation id end to end.
	const conversation = "3fa85f64-5717-4562-b3fc-2c963f66afa6"

	payload, err := Encode(NewSay("ping", conversation))
	require.NoError(t, err)
	assert.Contains(t, payload, conversation)

	reply := `{"type":"chat","conversation":"` + conversation + `","from":"peer","message":"ping"}`
	ev := Classify(reply)

	require.Equal(t, KindChat, ev.Kind)
	assert.Equal(t, conversation, ev.Conversation)
}
