// ABOUTME: Wire types for the chat backend's JSON WebSocket protocol.
// ABOUTME: Outbound commands carry a "type" discriminator field; Encode produces the exact frame payload.

package protocol

import (
	"encoding/json"
	"fmt"
)

// Command discriminator values understood by the socket server.
const (
	TypeAuthenticate       = "authenticate"
	TypeCreateConversation = "create_conversation"
	TypeSay                = "say"
)

// Command is an outbound frame. Concrete command structs serialize to a
// JSON object whose "type" field identifies them; receivers parse by key,
// not by position.
type Command interface {
	command()
}

// Authenticate presents a JWT to the socket server, binding the
// connection to a user.
type Authenticate struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

func (Authenticate) command() {}

// NewAuthenticate builds an authenticate command for the given token.
func NewAuthenticate(token string) Authenticate {
	return Authenticate{Type: TypeAuthenticate, Token: token}
}

// CreateConversation asks the server to open a two-party conversation
// between the authenticated user and the given participant.
type CreateConversation struct {
	Type        string `json:"type"`
	Participant string `json:"participant"`
}

func (CreateConversation) command() {}

// NewCreateConversation builds a create_conversation command.
func NewCreateConversation(participant string) CreateConversation {
	return CreateConversation{Type: TypeCreateConversation, Participant: participant}
}

// Say posts a message into an existing conversation.
type Say struct {
	Type           string `json:"type"`
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}

func (Say) command() {}

// NewSay builds a say command targeting the given conversation.
func NewSay(message, conversationID string) Say {
	return Say{Type: TypeSay, Message: message, ConversationID: conversationID}
}

// Encode serializes a command into the exact text payload that goes on
// the wire. The returned string is what must be recorded in the frame log.
func Encode(cmd Command) (string, error) {
	data, err := json.Marshal(cmd)
	if err != nil {
		return "", fmt.Errorf("encoding %T command: %w", cmd, err)
	}
	return string(data), nil
}
