// ABOUTME: Conversation-id sniffing for human-readable info messages.
// ABOUTME: Extracts the first UUID-shaped substring, skipping AUTH OK replies which carry a user id.

package protocol

import (
	"regexp"
	"strings"
)

// authOKMarker is the literal substring the socket server puts in the
// info reply to a successful authenticate command. Those replies contain
// the user's id, not a conversation id, so the sniffer must skip them.
const authOKMarker = "AUTH OK"

// uuidPattern matches the canonical 8-4-4-4-12 hexadecimal UUID text
// form, case-insensitive.
var uuidPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

// SniffConversationID scans info text for a conversation id and returns
// the first UUID-shaped substring found, verbatim.
//
// The server does not tag which UUIDs in info text are conversation ids:
// "Created conversation: <uuid>" carries one, while "AUTH OK <uuid>"
// carries a user id. Excluding text containing the AUTH OK marker is the
// only disambiguation applied; any other info message containing an
// unrelated UUID will still match. That is a known limitation of the
// protocol, not of this function.
func SniffConversationID(text string) (string, bool) {
	if strings.Contains(text, authOKMarker) {
		return "", false
	}
	match := uuidPattern.FindString(text)
	if match == "" {
		return "", false
	}
	return match, true
}
