// ABOUTME: Rendering helpers for console output: colors, timestamps, pretty JSON.
// ABOUTME: Pretty-printing is best-effort; payloads that are not JSON are shown unchanged.

package console

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/fatih/color"

	"github.com/2389/chat-probe/internal/framelog"
)

var (
	chatColor   = color.New(color.FgGreen)
	infoColor   = color.New(color.FgCyan)
	errColor    = color.New(color.FgRed)
	systemColor = color.New(color.Faint)
	sentColor   = color.New(color.FgBlue)
	recvColor   = color.New(color.FgMagenta)
)

// clock formats a wall-clock timestamp the way log lines show it.
func clock(t time.Time) string {
	return t.Format("15:04:05")
}

// prettyJSON re-serializes a JSON payload with indentation for display.
// Anything that is not valid JSON is returned unchanged; the frame log
// itself always holds the raw payload.
func prettyJSON(raw string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return raw
	}
	return buf.String()
}

// shortID abbreviates a UUID-sized identifier for inline display.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "…"
}

// directionArrow renders a frame-log direction marker.
func directionArrow(dir framelog.Direction) string {
	if dir == framelog.DirectionSent {
		return sentColor.Sprint("↑ sent")
	}
	return recvColor.Sprint("↓ recv")
}
