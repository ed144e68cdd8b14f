// Package config handles configuration loading for chat-probe.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable
// expansion. The file is optional: every value has a working default and
// the console can change the endpoint URLs at runtime.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from CHAT_PROBE_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/chat-probe/config.yaml
//  3. ~/.config/chat-probe/config.yaml
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	socket:
//	  url: "ws://${CHAT_HOST}:9901"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Endpoints:
//
//	auth:
//	  url: "http://localhost:3000"   # register/login/verify
//	socket:
//	  url: "ws://localhost:9901"     # realtime protocol
//
// Network timing (Go time.ParseDuration syntax):
//
//	timeouts:
//	  handshake: "10s"   # WebSocket opening handshake
//	  request: "10s"     # auth service HTTP calls
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Validation
//
// Load() validates that auth.url is http(s) and socket.url is ws(s), and
// that duration strings parse.
package config
