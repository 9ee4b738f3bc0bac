// Package plugin provides discovery and execution of key injection backends.
// Injectors are external executables speaking JSON over stdin/stdout, so the
// OS-specific key synthesis stays out of the main process.
package plugin

import "encoding/json"

// Manifest describes an injector plugin's metadata and capabilities.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Commands     []string        `json:"commands"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Request is sent to an injector for a single key press. Key is the abstract
// key identifier from the active profile ("left", "space", "w"); Action and
// Profile are informational context for logging on the plugin side.
type Request struct {
	Command string          `json:"command"`
	Key     string          `json:"key"`
	Action  string          `json:"action"`
	Profile string          `json:"profile"`
	Config  json.RawMessage `json:"config,omitempty"`
}

// CommandPress is the only command the stock injectors implement.
const CommandPress = "press"

// Response represents the result of an injector execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered injector with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}
