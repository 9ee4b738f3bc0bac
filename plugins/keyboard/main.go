// Package main provides the keyboard injector for macOS.
// It presses game keys via AppleScript key codes.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
)

// Request is the injection request read from stdin.
type Request struct {
	Command string          `json:"command"`
	Key     string          `json:"key"`
	Action  string          `json:"action"`
	Profile string          `json:"profile"`
	Config  json.RawMessage `json:"config,omitempty"`
}

// Response is the result written to stdout.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// keyCodes maps named keys to macOS virtual key codes. Arrow keys and space
// have no keystroke character, so they go through "key code" instead.
var keyCodes = map[string]int{
	"left":  123,
	"right": 124,
	"down":  125,
	"up":    126,
	"space": 49,
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	switch req.Command {
	case "press":
		if err := pressKey(req.Key); err != nil {
			writeErrorResponse(fmt.Sprintf("press %q failed: %v", req.Key, err))
			return
		}
	default:
		writeErrorResponse(fmt.Sprintf("unknown command: %s", req.Command))
		return
	}

	writeSuccessResponse()
}

// pressKey synthesizes a single key press for the named key.
func pressKey(key string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}
	return runAppleScript(buildPressScript(key))
}

// buildPressScript generates the AppleScript for a key press. Named keys use
// their virtual key code; everything else is sent as a keystroke character.
func buildPressScript(key string) string {
	if code, ok := keyCodes[key]; ok {
		return fmt.Sprintf(`tell application "System Events" to key code %d`, code)
	}
	return fmt.Sprintf(`tell application "System Events" to keystroke "%s"`, key)
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	resp := Response{
		Success: false,
		Error:   errMsg,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	resp := Response{
		Success: true,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// runAppleScript executes an AppleScript command and returns any error.
func runAppleScript(script string) error {
	cmd := exec.Command("osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}
