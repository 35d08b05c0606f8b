package viewer

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/browser"
)

const (
	// LivePrefix opens the markup in the mermaid.live editor.
	LivePrefix = "https://mermaid.live/edit#pako:"
	// InkPrefix renders the markup as an image on mermaid.ink.
	InkPrefix = "https://mermaid.ink/img/pako:"
)

// editorState is the document the mermaid.live editor keeps in its URL.
type editorState struct {
	Code          string `json:"code"`
	Mermaid       string `json:"mermaid"`
	AutoSync      bool   `json:"autoSync"`
	UpdateDiagram bool   `json:"updateDiagram"`
}

// LiveURL returns a mermaid.live editor link carrying markup.
func LiveURL(markup string) (string, error) {
	payload, err := Encode(markup)
	if err != nil {
		return "", err
	}
	return LivePrefix + payload, nil
}

// InkURL returns a mermaid.ink image link carrying markup.
func InkURL(markup string) (string, error) {
	payload, err := Encode(markup)
	if err != nil {
		return "", err
	}
	return InkPrefix + payload, nil
}

// Encode produces the pako payload understood by both services: the editor
// state as JSON, zlib-deflated and base64url-encoded without padding.
func Encode(markup string) (string, error) {
	state, err := json.Marshal(editorState{
		Code:          markup,
		Mermaid:       `{"theme":"default"}`,
		AutoSync:      true,
		UpdateDiagram: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode editor state: %w", err)
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", fmt.Errorf("failed to create deflate writer: %w", err)
	}
	if _, err := zw.Write(state); err != nil {
		return "", fmt.Errorf("failed to deflate editor state: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to deflate editor state: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode reverses Encode and returns the markup it carries.
func Decode(payload string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("invalid pako payload: %w", err)
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("invalid pako payload: %w", err)
	}
	defer zr.Close()

	var state editorState
	if err := json.NewDecoder(zr).Decode(&state); err != nil {
		return "", fmt.Errorf("invalid editor state: %w", err)
	}
	return state.Code, nil
}

// Opener opens a URL for the user.
type Opener func(url string) error

// BrowserOpener opens URLs in the system browser.
func BrowserOpener() Opener {
	return browser.OpenURL
}
