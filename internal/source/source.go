// Package source models the external generative text source as a function
// from request text to raw response text. Implementations may fail or return
// malformed content; nothing here interprets the response.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmptyResponse means the source returned no usable text at all.
var ErrEmptyResponse = errors.New("generative source returned an empty response")

// Source produces raw text for a generation request.
type Source interface {
	Generate(ctx context.Context, request string) (string, error)
}

// Func adapts an ordinary function to the Source interface.
type Func func(ctx context.Context, request string) (string, error)

// Generate calls f.
func (f Func) Generate(ctx context.Context, request string) (string, error) {
	return f(ctx, request)
}

// CheckResponse returns ErrEmptyResponse when raw holds nothing but whitespace.
func CheckResponse(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrEmptyResponse
	}
	return nil
}

// File serves a previously saved response, ignoring the request.
type File struct {
	Path string
}

// Generate returns the file's contents.
func (f File) Generate(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("reading saved response %s: %w", f.Path, err)
	}
	return string(data), nil
}
