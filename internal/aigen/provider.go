// Package aigen drafts pet descriptions, alert messages and testimonials
// with generative text models. Callers always get usable text back: when no
// provider answers, the manual-entry fallback is returned instead.
package aigen

import (
	"context"
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
)

var ErrNoProvider = errors.New("no AI provider available")

// Prompt is a text instruction with an optional inline image.
type Prompt struct {
	Text      string
	ImageMIME string
	ImageData []byte
}

func (p Prompt) HasImage() bool { return len(p.ImageData) > 0 && p.ImageMIME != "" }

type Provider interface {
	Name() string
	Generate(ctx context.Context, p Prompt) (string, error)
}

var dataURLPattern = regexp.MustCompile(`^data:(.*);base64,(.*)$`)

// ParseDataURL splits a base64 data URL into its MIME type and bytes.
func ParseDataURL(s string) (mime string, data []byte, ok bool) {
	m := dataURLPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", nil, false
	}
	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return "", nil, false
	}
	return m[1], data, true
}

func cleanText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
