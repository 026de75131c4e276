// Package dataurl decodes base64 data URIs of the form
// "data:image/png;base64,....." into raw bytes.
package dataurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrNotDataURL = errors.New("not a base64 data url")

// Decode parses a base64-encoded data URI and returns the decoded bytes and
// the declared media type (e.g. "image/png"). The bytes are returned exactly
// as encoded; no image decoding is performed.
func Decode(s string) ([]byte, string, error) {
	if !strings.HasPrefix(s, "data:") {
		return nil, "", ErrNotDataURL
	}

	rest := s[len("data:"):]
	sep := strings.Index(rest, ",")
	if sep < 0 {
		return nil, "", ErrNotDataURL
	}

	meta, payload := rest[:sep], rest[sep+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, "", ErrNotDataURL
	}
	mediaType := strings.TrimSuffix(meta, ";base64")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode base64: %w", err)
	}

	return data, mediaType, nil
}
