package dataurl

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode_PNG(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	data, mediaType, err := Decode(uri)
	require.NoError(t, err)
	require.Equal(t, raw, data)
	require.Equal(t, "image/png", mediaType)
}

func TestDecode_EmptyPayload(t *testing.T) {
	data, mediaType, err := Decode("data:image/png;base64,")
	require.NoError(t, err)
	require.Empty(t, data)
	require.Equal(t, "image/png", mediaType)
}

func TestDecode_NotADataURL(t *testing.T) {
	tests := []string{
		"https://example.com/a.png",
		"data:image/png,plain",
		"data:image/png;base64",
		"",
	}
	for _, s := range tests {
		_, _, err := Decode(s)
		require.ErrorIs(t, err, ErrNotDataURL, "input %q", s)
	}
}

func TestDecode_InvalidBase64(t *testing.T) {
	_, _, err := Decode("data:image/png;base64,@@@@")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotDataURL)
}
