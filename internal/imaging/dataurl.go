package imaging

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// defaultMIME is assumed when a data URL does not name a media type.
const defaultMIME = "image/jpeg"

// EncodeDataURL wraps raw image bytes into a base64 data URL.
func EncodeDataURL(data []byte, mime string) string {
	if mime == "" {
		mime = defaultMIME
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL unpacks a base64 data URL into raw bytes and a media type.
func DecodeDataURL(url string) (data []byte, mime string, err error) {
	header, payload, ok := strings.Cut(url, ",")
	if !ok || !strings.HasPrefix(header, "data:") {
		return nil, "", fmt.Errorf("not a data url")
	}

	mime = defaultMIME
	meta := strings.TrimPrefix(header, "data:")
	if m, _, found := strings.Cut(meta, ";"); found && m != "" {
		mime = m
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode data url payload: %w", err)
	}
	return data, mime, nil
}
