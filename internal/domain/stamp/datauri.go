package stamp

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// DecodeDataURI splits a data URI into its media type and payload.
func DecodeDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(strings.ToLower(uri), "data:") {
		return "", nil, fmt.Errorf("%w: not a data uri", ErrUnsupportedFormat)
	}
	i := strings.IndexByte(uri, ',')
	if i < 0 {
		return "", nil, fmt.Errorf("%w: data uri without payload", ErrDecode)
	}
	meta, payload := uri[len("data:"):i], uri[i+1:]

	params := strings.Split(meta, ";")
	mediaType := strings.ToLower(strings.TrimSpace(params[0]))
	isBase64 := false
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}

	if !isBase64 {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return mediaType, []byte(s), nil
	}

	payload = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
			return -1
		}
		return r
	}, payload)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	}
	return mediaType, data, nil
}
