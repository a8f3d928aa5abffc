package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"
)

// decodeText converts raw upload bytes to UTF-8 text. declared is an
// optional IANA charset name from the transport ("", "utf-8",
// "iso-8859-1", ...); empty means UTF-8.
func decodeText(raw []byte, declared string) (string, error) {
	name := strings.TrimSpace(strings.ToLower(declared))
	if name == "" || name == "utf-8" || name == "utf8" {
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("%w: input is not valid UTF-8", ErrUnsupportedEncoding)
		}
		return string(raw), nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, declared)
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: decoding %q: %v", ErrUnsupportedEncoding, declared, err)
	}
	return string(decoded), nil
}
