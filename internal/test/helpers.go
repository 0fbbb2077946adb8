package test

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// DecodeBase64String is a helper function for tests that decodes base64 strings. It doesn't
// return an error value, which makes it usable inline.
func DecodeBase64String(b64Data string) []byte {
	b64Data = strings.TrimSpace(b64Data)
	decoded, err := base64.StdEncoding.DecodeString(b64Data)
	if err != nil {
		panic(fmt.Sprintf("error decoding base64: %s", err))
	}
	return decoded
}
