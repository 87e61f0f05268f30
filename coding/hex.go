package coding

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DecodeHex decodes a hex string, tolerating an optional 0x prefix. Wallet keys and tx
// hashes arrive in both forms.
func DecodeHex(in string) ([]byte, error) {
	normalized := in
	if strings.HasPrefix(in, "0x") || strings.HasPrefix(in, "0X") {
		normalized = normalized[2:]
	}

	return hex.DecodeString(normalized)
}

// NormalizeBytesToHex renders bytes as lowercased, 0x prefixed hex.
func NormalizeBytesToHex(input []byte) string {
	return strings.ToLower("0x" + hex.EncodeToString(input))
}

// PayloadFingerprint pretty prints a hex payload in an identifiable and succint way.
func PayloadFingerprint(payload []byte) string {
	if len(payload) == 0 {
		return NormalizeMaybeEmptyBytes(payload)
	}
	if len(payload) <= 8 {
		return fmt.Sprintf("[%s]", hex.EncodeToString(payload))
	}

	return fmt.Sprintf("[%s...%s]", hex.EncodeToString(payload[0:4]), hex.EncodeToString(payload[len(payload)-4:]))
}

// NormalizeMaybeEmptyBytes returns a visible marker rather than no output for empty byte arrays.
func NormalizeMaybeEmptyBytes(bytes []byte) string {
	if len(bytes) > 0 {
		return hex.EncodeToString(bytes)
	}
	return "[]"
}
