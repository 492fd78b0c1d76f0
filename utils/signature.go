package utils

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
)

// SignUploadAuth computes the signature for direct client-to-store uploads.
// The media CDN expects HMAC-SHA1 over token+expire, hex encoded, keyed with
// the account private key.
func SignUploadAuth(privateKey, token string, expire int64) string {
	h := hmac.New(sha1.New, []byte(privateKey))
	h.Write([]byte(token + strconv.FormatInt(expire, 10)))
	return hex.EncodeToString(h.Sum(nil))
}

// SecureCompare performs constant-time string comparison to prevent timing
// attacks. This MUST be used when comparing signatures.
//
// Returns true if both strings are equal, false otherwise.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
