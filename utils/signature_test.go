package utils

import "testing"

func TestSignUploadAuthIsDeterministic(t *testing.T) {
	sig1 := SignUploadAuth("private_key_test", "token-1", 1700000000)
	sig2 := SignUploadAuth("private_key_test", "token-1", 1700000000)
	if sig1 != sig2 {
		t.Errorf("same inputs must produce the same signature: %q vs %q", sig1, sig2)
	}
	if len(sig1) != 40 {
		t.Errorf("HMAC-SHA1 hex signature must be 40 chars, got %d", len(sig1))
	}
}

func TestSignUploadAuthVariesWithInputs(t *testing.T) {
	base := SignUploadAuth("private_key_test", "token-1", 1700000000)

	if got := SignUploadAuth("other_key", "token-1", 1700000000); got == base {
		t.Errorf("different keys must produce different signatures")
	}
	if got := SignUploadAuth("private_key_test", "token-2", 1700000000); got == base {
		t.Errorf("different tokens must produce different signatures")
	}
	if got := SignUploadAuth("private_key_test", "token-1", 1700000001); got == base {
		t.Errorf("different expiries must produce different signatures")
	}
}

func TestSecureCompare(t *testing.T) {
	if !SecureCompare("abc", "abc") {
		t.Errorf("equal strings must compare true")
	}
	if SecureCompare("abc", "abd") {
		t.Errorf("different strings must compare false")
	}
	if SecureCompare("abc", "abcd") {
		t.Errorf("different lengths must compare false")
	}
}
