package util

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptAES(t *testing.T) {
	key := "config-encryption-key"
	plain := []byte("uber-oauth-access-token-abc123")

	enc, err := EncryptAES(key, plain)
	if err != nil {
		t.Fatalf("EncryptAES: %v", err)
	}
	if bytes.Contains(enc, plain) {
		t.Error("ciphertext contains plaintext")
	}

	dec, err := DecryptAES(key, enc)
	if err != nil {
		t.Fatalf("DecryptAES: %v", err)
	}
	if !bytes.Equal(dec, plain) {
		t.Errorf("roundtrip = %q, want %q", dec, plain)
	}
}

func TestDecryptAESWrongKey(t *testing.T) {
	enc, err := EncryptAES("right-key", []byte("secret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecryptAES("wrong-key", enc); err == nil {
		t.Error("decrypt with wrong key succeeded, want error")
	}
}

func TestDecryptAESTruncated(t *testing.T) {
	if _, err := DecryptAES("key", []byte{1, 2, 3}); err == nil {
		t.Error("decrypt of truncated input succeeded, want error")
	}
}

func TestEncryptAESRandomNonce(t *testing.T) {
	key := "key"
	a, _ := EncryptAES(key, []byte("same input"))
	b, _ := EncryptAES(key, []byte("same input"))
	if bytes.Equal(a, b) {
		t.Error("two encryptions of same input are identical, nonce not random")
	}
}

func TestTokenRoundtrip(t *testing.T) {
	key := "credential-key"
	token := "shipt-refresh-token-xyz"

	enc, err := EncryptToken(key, token)
	if err != nil {
		t.Fatalf("EncryptToken: %v", err)
	}
	if enc == token {
		t.Error("token stored in plaintext")
	}

	dec, err := DecryptToken(key, enc)
	if err != nil {
		t.Fatalf("DecryptToken: %v", err)
	}
	if dec != token {
		t.Errorf("roundtrip = %q, want %q", dec, token)
	}
}

func TestTokenEmpty(t *testing.T) {
	enc, err := EncryptToken("key", "")
	if err != nil || enc != "" {
		t.Errorf("EncryptToken(\"\") = (%q, %v), want (\"\", nil)", enc, err)
	}
	dec, err := DecryptToken("key", "")
	if err != nil || dec != "" {
		t.Errorf("DecryptToken(\"\") = (%q, %v), want (\"\", nil)", dec, err)
	}
}
