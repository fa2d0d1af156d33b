package sec

import (
	"bytes"
	"testing"
	"time"
)

func TestHS256TokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	signed, err := GenerateHS256SignedJWT(secret, "invoicegen", "form-app", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	parsed, err := ParseHS256SignedToken(signed, secret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("expected valid token")
	}
	claims, err := GetClaimsFromParsedJWTToken(parsed)
	if err != nil {
		t.Fatalf("claims: %v", err)
	}
	if claims["sub"] != "form-app" {
		t.Fatalf("expected sub form-app, got %v", claims["sub"])
	}
}

func TestHS256TokenWrongSecret(t *testing.T) {
	signed, err := GenerateHS256SignedJWT([]byte("right"), "invoicegen", "form-app", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err = ParseHS256SignedToken(signed, []byte("wrong")); err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}

func TestHS256TokenExpired(t *testing.T) {
	secret := []byte("test-secret")
	signed, err := GenerateHS256SignedJWT(secret, "invoicegen", "form-app", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err = ParseHS256SignedToken(signed, secret); err == nil {
		t.Fatal("expected expired token to fail verification")
	}
}

func TestOpaqueToken(t *testing.T) {
	a, err := GenerateOpaqueToken(32)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := GenerateOpaqueToken(32)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if a == b {
		t.Fatal("two opaque tokens should not collide")
	}
}

func TestHashHexSHA256(t *testing.T) {
	// known vector for the empty string
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := HashHexSHA256(""); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestCipherRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{7}, 32)
	c, err := NewXChaCha20Poly1305Cipher(key)
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	plaintext := []byte("%PDF-1.3 sealed payload")
	sealed, err := c.EncryptEncode(plaintext)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	opened, err := c.DecodeDecrypt(sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Fatalf("expected %q, got %q", plaintext, opened)
	}
}

func TestCipherRejectsTampering(t *testing.T) {
	key := bytes.Repeat([]byte{7}, 32)
	c, err := NewXChaCha20Poly1305Cipher(key)
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	sealed, err := c.EncryptEncode([]byte("payload"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	flipped := byte('A')
	if sealed[0] == flipped {
		flipped = 'B'
	}
	tampered := string(flipped) + sealed[1:]
	if _, err = c.DecodeDecrypt(tampered); err == nil {
		t.Fatal("expected tampered ciphertext to fail")
	}
}

func TestCipherRejectsShortKey(t *testing.T) {
	if _, err := NewXChaCha20Poly1305Cipher([]byte("short")); err == nil {
		t.Fatal("expected short key to be rejected")
	}
}
