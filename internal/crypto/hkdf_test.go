package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex fixture: %v", err)
	}
	return b
}

// RFC 5869 test case 1 (SHA-256). DeriveKey produces a single expand block,
// which for lengths up to 32 bytes is exactly the prefix of the full OKM.
func TestDeriveKey_RFC5869(t *testing.T) {
	ikm := bytes.Repeat([]byte{0x0b}, 22)
	salt := mustHex(t, "000102030405060708090a0b0c")
	info := mustHex(t, "f0f1f2f3f4f5f6f7f8f9")

	tests := []struct {
		name   string
		length int
		want   string
	}{
		{"full block", 32, "3cb25f25faacd57a90434f64d0362f2a2d2d0a90cf1a5a4c5db02d56ecc4c5bf"},
		{"truncated", 16, "3cb25f25faacd57a90434f64d0362f2a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveKey(ikm, salt, info, tt.length)
			if err != nil {
				t.Fatalf("DeriveKey() error = %v", err)
			}
			if !bytes.Equal(got, mustHex(t, tt.want)) {
				t.Errorf("DeriveKey() = %x, want %s", got, tt.want)
			}
		})
	}
}

func TestDeriveKey_EmptySaltUsesZeros(t *testing.T) {
	ikm := bytes.Repeat([]byte{0x0b}, 22)
	info := mustHex(t, "f0f1f2f3f4f5f6f7f8f9")
	want := mustHex(t, "abbafb13f5c1bc489d4203135817956dd521b39e3bd61d1cc85cef884d1f8e2e")

	for _, salt := range [][]byte{nil, {}} {
		got, err := DeriveKey(ikm, salt, info, 32)
		if err != nil {
			t.Fatalf("DeriveKey() error = %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("DeriveKey() = %x, want %x", got, want)
		}
	}
}

// The single-block shortcut is only valid while no caller asks for more than
// one hash block. This test pins that boundary: a request for 33 bytes must
// be rejected, not silently truncated.
func TestDeriveKey_SingleBlockLimit(t *testing.T) {
	_, err := DeriveKey([]byte("secret"), nil, []byte("info"), 33)
	if !errors.Is(err, ErrDeriveLength) {
		t.Fatalf("DeriveKey(33) error = %v, want ErrDeriveLength", err)
	}

	if _, err := DeriveKey([]byte("secret"), nil, []byte("info"), 32); err != nil {
		t.Fatalf("DeriveKey(32) error = %v", err)
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	a, err := DeriveKey([]byte("secret"), []byte("salt"), []byte("info"), 32)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	b, err := DeriveKey([]byte("secret"), []byte("salt"), []byte("info"), 32)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical inputs produced different output")
	}
}
