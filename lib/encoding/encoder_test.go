package encoding

import (
	"errors"
	"strings"
	"testing"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

type testProps struct {
	UID   string
	Count int
}

func TestSignedRoundTrip(t *testing.T) {
	enc, err := NewEncoder(testKey)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}

	in := testProps{UID: "4", Count: 7}
	encoded, err := enc.Encode(in, false)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(encoded, ".") {
		t.Errorf("signed encoding missing signature separator: %q", encoded)
	}

	var out testProps
	if err := enc.Decode(encoded, false, &out); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestSignedTamperDetected(t *testing.T) {
	enc, err := NewEncoder(testKey)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	encoded, err := enc.Encode(testProps{UID: "4"}, false)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	tampered := "A" + encoded[1:]
	var out testProps
	err = enc.Decode(tampered, false, &out)
	if !errors.Is(err, ErrSignatureInvalid) && !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Decode(tampered) = %v, want signature or format error", err)
	}
}

func TestSignedMissingSignature(t *testing.T) {
	enc, err := NewEncoder(testKey)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}

	var out testProps
	if err := enc.Decode("no-separator-here", false, &out); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Decode() = %v, want ErrInvalidFormat", err)
	}
}

func TestEncryptedRoundTrip(t *testing.T) {
	enc, err := NewEncoder(testKey)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}

	in := testProps{UID: "7", Count: 1}
	encoded, err := enc.Encode(in, true)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if strings.Contains(encoded, "7") && strings.Contains(encoded, ".") {
		t.Errorf("encrypted encoding looks signed: %q", encoded)
	}

	var out testProps
	if err := enc.Decode(encoded, true, &out); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestEncryptedWrongKey(t *testing.T) {
	enc, err := NewEncoder(testKey)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	other, err := NewEncoder([]byte("a completely different key......."))
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}

	encoded, err := enc.Encode(testProps{UID: "7"}, true)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var out testProps
	if err := other.Decode(encoded, true, &out); !errors.Is(err, ErrDecryptFailed) {
		t.Errorf("Decode() with wrong key = %v, want ErrDecryptFailed", err)
	}
}

func TestShortKeyDerived(t *testing.T) {
	enc, err := NewEncoder([]byte("short"))
	if err != nil {
		t.Fatalf("NewEncoder(short key) error = %v", err)
	}

	in := testProps{UID: "1"}
	encoded, err := enc.Encode(in, true)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	var out testProps
	if err := enc.Decode(encoded, true, &out); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}
