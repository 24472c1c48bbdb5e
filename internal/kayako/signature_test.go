package kayako

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"testing"
)

// sequenceSource returns the given values in order, then repeats the last one.
type sequenceSource struct {
	values []uint16
	next   int
}

func (s *sequenceSource) Uint16() uint16 {
	v := s.values[s.next]
	if s.next < len(s.values)-1 {
		s.next++
	}
	return v
}

func TestGenerateSignatureKnownSalt(t *testing.T) {
	salt, signature := GenerateSignature("s3cret", &sequenceSource{values: []uint16{4242}})

	if string(salt) != "4242" {
		t.Fatalf("salt = %q, want 4242", salt)
	}

	mac := hmac.New(sha256.New, []byte("s3cret"))
	mac.Write([]byte("4242"))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	if string(signature) != want {
		t.Errorf("signature = %q, want %q", signature, want)
	}
}

func TestGenerateSignatureBounds(t *testing.T) {
	for _, v := range []uint16{0, 1, 65535} {
		salt, signature := GenerateSignature("key", &sequenceSource{values: []uint16{v}})
		n, err := strconv.ParseUint(string(salt), 10, 16)
		if err != nil || n != uint64(v) {
			t.Errorf("salt %q does not round-trip %d: %v", salt, v, err)
		}
		digest, err := base64.StdEncoding.DecodeString(string(signature))
		if err != nil {
			t.Errorf("signature %q is not standard base64: %v", signature, err)
		}
		if len(digest) != sha256.Size {
			t.Errorf("digest length = %d, want %d", len(digest), sha256.Size)
		}
	}
}

func TestEntropySourceProducesSalts(t *testing.T) {
	src := NewEntropySource()
	if err := src.Seed(); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	for i := 0; i < 1000; i++ {
		salt, signature := GenerateSignature("key", src)
		if _, err := strconv.ParseUint(string(salt), 10, 16); err != nil {
			t.Fatalf("salt %q out of range: %v", salt, err)
		}
		if _, err := base64.StdEncoding.DecodeString(string(signature)); err != nil {
			t.Fatalf("signature %q not base64: %v", signature, err)
		}
	}
}

func TestEntropySourceSeedsLazily(t *testing.T) {
	src := NewEntropySource()
	_ = src.Uint16()
	if src.rng == nil {
		t.Fatal("expected generator to be seeded on first use")
	}
}
