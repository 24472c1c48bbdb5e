package kayako

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
)

// RandomSource yields the 16-bit values used as request salts.
type RandomSource interface {
	Uint16() uint16
}

// EntropySource is the process-wide RandomSource. It is a ChaCha8 generator
// seeded from the operating system; Seed may be called again to reseed.
// Safe for concurrent use.
type EntropySource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewEntropySource returns an unseeded source. It seeds itself on first use
// if Seed was never called.
func NewEntropySource() *EntropySource {
	return &EntropySource{}
}

// Seed reseeds the generator from crypto/rand.
func (e *EntropySource) Seed() error {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return fmt.Errorf("seed random source: %w", err)
	}
	e.mu.Lock()
	e.rng = rand.New(rand.NewChaCha8(seed))
	e.mu.Unlock()
	return nil
}

// Uint16 returns a uniformly distributed value in [0, 65535].
func (e *EntropySource) Uint16() uint16 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rng == nil {
		var seed [32]byte
		_, _ = crand.Read(seed[:])
		e.rng = rand.New(rand.NewChaCha8(seed))
	}
	return uint16(e.rng.UintN(1 << 16))
}

// GenerateSignature draws a salt from src and signs it with secret.
// The salt is the decimal text of the drawn value; the signature is the
// standard Base64 encoding of HMAC-SHA256(secret, salt).
func GenerateSignature(secret string, src RandomSource) (salt, signature []byte) {
	salt = []byte(strconv.FormatUint(uint64(src.Uint16()), 10))
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(salt)
	digest := mac.Sum(nil)

	signature = make([]byte, base64.StdEncoding.EncodedLen(len(digest)))
	base64.StdEncoding.Encode(signature, digest)
	return salt, signature
}
