package token

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync/atomic"
	"time"
)

// 62 characters: 0-9, a-z, A-Z
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// SuffixLength is the number of random characters appended by Unique.
const SuffixLength = 6

var counter atomic.Uint64

// Random returns n characters drawn uniformly from the Base62 alphabet
// using crypto/rand.
func Random(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("invalid token length: %d", n)
	}

	limit := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("reading random index: %w", err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}

// Encode converts a number into its Base62 representation.
func Encode(n uint64) string {
	if n == 0 {
		return string(alphabet[0])
	}

	base := uint64(len(alphabet))
	var buf [11]byte // 62^11 > 2^64
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = alphabet[n%base]
		n /= base
	}
	return string(buf[i:])
}

// Unique returns a token that is unique within the process and very unlikely
// to collide across processes: Base62 nanoseconds, a process-wide sequence
// number and a random suffix. Safe for concurrent use.
func Unique() (string, error) {
	suffix, err := Random(SuffixLength)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(Encode(uint64(time.Now().UnixNano())))
	b.WriteString(Encode(counter.Add(1)))
	b.WriteString(suffix)
	return b.String(), nil
}
