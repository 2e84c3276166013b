package token

import (
	"strings"
	"sync"
	"testing"
)

func TestRandom_InvalidLength(t *testing.T) {
	t.Parallel()

	if _, err := Random(0); err == nil {
		t.Fatalf("expected error for invalid length")
	}
}

func TestRandom_LengthAndAlphabet(t *testing.T) {
	t.Parallel()

	slug, err := Random(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slug) != 10 {
		t.Fatalf("expected slug length 10, got %d", len(slug))
	}

	for i := 0; i < len(slug); i++ {
		if strings.IndexByte(alphabet, slug[i]) == -1 {
			t.Fatalf("slug contains invalid character %q", slug[i])
		}
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	cases := map[uint64]string{
		0:  "0",
		61: "Z",
		62: "10",
	}
	for in, want := range cases {
		if got := Encode(in); got != want {
			t.Fatalf("Encode(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestUnique_ConcurrentCallsNeverCollide(t *testing.T) {
	t.Parallel()

	const workers, perWorker = 8, 200

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				tok, err := Unique()
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				mu.Lock()
				if _, dup := seen[tok]; dup {
					t.Errorf("duplicate token %s", tok)
				}
				seen[tok] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Fatalf("expected %d tokens, got %d", workers*perWorker, len(seen))
	}
}
