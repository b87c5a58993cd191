package algorithm

import (
	"context"

	"enigmaCrackerBackend/internal/core/session"
)

// BruteForce decrypts the ciphertext under every candidate of a chunk and
// scores the result.
type BruteForce struct {
	keyspace   *Keyspace
	scorer     *Scorer
	ciphertext string
}

func NewBruteForce(keyspace *Keyspace, scorer *Scorer, ciphertext string) *BruteForce {
	return &BruteForce{keyspace: keyspace, scorer: scorer, ciphertext: ciphertext}
}

func (b *BruteForce) Keyspace() *Keyspace {
	return b.keyspace
}

func (b *BruteForce) Search(ctx context.Context, sess *session.Session, chunk Chunk, stop func() bool) (*Hit, int64, error) {
	var (
		hit       *Hit
		attempts  int64
		searchErr error
		lastSet   []int
		lastRefl  = -1
	)

	b.keyspace.Walk(chunk, func(_ int64, c *Candidate) bool {
		if stop() || ctx.Err() != nil {
			return false
		}

		if lastRefl != c.Reflector || !sameIDs(lastSet, c.RotorIDs) {
			searchErr = sess.SetRotors(c.RotorIDs, c.Positions, c.Reflector)
			lastSet, lastRefl = c.RotorIDs, c.Reflector
		} else {
			searchErr = sess.SetPositions(c.Positions)
		}
		if searchErr != nil {
			return false
		}

		plain, err := sess.Encrypt(b.ciphertext)
		if err != nil {
			searchErr = err
			return false
		}
		attempts++

		if b.scorer.Accept(plain) {
			hit = &Hit{Code: sess.InitialCode(), Plaintext: plain}
			return false
		}
		return true
	})

	return hit, attempts, searchErr
}

func sameIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
