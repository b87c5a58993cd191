package algorithm

import (
	"context"

	"enigmaCrackerBackend/internal/core/session"
)

// Hit is an accepted candidate. Code is the setting the machine must start
// from to turn the ciphertext into Plaintext.
type Hit struct {
	Code      string
	Plaintext string
}

// Searcher tries every candidate of one chunk on sess, which the caller owns
// exclusively. stop is polled before each candidate; once it reports true the
// search returns without a hit. attempts counts the candidates decrypted.
type Searcher interface {
	Search(ctx context.Context, sess *session.Session, chunk Chunk, stop func() bool) (hit *Hit, attempts int64, err error)
}
