// Package competition arbitrates a race between independent searchers that
// work on the same ciphertext. The first accepted claim wins and every other
// participant is cancelled.
package competition

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"enigmaCrackerBackend/internal/core/domain"
	"enigmaCrackerBackend/internal/pkg/logging"
	"enigmaCrackerBackend/internal/port"
)

type Coordinator struct {
	mu           sync.Mutex
	winner       *domain.FoundEvent
	winnerName   string
	participants map[string]context.CancelFunc
	rejected     int
	logger       *zap.Logger
}

func NewCoordinator(logger *zap.Logger) *Coordinator {
	return &Coordinator{
		participants: make(map[string]context.CancelFunc),
		logger:       logging.OrNop(logger),
	}
}

// Join registers a participant. The returned context is cancelled as soon as
// another participant wins; the Notifier is the participant's way to claim.
// A participant joining after the race is decided starts cancelled.
func (c *Coordinator) Join(ctx context.Context, name string) (context.Context, port.Notifier) {
	pctx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	if old, ok := c.participants[name]; ok {
		old()
	}
	c.participants[name] = cancel
	decided := c.winner != nil && c.winnerName != name
	c.mu.Unlock()

	if decided {
		cancel()
	}
	return pctx, &participant{name: name, c: c}
}

// Leave releases the participant's context.
func (c *Coordinator) Leave(name string) {
	c.mu.Lock()
	cancel, ok := c.participants[name]
	delete(c.participants, name)
	c.mu.Unlock()
	if ok {
		cancel()
	}
}

// Winner returns the accepted event, if any.
func (c *Coordinator) Winner() (domain.FoundEvent, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.winner == nil {
		return domain.FoundEvent{}, "", false
	}
	return *c.winner, c.winnerName, true
}

// Rejected counts the claims refused because the race was already won.
func (c *Coordinator) Rejected() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rejected
}

func (c *Coordinator) claim(name string, event domain.FoundEvent) bool {
	c.mu.Lock()
	if c.winner != nil {
		c.rejected++
		c.mu.Unlock()
		c.logger.Debug("claim rejected", zap.String("participant", name), zap.String("winner", c.winnerName))
		return false
	}
	c.winner = &event
	c.winnerName = name
	var peers []context.CancelFunc
	for other, cancel := range c.participants {
		if other != name {
			peers = append(peers, cancel)
		}
	}
	c.mu.Unlock()

	for _, cancel := range peers {
		cancel()
	}
	c.logger.Info("competition won",
		zap.String("participant", name),
		zap.String("job", event.JobID),
		zap.String("code", event.Code),
	)
	return true
}

type participant struct {
	name string
	c    *Coordinator
}

func (p *participant) NotifyFound(ctx context.Context, event domain.FoundEvent) bool {
	if ctx.Err() != nil {
		return false
	}
	return p.c.claim(p.name, event)
}
