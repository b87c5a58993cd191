package concurrency

import "sync"

// FoundFlag is the one piece of state shared by the workers of a crack job.
// Workers poll IsSet between candidates; the first to Claim it wins.
type FoundFlag struct {
	mu       sync.Mutex
	set      bool
	accepted bool
}

func (f *FoundFlag) IsSet() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set
}

// Claim sets the flag and reports whether the caller won. notify runs under
// the lock, at most once per flag, and may veto the win (a peer outside this
// job got there first). The flag stays set either way so local workers stop.
func (f *FoundFlag) Claim(notify func() bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.set {
		return false
	}
	f.set = true
	f.accepted = notify == nil || notify()
	return f.accepted
}

// Stop sets the flag without a winner.
func (f *FoundFlag) Stop() {
	f.mu.Lock()
	f.set = true
	f.mu.Unlock()
}

// Won reports whether a claim was made and accepted.
func (f *FoundFlag) Won() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accepted
}
