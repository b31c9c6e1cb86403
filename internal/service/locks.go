package service

import "sync"

// projectLocks serializes mutations per project id. Two concurrent
// transitions racing on the same project would otherwise both read the same
// from-status and both apply, breaking the single-transition invariant.
type projectLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newProjectLocks() *projectLocks {
	return &projectLocks{locks: make(map[string]*sync.Mutex)}
}

func (p *projectLocks) lock(projectID string) func() {
	p.mu.Lock()
	l, ok := p.locks[projectID]
	if !ok {
		l = &sync.Mutex{}
		p.locks[projectID] = l
	}
	p.mu.Unlock()

	l.Lock()
	return l.Unlock
}
