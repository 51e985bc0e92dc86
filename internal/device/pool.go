package device

import "sync"

// Pool tracks the connected pads and which of them are bound to a
// session. It replaces the old process-wide client registry: the session
// manager owns the pool and is the only authority binding pads.
type Pool struct {
	mu      sync.Mutex
	clients []*Client
	busy    map[*Client]bool
}

// NewPool returns an empty pad pool.
func NewPool() *Pool {
	return &Pool{
		busy: make(map[*Client]bool),
	}
}

// Add registers a newly discovered pad as available.
func (p *Pool) Add(c *Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clients = append(p.clients, c)
}

// Remove drops a pad from the pool entirely (disconnect/shutdown).
func (p *Pool) Remove(c *Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, existing := range p.clients {
		if existing == c {
			p.clients = append(p.clients[:i], p.clients[i+1:]...)
			break
		}
	}
	delete(p.busy, c)
}

// Acquire marks n available pads as busy and returns them. ok is false
// when fewer than n pads are available; nothing is acquired in that case.
func (p *Pool) Acquire(n int) ([]*Client, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	free := make([]*Client, 0, n)
	for _, c := range p.clients {
		if !p.busy[c] {
			free = append(free, c)
			if len(free) == n {
				break
			}
		}
	}
	if len(free) < n {
		return nil, false
	}
	for _, c := range free {
		p.busy[c] = true
	}
	return free, true
}

// Release returns pads to the available set.
func (p *Pool) Release(clients ...*Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range clients {
		delete(p.busy, c)
	}
}

// Available counts pads not currently bound to a session.
func (p *Pool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.clients {
		if !p.busy[c] {
			n++
		}
	}
	return n
}

// Size counts all connected pads, busy or not.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.clients)
}
