package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"pagefind/internal/domain"
	"pagefind/internal/eventbus"
)

// Relay forwards messages to the program in the order they were posted.
// Posting never blocks: messages queue up while send is busy, so the host
// worker can keep running while the UI loop is itself waiting on the host.
type Relay struct {
	send func(tea.Msg)

	mu      sync.Mutex
	cond    *sync.Cond
	pending []tea.Msg
	closed  bool
	done    chan struct{}
}

// NewRelay starts delivering posted messages through send, usually tea.Program.Send
func NewRelay(send func(tea.Msg)) *Relay {
	r := &Relay{
		send: send,
		done: make(chan struct{}),
	}
	r.cond = sync.NewCond(&r.mu)
	go r.run()
	return r
}

// Post queues msg for delivery. Messages posted after Close are dropped.
func (r *Relay) Post(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.pending = append(r.pending, msg)
	r.cond.Signal()
}

// FindListener has the findhost.FindListener signature
func (r *Relay) FindListener(result domain.FindResult) {
	r.Post(FindResultMsg{Result: result})
}

// EventHandler has the eventbus.EventHandler signature
func (r *Relay) EventHandler(e eventbus.DomainEvent) {
	r.Post(EventMsg{Event: e})
}

// Close drops undelivered messages and waits for an in-flight send to return
func (r *Relay) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		r.pending = nil
		r.cond.Broadcast()
	}
	r.mu.Unlock()
	<-r.done
}

func (r *Relay) run() {
	defer close(r.done)
	for {
		r.mu.Lock()
		for len(r.pending) == 0 && !r.closed {
			r.cond.Wait()
		}
		if r.closed {
			r.mu.Unlock()
			return
		}
		msg := r.pending[0]
		r.pending[0] = nil
		r.pending = r.pending[1:]
		r.mu.Unlock()

		r.send(msg)
	}
}
