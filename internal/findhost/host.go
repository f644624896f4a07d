// Package findhost exposes a MatchCycler through an asynchronous API. All
// requests are queued to a single worker, so the cycler only ever sees one
// call at a time and listeners observe results in call order.
package findhost

import (
	"context"
	"log"
	"sync"

	"pagefind/internal/cycler"
	"pagefind/internal/domain"
	"pagefind/internal/eventbus"
)

// Host owns one find session and the worker that drives it
type Host struct {
	cycler *cycler.MatchCycler
	bus    eventbus.EventBus

	listenerMu sync.RWMutex
	listener   FindListener

	mu     sync.RWMutex // guards closed and sends on requests
	closed bool

	requests  chan request
	done      chan struct{}
	closeOnce sync.Once
}

// New starts a host with an empty document. bus may be nil.
func New(opts Options, bus eventbus.EventBus) *Host {
	size := opts.QueueSize
	if size <= 0 {
		size = DefaultQueueSize
	}

	h := &Host{
		cycler:   cycler.New(&domain.Document{}, opts.Matcher),
		bus:      bus,
		requests: make(chan request, size),
		done:     make(chan struct{}),
	}
	go h.run()
	return h
}

// SetFindListener replaces the result listener; nil removes it
func (h *Host) SetFindListener(l FindListener) {
	h.listenerMu.Lock()
	defer h.listenerMu.Unlock()
	h.listener = l
}

// FindAllAsync queues a find-all for query
func (h *Host) FindAllAsync(query string) error {
	return h.submit(request{kind: requestFindAll, query: query})
}

// FindNextAsync queues a cursor move
func (h *Host) FindNextAsync(forward bool) error {
	return h.submit(request{kind: requestFindNext, forward: forward})
}

// ClearMatchesAsync queues a session reset
func (h *Host) ClearMatchesAsync() error {
	return h.submit(request{kind: requestClear})
}

// LoadDocumentAsync queues a document swap, which also clears matches
func (h *Host) LoadDocumentAsync(doc *domain.Document) error {
	return h.submit(request{kind: requestLoad, doc: doc})
}

// FindAll runs a find-all and waits for the match count
func (h *Host) FindAll(ctx context.Context, query string) (int, error) {
	r, err := h.call(ctx, request{kind: requestFindAll, query: query})
	if err != nil {
		return 0, err
	}
	return r.result.Count, nil
}

// FindNext moves the cursor and waits for the new 0-based index
func (h *Host) FindNext(ctx context.Context, forward bool) (int, error) {
	r, err := h.call(ctx, request{kind: requestFindNext, forward: forward})
	if err != nil {
		return 0, err
	}
	return r.index, nil
}

// ClearMatches resets the session and waits for it to take effect
func (h *Host) ClearMatches(ctx context.Context) error {
	_, err := h.call(ctx, request{kind: requestClear})
	return err
}

// LoadDocument swaps the document and waits for it to take effect
func (h *Host) LoadDocument(ctx context.Context, doc *domain.Document) error {
	_, err := h.call(ctx, request{kind: requestLoad, doc: doc})
	return err
}

// Snapshot returns the session state after all previously queued requests
func (h *Host) Snapshot(ctx context.Context) (domain.FindResult, error) {
	r, err := h.call(ctx, request{kind: requestSnapshot})
	if err != nil {
		return domain.FindResult{}, err
	}
	return r.result, nil
}

// Close drains queued requests and stops the worker. Safe to call more than once.
func (h *Host) Close() {
	h.closeOnce.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.requests)
		h.mu.Unlock()
	})
	<-h.done
}

func (h *Host) submit(req request) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return ErrClosed
	}
	h.requests <- req
	return nil
}

// call waits for the reply; a cancelled ctx abandons the wait, not the request
func (h *Host) call(ctx context.Context, req request) (reply, error) {
	req.reply = make(chan reply, 1)
	if err := h.submit(req); err != nil {
		return reply{}, err
	}
	select {
	case r := <-req.reply:
		return r, nil
	case <-ctx.Done():
		return reply{}, ctx.Err()
	}
}

func (h *Host) run() {
	defer close(h.done)
	for req := range h.requests {
		h.handle(req)
	}
	log.Printf("Find host stopped")
}

func (h *Host) handle(req request) {
	var r reply
	notify := true

	switch req.kind {
	case requestFindAll:
		h.publish(eventbus.FindStartedEvent{Query: req.query})
		h.cycler.FindAll(req.query)
		r.result = h.cycler.Result()
		if err := h.cycler.LastError(); err != nil {
			h.publish(eventbus.ErrorEvent{Message: "find failed", Err: err})
		}
		h.publish(eventbus.FindCompletedEvent{Result: r.result})

	case requestFindNext:
		old, hadCursor := h.cycler.Active()
		r.index = h.cycler.FindNext(req.forward)
		r.result = h.cycler.Result()
		r.result.Wrapped = hadCursor && r.result.Count > 0 &&
			((req.forward && r.index <= old) || (!req.forward && r.index >= old))
		h.publish(eventbus.FindNavigatedEvent{Forward: req.forward, OldIndex: old, Result: r.result})

	case requestClear:
		h.cycler.ClearMatches()
		r.result = h.cycler.Result()
		h.publish(eventbus.MatchesClearedEvent{})

	case requestLoad:
		doc := req.doc
		if doc == nil {
			doc = &domain.Document{}
		}
		h.cycler.SetDocument(doc)
		r.result = h.cycler.Result()
		log.Printf("Loaded document %q (%d bytes)", doc.Name, doc.Len())
		h.publish(eventbus.DocumentLoadedEvent{Name: doc.Name, Size: doc.Len()})
		h.publish(eventbus.MatchesClearedEvent{})

	case requestSnapshot:
		r.result = h.cycler.Result()
		notify = false

	default:
		log.Printf("Find host: ignoring unknown request %v", req.kind)
		notify = false
	}

	if notify {
		h.notify(r.result)
	}
	if req.reply != nil {
		req.reply <- r
	}
}

func (h *Host) notify(result domain.FindResult) {
	h.listenerMu.RLock()
	l := h.listener
	h.listenerMu.RUnlock()
	if l != nil {
		l(result)
	}
}

func (h *Host) publish(e eventbus.DomainEvent) {
	if h.bus != nil {
		h.bus.Publish(e)
	}
}
