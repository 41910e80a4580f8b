// Package async resolves asset files off the game goroutine and hands the
// completions back to it.
//
// Loads run on background goroutines. Completions are queued and delivered
// by Handler.Update, which the game calls once per tick, so bound callbacks
// always run on the game goroutine and never race with sprite updates.
package async

import (
	"context"
	"log"
	"sync"
)

// Loader brings a file into a state where it can be read synchronously
// (decoded into a cache, downloaded, ...).
type Loader interface {
	Load(ctx context.Context, category, name string) error
}

// BindingID identifies one callback bound to a request.
type BindingID uint64

// Result is passed to bound callbacks when a request completes.
type Result struct {
	Category string
	Name     string
	Err      error
}

// Success reports whether the file was resolved.
func (r Result) Success() bool {
	return r.Err == nil
}

type requestState int

const (
	stateIdle requestState = iota
	stateRunning
	stateDone
)

type binding struct {
	id BindingID
	fn func(Result)
}

// FileRequest is the shared request for one category/name pair.
type FileRequest struct {
	h        *Handler
	category string
	name     string

	// Guarded by h.mu; written by the loader goroutine.
	state requestState
	err   error

	// Game goroutine only.
	bindings []binding
}

// Handler owns all outstanding file requests.
type Handler struct {
	loader Loader
	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	requests  map[string]*FileRequest
	completed []*FileRequest
	inFlight  int

	nextID BindingID
	wg     sync.WaitGroup
}

// NewHandler creates a handler that resolves files with loader.
func NewHandler(loader Loader) *Handler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Handler{
		loader:   loader,
		ctx:      ctx,
		cancel:   cancel,
		requests: make(map[string]*FileRequest),
	}
}

func requestKey(category, name string) string {
	return category + "/" + name
}

// RequestFile returns the request for category/name, creating it on first use.
// Repeated calls for the same file share one request and one load.
func (h *Handler) RequestFile(category, name string) *FileRequest {
	key := requestKey(category, name)

	h.mu.Lock()
	defer h.mu.Unlock()

	if r, ok := h.requests[key]; ok {
		return r
	}
	r := &FileRequest{h: h, category: category, name: name}
	h.requests[key] = r
	return r
}

// Bind registers fn to be called exactly once when the request completes.
func (r *FileRequest) Bind(fn func(Result)) BindingID {
	r.h.nextID++
	id := r.h.nextID
	r.bindings = append(r.bindings, binding{id: id, fn: fn})
	return id
}

// Start begins resolving the file. A request that already completed invokes
// its bound callbacks immediately; an empty name completes immediately.
func (r *FileRequest) Start() {
	h := r.h

	h.mu.Lock()
	switch r.state {
	case stateRunning:
		h.mu.Unlock()
		return
	case stateDone:
		h.mu.Unlock()
		r.deliver()
		return
	}

	if r.name == "" {
		r.state = stateDone
		h.mu.Unlock()
		r.deliver()
		return
	}

	r.state = stateRunning
	h.inFlight++
	h.wg.Add(1)
	h.mu.Unlock()

	go func() {
		defer h.wg.Done()
		err := h.loader.Load(h.ctx, r.category, r.name)
		if err != nil {
			log.Printf("[async] failed to load %s/%s: %v", r.category, r.name, err)
		}

		h.mu.Lock()
		r.state = stateDone
		r.err = err
		h.inFlight--
		h.completed = append(h.completed, r)
		h.mu.Unlock()
	}()
}

// deliver runs every pending callback of r once. Game goroutine only.
func (r *FileRequest) deliver() {
	r.h.mu.Lock()
	res := Result{Category: r.category, Name: r.name, Err: r.err}
	key := requestKey(r.category, r.name)
	if r.err != nil && r.h.requests[key] == r {
		// Forget failures so the next request for this file retries.
		delete(r.h.requests, key)
	}
	r.h.mu.Unlock()

	bindings := r.bindings
	r.bindings = nil
	for _, b := range bindings {
		b.fn(res)
	}
}

// Update delivers every completion that arrived since the last call.
// It must be called from the game goroutine.
func (h *Handler) Update() {
	h.mu.Lock()
	completed := h.completed
	h.completed = nil
	h.mu.Unlock()

	for _, r := range completed {
		r.deliver()
	}
}

// Wait blocks until all in-flight loads finish and then delivers them.
func (h *Handler) Wait() {
	h.wg.Wait()
	h.Update()
}

// Pending returns the number of loads still running.
func (h *Handler) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.inFlight
}

// Close cancels running loads and waits for their goroutines to exit.
// Completions are not delivered after Close.
func (h *Handler) Close() {
	h.cancel()
	h.wg.Wait()

	h.mu.Lock()
	h.completed = nil
	h.mu.Unlock()
}
