package vm

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
)

var threadLog = commonlog.GetLogger("rtcore.thread")

// Routine is a thread entry point. ctx is cancelled when the thread is
// killed; routines that run for long should watch it.
type Routine func(ctx context.Context, args *Array)

// ThreadService spawns native threads.
type ThreadService interface {
	Spawn(routine Routine, args *Array) NativeThread
}

// NativeThread is a running thread as seen by its service.
type NativeThread interface {
	// Join blocks until the thread finishes.
	Join()
	// Cancel requests the thread to stop and returns immediately.
	Cancel()
}

// GoroutineService runs threads as goroutines.
type GoroutineService struct{}

type goroutine struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Spawn implements ThreadService.
func (GoroutineService) Spawn(routine Routine, args *Array) NativeThread {
	ctx, cancel := context.WithCancel(context.Background())
	g := &goroutine{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(g.done)
		defer cancel()
		routine(ctx, args)
	}()
	return g
}

func (g *goroutine) Join() {
	<-g.done
}

func (g *goroutine) Cancel() {
	g.cancel()
}

// ---------------------------------------------------------------------------
// Thread
// ---------------------------------------------------------------------------

// Thread pairs an entry routine and its arguments with a native thread.
// A thread is started at most once; there is no restart.
type Thread struct {
	hdr     Header
	id      uuid.UUID
	routine Routine
	args    *Array
	service ThreadService

	mu     sync.Mutex
	native NativeThread
}

// NewThread creates an unstarted thread that will run routine with args.
func NewThread(routine Routine, args *Array) *Thread {
	if routine == nil {
		throw(NullReference, "Thread routine cannot be null!")
	}
	return &Thread{
		hdr:     NewHeader(ThreadVTable),
		id:      uuid.New(),
		routine: routine,
		args:    args,
		service: current().Threads,
	}
}

// Header implements Object.
func (t *Thread) Header() *Header {
	if t == nil {
		return nil
	}
	return &t.hdr
}

// ID returns the thread's identity.
func (t *Thread) ID() uuid.UUID {
	return t.id
}

// Args returns the argument array the thread was created with.
func (t *Thread) Args() *Array {
	return t.args
}

// Started reports whether Start has been called.
func (t *Thread) Started() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.native != nil
}

// Start hands the routine and its arguments to the thread service.
// Starting a thread a second time does nothing.
func (t *Thread) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.native != nil {
		threadLog.Warningf("thread %s already started", t.id)
		return
	}
	t.native = t.service.Spawn(t.routine, t.args)
	threadLog.Infof("thread %s started", t.id)
}

// Join blocks until the thread finishes. Joining an unstarted thread
// returns immediately.
func (t *Thread) Join() {
	n := t.nativeThread()
	if n == nil {
		return
	}
	n.Join()
	threadLog.Debugf("thread %s joined", t.id)
}

// Kill requests cancellation and returns without waiting.
func (t *Thread) Kill() {
	n := t.nativeThread()
	if n == nil {
		return
	}
	n.Cancel()
	threadLog.Infof("thread %s cancelled", t.id)
}

func (t *Thread) nativeThread() NativeThread {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.native
}
