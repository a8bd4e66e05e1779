// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import (
	"context"
	"iter"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
)

// core is the state shared by every handle of one channel.
//
// The data path (Push/Pop on the container) is lock-free. mu and waker
// guard no data: they only let receivers park and be woken. sleepers is
// written under mu and read without it by Send, so senders skip mu when
// nobody is parked.
type core[T any] struct {
	_         pad
	connected atomix.Bool // Set false once, never set true again
	_         pad
	sleepers  atomix.Int64 // Receivers inside the blocking path
	_         pad
	senders   atomix.Int64 // Open Sender handles
	receivers atomix.Int64 // Open Receiver handles
	refs      atomix.Int64 // Open handles of either kind
	_         pad
	data      Container[T]
	release   func(T)

	mu    sync.Mutex
	waker sync.Cond
}

func newCore[T any](data Container[T], release func(T)) *core[T] {
	if data == nil {
		panic("mpmc: nil container")
	}
	c := &core[T]{data: data, release: release}
	c.waker.L = &c.mu
	c.connected.StoreRelease(true)
	c.senders.StoreRelaxed(1)
	c.receivers.StoreRelaxed(1)
	c.refs.StoreRelaxed(2)
	return c
}

// wakeOne wakes one parked receiver.
func (c *core[T]) wakeOne() {
	c.mu.Lock()
	c.waker.Signal()
	c.mu.Unlock()
}

// wakeAll wakes every parked receiver.
func (c *core[T]) wakeAll() {
	c.mu.Lock()
	c.waker.Broadcast()
	c.mu.Unlock()
}

func (c *core[T]) tryRecv() (T, error) {
	elem, err := c.data.Pop()
	if err == nil {
		return elem, nil
	}
	if c.connected.LoadAcquire() {
		return elem, ErrWouldBlock
	}
	// A push that completed before the disconnect may not have been
	// visible to the first Pop. Drain it before reporting disconnection.
	if elem, err = c.data.Pop(); err == nil {
		return elem, nil
	}
	return elem, ErrDisconnected
}

func (c *core[T]) recv(ctx context.Context) (T, error) {
	elem, err := c.tryRecv()
	if !IsWouldBlock(err) {
		return elem, err
	}

	c.mu.Lock()
	// The increment is a full barrier: a Push that lands after it sees
	// sleepers > 0, and one that lands before it is seen by the retry below.
	c.sleepers.AddAcqRel(1)
	for {
		// Retry under mu: a value may have arrived before the lock was taken.
		// Spurious wakeups fall through to the same retry.
		elem, err = c.tryRecv()
		if !IsWouldBlock(err) {
			break
		}
		if cerr := ctx.Err(); cerr != nil {
			err = cerr
			break
		}
		c.waker.Wait()
	}
	c.sleepers.AddAcqRel(-1)
	c.mu.Unlock()
	return elem, err
}

// dropSender runs when a Sender handle is closed.
func (c *core[T]) dropSender() {
	if c.senders.AddAcqRel(-1) == 0 {
		c.connected.SwapAcqRel(false)
		// sleepers is exact under mu. A receiver that parks later takes mu
		// after this section and observes the disconnect in its retry.
		c.mu.Lock()
		if c.sleepers.LoadRelaxed() > 0 {
			c.waker.Broadcast()
		}
		c.mu.Unlock()
	}
	c.drop()
}

// dropReceiver runs when a Receiver handle is closed.
func (c *core[T]) dropReceiver() {
	if c.receivers.AddAcqRel(-1) == 0 {
		c.connected.SwapAcqRel(false)
	}
	c.drop()
}

// drop disposes the container once the last handle of either kind is gone.
func (c *core[T]) drop() {
	if c.refs.AddAcqRel(-1) == 0 {
		c.data.Dispose(c.release)
	}
}

// Sender is the producing side of a channel.
//
// A Sender is safe for concurrent use. Clone creates an additional
// handle; every handle must be closed exactly once. When the last Sender
// is closed the channel disconnects and parked receivers wake up.
type Sender[T any] struct {
	c      *core[T]
	closed atomix.Bool
}

// Send inserts v into the channel. It never blocks.
//
// If no Receiver remains, Send returns a *SendError carrying v unchanged,
// which unwraps to ErrDisconnected. A closed Sender reports ErrClosed the
// same way.
func (s *Sender[T]) Send(v T) error {
	if s.closed.LoadAcquire() {
		return &SendError[T]{Value: v, Err: ErrClosed}
	}
	c := s.c
	if !c.connected.LoadAcquire() {
		return &SendError[T]{Value: v, Err: ErrDisconnected}
	}
	// Container.Push publishes with a read-modify-write, which orders it
	// before the sleepers load.
	c.data.Push(v)
	if c.sleepers.LoadAcquire() > 0 {
		c.wakeOne()
	}
	return nil
}

// SizeHint returns the approximate number of buffered values.
// A closed Sender reports 0.
func (s *Sender[T]) SizeHint() int {
	if s.closed.LoadAcquire() {
		return 0
	}
	return s.c.data.Len()
}

// Clone returns a new Sender sharing this channel.
// Panics if s is closed.
func (s *Sender[T]) Clone() *Sender[T] {
	if s.closed.LoadAcquire() {
		panic("mpmc: Clone of closed Sender")
	}
	s.c.senders.AddAcqRel(1)
	s.c.refs.AddAcqRel(1)
	return &Sender[T]{c: s.c}
}

// Close releases this handle. Further calls are no-ops.
func (s *Sender[T]) Close() {
	if s.closed.CompareAndSwapAcqRel(false, true) {
		s.c.dropSender()
	}
}

// Receiver is the consuming side of a channel.
//
// A Receiver is safe for concurrent use. Each value is delivered to
// exactly one receiving call across all Receiver handles. When the last
// Receiver is closed, Send starts failing with ErrDisconnected.
type Receiver[T any] struct {
	c      *core[T]
	closed atomix.Bool
}

// TryRecv removes a value without blocking.
//
// Returns ErrWouldBlock if the channel is empty but still connected, and
// ErrDisconnected once every Sender is closed and the channel is drained.
func (r *Receiver[T]) TryRecv() (T, error) {
	if r.closed.LoadAcquire() {
		var zero T
		return zero, ErrClosed
	}
	return r.c.tryRecv()
}

// Recv removes a value, parking the calling goroutine while the channel
// is empty and connected. Returns ErrDisconnected once every Sender is
// closed and no value remains.
func (r *Receiver[T]) Recv() (T, error) {
	return r.RecvContext(context.Background())
}

// RecvContext is like Recv but also returns ctx.Err() when ctx is done
// before a value arrives. A value that is already available is returned
// even if ctx is done.
func (r *Receiver[T]) RecvContext(ctx context.Context) (T, error) {
	if r.closed.LoadAcquire() {
		var zero T
		return zero, ErrClosed
	}
	if ctx.Done() != nil {
		stop := context.AfterFunc(ctx, r.c.wakeAll)
		defer stop()
	}
	return r.c.recv(ctx)
}

// RecvTimeout is like Recv but gives up after d with
// context.DeadlineExceeded.
func (r *Receiver[T]) RecvTimeout(d time.Duration) (T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return r.RecvContext(ctx)
}

// All returns an iterator over received values. Iteration blocks like
// Recv and ends when the channel disconnects or r is closed.
func (r *Receiver[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, err := r.Recv()
			if err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// SizeHint returns the approximate number of buffered values.
// A closed Receiver reports 0.
func (r *Receiver[T]) SizeHint() int {
	if r.closed.LoadAcquire() {
		return 0
	}
	return r.c.data.Len()
}

// Clone returns a new Receiver sharing this channel.
// Panics if r is closed.
func (r *Receiver[T]) Clone() *Receiver[T] {
	if r.closed.LoadAcquire() {
		panic("mpmc: Clone of closed Receiver")
	}
	r.c.receivers.AddAcqRel(1)
	r.c.refs.AddAcqRel(1)
	return &Receiver[T]{c: r.c}
}

// Close releases this handle. Further calls are no-ops.
func (r *Receiver[T]) Close() {
	if r.closed.CompareAndSwapAcqRel(false, true) {
		r.c.dropReceiver()
	}
}

// NewFIFO creates a channel backed by a [Queue].
func NewFIFO[T any]() (*Sender[T], *Receiver[T]) {
	return NewWith[T](NewQueue[T](), nil)
}

// NewLIFO creates a channel backed by a [Stack].
func NewLIFO[T any]() (*Sender[T], *Receiver[T]) {
	return NewWith[T](NewStack[T](), nil)
}

// NewWith creates a channel over an existing container.
//
// release, if non-nil, receives every value still buffered when the last
// handle of either kind is closed. Panics if data is nil.
func NewWith[T any](data Container[T], release func(T)) (*Sender[T], *Receiver[T]) {
	c := newCore(data, release)
	return &Sender[T]{c: c}, &Receiver[T]{c: c}
}
