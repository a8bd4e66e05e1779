// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

// Container is the lock-free storage behind a channel.
//
// Container provides a non-blocking Push that always succeeds (the
// containers are unbounded) and a non-blocking Pop that returns
// ErrWouldBlock when nothing is available. Two implementations exist:
// [Queue] (FIFO) and [Stack] (LIFO). The channel core is written against
// this interface only.
//
// Example:
//
//	var c mpmc.Container[int] = mpmc.NewQueue[int]()
//
//	c.Push(42)
//
//	v, err := c.Pop()
//	if err == nil {
//	    fmt.Println(v)
//	}
type Container[T any] interface {
	Producer[T]
	Consumer[T]

	// Len returns an approximate element count.
	//
	// The count is a snapshot taken by walking the list and has no
	// consistency guarantee under concurrent mutation. Never base
	// control decisions on it.
	Len() int

	// Dispose removes every remaining element, passing each payload to
	// release (if non-nil) exactly once, and returns how many were
	// removed. The container is empty and reusable afterwards.
	//
	// Dispose must not run concurrently with any other method.
	Dispose(release func(T)) int
}

// Producer is the interface for inserting elements.
type Producer[T any] interface {
	// Push inserts an element (non-blocking, always succeeds).
	// Safe for any number of concurrent producers.
	//
	// The element must be published with an atomic read-modify-write
	// (CAS or swap), so later loads by the caller cannot be reordered
	// before it. The channel relies on this to wake parked receivers.
	Push(elem T)
}

// Consumer is the interface for removing elements.
type Consumer[T any] interface {
	// Pop removes and returns an element (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if nothing is available.
	// Safe for any number of concurrent consumers.
	Pop() (T, error)
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
