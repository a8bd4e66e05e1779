// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Queue is an unbounded lock-free multi-producer multi-consumer FIFO.
//
// Based on the Michael–Scott linked-list queue with separate head and tail
// pointers. The list always holds at least one node. Tail points to an
// empty placeholder that receives the next pushed value: Push swings tail
// to a fresh placeholder first, then writes the payload into the old tail
// and links it. A node's next link is therefore set only after its payload
// is written, so Pop reports empty exactly when head has no successor.
//
// Producers linearize on the tail swing. A producer that has swung tail
// but not yet linked its node hides every later node from consumers until
// it finishes; Pop returns ErrWouldBlock in that window.
//
// Both operations are lock-free but not wait-free: a goroutine can retry
// its CAS indefinitely under contention.
//
// The zero value is not usable; create queues with NewQueue.
//
// Memory: one node per element plus one placeholder
type Queue[T any] struct {
	_    pad
	head atomix.Pointer[queueNode[T]] // Oldest node; payload valid once next != nil
	_    pad
	tail atomix.Pointer[queueNode[T]] // Placeholder for the next Push
	_    pad
}

type queueNode[T any] struct {
	data T
	next atomix.Pointer[queueNode[T]]
}

// NewQueue creates an empty FIFO queue.
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{}
	placeholder := &queueNode[T]{}
	q.head.StoreRelaxed(placeholder)
	q.tail.StoreRelaxed(placeholder)
	return q
}

// Push appends an element to the queue. It never blocks and never fails.
func (q *Queue[T]) Push(elem T) {
	placeholder := &queueNode[T]{}
	sw := spin.Wait{}
	for {
		tail := q.tail.LoadAcquire()
		if q.tail.CompareAndSwapRelease(tail, placeholder) {
			// tail is now owned by this producer until it is linked.
			// Linking is a read-modify-write so it is ordered before any
			// load the caller issues next.
			tail.data = elem
			tail.next.SwapAcqRel(placeholder)
			return
		}
		sw.Once()
	}
}

// Pop removes and returns the oldest element.
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *Queue[T]) Pop() (T, error) {
	sw := spin.Wait{}
	for {
		head := q.head.LoadAcquire()
		next := head.next.LoadAcquire()
		if next == nil {
			var zero T
			return zero, ErrWouldBlock
		}
		if q.head.CompareAndSwapRelease(head, next) {
			elem := head.data
			var zero T
			head.data = zero
			return elem, nil
		}
		sw.Once()
	}
}

// Len returns the number of linked nodes ahead of the placeholder.
// The result is a hint.
func (q *Queue[T]) Len() int {
	n := 0
	for node := q.head.LoadAcquire().next.LoadAcquire(); node != nil; node = node.next.LoadAcquire() {
		n++
	}
	return n
}

// Dispose removes every linked element and hands it to release.
// Must not run concurrently with Push, Pop or Len.
func (q *Queue[T]) Dispose(release func(T)) int {
	placeholder := &queueNode[T]{}
	node := q.head.SwapAcqRel(placeholder)
	q.tail.StoreRelease(placeholder)

	n := 0
	for node != nil {
		next := node.next.LoadRelaxed()
		if next == nil {
			break // trailing placeholder, no payload
		}
		if release != nil {
			release(node.data)
		}
		var zero T
		node.data = zero
		node.next.StoreRelaxed(nil)
		node = next
		n++
	}
	return n
}
