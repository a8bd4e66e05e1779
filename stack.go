// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Stack is an unbounded lock-free multi-producer multi-consumer LIFO.
//
// Based on the Treiber stack: a singly linked list with one atomic head
// pointer. Head is nil when the stack is empty; otherwise it points to the
// most recently pushed node, which always carries its payload.
//
// The zero value is not usable; create stacks with NewStack.
//
// Memory: one node per element
type Stack[T any] struct {
	_    pad
	head atomix.Pointer[stackNode[T]]
	_    pad
}

type stackNode[T any] struct {
	data T
	next *stackNode[T] // Immutable once published
}

// NewStack creates an empty LIFO stack.
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push places an element on top of the stack. It never blocks and never fails.
func (s *Stack[T]) Push(elem T) {
	node := &stackNode[T]{data: elem}
	sw := spin.Wait{}
	for {
		head := s.head.LoadAcquire()
		// node is private until the CAS publishes it.
		node.next = head
		if s.head.CompareAndSwapAcqRel(head, node) {
			return
		}
		sw.Once()
	}
}

// Pop removes and returns the most recently pushed element.
// Returns (zero-value, ErrWouldBlock) if the stack is empty.
func (s *Stack[T]) Pop() (T, error) {
	sw := spin.Wait{}
	for {
		head := s.head.LoadAcquire()
		if head == nil {
			var zero T
			return zero, ErrWouldBlock
		}
		if s.head.CompareAndSwapRelease(head, head.next) {
			elem := head.data
			var zero T
			head.data = zero
			return elem, nil
		}
		sw.Once()
	}
}

// Len returns the number of nodes reachable from head.
// The result is a hint.
func (s *Stack[T]) Len() int {
	n := 0
	for node := s.head.LoadAcquire(); node != nil; node = node.next {
		n++
	}
	return n
}

// Dispose removes every element and hands it to release, top first.
// Must not run concurrently with Push, Pop or Len.
func (s *Stack[T]) Dispose(release func(T)) int {
	n := 0
	for node := s.head.SwapAcqRel(nil); node != nil; n++ {
		if release != nil {
			release(node.data)
		}
		next := node.next
		var zero T
		node.data = zero
		node.next = nil
		node = next
	}
	return n
}
