// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mpmc provides an unbounded multi-producer multi-consumer channel
// built on lock-free linked lists.
//
// Two interchangeable containers back a channel:
//
//   - Queue: Michael–Scott linked list, FIFO
//   - Stack: Treiber linked list, LIFO
//
// The data path (Send, TryRecv) is lock-free. Recv parks on a condition
// variable when the channel is empty and wakes when a value arrives or
// the last Sender is closed.
//
// # Quick Start
//
// Direct constructors:
//
//	tx, rx := mpmc.NewFIFO[Event]()
//	tx, rx := mpmc.NewLIFO[*Task]()
//
// Builder API:
//
//	tx, rx := mpmc.Build[Event](mpmc.New())         // → Queue
//	tx, rx := mpmc.Build[Event](mpmc.New().LIFO())  // → Stack
//
// # Basic Usage
//
//	tx, rx := mpmc.NewFIFO[int]()
//	defer tx.Close()
//	defer rx.Close()
//
//	// Send (non-blocking)
//	if err := tx.Send(42); err != nil {
//	    // No receiver left; err carries the value back
//	    var se *mpmc.SendError[int]
//	    if errors.As(err, &se) {
//	        retry(se.Value)
//	    }
//	}
//
//	// TryRecv (non-blocking)
//	v, err := rx.TryRecv()
//	if mpmc.IsWouldBlock(err) {
//	    // Empty for now - try again later
//	}
//
//	// Recv (blocking)
//	v, err = rx.Recv()
//	if mpmc.IsDisconnected(err) {
//	    // Every Sender is closed and the channel is drained
//	}
//
// # Handles
//
// NewFIFO, NewLIFO and Build return one Sender and one Receiver. Both are
// safe for concurrent use, and Clone creates additional handles for more
// producers or consumers. Every handle must be closed exactly once:
//
//   - Closing the last Receiver disconnects the channel. Send then fails.
//   - Closing the last Sender disconnects the channel and wakes every
//     parked Recv. Receivers drain what is buffered, then report
//     ErrDisconnected.
//   - Closing the last handle of either kind disposes the container.
//     Values never received are passed to the release function given to
//     NewWith or BuildWithRelease.
//
// Worker Pool:
//
//	tx, rx := mpmc.NewFIFO[Job]()
//
//	for range numWorkers {
//	    w := rx.Clone()
//	    go func() {
//	        defer w.Close()
//	        for job := range w.All() {
//	            job.Run()
//	        }
//	    }()
//	}
//	rx.Close()
//
//	for _, j := range jobs {
//	    tx.Send(j)
//	}
//	tx.Close() // workers exit once the queue drains
//
// # Error Handling
//
// There are exactly two channel conditions, both expected:
//
//	ErrWouldBlock   - transient: empty but connected (iox.ErrWouldBlock)
//	ErrDisconnected - permanent: the other side is gone
//
// ErrClosed reports use of a handle after its own Close.
//
// For semantic error classification (delegates to iox):
//
//	mpmc.IsWouldBlock(err)  // true if empty
//	mpmc.IsSemantic(err)    // true if control flow signal
//	mpmc.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// # Ordering
//
// Sends from different producers are linearized at the CAS that publishes
// them; their relative order is decided by that race, not by wall-clock
// call order. Values from one producer keep the container discipline.
// There is no fairness between receivers: Send wakes one parked receiver,
// but any receiver may take the value.
//
// # Size
//
// SizeHint walks the list and is a snapshot only. Never base control
// decisions on it.
//
// # Memory Reclamation
//
// A node removed by a winning CAS becomes unreachable from the container
// and is reclaimed by the garbage collector once no goroutine holds a
// reference to it. A goroutine that lost a CAS race still holds its node
// pointer, so that address cannot be reused underneath it. This rules out
// the ABA and use-after-free exposure of immediate reclamation without
// hazard pointers or epochs.
//
// # Cancellation
//
// Recv blocks until a value arrives or the channel disconnects.
// RecvContext and RecvTimeout add a deadline around the same slow path;
// the lock-free fast path is unchanged.
//
// # Race Detection
//
// Node links and scalar state use atomix, which the race detector cannot
// observe. Payload writes ordered only by those atomics look racy to the
// detector, so concurrent tests are excluded via RaceEnabled.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause instructions.
package mpmc
