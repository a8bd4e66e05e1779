// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates nothing is available right now.
//
// For Container.Pop: the container is empty
// For Receiver.TryRecv: the channel is empty but still connected
//
// ErrWouldBlock is a control flow signal, not a failure. The caller may
// retry later or switch to the blocking Recv.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrDisconnected indicates the other side of the channel is gone.
//
// For Send: every Receiver has been closed
// For TryRecv/Recv: every Sender has been closed and the channel is drained
//
// ErrDisconnected is permanent: no further transfer will succeed.
var ErrDisconnected = errors.New("mpmc: channel is disconnected")

// ErrClosed indicates the handle itself was already closed.
var ErrClosed = errors.New("mpmc: use of closed handle")

// SendError is returned by Send when the value could not be delivered.
// It carries the value back to the caller unchanged.
type SendError[T any] struct {
	Value T
	Err   error // ErrDisconnected or ErrClosed
}

func (e *SendError[T]) Error() string {
	return "mpmc: send failed: " + e.Err.Error()
}

func (e *SendError[T]) Unwrap() error {
	return e.Err
}

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsDisconnected reports whether err indicates a disconnected channel.
func IsDisconnected(err error) bool {
	return errors.Is(err, ErrDisconnected)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrMore.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
