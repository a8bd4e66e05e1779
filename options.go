// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

// Discipline selects the order in which buffered values are received.
type Discipline uint8

const (
	// FIFO delivers values in insertion order ([Queue]).
	FIFO Discipline = iota
	// LIFO delivers the most recently inserted value first ([Stack]).
	LIFO
)

func (d Discipline) String() string {
	switch d {
	case FIFO:
		return "FIFO"
	case LIFO:
		return "LIFO"
	default:
		return "Discipline(?)"
	}
}

// Options configures channel creation.
type Options struct {
	discipline Discipline
}

// Builder creates channels with fluent configuration.
//
// Example:
//
//	// FIFO channel (default)
//	tx, rx := mpmc.Build[Event](mpmc.New())
//
//	// LIFO channel
//	tx, rx := mpmc.Build[*Task](mpmc.New().LIFO())
//
//	// Return undelivered buffers to a pool on teardown
//	tx, rx := mpmc.BuildWithRelease(mpmc.New(), func(b []byte) { pool.Put(b) })
type Builder struct {
	opts Options
}

// New creates a channel builder. The default discipline is FIFO.
func New() *Builder {
	return &Builder{opts: Options{discipline: FIFO}}
}

// FIFO selects first-in-first-out delivery.
func (b *Builder) FIFO() *Builder {
	b.opts.discipline = FIFO
	return b
}

// LIFO selects last-in-first-out delivery.
func (b *Builder) LIFO() *Builder {
	b.opts.discipline = LIFO
	return b
}

// Discipline returns the configured discipline.
func (b *Builder) Discipline() Discipline {
	return b.opts.discipline
}

// Build creates a connected channel.
//
// Container selection:
//
//	FIFO → Queue (Michael–Scott linked list)
//	LIFO → Stack (Treiber linked list)
func Build[T any](b *Builder) (*Sender[T], *Receiver[T]) {
	return NewWith(BuildContainer[T](b), nil)
}

// BuildWithRelease is like Build, and additionally hands every value still
// buffered when the channel is torn down to release.
func BuildWithRelease[T any](b *Builder, release func(T)) (*Sender[T], *Receiver[T]) {
	return NewWith(BuildContainer[T](b), release)
}

// BuildContainer creates the bare container for the configured discipline.
func BuildContainer[T any](b *Builder) Container[T] {
	switch b.opts.discipline {
	case LIFO:
		return NewStack[T]()
	default:
		return NewQueue[T]()
	}
}
