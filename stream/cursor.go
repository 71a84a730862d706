package stream

import (
	"fmt"
	"sync"

	"github.com/Neumenon/nbt/nbt"
)

// Cursor tracks the position and state of a single frame stream: the last
// sequence number seen, the last decoded document and whether the stream
// has ended. It is safe for concurrent use.
type Cursor struct {
	mu sync.RWMutex

	lastSeq uint64
	final   bool
	state   nbt.Tag
	hash    *nbt.Hash // cached state hash, nil until computed
	opts    []nbt.Option
}

// NewCursor creates a cursor. opts are used when rendering the state for
// hashing.
func NewCursor(opts ...nbt.Option) *Cursor {
	return &Cursor{opts: opts}
}

// LastSeq returns the last sequence number accepted.
func (c *Cursor) LastSeq() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSeq
}

// Done reports whether a final frame has been accepted.
func (c *Cursor) Done() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.final
}

// State returns the last document recorded with SetState.
func (c *Cursor) State() (nbt.Tag, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state, c.state != nil
}

// Process checks f against the cursor and advances it.
// Returns an error if:
//   - the stream has already ended
//   - the sequence number is not the next one (gap or duplicate)
//   - the base hash does not match the current state
func (c *Cursor) Process(f *Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.final {
		return &ParseError{Reason: fmt.Sprintf("frame %d after end of stream", f.Seq), Offset: -1}
	}
	if f.Seq != c.lastSeq+1 {
		return &SequenceError{Expected: c.lastSeq + 1, Got: f.Seq}
	}
	if f.Base != nil {
		if c.state == nil {
			return &ParseError{Reason: fmt.Sprintf("frame %d has base but no prior document", f.Seq), Offset: -1}
		}
		h, err := c.stateHashLocked()
		if err != nil {
			return err
		}
		if h != *f.Base {
			return &BaseMismatchError{Seq: f.Seq, Expected: *f.Base, Got: h}
		}
	}

	c.lastSeq = f.Seq
	if f.IsFinal() {
		c.final = true
	}
	return nil
}

// SetState records t as the current document. Its hash is computed on
// demand.
func (c *Cursor) SetState(t nbt.Tag) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = t
	c.hash = nil
}

// StateHash returns the hash of the current document. ok is false when no
// document has been recorded.
func (c *Cursor) StateHash() (h nbt.Hash, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return nbt.Hash{}, false, nil
	}
	h, err = c.stateHashLocked()
	return h, err == nil, err
}

func (c *Cursor) stateHashLocked() (nbt.Hash, error) {
	if c.hash != nil {
		return *c.hash, nil
	}
	h, err := StateHash(c.state, c.opts...)
	if err != nil {
		return nbt.Hash{}, fmt.Errorf("state hash: %w", err)
	}
	c.hash = &h
	return h, nil
}

// Reset clears all cursor state.
func (c *Cursor) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSeq = 0
	c.final = false
	c.state = nil
	c.hash = nil
}
