package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/drawbug/engine/core"
)

type durationSlot struct {
	id        uuid.UUID
	stream    *Stream
	remaining float32
	active    bool
}

// SlotInfo is a snapshot of one pool slot.
type SlotInfo struct {
	ID        uuid.UUID
	Remaining float32
	Active    bool
	Bytes     int
}

// DurationPool is a fixed table of streams that outlive a single frame.
// Every slot counts its remaining time down on Tick and is cleared once
// the time runs out.
//
// Slots are matched by exact float equality between their remaining time
// and the requested duration. Requests issued with the same literal in the
// same frame share a slot; a request made after a tick gets a new one.
type DurationPool struct {
	slots     []durationSlot
	evictions uint64
}

// NewDurationPool allocates size slots whose streams start with
// initialBytes of storage and never grow past maxBytes.
func NewDurationPool(size int, initialBytes int, maxBytes int) (*DurationPool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("duration pool with %d slots: %w", size, core.ErrInvalidCapacity)
	}
	p := &DurationPool{
		slots: make([]durationSlot, size),
	}
	for i := range p.slots {
		s, err := NewStream(initialBytes, maxBytes)
		if err != nil {
			p.Dispose()
			return nil, err
		}
		p.slots[i] = durationSlot{id: uuid.New(), stream: s}
	}
	return p, nil
}

// Acquire returns the stream that records commands lasting duration seconds.
//
// An active slot whose remaining time equals duration is reused. Otherwise
// the first inactive slot is activated. When every slot is active the last
// slot is taken over, cleared first if its remaining time differs; the
// commands it held are lost, which is logged and counted in Evictions.
func (p *DurationPool) Acquire(duration float32) *Stream {
	for i := range p.slots {
		slot := &p.slots[i]
		if slot.active && slot.remaining == duration {
			return slot.stream
		}
	}

	for i := range p.slots {
		slot := &p.slots[i]
		if !slot.active {
			slot.active = true
			slot.remaining = duration
			slot.stream.Clear()
			return slot.stream
		}
	}

	last := &p.slots[len(p.slots)-1]
	if last.remaining != duration {
		p.evictions++
		core.LogWarn("duration pool full (%d slots), slot %s with %.3fs left replaced by a %.3fs request",
			len(p.slots), last.id, last.remaining, duration)
		last.stream.Clear()
		last.remaining = duration
	}
	return last.stream
}

// Tick counts every active slot down by deltaTime seconds. Slots that reach
// zero are cleared and become free.
func (p *DurationPool) Tick(deltaTime float32) {
	for i := range p.slots {
		slot := &p.slots[i]
		if !slot.active {
			continue
		}
		slot.remaining -= deltaTime
		if slot.remaining <= 0 {
			slot.remaining = 0
			slot.active = false
			slot.stream.Clear()
			core.LogDebug("duration slot %s expired", slot.id)
		}
	}
}

// DrainInto appends the commands of every active slot to target. Each slot
// is preceded by a state reset so it decodes from default draw mode and
// matrix. Slots keep their commands until they expire.
func (p *DurationPool) DrainInto(target *Stream) error {
	for i := range p.slots {
		slot := &p.slots[i]
		if !slot.active || !slot.stream.HasData() {
			continue
		}
		if err := target.WriteStateReset(); err != nil {
			return fmt.Errorf("drain slot %s: %w", slot.id, err)
		}
		if err := target.MergeFrom(slot.stream); err != nil {
			return fmt.Errorf("drain slot %s: %w", slot.id, err)
		}
	}
	return nil
}

// ActiveCount returns the number of slots currently in use.
func (p *DurationPool) ActiveCount() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].active {
			n++
		}
	}
	return n
}

func (p *DurationPool) Capacity() int {
	return len(p.slots)
}

// Evictions returns how many times a full pool replaced the last slot.
func (p *DurationPool) Evictions() uint64 {
	return p.evictions
}

// Slots returns a snapshot of every slot.
func (p *DurationPool) Slots() []SlotInfo {
	out := make([]SlotInfo, len(p.slots))
	for i, slot := range p.slots {
		out[i] = SlotInfo{
			ID:        slot.id,
			Remaining: slot.remaining,
			Active:    slot.active,
		}
		if slot.stream != nil && slot.stream.IsCreated() {
			out[i].Bytes = slot.stream.Len()
		}
	}
	return out
}

// Dispose releases every slot stream.
func (p *DurationPool) Dispose() {
	for i := range p.slots {
		if p.slots[i].stream != nil {
			p.slots[i].stream.Dispose()
		}
		p.slots[i].active = false
	}
}
