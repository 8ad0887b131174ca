package containers

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/drawbug/engine/core"
)

func TestBufferGrowth(t *testing.T) {
	b, err := NewBuffer[int](10)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 12; i++ {
		b.Submit(i)
	}
	if b.Len() != 12 {
		t.Fatalf("Len = %d, want 12", b.Len())
	}
	if b.Cap() != 20 {
		t.Fatalf("Cap = %d, want 20", b.Cap())
	}
	for i, v := range b.Data() {
		if v != i {
			t.Fatalf("element %d = %d after growth", i, v)
		}
	}
}

func TestBufferGrowthToRequiredLength(t *testing.T) {
	b, _ := NewBuffer[int](10)
	b.SubmitSlice([]int{1, 2})
	b.SubmitSlice(make([]int, 26))
	if b.Cap() != 28 {
		t.Fatalf("Cap = %d, want 28", b.Cap())
	}
	if b.At(0) != 1 || b.At(1) != 2 {
		t.Fatalf("prefix lost: %v", b.Data()[:2])
	}
}

func TestBufferSubmitUpToTwiceCapacityPlusTwo(t *testing.T) {
	const c = 7
	b, _ := NewBuffer[int](c)
	for i := 0; i < 2*c+2; i++ {
		b.Submit(i * 3)
	}
	if b.Len() != 2*c+2 {
		t.Fatalf("Len = %d", b.Len())
	}
	if b.Cap() != 4*c {
		t.Fatalf("Cap = %d, want %d", b.Cap(), 4*c)
	}
	for i := 0; i < b.Len(); i++ {
		if b.At(i) != i*3 {
			t.Fatalf("element %d = %d, want %d", i, b.At(i), i*3)
		}
	}
}

func TestBufferZeroCapacityGrows(t *testing.T) {
	b, _ := NewBuffer[byte](0)
	b.Submit(1)
	if b.Len() != 1 || b.Cap() != 1 {
		t.Fatalf("Len/Cap = %d/%d, want 1/1", b.Len(), b.Cap())
	}
}

func TestBufferClearKeepsCapacity(t *testing.T) {
	b, _ := NewBuffer[float32](4)
	b.SubmitSlice([]float32{1, 2, 3, 4, 5})
	capBefore := b.Cap()
	b.Clear()
	if b.Len() != 0 {
		t.Fatalf("Len after Clear = %d", b.Len())
	}
	if b.Cap() != capBefore {
		t.Fatalf("Cap after Clear = %d, want %d", b.Cap(), capBefore)
	}
}

func TestBufferExtendAndTruncate(t *testing.T) {
	b, _ := NewBuffer[int](2)
	tail := b.Extend(3)
	for i := range tail {
		tail[i] = i + 1
	}
	if got := b.Data(); len(got) != 3 || got[2] != 3 {
		t.Fatalf("Data = %v", got)
	}
	b.Truncate(1)
	if b.Len() != 1 || b.At(0) != 1 {
		t.Fatalf("after Truncate: %v", b.Data())
	}
}

func TestBufferNegativeCapacity(t *testing.T) {
	if _, err := NewBuffer[int](-1); !errors.Is(err, core.ErrInvalidCapacity) {
		t.Fatalf("err = %v, want ErrInvalidCapacity", err)
	}
}

func TestBufferUseAfterDisposePanics(t *testing.T) {
	b, _ := NewBuffer[int](4)
	b.Dispose()
	if b.IsCreated() {
		t.Fatal("IsCreated after Dispose")
	}
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, core.ErrDisposed) {
			t.Fatalf("recovered %v, want ErrDisposed", r)
		}
	}()
	b.Submit(1)
}

func TestRingQueue(t *testing.T) {
	q := NewRingQueue[int](2)
	if _, err := q.Dequeue(); !errors.Is(err, ErrQueueEmpty) {
		t.Fatalf("Dequeue on empty = %v", err)
	}
	_ = q.Enqueue(1)
	_ = q.Enqueue(2)
	if err := q.Enqueue(3); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("Enqueue on full = %v", err)
	}
	q.Push(3)
	if got := q.Items(); len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Fatalf("Items = %v, want [2 3]", got)
	}
	v, _ := q.Peek()
	if v != 2 {
		t.Fatalf("Peek = %d", v)
	}
}
