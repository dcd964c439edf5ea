package graph

import (
	"cmp"
	"fmt"
	"slices"
)

// NodeID is a generation-checked handle to a node. The zero value names no
// node. A handle goes stale once its node is deleted, even if the slot is
// reused.
type NodeID struct {
	index uint32
	gen   uint32
}

// IsValid reports whether id was issued by a graph. It does not report
// whether the node still exists.
func (id NodeID) IsValid() bool { return id.index != 0 }

func (id NodeID) String() string {
	if !id.IsValid() {
		return "n-"
	}
	return fmt.Sprintf("n%d.%d", id.index, id.gen)
}

// EdgeID is a generation-checked handle to an edge.
type EdgeID struct {
	index uint32
	gen   uint32
}

// IsValid reports whether id was issued by a graph.
func (id EdgeID) IsValid() bool { return id.index != 0 }

func (id EdgeID) String() string {
	if !id.IsValid() {
		return "e-"
	}
	return fmt.Sprintf("e%d.%d", id.index, id.gen)
}

// arena stores values behind 1-based handles and reuses released slots.
// Every reuse bumps the slot generation so that old handles stop resolving.
type arena[T any] struct {
	slots []arenaSlot[T]
	free  []uint32
	live  int
	seq   uint64
}

type arenaSlot[T any] struct {
	value T
	seq   uint64
	gen   uint32
	live  bool
}

func (a *arena[T]) alloc(v T) (uint32, uint32) {
	a.seq++
	a.live++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx-1]
		s.value = v
		s.seq = a.seq
		s.gen++
		s.live = true
		return idx, s.gen
	}
	a.slots = append(a.slots, arenaSlot[T]{value: v, seq: a.seq, gen: 1, live: true})
	return uint32(len(a.slots)), 1
}

func (a *arena[T]) get(idx, gen uint32) (T, bool) {
	var zero T
	if idx == 0 || int(idx) > len(a.slots) {
		return zero, false
	}
	s := &a.slots[idx-1]
	if !s.live || s.gen != gen {
		return zero, false
	}
	return s.value, true
}

func (a *arena[T]) release(idx, gen uint32) bool {
	if _, ok := a.get(idx, gen); !ok {
		return false
	}
	s := &a.slots[idx-1]
	var zero T
	s.value = zero
	s.live = false
	a.live--
	a.free = append(a.free, idx)
	return true
}

// ordered returns the live values in allocation order.
func (a *arena[T]) ordered() []T {
	idx := make([]int, 0, a.live)
	for i := range a.slots {
		if a.slots[i].live {
			idx = append(idx, i)
		}
	}
	slices.SortFunc(idx, func(x, y int) int {
		return cmp.Compare(a.slots[x].seq, a.slots[y].seq)
	})
	out := make([]T, len(idx))
	for i, k := range idx {
		out[i] = a.slots[k].value
	}
	return out
}
