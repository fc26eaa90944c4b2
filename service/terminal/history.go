package terminal

import "github.com/viant/commander/model/session"

// History is a FIFO of completed sessions. Once capacity is reached each
// insertion evicts the oldest inserted entry; reads never reorder entries.
// History is not synchronized; the Registry guards it.
type History struct {
	capacity int
	items    []*session.Completed
}

// NewHistory creates a history bounded by capacity
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = defaultHistoryCapacity
	}
	return &History{capacity: capacity, items: make([]*session.Completed, 0, capacity)}
}

// Put appends completed and returns the evicted entry, if any
func (h *History) Put(completed *session.Completed) *session.Completed {
	var evicted *session.Completed
	if len(h.items) == h.capacity {
		evicted = h.items[0]
		copy(h.items, h.items[1:])
		h.items[len(h.items)-1] = nil
		h.items = h.items[:len(h.items)-1]
	}
	h.items = append(h.items, completed)
	return evicted
}

// Get returns the newest entry for pid
func (h *History) Get(pid int) *session.Completed {
	for i := len(h.items) - 1; i >= 0; i-- {
		if h.items[i].Pid == pid {
			return h.items[i]
		}
	}
	return nil
}

// Remove drops every entry for pid and reports whether any existed
func (h *History) Remove(pid int) bool {
	kept := h.items[:0]
	for _, item := range h.items {
		if item.Pid != pid {
			kept = append(kept, item)
		}
	}
	removed := len(kept) != len(h.items)
	for i := len(kept); i < len(h.items); i++ {
		h.items[i] = nil
	}
	h.items = kept
	return removed
}

// List returns entries oldest to newest
func (h *History) List() []*session.Completed {
	return append([]*session.Completed(nil), h.items...)
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.items)
}
