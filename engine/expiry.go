package engine

import (
	"container/heap"
	"time"

	"github.com/google/uuid"
)

// expiryQueue is a min-heap of resting GTD orders keyed by expiry
// time, kept separate from the price-ordered book so the periodic
// sweep never scans the book linearly. Entries are not removed when an
// order leaves the book early (fill or cancel); the sweeper detects
// stale entries because the ordinary removal path no longer finds the
// order.
type expiryQueue struct {
	entries expiryHeap
}

type expiryEntry struct {
	orderID uuid.UUID
	at      time.Time
}

func newExpiryQueue() *expiryQueue {
	return &expiryQueue{}
}

func (q *expiryQueue) push(orderID uuid.UUID, at time.Time) {
	heap.Push(&q.entries, expiryEntry{orderID: orderID, at: at})
}

// popDue removes and returns the next entry expiring at or before now.
func (q *expiryQueue) popDue(now time.Time) (uuid.UUID, bool) {
	if len(q.entries) == 0 || q.entries[0].at.After(now) {
		return uuid.Nil, false
	}
	e := heap.Pop(&q.entries).(expiryEntry)
	return e.orderID, true
}

func (q *expiryQueue) len() int { return len(q.entries) }

type expiryHeap []expiryEntry

func (h expiryHeap) Len() int            { return len(h) }
func (h expiryHeap) Less(i, j int) bool  { return h[i].at.Before(h[j].at) }
func (h expiryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *expiryHeap) Push(x interface{}) { *h = append(*h, x.(expiryEntry)) }
func (h *expiryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
