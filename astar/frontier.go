// SPDX-License-Identifier: MIT

package astar

import "container/heap"

// Frontier is the open set: a min-heap of SearchNode ordered by F.
// Among equal F, entries pop in arrival order. Cells are not deduplicated;
// stale entries are the caller's to discard.
type Frontier struct {
	pq  nodePQ
	seq uint64
}

// NewFrontier returns an empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{pq: make(nodePQ, 0, 16)}
}

// Push inserts n. Complexity: O(log k).
func (f *Frontier) Push(n SearchNode) {
	f.seq++
	heap.Push(&f.pq, nodeItem{node: n, seq: f.seq})
}

// PopMin removes and returns the entry with the smallest F.
// The boolean is false when the frontier is empty.
// Complexity: O(log k).
func (f *Frontier) PopMin() (SearchNode, bool) {
	if len(f.pq) == 0 {
		return SearchNode{}, false
	}
	return heap.Pop(&f.pq).(nodeItem).node, true
}

// Len returns the number of entries, stale ones included.
func (f *Frontier) Len() int { return len(f.pq) }

// Empty reports whether Len() == 0.
func (f *Frontier) Empty() bool { return len(f.pq) == 0 }

// Reset drops every entry and restarts the arrival counter.
func (f *Frontier) Reset() {
	f.pq = f.pq[:0]
	f.seq = 0
}

// nodeItem pairs a node with its arrival sequence for FIFO-stable ties.
type nodeItem struct {
	node SearchNode
	seq  uint64
}

// nodePQ implements heap.Interface ordered by (F, seq) ascending.
type nodePQ []nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].node.F != pq[j].node.F {
		return pq[i].node.F < pq[j].node.F
	}
	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(nodeItem)) }

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
