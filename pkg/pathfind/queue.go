package pathfind

import (
	"container/heap"

	"github.com/bartonsun/D2RSG/pkg/grid"
)

// queueItem is one entry in the search frontier.
type queueItem struct {
	pos      [2]int
	priority float64
	seq      int // insertion order, breaks priority ties deterministically
	index    int
}

// priorityQueue is a min-heap over queueItem.priority, ties broken by
// insertion order so that two equal-cost frontiers always expand in
// the same sequence regardless of map hash iteration order.
type priorityQueue []*queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority < pq[j].priority
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// newFrontier returns an initialized, empty priority queue.
func newFrontier() *priorityQueue {
	pq := make(priorityQueue, 0, 64)
	heap.Init(&pq)
	return &pq
}

// pushHeap pushes item onto pq via container/heap.
func pushHeap(pq *priorityQueue, item *queueItem) {
	heap.Push(pq, item)
}

// popFrontier pops the lowest-priority item and returns its position
// and priority.
func popFrontier(pq *priorityQueue) (grid.Position, float64) {
	item := heap.Pop(pq).(*queueItem)
	return grid.Position{X: item.pos[0], Y: item.pos[1]}, item.priority
}
