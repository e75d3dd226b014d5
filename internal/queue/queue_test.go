package queue

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinQueueOrder(t *testing.T) {
	pq := NewMin(4)
	for i, p := range []float64{3, 1, 4, 1.5, 9, 2.6} {
		pq.PushItem(Item{Index: i, Priority: p})
	}
	top, ok := pq.TopItem()
	require.True(t, ok)
	assert.Equal(t, 1, top.Index)

	var got []float64
	for pq.Len() > 0 {
		it, _ := pq.PopItem()
		got = append(got, it.Priority)
	}
	assert.Equal(t, []float64{1, 1.5, 2.6, 3, 4, 9}, got)

	_, ok = pq.PopItem()
	assert.False(t, ok)
}

func TestMaxQueueWithContainerHeap(t *testing.T) {
	pq := NewMax(0)
	for i, p := range []float64{0.5, 2, -1} {
		heap.Push(pq, Item{Index: i, Priority: p})
	}
	assert.Equal(t, 2.0, heap.Pop(pq).(Item).Priority)
	assert.Equal(t, 0.5, heap.Pop(pq).(Item).Priority)

	pq.Reset()
	assert.Equal(t, 0, pq.Len())
}
