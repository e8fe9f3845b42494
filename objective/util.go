package objective

import (
	"container/heap"
	"sort"
)

// 选出keys最小的k个，keys与ids一一对应，key相同时取编号较小者
// 返回按编号升序排列的id表，k超过候选数时全取
func lowestK(keys []float64, ids []int, k int) []int {
	if k > len(ids) {
		k = len(ids)
	}
	pq := make(PriorityQueue, len(ids))
	for i, id := range ids {
		pq[i] = &Item{Value: id, Priority: keys[i], Index: i}
	}
	heap.Init(&pq)
	chosen := make([]int, k)
	for i := 0; i < k; i++ {
		chosen[i] = heap.Pop(&pq).(*Item).Value
	}
	sort.Ints(chosen)
	return chosen
}
