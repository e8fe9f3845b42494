package objective

import (
	"container/heap"
	"log"
	"math"
)

// 单源Dijkstra，返回源节点到全部节点的最短距离，不可达为+Inf
// 松弛的弧集合由Universe决定，松弛中发现负成本弧直接panic
func (o *Objective) distancesFrom(source int) []float64 {
	n := o.Net
	dist := make([]float64, len(n.Nodes))
	for i := range dist {
		dist[i] = math.Inf(0)
	}
	dist[source] = .0

	openSet := make(PriorityQueue, 1)
	openSetMap := make(map[int]*Item, 1) // 节点编号 -> 堆中元素
	openSet[0] = &Item{Value: source, Priority: .0, Index: 0}
	openSetMap[source] = openSet[0]
	heap.Init(&openSet)
	relax := func(cur int, out []int) {
		for _, ai := range out {
			arc := n.Arcs[ai]
			if arc.Cost < 0 {
				log.Panicf("arc %d has negative cost %v", ai, arc.Cost)
			}
			tentative := dist[cur] + arc.Cost
			if tentative < dist[arc.Head] {
				dist[arc.Head] = tentative
				if item, ok := openSetMap[arc.Head]; ok {
					// 已入堆的节点，修改其在heap中的优先级
					item.Priority = tentative
					heap.Fix(&openSet, item.Index)
				} else {
					// 新访问的节点
					item := &Item{Value: arc.Head, Priority: tentative}
					heap.Push(&openSet, item)
					openSetMap[arc.Head] = item
				}
			}
		}
	}
	for openSet.Len() > 0 {
		cur := heap.Pop(&openSet).(*Item).Value
		relax(cur, n.Nodes[cur].CoreOut)
		if o.Universe == UNIVERSE_CORE_ACCESS {
			relax(cur, n.Nodes[cur].AccessOut)
		}
	}
	return dist
}
