package network

import (
	"fmt"
)

// 读取核心弧当前流量
func (n *Network) Flow(coreIdx int) (float64, error) {
	if coreIdx < 0 || coreIdx >= len(n.CoreArcs) {
		return 0, fmt.Errorf("core arc(index=%d) not found", coreIdx)
	}
	t := n.mu.RLock()
	defer n.mu.RUnlock(t)
	return n.Arcs[n.CoreArcs[coreIdx]].flow, nil
}

// 设置核心弧当前流量
func (n *Network) SetFlow(coreIdx int, flow float64) error {
	if coreIdx < 0 || coreIdx >= len(n.CoreArcs) {
		return fmt.Errorf("core arc(index=%d) not found", coreIdx)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Arcs[n.CoreArcs[coreIdx]].flow = flow
	return nil
}

// 批量设置核心弧流量，任一下标非法时整体不生效
func (n *Network) SetFlows(flows map[int]float64) error {
	for idx := range flows {
		if idx < 0 || idx >= len(n.CoreArcs) {
			return fmt.Errorf("core arc(index=%d) not found", idx)
		}
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for idx, flow := range flows {
		n.Arcs[n.CoreArcs[idx]].flow = flow
	}
	return nil
}

// 所有核心弧的负载率（流量/线路日容量），无线路的核心弧为0
func (n *Network) LoadingFactors() []float64 {
	t := n.mu.RLock()
	defer n.mu.RUnlock(t)
	factors := make([]float64, len(n.CoreArcs))
	for i, idx := range n.CoreArcs {
		arc := n.Arcs[idx]
		if arc.Line >= 0 {
			factors[i] = arc.flow / n.Lines[arc.Line].Capacity()
		}
	}
	return factors
}
