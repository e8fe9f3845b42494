package network

import (
	"fmt"

	"git.fiblab.net/sim/accessibility/dataio"
	"github.com/puzpuzpuz/xsync/v3"
)

// 网络，New返回后除流量外全部只读
type Network struct {
	Nodes []*Node
	Arcs  []*Arc
	Lines []*Line

	// 节点分组（Nodes下标）
	StopNodes       []int
	BoardingNodes   []int
	PopulationNodes []int
	FacilityNodes   []int
	// 站点节点与上车节点
	CoreNodes []int

	// 弧分组（Arcs下标）
	AccessArcs  []int
	CoreArcs    []int
	LineArcs    []int
	WalkingArcs []int

	// 流量读写锁
	mu *xsync.RBMutex
}

// 由数据集构建网络，任何结构约束不满足时返回ErrGraphIntegrity
func New(ds *dataio.Dataset) (*Network, error) {
	net := &Network{
		Nodes: make([]*Node, 0, len(ds.Nodes)),
		Arcs:  make([]*Arc, 0, len(ds.Arcs)),
		Lines: make([]*Line, 0, len(ds.Transit)),
		mu:    xsync.NewRBMutex(),
	}

	// 线路
	seating := ds.VehicleSeating()
	for _, row := range ds.Transit {
		if _, ok := seating[row.VehicleType]; !ok {
			log.Warnf("line %d references unknown vehicle type %d, seating falls back to 0", row.ID, row.VehicleType)
		}
		net.Lines = append(net.Lines, &Line{
			Name:        row.Name,
			Fleet:       row.Fleet,
			Circuit:     row.Circuit,
			Seating:     seating[row.VehicleType],
			DayFraction: row.Scaling,
			DayHorizon:  ds.Horizon,
		})
	}

	// 节点
	for i, row := range ds.Nodes {
		if row.ID != i {
			return nil, fmt.Errorf("node %d: id %d does not match position: %w", i, row.ID, ErrGraphIntegrity)
		}
		switch row.Type {
		case STOP_NODE:
			net.StopNodes = append(net.StopNodes, i)
			net.CoreNodes = append(net.CoreNodes, i)
		case BOARDING_NODE:
			net.BoardingNodes = append(net.BoardingNodes, i)
			net.CoreNodes = append(net.CoreNodes, i)
		case POPULATION_NODE:
			net.PopulationNodes = append(net.PopulationNodes, i)
		case FACILITY_NODE:
			net.FacilityNodes = append(net.FacilityNodes, i)
		default:
			return nil, fmt.Errorf("node %d: unknown type %d: %w", i, row.Type, ErrGraphIntegrity)
		}
		net.Nodes = append(net.Nodes, &Node{
			ID:    row.ID,
			Name:  row.Name,
			Kind:  row.Type,
			Value: row.Value,
		})
	}

	// 弧
	for i, row := range ds.Arcs {
		if row.Tail < 0 || row.Tail >= len(net.Nodes) || row.Head < 0 || row.Head >= len(net.Nodes) {
			return nil, fmt.Errorf("arc %d: tail %d or head %d out of range: %w", i, row.Tail, row.Head, ErrGraphIntegrity)
		}
		if row.Time < 0 {
			return nil, fmt.Errorf("arc %d: negative cost %v: %w", i, row.Time, ErrGraphIntegrity)
		}
		if row.Line < -1 || row.Line >= len(net.Lines) {
			return nil, fmt.Errorf("arc %d: line %d out of range: %w", i, row.Line, ErrGraphIntegrity)
		}
		arc := &Arc{
			ID:   row.ID,
			Kind: row.Type,
			Line: row.Line,
			Tail: row.Tail,
			Head: row.Head,
			Cost: row.Time,
		}
		if row.Type == ACCESS_ARC {
			// 进出弧进入全网进出弧表与尾节点的进出邻接表
			net.AccessArcs = append(net.AccessArcs, i)
			net.Nodes[arc.Tail].AccessOut = append(net.Nodes[arc.Tail].AccessOut, i)
		} else {
			// 核心弧进入全网核心弧表与两端节点的核心邻接表
			net.CoreArcs = append(net.CoreArcs, i)
			net.Nodes[arc.Tail].CoreOut = append(net.Nodes[arc.Tail].CoreOut, i)
			net.Nodes[arc.Head].CoreIn = append(net.Nodes[arc.Head].CoreIn, i)
			switch row.Type {
			case LINE_ARC:
				if arc.Line < 0 {
					return nil, fmt.Errorf("line arc %d without line: %w", i, ErrGraphIntegrity)
				}
				net.LineArcs = append(net.LineArcs, i)
				net.Lines[arc.Line].InVehicle = append(net.Lines[arc.Line].InVehicle, i)
			case BOARDING_ARC:
				if arc.Line < 0 {
					return nil, fmt.Errorf("boarding arc %d without line: %w", i, ErrGraphIntegrity)
				}
				// 上车弧的尾节点是线路的一个站点
				net.Lines[arc.Line].Boarding = append(net.Lines[arc.Line].Boarding, i)
				net.Lines[arc.Line].Stops = append(net.Lines[arc.Line].Stops, arc.Tail)
			case ALIGHTING_ARC:
			case WALKING_ARC:
				net.WalkingArcs = append(net.WalkingArcs, i)
			default:
				return nil, fmt.Errorf("arc %d: unknown type %d: %w", i, row.Type, ErrGraphIntegrity)
			}
			// 上下车弧附加极小成本
			if row.Type == BOARDING_ARC || row.Type == ALIGHTING_ARC {
				arc.Cost += EPSILON
			}
		}
		net.Arcs = append(net.Arcs, arc)
	}

	// 初始流量，ID为核心弧下标
	for _, row := range ds.Flows {
		if row.ID < 0 || row.ID >= len(net.CoreArcs) {
			return nil, fmt.Errorf("flow row: core arc index %d out of range: %w", row.ID, ErrGraphIntegrity)
		}
		net.Arcs[net.CoreArcs[row.ID]].flow = row.Flow
	}

	log.Infof("network built: %d nodes (%d stops, %d boarding, %d population, %d facilities), %d arcs (%d core, %d access), %d lines",
		len(net.Nodes), len(net.StopNodes), len(net.BoardingNodes), len(net.PopulationNodes), len(net.FacilityNodes),
		len(net.Arcs), len(net.CoreArcs), len(net.AccessArcs), len(net.Lines))

	return net, nil
}
