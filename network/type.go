package network

import (
	"math"
)

// 节点，在Network.Nodes中的下标即为节点编号
type Node struct {
	ID    int
	Name  string
	Kind  int
	Value float64

	// 邻接表，存弧在Network.Arcs中的下标
	CoreOut   []int
	CoreIn    []int
	AccessOut []int
}

// 弧，ID来自输入数据，寻址一律使用下标
type Arc struct {
	ID   int
	Kind int
	// 所属线路下标，无线路时为-1
	Line int
	Tail int
	Head int
	// 通行成本（单位：分钟），上下车弧已含EPSILON
	Cost float64

	// 当前流量，经Network加锁读写
	flow float64
}

// 线路
type Line struct {
	Name string
	// 车队规模
	Fleet int
	// 单车环线时间（单位：分钟）
	Circuit float64
	// 车型座位数
	Seating float64
	// 每日运营时间占比
	DayFraction float64
	// 每日时间范围（单位：分钟）
	DayHorizon float64

	// 上车弧尾节点（Nodes下标），按弧数据顺序
	Stops []int
	// 线路弧与上车弧（Arcs下标），按弧数据顺序
	InVehicle []int
	Boarding  []int
}

// 发车频率（单位：班次/分钟）
func (l *Line) Frequency() float64 {
	return float64(l.Fleet) / l.Circuit
}

// 平均发车间隔（单位：分钟），无车队时为+Inf
func (l *Line) Headway() float64 {
	if l.Fleet > 0 {
		return l.Circuit / float64(l.Fleet)
	}
	return math.Inf(0)
}

// 日承载容量（单位：人次）
func (l *Line) Capacity() float64 {
	return l.Frequency() * l.DayFraction * l.DayHorizon * l.Seating
}
