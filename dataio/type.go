package dataio

import (
	"github.com/samber/lo"
)

const (
	// 默认时间范围（单位：分钟，全天24小时）
	DEFAULT_HORIZON = 1440.0
)

// 节点文件行，列为ID/Name/Type/Line/Value
type NodeRow struct {
	ID    int     `bson:"id"`
	Name  string  `bson:"name"`
	Type  int     `bson:"type"`
	Line  int     `bson:"line"`
	Value float64 `bson:"value"`
}

// 弧文件行，列为ID/Type/Line/Tail/Head/Time
type ArcRow struct {
	ID   int     `bson:"id"`
	Type int     `bson:"type"`
	Line int     `bson:"line"`
	Tail int     `bson:"tail"`
	Head int     `bson:"head"`
	Time float64 `bson:"time"`
}

// 线路文件行，列为ID/Name/Type/Fleet/Circuit/Scaling/LB/UB/Fare/Frequency/Capacity
// 最后两列为参考值，由Line重新推导，不读入
type TransitRow struct {
	ID          int     `bson:"id"`
	Name        string  `bson:"name"`
	VehicleType int     `bson:"vehicle_type"`
	Fleet       int     `bson:"fleet"`
	Circuit     float64 `bson:"circuit"`
	Scaling     float64 `bson:"scaling"`
	LB          int     `bson:"lb"`
	UB          int     `bson:"ub"`
	Fare        float64 `bson:"fare"`
}

// 车型文件行，列为Type/Name/UB/Seating/Cost
type VehicleRow struct {
	Type    int     `bson:"type"`
	Name    string  `bson:"name"`
	UB      int     `bson:"ub"`
	Seating float64 `bson:"seating"`
	Cost    float64 `bson:"cost"`
}

// 初始流量文件行，列为ID/Flow
// 注意ID是核心弧列表中的下标而不是弧的ID
type FlowRow struct {
	ID   int     `bson:"id"`
	Flow float64 `bson:"flow"`
}

// 问题文件行，列为Name/Horizon
type ProblemRow struct {
	Name    string  `bson:"name"`
	Horizon float64 `bson:"horizon"`
}

// 数据集，六类数据全部读入后的结果
type Dataset struct {
	// 问题名
	Name string
	// 时间范围（单位：分钟）
	Horizon  float64
	Nodes    []*NodeRow
	Arcs     []*ArcRow
	Transit  []*TransitRow
	Vehicles []*VehicleRow
	Flows    []*FlowRow
}

// 车型编号到座位数的映射
func (d *Dataset) VehicleSeating() map[int]float64 {
	return lo.SliceToMap(d.Vehicles, func(v *VehicleRow) (int, float64) {
		return v.Type, v.Seating
	})
}
