package network

import (
	"errors"
)

const (
	// 节点类型编码，与节点数据Type列一致
	STOP_NODE       = 0
	BOARDING_NODE   = 1
	POPULATION_NODE = 2
	FACILITY_NODE   = 3

	// 弧类型编码，与弧数据Type列一致
	LINE_ARC      = 0
	BOARDING_ARC  = 1
	ALIGHTING_ARC = 2
	WALKING_ARC   = 3
	ACCESS_ARC    = 4

	// 上下车弧在输入成本上附加的极小成本
	EPSILON = 1e-9
)

var (
	// 错误：输入数据不满足图结构约束
	ErrGraphIntegrity = errors.New("graph integrity violation")
)
