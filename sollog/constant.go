package sollog

import "errors"

const (
	// 可行性标记
	FEASIBLE   = 1
	INFEASIBLE = 0
	UNKNOWN    = -1

	// 每条记录的数值列数（可行性标记除外），首列为目标值
	ENTRY_VALUES = 6
)

var (
	ErrBadLog      = errors.New("bad solution log")
	ErrBadUserCost = errors.New("bad user cost file")
)
