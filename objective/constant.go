package objective

import (
	"errors"
)

const (
	// 距离计算使用的弧集合
	UNIVERSE_CORE        = 0 // 仅核心弧
	UNIVERSE_CORE_ACCESS = 1 // 核心弧与进出弧
)

var (
	// 错误：目标函数参数非法
	ErrConfiguration = errors.New("invalid objective configuration")
)
