package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"git.fiblab.net/sim/accessibility/dataio"
	"git.fiblab.net/sim/accessibility/objective"
)

// 数据来源配置，每项为文件路径或{db}.{col}
type DataConfig struct {
	Node    string `yaml:"node" validate:"required"`
	Arc     string `yaml:"arc" validate:"required"`
	Transit string `yaml:"transit" validate:"required"`
	Vehicle string `yaml:"vehicle" validate:"required"`
	Problem string `yaml:"problem"`
	Flow    string `yaml:"flow"`
}

// 目标函数配置
type ObjectiveConfig struct {
	// 引力衰减指数
	GravityExponent float64 `yaml:"gravity_exponent" validate:"gt=0"`
	// 指标乘数，缺省为1
	Multiplier float64 `yaml:"multiplier"`
	// 每个站点参与求和的最近设施数
	LowestMetrics int `yaml:"lowest_metrics" validate:"gte=1"`
	// 距离计算的弧集合，core或core_access，缺省core_access
	Universe string `yaml:"universe" validate:"omitempty,oneof=core core_access"`
	// 并行worker数，0表示取GOMAXPROCS
	Workers int `yaml:"workers" validate:"gte=0"`
}

// 报告输出路径，为空的项不输出
type OutputConfig struct {
	StopMetrics     string `yaml:"stop_metrics"`
	LineMetrics     string `yaml:"line_metrics"`
	FacilityMetrics string `yaml:"facility_metrics"`
}

type Config struct {
	Data      DataConfig      `yaml:"data" validate:"required"`
	Objective ObjectiveConfig `yaml:"objective" validate:"required"`
	Output    OutputConfig    `yaml:"output"`
}

// 读取并校验YAML配置文件
func LoadConfig(name string) (*Config, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", name, err)
	}
	// 默认值
	if cfg.Objective.Multiplier == 0 {
		cfg.Objective.Multiplier = 1
	}
	if cfg.Objective.Universe == "" {
		cfg.Objective.Universe = "core_access"
	}
	return cfg, nil
}

// 解析六类数据来源
func (c *DataConfig) Paths() (*dataio.Paths, error) {
	paths := &dataio.Paths{}
	for _, item := range []struct {
		name string
		src  string
		dst  **dataio.Path
	}{
		{"node", c.Node, &paths.Node},
		{"arc", c.Arc, &paths.Arc},
		{"transit", c.Transit, &paths.Transit},
		{"vehicle", c.Vehicle, &paths.Vehicle},
		{"problem", c.Problem, &paths.Problem},
		{"flow", c.Flow, &paths.Flow},
	} {
		p, err := dataio.NewPath(item.src)
		if err != nil {
			return nil, fmt.Errorf("invalid %s source %q: %w", item.name, item.src, err)
		}
		*item.dst = p
	}
	return paths, nil
}

// 转换为目标函数参数
func (c *ObjectiveConfig) Engine() objective.Config {
	universe := objective.UNIVERSE_CORE_ACCESS
	if c.Universe == "core" {
		universe = objective.UNIVERSE_CORE
	}
	return objective.Config{
		GravityExponent: c.GravityExponent,
		Multiplier:      c.Multiplier,
		LowestMetrics:   c.LowestMetrics,
		Universe:        universe,
		Workers:         c.Workers,
	}
}
