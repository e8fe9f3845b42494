package objective

import (
	"fmt"
	"math"
	"runtime"

	"git.fiblab.net/sim/accessibility/network"
	"golang.org/x/sync/errgroup"
)

// 目标函数参数
type Config struct {
	// 引力衰减指数，要求为正
	GravityExponent float64
	// 指标乘数
	Multiplier float64
	// 每个站点参与求和的最近设施数
	LowestMetrics int
	// 距离计算使用的弧集合
	Universe int
	// 并行worker数，非正值取GOMAXPROCS
	Workers int
}

// 站点可达性目标函数，除Net的流量外不持有任何跨调用状态
type Objective struct {
	Net *network.Network
	Config

	stopSize int
	facSize  int
}

func New(net *network.Network, cfg Config) (*Objective, error) {
	if cfg.GravityExponent <= 0 {
		return nil, fmt.Errorf("gravity exponent %v is not positive: %w", cfg.GravityExponent, ErrConfiguration)
	}
	if cfg.LowestMetrics < 1 {
		return nil, fmt.Errorf("lowest metrics %d is not positive: %w", cfg.LowestMetrics, ErrConfiguration)
	}
	facSize := len(net.FacilityNodes)
	if facSize > 0 && cfg.LowestMetrics > facSize {
		return nil, fmt.Errorf("lowest metrics %d exceeds facility count %d: %w", cfg.LowestMetrics, facSize, ErrConfiguration)
	}
	if cfg.Universe != UNIVERSE_CORE && cfg.Universe != UNIVERSE_CORE_ACCESS {
		return nil, fmt.Errorf("unknown arc universe %d: %w", cfg.Universe, ErrConfiguration)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	return &Objective{
		Net:      net,
		Config:   cfg,
		stopSize: len(net.StopNodes),
		facSize:  facSize,
	}, nil
}

// 距离阻抗d^(-γ)，d为0或+Inf时为0
func (o *Objective) impedance(d float64) float64 {
	if d == 0 || math.IsInf(d, 1) {
		return 0
	}
	return math.Pow(d, -o.GravityExponent)
}

// 给定距离向量计算引力指标，
// 对距离最小的LowestMetrics个设施按设施编号升序累加value×impedance
func (o *Objective) gravityMetric(dist []float64) float64 {
	facs := o.Net.FacilityNodes
	keys := make([]float64, len(facs))
	for i, f := range facs {
		keys[i] = dist[f]
	}
	total := .0
	for _, f := range lowestK(keys, facs, o.LowestMetrics) {
		total += o.Net.Nodes[f].Value * o.impedance(dist[f])
	}
	return o.Multiplier * total
}

// 给定距离矩阵计算一个设施的引力指标，
// 对距离最小的LowestMetrics个站点按站点编号升序累加value×impedance
func (o *Objective) facilityMetric(f int, rows [][]float64) float64 {
	keys := make([]float64, o.stopSize)
	ids := make([]int, o.stopSize)
	for i := 0; i < o.stopSize; i++ {
		keys[i] = rows[i][f]
		ids[i] = i
	}
	total := .0
	for _, i := range lowestK(keys, ids, o.LowestMetrics) {
		total += o.Net.Nodes[o.Net.StopNodes[i]].Value * o.impedance(rows[i][f])
	}
	return o.Multiplier * total
}

// 单站点到全部节点的最短距离，站点以StopNodes下标给出
func (o *Objective) Distances(stop int) (dist []float64, err error) {
	defer func() {
		if e := recover(); e != nil {
			dist = nil
			err = fmt.Errorf("panic: Distances with stop=%d: %v", stop, e)
		}
	}()
	if stop < 0 || stop >= o.stopSize {
		return nil, fmt.Errorf("stop index %d out of range [0, %d)", stop, o.stopSize)
	}
	return o.distancesFrom(o.Net.StopNodes[stop]), nil
}

// 单站点指标
func (o *Objective) StopMetric(stop int) (metric float64, err error) {
	defer func() {
		if e := recover(); e != nil {
			metric = 0
			err = fmt.Errorf("panic: StopMetric with stop=%d: %v", stop, e)
		}
	}()
	if stop < 0 || stop >= o.stopSize {
		return 0, fmt.Errorf("stop index %d out of range [0, %d)", stop, o.stopSize)
	}
	return o.gravityMetric(o.distancesFrom(o.Net.StopNodes[stop])), nil
}

// 并行计算全部站点的指标，任一站点失败时整体失败
func (o *Objective) AllMetrics() ([]float64, error) {
	metrics := make([]float64, o.stopSize)
	var g errgroup.Group
	g.SetLimit(o.Workers)
	for i := 0; i < o.stopSize; i++ {
		g.Go(func() (err error) {
			defer func() {
				if e := recover(); e != nil {
					err = fmt.Errorf("panic: metric of stop %d: %v", i, e)
				}
			}()
			metrics[i] = o.gravityMetric(o.distancesFrom(o.Net.StopNodes[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return metrics, nil
}

// 并行计算全部设施的指标（以站点价值按距离向设施聚合）
func (o *Objective) AllFacilityMetrics() ([]float64, error) {
	// 距离矩阵，行为站点，列为全部节点
	rows := make([][]float64, o.stopSize)
	var g errgroup.Group
	g.SetLimit(o.Workers)
	for i := 0; i < o.stopSize; i++ {
		g.Go(func() (err error) {
			defer func() {
				if e := recover(); e != nil {
					err = fmt.Errorf("panic: distances of stop %d: %v", i, e)
				}
			}()
			rows[i] = o.distancesFrom(o.Net.StopNodes[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	metrics := make([]float64, o.facSize)
	for j, f := range o.Net.FacilityNodes {
		metrics[j] = o.facilityMetric(f, rows)
	}
	return metrics, nil
}
