package main

import (
	"fmt"

	"git.fiblab.net/sim/accessibility/dataio"
	"git.fiblab.net/sim/accessibility/network"
	"git.fiblab.net/sim/accessibility/objective"
)

// 一次完整评估的产物
type Evaluation struct {
	Net     *network.Network
	Obj     *objective.Objective
	Metrics []float64
}

// 批处理主流程：读数据、建网络、载荷率统计、计算全站点指标并输出报告
func evaluate(mongoURI string, cfg *Config) (*Evaluation, error) {
	paths, err := cfg.Data.Paths()
	if err != nil {
		return nil, err
	}
	ds, err := dataio.LoadDataset(mongoURI, paths)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	net, err := network.New(ds)
	if err != nil {
		return nil, fmt.Errorf("failed to build network: %w", err)
	}

	reportLoadingFactors(net)

	obj, err := objective.New(net, cfg.Objective.Engine())
	if err != nil {
		return nil, err
	}
	metrics, err := obj.AllMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to compute stop metrics: %w", err)
	}
	log.Infof("computed gravity metrics for %d stops", len(metrics))

	if name := cfg.Output.StopMetrics; name != "" {
		if err := writeStopMetrics(name, net, metrics); err != nil {
			return nil, fmt.Errorf("failed to write stop metrics: %w", err)
		}
		log.Infof("stop metrics written to %s", name)
	}
	if name := cfg.Output.LineMetrics; name != "" {
		if err := writeLineMetrics(name, net, metrics); err != nil {
			return nil, fmt.Errorf("failed to write line metrics: %w", err)
		}
		log.Infof("line metrics written to %s", name)
	}
	if name := cfg.Output.FacilityMetrics; name != "" {
		facMetrics, err := obj.AllFacilityMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to compute facility metrics: %w", err)
		}
		if err := writeFacilityMetrics(name, net, facMetrics); err != nil {
			return nil, fmt.Errorf("failed to write facility metrics: %w", err)
		}
		log.Infof("facility metrics written to %s", name)
	}

	return &Evaluation{Net: net, Obj: obj, Metrics: metrics}, nil
}
