package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/samber/lo"

	"git.fiblab.net/sim/accessibility/network"
)

type StopMetricRow struct {
	StopID int     `json:"stop_id"`
	Metric float64 `json:"metric"`
}

type LineMetricRow struct {
	LineID int     `json:"line_id"`
	StopID int     `json:"stop_id"`
	Metric float64 `json:"metric"`
}

// 站点指标行，按StopNodes顺序
func stopMetricRows(net *network.Network, metrics []float64) []StopMetricRow {
	return lo.Map(metrics, func(m float64, i int) StopMetricRow {
		return StopMetricRow{StopID: net.Nodes[net.StopNodes[i]].ID, Metric: m}
	})
}

// 线路指标行，按线路下标分组，组内按(指标, 站点编号)升序
func lineMetricRows(net *network.Network, metrics []float64) []LineMetricRow {
	remap := make(map[int]int, len(net.StopNodes))
	for i, n := range net.StopNodes {
		remap[n] = i
	}
	rows := make([]LineMetricRow, 0)
	for li, line := range net.Lines {
		group := lo.Map(line.Stops, func(n int, _ int) LineMetricRow {
			return LineMetricRow{LineID: li, StopID: net.Nodes[n].ID, Metric: metrics[remap[n]]}
		})
		sort.Slice(group, func(i, j int) bool {
			if group[i].Metric != group[j].Metric {
				return group[i].Metric < group[j].Metric
			}
			return group[i].StopID < group[j].StopID
		})
		rows = append(rows, group...)
	}
	return rows
}

// 载荷率统计：最大值、全核心弧均值与仅线路弧均值（三者分子相同）
func loadingFactorStats(net *network.Network) (factors []float64, maxLoad, meanCore, meanLine float64) {
	factors = net.LoadingFactors()
	if len(factors) == 0 {
		return
	}
	maxLoad, _ = stats.Max(factors)
	meanCore, _ = stats.Mean(factors)
	if n := len(net.LineArcs); n > 0 {
		total, _ := stats.Sum(factors)
		meanLine = total / float64(n)
	}
	return
}

// 输出核心弧载荷率统计日志，对应初始流量合理性检查
func reportLoadingFactors(net *network.Network) {
	factors, maxLoad, meanCore, meanLine := loadingFactorStats(net)
	if len(factors) == 0 {
		log.Warnf("no core arcs, skip loading factor report")
		return
	}
	log.Infof("maximum loading factor: %v", maxLoad)
	log.Infof("average loading factor (all core arcs): %v", meanCore)
	log.Infof("average loading factor (line arcs only): %v", meanLine)
}

// 写站点指标报告
func writeStopMetrics(name string, net *network.Network, metrics []float64) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "Stop_ID\tGravity_Metric")
	for _, row := range stopMetricRows(net, metrics) {
		fmt.Fprintf(w, "%d\t%.15f\n", row.StopID, row.Metric)
	}
	return w.Flush()
}

// 写线路指标报告
func writeLineMetrics(name string, net *network.Network, metrics []float64) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "Line_ID\tStop_ID\tGravity_Metric")
	for _, row := range lineMetricRows(net, metrics) {
		fmt.Fprintf(w, "%d\t%d\t%.15f\n", row.LineID, row.StopID, row.Metric)
	}
	return w.Flush()
}

// 写设施指标报告
func writeFacilityMetrics(name string, net *network.Network, metrics []float64) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "Facility_ID\tGravity_Metric")
	for i, m := range metrics {
		fmt.Fprintf(w, "%d\t%.15f\n", net.Nodes[net.FacilityNodes[i]].ID, m)
	}
	return w.Flush()
}
