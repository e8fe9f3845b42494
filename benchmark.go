package main

import (
	"flag"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	benchmarkCount = flag.Int("benchmark.count", 16, "the all-stops evaluation count for benchmark")
	benchmarkCPU   = flag.Int("benchmark.cpu", 0, "the cpu count for benchmark (0 means GOMAXPROCS)")
)

// 重复执行全站点指标计算并报告耗时
func runBenchmark(ev *Evaluation) {
	log.Logger.SetLevel(logrus.WarnLevel)
	if *benchmarkCPU > 0 {
		// 设置cpu数量
		runtime.GOMAXPROCS(*benchmarkCPU)
	}

	start := time.Now()
	var success atomic.Int32
	for i := 0; i < *benchmarkCount; i++ {
		metrics, err := ev.Obj.AllMetrics()
		if err != nil {
			log.Error("benchmark failed, err:", err)
			continue
		}
		if len(metrics) == len(ev.Net.StopNodes) {
			success.Add(1)
		}
	}
	timeCost := time.Since(start)
	log.Error(
		"benchmark finished", "\n",
		"stops:", len(ev.Net.StopNodes), "\n",
		"count:", *benchmarkCount, "\n",
		"time:", timeCost, "\n",
		"avg:", timeCost/time.Duration(*benchmarkCount), "\n",
		"success:", success.Load(), "\n",
	)
}
