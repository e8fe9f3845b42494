package sollog_test

import (
	"os"
	"path/filepath"
	"testing"

	"git.fiblab.net/sim/accessibility/sollog"
	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadWrite(t *testing.T) {
	in := writeFile(t, "log.txt",
		"Solution log\n"+
			"0_1_1\t1\t0.500000000000000\t1.000000000000000\t2.000000000000000\t3.000000000000000\t4.000000000000000\t5.000000000000000\t\n"+
			"0_2_0\t-1\t9.250000000000000\t0.000000000000000\t0.000000000000000\t0.000000000000000\t0.000000000000000\t0.000000000000000\t\n")

	l, err := sollog.Read(in)
	assert.NoError(t, err)
	assert.Equal(t, "Solution log", l.Comment)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []string{"0_1_1", "0_2_0"}, l.Keys())

	e, ok := l.Get("0_1_1")
	assert.True(t, ok)
	assert.Equal(t, sollog.FEASIBLE, e.Feasible)
	assert.Equal(t, [sollog.ENTRY_VALUES]float64{0.5, 1, 2, 3, 4, 5}, e.Values)

	// 写出后按字节复现输入
	out := filepath.Join(t.TempDir(), "out.txt")
	assert.NoError(t, l.Write(out))
	data, err := os.ReadFile(out)
	assert.NoError(t, err)
	want, err := os.ReadFile(in)
	assert.NoError(t, err)
	assert.Equal(t, string(want), string(data))
}

func TestReadErrors(t *testing.T) {
	_, err := sollog.Read(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	short := writeFile(t, "short.txt", "comment\nkey\t1\t0.5\n")
	_, err = sollog.Read(short)
	assert.ErrorIs(t, err, sollog.ErrBadLog)
	assert.Contains(t, err.Error(), "short.txt:2")

	bad := writeFile(t, "bad.txt", "comment\nkey\t1\tx\t0\t0\t0\t0\t0\n")
	_, err = sollog.Read(bad)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bad.txt:2")
}

func TestMerge(t *testing.T) {
	build := func() (*sollog.Log, *sollog.Log) {
		a := sollog.NewLog()
		a.Comment = "log a"
		a.Set("S_1", &sollog.Entry{Feasible: 1, Values: [sollog.ENTRY_VALUES]float64{10, 1, 2, 3, 4, 5}})
		a.Set("S_2", &sollog.Entry{Feasible: 0, Values: [sollog.ENTRY_VALUES]float64{20, 0, 0, 0, 0, 0}})
		b := sollog.NewLog()
		b.Comment = "log b"
		b.Set("S_1", &sollog.Entry{Feasible: 0, Values: [sollog.ENTRY_VALUES]float64{12, 0, 1, 5, 2, 7}})
		b.Set("S_3", &sollog.Entry{Feasible: -1, Values: [sollog.ENTRY_VALUES]float64{30, 0, 0, 0, 0, 0}})
		return a, b
	}

	// 保守合并：可行性取小，数值取大
	a, b := build()
	conflicts := a.Merge(b, true)
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, "log a", a.Comment)
	assert.Equal(t, []string{"S_1", "S_2", "S_3"}, a.Keys())
	e, _ := a.Get("S_1")
	assert.Equal(t, sollog.INFEASIBLE, e.Feasible)
	assert.Equal(t, [sollog.ENTRY_VALUES]float64{12, 1, 2, 5, 4, 7}, e.Values)

	// 反向合并：可行性取大，数值取小
	a, b = build()
	conflicts = a.Merge(b, false)
	assert.Equal(t, 1, conflicts)
	e, _ = a.Get("S_1")
	assert.Equal(t, sollog.FEASIBLE, e.Feasible)
	assert.Equal(t, [sollog.ENTRY_VALUES]float64{10, 0, 1, 3, 2, 5}, e.Values)

	// 合并不共享记录
	e2, _ := b.Get("S_3")
	e3, _ := a.Get("S_3")
	e2.Values[0] = 99
	assert.Equal(t, 30.0, e3.Values[0])
}

func TestReadUserCost(t *testing.T) {
	path := writeFile(t, "cost.txt",
		"User cost data\n"+
			"initial\t1000.0\n"+
			"percent\t1.5\n"+
			"elements\t3\n"+
			"weight_0\t1.0\n"+
			"weight_1\t2.0\n"+
			"weight_2\t0.5\n")

	uc, err := sollog.ReadUserCost(path)
	assert.NoError(t, err)
	assert.Equal(t, 1000.0, uc.Initial)
	assert.Equal(t, 1.5, uc.Percent)
	assert.Equal(t, []float64{1, 2, 0.5}, uc.Weights)
}

func TestReadUserCostErrors(t *testing.T) {
	truncated := writeFile(t, "cost.txt",
		"User cost data\ninitial\t1000.0\npercent\t1.5\nelements\t3\nweight_0\t1.0\n")
	_, err := sollog.ReadUserCost(truncated)
	assert.ErrorIs(t, err, sollog.ErrBadUserCost)

	tooMany := writeFile(t, "cost.txt",
		"User cost data\ninitial\t1000.0\npercent\t1.5\nelements\t9\n")
	_, err = sollog.ReadUserCost(tooMany)
	assert.ErrorIs(t, err, sollog.ErrBadUserCost)
}

func TestUpdateFeasibility(t *testing.T) {
	l := sollog.NewLog()
	l.Comment = "log"
	// 用户成本 1*100 + 2*200 = 500 ≤ 1.5*1000
	l.Set("ok", &sollog.Entry{Feasible: 0, Values: [sollog.ENTRY_VALUES]float64{1, 100, 200, 0, 0, 0}})
	// 用户成本 1*1000 + 2*400 = 1800 > 1500
	l.Set("over", &sollog.Entry{Feasible: 1, Values: [sollog.ENTRY_VALUES]float64{1, 1000, 400, 0, 0, 0}})
	// 未知状态不参与
	l.Set("unknown", &sollog.Entry{Feasible: -1, Values: [sollog.ENTRY_VALUES]float64{1, 9999, 9999, 0, 0, 0}})

	l.UpdateFeasibility(&sollog.UserCost{Initial: 1000, Percent: 1.5, Weights: []float64{1, 2}})

	e, _ := l.Get("ok")
	assert.Equal(t, sollog.FEASIBLE, e.Feasible)
	e, _ = l.Get("over")
	assert.Equal(t, sollog.INFEASIBLE, e.Feasible)
	e, _ = l.Get("unknown")
	assert.Equal(t, sollog.UNKNOWN, e.Feasible)
}

func TestExpand(t *testing.T) {
	l := sollog.NewLog()
	l.Set("1_2", &sollog.Entry{Feasible: 1})
	l.Set("3_4", &sollog.Entry{Feasible: 0})

	l.Expand(2)
	assert.Equal(t, []string{"1_2_0_0", "3_4_0_0"}, l.Keys())
	_, ok := l.Get("1_2")
	assert.False(t, ok)
	e, ok := l.Get("1_2_0_0")
	assert.True(t, ok)
	assert.Equal(t, sollog.FEASIBLE, e.Feasible)

	// 非正数不变
	l.Expand(0)
	assert.Equal(t, []string{"1_2_0_0", "3_4_0_0"}, l.Keys())
}

func TestClearUnknown(t *testing.T) {
	l := sollog.NewLog()
	l.Set("a", &sollog.Entry{Feasible: 1})
	l.Set("b", &sollog.Entry{Feasible: -1})
	l.Set("c", &sollog.Entry{Feasible: 0})
	l.Set("d", &sollog.Entry{Feasible: -1})

	removed := l.ClearUnknown()
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"a", "c"}, l.Keys())
	_, ok := l.Get("b")
	assert.False(t, ok)
}
