package sollog

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// 一条解记录，Values首列为目标值，随后为用户成本分量等
type Entry struct {
	Feasible int
	Values   [ENTRY_VALUES]float64
}

// 解日志，保持记录读入顺序
type Log struct {
	// 首行注释
	Comment string

	keys    []string
	entries map[string]*Entry
}

func NewLog() *Log {
	return &Log{entries: make(map[string]*Entry)}
}

func (l *Log) Len() int {
	return len(l.keys)
}

// 全部key，按读入顺序
func (l *Log) Keys() []string {
	return l.keys
}

func (l *Log) Get(key string) (*Entry, bool) {
	e, ok := l.entries[key]
	return e, ok
}

// 写入一条记录，key已存在时覆盖且不改变顺序
func (l *Log) Set(key string, e *Entry) {
	if _, ok := l.entries[key]; !ok {
		l.keys = append(l.keys, key)
	}
	l.entries[key] = e
}

// 读解日志，首行为注释行，
// 之后每行为key、可行性标记与ENTRY_VALUES个数值，空行跳过
func Read(name string) (*Log, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l := NewLog()
	scanner := bufio.NewScanner(f)
	// key为下划线拼接的解向量，可能很长
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if line == 1 {
			l.Comment = scanner.Text()
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2+ENTRY_VALUES {
			return nil, fmt.Errorf("%s:%d: want %d columns, got %d: %w", name, line, 2+ENTRY_VALUES, len(fields), ErrBadLog)
		}
		e := &Entry{}
		if e.Feasible, err = strconv.Atoi(fields[1]); err != nil {
			return nil, fmt.Errorf("%s:%d: bad feasibility %q: %w", name, line, fields[1], err)
		}
		for i := 0; i < ENTRY_VALUES; i++ {
			if e.Values[i], err = strconv.ParseFloat(fields[2+i], 64); err != nil {
				return nil, fmt.Errorf("%s:%d: bad value %q: %w", name, line, fields[2+i], err)
			}
		}
		l.Set(fields[0], e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	log.Debugf("solution log %s: %d entries", name, l.Len())
	return l, nil
}

// 写解日志，数值列一律%.15f且行尾带制表符
func (l *Log) Write(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, l.Comment)
	for _, key := range l.keys {
		e := l.entries[key]
		fmt.Fprintf(w, "%s\t%d\t", key, e.Feasible)
		for _, v := range e.Values {
			fmt.Fprintf(w, "%.15f\t", v)
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	log.Debugf("solution log %s: %d entries written", name, l.Len())
	return nil
}

// 合并另一份日志，注释行保留本方的，返回key冲突数。
// highest为真时冲突记录取较小可行性与较大数值，作为保守估计；为假时相反
func (l *Log) Merge(other *Log, highest bool) int {
	conflicts := 0
	for _, key := range other.keys {
		in := other.entries[key]
		cur, ok := l.entries[key]
		if !ok {
			l.Set(key, &Entry{Feasible: in.Feasible, Values: in.Values})
			continue
		}
		conflicts++
		if highest {
			cur.Feasible = min(cur.Feasible, in.Feasible)
			for i := range cur.Values {
				cur.Values[i] = max(cur.Values[i], in.Values[i])
			}
		} else {
			cur.Feasible = max(cur.Feasible, in.Feasible)
			for i := range cur.Values {
				cur.Values[i] = min(cur.Values[i], in.Values[i])
			}
		}
	}
	return conflicts
}

// 用户成本参数
type UserCost struct {
	// 初始用户成本
	Initial float64
	// 成本增幅上限（初始成本的倍数）
	Percent float64
	// 各成本分量的权重
	Weights []float64
}

// 读用户成本文件，首行为注释行，
// 之后依次为初始成本、增幅上限、分量数与每个分量的权重，每行取第二列
func ReadUserCost(name string) (*UserCost, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("%s: empty file: %w", name, ErrBadUserCost)
	}
	next := func(what string) (string, error) {
		for scanner.Scan() {
			fields := strings.Fields(scanner.Text())
			if len(fields) == 0 {
				continue
			}
			if len(fields) < 2 {
				return "", fmt.Errorf("%s: bad %s line %q: %w", name, what, scanner.Text(), ErrBadUserCost)
			}
			return fields[1], nil
		}
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%s: missing %s: %w", name, what, ErrBadUserCost)
	}
	nextFloat := func(what string) (float64, error) {
		s, err := next(what)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: bad %s %q: %w", name, what, s, err)
		}
		return v, nil
	}

	uc := &UserCost{}
	if uc.Initial, err = nextFloat("initial cost"); err != nil {
		return nil, err
	}
	if uc.Percent, err = nextFloat("increase percent"); err != nil {
		return nil, err
	}
	s, err := next("element count")
	if err != nil {
		return nil, err
	}
	elements, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%s: bad element count %q: %w", name, s, err)
	}
	if elements < 0 || elements > ENTRY_VALUES-1 {
		return nil, fmt.Errorf("%s: element count %d out of range [0, %d]: %w", name, elements, ENTRY_VALUES-1, ErrBadUserCost)
	}
	uc.Weights = make([]float64, elements)
	for i := range uc.Weights {
		if uc.Weights[i], err = nextFloat(fmt.Sprintf("weight %d", i)); err != nil {
			return nil, err
		}
	}
	return uc, nil
}

// 按用户成本参数重算全部记录的可行性，未知状态保持未知。
// 用户成本为权重与对应分量的内积，分量从Values[1]起
func (l *Log) UpdateFeasibility(uc *UserCost) {
	bound := uc.Percent * uc.Initial
	for _, key := range l.keys {
		e := l.entries[key]
		if e.Feasible == UNKNOWN {
			continue
		}
		cost := .0
		for i, w := range uc.Weights {
			cost += w * e.Values[1+i]
		}
		if cost <= bound {
			e.Feasible = FEASIBLE
		} else {
			e.Feasible = INFEASIBLE
		}
	}
}

// 在全部key末尾附加elements个"_0"，对应解向量末尾新增的零元素
func (l *Log) Expand(elements int) {
	if elements <= 0 {
		return
	}
	suffix := strings.Repeat("_0", elements)
	entries := make(map[string]*Entry, len(l.entries))
	for i, key := range l.keys {
		l.keys[i] = key + suffix
		entries[l.keys[i]] = l.entries[key]
	}
	l.entries = entries
}

// 删除可行性未知的记录，返回删除数
func (l *Log) ClearUnknown() int {
	kept := l.keys[:0]
	removed := 0
	for _, key := range l.keys {
		if l.entries[key].Feasible == UNKNOWN {
			delete(l.entries, key)
			removed++
		} else {
			kept = append(kept, key)
		}
	}
	l.keys = kept
	return removed
}
