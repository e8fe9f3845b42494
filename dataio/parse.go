package dataio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// 读取制表符分隔文件，跳过skip行头部注释后逐行回调
// 列数不足或回调失败时返回带文件名与行号的错误
func readTSV(name string, skip, want int, fn func(fields []string) error) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	reader := csv.NewReader(f)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	line := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		line++
		if line <= skip {
			continue
		}
		if len(fields) == 1 && fields[0] == "" {
			// 文件末尾空行
			continue
		}
		if len(fields) < want {
			return fmt.Errorf("%s:%d: expect %d columns, got %d", name, line, want, len(fields))
		}
		if err := fn(fields); err != nil {
			return fmt.Errorf("%s:%d: %w", name, line, err)
		}
	}
}

// 解析节点文件
func ParseNodeFile(name string) ([]*NodeRow, error) {
	rows := make([]*NodeRow, 0)
	err := readTSV(name, 1, 5, func(fields []string) error {
		row := &NodeRow{Name: fields[1]}
		var err error
		if row.ID, err = strconv.Atoi(fields[0]); err != nil {
			return fmt.Errorf("bad node id %q: %w", fields[0], err)
		}
		if row.Type, err = strconv.Atoi(fields[2]); err != nil {
			return fmt.Errorf("bad node type %q: %w", fields[2], err)
		}
		if row.Line, err = strconv.Atoi(fields[3]); err != nil {
			return fmt.Errorf("bad node line %q: %w", fields[3], err)
		}
		if row.Value, err = strconv.ParseFloat(fields[4], 64); err != nil {
			return fmt.Errorf("bad node value %q: %w", fields[4], err)
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// 解析弧文件
func ParseArcFile(name string) ([]*ArcRow, error) {
	rows := make([]*ArcRow, 0)
	err := readTSV(name, 1, 6, func(fields []string) error {
		row := &ArcRow{}
		var err error
		if row.ID, err = strconv.Atoi(fields[0]); err != nil {
			return fmt.Errorf("bad arc id %q: %w", fields[0], err)
		}
		if row.Type, err = strconv.Atoi(fields[1]); err != nil {
			return fmt.Errorf("bad arc type %q: %w", fields[1], err)
		}
		if row.Line, err = strconv.Atoi(fields[2]); err != nil {
			return fmt.Errorf("bad arc line %q: %w", fields[2], err)
		}
		if row.Tail, err = strconv.Atoi(fields[3]); err != nil {
			return fmt.Errorf("bad arc tail %q: %w", fields[3], err)
		}
		if row.Head, err = strconv.Atoi(fields[4]); err != nil {
			return fmt.Errorf("bad arc head %q: %w", fields[4], err)
		}
		if row.Time, err = strconv.ParseFloat(fields[5], 64); err != nil {
			return fmt.Errorf("bad arc time %q: %w", fields[5], err)
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// 解析线路文件
func ParseTransitFile(name string) ([]*TransitRow, error) {
	rows := make([]*TransitRow, 0)
	err := readTSV(name, 1, 9, func(fields []string) error {
		row := &TransitRow{Name: fields[1]}
		var err error
		if row.ID, err = strconv.Atoi(fields[0]); err != nil {
			return fmt.Errorf("bad line id %q: %w", fields[0], err)
		}
		if row.VehicleType, err = strconv.Atoi(fields[2]); err != nil {
			return fmt.Errorf("bad line vehicle type %q: %w", fields[2], err)
		}
		if row.Fleet, err = strconv.Atoi(fields[3]); err != nil {
			return fmt.Errorf("bad line fleet %q: %w", fields[3], err)
		}
		if row.Circuit, err = strconv.ParseFloat(fields[4], 64); err != nil {
			return fmt.Errorf("bad line circuit %q: %w", fields[4], err)
		}
		if row.Scaling, err = strconv.ParseFloat(fields[5], 64); err != nil {
			return fmt.Errorf("bad line scaling %q: %w", fields[5], err)
		}
		if row.LB, err = strconv.Atoi(fields[6]); err != nil {
			return fmt.Errorf("bad line lb %q: %w", fields[6], err)
		}
		if row.UB, err = strconv.Atoi(fields[7]); err != nil {
			return fmt.Errorf("bad line ub %q: %w", fields[7], err)
		}
		if row.Fare, err = strconv.ParseFloat(fields[8], 64); err != nil {
			return fmt.Errorf("bad line fare %q: %w", fields[8], err)
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// 解析车型文件
func ParseVehicleFile(name string) ([]*VehicleRow, error) {
	rows := make([]*VehicleRow, 0)
	err := readTSV(name, 1, 5, func(fields []string) error {
		row := &VehicleRow{Name: fields[1]}
		var err error
		if row.Type, err = strconv.Atoi(fields[0]); err != nil {
			return fmt.Errorf("bad vehicle type %q: %w", fields[0], err)
		}
		if row.UB, err = strconv.Atoi(fields[2]); err != nil {
			return fmt.Errorf("bad vehicle ub %q: %w", fields[2], err)
		}
		if row.Seating, err = strconv.ParseFloat(fields[3], 64); err != nil {
			return fmt.Errorf("bad vehicle seating %q: %w", fields[3], err)
		}
		if row.Cost, err = strconv.ParseFloat(fields[4], 64); err != nil {
			return fmt.Errorf("bad vehicle cost %q: %w", fields[4], err)
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// 解析问题文件，头部为注释行与元素名行两行
func ParseProblemFile(name string) (*ProblemRow, error) {
	var row *ProblemRow
	err := readTSV(name, 2, 2, func(fields []string) error {
		if row != nil {
			// 只取第一条记录
			return nil
		}
		horizon, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("bad horizon %q: %w", fields[1], err)
		}
		row = &ProblemRow{Name: fields[0], Horizon: horizon}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("%s: no problem record", name)
	}
	return row, nil
}

// 解析初始流量文件
func ParseFlowFile(name string) ([]*FlowRow, error) {
	rows := make([]*FlowRow, 0)
	err := readTSV(name, 1, 2, func(fields []string) error {
		row := &FlowRow{}
		var err error
		if row.ID, err = strconv.Atoi(fields[0]); err != nil {
			return fmt.Errorf("bad flow arc index %q: %w", fields[0], err)
		}
		if row.Flow, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return fmt.Errorf("bad flow value %q: %w", fields[1], err)
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
