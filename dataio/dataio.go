package dataio

import (
	"context"
	"errors"
	"os"

	"git.fiblab.net/general/common/v2/mongoutil"
	"go.mongodb.org/mongo-driver/mongo"
)

// 数据集六类数据的来源，Problem与Flow可以为空
type Paths struct {
	Node    *Path
	Arc     *Path
	Transit *Path
	Vehicle *Path
	Problem *Path
	Flow    *Path
}

// 按来源读取一类行数据，文件路径走TSV解析，否则按db.coll从mongo读取
func loadRows[T any](client func() *mongo.Client, path *Path, sortKey string, parse func(string) ([]*T, error)) ([]*T, error) {
	if path.File != "" {
		return parse(path.File)
	}
	return findAll[T](context.Background(), mongoutil.GetMongoColl(client(), path), sortKey)
}

// 读取问题数据
func loadProblem(client func() *mongo.Client, path *Path) (*ProblemRow, error) {
	if path.File != "" {
		return ParseProblemFile(path.File)
	}
	return findProblem(context.Background(), mongoutil.GetMongoColl(client(), path))
}

// 读取完整数据集
// 问题数据缺失时采用默认时间范围，流量数据缺失时所有初始流量为0
func LoadDataset(mongoURI string, paths *Paths) (*Dataset, error) {
	if paths.Node == nil {
		return nil, errors.New("node data source is required")
	}
	if paths.Arc == nil {
		return nil, errors.New("arc data source is required")
	}
	if paths.Transit == nil {
		return nil, errors.New("transit data source is required")
	}
	if paths.Vehicle == nil {
		return nil, errors.New("vehicle data source is required")
	}

	var client *mongo.Client
	lazyClient := func() *mongo.Client {
		if client == nil {
			client = mongoutil.NewClient(mongoURI)
		}
		return client
	}
	defer func() {
		if client != nil {
			client.Disconnect(context.Background())
		}
	}()

	ds := &Dataset{Horizon: DEFAULT_HORIZON}

	// 问题数据（时间范围）
	if paths.Problem == nil {
		log.Warnf("no problem data, use default horizon %v min", ds.Horizon)
	} else {
		problem, err := loadProblem(lazyClient, paths.Problem)
		if errors.Is(err, os.ErrNotExist) {
			log.Warnf("problem data %s not found, use default horizon %v min", paths.Problem, ds.Horizon)
		} else if err != nil {
			return nil, err
		} else if problem == nil {
			log.Warnf("problem data %s is empty, use default horizon %v min", paths.Problem, ds.Horizon)
		} else {
			ds.Name = problem.Name
			ds.Horizon = problem.Horizon
			log.Infof("problem %s, horizon %v min", ds.Name, ds.Horizon)
		}
	}

	var err error
	// 节点数据
	if ds.Nodes, err = loadRows(lazyClient, paths.Node, "id", ParseNodeFile); err != nil {
		return nil, err
	}
	log.Infof("load %d nodes from %s", len(ds.Nodes), paths.Node)
	// 车型数据
	if ds.Vehicles, err = loadRows(lazyClient, paths.Vehicle, "type", ParseVehicleFile); err != nil {
		return nil, err
	}
	log.Infof("load %d vehicles from %s", len(ds.Vehicles), paths.Vehicle)
	// 线路数据
	if ds.Transit, err = loadRows(lazyClient, paths.Transit, "id", ParseTransitFile); err != nil {
		return nil, err
	}
	log.Infof("load %d transit lines from %s", len(ds.Transit), paths.Transit)
	// 弧数据
	if ds.Arcs, err = loadRows(lazyClient, paths.Arc, "id", ParseArcFile); err != nil {
		return nil, err
	}
	log.Infof("load %d arcs from %s", len(ds.Arcs), paths.Arc)
	// 初始流量数据
	if paths.Flow == nil {
		log.Debugf("no initial flow data, all flows start at 0")
	} else {
		flows, err := loadRows(lazyClient, paths.Flow, "id", ParseFlowFile)
		if errors.Is(err, os.ErrNotExist) {
			log.Warnf("flow data %s not found, all flows start at 0", paths.Flow)
		} else if err != nil {
			return nil, err
		} else {
			ds.Flows = flows
			log.Infof("load %d initial flows from %s", len(flows), paths.Flow)
		}
	}

	return ds, nil
}
