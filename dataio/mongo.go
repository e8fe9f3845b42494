package dataio

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 从mongo集合中按sortKey升序读取全部行，保证构建顺序与文件一致
func findAll[T any](ctx context.Context, coll *mongo.Collection, sortKey string) ([]*T, error) {
	cursor, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: sortKey, Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	rows := make([]*T, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// 读取问题集合中的第一条记录，集合为空时返回nil
func findProblem(ctx context.Context, coll *mongo.Collection) (*ProblemRow, error) {
	row := &ProblemRow{}
	err := coll.FindOne(ctx, bson.D{}).Decode(row)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}
