// File: database/repository/program/crud.go
package programRepo

import (
	"context"
	"errors"
	"time"

	"mindhaven/models"
	"mindhaven/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoProgramRepo) Create(ctx context.Context, program *models.Program) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, program); err != nil {
		return utils.NewStorageError("insert program", err)
	}
	return nil
}

func (r *mongoProgramRepo) GetByID(ctx context.Context, id string) (*models.Program, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var program models.Program
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError("program", id)
		}
		return nil, utils.NewStorageError("get program", err)
	}
	return &program, nil
}

func (r *mongoProgramRepo) Update(ctx context.Context, program *models.Program) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	program.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": program.ID}, program)
	if err != nil {
		return utils.NewStorageError("update program", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewNotFoundError("program", program.ID)
	}
	return nil
}

func (r *mongoProgramRepo) SetActive(ctx context.Context, id string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"is_active": active, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return utils.NewStorageError("toggle program", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewNotFoundError("program", id)
	}
	return nil
}

func (r *mongoProgramRepo) List(ctx context.Context, activeOnly bool) ([]models.Program, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "popular", Value: -1}, {Key: "price", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, utils.NewStorageError("list programs", err)
	}
	defer cursor.Close(ctx)

	var programs []models.Program
	if err := cursor.All(ctx, &programs); err != nil {
		return nil, utils.NewStorageError("decode programs", err)
	}
	return programs, nil
}
