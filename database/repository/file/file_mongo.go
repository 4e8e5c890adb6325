package fileRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gobarber/database"
	"gobarber/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no file matches the query.
var ErrNotFound = errors.New("file not found")

// MongoFileRepo implements FileRepository using MongoDB.
type MongoFileRepo struct {
	coll *mongo.Collection
}

// NewMongoFileRepo creates a new instance of FileRepository using MongoDB.
func NewMongoFileRepo() FileRepository {
	repo := &MongoFileRepo{coll: database.Collection("files")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoFileRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new file document.
func (r *MongoFileRepo) Create(ctx context.Context, file *models.File) error {
	file.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, file)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	return nil
}

// GetByID retrieves a file document by its ID.
func (r *MongoFileRepo) GetByID(ctx context.Context, id string) (*models.File, error) {
	var file models.File
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&file)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file %s: %w", id, err)
	}
	return &file, nil
}
