package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/NoahOriano/see-your-future/internal/bank"
	"github.com/NoahOriano/see-your-future/internal/model"
)

type BankRepository interface {
	// GetAll returns every prebuilt question candidate. An unseeded or
	// unreachable collection falls back to the builtin catalog.
	GetAll(ctx context.Context) ([]model.PrebuiltQuestionConfig, error)
	Seed(ctx context.Context, configs []model.PrebuiltQuestionConfig) error
}

type bankRepository struct {
	collection *mongo.Collection
}

func NewBankRepository(client *mongo.Client, database string) BankRepository {
	db := client.Database(database)
	return &bankRepository{
		collection: db.Collection("prebuilt_questions"),
	}
}

func (r *bankRepository) GetAll(ctx context.Context) ([]model.PrebuiltQuestionConfig, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return bank.Builtin(), nil
	}
	defer cursor.Close(ctx)

	var configs []model.PrebuiltQuestionConfig
	if err = cursor.All(ctx, &configs); err != nil {
		return bank.Builtin(), nil
	}
	if len(configs) == 0 {
		return bank.Builtin(), nil
	}

	return configs, nil
}

// Seed replaces the stored bank with the given catalog.
func (r *bankRepository) Seed(ctx context.Context, configs []model.PrebuiltQuestionConfig) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}

	docs := make([]interface{}, 0, len(configs))
	for i := range configs {
		docs = append(docs, configs[i])
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}
