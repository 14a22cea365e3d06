package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NoahOriano/see-your-future/internal/bank"
	"github.com/NoahOriano/see-your-future/internal/config"
	"github.com/NoahOriano/see-your-future/internal/repository"
)

// Seeds the prebuilt question bank into MongoDB. The server falls back to
// the builtin catalog when the collection is empty, so running this is only
// needed to customize the bank afterwards.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	bankRepo := repository.NewBankRepository(client, cfg.Mongo.Database)

	catalog := bank.Builtin()
	if err := bankRepo.Seed(ctx, catalog); err != nil {
		log.Fatalf("failed to seed question bank: %v", err)
	}

	log.Printf("seeded %d prebuilt questions into %s.prebuilt_questions", len(catalog), cfg.Mongo.Database)
}
