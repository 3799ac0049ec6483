package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"shacademy-backend/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Database struct {
	PG    *gorm.DB
	Mongo *mongo.Database
	Redis *redis.Client // nil when REDIS_ADDR is unset
}

func ConnectDB(ctx context.Context, cfg Config) (*Database, error) {
	// 1. PostgreSQL Connection
	pgDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	// 2. MongoDB Connection
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := mongoClient.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	mongoDB := mongoClient.Database(cfg.MongoDBName)

	// 3. Redis (optional)
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(connectCtx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		log.Println("Connected to Redis")
	} else {
		log.Println("Note: REDIS_ADDR not set, using in-memory token store and stats cache")
	}

	log.Println("Connected to PostgreSQL and MongoDB successfully!")

	return &Database{
		PG:    pgDB,
		Mongo: mongoDB,
		Redis: redisClient,
	}, nil
}

func (d *Database) Close(ctx context.Context) {
	if sqlDB, err := d.PG.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("postgres close error: %v", err)
		}
	}
	if err := d.Mongo.Client().Disconnect(ctx); err != nil {
		log.Printf("mongo disconnect error: %v", err)
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			log.Printf("redis close error: %v", err)
		}
	}
}

func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Course{},
		&domain.Enrollment{},
		&domain.Assignment{},
		&domain.Submission{},
	)
	if err != nil {
		return err
	}
	log.Println("Database migration completed!")
	return nil
}
