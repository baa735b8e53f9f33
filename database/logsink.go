package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"parcel-delivery/config"
	"parcel-delivery/logger"
	log_model "parcel-delivery/models/log"
	"parcel-delivery/types"
)

const LogCollection = "logs"

func toLogModel(entry types.LogEntry) log_model.Log {
	return log_model.Log{
		Method:          entry.Method,
		URL:             entry.URL,
		RequestBody:     entry.RequestBody,
		ResponseBody:    entry.ResponseBody,
		RequestHeaders:  entry.RequestHeaders,
		ResponseHeaders: entry.ResponseHeaders,
		StatusCode:      entry.StatusCode,
		CreatedAt:       entry.CreatedAt,
	}
}

// MongoLogSink stores request logs next to the application data.
type MongoLogSink struct {
	coll *mongo.Collection
}

func NewMongoLogSink(db *mongo.Database) *MongoLogSink {
	return &MongoLogSink{coll: db.Collection(LogCollection)}
}

func (s *MongoLogSink) Write(ctx context.Context, entry types.LogEntry) error {
	if _, err := s.coll.InsertOne(ctx, toLogModel(entry)); err != nil {
		return fmt.Errorf("insert request log: %w", err)
	}
	return nil
}

// GormLogSink stores request logs in a relational database.
type GormLogSink struct {
	db *gorm.DB
}

// NewGormLogSink opens a Postgres connection and migrates the request_logs table.
func NewGormLogSink(dsn string) (*GormLogSink, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open log database: %w", err)
	}
	if err := db.AutoMigrate(&log_model.Log{}); err != nil {
		return nil, fmt.Errorf("failed to migrate %T: %w", log_model.Log{}, err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_request_logs_created_at ON request_logs(created_at)").Error; err != nil {
		return nil, fmt.Errorf("failed to create log created_at index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_request_logs_status_code ON request_logs(status_code)").Error; err != nil {
		return nil, fmt.Errorf("failed to create log status_code index: %w", err)
	}
	logger.Success("Request log table ready")
	return &GormLogSink{db: db}, nil
}

func (s *GormLogSink) Write(ctx context.Context, entry types.LogEntry) error {
	dbLog := toLogModel(entry)
	if err := s.db.WithContext(ctx).Create(&dbLog).Error; err != nil {
		return fmt.Errorf("insert request log: %w", err)
	}
	return nil
}

// NewLogSink picks the request log sink named by cfg.LogSink. A nil sink
// with a nil error means request logging is disabled.
func NewLogSink(cfg config.Config, db *mongo.Database) (logger.LogSink, error) {
	switch cfg.LogSink {
	case "", "mongo":
		return NewMongoLogSink(db), nil
	case "postgres":
		if cfg.LogDBDSN == "" {
			return nil, fmt.Errorf("LOG_DB_DSN is required for the postgres log sink")
		}
		sink, err := NewGormLogSink(cfg.LogDBDSN)
		if err != nil {
			return nil, err
		}
		return sink, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown log sink %q", cfg.LogSink)
	}
}
