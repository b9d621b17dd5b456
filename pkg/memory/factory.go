package memory

import (
	"context"
	"fmt"

	"github.com/barekit/praxis/pkg/memory/consts"
	"github.com/barekit/praxis/pkg/memory/inmemory"
	mongostore "github.com/barekit/praxis/pkg/memory/mongo"
	"github.com/barekit/praxis/pkg/memory/mssql"
	"github.com/barekit/praxis/pkg/memory/mysql"
	"github.com/barekit/praxis/pkg/memory/neo4j"
	"github.com/barekit/praxis/pkg/memory/postgres"
	"github.com/barekit/praxis/pkg/memory/redis"
	"github.com/barekit/praxis/pkg/memory/sqlite"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Type identifies a transcript store backend.
type Type string

const (
	TypeSQLite   Type = "sqlite"
	TypePostgres Type = "postgres"
	TypeMySQL    Type = "mysql"
	TypeMSSQL    Type = "mssql"
	TypeRedis    Type = "redis"
	TypeNeo4j    Type = "neo4j"
	TypeMongo    Type = "mongo"
	TypeInMemory Type = "inmemory"
)

// Config holds configuration for transcript store backends.
type Config struct {
	Type             Type
	ConnectionString string
	Username         string
	Password         string
	DBName           string
}

// NewStore creates a transcript store for the configured backend.
func NewStore(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Type {
	case TypeSQLite:
		return sqlite.New(cfg.ConnectionString)

	case TypePostgres:
		return postgres.New(cfg.ConnectionString)

	case TypeRedis:
		opts, err := goredis.ParseURL(cfg.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		client := goredis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return redis.New(client), nil

	case TypeNeo4j:
		dbName := "neo4j"
		if cfg.DBName != "" {
			dbName = cfg.DBName
		}
		return neo4j.New(cfg.ConnectionString, cfg.Username, cfg.Password, dbName)

	case TypeMongo:
		opts := options.Client().ApplyURI(cfg.ConnectionString)
		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			return nil, fmt.Errorf("failed to ping mongo: %w", err)
		}
		dbName := consts.DefaultDBName
		if cfg.DBName != "" {
			dbName = cfg.DBName
		}
		return mongostore.New(client, dbName, consts.TableNameMessages), nil

	case TypeMySQL:
		return mysql.New(cfg.ConnectionString)

	case TypeMSSQL:
		return mssql.New(cfg.ConnectionString)

	case TypeInMemory:
		return inmemory.New(), nil

	default:
		return nil, fmt.Errorf("unsupported memory type: %s", cfg.Type)
	}
}

// ConfigFromEnv builds a Config from MEMORY_* environment variables,
// defaulting to an in-process store so the exercises run without any
// database. Lookup is injected so tests can avoid the real environment.
func ConfigFromEnv(lookup func(string) string) Config {
	cfg := Config{
		Type:             TypeInMemory,
		ConnectionString: "",
	}
	if t := lookup("MEMORY_TYPE"); t != "" {
		cfg.Type = Type(t)
	}
	if c := lookup("MEMORY_CONN"); c != "" {
		cfg.ConnectionString = c
	}
	if u := lookup("MEMORY_USER"); u != "" {
		cfg.Username = u
	}
	if p := lookup("MEMORY_PASS"); p != "" {
		cfg.Password = p
	}
	if d := lookup("MEMORY_DB"); d != "" {
		cfg.DBName = d
	}
	if cfg.Type == TypeSQLite && cfg.ConnectionString == "" {
		cfg.ConnectionString = "praxis.db"
	}
	return cfg
}
