package palette

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/tikzgrid/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// DefaultKey is the Redis key and Mongo document id used when none is set.
const DefaultKey = "tikzgrid:palette"

// Backends lists the supported backend names.
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendRedis, BackendMongo, BackendMemory}
}

// Config selects and configures a palette backend.
type Config struct {
	Backend       string `toml:"backend"`
	Path          string `toml:"path"`
	RedisAddr     string `toml:"redis_addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	Key           string `toml:"key"`

	Logger *log.Logger `toml:"-"`
}

// Open returns the store named by cfg.Backend. An empty backend means file.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		return NewFileStore(cfg.Path, cfg.Logger), nil
	case BackendSQLite:
		path := cfg.Path
		if path == "" {
			path = "palette.db"
		}
		s, err := NewSQLiteStore(ctx, path, cfg.Logger)
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeStorage, err, "failed to open sqlite palette")
		}
		return s, nil
	case BackendRedis:
		addr := cfg.RedisAddr
		if addr == "" {
			addr = "localhost:6379"
		}
		s, err := NewRedisStore(ctx, addr, cfg.Key, cfg.Logger)
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeStorage, err, "failed to open redis palette")
		}
		return s, nil
	case BackendMongo:
		uri := cfg.MongoURI
		if uri == "" {
			uri = "mongodb://localhost:27017"
		}
		s, err := NewMongoStore(ctx, uri, cfg.MongoDatabase, cfg.Key, cfg.Logger)
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeStorage, err, "failed to open mongo palette")
		}
		return s, nil
	case BackendMemory:
		return NewMemoryStore(cfg.Logger), nil
	default:
		return nil, perrors.New(perrors.ErrCodeInvalidBackend,
			"unknown palette backend %q (want one of %s)", cfg.Backend, strings.Join(Backends(), ", "))
	}
}

// Location describes where a store keeps its data, for display.
func Location(cfg Config) string {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		if cfg.Path == "" {
			return DefaultFile
		}
		return cfg.Path
	case BackendSQLite:
		if cfg.Path == "" {
			return "palette.db"
		}
		return cfg.Path
	case BackendRedis:
		return "redis://" + orDefault(cfg.RedisAddr, "localhost:6379") + "/" + orDefault(cfg.Key, DefaultKey)
	case BackendMongo:
		return orDefault(cfg.MongoURI, "mongodb://localhost:27017") + " " + orDefault(cfg.MongoDatabase, "tikzgrid") + ".palettes/" + orDefault(cfg.Key, DefaultKey)
	case BackendMemory:
		return "(memory)"
	}
	return ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
