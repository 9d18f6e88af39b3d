package storage

import (
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Open resolve o backend de persistência configurado. Os backends redis e
// postgres reutilizam conexões já abertas pelo serviço; file e sqlite criam
// seus próprios recursos locais.
func Open(backend, dir, sqlitePath string, pg *sql.DB, rdb *redis.Client) (Store, error) {
	switch backend {
	case "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(dir)
	case "sqlite":
		return NewSQLite(sqlitePath)
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("storage backend redis requires a redis connection")
		}
		return NewRedis(rdb), nil
	case "postgres":
		if pg == nil {
			return nil, fmt.Errorf("storage backend postgres requires a postgres connection")
		}
		return NewPostgres(pg), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
