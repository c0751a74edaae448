package highscore

import (
	"context"
	"strings"

	"github.com/battlesnakeio/classic/highscore/filestore"
	"github.com/battlesnakeio/classic/highscore/redisstore"
	"github.com/battlesnakeio/classic/highscore/sqlstore"
	"github.com/pkg/errors"
)

// ErrUnsupportedScheme is returned by Open for a URL it has no backend for.
var ErrUnsupportedScheme = errors.New("highscore: unsupported store scheme")

// Open returns the store described by url:
//
//	""  or "memory://"       in memory, lost on exit
//	"file://path" or "path"  JSON file
//	"redis://host:port/db"   redis
//	"postgres://..."         postgres
//	"sqlite://path"          sqlite file
func Open(ctx context.Context, url string) (Store, error) {
	if url == "" || url == "memory://" {
		return NewInMemStore(), nil
	}
	i := strings.Index(url, "://")
	if i < 0 {
		return filestore.NewFileStore(url), nil
	}
	rest := url[i+3:]
	switch scheme := url[:i]; scheme {
	case "file":
		return filestore.NewFileStore(rest), nil
	case "redis", "rediss":
		return redisstore.NewRedisStore(url)
	case "postgres", "postgresql":
		return sqlstore.NewPostgresStore(ctx, url)
	case "sqlite":
		return sqlstore.NewSQLiteStore(ctx, rest)
	default:
		return nil, errors.Wrapf(ErrUnsupportedScheme, "scheme %q", scheme)
	}
}
