package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/mdobak/go-xerrors"
	"github.com/redis/go-redis/v9"
)

type repo struct {
	rc             *redis.Client
	expireDuration time.Duration
}

func NewRepo(rc *redis.Client, expireDuration time.Duration) *repo {
	return &repo{
		rc:             rc,
		expireDuration: expireDuration,
	}
}

func (r repo) executePipe(ctx context.Context, pipe redis.Pipeliner) error {
	cmds, err := pipe.Exec(ctx)
	if err != nil {
		for _, cmd := range cmds {
			if err := cmd.Err(); err != nil {
				return err
			}
		}

		return err
	}

	return nil
}

// wrap annotates a redis failure and records where it happened.
func (r repo) wrap(err error, msg string) error {
	return xerrors.WithStackTrace(fmt.Errorf("%s: %w", msg, err), 1)
}
