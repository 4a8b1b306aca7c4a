package repository

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// readRetry runs a read once and, on a transient driver error, once more.
// Writes are never funneled through here: status transitions are
// compare-and-set and must not be blindly replayed.
func readRetry(ctx context.Context, op string, fn func() error) error {
	err := fn()
	if err == nil || ctx.Err() != nil {
		return err
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	logrus.WithError(err).WithField("op", op).Warn("read failed, retrying once")
	return fn()
}
