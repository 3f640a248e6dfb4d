package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sqrity/sqrity/internal/common"
	"github.com/sqrity/sqrity/internal/logging"
)

var domainErrors = []error{
	common.ErrInvalidInput,
	common.ErrDuplicateUsername,
	common.ErrInvalidCredentials,
	common.ErrStorageUnavailable,
}

// storageError passes domain errors through unchanged and turns everything
// else into common.ErrStorageUnavailable, logging the cause.
func storageError(ctx context.Context, log logging.Logger, op string, err error) error {
	for _, de := range domainErrors {
		if errors.Is(err, de) {
			return err
		}
	}
	log.Error(ctx, "storage failure", "op", op, "error", err)
	return fmt.Errorf("%w: %s: %v", common.ErrStorageUnavailable, op, err)
}
