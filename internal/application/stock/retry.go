package stock

import (
	"context"
	"errors"

	"github.com/jhoicas/Taller-api/internal/domain"
)

// maxAttempts acota los reintentos ante conflicto de concurrencia antes de
// propagar ErrConflicto al caller.
const maxAttempts = 3

// withRetry reejecuta fn completa (lectura fresca incluida) mientras falle con
// domain.ErrConflicto. Cualquier otro error, o el ctx cancelado, corta de inmediato.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err = fn()
		if !errors.Is(err, domain.ErrConflicto) {
			return err
		}
	}
	return err
}
