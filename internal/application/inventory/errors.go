package inventory

import (
	"errors"

	"github.com/jhoicas/Carnes-api/internal/domain"
)

// domainError indica si err es un error esperado del dominio (se registra en warn, no en error).
func domainError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrInsufficientCapacity) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrDuplicate)
}
