package repository

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// TransferRequestRepository define el puerto de persistencia para solicitudes de traslado (DIP).
type TransferRequestRepository interface {
	Create(request *entity.TransferRequest) error
	GetByID(id string) (*entity.TransferRequest, error)
	// GetByIDForUpdate bloquea la fila para la transición de estado.
	GetByIDForUpdate(id string) (*entity.TransferRequest, error)
	Update(request *entity.TransferRequest) error
	ListByStatus(status string, limit, offset int) ([]*entity.TransferRequest, error)
}
