package repository

import "github.com/jhoicas/Farmacia-api/internal/domain/entity"

// TransferRepository log de traslados: solo se anexa y se lee.
type TransferRepository interface {
	Create(t *entity.Transfer) error
	List() ([]*entity.Transfer, error)
}
