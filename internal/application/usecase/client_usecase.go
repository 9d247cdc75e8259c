package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
	"github.com/jhoicas/Arriendos-api/pkg/rut"
)

// ClientUseCase CRUD de clientes. El RUT se valida por dígito verificador y se guarda formateado.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create alta de cliente.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	c := &entity.Client{}
	if err := applyClient(c, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, duplicate(err, "El RUT ya existe.")
	}
	return toClientResponse(c), nil
}

// Get cliente por id.
func (uc *ClientUseCase) Get(ctx context.Context, id int64) (*dto.ClientResponse, error) {
	c, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// List búsqueda por ?query=: solo dígitos busca por prefijo del RUT sin separadores.
func (uc *ClientUseCase) List(ctx context.Context, query string) ([]dto.ClientResponse, error) {
	list, err := uc.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

// Update edición parcial.
func (uc *ClientUseCase) Update(ctx context.Context, id int64, in dto.ClientRequest) (*dto.ClientResponse, error) {
	c, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyClient(c, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, duplicate(err, "El RUT ya existe.")
	}
	return toClientResponse(c), nil
}

// Delete elimina el cliente si no tiene arriendos, documentos ni órdenes.
func (uc *ClientUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.repo.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Detail(domain.ErrNotFound, "Cliente no encontrado")
	}
	return inUse(err, "El cliente tiene movimientos asociados.")
}

func (uc *ClientUseCase) find(ctx context.Context, id int64) (*entity.Client, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.Detail(domain.ErrNotFound, "Cliente no encontrado")
	}
	return c, nil
}

func applyClient(c *entity.Client, in dto.ClientRequest) error {
	setText(&c.LegalName, in.LegalName)
	setText(&c.Address, in.Address)
	setText(&c.Phone, in.Phone)
	setText(&c.Email, in.Email)
	setText(&c.PaymentTerms, in.PaymentTerms)
	if in.RUT != nil {
		raw := text(in.RUT)
		if raw == "" {
			return domain.Detail(domain.ErrInvalidInput, "El RUT es obligatorio.")
		}
		if err := rut.Validate(raw); err != nil {
			return domain.Detail(domain.ErrInvalidInput, "RUT inválido.")
		}
		c.RUT = rut.Format(raw)
	}
	if c.RUT == "" {
		return domain.Detail(domain.ErrInvalidInput, "El RUT es obligatorio.")
	}
	if c.LegalName == "" {
		return domain.Detail(domain.ErrInvalidInput, "La razón social es obligatoria.")
	}
	if !entity.ValidPaymentTerms(c.PaymentTerms) {
		return domain.Detail(domain.ErrInvalidInput, "Forma de pago inválida.")
	}
	return nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:           c.ID,
		LegalName:    c.LegalName,
		RUT:          c.RUT,
		Address:      c.Address,
		Phone:        c.Phone,
		Email:        c.Email,
		PaymentTerms: c.PaymentTerms,
	}
}
