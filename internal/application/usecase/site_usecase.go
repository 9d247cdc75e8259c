package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
)

// SiteUseCase CRUD de obras.
type SiteUseCase struct {
	repo repository.SiteRepository
}

// NewSiteUseCase construye el caso de uso.
func NewSiteUseCase(repo repository.SiteRepository) *SiteUseCase {
	return &SiteUseCase{repo: repo}
}

func (uc *SiteUseCase) Create(ctx context.Context, in dto.SiteRequest) (*dto.SiteResponse, error) {
	s := &entity.Site{}
	if err := applySite(s, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSiteResponse(s), nil
}

func (uc *SiteUseCase) Get(ctx context.Context, id int64) (*dto.SiteResponse, error) {
	s, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSiteResponse(s), nil
}

func (uc *SiteUseCase) List(ctx context.Context) ([]dto.SiteResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SiteResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSiteResponse(s))
	}
	return out, nil
}

func (uc *SiteUseCase) Update(ctx context.Context, id int64, in dto.SiteRequest) (*dto.SiteResponse, error) {
	s, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applySite(s, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSiteResponse(s), nil
}

func (uc *SiteUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.repo.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Detail(domain.ErrNotFound, "Obra no encontrada")
	}
	return inUse(err, "La obra tiene arriendos o documentos asociados.")
}

func (uc *SiteUseCase) find(ctx context.Context, id int64) (*entity.Site, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.Detail(domain.ErrNotFound, "Obra no encontrada")
	}
	return s, nil
}

func applySite(s *entity.Site, in dto.SiteRequest) error {
	setText(&s.Name, in.Name)
	setText(&s.Address, in.Address)
	setText(&s.ContactName, in.ContactName)
	setText(&s.ContactPhone, in.ContactPhone)
	setText(&s.ContactEmail, in.ContactEmail)
	if s.Name == "" {
		return domain.Detail(domain.ErrInvalidInput, "El nombre de la obra es obligatorio.")
	}
	return nil
}

func toSiteResponse(s *entity.Site) *dto.SiteResponse {
	return &dto.SiteResponse{
		ID:           s.ID,
		Name:         s.Name,
		Address:      s.Address,
		ContactName:  s.ContactName,
		ContactPhone: s.ContactPhone,
		ContactEmail: s.ContactEmail,
	}
}
