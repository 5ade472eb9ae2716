package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/academic"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/dto"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/repository"
	pkgerrors "github.com/Jackson-sch/sistema-escolar-sub001/pkg/errors"
)

// AreaCurricularService 学科领域业务接口
type AreaCurricularService interface {
	Create(ctx context.Context, institucionID string, req *dto.CreateAreaCurricularRequest, callerID string) (*dto.AreaCurricularResponse, error)
	Update(ctx context.Context, institucionID, id string, req *dto.UpdateAreaCurricularRequest, callerID string) (*dto.AreaCurricularResponse, error)
	GetByID(ctx context.Context, institucionID, id string) (*dto.AreaCurricularResponse, error)
	List(ctx context.Context, institucionID string, req *dto.AreaCurricularListRequest) ([]dto.AreaCurricularResponse, error)
	Delete(ctx context.Context, institucionID, id, callerID string) (*dto.DeleteResultResponse, error)
}

type areaCurricularService struct {
	repo    *repository.Repository
	guard   *academic.CycleGuard
	deleter Deleter
	logger  *zap.Logger
}

// NewAreaCurricularService 创建 AreaCurricularService 实例；maxHops 为父链上溯上限
func NewAreaCurricularService(repo *repository.Repository, deleter Deleter, maxHops int, logger *zap.Logger) AreaCurricularService {
	return &areaCurricularService{
		repo:    repo,
		guard:   academic.NewCycleGuard(repo.AreaCurricular, maxHops),
		deleter: deleter,
		logger:  logger,
	}
}

// ────────────────────── Create ──────────────────────

func (s *areaCurricularService) Create(ctx context.Context, institucionID string, req *dto.CreateAreaCurricularRequest, callerID string) (*dto.AreaCurricularResponse, error) {
	codigo := normalizeCodigo(req.Codigo)
	if err := checkAreaCodigoUnico(ctx, s.repo, institucionID, codigo, ""); err != nil {
		return nil, s.logUnexpected("学科领域查重失败", err)
	}

	nivelID := trimmedPtr(req.NivelID)
	parentID := trimmedPtr(req.ParentID)
	if err := s.validateRefs(ctx, institucionID, nivelID, parentID); err != nil {
		return nil, s.logUnexpected("校验学科领域关联失败", err)
	}

	area := &model.AreaCurricular{
		InstitucionID: institucionID,
		NivelID:       nivelID,
		ParentID:      parentID,
		Nombre:        strings.TrimSpace(req.Nombre),
		Codigo:        codigo,
		Descripcion:   trimmedPtr(req.Descripcion),
		Orden:         req.Orden,
		Color:         trimmedPtr(req.Color),
		Activo:        boolOr(req.Activo, true),
	}
	area.CreatedBy = &callerID
	area.UpdatedBy = &callerID

	if err := s.repo.AreaCurricular.Create(ctx, area); err != nil {
		if isDuplicate(err) {
			return nil, areaDuplicada(codigo)
		}
		s.logger.Error("创建学科领域失败", zap.String("codigo", codigo), zap.Error(err))
		return nil, err
	}
	return toAreaCurricularResponse(area), nil
}

// ────────────────────── Update ──────────────────────
//
// 父节点变更先经过环检测；任何校验失败都不会写入，已存储的父节点保持不变。

func (s *areaCurricularService) Update(ctx context.Context, institucionID, id string, req *dto.UpdateAreaCurricularRequest, callerID string) (*dto.AreaCurricularResponse, error) {
	area, err := s.repo.AreaCurricular.GetByID(ctx, institucionID, id)
	if err != nil {
		return nil, s.logUnexpected("查询学科领域失败", notFoundOr(err, "id", "El área curricular no existe"))
	}

	if req.Codigo != nil {
		codigo := normalizeCodigo(*req.Codigo)
		if codigo != area.Codigo {
			if err := checkAreaCodigoUnico(ctx, s.repo, institucionID, codigo, id); err != nil {
				return nil, s.logUnexpected("学科领域查重失败", err)
			}
		}
		area.Codigo = codigo
	}

	var newNivel, newParent *string
	if req.NivelID.Set {
		newNivel = trimmedPtr(req.NivelID.Value)
	}
	if req.ParentID.Set {
		newParent = trimmedPtr(req.ParentID.Value)
	}
	if err := s.validateRefs(ctx, institucionID, newNivel, newParent); err != nil {
		return nil, s.logUnexpected("校验学科领域关联失败", err)
	}

	if req.ParentID.Set && newParent != nil {
		cycle, err := s.guard.WouldCreateCycle(ctx, institucionID, id, newParent)
		if err != nil {
			return nil, s.logUnexpected("学科领域环检测失败", err)
		}
		if cycle {
			return nil, pkgerrors.Integrity("parentId", "Asignar esta área padre crearía un ciclo en la jerarquía de áreas curriculares")
		}
	}

	if req.NivelID.Set {
		area.NivelID = newNivel
	}
	if req.ParentID.Set {
		area.ParentID = newParent
	}
	if req.Nombre != nil {
		area.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.Descripcion != nil {
		area.Descripcion = trimmedPtr(req.Descripcion)
	}
	if req.Orden != nil {
		area.Orden = *req.Orden
	}
	if req.Color != nil {
		area.Color = trimmedPtr(req.Color)
	}
	if req.Activo != nil {
		area.Activo = *req.Activo
	}
	area.UpdatedBy = &callerID

	if err := s.repo.AreaCurricular.Update(ctx, area); err != nil {
		if isDuplicate(err) {
			return nil, areaDuplicada(area.Codigo)
		}
		s.logger.Error("更新学科领域失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toAreaCurricularResponse(area), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *areaCurricularService) GetByID(ctx context.Context, institucionID, id string) (*dto.AreaCurricularResponse, error) {
	area, err := s.repo.AreaCurricular.GetByID(ctx, institucionID, id)
	if err != nil {
		return nil, s.logUnexpected("查询学科领域失败", notFoundOr(err, "id", "El área curricular no existe"))
	}
	return toAreaCurricularResponse(area), nil
}

// ────────────────────── List ──────────────────────

func (s *areaCurricularService) List(ctx context.Context, institucionID string, req *dto.AreaCurricularListRequest) ([]dto.AreaCurricularResponse, error) {
	areas, err := s.repo.AreaCurricular.List(ctx, institucionID, req.IncludeInactive)
	if err != nil {
		s.logger.Error("列出学科领域失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.AreaCurricularResponse, 0, len(areas))
	for i := range areas {
		result = append(result, *toAreaCurricularResponse(&areas[i]))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *areaCurricularService) Delete(ctx context.Context, institucionID, id, callerID string) (*dto.DeleteResultResponse, error) {
	return s.deleter.DeleteOrDeactivate(ctx, EntityAreaCurricular, institucionID, id, callerID)
}

// ── 内部辅助方法 ──

// validateRefs nivel 与父领域（非空时）必须存在于本校
func (s *areaCurricularService) validateRefs(ctx context.Context, institucionID string, nivelID, parentID *string) error {
	if nivelID != nil {
		if _, err := s.repo.Nivel.GetByID(ctx, institucionID, *nivelID); err != nil {
			return notFoundOr(err, "nivelId", "El nivel seleccionado no existe")
		}
	}
	if parentID != nil {
		if _, err := s.repo.AreaCurricular.GetByID(ctx, institucionID, *parentID); err != nil {
			return notFoundOr(err, "parentId", "El área padre seleccionada no existe")
		}
	}
	return nil
}

func (s *areaCurricularService) logUnexpected(msg string, err error) error {
	if !pkgerrors.IsBusiness(err) {
		s.logger.Error(msg, zap.Error(err))
	}
	return err
}

func toAreaCurricularResponse(a *model.AreaCurricular) *dto.AreaCurricularResponse {
	return &dto.AreaCurricularResponse{
		ID:          a.AreaCurricularID,
		Nombre:      a.Nombre,
		Codigo:      a.Codigo,
		Descripcion: a.Descripcion,
		Orden:       a.Orden,
		Color:       a.Color,
		NivelID:     a.NivelID,
		ParentID:    a.ParentID,
		Activo:      a.Activo,
		CreatedAt:   formatTimestamp(a.CreatedAt),
		UpdatedAt:   formatTimestamp(a.UpdatedAt),
	}
}
