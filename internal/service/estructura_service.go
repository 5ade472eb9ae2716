package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/dto"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/repository"
	pkgerrors "github.com/Jackson-sch/sistema-escolar-sub001/pkg/errors"
)

// EstructuraService 学校结构（教育阶段 / 年级）业务接口
type EstructuraService interface {
	GetInstitucion(ctx context.Context, institucionID string) (*dto.InstitucionResponse, error)
	CreateNivel(ctx context.Context, institucionID string, req *dto.CreateNivelRequest, callerID string) (*dto.NivelResponse, error)
	ListNiveles(ctx context.Context, institucionID string) ([]dto.NivelResponse, error)
	CreateGrado(ctx context.Context, institucionID string, req *dto.CreateGradoRequest, callerID string) (*dto.GradoResponse, error)
	ListGrados(ctx context.Context, institucionID string, req *dto.GradoListRequest) ([]dto.GradoResponse, error)
}

type estructuraService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEstructuraService 创建 EstructuraService 实例
func NewEstructuraService(repo *repository.Repository, logger *zap.Logger) EstructuraService {
	return &estructuraService{repo: repo, logger: logger}
}

func (s *estructuraService) GetInstitucion(ctx context.Context, institucionID string) (*dto.InstitucionResponse, error) {
	inst, err := s.repo.Institucion.GetEstructura(ctx, institucionID)
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.NotFound("institucionId", "La institución no existe")
		}
		s.logger.Error("查询学校结构失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.InstitucionResponse{
		ID:            inst.InstitucionID,
		Nombre:        inst.Nombre,
		CodigoModular: inst.CodigoModular,
		Niveles:       make([]dto.NivelResponse, 0, len(inst.Niveles)),
	}
	for i := range inst.Niveles {
		resp.Niveles = append(resp.Niveles, toNivelResponse(&inst.Niveles[i]))
	}
	return resp, nil
}

func (s *estructuraService) CreateNivel(ctx context.Context, institucionID string, req *dto.CreateNivelRequest, callerID string) (*dto.NivelResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	exists, err := s.repo.Nivel.ExistsNombre(ctx, institucionID, nombre)
	if err != nil {
		s.logger.Error("教育阶段查重失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, pkgerrors.Conflict(fmt.Sprintf("Ya existe el nivel %s", nombre))
	}

	nivel := &model.Nivel{
		InstitucionID: institucionID,
		Nombre:        nombre,
		Orden:         req.Orden,
		Activo:        true,
	}
	nivel.CreatedBy = &callerID
	nivel.UpdatedBy = &callerID

	if err := s.repo.Nivel.Create(ctx, nivel); err != nil {
		if isDuplicate(err) {
			return nil, pkgerrors.Conflict(fmt.Sprintf("Ya existe el nivel %s", nombre))
		}
		s.logger.Error("创建教育阶段失败", zap.Error(err))
		return nil, err
	}
	resp := toNivelResponse(nivel)
	return &resp, nil
}

func (s *estructuraService) ListNiveles(ctx context.Context, institucionID string) ([]dto.NivelResponse, error) {
	niveles, err := s.repo.Nivel.List(ctx, institucionID)
	if err != nil {
		s.logger.Error("列出教育阶段失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.NivelResponse, 0, len(niveles))
	for i := range niveles {
		result = append(result, toNivelResponse(&niveles[i]))
	}
	return result, nil
}

func (s *estructuraService) CreateGrado(ctx context.Context, institucionID string, req *dto.CreateGradoRequest, callerID string) (*dto.GradoResponse, error) {
	nivel, err := s.repo.Nivel.GetByID(ctx, institucionID, req.NivelID)
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.NotFound("nivelId", "El nivel seleccionado no existe")
		}
		s.logger.Error("查询教育阶段失败", zap.Error(err))
		return nil, err
	}

	nombre := strings.TrimSpace(req.Nombre)
	exists, err := s.repo.Grado.ExistsNombre(ctx, nivel.NivelID, nombre)
	if err != nil {
		s.logger.Error("年级查重失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, pkgerrors.Conflict(fmt.Sprintf("Ya existe el grado %s en el nivel %s", nombre, nivel.Nombre))
	}

	grado := &model.Grado{
		NivelID: nivel.NivelID,
		Nombre:  nombre,
		Orden:   req.Orden,
		Activo:  true,
	}
	grado.CreatedBy = &callerID
	grado.UpdatedBy = &callerID

	if err := s.repo.Grado.Create(ctx, grado); err != nil {
		if isDuplicate(err) {
			return nil, pkgerrors.Conflict(fmt.Sprintf("Ya existe el grado %s en el nivel %s", nombre, nivel.Nombre))
		}
		s.logger.Error("创建年级失败", zap.Error(err))
		return nil, err
	}
	resp := toGradoResponse(grado)
	return &resp, nil
}

func (s *estructuraService) ListGrados(ctx context.Context, institucionID string, req *dto.GradoListRequest) ([]dto.GradoResponse, error) {
	grados, err := s.repo.Grado.List(ctx, institucionID, req.NivelID)
	if err != nil {
		s.logger.Error("列出年级失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.GradoResponse, 0, len(grados))
	for i := range grados {
		result = append(result, toGradoResponse(&grados[i]))
	}
	return result, nil
}

func toNivelResponse(n *model.Nivel) dto.NivelResponse {
	resp := dto.NivelResponse{
		ID:     n.NivelID,
		Nombre: n.Nombre,
		Orden:  n.Orden,
		Activo: n.Activo,
	}
	for i := range n.Grados {
		resp.Grados = append(resp.Grados, toGradoResponse(&n.Grados[i]))
	}
	return resp
}

func toGradoResponse(g *model.Grado) dto.GradoResponse {
	return dto.GradoResponse{
		ID:      g.GradoID,
		NivelID: g.NivelID,
		Nombre:  g.Nombre,
		Orden:   g.Orden,
		Activo:  g.Activo,
	}
}
