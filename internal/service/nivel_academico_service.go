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

// NivelAcademicoService 班级（sección）业务接口
type NivelAcademicoService interface {
	Create(ctx context.Context, institucionID string, req *dto.CreateNivelAcademicoRequest, callerID string) (*dto.NivelAcademicoResponse, error)
	Update(ctx context.Context, institucionID, id string, req *dto.UpdateNivelAcademicoRequest, callerID string) (*dto.NivelAcademicoResponse, error)
	GetByID(ctx context.Context, institucionID, id string) (*dto.NivelAcademicoResponse, error)
	List(ctx context.Context, institucionID string, req *dto.NivelAcademicoListRequest) ([]dto.NivelAcademicoResponse, error)
	Delete(ctx context.Context, institucionID, id, callerID string) (*dto.DeleteResultResponse, error)
}

type nivelAcademicoService struct {
	repo    *repository.Repository
	deleter Deleter
	logger  *zap.Logger
}

// NewNivelAcademicoService 创建 NivelAcademicoService 实例
func NewNivelAcademicoService(repo *repository.Repository, deleter Deleter, logger *zap.Logger) NivelAcademicoService {
	return &nivelAcademicoService{repo: repo, deleter: deleter, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *nivelAcademicoService) Create(ctx context.Context, institucionID string, req *dto.CreateNivelAcademicoRequest, callerID string) (*dto.NivelAcademicoResponse, error) {
	nivel, err := s.resolveNivel(ctx, institucionID, req.Nivel)
	if err != nil {
		return nil, s.logUnexpected("解析教育阶段失败", err)
	}
	grado, err := s.resolveGrado(ctx, institucionID, nivel, req.Grado)
	if err != nil {
		return nil, s.logUnexpected("解析年级失败", err)
	}

	seccion := strings.ToUpper(strings.TrimSpace(req.Seccion))
	if err := checkSeccionUnica(ctx, s.repo, institucionID, nivel.NivelID, grado, seccion, req.AnioAcademico, ""); err != nil {
		return nil, s.logUnexpected("班级查重失败", err)
	}

	na := &model.NivelAcademico{
		InstitucionID:   institucionID,
		NivelID:         nivel.NivelID,
		GradoID:         grado.GradoID,
		Seccion:         seccion,
		Turno:           req.Turno,
		CapacidadMaxima: req.CapacidadMaxima,
		AulaAsignada:    trimmedPtr(req.AulaAsignada),
		AnioAcademico:   req.AnioAcademico,
		Activo:          boolOr(req.Activo, true),
	}
	if na.Turno == "" {
		na.Turno = "MANANA"
	}
	if na.CapacidadMaxima == 0 {
		na.CapacidadMaxima = 30
	}
	na.CreatedBy = &callerID
	na.UpdatedBy = &callerID

	if err := s.repo.NivelAcademico.Create(ctx, na); err != nil {
		if isDuplicate(err) {
			return nil, seccionDuplicada(seccion, grado.Nombre, na.AnioAcademico)
		}
		s.logger.Error("创建班级失败", zap.Error(err))
		return nil, err
	}

	na.Nivel = nivel
	na.Grado = grado
	return toNivelAcademicoResponse(na), nil
}

// ────────────────────── Update ──────────────────────

func (s *nivelAcademicoService) Update(ctx context.Context, institucionID, id string, req *dto.UpdateNivelAcademicoRequest, callerID string) (*dto.NivelAcademicoResponse, error) {
	na, err := s.repo.NivelAcademico.GetByID(ctx, institucionID, id)
	if err != nil {
		return nil, s.logUnexpected("查询班级失败", notFoundOr(err, "id", "El nivel académico no existe"))
	}

	keyChanged := false

	nivel := na.Nivel
	if req.Nivel != nil {
		nivel, err = s.resolveNivel(ctx, institucionID, req.Nivel)
		if err != nil {
			return nil, s.logUnexpected("解析教育阶段失败", err)
		}
		keyChanged = keyChanged || nivel.NivelID != na.NivelID
	}
	if nivel == nil {
		nivel = &model.Nivel{NivelID: na.NivelID}
	}

	grado := na.Grado
	switch {
	case req.Grado != nil:
		grado, err = s.resolveGrado(ctx, institucionID, nivel, req.Grado)
		if err != nil {
			return nil, s.logUnexpected("解析年级失败", err)
		}
		keyChanged = keyChanged || grado.GradoID != na.GradoID
	case nivel.NivelID != na.NivelID:
		return nil, pkgerrors.Validation("grado", "Al cambiar el nivel también debe indicar el grado")
	}
	if grado == nil {
		grado = &model.Grado{GradoID: na.GradoID, NivelID: na.NivelID}
	}

	if req.Seccion != nil {
		seccion := strings.ToUpper(strings.TrimSpace(*req.Seccion))
		keyChanged = keyChanged || seccion != na.Seccion
		na.Seccion = seccion
	}
	if req.AnioAcademico != nil {
		keyChanged = keyChanged || *req.AnioAcademico != na.AnioAcademico
		na.AnioAcademico = *req.AnioAcademico
	}
	if req.Turno != nil {
		na.Turno = *req.Turno
	}
	if req.CapacidadMaxima != nil {
		na.CapacidadMaxima = *req.CapacidadMaxima
	}
	if req.AulaAsignada != nil {
		na.AulaAsignada = trimmedPtr(req.AulaAsignada)
	}
	if req.Activo != nil {
		na.Activo = *req.Activo
	}

	na.NivelID = nivel.NivelID
	na.GradoID = grado.GradoID

	if keyChanged {
		if err := checkSeccionUnica(ctx, s.repo, institucionID, na.NivelID, grado, na.Seccion, na.AnioAcademico, na.NivelAcademicoID); err != nil {
			return nil, s.logUnexpected("班级查重失败", err)
		}
	}

	na.UpdatedBy = &callerID
	if err := s.repo.NivelAcademico.Update(ctx, na); err != nil {
		if isDuplicate(err) {
			return nil, seccionDuplicada(na.Seccion, grado.Nombre, na.AnioAcademico)
		}
		s.logger.Error("更新班级失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	na.Nivel = nivel
	na.Grado = grado
	return toNivelAcademicoResponse(na), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *nivelAcademicoService) GetByID(ctx context.Context, institucionID, id string) (*dto.NivelAcademicoResponse, error) {
	na, err := s.repo.NivelAcademico.GetByID(ctx, institucionID, id)
	if err != nil {
		return nil, s.logUnexpected("查询班级失败", notFoundOr(err, "id", "El nivel académico no existe"))
	}
	return toNivelAcademicoResponse(na), nil
}

// ────────────────────── List ──────────────────────

func (s *nivelAcademicoService) List(ctx context.Context, institucionID string, req *dto.NivelAcademicoListRequest) ([]dto.NivelAcademicoResponse, error) {
	list, err := s.repo.NivelAcademico.List(ctx, institucionID, repository.NivelAcademicoFilter{
		AnioAcademico:   req.AnioAcademico,
		NivelID:         req.NivelID,
		GradoID:         req.GradoID,
		IncludeInactive: req.IncludeInactive,
	})
	if err != nil {
		s.logger.Error("列出班级失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.NivelAcademicoResponse, 0, len(list))
	for i := range list {
		result = append(result, *toNivelAcademicoResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *nivelAcademicoService) Delete(ctx context.Context, institucionID, id, callerID string) (*dto.DeleteResultResponse, error) {
	return s.deleter.DeleteOrDeactivate(ctx, EntityNivelAcademico, institucionID, id, callerID)
}

// ── 层级引用解析 ──

// resolveNivel id 引用按 id 查找，标签按名称（不区分大小写）查找
func (s *nivelAcademicoService) resolveNivel(ctx context.Context, institucionID string, ref *dto.HierarchyRef) (*model.Nivel, error) {
	if ref == nil || ref.IsZero() {
		return nil, pkgerrors.Validation("nivel", "El nivel es requerido")
	}
	if ref.IsRef() {
		nivel, err := s.repo.Nivel.GetByID(ctx, institucionID, ref.ID)
		if err != nil {
			return nil, notFoundOr(err, "nivel", "El nivel seleccionado no existe")
		}
		return nivel, nil
	}
	nivel, err := s.repo.Nivel.GetByNombre(ctx, institucionID, ref.Label)
	if err != nil {
		return nil, notFoundOr(err, "nivel", fmt.Sprintf("El nivel %s no existe", ref.Label))
	}
	return nivel, nil
}

// resolveGrado 年级必须属于已解析的教育阶段
func (s *nivelAcademicoService) resolveGrado(ctx context.Context, institucionID string, nivel *model.Nivel, ref *dto.HierarchyRef) (*model.Grado, error) {
	if ref == nil || ref.IsZero() {
		return nil, pkgerrors.Validation("grado", "El grado es requerido")
	}
	if ref.IsRef() {
		grado, err := s.repo.Grado.GetByID(ctx, institucionID, ref.ID)
		if err != nil {
			return nil, notFoundOr(err, "grado", "El grado seleccionado no existe")
		}
		if grado.NivelID != nivel.NivelID {
			return nil, pkgerrors.Validation("grado", "El grado seleccionado no pertenece al nivel indicado")
		}
		return grado, nil
	}
	grado, err := s.repo.Grado.GetByNombre(ctx, institucionID, nivel.NivelID, ref.Label)
	if err != nil {
		return nil, notFoundOr(err, "grado", fmt.Sprintf("El grado %s no existe en el nivel %s", ref.Label, nivel.Nombre))
	}
	return grado, nil
}

func (s *nivelAcademicoService) logUnexpected(msg string, err error) error {
	if !pkgerrors.IsBusiness(err) {
		s.logger.Error(msg, zap.Error(err))
	}
	return err
}

func toNivelAcademicoResponse(na *model.NivelAcademico) *dto.NivelAcademicoResponse {
	resp := &dto.NivelAcademicoResponse{
		ID:              na.NivelAcademicoID,
		Seccion:         na.Seccion,
		Turno:           na.Turno,
		CapacidadMaxima: na.CapacidadMaxima,
		AulaAsignada:    na.AulaAsignada,
		AnioAcademico:   na.AnioAcademico,
		Activo:          na.Activo,
		CreatedAt:       formatTimestamp(na.CreatedAt),
		UpdatedAt:       formatTimestamp(na.UpdatedAt),
	}
	if na.Nivel != nil && na.Nivel.Nombre != "" {
		resp.Nivel = &dto.RefResponse{ID: na.Nivel.NivelID, Nombre: na.Nivel.Nombre}
	} else {
		resp.Nivel = &dto.RefResponse{ID: na.NivelID}
	}
	if na.Grado != nil && na.Grado.Nombre != "" {
		resp.Grado = &dto.RefResponse{ID: na.Grado.GradoID, Nombre: na.Grado.Nombre}
	} else {
		resp.Grado = &dto.RefResponse{ID: na.GradoID}
	}
	return resp
}
