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

// CursoService 课程业务接口
type CursoService interface {
	Create(ctx context.Context, institucionID string, req *dto.CreateCursoRequest, callerID string) (*dto.CursoResponse, error)
	Update(ctx context.Context, institucionID, id string, req *dto.UpdateCursoRequest, callerID string) (*dto.CursoResponse, error)
	GetByID(ctx context.Context, institucionID, id string) (*dto.CursoResponse, error)
	List(ctx context.Context, institucionID string, req *dto.CursoListRequest) ([]dto.CursoResponse, error)
	Delete(ctx context.Context, institucionID, id, callerID string) (*dto.DeleteResultResponse, error)
}

type cursoService struct {
	repo     *repository.Repository
	resolver *academic.Resolver
	deleter  Deleter
	logger   *zap.Logger
}

// NewCursoService 创建 CursoService 实例
func NewCursoService(repo *repository.Repository, deleter Deleter, logger *zap.Logger) CursoService {
	return &cursoService{
		repo:     repo,
		resolver: academic.NewResolver(repo.NivelAcademico),
		deleter:  deleter,
		logger:   logger,
	}
}

// ────────────────────── Create ──────────────────────
//
// 流程：作用域变体 → 外键校验 → 参考节次 → 唯一性 → 单次写入。
// 所有校验都在写入前完成，失败时不留下任何部分状态。

func (s *cursoService) Create(ctx context.Context, institucionID string, req *dto.CreateCursoRequest, callerID string) (*dto.CursoResponse, error) {
	codigo := normalizeCodigo(req.Codigo)

	scope, err := academic.NewScope(req.Alcance, academic.ScopeIDs{
		NivelAcademicoID: req.NivelAcademicoID,
		GradoID:          req.GradoID,
		NivelID:          req.NivelID,
		InstitucionID:    req.InstitucionID,
	})
	if err != nil {
		return nil, err
	}

	if err := validateRelations(ctx, s.repo, institucionID, cursoRelaciones{
		AreaCurricularID: req.AreaCurricularID,
		ProfesorID:       req.ProfesorID,
		ScopeIDs:         scope.Retained(),
	}); err != nil {
		return nil, s.logUnexpected("校验课程关联失败", err)
	}

	resolution, err := s.resolver.Resolve(ctx, institucionID, scope)
	if err != nil {
		return nil, s.logUnexpected("解析参考节次失败", err)
	}

	if err := checkCursoUnico(ctx, s.repo, institucionID, codigo, req.AnioAcademico, scope, ""); err != nil {
		return nil, s.logUnexpected("课程查重失败", err)
	}

	curso := &model.Curso{
		Nombre:           strings.TrimSpace(req.Nombre),
		Codigo:           codigo,
		Descripcion:      trimmedPtr(req.Descripcion),
		AreaCurricularID: req.AreaCurricularID,
		ProfesorID:       req.ProfesorID,
		AnioAcademico:    req.AnioAcademico,
		Creditos:         req.Creditos,
		HorasSemanales:   req.HorasSemanales,
		Activo:           boolOr(req.Activo, true),
		Version:          1,
	}
	resolution.Apply(curso)
	curso.CreatedBy = &callerID
	curso.UpdatedBy = &callerID

	if err := s.repo.Curso.Create(ctx, curso); err != nil {
		if isDuplicate(err) {
			return nil, cursoDuplicado(codigo, curso.AnioAcademico, curso.Alcance)
		}
		s.logger.Error("创建课程失败", zap.String("codigo", codigo), zap.Error(err))
		return nil, err
	}

	return s.reload(ctx, institucionID, curso), nil
}

// ────────────────────── Update ──────────────────────

func (s *cursoService) Update(ctx context.Context, institucionID, id string, req *dto.UpdateCursoRequest, callerID string) (*dto.CursoResponse, error) {
	curso, err := s.repo.Curso.GetByID(ctx, institucionID, id)
	if err != nil {
		return nil, s.logUnexpected("查询课程失败", notFoundOr(err, "id", "El curso no existe"))
	}

	if req.Version != nil && *req.Version != curso.Version {
		return nil, pkgerrors.ErrOptimisticLock
	}

	storedAlcance := curso.Alcance
	storedIDs := academic.IDsOf(curso)
	newAlcance := storedAlcance
	if req.Alcance != nil {
		newAlcance = *req.Alcance
	}

	// alcance 变化时旧作用域的 id 不再沿用
	ids := academic.MergeIDs(storedAlcance, storedIDs, newAlcance, academic.ScopeIDs{
		NivelAcademicoID: req.NivelAcademicoID,
		GradoID:          req.GradoID,
		NivelID:          req.NivelID,
		InstitucionID:    req.InstitucionID,
	})
	scope, err := academic.NewScope(newAlcance, ids)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		curso.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.Codigo != nil {
		curso.Codigo = normalizeCodigo(*req.Codigo)
	}
	if req.Descripcion != nil {
		curso.Descripcion = trimmedPtr(req.Descripcion)
	}
	if req.AreaCurricularID != nil {
		curso.AreaCurricularID = *req.AreaCurricularID
	}
	if req.ProfesorID != nil {
		curso.ProfesorID = *req.ProfesorID
	}
	if req.AnioAcademico != nil {
		curso.AnioAcademico = *req.AnioAcademico
	}
	if req.Creditos != nil {
		curso.Creditos = req.Creditos
	}
	if req.HorasSemanales != nil {
		curso.HorasSemanales = req.HorasSemanales
	}
	if req.Activo != nil {
		curso.Activo = *req.Activo
	}

	rel := cursoRelaciones{ScopeIDs: scope.Retained()}
	if req.AreaCurricularID != nil {
		rel.AreaCurricularID = curso.AreaCurricularID
	}
	if req.ProfesorID != nil {
		rel.ProfesorID = curso.ProfesorID
	}
	if err := validateRelations(ctx, s.repo, institucionID, rel); err != nil {
		return nil, s.logUnexpected("校验课程关联失败", err)
	}

	var resolution *academic.Resolution
	if newAlcance == storedAlcance && scope.TargetID() == storedIDs.Target(storedAlcance) && curso.NivelAcademicoID != nil {
		// 作用域目标未变，沿用已存储的参考节次
		resolution = &academic.Resolution{Scope: scope, ReferenceNivelAcademicoID: *curso.NivelAcademicoID}
	} else {
		resolution, err = s.resolver.Resolve(ctx, institucionID, scope)
		if err != nil {
			return nil, s.logUnexpected("解析参考节次失败", err)
		}
	}

	if err := checkCursoUnico(ctx, s.repo, institucionID, curso.Codigo, curso.AnioAcademico, scope, curso.CursoID); err != nil {
		return nil, s.logUnexpected("课程查重失败", err)
	}

	resolution.Apply(curso)
	curso.UpdatedBy = &callerID

	if err := s.repo.Curso.Update(ctx, curso); err != nil {
		if isDuplicate(err) {
			return nil, cursoDuplicado(curso.Codigo, curso.AnioAcademico, curso.Alcance)
		}
		return nil, s.logUnexpected("更新课程失败", err)
	}

	return s.reload(ctx, institucionID, curso), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *cursoService) GetByID(ctx context.Context, institucionID, id string) (*dto.CursoResponse, error) {
	curso, err := s.repo.Curso.GetByID(ctx, institucionID, id)
	if err != nil {
		return nil, s.logUnexpected("查询课程失败", notFoundOr(err, "id", "El curso no existe"))
	}
	return toCursoResponse(curso), nil
}

// ────────────────────── List ──────────────────────

func (s *cursoService) List(ctx context.Context, institucionID string, req *dto.CursoListRequest) ([]dto.CursoResponse, error) {
	cursos, err := s.repo.Curso.List(ctx, institucionID, repository.CursoFilter{
		AnioAcademico:    req.AnioAcademico,
		Alcance:          req.Alcance,
		AreaCurricularID: req.AreaCurricularID,
		ProfesorID:       req.ProfesorID,
		NivelAcademicoID: req.NivelAcademicoID,
		IncludeInactive:  req.IncludeInactive,
	})
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CursoResponse, 0, len(cursos))
	for i := range cursos {
		result = append(result, *toCursoResponse(&cursos[i]))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *cursoService) Delete(ctx context.Context, institucionID, id, callerID string) (*dto.DeleteResultResponse, error) {
	return s.deleter.DeleteOrDeactivate(ctx, EntityCurso, institucionID, id, callerID)
}

// ── 内部辅助方法 ──

// reload 重新读取以带出关联名称；读取失败时退回写入对象本身
func (s *cursoService) reload(ctx context.Context, institucionID string, curso *model.Curso) *dto.CursoResponse {
	fresh, err := s.repo.Curso.GetByID(ctx, institucionID, curso.CursoID)
	if err != nil {
		s.logger.Warn("重新读取课程失败", zap.String("id", curso.CursoID), zap.Error(err))
		return toCursoResponse(curso)
	}
	return toCursoResponse(fresh)
}

// logUnexpected 业务错误原样返回；其余错误记录日志后返回
func (s *cursoService) logUnexpected(msg string, err error) error {
	if !pkgerrors.IsBusiness(err) {
		s.logger.Error(msg, zap.Error(err))
	}
	return err
}

func toCursoResponse(c *model.Curso) *dto.CursoResponse {
	resp := &dto.CursoResponse{
		ID:               c.CursoID,
		Nombre:           c.Nombre,
		Codigo:           c.Codigo,
		Descripcion:      c.Descripcion,
		Alcance:          c.Alcance,
		AreaCurricularID: c.AreaCurricularID,
		ProfesorID:       c.ProfesorID,
		NivelAcademicoID: c.NivelAcademicoID,
		GradoID:          c.GradoID,
		NivelID:          c.NivelID,
		InstitucionID:    c.InstitucionID,
		AnioAcademico:    c.AnioAcademico,
		Creditos:         c.Creditos,
		HorasSemanales:   c.HorasSemanales,
		Activo:           c.Activo,
		Version:          c.Version,
		CreatedAt:        formatTimestamp(c.CreatedAt),
		UpdatedAt:        formatTimestamp(c.UpdatedAt),
	}
	if c.AreaCurricular != nil {
		resp.AreaCurricular = &dto.RefResponse{ID: c.AreaCurricular.AreaCurricularID, Nombre: c.AreaCurricular.Nombre}
	}
	if c.Profesor != nil {
		resp.Profesor = &dto.RefResponse{ID: c.Profesor.UsuarioID, Nombre: c.Profesor.NombreCompleto()}
	}
	return resp
}
