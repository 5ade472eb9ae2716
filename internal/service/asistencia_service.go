package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/dto"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/repository"
	pkgerrors "github.com/Jackson-sch/sistema-escolar-sub001/pkg/errors"
)

// AsistenciaService 考勤业务接口
type AsistenciaService interface {
	RegisterBulk(ctx context.Context, institucionID string, req *dto.BulkAsistenciaRequest, callerID string) (*dto.BulkAsistenciaResponse, error)
	List(ctx context.Context, institucionID string, req *dto.AsistenciaListRequest) ([]dto.AsistenciaResponse, error)
}

type asistenciaService struct {
	repo   *repository.Repository
	tx     repository.Transactor
	logger *zap.Logger
}

// NewAsistenciaService 创建 AsistenciaService 实例
func NewAsistenciaService(repo *repository.Repository, tx repository.Transactor, logger *zap.Logger) AsistenciaService {
	return &asistenciaService{repo: repo, tx: tx, logger: logger}
}

// ────────────────────── RegisterBulk ──────────────────────
//
// 同一学生在请求中出现多次时以最后一条为准；全部写入在一个事务内完成。

func (s *asistenciaService) RegisterBulk(ctx context.Context, institucionID string, req *dto.BulkAsistenciaRequest, callerID string) (*dto.BulkAsistenciaResponse, error) {
	fecha, err := parseFecha("fecha", req.Fecha)
	if err != nil {
		return nil, err
	}

	// 去重：同一学生以最后一条为准，输出顺序沿用首次出现的位置
	byEstudiante := make(map[string]dto.AsistenciaRegistro, len(req.Registros))
	orden := make([]string, 0, len(req.Registros))
	for _, r := range req.Registros {
		if _, seen := byEstudiante[r.EstudianteID]; !seen {
			orden = append(orden, r.EstudianteID)
		}
		byEstudiante[r.EstudianteID] = r
	}

	registros := make([]model.Asistencia, 0, len(orden))
	for _, id := range orden {
		r := byEstudiante[id]
		a := model.Asistencia{
			CursoID:       req.CursoID,
			EstudianteID:  id,
			Fecha:         fecha,
			Estado:        r.Estado,
			Observacion:   trimmedPtr(r.Observacion),
			RegistradoPor: &callerID,
		}
		a.CreatedBy = &callerID
		a.UpdatedBy = &callerID
		registros = append(registros, a)
	}

	err = s.tx.Transaction(ctx, func(tx *repository.Repository) error {
		curso, err := tx.Curso.GetByID(ctx, institucionID, req.CursoID)
		if err != nil {
			return notFoundOr(err, "cursoId", "El curso seleccionado no existe")
		}
		if !curso.Activo {
			return pkgerrors.Validation("cursoId", "No se puede registrar asistencia en un curso inactivo")
		}

		count, err := tx.Usuario.CountByIDsAndRol(ctx, institucionID, orden, model.RolEstudiante)
		if err != nil {
			return err
		}
		if count != int64(len(orden)) {
			return pkgerrors.NotFound("registros", "Uno o más estudiantes no existen o no están activos")
		}

		return tx.Asistencia.Upsert(ctx, registros)
	})
	if err != nil {
		if !pkgerrors.IsBusiness(err) {
			s.logger.Error("批量登记考勤失败", zap.String("curso_id", req.CursoID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("考勤已登记",
		zap.String("curso_id", req.CursoID), zap.String("fecha", req.Fecha), zap.Int("registros", len(registros)))

	return &dto.BulkAsistenciaResponse{
		CursoID:     req.CursoID,
		Fecha:       formatFecha(fecha),
		Registrados: len(registros),
	}, nil
}

// ────────────────────── List ──────────────────────

func (s *asistenciaService) List(ctx context.Context, institucionID string, req *dto.AsistenciaListRequest) ([]dto.AsistenciaResponse, error) {
	if _, err := s.repo.Curso.GetByID(ctx, institucionID, req.CursoID); err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.NotFound("curso_id", "El curso seleccionado no existe")
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}

	var fecha *datatypes.Date
	if req.Fecha != "" {
		f, err := parseFecha("fecha", req.Fecha)
		if err != nil {
			return nil, err
		}
		fecha = &f
	}

	registros, err := s.repo.Asistencia.ListByCursoFecha(ctx, req.CursoID, fecha)
	if err != nil {
		s.logger.Error("查询考勤失败", zap.String("curso_id", req.CursoID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.AsistenciaResponse, 0, len(registros))
	for i := range registros {
		a := &registros[i]
		resp := dto.AsistenciaResponse{
			ID:           a.AsistenciaID,
			CursoID:      a.CursoID,
			EstudianteID: a.EstudianteID,
			Fecha:        formatFecha(a.Fecha),
			Estado:       a.Estado,
			Observacion:  a.Observacion,
		}
		if a.Estudiante != nil {
			resp.Estudiante = &dto.RefResponse{ID: a.Estudiante.UsuarioID, Nombre: a.Estudiante.NombreCompleto()}
		}
		result = append(result, resp)
	}
	return result, nil
}
