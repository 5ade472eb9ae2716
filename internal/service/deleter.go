package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/dto"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/repository"
	pkgerrors "github.com/Jackson-sch/sistema-escolar-sub001/pkg/errors"
)

// EntityType 可删除的层级实体
type EntityType string

const (
	EntityCurso          EntityType = "curso"
	EntityNivelAcademico EntityType = "nivel_academico"
	EntityAreaCurricular EntityType = "area_curricular"
)

// Deleter 依赖门控删除：无依赖时硬删除，有依赖时改为停用。
// 结果总是 deleted / deactivated / 明确错误之一。
type Deleter interface {
	DeleteOrDeactivate(ctx context.Context, entity EntityType, institucionID, id, callerID string) (*dto.DeleteResultResponse, error)
}

type deleter struct {
	tx     repository.Transactor
	logger *zap.Logger
}

// NewDeleter 创建 Deleter 实例；计数与写入都经由 tx 提供的事务内 Repository
func NewDeleter(tx repository.Transactor, logger *zap.Logger) Deleter {
	return &deleter{tx: tx, logger: logger}
}

func (d *deleter) DeleteOrDeactivate(ctx context.Context, entity EntityType, institucionID, id, callerID string) (*dto.DeleteResultResponse, error) {
	var (
		result *dto.DeleteResultResponse
		err    error
	)

	// 计数与删除在同一事务内，避免计数后新增依赖
	txErr := d.tx.Transaction(ctx, func(tx *repository.Repository) error {
		switch entity {
		case EntityCurso:
			result, err = d.curso(ctx, tx, institucionID, id, callerID)
		case EntityNivelAcademico:
			result, err = d.nivelAcademico(ctx, tx, institucionID, id, callerID)
		case EntityAreaCurricular:
			result, err = d.areaCurricular(ctx, tx, institucionID, id, callerID)
		default:
			err = fmt.Errorf("tipo de entidad desconocido: %s", entity)
		}
		return err
	})
	if txErr != nil {
		if !pkgerrors.IsBusiness(txErr) {
			d.logger.Error("删除实体失败",
				zap.String("entity", string(entity)), zap.String("id", id), zap.Error(txErr))
		}
		return nil, txErr
	}

	if result.Mode == dto.DeleteModeDeactivated {
		d.logger.Info("存在依赖，已停用而非删除",
			zap.String("entity", string(entity)), zap.String("id", id), zap.String("detalle", result.Message))
	}
	return result, nil
}

// ────────────────────── Curso ──────────────────────

func (d *deleter) curso(ctx context.Context, tx *repository.Repository, institucionID, id, callerID string) (*dto.DeleteResultResponse, error) {
	curso, err := tx.Curso.GetByID(ctx, institucionID, id)
	if err != nil {
		return nil, notFoundOr(err, "id", "El curso no existe")
	}

	deps, err := tx.Curso.CountDependents(ctx, id)
	if err != nil {
		return nil, err
	}

	if deps.Total() > 0 {
		var parts []string
		if deps.Estudiantes > 0 {
			parts = append(parts, plural(deps.Estudiantes, "estudiante asignado", "estudiantes asignados"))
		}
		if deps.Evaluaciones > 0 {
			parts = append(parts, plural(deps.Evaluaciones, "evaluación", "evaluaciones"))
		}
		if deps.Notas > 0 {
			parts = append(parts, plural(deps.Notas, "nota registrada", "notas registradas"))
		}
		if deps.Asistencias > 0 {
			parts = append(parts, plural(deps.Asistencias, "registro de asistencia", "registros de asistencia"))
		}
		detalle := strings.Join(parts, ", ")

		if err := tx.Curso.SetActivo(ctx, institucionID, id, false, callerID); err != nil {
			d.logger.Error("停用课程失败", zap.String("id", id), zap.Error(err))
			return nil, pkgerrors.DependencyBlocked(fmt.Sprintf("No se puede eliminar el curso: tiene %s", detalle))
		}
		curso.Activo = false
		curso.Version++
		return &dto.DeleteResultResponse{
			Mode:    dto.DeleteModeDeactivated,
			Message: fmt.Sprintf("El curso tiene %s; se desactivó en lugar de eliminarse", detalle),
			Entity:  toCursoResponse(curso),
		}, nil
	}

	// 先删课表再删课程
	if _, err := tx.Horario.DeleteByCurso(ctx, id); err != nil {
		return nil, err
	}
	if err := tx.Curso.Delete(ctx, institucionID, id); err != nil {
		return nil, err
	}
	return &dto.DeleteResultResponse{
		Mode:    dto.DeleteModeDeleted,
		Message: "Curso eliminado correctamente",
	}, nil
}

// ────────────────────── NivelAcademico ──────────────────────

func (d *deleter) nivelAcademico(ctx context.Context, tx *repository.Repository, institucionID, id, callerID string) (*dto.DeleteResultResponse, error) {
	na, err := tx.NivelAcademico.GetByID(ctx, institucionID, id)
	if err != nil {
		return nil, notFoundOr(err, "id", "El nivel académico no existe")
	}

	deps, err := tx.NivelAcademico.CountDependents(ctx, id)
	if err != nil {
		return nil, err
	}

	// 依次检查，只报告第一种非零依赖
	var detalle string
	switch {
	case deps.Estudiantes > 0:
		detalle = plural(deps.Estudiantes, "estudiante asignado", "estudiantes asignados")
	case deps.Cursos > 0:
		detalle = plural(deps.Cursos, "curso asociado", "cursos asociados")
	case deps.Matriculas > 0:
		detalle = plural(deps.Matriculas, "matrícula registrada", "matrículas registradas")
	}

	if detalle != "" {
		if err := tx.NivelAcademico.SetActivo(ctx, institucionID, id, false, callerID); err != nil {
			d.logger.Error("停用班级失败", zap.String("id", id), zap.Error(err))
			return nil, pkgerrors.DependencyBlocked(fmt.Sprintf("No se puede eliminar la sección: tiene %s", detalle))
		}
		na.Activo = false
		return &dto.DeleteResultResponse{
			Mode:    dto.DeleteModeDeactivated,
			Message: fmt.Sprintf("La sección tiene %s; se desactivó en lugar de eliminarse", detalle),
			Entity:  toNivelAcademicoResponse(na),
		}, nil
	}

	if err := tx.NivelAcademico.Delete(ctx, institucionID, id); err != nil {
		return nil, err
	}
	return &dto.DeleteResultResponse{
		Mode:    dto.DeleteModeDeleted,
		Message: "Nivel académico eliminado correctamente",
	}, nil
}

// ────────────────────── AreaCurricular ──────────────────────

func (d *deleter) areaCurricular(ctx context.Context, tx *repository.Repository, institucionID, id, callerID string) (*dto.DeleteResultResponse, error) {
	area, err := tx.AreaCurricular.GetByID(ctx, institucionID, id)
	if err != nil {
		return nil, notFoundOr(err, "id", "El área curricular no existe")
	}

	deps, err := tx.AreaCurricular.CountDependents(ctx, id)
	if err != nil {
		return nil, err
	}

	if deps.Cursos > 0 || deps.SubAreas > 0 {
		var parts []string
		if deps.Cursos > 0 {
			parts = append(parts, plural(deps.Cursos, "curso asociado", "cursos asociados"))
		}
		if deps.SubAreas > 0 {
			parts = append(parts, plural(deps.SubAreas, "subárea", "subáreas"))
		}
		detalle := strings.Join(parts, ", ")

		if err := tx.AreaCurricular.SetActivo(ctx, institucionID, id, false, callerID); err != nil {
			d.logger.Error("停用学科领域失败", zap.String("id", id), zap.Error(err))
			return nil, pkgerrors.DependencyBlocked(fmt.Sprintf("No se puede eliminar el área curricular: tiene %s", detalle))
		}
		area.Activo = false
		return &dto.DeleteResultResponse{
			Mode:    dto.DeleteModeDeactivated,
			Message: fmt.Sprintf("El área curricular tiene %s; se desactivó en lugar de eliminarse", detalle),
			Entity:  toAreaCurricularResponse(area),
		}, nil
	}

	if err := tx.AreaCurricular.Delete(ctx, institucionID, id); err != nil {
		return nil, err
	}
	return &dto.DeleteResultResponse{
		Mode:    dto.DeleteModeDeleted,
		Message: "Área curricular eliminada correctamente",
	}, nil
}
