package service

import (
	"context"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/academic"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/repository"
	pkgerrors "github.com/Jackson-sch/sistema-escolar-sub001/pkg/errors"
)

// cursoRelaciones 课程写入前需要确认存在的外键
type cursoRelaciones struct {
	AreaCurricularID string
	ProfesorID       string
	academic.ScopeIDs
}

// validateRelations 按固定顺序逐个确认引用存在，遇到第一个缺失即返回 NotFoundError(字段)。
// 所有查询都限定在调用方所属学校内。
func validateRelations(ctx context.Context, repo *repository.Repository, institucionID string, rel cursoRelaciones) error {
	if rel.AreaCurricularID != "" {
		if _, err := repo.AreaCurricular.GetByID(ctx, institucionID, rel.AreaCurricularID); err != nil {
			return notFoundOr(err, "areaCurricularId", "El área curricular seleccionada no existe")
		}
	}

	if rel.ProfesorID != "" {
		profesor, err := repo.Usuario.GetByID(ctx, institucionID, rel.ProfesorID)
		if err != nil {
			return notFoundOr(err, "profesorId", "El profesor seleccionado no existe")
		}
		if profesor.Rol != model.RolProfesor {
			return pkgerrors.NotFound("profesorId", "El usuario seleccionado no es un profesor")
		}
	}

	if rel.NivelAcademicoID != "" {
		if _, err := repo.NivelAcademico.GetByID(ctx, institucionID, rel.NivelAcademicoID); err != nil {
			return notFoundOr(err, "nivelAcademicoId", "El nivel académico seleccionado no existe")
		}
	}

	if rel.GradoID != "" {
		if _, err := repo.Grado.GetByID(ctx, institucionID, rel.GradoID); err != nil {
			return notFoundOr(err, "gradoId", "El grado seleccionado no existe")
		}
	}

	if rel.NivelID != "" {
		if _, err := repo.Nivel.GetByID(ctx, institucionID, rel.NivelID); err != nil {
			return notFoundOr(err, "nivelId", "El nivel seleccionado no existe")
		}
	}

	if rel.InstitucionID != "" {
		// 只能引用自己的学校
		if rel.InstitucionID != institucionID {
			return pkgerrors.NotFound("institucionId", "La institución seleccionada no existe")
		}
		if _, err := repo.Institucion.GetByID(ctx, rel.InstitucionID); err != nil {
			return notFoundOr(err, "institucionId", "La institución seleccionada no existe")
		}
	}

	return nil
}

// notFoundOr 未找到记录转换为带字段的 NotFoundError，其余错误原样返回
func notFoundOr(err error, field, message string) error {
	if isNotFound(err) {
		return pkgerrors.NotFound(field, message)
	}
	return err
}
