package service

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/academic"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/repository"
	pkgerrors "github.com/Jackson-sch/sistema-escolar-sub001/pkg/errors"
)

// ── 唯一性检查 ──
// 写入前给出可读的冲突提示；真正的并发保证来自迁移中的唯一索引，
// 写入时命中 ErrDuplicatedKey 会转换为同一条 ConflictError。

var scopePhrases = map[string]string{
	model.AlcanceSeccionEspecifica: "en esta sección",
	model.AlcanceTodoElGrado:       "en este grado",
	model.AlcanceTodoElNivel:       "en este nivel",
	model.AlcanceTodaLaInstitucion: "en esta institución",
}

func cursoDuplicado(codigo string, anio int, alcance string) error {
	return pkgerrors.Conflict(fmt.Sprintf("Ya existe un curso con el código %s para el año %d %s", codigo, anio, scopePhrases[alcance]))
}

// checkCursoUnico (codigo, anio, 作用域目标) 唯一
func checkCursoUnico(ctx context.Context, repo *repository.Repository, institucionID, codigo string, anio int, scope academic.Scope, excludeID string) error {
	exists, err := repo.Curso.ExistsByScopeKey(ctx, institucionID, codigo, anio, scope.Alcance(), scope.TargetID(), excludeID)
	if err != nil {
		return err
	}
	if exists {
		return cursoDuplicado(codigo, anio, scope.Alcance())
	}
	return nil
}

func seccionDuplicada(seccion, grado string, anio int) error {
	return pkgerrors.Conflict(fmt.Sprintf("Ya existe la sección %s del grado %s para el año %d", seccion, grado, anio))
}

// checkSeccionUnica (nivel, grado, seccion, anio) 在学校内唯一
func checkSeccionUnica(ctx context.Context, repo *repository.Repository, institucionID string, nivelID string, grado *model.Grado, seccion string, anio int, excludeID string) error {
	exists, err := repo.NivelAcademico.ExistsSeccion(ctx, institucionID, nivelID, grado.GradoID, seccion, anio, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return seccionDuplicada(seccion, grado.Nombre, anio)
	}
	return nil
}

func horarioDuplicado(dia string, hora datatypes.Time) error {
	return pkgerrors.Conflict(fmt.Sprintf("El curso ya tiene un horario el %s a las %s", dia, formatHora(hora)))
}

// checkHorarioUnico (curso, dia, hora_inicio) 唯一
func checkHorarioUnico(ctx context.Context, repo *repository.Repository, cursoID, dia string, hora datatypes.Time) error {
	exists, err := repo.Horario.Exists(ctx, cursoID, dia, hora)
	if err != nil {
		return err
	}
	if exists {
		return horarioDuplicado(dia, hora)
	}
	return nil
}

func areaDuplicada(codigo string) error {
	return pkgerrors.Conflict(fmt.Sprintf("Ya existe un área curricular con el código %s", codigo))
}

// checkAreaCodigoUnico (codigo, institucion) 唯一
func checkAreaCodigoUnico(ctx context.Context, repo *repository.Repository, institucionID, codigo, excludeID string) error {
	exists, err := repo.AreaCurricular.ExistsCodigo(ctx, institucionID, codigo, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return areaDuplicada(codigo)
	}
	return nil
}
