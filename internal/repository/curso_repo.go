package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
	pkgerrors "github.com/Jackson-sch/sistema-escolar-sub001/pkg/errors"
)

// CursoFilter 课程列表过滤条件
type CursoFilter struct {
	AnioAcademico    *int
	Alcance          string
	AreaCurricularID string
	ProfesorID       string
	NivelAcademicoID string
	IncludeInactive  bool
}

// CursoDependents 课程的依赖计数
type CursoDependents struct {
	Estudiantes  int64
	Evaluaciones int64
	Notas        int64
	Asistencias  int64
}

// Total 依赖总数
func (d CursoDependents) Total() int64 {
	return d.Estudiantes + d.Evaluaciones + d.Notas + d.Asistencias
}

// CursoRepository 课程数据访问接口
type CursoRepository interface {
	Create(ctx context.Context, curso *model.Curso) error
	GetByID(ctx context.Context, institucionID, id string) (*model.Curso, error)
	List(ctx context.Context, institucionID string, filter CursoFilter) ([]model.Curso, error)
	// Update 带乐观锁；版本不匹配返回 ErrOptimisticLock
	Update(ctx context.Context, curso *model.Curso) error
	// ExistsByScopeKey 按 (codigo, anio, 作用域目标列) 查重
	ExistsByScopeKey(ctx context.Context, institucionID, codigo string, anio int, alcance, targetID, excludeID string) (bool, error)
	CountDependents(ctx context.Context, id string) (*CursoDependents, error)
	SetActivo(ctx context.Context, institucionID, id string, activo bool, updatedBy string) error
	Delete(ctx context.Context, institucionID, id string) error
}

type cursoRepo struct {
	db *gorm.DB
}

// NewCursoRepo 创建 CursoRepository 实例
func NewCursoRepo(db *gorm.DB) CursoRepository {
	return &cursoRepo{db: db}
}

// scopeTargetColumns 作用域 → 唯一性目标列
var scopeTargetColumns = map[string]string{
	model.AlcanceSeccionEspecifica: "nivel_academico_id",
	model.AlcanceTodoElGrado:       "grado_id",
	model.AlcanceTodoElNivel:       "nivel_id",
	model.AlcanceTodaLaInstitucion: "institucion_id",
}

// tenant 课程经由所属学科领域归属学校
func (r *cursoRepo) tenant(ctx context.Context, institucionID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Joins("JOIN areas_curriculares ac ON ac.area_curricular_id = cursos.area_curricular_id").
		Where("ac.institucion_id = ?", institucionID)
}

func (r *cursoRepo) Create(ctx context.Context, curso *model.Curso) error {
	return r.db.WithContext(ctx).Omit("AreaCurricular", "Profesor", "NivelAcademico").Create(curso).Error
}

func (r *cursoRepo) GetByID(ctx context.Context, institucionID, id string) (*model.Curso, error) {
	var curso model.Curso
	err := r.tenant(ctx, institucionID).
		Preload("AreaCurricular").
		Preload("Profesor").
		Preload("NivelAcademico").
		Preload("NivelAcademico.Nivel").
		Preload("NivelAcademico.Grado").
		Where("cursos.curso_id = ?", id).
		First(&curso).Error
	if err != nil {
		return nil, err
	}
	return &curso, nil
}

func (r *cursoRepo) List(ctx context.Context, institucionID string, filter CursoFilter) ([]model.Curso, error) {
	var cursos []model.Curso
	db := r.tenant(ctx, institucionID).
		Preload("AreaCurricular").
		Preload("Profesor").
		Preload("NivelAcademico").
		Preload("NivelAcademico.Nivel").
		Preload("NivelAcademico.Grado")

	if filter.AnioAcademico != nil {
		db = db.Where("cursos.anio_academico = ?", *filter.AnioAcademico)
	}
	if filter.Alcance != "" {
		db = db.Where("cursos.alcance = ?", filter.Alcance)
	}
	if filter.AreaCurricularID != "" {
		db = db.Where("cursos.area_curricular_id = ?", filter.AreaCurricularID)
	}
	if filter.ProfesorID != "" {
		db = db.Where("cursos.profesor_id = ?", filter.ProfesorID)
	}
	if filter.NivelAcademicoID != "" {
		db = db.Where("cursos.nivel_academico_id = ?", filter.NivelAcademicoID)
	}
	if !filter.IncludeInactive {
		db = db.Where("cursos.activo = ?", true)
	}

	err := db.Order("cursos.anio_academico DESC, cursos.codigo ASC").Find(&cursos).Error
	return cursos, err
}

func (r *cursoRepo) Update(ctx context.Context, curso *model.Curso) error {
	oldVersion := curso.Version
	result := r.db.WithContext(ctx).
		Model(&model.Curso{}).
		Where("curso_id = ? AND version = ?", curso.CursoID, oldVersion).
		Updates(map[string]interface{}{
			"nombre":             curso.Nombre,
			"codigo":             curso.Codigo,
			"descripcion":        curso.Descripcion,
			"alcance":            curso.Alcance,
			"area_curricular_id": curso.AreaCurricularID,
			"profesor_id":        curso.ProfesorID,
			"nivel_academico_id": curso.NivelAcademicoID,
			"grado_id":           curso.GradoID,
			"nivel_id":           curso.NivelID,
			"institucion_id":     curso.InstitucionID,
			"anio_academico":     curso.AnioAcademico,
			"creditos":           curso.Creditos,
			"horas_semanales":    curso.HorasSemanales,
			"activo":             curso.Activo,
			"updated_by":         curso.UpdatedBy,
			"updated_at":         gorm.Expr("NOW()"),
			"version":            oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	curso.Version = oldVersion + 1
	return nil
}

func (r *cursoRepo) ExistsByScopeKey(ctx context.Context, institucionID, codigo string, anio int, alcance, targetID, excludeID string) (bool, error) {
	column, ok := scopeTargetColumns[alcance]
	if !ok {
		return false, fmt.Errorf("alcance desconocido: %s", alcance)
	}

	var count int64
	db := r.tenant(ctx, institucionID).
		Model(&model.Curso{}).
		Where("cursos.codigo = ? AND cursos.anio_academico = ? AND cursos.alcance = ?", codigo, anio, alcance).
		Where("cursos."+column+" = ?", targetID)
	if excludeID != "" {
		db = db.Where("cursos.curso_id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *cursoRepo) CountDependents(ctx context.Context, id string) (*CursoDependents, error) {
	var deps CursoDependents
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.CursoEstudiante{}).
		Where("curso_id = ?", id).
		Count(&deps.Estudiantes).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Evaluacion{}).
		Where("curso_id = ?", id).
		Count(&deps.Evaluaciones).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Nota{}).
		Where("curso_id = ?", id).
		Count(&deps.Notas).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Asistencia{}).
		Where("curso_id = ?", id).
		Count(&deps.Asistencias).Error; err != nil {
		return nil, err
	}
	return &deps, nil
}

func (r *cursoRepo) SetActivo(ctx context.Context, institucionID, id string, activo bool, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Curso{}).
		Where("curso_id = ?", id).
		Where("area_curricular_id IN (?)",
			r.db.Model(&model.AreaCurricular{}).Select("area_curricular_id").Where("institucion_id = ?", institucionID)).
		Updates(map[string]interface{}{
			"activo":     activo,
			"updated_by": updatedBy,
			"updated_at": gorm.Expr("NOW()"),
			"version":    gorm.Expr("version + 1"),
		}).Error
}

func (r *cursoRepo) Delete(ctx context.Context, institucionID, id string) error {
	return r.db.WithContext(ctx).
		Where("curso_id = ?", id).
		Where("area_curricular_id IN (?)",
			r.db.Model(&model.AreaCurricular{}).Select("area_curricular_id").Where("institucion_id = ?", institucionID)).
		Delete(&model.Curso{}).Error
}
