package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
)

// NivelAcademicoFilter 班级列表过滤条件
type NivelAcademicoFilter struct {
	AnioAcademico   *int
	NivelID         string
	GradoID         string
	IncludeInactive bool
}

// NivelAcademicoDependents 班级的依赖计数
type NivelAcademicoDependents struct {
	Estudiantes int64
	Cursos      int64
	Matriculas  int64
}

// NivelAcademicoRepository 班级数据访问接口
type NivelAcademicoRepository interface {
	Create(ctx context.Context, na *model.NivelAcademico) error
	GetByID(ctx context.Context, institucionID, id string) (*model.NivelAcademico, error)
	List(ctx context.Context, institucionID string, filter NivelAcademicoFilter) ([]model.NivelAcademico, error)
	Update(ctx context.Context, na *model.NivelAcademico) error
	ExistsSeccion(ctx context.Context, institucionID, nivelID, gradoID, seccion string, anio int, excludeID string) (bool, error)

	// 参考节次查询：按 created_at, nivel_academico_id 升序取第一条启用班级
	FirstActiveByGrado(ctx context.Context, institucionID, gradoID string) (*model.NivelAcademico, error)
	FirstActiveByNivel(ctx context.Context, institucionID, nivelID string) (*model.NivelAcademico, error)
	FirstActiveByInstitucion(ctx context.Context, institucionID string) (*model.NivelAcademico, error)

	CountDependents(ctx context.Context, id string) (*NivelAcademicoDependents, error)
	SetActivo(ctx context.Context, institucionID, id string, activo bool, updatedBy string) error
	Delete(ctx context.Context, institucionID, id string) error
}

type nivelAcademicoRepo struct {
	db *gorm.DB
}

// NewNivelAcademicoRepo 创建 NivelAcademicoRepository 实例
func NewNivelAcademicoRepo(db *gorm.DB) NivelAcademicoRepository {
	return &nivelAcademicoRepo{db: db}
}

const firstActiveOrder = "created_at ASC, nivel_academico_id ASC"

func (r *nivelAcademicoRepo) Create(ctx context.Context, na *model.NivelAcademico) error {
	return r.db.WithContext(ctx).Create(na).Error
}

func (r *nivelAcademicoRepo) GetByID(ctx context.Context, institucionID, id string) (*model.NivelAcademico, error) {
	var na model.NivelAcademico
	err := r.db.WithContext(ctx).
		Preload("Nivel").
		Preload("Grado").
		Where("nivel_academico_id = ? AND institucion_id = ?", id, institucionID).
		First(&na).Error
	if err != nil {
		return nil, err
	}
	return &na, nil
}

func (r *nivelAcademicoRepo) List(ctx context.Context, institucionID string, filter NivelAcademicoFilter) ([]model.NivelAcademico, error) {
	var list []model.NivelAcademico
	db := r.db.WithContext(ctx).
		Preload("Nivel").
		Preload("Grado").
		Where("institucion_id = ?", institucionID)

	if filter.AnioAcademico != nil {
		db = db.Where("anio_academico = ?", *filter.AnioAcademico)
	}
	if filter.NivelID != "" {
		db = db.Where("nivel_id = ?", filter.NivelID)
	}
	if filter.GradoID != "" {
		db = db.Where("grado_id = ?", filter.GradoID)
	}
	if !filter.IncludeInactive {
		db = db.Where("activo = ?", true)
	}

	err := db.Order("anio_academico DESC, seccion ASC").Find(&list).Error
	return list, err
}

func (r *nivelAcademicoRepo) Update(ctx context.Context, na *model.NivelAcademico) error {
	return r.db.WithContext(ctx).
		Model(na).
		Where("nivel_academico_id = ? AND institucion_id = ?", na.NivelAcademicoID, na.InstitucionID).
		Updates(map[string]interface{}{
			"nivel_id":         na.NivelID,
			"grado_id":         na.GradoID,
			"seccion":          na.Seccion,
			"turno":            na.Turno,
			"capacidad_maxima": na.CapacidadMaxima,
			"aula_asignada":    na.AulaAsignada,
			"anio_academico":   na.AnioAcademico,
			"activo":           na.Activo,
			"updated_by":       na.UpdatedBy,
			"updated_at":       gorm.Expr("NOW()"),
		}).Error
}

func (r *nivelAcademicoRepo) ExistsSeccion(ctx context.Context, institucionID, nivelID, gradoID, seccion string, anio int, excludeID string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&model.NivelAcademico{}).
		Where("institucion_id = ? AND nivel_id = ? AND grado_id = ? AND seccion = ? AND anio_academico = ?",
			institucionID, nivelID, gradoID, seccion, anio)
	if excludeID != "" {
		db = db.Where("nivel_academico_id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

// ── 参考节次 ──

func (r *nivelAcademicoRepo) firstActive(ctx context.Context, query string, args ...interface{}) (*model.NivelAcademico, error) {
	var na model.NivelAcademico
	err := r.db.WithContext(ctx).
		Where("activo = ?", true).
		Where(query, args...).
		Order(firstActiveOrder).
		First(&na).Error
	if err != nil {
		return nil, err
	}
	return &na, nil
}

func (r *nivelAcademicoRepo) FirstActiveByGrado(ctx context.Context, institucionID, gradoID string) (*model.NivelAcademico, error) {
	return r.firstActive(ctx, "institucion_id = ? AND grado_id = ?", institucionID, gradoID)
}

func (r *nivelAcademicoRepo) FirstActiveByNivel(ctx context.Context, institucionID, nivelID string) (*model.NivelAcademico, error) {
	return r.firstActive(ctx, "institucion_id = ? AND nivel_id = ?", institucionID, nivelID)
}

func (r *nivelAcademicoRepo) FirstActiveByInstitucion(ctx context.Context, institucionID string) (*model.NivelAcademico, error) {
	return r.firstActive(ctx, "institucion_id = ?", institucionID)
}

// ── 删除相关 ──

func (r *nivelAcademicoRepo) CountDependents(ctx context.Context, id string) (*NivelAcademicoDependents, error) {
	var deps NivelAcademicoDependents
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Usuario{}).
		Where("nivel_academico_id = ? AND rol = ?", id, model.RolEstudiante).
		Count(&deps.Estudiantes).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Curso{}).
		Where("nivel_academico_id = ?", id).
		Count(&deps.Cursos).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Matricula{}).
		Where("nivel_academico_id = ?", id).
		Count(&deps.Matriculas).Error; err != nil {
		return nil, err
	}
	return &deps, nil
}

func (r *nivelAcademicoRepo) SetActivo(ctx context.Context, institucionID, id string, activo bool, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.NivelAcademico{}).
		Where("nivel_academico_id = ? AND institucion_id = ?", id, institucionID).
		Updates(map[string]interface{}{
			"activo":     activo,
			"updated_by": updatedBy,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *nivelAcademicoRepo) Delete(ctx context.Context, institucionID, id string) error {
	return r.db.WithContext(ctx).
		Where("nivel_academico_id = ? AND institucion_id = ?", id, institucionID).
		Delete(&model.NivelAcademico{}).Error
}
