package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
)

// InstitucionRepository 学校数据访问接口
type InstitucionRepository interface {
	GetByID(ctx context.Context, id string) (*model.Institucion, error)
	// GetEstructura 返回学校及其教育阶段、年级（按 orden 排序）
	GetEstructura(ctx context.Context, id string) (*model.Institucion, error)
}

// NivelRepository 教育阶段数据访问接口
type NivelRepository interface {
	Create(ctx context.Context, nivel *model.Nivel) error
	GetByID(ctx context.Context, institucionID, id string) (*model.Nivel, error)
	GetByNombre(ctx context.Context, institucionID, nombre string) (*model.Nivel, error)
	ExistsNombre(ctx context.Context, institucionID, nombre string) (bool, error)
	List(ctx context.Context, institucionID string) ([]model.Nivel, error)
}

// GradoRepository 年级数据访问接口
type GradoRepository interface {
	Create(ctx context.Context, grado *model.Grado) error
	GetByID(ctx context.Context, institucionID, id string) (*model.Grado, error)
	GetByNombre(ctx context.Context, institucionID, nivelID, nombre string) (*model.Grado, error)
	ExistsNombre(ctx context.Context, nivelID, nombre string) (bool, error)
	List(ctx context.Context, institucionID, nivelID string) ([]model.Grado, error)
}

// ── Institucion Repository 实现 ──

type institucionRepo struct {
	db *gorm.DB
}

func NewInstitucionRepo(db *gorm.DB) InstitucionRepository {
	return &institucionRepo{db: db}
}

func (r *institucionRepo) GetByID(ctx context.Context, id string) (*model.Institucion, error) {
	var inst model.Institucion
	err := r.db.WithContext(ctx).
		Where("institucion_id = ?", id).
		First(&inst).Error
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *institucionRepo) GetEstructura(ctx context.Context, id string) (*model.Institucion, error) {
	var inst model.Institucion
	err := r.db.WithContext(ctx).
		Preload("Niveles", func(db *gorm.DB) *gorm.DB {
			return db.Order("orden ASC, nombre ASC")
		}).
		Preload("Niveles.Grados", func(db *gorm.DB) *gorm.DB {
			return db.Order("orden ASC, nombre ASC")
		}).
		Where("institucion_id = ?", id).
		First(&inst).Error
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// ── Nivel Repository 实现 ──

type nivelRepo struct {
	db *gorm.DB
}

func NewNivelRepo(db *gorm.DB) NivelRepository {
	return &nivelRepo{db: db}
}

func (r *nivelRepo) Create(ctx context.Context, nivel *model.Nivel) error {
	return r.db.WithContext(ctx).Create(nivel).Error
}

func (r *nivelRepo) GetByID(ctx context.Context, institucionID, id string) (*model.Nivel, error) {
	var nivel model.Nivel
	err := r.db.WithContext(ctx).
		Where("nivel_id = ? AND institucion_id = ?", id, institucionID).
		First(&nivel).Error
	if err != nil {
		return nil, err
	}
	return &nivel, nil
}

func (r *nivelRepo) GetByNombre(ctx context.Context, institucionID, nombre string) (*model.Nivel, error) {
	var nivel model.Nivel
	err := r.db.WithContext(ctx).
		Where("institucion_id = ? AND LOWER(nombre) = LOWER(?)", institucionID, nombre).
		First(&nivel).Error
	if err != nil {
		return nil, err
	}
	return &nivel, nil
}

func (r *nivelRepo) ExistsNombre(ctx context.Context, institucionID, nombre string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Nivel{}).
		Where("institucion_id = ? AND LOWER(nombre) = LOWER(?)", institucionID, nombre).
		Count(&count).Error
	return count > 0, err
}

func (r *nivelRepo) List(ctx context.Context, institucionID string) ([]model.Nivel, error) {
	var niveles []model.Nivel
	err := r.db.WithContext(ctx).
		Where("institucion_id = ?", institucionID).
		Order("orden ASC, nombre ASC").
		Find(&niveles).Error
	return niveles, err
}

// ── Grado Repository 实现 ──

type gradoRepo struct {
	db *gorm.DB
}

func NewGradoRepo(db *gorm.DB) GradoRepository {
	return &gradoRepo{db: db}
}

// tenant 年级本身不带 institucion_id，经由所属阶段过滤
func (r *gradoRepo) tenant(ctx context.Context, institucionID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Joins("JOIN niveles ON niveles.nivel_id = grados.nivel_id").
		Where("niveles.institucion_id = ?", institucionID)
}

func (r *gradoRepo) Create(ctx context.Context, grado *model.Grado) error {
	return r.db.WithContext(ctx).Create(grado).Error
}

func (r *gradoRepo) GetByID(ctx context.Context, institucionID, id string) (*model.Grado, error) {
	var grado model.Grado
	err := r.tenant(ctx, institucionID).
		Preload("Nivel").
		Where("grados.grado_id = ?", id).
		First(&grado).Error
	if err != nil {
		return nil, err
	}
	return &grado, nil
}

func (r *gradoRepo) GetByNombre(ctx context.Context, institucionID, nivelID, nombre string) (*model.Grado, error) {
	var grado model.Grado
	err := r.tenant(ctx, institucionID).
		Where("grados.nivel_id = ? AND LOWER(grados.nombre) = LOWER(?)", nivelID, nombre).
		First(&grado).Error
	if err != nil {
		return nil, err
	}
	return &grado, nil
}

func (r *gradoRepo) ExistsNombre(ctx context.Context, nivelID, nombre string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Grado{}).
		Where("nivel_id = ? AND LOWER(nombre) = LOWER(?)", nivelID, nombre).
		Count(&count).Error
	return count > 0, err
}

func (r *gradoRepo) List(ctx context.Context, institucionID, nivelID string) ([]model.Grado, error) {
	var grados []model.Grado
	db := r.tenant(ctx, institucionID)
	if nivelID != "" {
		db = db.Where("grados.nivel_id = ?", nivelID)
	}
	err := db.Order("grados.orden ASC, grados.nombre ASC").Find(&grados).Error
	return grados, err
}
