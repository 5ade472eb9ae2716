package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
)

// AreaCurricularDependents 学科领域的依赖计数
type AreaCurricularDependents struct {
	Cursos   int64
	SubAreas int64
}

// AreaCurricularRepository 学科领域数据访问接口
type AreaCurricularRepository interface {
	Create(ctx context.Context, area *model.AreaCurricular) error
	GetByID(ctx context.Context, institucionID, id string) (*model.AreaCurricular, error)
	// GetParentID 仅读取父节点 id，供环检测逐级上溯
	GetParentID(ctx context.Context, institucionID, id string) (*string, error)
	List(ctx context.Context, institucionID string, includeInactive bool) ([]model.AreaCurricular, error)
	Update(ctx context.Context, area *model.AreaCurricular) error
	ExistsCodigo(ctx context.Context, institucionID, codigo, excludeID string) (bool, error)
	CountDependents(ctx context.Context, id string) (*AreaCurricularDependents, error)
	SetActivo(ctx context.Context, institucionID, id string, activo bool, updatedBy string) error
	Delete(ctx context.Context, institucionID, id string) error
}

type areaCurricularRepo struct {
	db *gorm.DB
}

// NewAreaCurricularRepo 创建 AreaCurricularRepository 实例
func NewAreaCurricularRepo(db *gorm.DB) AreaCurricularRepository {
	return &areaCurricularRepo{db: db}
}

func (r *areaCurricularRepo) Create(ctx context.Context, area *model.AreaCurricular) error {
	return r.db.WithContext(ctx).Create(area).Error
}

func (r *areaCurricularRepo) GetByID(ctx context.Context, institucionID, id string) (*model.AreaCurricular, error) {
	var area model.AreaCurricular
	err := r.db.WithContext(ctx).
		Where("area_curricular_id = ? AND institucion_id = ?", id, institucionID).
		First(&area).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *areaCurricularRepo) GetParentID(ctx context.Context, institucionID, id string) (*string, error) {
	var area model.AreaCurricular
	err := r.db.WithContext(ctx).
		Select("area_curricular_id", "parent_id").
		Where("area_curricular_id = ? AND institucion_id = ?", id, institucionID).
		First(&area).Error
	if err != nil {
		return nil, err
	}
	return area.ParentID, nil
}

func (r *areaCurricularRepo) List(ctx context.Context, institucionID string, includeInactive bool) ([]model.AreaCurricular, error) {
	var areas []model.AreaCurricular
	db := r.db.WithContext(ctx).Where("institucion_id = ?", institucionID)
	if !includeInactive {
		db = db.Where("activo = ?", true)
	}
	err := db.Order("orden ASC, nombre ASC").Find(&areas).Error
	return areas, err
}

func (r *areaCurricularRepo) Update(ctx context.Context, area *model.AreaCurricular) error {
	return r.db.WithContext(ctx).
		Model(area).
		Where("area_curricular_id = ? AND institucion_id = ?", area.AreaCurricularID, area.InstitucionID).
		Updates(map[string]interface{}{
			"nivel_id":    area.NivelID,
			"parent_id":   area.ParentID,
			"nombre":      area.Nombre,
			"codigo":      area.Codigo,
			"descripcion": area.Descripcion,
			"orden":       area.Orden,
			"color":       area.Color,
			"activo":      area.Activo,
			"updated_by":  area.UpdatedBy,
			"updated_at":  gorm.Expr("NOW()"),
		}).Error
}

func (r *areaCurricularRepo) ExistsCodigo(ctx context.Context, institucionID, codigo, excludeID string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&model.AreaCurricular{}).
		Where("institucion_id = ? AND codigo = ?", institucionID, codigo)
	if excludeID != "" {
		db = db.Where("area_curricular_id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *areaCurricularRepo) CountDependents(ctx context.Context, id string) (*AreaCurricularDependents, error) {
	var deps AreaCurricularDependents
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Curso{}).
		Where("area_curricular_id = ?", id).
		Count(&deps.Cursos).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.AreaCurricular{}).
		Where("parent_id = ?", id).
		Count(&deps.SubAreas).Error; err != nil {
		return nil, err
	}
	return &deps, nil
}

func (r *areaCurricularRepo) SetActivo(ctx context.Context, institucionID, id string, activo bool, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.AreaCurricular{}).
		Where("area_curricular_id = ? AND institucion_id = ?", id, institucionID).
		Updates(map[string]interface{}{
			"activo":     activo,
			"updated_by": updatedBy,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *areaCurricularRepo) Delete(ctx context.Context, institucionID, id string) error {
	return r.db.WithContext(ctx).
		Where("area_curricular_id = ? AND institucion_id = ?", id, institucionID).
		Delete(&model.AreaCurricular{}).Error
}
