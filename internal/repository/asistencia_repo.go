package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
)

// AsistenciaRepository 考勤数据访问接口
type AsistenciaRepository interface {
	// Upsert 按 (curso_id, estudiante_id, fecha) 覆盖写入
	Upsert(ctx context.Context, registros []model.Asistencia) error
	ListByCursoFecha(ctx context.Context, cursoID string, fecha *datatypes.Date) ([]model.Asistencia, error)
}

type asistenciaRepo struct {
	db *gorm.DB
}

// NewAsistenciaRepo 创建 AsistenciaRepository 实例
func NewAsistenciaRepo(db *gorm.DB) AsistenciaRepository {
	return &asistenciaRepo{db: db}
}

func (r *asistenciaRepo) Upsert(ctx context.Context, registros []model.Asistencia) error {
	if len(registros) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Omit("Estudiante").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "curso_id"}, {Name: "estudiante_id"}, {Name: "fecha"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"estado":         gorm.Expr("EXCLUDED.estado"),
				"observacion":    gorm.Expr("EXCLUDED.observacion"),
				"registrado_por": gorm.Expr("EXCLUDED.registrado_por"),
				"updated_by":     gorm.Expr("EXCLUDED.updated_by"),
				"updated_at":     gorm.Expr("NOW()"),
			}),
		}).
		Create(&registros).Error
}

func (r *asistenciaRepo) ListByCursoFecha(ctx context.Context, cursoID string, fecha *datatypes.Date) ([]model.Asistencia, error) {
	var registros []model.Asistencia
	db := r.db.WithContext(ctx).
		Preload("Estudiante").
		Where("curso_id = ?", cursoID)
	if fecha != nil {
		db = db.Where("fecha = ?", *fecha)
	}
	err := db.Order("fecha DESC").Find(&registros).Error
	return registros, err
}
