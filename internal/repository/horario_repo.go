package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
)

// HorarioRepository 课表数据访问接口
type HorarioRepository interface {
	Create(ctx context.Context, horario *model.Horario) error
	GetByID(ctx context.Context, institucionID, id string) (*model.Horario, error)
	ListByCurso(ctx context.Context, cursoID string) ([]model.Horario, error)
	Exists(ctx context.Context, cursoID, diaSemana string, horaInicio datatypes.Time) (bool, error)
	Delete(ctx context.Context, id string) error
	// DeleteByCurso 删除课程的全部课表，返回删除条数
	DeleteByCurso(ctx context.Context, cursoID string) (int64, error)
}

type horarioRepo struct {
	db *gorm.DB
}

// NewHorarioRepo 创建 HorarioRepository 实例
func NewHorarioRepo(db *gorm.DB) HorarioRepository {
	return &horarioRepo{db: db}
}

func (r *horarioRepo) Create(ctx context.Context, horario *model.Horario) error {
	return r.db.WithContext(ctx).Create(horario).Error
}

func (r *horarioRepo) GetByID(ctx context.Context, institucionID, id string) (*model.Horario, error) {
	var horario model.Horario
	err := r.db.WithContext(ctx).
		Joins("JOIN cursos c ON c.curso_id = horarios.curso_id").
		Joins("JOIN areas_curriculares ac ON ac.area_curricular_id = c.area_curricular_id").
		Where("horarios.horario_id = ? AND ac.institucion_id = ?", id, institucionID).
		First(&horario).Error
	if err != nil {
		return nil, err
	}
	return &horario, nil
}

func (r *horarioRepo) ListByCurso(ctx context.Context, cursoID string) ([]model.Horario, error) {
	var horarios []model.Horario
	err := r.db.WithContext(ctx).
		Where("curso_id = ?", cursoID).
		Order(`CASE dia_semana
			WHEN 'LUNES' THEN 1 WHEN 'MARTES' THEN 2 WHEN 'MIERCOLES' THEN 3
			WHEN 'JUEVES' THEN 4 WHEN 'VIERNES' THEN 5 WHEN 'SABADO' THEN 6 ELSE 7 END, hora_inicio ASC`).
		Find(&horarios).Error
	return horarios, err
}

func (r *horarioRepo) Exists(ctx context.Context, cursoID, diaSemana string, horaInicio datatypes.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Horario{}).
		Where("curso_id = ? AND dia_semana = ? AND hora_inicio = ?", cursoID, diaSemana, horaInicio).
		Count(&count).Error
	return count > 0, err
}

func (r *horarioRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("horario_id = ?", id).
		Delete(&model.Horario{}).Error
}

func (r *horarioRepo) DeleteByCurso(ctx context.Context, cursoID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("curso_id = ?", cursoID).
		Delete(&model.Horario{})
	return result.RowsAffected, result.Error
}
