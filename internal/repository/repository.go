package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Institucion    InstitucionRepository
	Nivel          NivelRepository
	Grado          GradoRepository
	NivelAcademico NivelAcademicoRepository
	AreaCurricular AreaCurricularRepository
	Curso          CursoRepository
	Horario        HorarioRepository
	Usuario        UsuarioRepository
	Asistencia     AsistenciaRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:             db,
		Institucion:    NewInstitucionRepo(db),
		Nivel:          NewNivelRepo(db),
		Grado:          NewGradoRepo(db),
		NivelAcademico: NewNivelAcademicoRepo(db),
		AreaCurricular: NewAreaCurricularRepo(db),
		Curso:          NewCursoRepo(db),
		Horario:        NewHorarioRepo(db),
		Usuario:        NewUsuarioRepo(db),
		Asistencia:     NewAsistenciaRepo(db),
	}
}

// Transactor 事务边界，Service 通过它获得绑定事务的 Repository
type Transactor interface {
	Transaction(ctx context.Context, fn func(tx *Repository) error) error
}

var _ Transactor = (*Repository)(nil)

// Transaction 在同一事务内执行 fn，fn 收到绑定事务的 Repository
// fn 返回 nil 时提交，返回错误或 panic 时回滚。
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
