package service

import (
	"go.uber.org/zap"

	"github.com/Jackson-sch/sistema-escolar-sub001/config"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/repository"
	"github.com/Jackson-sch/sistema-escolar-sub001/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth           AuthService
	Usuario        UsuarioService
	Estructura     EstructuraService
	NivelAcademico NivelAcademicoService
	AreaCurricular AreaCurricularService
	Curso          CursoService
	Horario        HorarioService
	Asistencia     AsistenciaService
	Export         ExportService
}

// NewService 创建 Service 聚合；blacklist 可为 nil（Redis 不可用）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	deleter := NewDeleter(repo, logger)
	return &Service{
		Auth:           NewAuthService(repo, jwtMgr, blacklist, logger),
		Usuario:        NewUsuarioService(repo, logger),
		Estructura:     NewEstructuraService(repo, logger),
		NivelAcademico: NewNivelAcademicoService(repo, deleter, logger),
		AreaCurricular: NewAreaCurricularService(repo, deleter, cfg.Academic.MaxParentHops, logger),
		Curso:          NewCursoService(repo, deleter, logger),
		Horario:        NewHorarioService(repo, cfg.Academic, logger),
		Asistencia:     NewAsistenciaService(repo, repo, logger),
		Export:         NewExportService(repo, logger),
	}
}
