package handler

import "github.com/Jackson-sch/sistema-escolar-sub001/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth           *AuthHandler
	Usuario        *UsuarioHandler
	Estructura     *EstructuraHandler
	NivelAcademico *NivelAcademicoHandler
	AreaCurricular *AreaCurricularHandler
	Curso          *CursoHandler
	Horario        *HorarioHandler
	Asistencia     *AsistenciaHandler
	Export         *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:           NewAuthHandler(svc.Auth),
		Usuario:        NewUsuarioHandler(svc.Usuario),
		Estructura:     NewEstructuraHandler(svc.Estructura),
		NivelAcademico: NewNivelAcademicoHandler(svc.NivelAcademico),
		AreaCurricular: NewAreaCurricularHandler(svc.AreaCurricular),
		Curso:          NewCursoHandler(svc.Curso),
		Horario:        NewHorarioHandler(svc.Horario),
		Asistencia:     NewAsistenciaHandler(svc.Asistencia),
		Export:         NewExportHandler(svc.Export),
	}
}
