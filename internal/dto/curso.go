package dto

// ── 课程模块 DTO ──

// CreateCursoRequest 创建课程请求
// 作用域 id 是否必填取决于 alcance，由作用域解析统一校验
type CreateCursoRequest struct {
	Nombre           string  `json:"nombre"           binding:"required,notblank,max=100"`
	Codigo           string  `json:"codigo"           binding:"required,notblank,max=20"`
	Descripcion      *string `json:"descripcion"      binding:"omitempty,max=1000"`
	Alcance          string  `json:"alcance"          binding:"required,alcance"`
	AreaCurricularID string  `json:"areaCurricularId" binding:"required,uuid"`
	ProfesorID       string  `json:"profesorId"       binding:"required,uuid"`
	AnioAcademico    int     `json:"anioAcademico"    binding:"required,anio_academico"`
	Creditos         *int    `json:"creditos"         binding:"omitempty,min=0,max=50"`
	HorasSemanales   *int    `json:"horasSemanales"   binding:"omitempty,min=0,max=60"`
	Activo           *bool   `json:"activo"`

	NivelAcademicoID string `json:"nivelAcademicoId" binding:"omitempty,uuid"`
	GradoID          string `json:"gradoId"          binding:"omitempty,uuid"`
	NivelID          string `json:"nivelId"          binding:"omitempty,uuid"`
	InstitucionID    string `json:"institucionId"    binding:"omitempty,uuid"`
}

// UpdateCursoRequest 更新课程请求（部分更新）
type UpdateCursoRequest struct {
	Nombre           *string `json:"nombre"           binding:"omitempty,notblank,max=100"`
	Codigo           *string `json:"codigo"           binding:"omitempty,notblank,max=20"`
	Descripcion      *string `json:"descripcion"      binding:"omitempty,max=1000"`
	Alcance          *string `json:"alcance"          binding:"omitempty,alcance"`
	AreaCurricularID *string `json:"areaCurricularId" binding:"omitempty,uuid"`
	ProfesorID       *string `json:"profesorId"       binding:"omitempty,uuid"`
	AnioAcademico    *int    `json:"anioAcademico"    binding:"omitempty,anio_academico"`
	Creditos         *int    `json:"creditos"         binding:"omitempty,min=0,max=50"`
	HorasSemanales   *int    `json:"horasSemanales"   binding:"omitempty,min=0,max=60"`
	Activo           *bool   `json:"activo"`
	// Version 客户端读取时的版本号；提供时做乐观锁校验
	Version *int `json:"version" binding:"omitempty,min=1"`

	NivelAcademicoID string `json:"nivelAcademicoId" binding:"omitempty,uuid"`
	GradoID          string `json:"gradoId"          binding:"omitempty,uuid"`
	NivelID          string `json:"nivelId"          binding:"omitempty,uuid"`
	InstitucionID    string `json:"institucionId"    binding:"omitempty,uuid"`
}

// CursoListRequest 课程列表查询参数
type CursoListRequest struct {
	AnioAcademico    *int   `form:"anio"               binding:"omitempty,anio_academico"`
	Alcance          string `form:"alcance"            binding:"omitempty,alcance"`
	AreaCurricularID string `form:"area_curricular_id" binding:"omitempty,uuid"`
	ProfesorID       string `form:"profesor_id"        binding:"omitempty,uuid"`
	NivelAcademicoID string `form:"nivel_academico_id" binding:"omitempty,uuid"`
	IncludeInactive  bool   `form:"include_inactive"`
}

// CursoResponse 课程信息
type CursoResponse struct {
	ID               string       `json:"id"`
	Nombre           string       `json:"nombre"`
	Codigo           string       `json:"codigo"`
	Descripcion      *string      `json:"descripcion,omitempty"`
	Alcance          string       `json:"alcance"`
	AreaCurricularID string       `json:"areaCurricularId"`
	AreaCurricular   *RefResponse `json:"areaCurricular,omitempty"`
	ProfesorID       string       `json:"profesorId"`
	Profesor         *RefResponse `json:"profesor,omitempty"`
	NivelAcademicoID *string      `json:"nivelAcademicoId"`
	GradoID          *string      `json:"gradoId"`
	NivelID          *string      `json:"nivelId"`
	InstitucionID    *string      `json:"institucionId"`
	AnioAcademico    int          `json:"anioAcademico"`
	Creditos         *int         `json:"creditos,omitempty"`
	HorasSemanales   *int         `json:"horasSemanales,omitempty"`
	Activo           bool         `json:"activo"`
	Version          int          `json:"version"`
	CreatedAt        string       `json:"createdAt"`
	UpdatedAt        string       `json:"updatedAt"`
}

// ── 课表 DTO ──

// CreateHorarioRequest 创建课表请求
type CreateHorarioRequest struct {
	CursoID    string  `json:"cursoId"    binding:"required,uuid"`
	DiaSemana  string  `json:"diaSemana"  binding:"required,dia_semana"`
	HoraInicio string  `json:"horaInicio" binding:"required,hora"`
	HoraFin    *string `json:"horaFin"    binding:"omitempty,hora"`
	Aula       *string `json:"aula"       binding:"omitempty,max=50"`
}

// HorarioResponse 课表信息（时间格式 HH:MM）
type HorarioResponse struct {
	ID         string  `json:"id"`
	CursoID    string  `json:"cursoId"`
	DiaSemana  string  `json:"diaSemana"`
	HoraInicio string  `json:"horaInicio"`
	HoraFin    *string `json:"horaFin,omitempty"`
	Aula       *string `json:"aula,omitempty"`
}

// ── 导出 DTO ──

// ExportCursosRequest 课程导出查询参数
type ExportCursosRequest struct {
	AnioAcademico *int `form:"anio" binding:"omitempty,anio_academico"`
}
