package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken string          `json:"accessToken"`
	ExpiresIn   int             `json:"expiresIn"` // 秒
	Usuario     UsuarioResponse `json:"usuario"`
}

// ── 用户模块 DTO ──

// CreateUsuarioRequest 创建用户请求
type CreateUsuarioRequest struct {
	Nombre           string  `json:"nombre"           binding:"required,notblank,max=100"`
	Apellidos        string  `json:"apellidos"        binding:"omitempty,max=100"`
	Email            string  `json:"email"            binding:"required,email,max=255"`
	Password         string  `json:"password"         binding:"required,min=8,max=72"`
	Rol              string  `json:"rol"              binding:"required,rol"`
	NivelAcademicoID *string `json:"nivelAcademicoId" binding:"omitempty,uuid"`
}

// UsuarioListRequest 用户列表查询参数
type UsuarioListRequest struct {
	PaginationRequest
	Rol string `form:"rol" binding:"omitempty,rol"`
}

// UsuarioResponse 用户信息（脱敏）
type UsuarioResponse struct {
	ID               string  `json:"id"`
	InstitucionID    string  `json:"institucionId"`
	Nombre           string  `json:"nombre"`
	Apellidos        string  `json:"apellidos"`
	Email            string  `json:"email"`
	Rol              string  `json:"rol"`
	NivelAcademicoID *string `json:"nivelAcademicoId,omitempty"`
	Activo           bool    `json:"activo"`
	CreatedAt        string  `json:"createdAt"`
}

// ── 考勤 DTO ──

// AsistenciaRegistro 单个学生考勤
type AsistenciaRegistro struct {
	EstudianteID string  `json:"estudianteId" binding:"required,uuid"`
	Estado       string  `json:"estado"       binding:"required,estado_asistencia"`
	Observacion  *string `json:"observacion"  binding:"omitempty,max=255"`
}

// BulkAsistenciaRequest 批量登记考勤请求
type BulkAsistenciaRequest struct {
	CursoID   string               `json:"cursoId"   binding:"required,uuid"`
	Fecha     string               `json:"fecha"     binding:"required,datetime=2006-01-02"`
	Registros []AsistenciaRegistro `json:"registros" binding:"required,min=1,max=200,dive"`
}

// BulkAsistenciaResponse 批量登记结果
type BulkAsistenciaResponse struct {
	CursoID     string `json:"cursoId"`
	Fecha       string `json:"fecha"`
	Registrados int    `json:"registrados"`
}

// AsistenciaListRequest 考勤查询参数
type AsistenciaListRequest struct {
	CursoID string `form:"curso_id" binding:"required,uuid"`
	Fecha   string `form:"fecha"    binding:"omitempty,datetime=2006-01-02"`
}

// AsistenciaResponse 考勤记录
type AsistenciaResponse struct {
	ID           string       `json:"id"`
	CursoID      string       `json:"cursoId"`
	Estudiante   *RefResponse `json:"estudiante,omitempty"`
	EstudianteID string       `json:"estudianteId"`
	Fecha        string       `json:"fecha"`
	Estado       string       `json:"estado"`
	Observacion  *string      `json:"observacion,omitempty"`
}
