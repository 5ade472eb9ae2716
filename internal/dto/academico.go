package dto

// ── 学校结构 DTO ──

// CreateNivelRequest 创建教育阶段请求
type CreateNivelRequest struct {
	Nombre string `json:"nombre" binding:"required,notblank,max=50"`
	Orden  int    `json:"orden"  binding:"omitempty,min=0,max=100"`
}

// CreateGradoRequest 创建年级请求
type CreateGradoRequest struct {
	NivelID string `json:"nivelId" binding:"required,uuid"`
	Nombre  string `json:"nombre"  binding:"required,notblank,max=50"`
	Orden   int    `json:"orden"   binding:"omitempty,min=0,max=100"`
}

// GradoListRequest 年级列表查询参数
type GradoListRequest struct {
	NivelID string `form:"nivel_id" binding:"omitempty,uuid"`
}

// GradoResponse 年级信息
type GradoResponse struct {
	ID      string `json:"id"`
	NivelID string `json:"nivelId"`
	Nombre  string `json:"nombre"`
	Orden   int    `json:"orden"`
	Activo  bool   `json:"activo"`
}

// NivelResponse 教育阶段信息
type NivelResponse struct {
	ID     string          `json:"id"`
	Nombre string          `json:"nombre"`
	Orden  int             `json:"orden"`
	Activo bool            `json:"activo"`
	Grados []GradoResponse `json:"grados,omitempty"`
}

// InstitucionResponse 学校结构
type InstitucionResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	CodigoModular *string         `json:"codigoModular,omitempty"`
	Niveles       []NivelResponse `json:"niveles"`
}

// ── 班级（nivel académico）DTO ──

// CreateNivelAcademicoRequest 创建班级请求
type CreateNivelAcademicoRequest struct {
	Nivel           *HierarchyRef `json:"nivel"           binding:"required"`
	Grado           *HierarchyRef `json:"grado"           binding:"required"`
	Seccion         string        `json:"seccion"         binding:"required,notblank,max=10"`
	Turno           string        `json:"turno"           binding:"omitempty,oneof=MANANA TARDE NOCHE"`
	CapacidadMaxima int           `json:"capacidadMaxima" binding:"omitempty,min=1,max=100"`
	AulaAsignada    *string       `json:"aulaAsignada"    binding:"omitempty,max=50"`
	AnioAcademico   int           `json:"anioAcademico"   binding:"required,anio_academico"`
	Activo          *bool         `json:"activo"`
}

// UpdateNivelAcademicoRequest 更新班级请求（部分更新）
type UpdateNivelAcademicoRequest struct {
	Nivel           *HierarchyRef `json:"nivel"`
	Grado           *HierarchyRef `json:"grado"`
	Seccion         *string       `json:"seccion"         binding:"omitempty,notblank,max=10"`
	Turno           *string       `json:"turno"           binding:"omitempty,oneof=MANANA TARDE NOCHE"`
	CapacidadMaxima *int          `json:"capacidadMaxima" binding:"omitempty,min=1,max=100"`
	AulaAsignada    *string       `json:"aulaAsignada"    binding:"omitempty,max=50"`
	AnioAcademico   *int          `json:"anioAcademico"   binding:"omitempty,anio_academico"`
	Activo          *bool         `json:"activo"`
}

// NivelAcademicoListRequest 班级列表查询参数
type NivelAcademicoListRequest struct {
	AnioAcademico   *int   `form:"anio"             binding:"omitempty,anio_academico"`
	NivelID         string `form:"nivel_id"         binding:"omitempty,uuid"`
	GradoID         string `form:"grado_id"         binding:"omitempty,uuid"`
	IncludeInactive bool   `form:"include_inactive"`
}

// NivelAcademicoResponse 班级信息
type NivelAcademicoResponse struct {
	ID              string       `json:"id"`
	Nivel           *RefResponse `json:"nivel,omitempty"`
	Grado           *RefResponse `json:"grado,omitempty"`
	Seccion         string       `json:"seccion"`
	Turno           string       `json:"turno"`
	CapacidadMaxima int          `json:"capacidadMaxima"`
	AulaAsignada    *string      `json:"aulaAsignada,omitempty"`
	AnioAcademico   int          `json:"anioAcademico"`
	Activo          bool         `json:"activo"`
	CreatedAt       string       `json:"createdAt"`
	UpdatedAt       string       `json:"updatedAt"`
}

// ── 学科领域 DTO ──

// CreateAreaCurricularRequest 创建学科领域请求
type CreateAreaCurricularRequest struct {
	Nombre      string  `json:"nombre"      binding:"required,notblank,max=100"`
	Codigo      string  `json:"codigo"      binding:"required,notblank,max=20"`
	Descripcion *string `json:"descripcion" binding:"omitempty,max=1000"`
	Orden       int     `json:"orden"       binding:"omitempty,min=0,max=1000"`
	Color       *string `json:"color"       binding:"omitempty,hexcolor"`
	NivelID     *string `json:"nivelId"     binding:"omitempty,uuid"`
	ParentID    *string `json:"parentId"    binding:"omitempty,uuid"`
	Activo      *bool   `json:"activo"`
}

// UpdateAreaCurricularRequest 更新学科领域请求；parentId / nivelId 为 null 时清空
type UpdateAreaCurricularRequest struct {
	Nombre      *string        `json:"nombre"      binding:"omitempty,notblank,max=100"`
	Codigo      *string        `json:"codigo"      binding:"omitempty,notblank,max=20"`
	Descripcion *string        `json:"descripcion" binding:"omitempty,max=1000"`
	Orden       *int           `json:"orden"       binding:"omitempty,min=0,max=1000"`
	Color       *string        `json:"color"       binding:"omitempty,hexcolor"`
	NivelID     NullableString `json:"nivelId"`
	ParentID    NullableString `json:"parentId"`
	Activo      *bool          `json:"activo"`
}

// AreaCurricularListRequest 学科领域列表查询参数
type AreaCurricularListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// AreaCurricularResponse 学科领域信息
type AreaCurricularResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Codigo      string  `json:"codigo"`
	Descripcion *string `json:"descripcion,omitempty"`
	Orden       int     `json:"orden"`
	Color       *string `json:"color,omitempty"`
	NivelID     *string `json:"nivelId,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
	Activo      bool    `json:"activo"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}
