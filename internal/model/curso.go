package model

import "gorm.io/datatypes"

// 课程作用域（alcance）
const (
	AlcanceSeccionEspecifica = "SECCION_ESPECIFICA"
	AlcanceTodoElGrado       = "TODO_EL_GRADO"
	AlcanceTodoElNivel       = "TODO_EL_NIVEL"
	AlcanceTodaLaInstitucion = "TODA_LA_INSTITUCION"
)

// AreaCurricular 学科领域（可嵌套）— 对应 areas_curriculares
type AreaCurricular struct {
	AreaCurricularID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"area_curricular_id"`
	InstitucionID    string  `gorm:"type:uuid;not null"                             json:"institucion_id"`
	NivelID          *string `gorm:"type:uuid"                                      json:"nivel_id,omitempty"`
	ParentID         *string `gorm:"type:uuid"                                      json:"parent_id,omitempty"`
	Nombre           string  `gorm:"type:varchar(100);not null"                     json:"nombre"`
	Codigo           string  `gorm:"type:varchar(20);not null"                      json:"codigo"`
	Descripcion      *string `gorm:"type:text"                                      json:"descripcion,omitempty"`
	Orden            int     `gorm:"type:smallint;not null;default:0"               json:"orden"`
	Color            *string `gorm:"type:varchar(7)"                                json:"color,omitempty"`
	Activo           bool    `gorm:"not null"                                       json:"activo"`
	BaseModel
}

func (AreaCurricular) TableName() string { return "areas_curriculares" }

// Curso 课程 — 对应 cursos
// NivelAcademicoID 始终为参考节次；GradoID / NivelID / InstitucionID 仅保留与 Alcance 对应的一列
type Curso struct {
	CursoID          string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"curso_id"`
	Nombre           string  `gorm:"type:varchar(100);not null"                     json:"nombre"`
	Codigo           string  `gorm:"type:varchar(20);not null"                      json:"codigo"`
	Descripcion      *string `gorm:"type:text"                                      json:"descripcion,omitempty"`
	Alcance          string  `gorm:"type:varchar(30);not null"                      json:"alcance"`
	AreaCurricularID string  `gorm:"type:uuid;not null"                             json:"area_curricular_id"`
	ProfesorID       string  `gorm:"type:uuid;not null"                             json:"profesor_id"`
	NivelAcademicoID *string `gorm:"type:uuid"                                      json:"nivel_academico_id,omitempty"`
	GradoID          *string `gorm:"type:uuid"                                      json:"grado_id,omitempty"`
	NivelID          *string `gorm:"type:uuid"                                      json:"nivel_id,omitempty"`
	InstitucionID    *string `gorm:"type:uuid"                                      json:"institucion_id,omitempty"`
	AnioAcademico    int     `gorm:"not null"                                       json:"anio_academico"`
	Creditos         *int    `json:"creditos,omitempty"`
	HorasSemanales   *int    `json:"horas_semanales,omitempty"`
	Activo           bool    `gorm:"not null"                                       json:"activo"`
	Version          int     `gorm:"not null;default:1"                             json:"version"`
	BaseModel

	// 关联
	AreaCurricular *AreaCurricular `gorm:"foreignKey:AreaCurricularID;references:AreaCurricularID" json:"area_curricular,omitempty"`
	Profesor       *Usuario        `gorm:"foreignKey:ProfesorID;references:UsuarioID"             json:"profesor,omitempty"`
	NivelAcademico *NivelAcademico `gorm:"foreignKey:NivelAcademicoID;references:NivelAcademicoID" json:"nivel_academico,omitempty"`
}

func (Curso) TableName() string { return "cursos" }

// Horario 课程周课表 — 对应 horarios
type Horario struct {
	HorarioID  string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"horario_id"`
	CursoID    string          `gorm:"type:uuid;not null"                             json:"curso_id"`
	DiaSemana  string          `gorm:"type:varchar(10);not null"                      json:"dia_semana"` // LUNES..DOMINGO
	HoraInicio datatypes.Time  `gorm:"type:time;not null"                             json:"hora_inicio"`
	HoraFin    *datatypes.Time `gorm:"type:time"                                      json:"hora_fin,omitempty"`
	Aula       *string         `gorm:"type:varchar(50)"                               json:"aula,omitempty"`
	BaseModel
}

func (Horario) TableName() string { return "horarios" }

// CursoEstudiante 选课关系 — 对应 curso_estudiantes
type CursoEstudiante struct {
	CursoID      string `gorm:"type:uuid;primaryKey" json:"curso_id"`
	EstudianteID string `gorm:"type:uuid;primaryKey" json:"estudiante_id"`
}

func (CursoEstudiante) TableName() string { return "curso_estudiantes" }

// Evaluacion 课程评估 — 对应 evaluaciones
type Evaluacion struct {
	EvaluacionID string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"evaluacion_id"`
	CursoID      string          `gorm:"type:uuid;not null"                             json:"curso_id"`
	Nombre       string          `gorm:"type:varchar(100);not null"                     json:"nombre"`
	Fecha        *datatypes.Date `gorm:"type:date"                                      json:"fecha,omitempty"`
	Peso         float64         `gorm:"type:numeric(5,2);not null;default:1"           json:"peso"`
	BaseModel
}

func (Evaluacion) TableName() string { return "evaluaciones" }

// Nota 成绩记录 — 对应 notas
type Nota struct {
	NotaID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"nota_id"`
	CursoID      string  `gorm:"type:uuid;not null"                             json:"curso_id"`
	EstudianteID string  `gorm:"type:uuid;not null"                             json:"estudiante_id"`
	EvaluacionID *string `gorm:"type:uuid"                                      json:"evaluacion_id,omitempty"`
	Valor        float64 `gorm:"type:numeric(5,2);not null"                     json:"valor"`
	BaseModel
}

func (Nota) TableName() string { return "notas" }
