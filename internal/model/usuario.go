package model

import "gorm.io/datatypes"

// 用户角色
const (
	RolAdministrativo = "administrativo"
	RolProfesor       = "profesor"
	RolEstudiante     = "estudiante"
)

// Usuario 用户表 — 对应 usuarios
type Usuario struct {
	UsuarioID        string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"usuario_id"`
	InstitucionID    string  `gorm:"type:uuid;not null"                             json:"institucion_id"`
	Nombre           string  `gorm:"type:varchar(100);not null"                     json:"nombre"`
	Apellidos        string  `gorm:"type:varchar(100);not null;default:''"          json:"apellidos"`
	Email            string  `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash     string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Rol              string  `gorm:"type:varchar(20);not null"                      json:"rol"`
	NivelAcademicoID *string `gorm:"type:uuid"                                      json:"nivel_academico_id,omitempty"` // 仅学生
	Activo           bool    `gorm:"not null"                                       json:"activo"`
	BaseModel
}

// TableName 指定表名
func (Usuario) TableName() string { return "usuarios" }

// NombreCompleto 姓名 + 姓氏
func (u *Usuario) NombreCompleto() string {
	if u.Apellidos == "" {
		return u.Nombre
	}
	return u.Nombre + " " + u.Apellidos
}

// 考勤状态
const (
	EstadoPresente    = "PRESENTE"
	EstadoAusente     = "AUSENTE"
	EstadoTardanza    = "TARDANZA"
	EstadoJustificado = "JUSTIFICADO"
)

// Asistencia 考勤记录 — 对应 asistencias
type Asistencia struct {
	AsistenciaID  string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"asistencia_id"`
	CursoID       string         `gorm:"type:uuid;not null"                             json:"curso_id"`
	EstudianteID  string         `gorm:"type:uuid;not null"                             json:"estudiante_id"`
	Fecha         datatypes.Date `gorm:"type:date;not null"                             json:"fecha"`
	Estado        string         `gorm:"type:varchar(20);not null"                      json:"estado"`
	Observacion   *string        `gorm:"type:varchar(255)"                              json:"observacion,omitempty"`
	RegistradoPor *string        `gorm:"type:uuid"                                      json:"registrado_por,omitempty"`
	BaseModel

	// 关联
	Estudiante *Usuario `gorm:"foreignKey:EstudianteID;references:UsuarioID" json:"estudiante,omitempty"`
}

func (Asistencia) TableName() string { return "asistencias" }
