package model

// Institucion 学校（租户根）— 对应 instituciones
type Institucion struct {
	InstitucionID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"institucion_id"`
	Nombre        string  `gorm:"type:varchar(200);not null"                     json:"nombre"`
	CodigoModular *string `gorm:"type:varchar(20)"                               json:"codigo_modular,omitempty"`
	Activo        bool    `gorm:"not null"                                       json:"activo"`
	BaseModel

	// 关联
	Niveles []Nivel `gorm:"foreignKey:InstitucionID" json:"niveles,omitempty"`
}

// TableName 指定表名
func (Institucion) TableName() string { return "instituciones" }

// Nivel 教育阶段（Inicial / Primaria / Secundaria）— 对应 niveles
type Nivel struct {
	NivelID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"nivel_id"`
	InstitucionID string `gorm:"type:uuid;not null"                             json:"institucion_id"`
	Nombre        string `gorm:"type:varchar(50);not null"                      json:"nombre"`
	Orden         int    `gorm:"type:smallint;not null;default:0"               json:"orden"`
	Activo        bool   `gorm:"not null"                                       json:"activo"`
	BaseModel

	// 关联
	Grados []Grado `gorm:"foreignKey:NivelID" json:"grados,omitempty"`
}

func (Nivel) TableName() string { return "niveles" }

// Grado 年级 — 对应 grados
type Grado struct {
	GradoID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"grado_id"`
	NivelID string `gorm:"type:uuid;not null"                             json:"nivel_id"`
	Nombre  string `gorm:"type:varchar(50);not null"                      json:"nombre"`
	Orden   int    `gorm:"type:smallint;not null;default:0"               json:"orden"`
	Activo  bool   `gorm:"not null"                                       json:"activo"`
	BaseModel

	// 关联
	Nivel *Nivel `gorm:"foreignKey:NivelID;references:NivelID" json:"nivel,omitempty"`
}

func (Grado) TableName() string { return "grados" }

// NivelAcademico 具体班级（某年级某学年的一个 sección）— 对应 niveles_academicos
type NivelAcademico struct {
	NivelAcademicoID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"nivel_academico_id"`
	InstitucionID    string  `gorm:"type:uuid;not null"                             json:"institucion_id"`
	NivelID          string  `gorm:"type:uuid;not null"                             json:"nivel_id"`
	GradoID          string  `gorm:"type:uuid;not null"                             json:"grado_id"`
	Seccion          string  `gorm:"type:varchar(10);not null"                      json:"seccion"`
	Turno            string  `gorm:"type:varchar(20);not null;default:'MANANA'"     json:"turno"` // MANANA | TARDE | NOCHE
	CapacidadMaxima  int     `gorm:"not null;default:30"                            json:"capacidad_maxima"`
	AulaAsignada     *string `gorm:"type:varchar(50)"                               json:"aula_asignada,omitempty"`
	AnioAcademico    int     `gorm:"not null"                                       json:"anio_academico"`
	Activo           bool    `gorm:"not null"                                       json:"activo"`
	BaseModel

	// 关联
	Nivel *Nivel `gorm:"foreignKey:NivelID;references:NivelID" json:"nivel,omitempty"`
	Grado *Grado `gorm:"foreignKey:GradoID;references:GradoID" json:"grado,omitempty"`
}

func (NivelAcademico) TableName() string { return "niveles_academicos" }

// Matricula 学年注册记录 — 对应 matriculas
type Matricula struct {
	MatriculaID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"matricula_id"`
	EstudianteID     string `gorm:"type:uuid;not null"                             json:"estudiante_id"`
	NivelAcademicoID string `gorm:"type:uuid;not null"                             json:"nivel_academico_id"`
	AnioAcademico    int    `gorm:"not null"                                       json:"anio_academico"`
	Estado           string `gorm:"type:varchar(20);not null;default:'ACTIVA'"     json:"estado"`
	BaseModel
}

func (Matricula) TableName() string { return "matriculas" }
