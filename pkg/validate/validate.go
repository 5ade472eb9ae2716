package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ── 自定义校验标签 ──

const (
	tagNotBlank         = "notblank"
	tagHora             = "hora"
	tagAnioAcademico    = "anio_academico"
	tagAlcance          = "alcance"
	tagDiaSemana        = "dia_semana"
	tagRol              = "rol"
	tagEstadoAsistencia = "estado_asistencia"
)

const (
	MinAnioAcademico = 1990
	MaxAnioAcademico = 2100
)

var horaPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var (
	alcances          = []string{"SECCION_ESPECIFICA", "TODO_EL_GRADO", "TODO_EL_NIVEL", "TODA_LA_INSTITUCION"}
	diasSemana        = []string{"LUNES", "MARTES", "MIERCOLES", "JUEVES", "VIERNES", "SABADO", "DOMINGO"}
	roles             = []string{"administrativo", "profesor", "estudiante"}
	estadosAsistencia = []string{"PRESENTE", "AUSENTE", "TARDANZA", "JUSTIFICADO"}
)

// RegisterGin 把自定义标签注册到 gin 的默认校验引擎
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin 校验引擎不是 validator/v10")
	}
	return Register(v)
}

// Register 注册自定义标签，并使用 json 字段名作为错误字段名
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validations := map[string]validator.Func{
		tagNotBlank:         notBlank,
		tagHora:             hora,
		tagAnioAcademico:    anioAcademico,
		tagAlcance:          oneOf(alcances),
		tagDiaSemana:        oneOf(diasSemana),
		tagRol:              oneOf(roles),
		tagEstadoAsistencia: oneOf(estadosAsistencia),
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("注册校验标签 %s 失败: %w", tag, err)
		}
	}
	return nil
}

func notBlank(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}

func hora(fl validator.FieldLevel) bool {
	return horaPattern.MatchString(fl.Field().String())
}

func anioAcademico(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		y := fl.Field().Int()
		return y >= MinAnioAcademico && y <= MaxAnioAcademico
	}
	return false
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, a := range allowed {
			if s == a {
				return true
			}
		}
		return false
	}
}

// ── 错误文案 ──

// Message 把绑定错误转换为 (字段, 西语提示)；非校验错误返回通用提示
func Message(err error) (string, string) {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return "", "Los datos enviados no son válidos"
	}
	fe := ves[0]
	field := fe.Field()

	switch fe.Tag() {
	case "required", tagNotBlank:
		return field, fmt.Sprintf("El campo %s es requerido", field)
	case tagHora:
		return field, fmt.Sprintf("El campo %s debe tener el formato HH:MM", field)
	case tagAnioAcademico:
		return field, fmt.Sprintf("El año académico debe estar entre %d y %d", MinAnioAcademico, MaxAnioAcademico)
	case tagAlcance:
		return field, "El alcance debe ser SECCION_ESPECIFICA, TODO_EL_GRADO, TODO_EL_NIVEL o TODA_LA_INSTITUCION"
	case tagDiaSemana:
		return field, "El día de la semana no es válido"
	case tagRol:
		return field, "El rol debe ser administrativo, profesor o estudiante"
	case tagEstadoAsistencia:
		return field, "El estado debe ser PRESENTE, AUSENTE, TARDANZA o JUSTIFICADO"
	case "email":
		return field, "El correo electrónico no es válido"
	case "uuid":
		return field, fmt.Sprintf("El campo %s no es un identificador válido", field)
	case "min", "gte":
		return field, fmt.Sprintf("El campo %s debe ser al menos %s", field, fe.Param())
	case "max", "lte":
		return field, fmt.Sprintf("El campo %s no puede exceder %s", field, fe.Param())
	default:
		return field, fmt.Sprintf("El campo %s no es válido", field)
	}
}
