// Package academic 课程作用域解析与学科领域层级环检测。
// 两者均只读数据库，不做任何写入。
package academic

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
	pkgerrors "github.com/Jackson-sch/sistema-escolar-sub001/pkg/errors"
)

// ScopeIDs 调用方提交的层级 id，空串表示未提供
type ScopeIDs struct {
	NivelAcademicoID string
	GradoID          string
	NivelID          string
	InstitucionID    string
}

// Scope 课程作用域。每个变体只携带自身合法的目标 id，
// 由此保证一门课程只有一个权威的作用域目标。
type Scope interface {
	Alcance() string
	// TargetID 唯一性检查使用的目标 id
	TargetID() string
	// Retained 仅保留本作用域有意义的 id
	Retained() ScopeIDs
	isScope()
}

// SeccionScope 单个班级
type SeccionScope struct{ NivelAcademicoID string }

// GradoScope 整个年级
type GradoScope struct{ GradoID string }

// NivelScope 整个教育阶段
type NivelScope struct{ NivelID string }

// InstitucionScope 全校
type InstitucionScope struct{ InstitucionID string }

func (SeccionScope) Alcance() string     { return model.AlcanceSeccionEspecifica }
func (GradoScope) Alcance() string       { return model.AlcanceTodoElGrado }
func (NivelScope) Alcance() string       { return model.AlcanceTodoElNivel }
func (InstitucionScope) Alcance() string { return model.AlcanceTodaLaInstitucion }

func (s SeccionScope) TargetID() string     { return s.NivelAcademicoID }
func (s GradoScope) TargetID() string       { return s.GradoID }
func (s NivelScope) TargetID() string       { return s.NivelID }
func (s InstitucionScope) TargetID() string { return s.InstitucionID }

func (s SeccionScope) Retained() ScopeIDs     { return ScopeIDs{NivelAcademicoID: s.NivelAcademicoID} }
func (s GradoScope) Retained() ScopeIDs       { return ScopeIDs{GradoID: s.GradoID} }
func (s NivelScope) Retained() ScopeIDs       { return ScopeIDs{NivelID: s.NivelID} }
func (s InstitucionScope) Retained() ScopeIDs { return ScopeIDs{InstitucionID: s.InstitucionID} }

func (SeccionScope) isScope()     {}
func (GradoScope) isScope()       {}
func (NivelScope) isScope()       {}
func (InstitucionScope) isScope() {}

// NewScope 按 alcance 选取变体；所需 id 缺失时返回 ValidationError
func NewScope(alcance string, ids ScopeIDs) (Scope, error) {
	switch alcance {
	case model.AlcanceSeccionEspecifica:
		if ids.NivelAcademicoID == "" {
			return nil, pkgerrors.Validation("nivelAcademicoId", "Para un curso de sección específica, el nivel académico es requerido")
		}
		return SeccionScope{NivelAcademicoID: ids.NivelAcademicoID}, nil
	case model.AlcanceTodoElGrado:
		if ids.GradoID == "" {
			return nil, pkgerrors.Validation("gradoId", "Para un curso de todo el grado, el grado es requerido")
		}
		return GradoScope{GradoID: ids.GradoID}, nil
	case model.AlcanceTodoElNivel:
		if ids.NivelID == "" {
			return nil, pkgerrors.Validation("nivelId", "Para un curso de todo el nivel, el nivel es requerido")
		}
		return NivelScope{NivelID: ids.NivelID}, nil
	case model.AlcanceTodaLaInstitucion:
		if ids.InstitucionID == "" {
			return nil, pkgerrors.Validation("institucionId", "Para un curso de toda la institución, la institución es requerida")
		}
		return InstitucionScope{InstitucionID: ids.InstitucionID}, nil
	default:
		return nil, pkgerrors.Validation("alcance", "El alcance del curso no es válido")
	}
}

// MergeIDs 更新时把请求中的 id 合并到已存储的 id 上。
// alcance 变化时旧作用域的 id 全部丢弃，只使用请求提供的 id。
func MergeIDs(storedAlcance string, stored ScopeIDs, newAlcance string, req ScopeIDs) ScopeIDs {
	if newAlcance != storedAlcance {
		return req
	}
	merged := stored
	if req.NivelAcademicoID != "" {
		merged.NivelAcademicoID = req.NivelAcademicoID
	}
	if req.GradoID != "" {
		merged.GradoID = req.GradoID
	}
	if req.NivelID != "" {
		merged.NivelID = req.NivelID
	}
	if req.InstitucionID != "" {
		merged.InstitucionID = req.InstitucionID
	}
	return merged
}

// Target 返回给定 alcance 对应的目标 id
func (ids ScopeIDs) Target(alcance string) string {
	switch alcance {
	case model.AlcanceSeccionEspecifica:
		return ids.NivelAcademicoID
	case model.AlcanceTodoElGrado:
		return ids.GradoID
	case model.AlcanceTodoElNivel:
		return ids.NivelID
	case model.AlcanceTodaLaInstitucion:
		return ids.InstitucionID
	}
	return ""
}

// IDsOf 读取课程当前存储的作用域 id
func IDsOf(c *model.Curso) ScopeIDs {
	var ids ScopeIDs
	switch c.Alcance {
	case model.AlcanceSeccionEspecifica:
		ids.NivelAcademicoID = deref(c.NivelAcademicoID)
	case model.AlcanceTodoElGrado:
		ids.GradoID = deref(c.GradoID)
	case model.AlcanceTodoElNivel:
		ids.NivelID = deref(c.NivelID)
	case model.AlcanceTodaLaInstitucion:
		ids.InstitucionID = deref(c.InstitucionID)
	}
	return ids
}

// ── Resolver ──

// SectionFinder 查找子树中第一个启用的班级
type SectionFinder interface {
	FirstActiveByGrado(ctx context.Context, institucionID, gradoID string) (*model.NivelAcademico, error)
	FirstActiveByNivel(ctx context.Context, institucionID, nivelID string) (*model.NivelAcademico, error)
	FirstActiveByInstitucion(ctx context.Context, institucionID string) (*model.NivelAcademico, error)
}

// Resolution 作用域解析结果
type Resolution struct {
	Scope                     Scope
	ReferenceNivelAcademicoID string
}

// Apply 把解析结果写入课程：参考节次 + 仅本作用域的目标列，其余列清空
func (r *Resolution) Apply(c *model.Curso) {
	ref := r.ReferenceNivelAcademicoID
	c.Alcance = r.Scope.Alcance()
	c.NivelAcademicoID = &ref

	retained := r.Scope.Retained()
	c.GradoID = ptr(retained.GradoID)
	c.NivelID = ptr(retained.NivelID)
	c.InstitucionID = ptr(retained.InstitucionID)
}

// Resolver 计算课程的参考节次
type Resolver struct {
	finder SectionFinder
}

// NewResolver 创建 Resolver
func NewResolver(finder SectionFinder) *Resolver {
	return &Resolver{finder: finder}
}

// Resolve 班级作用域的参考节次即其自身；其余作用域取子树中
// 按 (created_at, nivel_academico_id) 排序的第一个启用班级，不存在时返回 NotFoundError。
func (r *Resolver) Resolve(ctx context.Context, institucionID string, scope Scope) (*Resolution, error) {
	var (
		ref *model.NivelAcademico
		err error
		msg string
	)

	switch s := scope.(type) {
	case SeccionScope:
		return &Resolution{Scope: s, ReferenceNivelAcademicoID: s.NivelAcademicoID}, nil
	case GradoScope:
		ref, err = r.finder.FirstActiveByGrado(ctx, institucionID, s.GradoID)
		msg = "El grado seleccionado no tiene secciones activas"
	case NivelScope:
		ref, err = r.finder.FirstActiveByNivel(ctx, institucionID, s.NivelID)
		msg = "El nivel seleccionado no tiene secciones activas"
	case InstitucionScope:
		ref, err = r.finder.FirstActiveByInstitucion(ctx, institucionID)
		msg = "La institución no tiene secciones activas"
	default:
		return nil, fmt.Errorf("alcance no soportado: %T", scope)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(fieldOf(scope), msg)
		}
		return nil, fmt.Errorf("buscar sección de referencia: %w", err)
	}

	return &Resolution{Scope: scope, ReferenceNivelAcademicoID: ref.NivelAcademicoID}, nil
}

// ── 内部辅助方法 ──

func fieldOf(scope Scope) string {
	switch scope.(type) {
	case SeccionScope:
		return "nivelAcademicoId"
	case GradoScope:
		return "gradoId"
	case NivelScope:
		return "nivelId"
	default:
		return "institucionId"
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
