package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// HierarchyRef 层级引用：要么是实体 id，要么是待按名称解析的标签。
//
// JSON 形式：
//
//	"2b1c...-uuid"          → 实体 id
//	"Primaria"              → 标签
//	{"id": "..."}           → 实体 id
//	{"nombre": "Primaria"}  → 标签
type HierarchyRef struct {
	ID    string
	Label string
}

var errInvalidHierarchyRef = errors.New("referencia de jerarquía inválida")

// UnmarshalJSON 在边界处把字符串 / 对象两种形态归一
func (r *HierarchyRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = HierarchyRef{}
		return nil
	}

	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			ID     string `json:"id"`
			Nombre string `json:"nombre"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		switch {
		case obj.ID != "":
			if _, err := uuid.Parse(obj.ID); err != nil {
				return errInvalidHierarchyRef
			}
			*r = HierarchyRef{ID: obj.ID}
		case strings.TrimSpace(obj.Nombre) != "":
			*r = HierarchyRef{Label: strings.TrimSpace(obj.Nombre)}
		default:
			return errInvalidHierarchyRef
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errInvalidHierarchyRef
	}
	*r = ParseHierarchyRef(s)
	return nil
}

// ParseHierarchyRef 能解析为 UUID 的字符串视为 id，否则视为标签
func ParseHierarchyRef(s string) HierarchyRef {
	s = strings.TrimSpace(s)
	if _, err := uuid.Parse(s); err == nil {
		return HierarchyRef{ID: s}
	}
	return HierarchyRef{Label: s}
}

// IsRef 是否为实体 id
func (r HierarchyRef) IsRef() bool { return r.ID != "" }

// IsZero 既无 id 也无标签
func (r HierarchyRef) IsZero() bool { return r.ID == "" && r.Label == "" }

// NullableString 区分“未提供”与“显式置空”（PATCH 语义）
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON 字段出现即 Set；null 对应 Value == nil
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		n.Value = nil
		return nil
	}
	n.Value = &s
	return nil
}
