package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_IsKind(t *testing.T) {
	err := fmt.Errorf("包装: %w", NotFound("profesorId", "El profesor no existe"))

	if !errors.Is(err, ErrNotFound) {
		t.Error("期望 errors.Is(err, ErrNotFound)")
	}
	if errors.Is(err, ErrConflict) {
		t.Error("不应匹配 ErrConflict")
	}
	if FieldOf(err) != "profesorId" {
		t.Errorf("期望字段 profesorId，实际=%s", FieldOf(err))
	}
}

func TestError_MessageIsUserFacing(t *testing.T) {
	err := Conflict("Ya existe un curso con el código MAT1")
	if err.Error() != "Ya existe un curso con el código MAT1" {
		t.Errorf("消息不符: %s", err.Error())
	}
}

func TestIsBusiness(t *testing.T) {
	if !IsBusiness(Validation("codigo", "x")) {
		t.Error("Validation 应视为业务错误")
	}
	if !IsBusiness(ErrOptimisticLock) {
		t.Error("乐观锁冲突应视为业务错误")
	}
	if IsBusiness(errors.New("connection refused")) {
		t.Error("底层错误不应视为业务错误")
	}
}
