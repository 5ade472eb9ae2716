package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("Los datos fueron modificados por otra operación, recargue e intente nuevamente")

// ── 错误类别 ──
// 业务错误统一通过 Error.Kind 归类，Handler 层据此映射 HTTP 状态码。

var (
	ErrValidation        = errors.New("validation")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrIntegrity         = errors.New("integrity")
	ErrDependencyBlocked = errors.New("dependency blocked")
)

// Error 带字段归属的业务错误，Message 为直接展示给用户的西语文案
type Error struct {
	Kind    error
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Validation 必填字段缺失或取值非法
func Validation(field, message string) *Error {
	return &Error{Kind: ErrValidation, Field: field, Message: message}
}

// NotFound 引用的实体不存在
func NotFound(field, message string) *Error {
	return &Error{Kind: ErrNotFound, Field: field, Message: message}
}

// Conflict 唯一性冲突
func Conflict(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

// Integrity 层级完整性被破坏（环、自引用、遍历超限）
func Integrity(field, message string) *Error {
	return &Error{Kind: ErrIntegrity, Field: field, Message: message}
}

// DependencyBlocked 存在依赖且停用失败
func DependencyBlocked(message string) *Error {
	return &Error{Kind: ErrDependencyBlocked, Message: message}
}

// FieldOf 返回错误归属的字段名，非业务错误返回空串
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

// IsBusiness 判断是否为可直接展示给用户的业务错误
func IsBusiness(err error) bool {
	var e *Error
	return errors.As(err, &e) || errors.Is(err, ErrOptimisticLock)
}
