package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/service"
	pkgerrors "github.com/Jackson-sch/sistema-escolar-sub001/pkg/errors"
	"github.com/Jackson-sch/sistema-escolar-sub001/pkg/response"
	"github.com/Jackson-sch/sistema-escolar-sub001/pkg/validate"
)

// ── 业务错误码 ──

const (
	CodeBadRequest         = 10001
	CodeInvalidCredentials = 11001
	CodeUsuarioInactivo    = 11002
	CodeValidation         = 20001
	CodeNotFound           = 20002
	CodeConflict           = 20003
	CodeIntegrity          = 20004
	CodeDependencyBlocked  = 20005
	CodeOptimisticLock     = 20006
	CodeExportFail         = 16101
)

// bindError 参数绑定失败：带出首个非法字段
func bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "El cuerpo de la solicitud es demasiado grande")
		return
	}
	field, msg := validate.Message(err)
	response.FieldError(c, http.StatusBadRequest, CodeBadRequest, field, msg)
}

// handleError 把 Service 错误映射为 HTTP 状态码与错误码；
// 非业务错误交给 Logger 中间件记录，只返回通用提示
func handleError(c *gin.Context, err error) {
	field := pkgerrors.FieldOf(err)
	switch {
	case errors.Is(err, pkgerrors.ErrValidation):
		response.FieldError(c, http.StatusBadRequest, CodeValidation, field, err.Error())
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.FieldError(c, http.StatusNotFound, CodeNotFound, field, err.Error())
	case errors.Is(err, pkgerrors.ErrConflict):
		response.FieldError(c, http.StatusConflict, CodeConflict, field, err.Error())
	case errors.Is(err, pkgerrors.ErrIntegrity):
		response.FieldError(c, http.StatusUnprocessableEntity, CodeIntegrity, field, err.Error())
	case errors.Is(err, pkgerrors.ErrDependencyBlocked):
		response.Error(c, http.StatusConflict, CodeDependencyBlocked, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Error(c, http.StatusConflict, CodeOptimisticLock, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, CodeInvalidCredentials, err.Error())
	case errors.Is(err, service.ErrUsuarioInactivo):
		response.Unauthorized(c, CodeUsuarioInactivo, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
