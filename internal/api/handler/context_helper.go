package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/api/middleware"
	"github.com/Jackson-sch/sistema-escolar-sub001/pkg/jwt"
	"github.com/Jackson-sch/sistema-escolar-sub001/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	return mustGetString(c, middleware.CtxUserID)
}

// MustGetInstitucionID 从 Gin 上下文中安全提取 institucion_id（租户）。
func MustGetInstitucionID(c *gin.Context) (string, bool) {
	return mustGetString(c, middleware.CtxInstitucionID)
}

// MustGetCaller 同时提取租户与调用方，写操作使用
func MustGetCaller(c *gin.Context) (institucionID, userID string, ok bool) {
	if institucionID, ok = MustGetInstitucionID(c); !ok {
		return "", "", false
	}
	if userID, ok = MustGetUserID(c); !ok {
		return "", "", false
	}
	return institucionID, userID, true
}

// MustGetClaims 提取完整的 Token 声明（登出时需要 jti 与过期时间）
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.CtxClaims)
	if !exists {
		response.Unauthorized(c, 10002, "No autenticado")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "No autenticado")
		return nil, false
	}
	return claims, true
}

// MustGetPathID 提取路径参数 :id，非 UUID 时直接按不存在处理（404），
// 避免非法值传到数据库层变成 500。
func MustGetPathID(c *gin.Context, notFoundMsg string) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.FieldError(c, http.StatusNotFound, CodeNotFound, "id", notFoundMsg)
		return "", false
	}
	return id, true
}

func mustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, 10002, "No autenticado")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "No autenticado")
		return "", false
	}
	return s, true
}
