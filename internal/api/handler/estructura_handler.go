package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/dto"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/service"
	"github.com/Jackson-sch/sistema-escolar-sub001/pkg/response"
)

// EstructuraHandler 学校结构（教育阶段 / 年级）HTTP 处理器
type EstructuraHandler struct {
	estructuraSvc service.EstructuraService
}

// NewEstructuraHandler 创建 EstructuraHandler
func NewEstructuraHandler(estructuraSvc service.EstructuraService) *EstructuraHandler {
	return &EstructuraHandler{estructuraSvc: estructuraSvc}
}

// GetInstitucion 当前学校及其阶段、年级
// GET /api/v1/institucion
func (h *EstructuraHandler) GetInstitucion(c *gin.Context) {
	institucionID, ok := MustGetInstitucionID(c)
	if !ok {
		return
	}

	inst, err := h.estructuraSvc.GetInstitucion(c.Request.Context(), institucionID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, inst)
}

// CreateNivel 创建教育阶段
// POST /api/v1/niveles
func (h *EstructuraHandler) CreateNivel(c *gin.Context) {
	institucionID, callerID, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateNivelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	nivel, err := h.estructuraSvc.CreateNivel(c.Request.Context(), institucionID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, nivel)
}

// ListNiveles 教育阶段列表
// GET /api/v1/niveles
func (h *EstructuraHandler) ListNiveles(c *gin.Context) {
	institucionID, ok := MustGetInstitucionID(c)
	if !ok {
		return
	}

	niveles, err := h.estructuraSvc.ListNiveles(c.Request.Context(), institucionID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, niveles)
}

// CreateGrado 创建年级
// POST /api/v1/grados
func (h *EstructuraHandler) CreateGrado(c *gin.Context) {
	institucionID, callerID, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateGradoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	grado, err := h.estructuraSvc.CreateGrado(c.Request.Context(), institucionID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, grado)
}

// ListGrados 年级列表
// GET /api/v1/grados?nivel_id=xxx
func (h *EstructuraHandler) ListGrados(c *gin.Context) {
	institucionID, ok := MustGetInstitucionID(c)
	if !ok {
		return
	}

	var req dto.GradoListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	grados, err := h.estructuraSvc.ListGrados(c.Request.Context(), institucionID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, grados)
}
