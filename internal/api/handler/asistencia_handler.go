package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/dto"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/service"
	"github.com/Jackson-sch/sistema-escolar-sub001/pkg/response"
)

// AsistenciaHandler 考勤 HTTP 处理器
type AsistenciaHandler struct {
	asistenciaSvc service.AsistenciaService
}

// NewAsistenciaHandler 创建 AsistenciaHandler
func NewAsistenciaHandler(asistenciaSvc service.AsistenciaService) *AsistenciaHandler {
	return &AsistenciaHandler{asistenciaSvc: asistenciaSvc}
}

// RegisterBulk 批量登记某课程某天的考勤
// POST /api/v1/asistencias/bulk
func (h *AsistenciaHandler) RegisterBulk(c *gin.Context) {
	institucionID, callerID, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.BulkAsistenciaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.asistenciaSvc.RegisterBulk(c.Request.Context(), institucionID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// List 查询考勤
// GET /api/v1/asistencias?curso_id=xxx&fecha=2025-04-07
func (h *AsistenciaHandler) List(c *gin.Context) {
	institucionID, ok := MustGetInstitucionID(c)
	if !ok {
		return
	}

	var req dto.AsistenciaListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, err := h.asistenciaSvc.List(c.Request.Context(), institucionID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, list)
}
