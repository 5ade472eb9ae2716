package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/dto"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/service"
	"github.com/Jackson-sch/sistema-escolar-sub001/pkg/response"
)

// NivelAcademicoHandler 班级（sección）HTTP 处理器
type NivelAcademicoHandler struct {
	nivelAcademicoSvc service.NivelAcademicoService
}

// NewNivelAcademicoHandler 创建 NivelAcademicoHandler
func NewNivelAcademicoHandler(nivelAcademicoSvc service.NivelAcademicoService) *NivelAcademicoHandler {
	return &NivelAcademicoHandler{nivelAcademicoSvc: nivelAcademicoSvc}
}

// Create 创建班级；nivel / grado 可传 id 或名称
// POST /api/v1/niveles-academicos
func (h *NivelAcademicoHandler) Create(c *gin.Context) {
	institucionID, callerID, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateNivelAcademicoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	na, err := h.nivelAcademicoSvc.Create(c.Request.Context(), institucionID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, na)
}

// Update 部分更新班级
// PUT /api/v1/niveles-academicos/:id
func (h *NivelAcademicoHandler) Update(c *gin.Context) {
	institucionID, callerID, ok := MustGetCaller(c)
	if !ok {
		return
	}

	id, ok := MustGetPathID(c, "El nivel académico no existe")
	if !ok {
		return
	}

	var req dto.UpdateNivelAcademicoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	na, err := h.nivelAcademicoSvc.Update(c.Request.Context(), institucionID, id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, na)
}

// Get 班级详情
// GET /api/v1/niveles-academicos/:id
func (h *NivelAcademicoHandler) Get(c *gin.Context) {
	institucionID, ok := MustGetInstitucionID(c)
	if !ok {
		return
	}

	id, ok := MustGetPathID(c, "El nivel académico no existe")
	if !ok {
		return
	}

	na, err := h.nivelAcademicoSvc.GetByID(c.Request.Context(), institucionID, id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, na)
}

// List 班级列表
// GET /api/v1/niveles-academicos?anio=2025&grado_id=xxx
func (h *NivelAcademicoHandler) List(c *gin.Context) {
	institucionID, ok := MustGetInstitucionID(c)
	if !ok {
		return
	}

	var req dto.NivelAcademicoListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, err := h.nivelAcademicoSvc.List(c.Request.Context(), institucionID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, list)
}

// Delete 删除班级；存在学生、课程或注册记录时改为停用
// DELETE /api/v1/niveles-academicos/:id
func (h *NivelAcademicoHandler) Delete(c *gin.Context) {
	institucionID, callerID, ok := MustGetCaller(c)
	if !ok {
		return
	}

	id, ok := MustGetPathID(c, "El nivel académico no existe")
	if !ok {
		return
	}

	result, err := h.nivelAcademicoSvc.Delete(c.Request.Context(), institucionID, id, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}
