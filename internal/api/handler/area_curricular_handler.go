package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/dto"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/service"
	"github.com/Jackson-sch/sistema-escolar-sub001/pkg/response"
)

// AreaCurricularHandler 学科领域 HTTP 处理器
type AreaCurricularHandler struct {
	areaSvc service.AreaCurricularService
}

// NewAreaCurricularHandler 创建 AreaCurricularHandler
func NewAreaCurricularHandler(areaSvc service.AreaCurricularService) *AreaCurricularHandler {
	return &AreaCurricularHandler{areaSvc: areaSvc}
}

// Create 创建学科领域
// POST /api/v1/areas-curriculares
func (h *AreaCurricularHandler) Create(c *gin.Context) {
	institucionID, callerID, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateAreaCurricularRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	area, err := h.areaSvc.Create(c.Request.Context(), institucionID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, area)
}

// Update 部分更新学科领域；parentId 为 null 时清空上级
// PUT /api/v1/areas-curriculares/:id
func (h *AreaCurricularHandler) Update(c *gin.Context) {
	institucionID, callerID, ok := MustGetCaller(c)
	if !ok {
		return
	}

	id, ok := MustGetPathID(c, "El área curricular no existe")
	if !ok {
		return
	}

	var req dto.UpdateAreaCurricularRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	area, err := h.areaSvc.Update(c.Request.Context(), institucionID, id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, area)
}

// Get 学科领域详情
// GET /api/v1/areas-curriculares/:id
func (h *AreaCurricularHandler) Get(c *gin.Context) {
	institucionID, ok := MustGetInstitucionID(c)
	if !ok {
		return
	}

	id, ok := MustGetPathID(c, "El área curricular no existe")
	if !ok {
		return
	}

	area, err := h.areaSvc.GetByID(c.Request.Context(), institucionID, id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, area)
}

// List 学科领域列表
// GET /api/v1/areas-curriculares?include_inactive=true
func (h *AreaCurricularHandler) List(c *gin.Context) {
	institucionID, ok := MustGetInstitucionID(c)
	if !ok {
		return
	}

	var req dto.AreaCurricularListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	areas, err := h.areaSvc.List(c.Request.Context(), institucionID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, areas)
}

// Delete 删除学科领域；存在课程或下级领域时改为停用
// DELETE /api/v1/areas-curriculares/:id
func (h *AreaCurricularHandler) Delete(c *gin.Context) {
	institucionID, callerID, ok := MustGetCaller(c)
	if !ok {
		return
	}

	id, ok := MustGetPathID(c, "El área curricular no existe")
	if !ok {
		return
	}

	result, err := h.areaSvc.Delete(c.Request.Context(), institucionID, id, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}
