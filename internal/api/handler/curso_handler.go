package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/dto"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/service"
	"github.com/Jackson-sch/sistema-escolar-sub001/pkg/response"
)

// CursoHandler 课程模块 HTTP 处理器
type CursoHandler struct {
	cursoSvc service.CursoService
}

// NewCursoHandler 创建 CursoHandler
func NewCursoHandler(cursoSvc service.CursoService) *CursoHandler {
	return &CursoHandler{cursoSvc: cursoSvc}
}

// Create 创建课程
// POST /api/v1/cursos
func (h *CursoHandler) Create(c *gin.Context) {
	institucionID, callerID, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateCursoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	curso, err := h.cursoSvc.Create(c.Request.Context(), institucionID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, curso)
}

// Update 部分更新课程
// PUT /api/v1/cursos/:id
func (h *CursoHandler) Update(c *gin.Context) {
	institucionID, callerID, ok := MustGetCaller(c)
	if !ok {
		return
	}

	id, ok := MustGetPathID(c, "El curso no existe")
	if !ok {
		return
	}

	var req dto.UpdateCursoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	curso, err := h.cursoSvc.Update(c.Request.Context(), institucionID, id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, curso)
}

// Get 课程详情
// GET /api/v1/cursos/:id
func (h *CursoHandler) Get(c *gin.Context) {
	institucionID, ok := MustGetInstitucionID(c)
	if !ok {
		return
	}

	id, ok := MustGetPathID(c, "El curso no existe")
	if !ok {
		return
	}

	curso, err := h.cursoSvc.GetByID(c.Request.Context(), institucionID, id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, curso)
}

// List 课程列表
// GET /api/v1/cursos?anio=2025&alcance=TODO_EL_GRADO
func (h *CursoHandler) List(c *gin.Context) {
	institucionID, ok := MustGetInstitucionID(c)
	if !ok {
		return
	}

	var req dto.CursoListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	cursos, err := h.cursoSvc.List(c.Request.Context(), institucionID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, cursos)
}

// Delete 删除课程；存在依赖时改为停用
// DELETE /api/v1/cursos/:id
func (h *CursoHandler) Delete(c *gin.Context) {
	institucionID, callerID, ok := MustGetCaller(c)
	if !ok {
		return
	}

	id, ok := MustGetPathID(c, "El curso no existe")
	if !ok {
		return
	}

	result, err := h.cursoSvc.Delete(c.Request.Context(), institucionID, id, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}
