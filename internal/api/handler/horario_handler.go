package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/dto"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/service"
	"github.com/Jackson-sch/sistema-escolar-sub001/pkg/response"
)

const contentTypeICS = "text/calendar; charset=utf-8"

// HorarioHandler 课表 HTTP 处理器
type HorarioHandler struct {
	horarioSvc service.HorarioService
}

// NewHorarioHandler 创建 HorarioHandler
func NewHorarioHandler(horarioSvc service.HorarioService) *HorarioHandler {
	return &HorarioHandler{horarioSvc: horarioSvc}
}

// Create 新增课表时段
// POST /api/v1/horarios
func (h *HorarioHandler) Create(c *gin.Context) {
	institucionID, callerID, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateHorarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	horario, err := h.horarioSvc.Create(c.Request.Context(), institucionID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, horario)
}

// Delete 删除课表时段
// DELETE /api/v1/horarios/:id
func (h *HorarioHandler) Delete(c *gin.Context) {
	institucionID, ok := MustGetInstitucionID(c)
	if !ok {
		return
	}

	id, ok := MustGetPathID(c, "El horario no existe")
	if !ok {
		return
	}

	if err := h.horarioSvc.Delete(c.Request.Context(), institucionID, id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListByCurso 课程的全部时段
// GET /api/v1/cursos/:id/horarios
func (h *HorarioHandler) ListByCurso(c *gin.Context) {
	institucionID, ok := MustGetInstitucionID(c)
	if !ok {
		return
	}

	id, ok := MustGetPathID(c, "El curso no existe")
	if !ok {
		return
	}

	horarios, err := h.horarioSvc.ListByCurso(c.Request.Context(), institucionID, id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, horarios)
}

// ExportICS 下载课程课表（iCalendar，按周重复）
// GET /api/v1/cursos/:id/horarios.ics
func (h *HorarioHandler) ExportICS(c *gin.Context) {
	institucionID, ok := MustGetInstitucionID(c)
	if !ok {
		return
	}

	id, ok := MustGetPathID(c, "El curso no existe")
	if !ok {
		return
	}

	content, filename, err := h.horarioSvc.ExportICS(c.Request.Context(), institucionID, id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentTypeICS, content)
}
