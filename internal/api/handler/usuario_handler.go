package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/dto"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/service"
	"github.com/Jackson-sch/sistema-escolar-sub001/pkg/response"
)

// UsuarioHandler 用户模块 HTTP 处理器
type UsuarioHandler struct {
	usuarioSvc service.UsuarioService
}

// NewUsuarioHandler 创建 UsuarioHandler
func NewUsuarioHandler(usuarioSvc service.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{usuarioSvc: usuarioSvc}
}

// Create 创建用户（管理员）
// POST /api/v1/usuarios
func (h *UsuarioHandler) Create(c *gin.Context) {
	institucionID, callerID, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	usuario, err := h.usuarioSvc.Create(c.Request.Context(), institucionID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, usuario)
}

// Get 用户详情
// GET /api/v1/usuarios/:id
func (h *UsuarioHandler) Get(c *gin.Context) {
	institucionID, ok := MustGetInstitucionID(c)
	if !ok {
		return
	}

	id, ok := MustGetPathID(c, "El usuario no existe")
	if !ok {
		return
	}

	usuario, err := h.usuarioSvc.GetByID(c.Request.Context(), institucionID, id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, usuario)
}

// List 用户列表（分页，可按角色过滤）
// GET /api/v1/usuarios?rol=estudiante&page=1&page_size=20
func (h *UsuarioHandler) List(c *gin.Context) {
	institucionID, ok := MustGetInstitucionID(c)
	if !ok {
		return
	}

	var req dto.UsuarioListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.usuarioSvc.List(c.Request.Context(), institucionID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}
