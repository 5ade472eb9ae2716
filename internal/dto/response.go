package dto

// ── 通用响应 ──

// RefResponse 关联实体简要信息
type RefResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

// 删除结果模式
const (
	DeleteModeDeleted     = "deleted"
	DeleteModeDeactivated = "deactivated"
)

// DeleteResultResponse 删除结果：硬删除或因存在依赖改为停用
type DeleteResultResponse struct {
	Mode    string      `json:"mode"` // deleted | deactivated
	Message string      `json:"message"`
	Entity  interface{} `json:"entity,omitempty"`
}

// ── 分页请求 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
