package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
)

// UsuarioRepository 用户数据访问接口
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *model.Usuario) error
	GetByID(ctx context.Context, institucionID, id string) (*model.Usuario, error)
	// GetByEmail 登录使用，email 全局唯一，不按学校过滤
	GetByEmail(ctx context.Context, email string) (*model.Usuario, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, institucionID, rol string, offset, limit int) ([]model.Usuario, int64, error)
	// CountByIDsAndRol 统计给定 id 中属于本校且角色匹配的启用用户数
	CountByIDsAndRol(ctx context.Context, institucionID string, ids []string, rol string) (int64, error)
}

// usuarioRepo UsuarioRepository 的 GORM 实现
type usuarioRepo struct {
	db *gorm.DB
}

// NewUsuarioRepo 创建 UsuarioRepository 实例
func NewUsuarioRepo(db *gorm.DB) UsuarioRepository {
	return &usuarioRepo{db: db}
}

func (r *usuarioRepo) Create(ctx context.Context, usuario *model.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

func (r *usuarioRepo) GetByID(ctx context.Context, institucionID, id string) (*model.Usuario, error) {
	var usuario model.Usuario
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND institucion_id = ?", id, institucionID).
		First(&usuario).Error
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (r *usuarioRepo) GetByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var usuario model.Usuario
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&usuario).Error
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (r *usuarioRepo) ExistsEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Usuario{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *usuarioRepo) List(ctx context.Context, institucionID, rol string, offset, limit int) ([]model.Usuario, int64, error) {
	var usuarios []model.Usuario
	var total int64

	db := r.db.WithContext(ctx).
		Model(&model.Usuario{}).
		Where("institucion_id = ?", institucionID)
	if rol != "" {
		db = db.Where("rol = ?", rol)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("apellidos ASC, nombre ASC").
		Find(&usuarios).Error; err != nil {
		return nil, 0, err
	}

	return usuarios, total, nil
}

func (r *usuarioRepo) CountByIDsAndRol(ctx context.Context, institucionID string, ids []string, rol string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Usuario{}).
		Where("institucion_id = ? AND rol = ? AND activo = ?", institucionID, rol, true).
		Where("usuario_id IN ?", ids).
		Count(&count).Error
	return count, err
}
