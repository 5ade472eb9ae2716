package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/dto"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/repository"
	pkgerrors "github.com/Jackson-sch/sistema-escolar-sub001/pkg/errors"
)

// UsuarioService 用户业务接口
type UsuarioService interface {
	Create(ctx context.Context, institucionID string, req *dto.CreateUsuarioRequest, callerID string) (*dto.UsuarioResponse, error)
	GetByID(ctx context.Context, institucionID, id string) (*dto.UsuarioResponse, error)
	List(ctx context.Context, institucionID string, req *dto.UsuarioListRequest) ([]dto.UsuarioResponse, int64, error)
}

type usuarioService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUsuarioService 创建 UsuarioService 实例
func NewUsuarioService(repo *repository.Repository, logger *zap.Logger) UsuarioService {
	return &usuarioService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *usuarioService) Create(ctx context.Context, institucionID string, req *dto.CreateUsuarioRequest, callerID string) (*dto.UsuarioResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 邮箱全局唯一
	exists, err := s.repo.Usuario.ExistsEmail(ctx, email)
	if err != nil {
		s.logger.Error("邮箱查重失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, emailDuplicado(email)
	}

	nivelAcademicoID := trimmedPtr(req.NivelAcademicoID)
	if nivelAcademicoID != nil {
		if req.Rol != model.RolEstudiante {
			return nil, pkgerrors.Validation("nivelAcademicoId", "Solo los estudiantes pueden asignarse a una sección")
		}
		if _, err := s.repo.NivelAcademico.GetByID(ctx, institucionID, *nivelAcademicoID); err != nil {
			if isNotFound(err) {
				return nil, pkgerrors.NotFound("nivelAcademicoId", "El nivel académico seleccionado no existe")
			}
			s.logger.Error("查询班级失败", zap.Error(err))
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	usuario := &model.Usuario{
		InstitucionID:    institucionID,
		Nombre:           strings.TrimSpace(req.Nombre),
		Apellidos:        strings.TrimSpace(req.Apellidos),
		Email:            email,
		PasswordHash:     string(hash),
		Rol:              req.Rol,
		NivelAcademicoID: nivelAcademicoID,
		Activo:           true,
	}
	usuario.CreatedBy = &callerID
	usuario.UpdatedBy = &callerID

	if err := s.repo.Usuario.Create(ctx, usuario); err != nil {
		if isDuplicate(err) {
			return nil, emailDuplicado(email)
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("用户已创建", zap.String("usuario_id", usuario.UsuarioID), zap.String("rol", usuario.Rol))
	return toUsuarioResponse(usuario), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *usuarioService) GetByID(ctx context.Context, institucionID, id string) (*dto.UsuarioResponse, error) {
	usuario, err := s.repo.Usuario.GetByID(ctx, institucionID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.NotFound("id", "El usuario no existe")
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// ────────────────────── List ──────────────────────

func (s *usuarioService) List(ctx context.Context, institucionID string, req *dto.UsuarioListRequest) ([]dto.UsuarioResponse, int64, error) {
	usuarios, total, err := s.repo.Usuario.List(ctx, institucionID, req.Rol, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, 0, err
	}
	result := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		result = append(result, *toUsuarioResponse(&usuarios[i]))
	}
	return result, total, nil
}

func emailDuplicado(email string) error {
	return pkgerrors.Conflict(fmt.Sprintf("Ya existe un usuario con el correo %s", email))
}

func toUsuarioResponse(u *model.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:               u.UsuarioID,
		InstitucionID:    u.InstitucionID,
		Nombre:           u.Nombre,
		Apellidos:        u.Apellidos,
		Email:            u.Email,
		Rol:              u.Rol,
		NivelAcademicoID: u.NivelAcademicoID,
		Activo:           u.Activo,
		CreatedAt:        formatTimestamp(u.CreatedAt),
	}
}
