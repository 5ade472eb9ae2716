package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/dto"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
	pkgerrors "github.com/Jackson-sch/sistema-escolar-sub001/pkg/errors"
)

func setupTestUsuarioService() (UsuarioService, *testRepos) {
	r := newTestRepos()
	r.seed()
	return NewUsuarioService(r.repo, zap.NewNop()), r
}

func TestUsuarioService_Create_Estudiante(t *testing.T) {
	svc, r := setupTestUsuarioService()

	resp, err := svc.Create(context.Background(), testInst, &dto.CreateUsuarioRequest{
		Nombre:           "Carlos",
		Apellidos:        "Mendoza",
		Email:            " Carlos@Colegio.PE ",
		Password:         "secreta123",
		Rol:              model.RolEstudiante,
		NivelAcademicoID: strPtr("na-1a"),
	}, testCaller)
	if err != nil {
		t.Fatalf("创建学生应成功: %v", err)
	}
	if resp.Email != "carlos@colegio.pe" {
		t.Errorf("邮箱应小写并去空格，实际: %s", resp.Email)
	}
	if strValue(resp.NivelAcademicoID) != "na-1a" {
		t.Error("班级未保存")
	}

	stored := r.usuario.usuarios[resp.ID]
	if stored.PasswordHash == "secreta123" {
		t.Fatal("密码不应明文保存")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta123")); err != nil {
		t.Error("密码哈希无法验证")
	}
	if stored.InstitucionID != testInst {
		t.Errorf("用户应归属调用方学校，实际: %s", stored.InstitucionID)
	}
}

func TestUsuarioService_Create_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *dto.CreateUsuarioRequest
		wantErr error
		field   string
	}{
		{
			"correo duplicado",
			&dto.CreateUsuarioRequest{Nombre: "Ana", Email: "ANA@colegio.pe", Password: "12345678", Rol: model.RolProfesor},
			pkgerrors.ErrConflict, "",
		},
		{
			"sección para profesor",
			&dto.CreateUsuarioRequest{Nombre: "Pedro", Email: "pedro@colegio.pe", Password: "12345678", Rol: model.RolProfesor, NivelAcademicoID: strPtr("na-1a")},
			pkgerrors.ErrValidation, "nivelAcademicoId",
		},
		{
			"sección inexistente",
			&dto.CreateUsuarioRequest{Nombre: "Pedro", Email: "pedro@colegio.pe", Password: "12345678", Rol: model.RolEstudiante, NivelAcademicoID: strPtr("na-x")},
			pkgerrors.ErrNotFound, "nivelAcademicoId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, r := setupTestUsuarioService()
			before := len(r.usuario.usuarios)

			_, err := svc.Create(context.Background(), testInst, tt.req, testCaller)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("期望 %v，实际: %v", tt.wantErr, err)
			}
			if tt.field != "" && pkgerrors.FieldOf(err) != tt.field {
				t.Errorf("错误字段应为 %s，实际: %s", tt.field, pkgerrors.FieldOf(err))
			}
			if len(r.usuario.usuarios) != before {
				t.Error("失败时不应写入")
			}
		})
	}
}

func TestUsuarioService_List_ByRol(t *testing.T) {
	svc, _ := setupTestUsuarioService()

	list, total, err := svc.List(context.Background(), testInst, &dto.UsuarioListRequest{Rol: model.RolEstudiante})
	if err != nil {
		t.Fatalf("列表应成功: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Errorf("应返回 2 名学生，实际 total=%d len=%d", total, len(list))
	}

	list, total, _ = svc.List(context.Background(), testInst, &dto.UsuarioListRequest{
		PaginationRequest: dto.PaginationRequest{Page: 2, PageSize: 3},
	})
	if total != 4 || len(list) != 1 {
		t.Errorf("第 2 页应返回 1 条，实际 total=%d len=%d", total, len(list))
	}
}

func TestUsuarioService_GetByID_OtherTenant(t *testing.T) {
	svc, _ := setupTestUsuarioService()

	if _, err := svc.GetByID(context.Background(), testOtherInst, "prof-1"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Errorf("期望 NotFoundError，实际: %v", err)
	}
}
