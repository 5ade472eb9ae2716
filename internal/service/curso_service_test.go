package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/dto"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
	pkgerrors "github.com/Jackson-sch/sistema-escolar-sub001/pkg/errors"
)

// ── 测试辅助 ──

func setupTestCursoService() (CursoService, *testRepos) {
	r := newTestRepos()
	r.seed()
	logger := zap.NewNop()
	return NewCursoService(r.repo, NewDeleter(r.tx, logger), logger), r
}

func newCursoReq(alcance string) *dto.CreateCursoRequest {
	return &dto.CreateCursoRequest{
		Nombre:           "Matemática I",
		Codigo:           "mat1",
		Alcance:          alcance,
		AreaCurricularID: "area-mat",
		ProfesorID:       "prof-1",
		AnioAcademico:    testAnio,
	}
}

func strPtr(s string) *string { return &s }

// ── Create ──

func TestCursoService_Create_WholeGrade(t *testing.T) {
	svc, r := setupTestCursoService()

	req := newCursoReq(model.AlcanceTodoElGrado)
	req.GradoID = "grado-2"

	resp, err := svc.Create(context.Background(), testInst, req, testCaller)
	if err != nil {
		t.Fatalf("创建课程应成功: %v", err)
	}

	stored := r.curso.cursos[resp.ID]
	if stored.Codigo != "MAT1" {
		t.Errorf("codigo 应规范化为 MAT1，实际: %s", stored.Codigo)
	}
	if strValue(stored.GradoID) != "grado-2" {
		t.Errorf("gradoId 应为 grado-2，实际: %v", stored.GradoID)
	}
	if strValue(stored.NivelAcademicoID) != "na-2a" {
		t.Errorf("参考节次应为 na-2a，实际: %v", stored.NivelAcademicoID)
	}
	if stored.NivelID != nil || stored.InstitucionID != nil {
		t.Errorf("nivelId / institucionId 应为空，实际: %v / %v", stored.NivelID, stored.InstitucionID)
	}
	if resp.AreaCurricular == nil || resp.AreaCurricular.Nombre != "Matemática" {
		t.Error("响应应带出学科领域名称")
	}
	if resp.Profesor == nil || resp.Profesor.Nombre != "Ana Quispe" {
		t.Error("响应应带出教师姓名")
	}
}

func TestCursoService_Create_InactiveKeepsActivoFalse(t *testing.T) {
	svc, r := setupTestCursoService()

	req := newCursoReq(model.AlcanceTodoElGrado)
	req.GradoID = "grado-2"
	inactivo := false
	req.Activo = &inactivo

	resp, err := svc.Create(context.Background(), testInst, req, testCaller)
	if err != nil {
		t.Fatalf("创建课程应成功: %v", err)
	}
	if r.curso.cursos[resp.ID].Activo || resp.Activo {
		t.Error("activo=false 应原样保存")
	}
}

func TestCursoService_Create_DuplicateIsRejectedOnEveryRetry(t *testing.T) {
	svc, r := setupTestCursoService()
	ctx := context.Background()

	req := newCursoReq(model.AlcanceTodoElGrado)
	req.GradoID = "grado-2"
	if _, err := svc.Create(ctx, testInst, req, testCaller); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}

	var first string
	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, testInst, req, testCaller)
		if !errors.Is(err, pkgerrors.ErrConflict) {
			t.Fatalf("第 %d 次重复提交应返回 ConflictError，实际: %v", i+1, err)
		}
		if !strings.HasPrefix(err.Error(), "Ya existe un curso con el código MAT1") {
			t.Errorf("冲突信息不符: %s", err.Error())
		}
		if first == "" {
			first = err.Error()
		} else if err.Error() != first {
			t.Errorf("重复提交的错误信息应一致: %q vs %q", first, err.Error())
		}
	}

	if len(r.curso.cursos) != 1 {
		t.Errorf("不应产生重复课程，实际数量: %d", len(r.curso.cursos))
	}
}

func TestCursoService_Create_SectionWithoutNivelAcademico(t *testing.T) {
	svc, r := setupTestCursoService()

	_, err := svc.Create(context.Background(), testInst, newCursoReq(model.AlcanceSeccionEspecifica), testCaller)
	if !errors.Is(err, pkgerrors.ErrValidation) {
		t.Fatalf("期望 ValidationError，实际: %v", err)
	}
	if !strings.Contains(err.Error(), "nivel académico es requerido") {
		t.Errorf("错误信息不符: %s", err.Error())
	}
	if pkgerrors.FieldOf(err) != "nivelAcademicoId" {
		t.Errorf("错误字段应为 nivelAcademicoId，实际: %s", pkgerrors.FieldOf(err))
	}
	if r.curso.writes != 0 {
		t.Error("校验失败时不应写入")
	}
}

func TestCursoService_Create_RetainsOnlyScopeTarget(t *testing.T) {
	tests := []struct {
		alcance string
		codigo  string
		check   func(c *model.Curso) bool
	}{
		{model.AlcanceSeccionEspecifica, "S1", func(c *model.Curso) bool {
			return strValue(c.NivelAcademicoID) == "na-1b" && c.GradoID == nil && c.NivelID == nil && c.InstitucionID == nil
		}},
		{model.AlcanceTodoElGrado, "G1", func(c *model.Curso) bool {
			return strValue(c.GradoID) == "grado-1" && c.NivelID == nil && c.InstitucionID == nil
		}},
		{model.AlcanceTodoElNivel, "N1", func(c *model.Curso) bool {
			return strValue(c.NivelID) == "nivel-prim" && c.GradoID == nil && c.InstitucionID == nil
		}},
		{model.AlcanceTodaLaInstitucion, "I1", func(c *model.Curso) bool {
			return strValue(c.InstitucionID) == testInst && c.GradoID == nil && c.NivelID == nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.alcance, func(t *testing.T) {
			svc, r := setupTestCursoService()

			req := newCursoReq(tt.alcance)
			req.Codigo = tt.codigo
			req.NivelAcademicoID = "na-1b"
			req.GradoID = "grado-1"
			req.NivelID = "nivel-prim"
			req.InstitucionID = testInst

			resp, err := svc.Create(context.Background(), testInst, req, testCaller)
			if err != nil {
				t.Fatalf("创建应成功: %v", err)
			}
			stored := r.curso.cursos[resp.ID]
			if stored.NivelAcademicoID == nil {
				t.Error("参考节次不应为空")
			}
			if !tt.check(stored) {
				t.Errorf("只应保留本作用域的目标列: %+v", stored)
			}
		})
	}
}

func TestCursoService_Create_ReferenceIsFirstActiveSection(t *testing.T) {
	svc, r := setupTestCursoService()
	ctx := context.Background()

	req := newCursoReq(model.AlcanceTodoElGrado)
	req.GradoID = "grado-1"
	resp, err := svc.Create(ctx, testInst, req, testCaller)
	if err != nil {
		t.Fatalf("创建应成功: %v", err)
	}
	if got := strValue(r.curso.cursos[resp.ID].NivelAcademicoID); got != "na-1a" {
		t.Errorf("参考节次应为最早创建的 na-1a，实际: %s", got)
	}

	// 停用 na-1a 后应取下一个启用班级
	r.nivelAcademico.items["na-1a"].Activo = false
	req.Codigo = "mat2"
	resp, err = svc.Create(ctx, testInst, req, testCaller)
	if err != nil {
		t.Fatalf("创建应成功: %v", err)
	}
	if got := strValue(r.curso.cursos[resp.ID].NivelAcademicoID); got != "na-1b" {
		t.Errorf("参考节次应为 na-1b，实际: %s", got)
	}
}

func TestCursoService_Create_NoActiveSectionInSubtree(t *testing.T) {
	svc, r := setupTestCursoService()

	req := newCursoReq(model.AlcanceTodoElGrado)
	req.GradoID = "grado-3"

	_, err := svc.Create(context.Background(), testInst, req, testCaller)
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("期望 NotFoundError，实际: %v", err)
	}
	if err.Error() != "El grado seleccionado no tiene secciones activas" {
		t.Errorf("错误信息不符: %s", err.Error())
	}
	if r.curso.writes != 0 {
		t.Error("失败时不应写入")
	}
}

func TestCursoService_Create_SameCodeInOtherGradeAllowed(t *testing.T) {
	svc, _ := setupTestCursoService()
	ctx := context.Background()

	req := newCursoReq(model.AlcanceTodoElGrado)
	req.GradoID = "grado-1"
	if _, err := svc.Create(ctx, testInst, req, testCaller); err != nil {
		t.Fatalf("创建应成功: %v", err)
	}

	req.GradoID = "grado-2"
	if _, err := svc.Create(ctx, testInst, req, testCaller); err != nil {
		t.Errorf("不同年级相同代码应允许: %v", err)
	}

	// 不同学年也允许
	req.GradoID = "grado-1"
	req.AnioAcademico = testAnio + 1
	if _, err := svc.Create(ctx, testInst, req, testCaller); err != nil {
		t.Errorf("不同学年相同代码应允许: %v", err)
	}
}

func TestCursoService_Create_RelationNotFound(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(req *dto.CreateCursoRequest)
		field string
	}{
		{"área inexistente", func(req *dto.CreateCursoRequest) { req.AreaCurricularID = "area-x" }, "areaCurricularId"},
		{"área de otra institución", func(req *dto.CreateCursoRequest) { req.AreaCurricularID = "area-otra" }, "areaCurricularId"},
		{"profesor inexistente", func(req *dto.CreateCursoRequest) { req.ProfesorID = "prof-x" }, "profesorId"},
		{"usuario no profesor", func(req *dto.CreateCursoRequest) { req.ProfesorID = "est-1" }, "profesorId"},
		{"grado inexistente", func(req *dto.CreateCursoRequest) { req.GradoID = "grado-x" }, "gradoId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, r := setupTestCursoService()
			req := newCursoReq(model.AlcanceTodoElGrado)
			req.GradoID = "grado-1"
			tt.edit(req)

			_, err := svc.Create(context.Background(), testInst, req, testCaller)
			if !errors.Is(err, pkgerrors.ErrNotFound) {
				t.Fatalf("期望 NotFoundError，实际: %v", err)
			}
			if pkgerrors.FieldOf(err) != tt.field {
				t.Errorf("错误字段应为 %s，实际: %s", tt.field, pkgerrors.FieldOf(err))
			}
			if r.curso.writes != 0 {
				t.Error("失败时不应写入")
			}
		})
	}
}

func TestCursoService_Create_OtherInstitutionScope(t *testing.T) {
	svc, _ := setupTestCursoService()

	req := newCursoReq(model.AlcanceTodaLaInstitucion)
	req.InstitucionID = testOtherInst

	_, err := svc.Create(context.Background(), testInst, req, testCaller)
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("引用其他学校应返回 NotFoundError，实际: %v", err)
	}
	if pkgerrors.FieldOf(err) != "institucionId" {
		t.Errorf("错误字段应为 institucionId，实际: %s", pkgerrors.FieldOf(err))
	}
}

func TestCursoService_Create_DuplicateKeyFromStore(t *testing.T) {
	svc, r := setupTestCursoService()
	r.curso.createErr = gorm.ErrDuplicatedKey

	req := newCursoReq(model.AlcanceTodoElGrado)
	req.GradoID = "grado-1"

	_, err := svc.Create(context.Background(), testInst, req, testCaller)
	if !errors.Is(err, pkgerrors.ErrConflict) {
		t.Fatalf("唯一索引冲突应转换为 ConflictError，实际: %v", err)
	}
	if err.Error() != "Ya existe un curso con el código MAT1 para el año 2025 en este grado" {
		t.Errorf("冲突信息不符: %s", err.Error())
	}
}

// ── Update ──

func createGradeCurso(t *testing.T, svc CursoService, gradoID, codigo string) *dto.CursoResponse {
	t.Helper()
	req := newCursoReq(model.AlcanceTodoElGrado)
	req.GradoID = gradoID
	req.Codigo = codigo
	resp, err := svc.Create(context.Background(), testInst, req, testCaller)
	if err != nil {
		t.Fatalf("准备课程失败: %v", err)
	}
	return resp
}

func TestCursoService_Update_ScopeChangeDropsOldIDs(t *testing.T) {
	svc, r := setupTestCursoService()
	created := createGradeCurso(t, svc, "grado-2", "MAT1")

	resp, err := svc.Update(context.Background(), testInst, created.ID, &dto.UpdateCursoRequest{
		Alcance: strPtr(model.AlcanceTodoElNivel),
		NivelID: "nivel-prim",
	}, testCaller)
	if err != nil {
		t.Fatalf("更新应成功: %v", err)
	}

	stored := r.curso.cursos[created.ID]
	if stored.Alcance != model.AlcanceTodoElNivel {
		t.Errorf("alcance 应为 TODO_EL_NIVEL，实际: %s", stored.Alcance)
	}
	if stored.GradoID != nil {
		t.Errorf("旧作用域的 gradoId 应清空，实际: %v", *stored.GradoID)
	}
	if strValue(stored.NivelID) != "nivel-prim" {
		t.Errorf("nivelId 应为 nivel-prim，实际: %v", stored.NivelID)
	}
	if strValue(stored.NivelAcademicoID) != "na-1a" {
		t.Errorf("参考节次应重新解析为 na-1a，实际: %v", stored.NivelAcademicoID)
	}
	if resp.Version != 2 {
		t.Errorf("版本号应递增为 2，实际: %d", resp.Version)
	}
}

func TestCursoService_Update_ScopeChangeRequiresNewID(t *testing.T) {
	svc, r := setupTestCursoService()
	created := createGradeCurso(t, svc, "grado-2", "MAT1")

	_, err := svc.Update(context.Background(), testInst, created.ID, &dto.UpdateCursoRequest{
		Alcance: strPtr(model.AlcanceTodoElNivel),
	}, testCaller)
	if !errors.Is(err, pkgerrors.ErrValidation) {
		t.Fatalf("缺少新作用域 id 应返回 ValidationError，实际: %v", err)
	}
	if r.curso.cursos[created.ID].Alcance != model.AlcanceTodoElGrado {
		t.Error("失败时已存储的课程不应改变")
	}
}

func TestCursoService_Update_KeepsReferenceWhenTargetUnchanged(t *testing.T) {
	svc, r := setupTestCursoService()
	created := createGradeCurso(t, svc, "grado-1", "MAT1")

	r.nivelAcademico.items["na-1a"].Activo = false

	if _, err := svc.Update(context.Background(), testInst, created.ID, &dto.UpdateCursoRequest{
		Nombre: strPtr("Matemática Avanzada"),
	}, testCaller); err != nil {
		t.Fatalf("更新应成功: %v", err)
	}

	stored := r.curso.cursos[created.ID]
	if strValue(stored.NivelAcademicoID) != "na-1a" {
		t.Errorf("作用域未变时应沿用参考节次 na-1a，实际: %v", stored.NivelAcademicoID)
	}
	if stored.Nombre != "Matemática Avanzada" {
		t.Errorf("nombre 未更新: %s", stored.Nombre)
	}
}

func TestCursoService_Update_VersionMismatch(t *testing.T) {
	svc, _ := setupTestCursoService()
	created := createGradeCurso(t, svc, "grado-1", "MAT1")

	stale := 99
	_, err := svc.Update(context.Background(), testInst, created.ID, &dto.UpdateCursoRequest{
		Nombre:  strPtr("Otro"),
		Version: &stale,
	}, testCaller)
	if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("期望 ErrOptimisticLock，实际: %v", err)
	}
}

func TestCursoService_Update_DuplicateExcludesSelf(t *testing.T) {
	svc, _ := setupTestCursoService()
	ctx := context.Background()
	c1 := createGradeCurso(t, svc, "grado-1", "MAT1")
	c2 := createGradeCurso(t, svc, "grado-1", "MAT2")

	// 保持自身代码不算冲突
	if _, err := svc.Update(ctx, testInst, c1.ID, &dto.UpdateCursoRequest{Codigo: strPtr("mat1")}, testCaller); err != nil {
		t.Errorf("更新为自身代码不应冲突: %v", err)
	}

	_, err := svc.Update(ctx, testInst, c2.ID, &dto.UpdateCursoRequest{Codigo: strPtr("MAT1")}, testCaller)
	if !errors.Is(err, pkgerrors.ErrConflict) {
		t.Errorf("改为同年级已有代码应冲突，实际: %v", err)
	}
}

func TestCursoService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestCursoService()

	_, err := svc.Update(context.Background(), testInst, "no-existe", &dto.UpdateCursoRequest{}, testCaller)
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Errorf("期望 NotFoundError，实际: %v", err)
	}
}

// ── 查询 ──

func TestCursoService_GetByID_OtherTenant(t *testing.T) {
	svc, _ := setupTestCursoService()
	created := createGradeCurso(t, svc, "grado-1", "MAT1")

	if _, err := svc.GetByID(context.Background(), testOtherInst, created.ID); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Errorf("其他学校不应看到该课程，实际: %v", err)
	}
}

func TestCursoService_List_FiltersInactive(t *testing.T) {
	svc, r := setupTestCursoService()
	ctx := context.Background()
	createGradeCurso(t, svc, "grado-1", "MAT1")
	c2 := createGradeCurso(t, svc, "grado-1", "MAT2")
	r.curso.cursos[c2.ID].Activo = false

	list, err := svc.List(ctx, testInst, &dto.CursoListRequest{})
	if err != nil {
		t.Fatalf("列表应成功: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("默认只返回启用课程，实际: %d", len(list))
	}

	list, _ = svc.List(ctx, testInst, &dto.CursoListRequest{IncludeInactive: true})
	if len(list) != 2 {
		t.Errorf("include_inactive 应返回全部课程，实际: %d", len(list))
	}
}
