package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/dto"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
	pkgerrors "github.com/Jackson-sch/sistema-escolar-sub001/pkg/errors"
)

func setupTestAsistenciaService() (AsistenciaService, *testRepos) {
	r := newTestRepos()
	r.seed()
	seedCurso(r, "curso-x")
	return NewAsistenciaService(r.repo, r.tx, zap.NewNop()), r
}

func TestAsistenciaService_RegisterBulk(t *testing.T) {
	svc, r := setupTestAsistenciaService()
	ctx := context.Background()

	resp, err := svc.RegisterBulk(ctx, testInst, &dto.BulkAsistenciaRequest{
		CursoID: "curso-x",
		Fecha:   "2025-04-07",
		Registros: []dto.AsistenciaRegistro{
			{EstudianteID: "est-1", Estado: model.EstadoPresente},
			{EstudianteID: "est-2", Estado: model.EstadoAusente},
			// 重复出现以最后一条为准
			{EstudianteID: "est-1", Estado: model.EstadoTardanza, Observacion: strPtr("llegó 10 min tarde")},
		},
	}, testCaller)
	if err != nil {
		t.Fatalf("批量登记应成功: %v", err)
	}
	if resp.Registrados != 2 {
		t.Errorf("去重后应登记 2 条，实际: %d", resp.Registrados)
	}

	list, err := svc.List(ctx, testInst, &dto.AsistenciaListRequest{CursoID: "curso-x", Fecha: "2025-04-07"})
	if err != nil {
		t.Fatalf("查询考勤应成功: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("应有 2 条考勤，实际: %d", len(list))
	}
	if list[0].EstudianteID != "est-1" || list[0].Estado != model.EstadoTardanza {
		t.Errorf("est-1 的状态应为 TARDANZA，实际: %+v", list[0])
	}
	if list[0].Estudiante == nil || list[0].Estudiante.Nombre != "Luis Rojas" {
		t.Error("考勤应带出学生姓名")
	}

	// 同一天再次登记为更新而非新增
	if _, err := svc.RegisterBulk(ctx, testInst, &dto.BulkAsistenciaRequest{
		CursoID:   "curso-x",
		Fecha:     "2025-04-07",
		Registros: []dto.AsistenciaRegistro{{EstudianteID: "est-2", Estado: model.EstadoJustificado}},
	}, testCaller); err != nil {
		t.Fatalf("再次登记应成功: %v", err)
	}
	if len(r.asistencia.registros) != 2 {
		t.Errorf("重复登记不应新增记录，实际: %d", len(r.asistencia.registros))
	}
}

func TestAsistenciaService_RegisterBulk_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(r *testRepos)
		req     *dto.BulkAsistenciaRequest
		wantErr error
	}{
		{
			"curso inexistente", nil,
			&dto.BulkAsistenciaRequest{CursoID: "curso-y", Fecha: "2025-04-07", Registros: []dto.AsistenciaRegistro{{EstudianteID: "est-1", Estado: model.EstadoPresente}}},
			pkgerrors.ErrNotFound,
		},
		{
			"curso inactivo", func(r *testRepos) { r.curso.cursos["curso-x"].Activo = false },
			&dto.BulkAsistenciaRequest{CursoID: "curso-x", Fecha: "2025-04-07", Registros: []dto.AsistenciaRegistro{{EstudianteID: "est-1", Estado: model.EstadoPresente}}},
			pkgerrors.ErrValidation,
		},
		{
			"profesor como estudiante", nil,
			&dto.BulkAsistenciaRequest{CursoID: "curso-x", Fecha: "2025-04-07", Registros: []dto.AsistenciaRegistro{
				{EstudianteID: "est-1", Estado: model.EstadoPresente},
				{EstudianteID: "prof-1", Estado: model.EstadoPresente},
			}},
			pkgerrors.ErrNotFound,
		},
		{
			"fecha inválida", nil,
			&dto.BulkAsistenciaRequest{CursoID: "curso-x", Fecha: "07/04/2025", Registros: []dto.AsistenciaRegistro{{EstudianteID: "est-1", Estado: model.EstadoPresente}}},
			pkgerrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, r := setupTestAsistenciaService()
			if tt.setup != nil {
				tt.setup(r)
			}
			_, err := svc.RegisterBulk(context.Background(), testInst, tt.req, testCaller)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("期望 %v，实际: %v", tt.wantErr, err)
			}
			if r.asistencia.upserts != 0 {
				t.Error("失败时不应写入任何考勤")
			}
		})
	}
}

func TestAsistenciaService_List_OtherTenantCurso(t *testing.T) {
	svc, _ := setupTestAsistenciaService()

	_, err := svc.List(context.Background(), testOtherInst, &dto.AsistenciaListRequest{CursoID: "curso-x"})
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Errorf("期望 NotFoundError，实际: %v", err)
	}
}
