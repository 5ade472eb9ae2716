package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/dto"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/repository"
	pkgerrors "github.com/Jackson-sch/sistema-escolar-sub001/pkg/errors"
)

// ErrExportGenerateFail 生成文件失败
var ErrExportGenerateFail = errors.New("No se pudo generar el archivo Excel")

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
type ExportService interface {
	// ExportCursos 课程目录导出为 Excel，一门课程一行
	ExportCursos(ctx context.Context, institucionID string, req *dto.ExportCursosRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var cursoExportHeaders = []string{
	"Código", "Nombre", "Área curricular", "Profesor", "Alcance",
	"Destino del alcance", "Año", "Créditos", "Horas semanales", "Estado",
}

var alcanceLabels = map[string]string{
	model.AlcanceSeccionEspecifica: "Sección específica",
	model.AlcanceTodoElGrado:       "Todo el grado",
	model.AlcanceTodoElNivel:       "Todo el nivel",
	model.AlcanceTodaLaInstitucion: "Toda la institución",
}

// ═══════════════════════════════════════════════════════════
// ExportCursos
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单个 Sheet "Cursos"
//   - 第 1 行标题，第 2 行表头，第 3 行起为数据
//   - 包含停用课程，状态列区分

func (s *exportService) ExportCursos(ctx context.Context, institucionID string, req *dto.ExportCursosRequest) (*bytes.Buffer, string, error) {
	cursos, err := s.repo.Curso.List(ctx, institucionID, repository.CursoFilter{
		AnioAcademico:   req.AnioAcademico,
		IncludeInactive: true,
	})
	if err != nil {
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, "", err
	}
	if len(cursos) == 0 {
		return nil, "", pkgerrors.NotFound("anio", "No hay cursos para exportar")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Cursos"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	widths := []float64{12, 30, 22, 26, 20, 26, 8, 10, 16, 10}
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	titulo := "Catálogo de cursos"
	if req.AnioAcademico != nil {
		titulo = fmt.Sprintf("Catálogo de cursos %d", *req.AnioAcademico)
	}
	f.SetCellValue(sheetName, "A1", titulo)
	f.MergeCell(sheetName, "A1", cell(colName(len(cursoExportHeaders)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	for i, h := range cursoExportHeaders {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", cell(colName(len(cursoExportHeaders)-1), 2), headerStyle)

	// 数据行
	for i := range cursos {
		c := &cursos[i]
		row := i + 3
		values := []interface{}{
			c.Codigo,
			c.Nombre,
			"",
			"",
			alcanceLabels[c.Alcance],
			destinoAlcance(c),
			c.AnioAcademico,
			"-",
			"-",
			"Activo",
		}
		if c.AreaCurricular != nil {
			values[2] = c.AreaCurricular.Nombre
		}
		if c.Profesor != nil {
			values[3] = c.Profesor.NombreCompleto()
		}
		if c.Creditos != nil {
			values[7] = *c.Creditos
		}
		if c.HorasSemanales != nil {
			values[8] = *c.HorasSemanales
		}
		if !c.Activo {
			values[9] = "Inactivo"
		}
		for col, v := range values {
			f.SetCellValue(sheetName, cell(colName(col), row), v)
		}
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := "cursos.xlsx"
	if req.AnioAcademico != nil {
		filename = fmt.Sprintf("cursos_%d.xlsx", *req.AnioAcademico)
	}
	return buf, filename, nil
}

// destinoAlcance 作用域目标的可读名称，取自参考班级
func destinoAlcance(c *model.Curso) string {
	na := c.NivelAcademico
	switch c.Alcance {
	case model.AlcanceTodaLaInstitucion:
		return "Institución"
	case model.AlcanceSeccionEspecifica:
		if na != nil && na.Grado != nil {
			return fmt.Sprintf("%s - Sección %s", na.Grado.Nombre, na.Seccion)
		}
	case model.AlcanceTodoElGrado:
		if na != nil && na.Grado != nil {
			return na.Grado.Nombre
		}
	case model.AlcanceTodoElNivel:
		if na != nil && na.Nivel != nil {
			return na.Nivel.Nombre
		}
	}
	return "-"
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
