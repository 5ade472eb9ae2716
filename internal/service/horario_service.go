package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/Jackson-sch/sistema-escolar-sub001/config"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/dto"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/repository"
	pkgerrors "github.com/Jackson-sch/sistema-escolar-sub001/pkg/errors"
)

// HorarioService 课表业务接口
type HorarioService interface {
	Create(ctx context.Context, institucionID string, req *dto.CreateHorarioRequest, callerID string) (*dto.HorarioResponse, error)
	Delete(ctx context.Context, institucionID, id string) error
	ListByCurso(ctx context.Context, institucionID, cursoID string) ([]dto.HorarioResponse, error)
	// ExportICS 生成课程的每周重复日历，返回内容与建议文件名
	ExportICS(ctx context.Context, institucionID, cursoID string) ([]byte, string, error)
}

type horarioService struct {
	repo   *repository.Repository
	cfg    config.AcademicConfig
	logger *zap.Logger
}

// NewHorarioService 创建 HorarioService 实例
func NewHorarioService(repo *repository.Repository, cfg config.AcademicConfig, logger *zap.Logger) HorarioService {
	return &horarioService{repo: repo, cfg: cfg, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *horarioService) Create(ctx context.Context, institucionID string, req *dto.CreateHorarioRequest, callerID string) (*dto.HorarioResponse, error) {
	if _, err := s.repo.Curso.GetByID(ctx, institucionID, req.CursoID); err != nil {
		return nil, s.logUnexpected("查询课程失败", notFoundOr(err, "cursoId", "El curso seleccionado no existe"))
	}

	inicio, err := parseHora("horaInicio", req.HoraInicio)
	if err != nil {
		return nil, err
	}

	horario := &model.Horario{
		CursoID:    req.CursoID,
		DiaSemana:  req.DiaSemana,
		HoraInicio: inicio,
		Aula:       trimmedPtr(req.Aula),
	}
	if req.HoraFin != nil && *req.HoraFin != "" {
		fin, err := parseHora("horaFin", *req.HoraFin)
		if err != nil {
			return nil, err
		}
		if fin <= inicio {
			return nil, pkgerrors.Validation("horaFin", "La hora de fin debe ser posterior a la hora de inicio")
		}
		horario.HoraFin = &fin
	}

	if err := checkHorarioUnico(ctx, s.repo, req.CursoID, req.DiaSemana, inicio); err != nil {
		return nil, s.logUnexpected("课表查重失败", err)
	}

	horario.CreatedBy = &callerID
	horario.UpdatedBy = &callerID
	if err := s.repo.Horario.Create(ctx, horario); err != nil {
		if isDuplicate(err) {
			return nil, horarioDuplicado(req.DiaSemana, inicio)
		}
		s.logger.Error("创建课表失败", zap.String("curso_id", req.CursoID), zap.Error(err))
		return nil, err
	}
	return toHorarioResponse(horario), nil
}

// ────────────────────── Delete ──────────────────────

func (s *horarioService) Delete(ctx context.Context, institucionID, id string) error {
	if _, err := s.repo.Horario.GetByID(ctx, institucionID, id); err != nil {
		return s.logUnexpected("查询课表失败", notFoundOr(err, "id", "El horario no existe"))
	}
	if err := s.repo.Horario.Delete(ctx, id); err != nil {
		s.logger.Error("删除课表失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ListByCurso ──────────────────────

func (s *horarioService) ListByCurso(ctx context.Context, institucionID, cursoID string) ([]dto.HorarioResponse, error) {
	if _, err := s.repo.Curso.GetByID(ctx, institucionID, cursoID); err != nil {
		return nil, s.logUnexpected("查询课程失败", notFoundOr(err, "id", "El curso no existe"))
	}
	horarios, err := s.repo.Horario.ListByCurso(ctx, cursoID)
	if err != nil {
		s.logger.Error("列出课表失败", zap.String("curso_id", cursoID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.HorarioResponse, 0, len(horarios))
	for i := range horarios {
		result = append(result, *toHorarioResponse(&horarios[i]))
	}
	return result, nil
}

// ────────────────────── ExportICS ──────────────────────
//
// 每条课表生成一个按周重复的 VEVENT，范围为课程学年的起止月份。

// defaultClassDuration 无 horaFin 时的一节课时长
const defaultClassDuration = 45 * time.Minute

var icsWeekdays = map[string]struct {
	day   time.Weekday
	token string
}{
	"LUNES":     {time.Monday, "MO"},
	"MARTES":    {time.Tuesday, "TU"},
	"MIERCOLES": {time.Wednesday, "WE"},
	"JUEVES":    {time.Thursday, "TH"},
	"VIERNES":   {time.Friday, "FR"},
	"SABADO":    {time.Saturday, "SA"},
	"DOMINGO":   {time.Sunday, "SU"},
}

func (s *horarioService) ExportICS(ctx context.Context, institucionID, cursoID string) ([]byte, string, error) {
	curso, err := s.repo.Curso.GetByID(ctx, institucionID, cursoID)
	if err != nil {
		return nil, "", s.logUnexpected("查询课程失败", notFoundOr(err, "id", "El curso no existe"))
	}
	horarios, err := s.repo.Horario.ListByCurso(ctx, cursoID)
	if err != nil {
		s.logger.Error("列出课表失败", zap.String("curso_id", cursoID), zap.Error(err))
		return nil, "", err
	}

	loc, err := time.LoadLocation(s.cfg.Timezone)
	if err != nil {
		s.logger.Warn("时区无效，使用 UTC", zap.String("timezone", s.cfg.Timezone), zap.Error(err))
		loc = time.UTC
	}

	content := buildCursoCalendar(curso, horarios, s.cfg, loc, time.Now())
	filename := fmt.Sprintf("horario_%s_%d.ics", curso.Codigo, curso.AnioAcademico)
	return []byte(content), filename, nil
}

// buildCursoCalendar 生成 iCalendar 文本
func buildCursoCalendar(curso *model.Curso, horarios []model.Horario, cfg config.AcademicConfig, loc *time.Location, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//sistema-escolar//horarios//ES")
	cal.SetXWRCalName(fmt.Sprintf("%s - %s", curso.Codigo, curso.Nombre))
	cal.SetXWRTimezone(loc.String())

	start := time.Date(curso.AnioAcademico, time.Month(cfg.YearStartMonth), 1, 0, 0, 0, 0, loc)
	// 结束月份最后一天 23:59:59
	until := time.Date(curso.AnioAcademico, time.Month(cfg.YearEndMonth)+1, 1, 0, 0, 0, 0, loc).Add(-time.Second)

	for _, h := range horarios {
		wd, ok := icsWeekdays[h.DiaSemana]
		if !ok {
			continue
		}

		offset := (int(wd.day) - int(start.Weekday()) + 7) % 7
		firstDay := start.AddDate(0, 0, offset)
		dtStart := firstDay.Add(time.Duration(h.HoraInicio))
		dtEnd := dtStart.Add(defaultClassDuration)
		if h.HoraFin != nil {
			dtEnd = firstDay.Add(time.Duration(*h.HoraFin))
		}

		evt := cal.AddEvent(fmt.Sprintf("%s@sistema-escolar", h.HorarioID))
		evt.SetDtStampTime(now)
		evt.SetStartAt(dtStart)
		evt.SetEndAt(dtEnd)
		evt.SetSummary(fmt.Sprintf("%s - %s", curso.Codigo, curso.Nombre))
		if h.Aula != nil {
			evt.SetLocation(*h.Aula)
		}
		if curso.Profesor != nil {
			evt.SetDescription("Profesor: " + curso.Profesor.NombreCompleto())
		}
		evt.AddRrule(fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s;UNTIL=%s", wd.token, until.UTC().Format("20060102T150405Z")))
	}

	return cal.Serialize()
}

func (s *horarioService) logUnexpected(msg string, err error) error {
	if !pkgerrors.IsBusiness(err) {
		s.logger.Error(msg, zap.Error(err))
	}
	return err
}

func toHorarioResponse(h *model.Horario) *dto.HorarioResponse {
	resp := &dto.HorarioResponse{
		ID:         h.HorarioID,
		CursoID:    h.CursoID,
		DiaSemana:  h.DiaSemana,
		HoraInicio: formatHora(h.HoraInicio),
		Aula:       h.Aula,
	}
	if h.HoraFin != nil {
		fin := formatHora(*h.HoraFin)
		resp.HoraFin = &fin
	}
	return resp
}
