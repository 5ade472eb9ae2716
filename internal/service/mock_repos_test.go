package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/repository"
	pkgerrors "github.com/Jackson-sch/sistema-escolar-sub001/pkg/errors"
)

// 所有 mock 读取时返回副本，模拟数据库行与内存对象分离

// ── Mock InstitucionRepository ──

type mockInstitucionRepo struct {
	insts   map[string]*model.Institucion
	niveles *mockNivelRepo
	grados  *mockGradoRepo
}

func (m *mockInstitucionRepo) GetByID(_ context.Context, id string) (*model.Institucion, error) {
	if i, ok := m.insts[id]; ok {
		c := *i
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInstitucionRepo) GetEstructura(ctx context.Context, id string) (*model.Institucion, error) {
	inst, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	niveles, _ := m.niveles.List(ctx, id)
	for i := range niveles {
		niveles[i].Grados, _ = m.grados.List(ctx, id, niveles[i].NivelID)
	}
	inst.Niveles = niveles
	return inst, nil
}

// ── Mock NivelRepository ──

type mockNivelRepo struct {
	niveles map[string]*model.Nivel
}

func (m *mockNivelRepo) Create(_ context.Context, nivel *model.Nivel) error {
	if nivel.NivelID == "" {
		nivel.NivelID = "nivel-" + strings.ToLower(nivel.Nombre)
	}
	c := *nivel
	m.niveles[nivel.NivelID] = &c
	return nil
}

func (m *mockNivelRepo) GetByID(_ context.Context, institucionID, id string) (*model.Nivel, error) {
	if n, ok := m.niveles[id]; ok && n.InstitucionID == institucionID {
		c := *n
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNivelRepo) GetByNombre(_ context.Context, institucionID, nombre string) (*model.Nivel, error) {
	for _, n := range m.niveles {
		if n.InstitucionID == institucionID && strings.EqualFold(n.Nombre, nombre) {
			c := *n
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNivelRepo) ExistsNombre(ctx context.Context, institucionID, nombre string) (bool, error) {
	_, err := m.GetByNombre(ctx, institucionID, nombre)
	return err == nil, nil
}

func (m *mockNivelRepo) List(_ context.Context, institucionID string) ([]model.Nivel, error) {
	var result []model.Nivel
	for _, n := range m.niveles {
		if n.InstitucionID == institucionID {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Orden < result[j].Orden })
	return result, nil
}

// ── Mock GradoRepository ──

type mockGradoRepo struct {
	grados  map[string]*model.Grado
	niveles *mockNivelRepo
}

func (m *mockGradoRepo) inTenant(institucionID string, g *model.Grado) bool {
	n, ok := m.niveles.niveles[g.NivelID]
	return ok && n.InstitucionID == institucionID
}

func (m *mockGradoRepo) Create(_ context.Context, grado *model.Grado) error {
	if grado.GradoID == "" {
		grado.GradoID = "grado-" + strings.ToLower(strings.ReplaceAll(grado.Nombre, " ", "-"))
	}
	c := *grado
	m.grados[grado.GradoID] = &c
	return nil
}

func (m *mockGradoRepo) GetByID(_ context.Context, institucionID, id string) (*model.Grado, error) {
	if g, ok := m.grados[id]; ok && m.inTenant(institucionID, g) {
		c := *g
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGradoRepo) GetByNombre(_ context.Context, institucionID, nivelID, nombre string) (*model.Grado, error) {
	for _, g := range m.grados {
		if g.NivelID == nivelID && strings.EqualFold(g.Nombre, nombre) && m.inTenant(institucionID, g) {
			c := *g
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGradoRepo) ExistsNombre(_ context.Context, nivelID, nombre string) (bool, error) {
	for _, g := range m.grados {
		if g.NivelID == nivelID && strings.EqualFold(g.Nombre, nombre) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockGradoRepo) List(_ context.Context, institucionID, nivelID string) ([]model.Grado, error) {
	var result []model.Grado
	for _, g := range m.grados {
		if m.inTenant(institucionID, g) && (nivelID == "" || g.NivelID == nivelID) {
			result = append(result, *g)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Orden < result[j].Orden })
	return result, nil
}

// ── Mock NivelAcademicoRepository ──

type mockNivelAcademicoRepo struct {
	items        map[string]*model.NivelAcademico
	deps         map[string]*repository.NivelAcademicoDependents
	niveles      *mockNivelRepo
	grados       *mockGradoRepo
	seq          int
	setActivoErr error
	createErr    error
}

func (m *mockNivelAcademicoRepo) withRelations(na *model.NivelAcademico) *model.NivelAcademico {
	c := *na
	if n, ok := m.niveles.niveles[na.NivelID]; ok {
		nc := *n
		c.Nivel = &nc
	}
	if g, ok := m.grados.grados[na.GradoID]; ok {
		gc := *g
		c.Grado = &gc
	}
	return &c
}

func (m *mockNivelAcademicoRepo) Create(_ context.Context, na *model.NivelAcademico) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	if na.NivelAcademicoID == "" {
		na.NivelAcademicoID = fmt.Sprintf("na-%d", m.seq)
	}
	if na.CreatedAt.IsZero() {
		na.CreatedAt = time.Date(2025, 1, 1, 0, 0, m.seq, 0, time.UTC)
	}
	c := *na
	c.Nivel, c.Grado = nil, nil
	m.items[na.NivelAcademicoID] = &c
	return nil
}

func (m *mockNivelAcademicoRepo) GetByID(_ context.Context, institucionID, id string) (*model.NivelAcademico, error) {
	if na, ok := m.items[id]; ok && na.InstitucionID == institucionID {
		return m.withRelations(na), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNivelAcademicoRepo) List(_ context.Context, institucionID string, filter repository.NivelAcademicoFilter) ([]model.NivelAcademico, error) {
	var result []model.NivelAcademico
	for _, na := range m.items {
		if na.InstitucionID != institucionID {
			continue
		}
		if filter.AnioAcademico != nil && na.AnioAcademico != *filter.AnioAcademico {
			continue
		}
		if filter.NivelID != "" && na.NivelID != filter.NivelID {
			continue
		}
		if filter.GradoID != "" && na.GradoID != filter.GradoID {
			continue
		}
		if !filter.IncludeInactive && !na.Activo {
			continue
		}
		result = append(result, *m.withRelations(na))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Seccion < result[j].Seccion })
	return result, nil
}

func (m *mockNivelAcademicoRepo) Update(_ context.Context, na *model.NivelAcademico) error {
	if _, ok := m.items[na.NivelAcademicoID]; !ok {
		return gorm.ErrRecordNotFound
	}
	c := *na
	c.Nivel, c.Grado = nil, nil
	m.items[na.NivelAcademicoID] = &c
	return nil
}

func (m *mockNivelAcademicoRepo) ExistsSeccion(_ context.Context, institucionID, nivelID, gradoID, seccion string, anio int, excludeID string) (bool, error) {
	for id, na := range m.items {
		if id == excludeID {
			continue
		}
		if na.InstitucionID == institucionID && na.NivelID == nivelID && na.GradoID == gradoID &&
			na.Seccion == seccion && na.AnioAcademico == anio {
			return true, nil
		}
	}
	return false, nil
}

// firstActive 按 (created_at, id) 升序取第一个启用班级
func (m *mockNivelAcademicoRepo) firstActive(match func(*model.NivelAcademico) bool) (*model.NivelAcademico, error) {
	var candidates []*model.NivelAcademico
	for _, na := range m.items {
		if na.Activo && match(na) {
			candidates = append(candidates, na)
		}
	}
	if len(candidates) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].CreatedAt.Equal(candidates[j].CreatedAt) {
			return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
		}
		return candidates[i].NivelAcademicoID < candidates[j].NivelAcademicoID
	})
	c := *candidates[0]
	return &c, nil
}

func (m *mockNivelAcademicoRepo) FirstActiveByGrado(_ context.Context, institucionID, gradoID string) (*model.NivelAcademico, error) {
	return m.firstActive(func(na *model.NivelAcademico) bool {
		return na.InstitucionID == institucionID && na.GradoID == gradoID
	})
}

func (m *mockNivelAcademicoRepo) FirstActiveByNivel(_ context.Context, institucionID, nivelID string) (*model.NivelAcademico, error) {
	return m.firstActive(func(na *model.NivelAcademico) bool {
		return na.InstitucionID == institucionID && na.NivelID == nivelID
	})
}

func (m *mockNivelAcademicoRepo) FirstActiveByInstitucion(_ context.Context, institucionID string) (*model.NivelAcademico, error) {
	return m.firstActive(func(na *model.NivelAcademico) bool {
		return na.InstitucionID == institucionID
	})
}

func (m *mockNivelAcademicoRepo) CountDependents(_ context.Context, id string) (*repository.NivelAcademicoDependents, error) {
	if d, ok := m.deps[id]; ok {
		c := *d
		return &c, nil
	}
	return &repository.NivelAcademicoDependents{}, nil
}

func (m *mockNivelAcademicoRepo) SetActivo(_ context.Context, institucionID, id string, activo bool, updatedBy string) error {
	if m.setActivoErr != nil {
		return m.setActivoErr
	}
	na, ok := m.items[id]
	if !ok || na.InstitucionID != institucionID {
		return gorm.ErrRecordNotFound
	}
	na.Activo = activo
	na.UpdatedBy = &updatedBy
	return nil
}

func (m *mockNivelAcademicoRepo) Delete(_ context.Context, institucionID, id string) error {
	if na, ok := m.items[id]; ok && na.InstitucionID == institucionID {
		delete(m.items, id)
	}
	return nil
}

// ── Mock AreaCurricularRepository ──

type mockAreaCurricularRepo struct {
	areas        map[string]*model.AreaCurricular
	deps         map[string]*repository.AreaCurricularDependents
	updates      int
	setActivoErr error
}

func (m *mockAreaCurricularRepo) Create(_ context.Context, area *model.AreaCurricular) error {
	if area.AreaCurricularID == "" {
		area.AreaCurricularID = "area-" + strings.ToLower(area.Codigo)
	}
	c := *area
	m.areas[area.AreaCurricularID] = &c
	return nil
}

func (m *mockAreaCurricularRepo) GetByID(_ context.Context, institucionID, id string) (*model.AreaCurricular, error) {
	if a, ok := m.areas[id]; ok && a.InstitucionID == institucionID {
		c := *a
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAreaCurricularRepo) GetParentID(ctx context.Context, institucionID, id string) (*string, error) {
	a, err := m.GetByID(ctx, institucionID, id)
	if err != nil {
		return nil, err
	}
	return a.ParentID, nil
}

func (m *mockAreaCurricularRepo) List(_ context.Context, institucionID string, includeInactive bool) ([]model.AreaCurricular, error) {
	var result []model.AreaCurricular
	for _, a := range m.areas {
		if a.InstitucionID == institucionID && (includeInactive || a.Activo) {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Orden != result[j].Orden {
			return result[i].Orden < result[j].Orden
		}
		return result[i].Nombre < result[j].Nombre
	})
	return result, nil
}

func (m *mockAreaCurricularRepo) Update(_ context.Context, area *model.AreaCurricular) error {
	if _, ok := m.areas[area.AreaCurricularID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.updates++
	c := *area
	m.areas[area.AreaCurricularID] = &c
	return nil
}

func (m *mockAreaCurricularRepo) ExistsCodigo(_ context.Context, institucionID, codigo, excludeID string) (bool, error) {
	for id, a := range m.areas {
		if id != excludeID && a.InstitucionID == institucionID && a.Codigo == codigo {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAreaCurricularRepo) CountDependents(_ context.Context, id string) (*repository.AreaCurricularDependents, error) {
	if d, ok := m.deps[id]; ok {
		c := *d
		return &c, nil
	}
	return &repository.AreaCurricularDependents{}, nil
}

func (m *mockAreaCurricularRepo) SetActivo(_ context.Context, institucionID, id string, activo bool, updatedBy string) error {
	if m.setActivoErr != nil {
		return m.setActivoErr
	}
	a, ok := m.areas[id]
	if !ok || a.InstitucionID != institucionID {
		return gorm.ErrRecordNotFound
	}
	a.Activo = activo
	a.UpdatedBy = &updatedBy
	return nil
}

func (m *mockAreaCurricularRepo) Delete(_ context.Context, institucionID, id string) error {
	if a, ok := m.areas[id]; ok && a.InstitucionID == institucionID {
		delete(m.areas, id)
	}
	return nil
}

// ── Mock CursoRepository ──

type mockCursoRepo struct {
	cursos       map[string]*model.Curso
	deps         map[string]*repository.CursoDependents
	areas        *mockAreaCurricularRepo
	usuarios     *mockUsuarioRepo
	secciones    *mockNivelAcademicoRepo
	seq          int
	writes       int
	createErr    error
	setActivoErr error
}

// inTenant 课程经由学科领域归属学校
func (m *mockCursoRepo) inTenant(institucionID string, c *model.Curso) bool {
	a, ok := m.areas.areas[c.AreaCurricularID]
	return ok && a.InstitucionID == institucionID
}

func (m *mockCursoRepo) withRelations(c *model.Curso) *model.Curso {
	cp := *c
	if a, ok := m.areas.areas[c.AreaCurricularID]; ok {
		ac := *a
		cp.AreaCurricular = &ac
	}
	if u, ok := m.usuarios.usuarios[c.ProfesorID]; ok {
		uc := *u
		cp.Profesor = &uc
	}
	if m.secciones != nil && c.NivelAcademicoID != nil {
		if na, ok := m.secciones.items[*c.NivelAcademicoID]; ok {
			cp.NivelAcademico = m.secciones.withRelations(na)
		}
	}
	return &cp
}

func (m *mockCursoRepo) Create(_ context.Context, curso *model.Curso) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	m.writes++
	if curso.CursoID == "" {
		curso.CursoID = fmt.Sprintf("curso-%d", m.seq)
	}
	if curso.Version == 0 {
		curso.Version = 1
	}
	c := *curso
	c.AreaCurricular, c.Profesor, c.NivelAcademico = nil, nil, nil
	m.cursos[curso.CursoID] = &c
	return nil
}

func (m *mockCursoRepo) GetByID(_ context.Context, institucionID, id string) (*model.Curso, error) {
	if c, ok := m.cursos[id]; ok && m.inTenant(institucionID, c) {
		return m.withRelations(c), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCursoRepo) List(_ context.Context, institucionID string, filter repository.CursoFilter) ([]model.Curso, error) {
	var result []model.Curso
	for _, c := range m.cursos {
		if !m.inTenant(institucionID, c) {
			continue
		}
		if filter.AnioAcademico != nil && c.AnioAcademico != *filter.AnioAcademico {
			continue
		}
		if filter.Alcance != "" && c.Alcance != filter.Alcance {
			continue
		}
		if filter.AreaCurricularID != "" && c.AreaCurricularID != filter.AreaCurricularID {
			continue
		}
		if filter.ProfesorID != "" && c.ProfesorID != filter.ProfesorID {
			continue
		}
		if filter.NivelAcademicoID != "" && strValue(c.NivelAcademicoID) != filter.NivelAcademicoID {
			continue
		}
		if !filter.IncludeInactive && !c.Activo {
			continue
		}
		result = append(result, *m.withRelations(c))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Codigo < result[j].Codigo })
	return result, nil
}

func (m *mockCursoRepo) Update(_ context.Context, curso *model.Curso) error {
	stored, ok := m.cursos[curso.CursoID]
	if !ok || stored.Version != curso.Version {
		return pkgerrors.ErrOptimisticLock
	}
	m.writes++
	curso.Version++
	c := *curso
	c.AreaCurricular, c.Profesor, c.NivelAcademico = nil, nil, nil
	m.cursos[curso.CursoID] = &c
	return nil
}

func (m *mockCursoRepo) ExistsByScopeKey(_ context.Context, institucionID, codigo string, anio int, alcance, targetID, excludeID string) (bool, error) {
	for id, c := range m.cursos {
		if id == excludeID || !m.inTenant(institucionID, c) {
			continue
		}
		if c.Codigo != codigo || c.AnioAcademico != anio || c.Alcance != alcance {
			continue
		}
		var target *string
		switch alcance {
		case model.AlcanceSeccionEspecifica:
			target = c.NivelAcademicoID
		case model.AlcanceTodoElGrado:
			target = c.GradoID
		case model.AlcanceTodoElNivel:
			target = c.NivelID
		case model.AlcanceTodaLaInstitucion:
			target = c.InstitucionID
		}
		if strValue(target) == targetID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCursoRepo) CountDependents(_ context.Context, id string) (*repository.CursoDependents, error) {
	if d, ok := m.deps[id]; ok {
		c := *d
		return &c, nil
	}
	return &repository.CursoDependents{}, nil
}

func (m *mockCursoRepo) SetActivo(_ context.Context, institucionID, id string, activo bool, updatedBy string) error {
	if m.setActivoErr != nil {
		return m.setActivoErr
	}
	c, ok := m.cursos[id]
	if !ok || !m.inTenant(institucionID, c) {
		return gorm.ErrRecordNotFound
	}
	c.Activo = activo
	c.UpdatedBy = &updatedBy
	c.Version++
	return nil
}

func (m *mockCursoRepo) Delete(_ context.Context, institucionID, id string) error {
	if c, ok := m.cursos[id]; ok && m.inTenant(institucionID, c) {
		delete(m.cursos, id)
	}
	return nil
}

// ── Mock HorarioRepository ──

type mockHorarioRepo struct {
	horarios map[string]*model.Horario
	cursos   *mockCursoRepo
	seq      int
}

func (m *mockHorarioRepo) Create(_ context.Context, h *model.Horario) error {
	m.seq++
	if h.HorarioID == "" {
		h.HorarioID = fmt.Sprintf("horario-%d", m.seq)
	}
	c := *h
	m.horarios[h.HorarioID] = &c
	return nil
}

func (m *mockHorarioRepo) GetByID(_ context.Context, institucionID, id string) (*model.Horario, error) {
	h, ok := m.horarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if c, ok := m.cursos.cursos[h.CursoID]; !ok || !m.cursos.inTenant(institucionID, c) {
		return nil, gorm.ErrRecordNotFound
	}
	c := *h
	return &c, nil
}

var mockDiaOrden = map[string]int{
	"LUNES": 1, "MARTES": 2, "MIERCOLES": 3, "JUEVES": 4, "VIERNES": 5, "SABADO": 6, "DOMINGO": 7,
}

func (m *mockHorarioRepo) ListByCurso(_ context.Context, cursoID string) ([]model.Horario, error) {
	var result []model.Horario
	for _, h := range m.horarios {
		if h.CursoID == cursoID {
			result = append(result, *h)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DiaSemana != result[j].DiaSemana {
			return mockDiaOrden[result[i].DiaSemana] < mockDiaOrden[result[j].DiaSemana]
		}
		return result[i].HoraInicio < result[j].HoraInicio
	})
	return result, nil
}

func (m *mockHorarioRepo) Exists(_ context.Context, cursoID, diaSemana string, horaInicio datatypes.Time) (bool, error) {
	for _, h := range m.horarios {
		if h.CursoID == cursoID && h.DiaSemana == diaSemana && h.HoraInicio == horaInicio {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockHorarioRepo) Delete(_ context.Context, id string) error {
	delete(m.horarios, id)
	return nil
}

func (m *mockHorarioRepo) DeleteByCurso(_ context.Context, cursoID string) (int64, error) {
	var n int64
	for id, h := range m.horarios {
		if h.CursoID == cursoID {
			delete(m.horarios, id)
			n++
		}
	}
	return n, nil
}

// ── Mock UsuarioRepository ──

type mockUsuarioRepo struct {
	usuarios map[string]*model.Usuario
	seq      int
}

func (m *mockUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	m.seq++
	if u.UsuarioID == "" {
		u.UsuarioID = fmt.Sprintf("usuario-%d", m.seq)
	}
	c := *u
	m.usuarios[u.UsuarioID] = &c
	return nil
}

func (m *mockUsuarioRepo) GetByID(_ context.Context, institucionID, id string) (*model.Usuario, error) {
	if u, ok := m.usuarios[id]; ok && u.InstitucionID == institucionID {
		c := *u
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUsuarioRepo) GetByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range m.usuarios {
		if u.Email == strings.ToLower(email) {
			c := *u
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUsuarioRepo) ExistsEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *mockUsuarioRepo) List(_ context.Context, institucionID, rol string, offset, limit int) ([]model.Usuario, int64, error) {
	var all []model.Usuario
	for _, u := range m.usuarios {
		if u.InstitucionID == institucionID && (rol == "" || u.Rol == rol) {
			all = append(all, *u)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UsuarioID < all[j].UsuarioID })
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Usuario{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUsuarioRepo) CountByIDsAndRol(_ context.Context, institucionID string, ids []string, rol string) (int64, error) {
	var n int64
	for _, id := range ids {
		if u, ok := m.usuarios[id]; ok && u.InstitucionID == institucionID && u.Rol == rol && u.Activo {
			n++
		}
	}
	return n, nil
}

// ── Mock AsistenciaRepository ──

type mockAsistenciaRepo struct {
	registros map[string]*model.Asistencia
	usuarios  *mockUsuarioRepo
	upserts   int
}

func asistenciaKey(cursoID, estudianteID string, fecha datatypes.Date) string {
	return cursoID + "|" + estudianteID + "|" + formatFecha(fecha)
}

func (m *mockAsistenciaRepo) Upsert(_ context.Context, registros []model.Asistencia) error {
	m.upserts++
	for i := range registros {
		r := registros[i]
		key := asistenciaKey(r.CursoID, r.EstudianteID, r.Fecha)
		if existing, ok := m.registros[key]; ok {
			existing.Estado = r.Estado
			existing.Observacion = r.Observacion
			existing.RegistradoPor = r.RegistradoPor
			continue
		}
		r.AsistenciaID = fmt.Sprintf("asis-%d", len(m.registros)+1)
		m.registros[key] = &r
	}
	return nil
}

func (m *mockAsistenciaRepo) ListByCursoFecha(_ context.Context, cursoID string, fecha *datatypes.Date) ([]model.Asistencia, error) {
	var result []model.Asistencia
	for _, r := range m.registros {
		if r.CursoID != cursoID {
			continue
		}
		if fecha != nil && formatFecha(r.Fecha) != formatFecha(*fecha) {
			continue
		}
		c := *r
		if u, ok := m.usuarios.usuarios[r.EstudianteID]; ok {
			uc := *u
			c.Estudiante = &uc
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EstudianteID < result[j].EstudianteID })
	return result, nil
}

// ── 测试装配 ──

// mockTransactor 不开启真实事务，直接把内存仓库交给 fn
type mockTransactor struct {
	repo  *repository.Repository
	calls int
	err   error
}

func (m *mockTransactor) Transaction(_ context.Context, fn func(tx *repository.Repository) error) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	return fn(m.repo)
}

type testRepos struct {
	repo           *repository.Repository
	tx             *mockTransactor
	institucion    *mockInstitucionRepo
	nivel          *mockNivelRepo
	grado          *mockGradoRepo
	nivelAcademico *mockNivelAcademicoRepo
	area           *mockAreaCurricularRepo
	curso          *mockCursoRepo
	horario        *mockHorarioRepo
	usuario        *mockUsuarioRepo
	asistencia     *mockAsistenciaRepo
}

func newTestRepos() *testRepos {
	niveles := &mockNivelRepo{niveles: map[string]*model.Nivel{}}
	grados := &mockGradoRepo{grados: map[string]*model.Grado{}, niveles: niveles}
	usuarios := &mockUsuarioRepo{usuarios: map[string]*model.Usuario{}}
	areas := &mockAreaCurricularRepo{
		areas: map[string]*model.AreaCurricular{},
		deps:  map[string]*repository.AreaCurricularDependents{},
	}
	cursos := &mockCursoRepo{
		cursos:   map[string]*model.Curso{},
		deps:     map[string]*repository.CursoDependents{},
		areas:    areas,
		usuarios: usuarios,
	}
	secciones := &mockNivelAcademicoRepo{
		items:   map[string]*model.NivelAcademico{},
		deps:    map[string]*repository.NivelAcademicoDependents{},
		niveles: niveles,
		grados:  grados,
	}
	cursos.secciones = secciones
	r := &testRepos{
		institucion:    &mockInstitucionRepo{insts: map[string]*model.Institucion{}, niveles: niveles, grados: grados},
		nivel:          niveles,
		grado:          grados,
		nivelAcademico: secciones,
		area:           areas,
		curso:          cursos,
		horario:        &mockHorarioRepo{horarios: map[string]*model.Horario{}, cursos: cursos},
		usuario:        usuarios,
		asistencia:     &mockAsistenciaRepo{registros: map[string]*model.Asistencia{}, usuarios: usuarios},
	}
	r.repo = &repository.Repository{
		Institucion:    r.institucion,
		Nivel:          r.nivel,
		Grado:          r.grado,
		NivelAcademico: r.nivelAcademico,
		AreaCurricular: r.area,
		Curso:          r.curso,
		Horario:        r.horario,
		Usuario:        r.usuario,
		Asistencia:     r.asistencia,
	}
	r.tx = &mockTransactor{repo: r.repo}
	return r
}

// ── 测试数据 ──
//
// inst-1:
//   Primaria (nivel-prim)
//     1er Grado (grado-1): secciones na-1a, na-1b
//     2do Grado (grado-2): sección na-2a
//     3er Grado (grado-3): sin secciones
//   Secundaria (nivel-sec): sin secciones
//   área MAT (area-mat), profesor prof-1, estudiantes est-1 / est-2, administrativo admin-1
// inst-2: Primaria (nivel-otro), área area-otra

const (
	testInst      = "inst-1"
	testOtherInst = "inst-2"
	testCaller    = "admin-1"
	testAnio      = 2025
)

func (r *testRepos) seed() {
	ctx := context.Background()
	r.institucion.insts[testInst] = &model.Institucion{InstitucionID: testInst, Nombre: "I.E. San Martín"}
	r.institucion.insts[testOtherInst] = &model.Institucion{InstitucionID: testOtherInst, Nombre: "I.E. Otra"}

	_ = r.nivel.Create(ctx, &model.Nivel{NivelID: "nivel-prim", InstitucionID: testInst, Nombre: "Primaria", Orden: 1, Activo: true})
	_ = r.nivel.Create(ctx, &model.Nivel{NivelID: "nivel-sec", InstitucionID: testInst, Nombre: "Secundaria", Orden: 2, Activo: true})
	_ = r.nivel.Create(ctx, &model.Nivel{NivelID: "nivel-otro", InstitucionID: testOtherInst, Nombre: "Primaria", Orden: 1, Activo: true})

	_ = r.grado.Create(ctx, &model.Grado{GradoID: "grado-1", NivelID: "nivel-prim", Nombre: "1er Grado", Orden: 1, Activo: true})
	_ = r.grado.Create(ctx, &model.Grado{GradoID: "grado-2", NivelID: "nivel-prim", Nombre: "2do Grado", Orden: 2, Activo: true})
	_ = r.grado.Create(ctx, &model.Grado{GradoID: "grado-3", NivelID: "nivel-prim", Nombre: "3er Grado", Orden: 3, Activo: true})

	r.addSeccion("na-1a", "grado-1", "A")
	r.addSeccion("na-1b", "grado-1", "B")
	r.addSeccion("na-2a", "grado-2", "A")

	_ = r.area.Create(ctx, &model.AreaCurricular{AreaCurricularID: "area-mat", InstitucionID: testInst, Nombre: "Matemática", Codigo: "MAT", Activo: true})
	_ = r.area.Create(ctx, &model.AreaCurricular{AreaCurricularID: "area-otra", InstitucionID: testOtherInst, Nombre: "Comunicación", Codigo: "COM", Activo: true})

	_ = r.usuario.Create(ctx, &model.Usuario{UsuarioID: "prof-1", InstitucionID: testInst, Nombre: "Ana", Apellidos: "Quispe", Email: "ana@colegio.pe", Rol: model.RolProfesor, Activo: true})
	_ = r.usuario.Create(ctx, &model.Usuario{UsuarioID: "est-1", InstitucionID: testInst, Nombre: "Luis", Apellidos: "Rojas", Email: "luis@colegio.pe", Rol: model.RolEstudiante, Activo: true})
	_ = r.usuario.Create(ctx, &model.Usuario{UsuarioID: "est-2", InstitucionID: testInst, Nombre: "Rosa", Apellidos: "Huamán", Email: "rosa@colegio.pe", Rol: model.RolEstudiante, Activo: true})
	_ = r.usuario.Create(ctx, &model.Usuario{UsuarioID: testCaller, InstitucionID: testInst, Nombre: "Admin", Email: "admin@colegio.pe", Rol: model.RolAdministrativo, Activo: true})
}

func (r *testRepos) addSeccion(id, gradoID, seccion string) {
	_ = r.nivelAcademico.Create(context.Background(), &model.NivelAcademico{
		NivelAcademicoID: id,
		InstitucionID:    testInst,
		NivelID:          r.grado.grados[gradoID].NivelID,
		GradoID:          gradoID,
		Seccion:          seccion,
		Turno:            "MANANA",
		CapacidadMaxima:  30,
		AnioAcademico:    testAnio,
		Activo:           true,
	})
}
