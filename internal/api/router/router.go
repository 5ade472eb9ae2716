package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jackson-sch/sistema-escolar-sub001/config"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/api/handler"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/api/middleware"
	"github.com/Jackson-sch/sistema-escolar-sub001/internal/model"
	"github.com/Jackson-sch/sistema-escolar-sub001/pkg/jwt"
	"github.com/Jackson-sch/sistema-escolar-sub001/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时不做 Token 黑名单检查与限流
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// 避免 nil 指针装入接口后变成非 nil
	var (
		blacklist middleware.TokenChecker
		limiter   middleware.RateLimiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	r.Use(middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	admin := middleware.RoleAuth(model.RolAdministrativo)
	staff := middleware.RoleAuth(model.RolAdministrativo, model.RolProfesor)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		v1.POST("/auth/login", h.Auth.Login)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 学校结构
			authorized.GET("/institucion", h.Estructura.GetInstitucion)
			authorized.GET("/niveles", h.Estructura.ListNiveles)
			authorized.POST("/niveles", admin, h.Estructura.CreateNivel)
			authorized.GET("/grados", h.Estructura.ListGrados)
			authorized.POST("/grados", admin, h.Estructura.CreateGrado)

			// 班级
			secciones := authorized.Group("/niveles-academicos")
			{
				secciones.GET("", h.NivelAcademico.List)
				secciones.GET("/:id", h.NivelAcademico.Get)
				secciones.POST("", admin, h.NivelAcademico.Create)
				secciones.PUT("/:id", admin, h.NivelAcademico.Update)
				secciones.DELETE("/:id", admin, h.NivelAcademico.Delete)
			}

			// 学科领域
			areas := authorized.Group("/areas-curriculares")
			{
				areas.GET("", h.AreaCurricular.List)
				areas.GET("/:id", h.AreaCurricular.Get)
				areas.POST("", admin, h.AreaCurricular.Create)
				areas.PUT("/:id", admin, h.AreaCurricular.Update)
				areas.DELETE("/:id", admin, h.AreaCurricular.Delete)
			}

			// 课程
			cursos := authorized.Group("/cursos")
			{
				cursos.GET("", h.Curso.List)
				cursos.GET("/:id", h.Curso.Get)
				cursos.POST("", admin, h.Curso.Create)
				cursos.PUT("/:id", admin, h.Curso.Update)
				cursos.DELETE("/:id", admin, h.Curso.Delete)
				cursos.GET("/:id/horarios", h.Horario.ListByCurso)
				cursos.GET("/:id/horarios.ics", h.Horario.ExportICS)
			}

			// 课表
			authorized.POST("/horarios", admin, h.Horario.Create)
			authorized.DELETE("/horarios/:id", admin, h.Horario.Delete)

			// 用户
			usuarios := authorized.Group("/usuarios")
			{
				usuarios.GET("", staff, h.Usuario.List)
				usuarios.GET("/:id", staff, h.Usuario.Get)
				usuarios.POST("", admin, h.Usuario.Create)
			}

			// 考勤
			authorized.POST("/asistencias/bulk", staff, h.Asistencia.RegisterBulk)
			authorized.GET("/asistencias", staff, h.Asistencia.List)

			// 导出
			authorized.GET("/export/cursos", staff, h.Export.ExportCursos)
		}
	}

	return r
}
