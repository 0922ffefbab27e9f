package handler

import "github.com/gin-gonic/gin"

// Handlers groups every API handler mounted under the API prefix.
type Handlers struct {
	Terms       *TermHandler
	Courses     *CourseHandler
	Assessments *AssessmentHandler
	Reports     *ReportHandler
	Reminders   *ReminderHandler
	Admin       *AdminHandler
	Metrics     *MetricsHandler
}

// Register mounts the API routes on group. Nil handlers are skipped.
func Register(group *gin.RouterGroup, h Handlers) {
	if h.Terms != nil {
		terms := group.Group("/terms")
		terms.GET("", h.Terms.List)
		terms.POST("", h.Terms.Create)
		terms.GET("/:id", h.Terms.Get)
		terms.PUT("/:id", h.Terms.Update)
		terms.DELETE("/:id", h.Terms.Delete)
		terms.GET("/:id/courses", h.Terms.Courses)
	}

	if h.Courses != nil {
		courses := group.Group("/courses")
		courses.GET("", h.Courses.List)
		courses.POST("", h.Courses.Create)
		courses.GET("/:id", h.Courses.Get)
		courses.PUT("/:id", h.Courses.Update)
		courses.DELETE("/:id", h.Courses.Delete)
		courses.GET("/:id/assessments", h.Courses.Assessments)
	}

	if h.Assessments != nil {
		assessments := group.Group("/assessments")
		assessments.GET("", h.Assessments.List)
		assessments.POST("", h.Assessments.Create)
		assessments.GET("/:id", h.Assessments.Get)
		assessments.PUT("/:id", h.Assessments.Update)
		assessments.DELETE("/:id", h.Assessments.Delete)
	}

	if h.Reports != nil {
		group.GET("/reports/course-start", h.Reports.CourseStart)
	}

	if h.Reminders != nil {
		group.GET("/reminders/pending", h.Reminders.Pending)
	}

	if h.Admin != nil {
		group.POST("/admin/seed", h.Admin.Seed)
		group.DELETE("/admin/data", h.Admin.Clear)
	}

	if h.Metrics != nil {
		group.GET("/metrics/summary", h.Metrics.Summary)
	}
}
