package dto

import "github.com/noah-isme/term-tracker/internal/models"

// CourseStartReportQuery captures GET /reports/course-start parameters.
type CourseStartReportQuery struct {
	From   string `form:"from"`
	To     string `form:"to"`
	Format string `form:"format"`
}

// CourseStartReport is the JSON form of the course start date report.
type CourseStartReport struct {
	From    string             `json:"from"`
	To      string             `json:"to"`
	Summary string             `json:"summary"`
	Count   int                `json:"count"`
	Rows    []models.ReportRow `json:"rows"`
}
