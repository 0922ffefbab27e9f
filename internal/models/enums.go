package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CourseStatus is persisted as an explicit code. Codes are assigned once and never reused.
type CourseStatus int

const (
	CourseStatusInActive   CourseStatus = 0
	CourseStatusActive     CourseStatus = 1
	CourseStatusCompleted  CourseStatus = 2
	CourseStatusDropped    CourseStatus = 3
	CourseStatusPlanToTake CourseStatus = 4
)

var courseStatusNames = map[CourseStatus]string{
	CourseStatusInActive:   "InActive",
	CourseStatusActive:     "Active",
	CourseStatusCompleted:  "Completed",
	CourseStatusDropped:    "Dropped",
	CourseStatusPlanToTake: "PlanToTake",
}

// CourseStatuses lists the statuses in display order.
func CourseStatuses() []CourseStatus {
	return []CourseStatus{CourseStatusInActive, CourseStatusActive, CourseStatusCompleted, CourseStatusDropped, CourseStatusPlanToTake}
}

func (s CourseStatus) String() string {
	if name, ok := courseStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("CourseStatus(%d)", int(s))
}

// Valid reports whether s is a known status code.
func (s CourseStatus) Valid() bool {
	_, ok := courseStatusNames[s]
	return ok
}

// ParseCourseStatus resolves a status name case-insensitively.
func ParseCourseStatus(raw string) (CourseStatus, error) {
	for code, name := range courseStatusNames {
		if strings.EqualFold(name, strings.TrimSpace(raw)) {
			return code, nil
		}
	}
	return 0, fmt.Errorf("unknown course status %q", raw)
}

func (s CourseStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *CourseStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("course status must be a string: %w", err)
	}
	parsed, err := ParseCourseStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// AssessmentType is persisted as an explicit code. Codes are assigned once and never reused.
type AssessmentType int

const (
	AssessmentTypePerformance AssessmentType = 0
	AssessmentTypeObjective   AssessmentType = 1
)

var assessmentTypeNames = map[AssessmentType]string{
	AssessmentTypePerformance: "Performance",
	AssessmentTypeObjective:   "Objective",
}

func (t AssessmentType) String() string {
	if name, ok := assessmentTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("AssessmentType(%d)", int(t))
}

// Valid reports whether t is a known type code.
func (t AssessmentType) Valid() bool {
	_, ok := assessmentTypeNames[t]
	return ok
}

// ParseAssessmentType resolves a type name case-insensitively.
func ParseAssessmentType(raw string) (AssessmentType, error) {
	for code, name := range assessmentTypeNames {
		if strings.EqualFold(name, strings.TrimSpace(raw)) {
			return code, nil
		}
	}
	return 0, fmt.Errorf("unknown assessment type %q", raw)
}

func (t AssessmentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *AssessmentType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("assessment type must be a string: %w", err)
	}
	parsed, err := ParseAssessmentType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
