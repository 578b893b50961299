package models

import "strings"

// AssignmentCategory labels the kind of assessment. Categories only differ
// by label; weighting and calculation are identical across them.
type AssignmentCategory string

const (
	CategoryExam     AssignmentCategory = "exam"
	CategoryQuiz     AssignmentCategory = "quiz"
	CategoryHomework AssignmentCategory = "homework"
)

// ParseCategory normalises a raw category string. Unknown values fall back
// to exam, matching how imports of older documents were handled.
func ParseCategory(raw string) AssignmentCategory {
	switch AssignmentCategory(strings.ToLower(strings.TrimSpace(raw))) {
	case CategoryQuiz:
		return CategoryQuiz
	case CategoryHomework:
		return CategoryHomework
	default:
		return CategoryExam
	}
}

// Assignment is a weighted unit of assessment.
type Assignment struct {
	ID       int64              `json:"id"`
	Title    string             `json:"title"`
	Category AssignmentCategory `json:"category"`
	Weight   float64            `json:"weight"`
}
