package models

// Grade records one score against one assignment for one student. Grades
// are immutable; re-entry for the same (student, assignment) pair replaces
// the previous record.
type Grade struct {
	StudentID    int64   `json:"student_id"`
	AssignmentID int64   `json:"assignment_id"`
	Score        float64 `json:"score"`
}

// GPAFromPercent maps a percentage average onto the 4.0 scale. Breakpoints
// use inclusive lower bounds: >=90 -> 4.0, >=80 -> 3.0, >=70 -> 2.0,
// >=60 -> 1.0, otherwise 0.0.
func GPAFromPercent(percent float64) float64 {
	switch {
	case percent >= 90:
		return 4.0
	case percent >= 80:
		return 3.0
	case percent >= 70:
		return 2.0
	case percent >= 60:
		return 1.0
	default:
		return 0.0
	}
}
