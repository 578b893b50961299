package models

// Student represents a learner registered in the gradebook.
type Student struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StudentSummary combines a student with their computed results. Averages
// are nil for students without any recorded grade.
type StudentSummary struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	WeightedAverage *float64 `json:"weighted_average"`
	GPA             *float64 `json:"gpa"`
}

// ClassSummary is the dashboard view across the whole gradebook.
type ClassSummary struct {
	Students     []StudentSummary `json:"students"`
	ClassAverage *float64         `json:"class_average"`
}
