package models

// Snapshot is the persisted gradebook document. The whole state is written
// as one JSON object and must round-trip exactly through save and load.
type Snapshot struct {
	Students    []Student    `json:"students"`
	Assignments []Assignment `json:"assignments"`
	Grades      []Grade      `json:"grades"`
}

// EmptySnapshot returns a snapshot with initialised (non-nil) collections
// so a fresh document serialises as empty lists rather than nulls.
func EmptySnapshot() Snapshot {
	return Snapshot{
		Students:    []Student{},
		Assignments: []Assignment{},
		Grades:      []Grade{},
	}
}

// Clone returns a deep copy so callers can read state without holding the
// store lock.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Students:    make([]Student, len(s.Students)),
		Assignments: make([]Assignment, len(s.Assignments)),
		Grades:      make([]Grade, len(s.Grades)),
	}
	copy(out.Students, s.Students)
	copy(out.Assignments, s.Assignments)
	copy(out.Grades, s.Grades)
	return out
}
