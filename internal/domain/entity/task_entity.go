package entity

// Task is a work record. ClientID references a User by id; the reference is
// not enforced and is resolved only when reading.
type Task struct {
	ID          string
	ClientID    string
	DateStart   string
	DateEnd     string
	Description string
}

// PopulatedTask is a Task with its client resolved. Client is nil when the
// referenced user no longer exists.
type PopulatedTask struct {
	Task
	Client *User
}

// TaskPatch lists the fields an edit changes. A nil field is left untouched.
type TaskPatch struct {
	ClientID    *string
	DateStart   *string
	DateEnd     *string
	Description *string
}

func (p TaskPatch) IsEmpty() bool {
	return p.ClientID == nil && p.DateStart == nil && p.DateEnd == nil && p.Description == nil
}

// Apply copies the set fields of p onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.ClientID != nil {
		t.ClientID = *p.ClientID
	}
	if p.DateStart != nil {
		t.DateStart = *p.DateStart
	}
	if p.DateEnd != nil {
		t.DateEnd = *p.DateEnd
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
}
