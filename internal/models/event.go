// Package models holds the types passed between the extraction, store and
// sync layers. They are internal representations, independent of any
// specific model or calendar provider.
package models

// EventType classifies an extracted academic event.
type EventType string

const (
	TypeExam     EventType = "Exam"
	TypeHomework EventType = "Homework"
	TypeProject  EventType = "Project"
	TypeOther    EventType = "Other"
)

// Event is a single date-bearing item extracted from a syllabus.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`           // ISO date, YYYY-MM-DD
	Time        string    `json:"time,omitempty"` // free-text clock time, e.g. "2:00 PM"; empty means all-day
	Type        EventType `json:"type"`
	Course      string    `json:"course,omitempty"`
	Description string    `json:"description,omitempty"`
}

// CourseBundle groups the events extracted from one uploaded document.
type CourseBundle struct {
	Course   string  `json:"course"`
	Events   []Event `json:"events"`
	Filename string  `json:"filename"`
}
