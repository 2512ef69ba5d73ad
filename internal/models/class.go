package models

import "time"

// Class represents a course offering identified by a unique code.
type Class struct {
	ID         string    `db:"id" json:"id"`
	Code       string    `db:"code" json:"code"`
	Name       string    `db:"name" json:"name"`
	Instructor *string   `db:"instructor" json:"instructor,omitempty"`
	Semester   *string   `db:"semester" json:"semester,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Lecture is one session of a class, deduplicated by (class, title, number).
type Lecture struct {
	ID            string     `db:"id" json:"id"`
	ClassID       string     `db:"class_id" json:"class_id"`
	Title         string     `db:"title" json:"title"`
	LectureNumber int        `db:"lecture_number" json:"lecture_number"`
	LectureDate   *time.Time `db:"lecture_date" json:"lecture_date,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}
