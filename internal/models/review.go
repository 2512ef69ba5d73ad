package models

import "time"

// ClassReview is an end-of-term star rating plus free text against a class.
type ClassReview struct {
	ID        string    `db:"id" json:"id"`
	ClassID   string    `db:"class_id" json:"class_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Rating    int       `db:"rating" json:"rating"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ClassReviewDetail joins a class review with class and reviewer display fields.
type ClassReviewDetail struct {
	ClassReview
	ClassCode string `db:"class_code" json:"class_code"`
	ClassName string `db:"class_name" json:"class_name"`
	UserName  string `db:"user_name" json:"user_name"`
}

// LectureReview is a per-lecture star rating plus free text.
type LectureReview struct {
	ID        string    `db:"id" json:"id"`
	LectureID string    `db:"lecture_id" json:"lecture_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Rating    int       `db:"rating" json:"rating"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// LectureReviewDetail joins a lecture review with lecture, class and reviewer fields.
type LectureReviewDetail struct {
	LectureReview
	LectureTitle  string `db:"lecture_title" json:"lecture_title"`
	LectureNumber int    `db:"lecture_number" json:"lecture_number"`
	ClassID       string `db:"class_id" json:"class_id"`
	ClassCode     string `db:"class_code" json:"class_code"`
	ClassName     string `db:"class_name" json:"class_name"`
	UserName      string `db:"user_name" json:"user_name"`
}
