package models

import "time"

// ContactSubmission represents a row in the "contact_submissions" table.
// Submissions are write-once: they can be listed and deleted, never edited,
// so UpdatedAt always equals CreatedAt.
type ContactSubmission struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Company   *string   `json:"company"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateContactSubmissionParams holds a contact-form submission.
type CreateContactSubmissionParams struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Message string  `json:"message" binding:"required"`
}
