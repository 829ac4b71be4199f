package models

import "time"

// Project is the projects table row.
type Project struct {
	ProjectID     string     `db:"project_id"`
	Name          string     `db:"name"`
	StartDate     time.Time  `db:"start_date"`
	EndDate       *time.Time `db:"end_date"`
	AttachmentRef *string    `db:"attachment_ref"`
	CreatedBy     string     `db:"created_by"`
	ManagedBy     string     `db:"managed_by"`
	CreatedAt     time.Time  `db:"created_at"`
}
