package domain

import "time"

// Project is a client engagement work is billed against.
type Project struct {
	ProjectID     string     `json:"projectID"`
	Name          string     `json:"name"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	AttachmentRef *string    `json:"attachmentRef,omitempty"`
	CreatedBy     string     `json:"createdBy"`
	ManagedBy     string     `json:"managedBy"`
	CreatedAt     time.Time  `json:"createdAt"`
}
