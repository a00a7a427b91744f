package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedAt/UpdatedAt are assigned by the document store on create/update.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"` // actor label from the authenticated request
	UpdatedAt time.Time `json:"updatedAt"`
}

// DateLayout is the calendar-date format used for business dates
// (order_date, due_date, valid_until, delivery_date) in persisted records.
const DateLayout = "2006-01-02"
