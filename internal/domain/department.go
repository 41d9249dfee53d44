package domain

import "time"

// Department is an organizational unit owning the ticket categories
// offered when filing into it. Category order is display order.
type Department struct {
	ID          string
	Name        string
	Description string
	Categories  []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
