package models

// CustomerStatus is the lifecycle tag of a customer record
type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
	CustomerBlocked  CustomerStatus = "blocked"
)

// IsValid reports whether s is one of the known customer statuses
func (s CustomerStatus) IsValid() bool {
	switch s {
	case CustomerActive, CustomerInactive, CustomerBlocked:
		return true
	}
	return false
}

// JobStatus is the lifecycle tag of a job
type JobStatus string

const (
	JobScheduled   JobStatus = "scheduled"
	JobInProgress  JobStatus = "in-progress"
	JobCompleted   JobStatus = "completed"
	JobCancelled   JobStatus = "cancelled"
	JobRescheduled JobStatus = "rescheduled"
)

func (s JobStatus) IsValid() bool {
	switch s {
	case JobScheduled, JobInProgress, JobCompleted, JobCancelled, JobRescheduled:
		return true
	}
	return false
}

// JobType classifies the kind of site a job is performed at
type JobType string

const (
	JobTypeResidential    JobType = "residential"
	JobTypeCommercial     JobType = "commercial"
	JobTypeConstruction   JobType = "construction"
	JobTypeEstateCleanout JobType = "estate-cleanout"
)

func (t JobType) IsValid() bool {
	switch t {
	case JobTypeResidential, JobTypeCommercial, JobTypeConstruction, JobTypeEstateCleanout:
		return true
	}
	return false
}

// JobPriority orders jobs for dispatch
type JobPriority string

const (
	PriorityLow    JobPriority = "low"
	PriorityNormal JobPriority = "normal"
	PriorityHigh   JobPriority = "high"
	PriorityUrgent JobPriority = "urgent"
)

func (p JobPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// QuoteStatus is the lifecycle tag of a quote
type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "draft"
	QuoteSent     QuoteStatus = "sent"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteRejected QuoteStatus = "rejected"
	QuoteExpired  QuoteStatus = "expired"
)

func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteDraft, QuoteSent, QuoteAccepted, QuoteRejected, QuoteExpired:
		return true
	}
	return false
}

// InvoiceStatus is derived from an invoice's balance and due date, except for cancelled
type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "pending"
	InvoicePartial   InvoiceStatus = "partial"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoicePending, InvoicePartial, InvoicePaid, InvoiceOverdue, InvoiceCancelled:
		return true
	}
	return false
}

// PaymentMethod records how a payment was tendered
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCheck        PaymentMethod = "check"
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentDebitCard    PaymentMethod = "debit_card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentOther        PaymentMethod = "other"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCheck, PaymentCreditCard, PaymentDebitCard, PaymentBankTransfer, PaymentOther:
		return true
	}
	return false
}

// RouteStatus is the lifecycle tag of a dispatch route
type RouteStatus string

const (
	RoutePlanned    RouteStatus = "planned"
	RouteInProgress RouteStatus = "in-progress"
	RouteCompleted  RouteStatus = "completed"
	RouteCancelled  RouteStatus = "cancelled"
)

func (s RouteStatus) IsValid() bool {
	switch s {
	case RoutePlanned, RouteInProgress, RouteCompleted, RouteCancelled:
		return true
	}
	return false
}

// PhotoType describes when a job photo was taken
type PhotoType string

const (
	PhotoBefore  PhotoType = "before"
	PhotoDuring  PhotoType = "during"
	PhotoAfter   PhotoType = "after"
	PhotoDamage  PhotoType = "damage"
	PhotoGeneral PhotoType = "general"
)

func (t PhotoType) IsValid() bool {
	switch t {
	case PhotoBefore, PhotoDuring, PhotoAfter, PhotoDamage, PhotoGeneral:
		return true
	}
	return false
}

// UserRole grants a user profile its permissions
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleStaff      UserRole = "staff"
	RoleAccountant UserRole = "accountant"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleAccountant:
		return true
	}
	return false
}
