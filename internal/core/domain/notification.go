package domain

import "time"

// MailKind identifies the template the external mailer renders.
type MailKind string

const (
	MailSubscriptionReminder MailKind = "SUBSCRIPTION_REMINDER"
	MailMonthlyReport        MailKind = "MONTHLY_REPORT"
)

// MailJob is one message handed to the mail outbox.
type MailJob struct {
	Kind           MailKind  `json:"kind"`
	OrganizationID string    `json:"organizationID"`
	Recipients     []string  `json:"recipients"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	ReferenceID    string    `json:"referenceID"` // subscription or report id
	CreatedAt      time.Time `json:"createdAt"`
}
