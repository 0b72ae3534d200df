package service

// Mailer delivers plain text notifications.
type Mailer interface {
	Enabled() bool
	Send(to, subject, body string) error
}
