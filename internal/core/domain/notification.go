package domain

// Email is an outgoing HTML message.
type Email struct {
	To      []string
	Cc      []string
	Subject string
	HTML    string
}
