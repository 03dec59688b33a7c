package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Text is recommended as a fallback when HTML is set. Template-based jobs
// specify Template and Data instead of literal bodies.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}
