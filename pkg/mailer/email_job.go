package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// When Template is set, the worker renders it with Data; otherwise Text/HTML
// are sent as-is.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "login_token"
	Data     map[string]any `json:"data,omitempty"`
}

// Template names known to the worker.
const (
	TemplateLoginToken = "login_token"
)
