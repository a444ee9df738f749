package mailer

// Template names the auth flows enqueue.
const (
	TemplateWelcome           = "welcome"
	TemplateLoginNotification = "login_notification"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Template selects the renderer in the email worker; Data feeds it.
type EmailJob struct {
	To       string         `json:"to"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data,omitempty"`
}
