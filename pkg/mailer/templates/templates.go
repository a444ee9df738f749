package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeTpl = template.Must(template.New("welcome").Parse(`
<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>Welcome to {{.AppName}}, {{.Name}}!</h2>
    <p>Your account <strong>{{.Username}}</strong> was created successfully.</p>
    <p>You can sign in at <a href="{{.LoginURL}}">{{.LoginURL}}</a>.</p>
    <p style="color:#888;font-size:12px;">If you did not create this account, please contact your administrator.</p>
  </body>
</html>`))

var loginNotificationTpl = template.Must(template.New("login_notification").Parse(`
<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>New login to your {{.AppName}} account</h2>
    <p>Hi {{.Name}}, your account <strong>{{.Username}}</strong> just signed in.</p>
    <ul>
      {{if .Time}}<li>Time: {{.Time}}</li>{{end}}
      {{if .IP}}<li>IP address: {{.IP}}</li>{{end}}
      {{if .Location}}<li>Location: {{.Location}}</li>{{end}}
      {{if .UserAgent}}<li>Device: {{.UserAgent}}</li>{{end}}
    </ul>
    <p style="color:#888;font-size:12px;">If this wasn't you, change your password immediately.</p>
  </body>
</html>`))

// Render produces subject and HTML body for a named template.
func Render(name string, data map[string]any) (subject, html string, err error) {
	var tpl *template.Template
	switch name {
	case "welcome":
		tpl = welcomeTpl
		subject = "Welcome! Your account was created"
	case "login_notification":
		tpl = loginNotificationTpl
		subject = "New login to your account"
	default:
		return "", "", fmt.Errorf("unknown email template %q", name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
