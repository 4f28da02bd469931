package mail

import (
	"bytes"
	"html/template"
	"time"
)

// ResetEmailSubject is the subject line of the forgot-password message.
const ResetEmailSubject = "Reset your password"

var resetEmailTmpl = template.Must(template.New("reset").Parse(`<html>
<body>
	<p>Hi {{.Name}},</p>
	<p>A password reset was requested for your account. Follow the link below
	to choose a new password. The link is valid until {{.Expires}}.</p>
	<p><a href="{{.ResetURL}}">Reset password</a></p>
	<p>If you did not request this, you can ignore this message.</p>
</body>
</html>`))

// RenderResetEmail renders the forgot-password message body. The reset URL
// carries the account id and the plaintext single-use secret; this render is
// the only place the secret ever leaves the service.
func RenderResetEmail(name, resetURL string, expires time.Time) (string, error) {
	var buf bytes.Buffer
	err := resetEmailTmpl.Execute(&buf, struct {
		Name     string
		ResetURL string
		Expires  string
	}{
		Name:     name,
		ResetURL: resetURL,
		Expires:  expires.Format(time.RFC1123),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
