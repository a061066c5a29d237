package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// Branding is shown in every outgoing message.
type Branding struct {
	AppName string
	// Year printed in the footer; zero means the current year.
	Year int
}

var recoveryTmpl = template.Must(template.New("recovery").Parse(`<!DOCTYPE html>
<html>
<body>
<h2>{{.AppName}}: password reset</h2>
<p>Hello {{.FirstName}},</p>
<p>We received a request to reset the password for your account.</p>
<p>Your recovery code:</p>
<p><strong>{{.Code}}</strong></p>
<p>The code is valid for {{.Minutes}} minutes and can be used once.</p>
<p>If you did not request this change, you can ignore this email.</p>
<p>&copy; {{.Year}} {{.AppName}}</p>
</body>
</html>
`))

type recoveryView struct {
	AppName   string
	Year      int
	FirstName string
	Code      string
	Minutes   int
}

func (b Branding) year(now time.Time) int {
	if b.Year != 0 {
		return b.Year
	}
	return now.Year()
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
