package mailer

import (
	"bytes"
	"fmt"
	"text/template"
)

const TemplateWelcome = "welcome"

var welcomeText = template.Must(template.New(TemplateWelcome).Parse(
	`Hi {{or .FirstName "there"}},

Welcome to CityRide! Your account is ready.

Open the app to book your first ride. Your profile, loyalty points and
booking history all live under the Profile tab.

Need help? Just reply to this email.

— The CityRide team
`))

// Render produces subject and text body for a named template.
func Render(name string, data map[string]any) (subject, text string, err error) {
	switch name {
	case TemplateWelcome:
		var buf bytes.Buffer
		if err := welcomeText.Execute(&buf, data); err != nil {
			return "", "", err
		}
		return "Welcome to CityRide", buf.String(), nil
	default:
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
}
