package email

import (
	"bytes"
	"text/template"
)

type templateData struct {
	Name        string
	Code        string
	OrderNumber string
	Total       string
}

func render(tmpl *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var otpTemplate = template.Must(template.New("otp").Parse(`
<html><body>
<p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
<p>Your verification code is:</p>
<h2>{{.Code}}</h2>
<p>The code expires in 10 minutes. If you did not request it, ignore this email.</p>
</body></html>`))

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<html><body>
<p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
<p>Your account is verified. Happy shopping!</p>
</body></html>`))

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`
<html><body>
<p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
<p>Use this code to reset your password:</p>
<h2>{{.Code}}</h2>
<p>The code expires in 10 minutes. If you did not request a reset, ignore this email.</p>
</body></html>`))

var orderConfirmationTemplate = template.Must(template.New("order_confirmation").Parse(`
<html><body>
<p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
<p>We received your order <strong>{{.OrderNumber}}</strong> for a total of {{.Total}}.</p>
<p>We will let you know when it ships.</p>
</body></html>`))

var profileUpdatedTemplate = template.Must(template.New("profile_updated").Parse(`
<html><body>
<p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
<p>Your profile details were just changed. If this wasn't you, contact support immediately.</p>
</body></html>`))

var adminApprovedTemplate = template.Must(template.New("admin_approved").Parse(`
<html><body>
<p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
<p>Your account has been granted admin access.</p>
</body></html>`))

var adminRejectedTemplate = template.Must(template.New("admin_rejected").Parse(`
<html><body>
<p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
<p>Your admin access has been revoked.</p>
</body></html>`))
