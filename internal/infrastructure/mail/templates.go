package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

var (
	welcomeTmpl = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>¡Felicitaciones, {{.Name}}!</h2>
  {{if .Position}}<p>Superaste las entrevistas para el cargo <strong>{{.Position}}</strong> en el área <strong>{{.Department}}</strong>.</p>
  {{else}}<p>Superaste las entrevistas del proceso de selección.</p>{{end}}
  <p>Muy pronto iniciaremos tu proceso de onboarding en {{.Company}}.</p>
  <p><a href="{{.LoginURL}}" style="background:#2563eb;color:#fff;padding:10px 16px;border-radius:4px;text-decoration:none;">Ingresar al portal</a></p>
  <p style="font-size:12px;color:#6b7280;">{{.Signature}}</p>
</body>
</html>`))

	stepTmpl = template.Must(template.New("step").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>Paso completado</h2>
  <p>Completaste el paso <strong>{{.Step}}</strong> de tu onboarding en {{.Company}}.</p>
  <p>Puedes revisar tu avance en <a href="{{.LoginURL}}">{{.LoginURL}}</a>.</p>
  <p style="font-size:12px;color:#6b7280;">{{.Signature}}</p>
</body>
</html>`))
)

type welcomeData struct {
	Name       string
	Position   string
	Department string
	Company    string
	LoginURL   string
	Signature  string
}

type stepData struct {
	Step      string
	Company   string
	LoginURL  string
	Signature string
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func welcomeText(d welcomeData) string {
	if d.Position != "" {
		return fmt.Sprintf("¡Felicitaciones %s! Superaste las entrevistas para %s en %s. Muy pronto iniciaremos tu onboarding. Ingresa en %s",
			d.Name, d.Position, d.Department, d.LoginURL)
	}
	return fmt.Sprintf("¡Felicitaciones %s! Superaste las entrevistas. Muy pronto iniciaremos tu onboarding. Ingresa en %s",
		d.Name, d.LoginURL)
}

func stepText(d stepData) string {
	return fmt.Sprintf("Completaste el paso %q de tu onboarding. Revisa tu avance en %s", d.Step, d.LoginURL)
}
