package mailer

// Service envia e-mails transacionais (OTP, redefinição de senha).
type Service interface {
	SendRaw(to, subject, body string) error
	SendTemplate(to, subject, tpl string, data interface{}) error
}

// OTPTemplate é o corpo HTML do e-mail com o código de verificação.
const OTPTemplate = `<h1>Código de verificação</h1>
<p>Seu código é: <strong>{{.Code}}</strong></p>
<p>Ele expira em {{.TTLMinutes}} minutos.</p>`
