package notify

import (
	"fmt"
	"log"

	"findabode-backend/internal/models"

	"gopkg.in/gomail.v2"
)

// Mailer sends marketplace notification emails. All sends are fire and
// forget: the engine never depends on delivery succeeding. A nil Mailer is
// safe to call and sends nothing.
type Mailer struct {
	dialer *gomail.Dialer
	sender string
}

// NewMailer creates a mailer with the given SMTP settings
func NewMailer(host string, port int, username, password, sender string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		sender: sender,
	}
}

// sendAsync dispatches a message in the background and logs failures
func (m *Mailer) sendAsync(to, subject, htmlBody string) {
	if m == nil {
		return
	}
	go func() {
		msg := gomail.NewMessage()
		msg.SetHeader("From", m.sender)
		msg.SetHeader("To", to)
		msg.SetHeader("Subject", subject)
		msg.SetBody("text/html", htmlBody)

		if err := m.dialer.DialAndSend(msg); err != nil {
			log.Printf("Mailer: Failed to send %q to %s: %v", subject, to, err)
		}
	}()
}

// SendWelcome greets a newly registered user
func (m *Mailer) SendWelcome(user *models.User) {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h1>Welcome to FindAbode!</h1>
			<p>Hi %s,</p>
			<p>Thank you for joining FindAbode. Your account is ready to use.</p>
		</div>`, user.Name)
	if user.NeedsApproval() {
		body = fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h1>Welcome to FindAbode!</h1>
			<p>Hi %s,</p>
			<p>Your %s account is pending admin approval.
			We will notify you by email once it is approved, usually within 24-48 hours.</p>
		</div>`, user.Name, user.ProviderType)
	}
	m.sendAsync(user.Email, "Welcome to FindAbode!", body)
}

// SendAccountApproved tells a provider their account was approved
func (m *Mailer) SendAccountApproved(user *models.User) {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h1>Your account is approved</h1>
			<p>Hi %s,</p>
			<p>Your %s account has been approved. You can start listing properties now.</p>
		</div>`, user.Name, user.ProviderType)
	m.sendAsync(user.Email, "Your FindAbode account is approved", body)
}

// SendAccountRejected tells a provider their account was rejected
func (m *Mailer) SendAccountRejected(user *models.User, reason string) {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h1>Account review result</h1>
			<p>Hi %s,</p>
			<p>Unfortunately your account was not approved: %s</p>
		</div>`, user.Name, reason)
	m.sendAsync(user.Email, "Your FindAbode account review", body)
}

// SendInquiry forwards an inquiry notification to the property owner
func (m *Mailer) SendInquiry(owner *models.User, property *models.Property, message string) {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h1>New inquiry for your property</h1>
			<p>Hi %s,</p>
			<p>A seeker is interested in <strong>%s</strong>:</p>
			<blockquote>%s</blockquote>
		</div>`, owner.Name, property.Title, message)
	m.sendAsync(owner.Email, "New inquiry on FindAbode", body)
}
