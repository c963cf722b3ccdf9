package mailer

import (
	"fmt"
	"html"

	"lawpro-be/pkg/events"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendLawyerContact(req events.ContactRequest) error
}

// Sender is the part of gomail.Dialer the service needs.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	dialer      Sender
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	return NewEmailServiceWithSender(gomail.NewDialer(host, port, username, password), username, senderName)
}

func NewEmailServiceWithSender(sender Sender, senderEmail, senderName string) IEmailService {
	return &emailService{
		dialer:      sender,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

// BuildLawyerContactMessage renders the email a firm receives when a user
// asks to be contacted. Replies go straight to the user.
func BuildLawyerContactMessage(from, fromName string, req events.ContactRequest) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", from, fromName)
	m.SetHeader("To", req.FirmEmail)
	m.SetHeader("Reply-To", req.ClientEmail)
	m.SetHeader("Subject", fmt.Sprintf("New client inquiry from %s", req.ClientName))

	phone := req.ClientPhone
	if phone == "" {
		phone = "not provided"
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New inquiry for %s</h2>
			<p><strong>Name:</strong> %s</p>
			<p><strong>Email:</strong> %s</p>
			<p><strong>Phone:</strong> %s</p>
			<p><strong>Message:</strong></p>
			<p>%s</p>
			<p style="color: #888;">Sent through LawPro. Reply to this email to reach the client.</p>
		</div>
	`,
		html.EscapeString(req.FirmName),
		html.EscapeString(req.ClientName),
		html.EscapeString(req.ClientEmail),
		html.EscapeString(phone),
		html.EscapeString(req.Message),
	)
	m.SetBody("text/html", body)
	return m
}

func (s *emailService) SendLawyerContact(req events.ContactRequest) error {
	m := BuildLawyerContactMessage(s.senderEmail, s.senderName, req)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send contact request to %s: %v\n", req.FirmEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Contact request sent to %s\n", req.FirmEmail)
	return nil
}
