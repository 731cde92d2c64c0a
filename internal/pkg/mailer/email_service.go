package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendPurchaseReceipt(toEmail, itemName, invoiceNumber, displayTotal string) error
	SendRefundDecision(toEmail, itemName, status, adminNotes string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendPurchaseReceipt(toEmail, itemName, invoiceNumber, displayTotal string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Payment received - %s", invoiceNumber))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Thank you for your purchase!</h2>
			<p>Your payment for <strong>%s</strong> has been received.</p>
			<p>Invoice: <strong>%s</strong></p>
			<p>Amount paid: <strong>%s</strong></p>
			<p>You now have full access. Happy learning!</p>
		</div>
	`, itemName, invoiceNumber, displayTotal)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send receipt to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Receipt sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendRefundDecision(toEmail, itemName, status, adminNotes string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Update on your refund request")

	notes := ""
	if adminNotes != "" {
		notes = fmt.Sprintf("<p>Notes: %s</p>", adminNotes)
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Refund request update</h2>
			<p>Your refund request for <strong>%s</strong> is now: <strong>%s</strong>.</p>
			%s
			<p>If you have questions, just reply to this email.</p>
		</div>
	`, itemName, status, notes)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send refund decision to %s: %v\n", toEmail, err)
		return err
	}

	return nil
}
