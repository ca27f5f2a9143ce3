package services

import (
	"fmt"
	"strconv"

	"tuition-payments/config"
	"tuition-payments/logger"
	"tuition-payments/models"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends receipt emails directly over SMTP.
type SMTPMailer struct{}

// SendPaymentReceipt emails the student a receipt once their payment is
// marked Paid.
func (SMTPMailer) SendPaymentReceipt(rec *models.PaymentRecord) error {
	subject := fmt.Sprintf("Payment Received - Transaction %s", rec.TransactionID)
	body := paymentReceiptBody(rec)
	return sendEmail(rec.StudentEmail, subject, body)
}

func paymentReceiptBody(rec *models.PaymentRecord) string {
	semester := rec.Semester
	if semester == "" {
		semester = "-"
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #4CAF50; color: white; padding: 20px; text-align: center; border-radius: 5px; }
        .content { background-color: #f9f9f9; padding: 20px; margin-top: 20px; border-radius: 5px; }
        .payment-info { background-color: #e8f5e9; padding: 15px; margin: 15px 0; border-left: 4px solid #4CAF50; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>Payment Received</h2></div>
        <div class="content">
            <p>Dear <strong>%s</strong>,</p>
            <p>We have received your tuition payment. Thank you!</p>
            <div class="payment-info">
                <p><strong>Transaction ID:</strong> %s</p>
                <p><strong>Semester:</strong> %s</p>
                <p><strong>Amount:</strong> %.2f %s</p>
            </div>
            <p>Keep this email as your proof of payment.</p>
            <p>Best regards,<br/>University Accounts Office</p>
        </div>
    </div>
</body>
</html>
	`, rec.StudentName, rec.TransactionID, semester, rec.Amount, config.AppConfig.Currency)
}

// sendEmail delivers a message over SMTP using the configured credentials.
func sendEmail(to, subject, body string) error {
	cfg := config.AppConfig

	from := cfg.EmailFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	if from == "" {
		return fmt.Errorf("email sender not configured (set EMAIL_FROM or SMTP_USER)")
	}

	if cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		return fmt.Errorf("smtp credentials not configured (set SMTP_USER and SMTP_PASS)")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	port := 587
	if v, err := strconv.Atoi(cfg.SMTPPort); err == nil {
		port = v
	}

	d := gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUser, cfg.SMTPPass)

	if err := d.DialAndSend(m); err != nil {
		logger.Error("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("Email sent to: %s", to)
	return nil
}
