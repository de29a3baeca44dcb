package services

import (
	"compras-app/config"
	"fmt"
	"io"
	"log"

	"gopkg.in/gomail.v2"
)

// MailerService sends the generated purchase order PDF to the supplier.
type MailerService struct{}

func NewMailerService() *MailerService {
	return &MailerService{}
}

func (s *MailerService) SendPurchaseOrder(toEmails []string, orderNo string, pdf []byte) error {
	subject := "📦 Ordem de Compra OC " + orderNo
	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>Ordem de Compra emitida</h3>
				<p>OC: <strong>%s</strong></p>
				<p>Segue em anexo a ordem de compra. Este e um e-mail automatico, favor nao responder.</p>
			</body>
		</html>
	`, orderNo)

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPFrom)
	msg.SetHeader("To", toEmails...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	msg.Attach(PurchaseOrderFilename(orderNo), gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		log.Println("Failed to send purchase order email:", err)
		return err
	}

	log.Println("Purchase order email sent to:", toEmails)
	return nil
}
