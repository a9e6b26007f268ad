package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/joaquinrv/tienda-platform/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Service interface {
	SendReceipt(ctx context.Context, to string, sale *models.Sale, lines []models.SaleLine) error
}

type sendGridService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendGridService(apiKey, fromEmail, fromName string) Service {
	return &sendGridService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendReceipt mails a purchase summary for a committed sale.
func (s *sendGridService) SendReceipt(ctx context.Context, to string, sale *models.Sale, lines []models.SaleLine) error {

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(recipient)
	personalization.Subject = fmt.Sprintf("Your receipt for order #%d", sale.ID)
	message.AddPersonalizations(personalization)

	var plain strings.Builder

	fmt.Fprintf(&plain, "Thank you for your purchase.\n\nOrder #%d\n\n", sale.ID)
	for _, line := range lines {
		fmt.Fprintf(&plain, "%dx %s @ %.2f\n", line.Quantity, line.Name, line.Price)
	}
	fmt.Fprintf(&plain, "\nTotal: %.2f\n", sale.Total)

	message.AddContent(mail.NewContent("text/plain", plain.String()))

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}
