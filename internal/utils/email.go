package utils

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/wneessen/go-mail"

	"velora_storefront/internal/models"
)

// SendWishlistEmail mails the wishlist to the given address.
func SendWishlistEmail(to string, items []models.WishlistItem) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@velora.shop"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("A wishlist from Velora")
	msg.SetBodyString(mail.TypeTextHTML, generateWishlistHTML(items))

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending wishlist email to", to)
	return client.DialAndSend(msg)
}

func generateWishlistHTML(items []models.WishlistItem) string {
	var rows strings.Builder
	for _, item := range items {
		options := make([]string, 0, len(item.SelectedOptions))
		for _, opt := range item.SelectedOptions {
			options = append(options, opt.Name+": "+opt.Value)
		}
		rows.WriteString(fmt.Sprintf(`
        <tr>
            <td style="padding: 12px; border-bottom: 1px solid #eee;">
                <img src="%s" alt="" width="64" style="border-radius: 8px;">
            </td>
            <td style="padding: 12px; border-bottom: 1px solid #eee;">
                <strong>%s</strong><br>
                <span style="color: #777;">%s</span>
            </td>
            <td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%.2f €</td>
        </tr>`, item.Image, item.Name, strings.Join(options, " · "), item.Price))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"></head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f5f5f5;">
    <table role="presentation" style="max-width: 600px; margin: 24px auto; background-color: #ffffff; border-radius: 12px; width: 100%%; border-collapse: collapse;">
        <tr><td style="padding: 24px;"><h2 style="margin: 0;">Someone shared a wishlist with you 🎁</h2></td></tr>
        %s
    </table>
</body>
</html>`, rows.String())
}
