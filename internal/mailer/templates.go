package mailer

import (
	"fmt"
	"time"
)

// Promotion is the payload of a promotional email.
type Promotion struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	DiscountCode string `json:"discountCode"`
	ImageURL     string `json:"imageUrl"`
}

// WelcomeMessage builds the newsletter welcome email with the WELCOME10
// signup coupon.
func WelcomeMessage(to string) Message {
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; color: #333;">
  <h1>¡Bienvenido a Tech-Up!</h1>
  <p>Gracias por unirte a la élite tecnológica. A partir de ahora recibirás ofertas
  exclusivas, cupones de descuento y acceso anticipado a nuevos productos.</p>
  <p>Como agradecimiento, aquí está tu cupón de bienvenida:</p>
  <h2 style="text-align: center;">WELCOME10</h2>
  <p style="text-align: center;">10%% de descuento en tu primera compra</p>
  <p>Si no solicitaste esta suscripción (%s), puedes ignorar este correo.</p>
</div>`, to)
	return Message{To: to, Subject: "¡Bienvenido a Tech-Up Elite!", HTML: html}
}

// AdminSubscriptionNotice tells the admin a new subscriber signed up.
func AdminSubscriptionNotice(adminEmail, subscriberEmail string, at time.Time) Message {
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; color: #333;">
  <h2>Nueva Suscripción</h2>
  <p><strong>Email:</strong> %s</p>
  <p><strong>Fecha:</strong> %s</p>
  <p>El usuario ha recibido su correo de bienvenida con el cupón WELCOME10.</p>
</div>`, subscriberEmail, at.UTC().Format(time.RFC3339))
	return Message{To: adminEmail, Subject: "Nueva suscripción en Tech-Up", HTML: html}
}

// PromotionMessage builds a promotional email for one subscriber.
func PromotionMessage(to string, p Promotion) Message {
	img := ""
	if p.ImageURL != "" {
		img = fmt.Sprintf(`<img src="%s" alt="Oferta" style="max-width: 500px;" />`, p.ImageURL)
	}
	code := ""
	if p.DiscountCode != "" {
		code = fmt.Sprintf(`<h2 style="text-align: center;">%s</h2>
  <p style="text-align: center;">Usa este código al finalizar tu compra</p>`, p.DiscountCode)
	}
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; color: #333;">
  <h1>%s</h1>
  %s
  <p>%s</p>
  %s
  <p style="color: #777;">Esta oferta es exclusiva para suscriptores de Tech-Up Elite.</p>
</div>`, p.Title, img, p.Description, code)
	return Message{To: to, Subject: fmt.Sprintf("%s - Tech-Up", p.Title), HTML: html}
}

// OrderConfirmation builds the post-checkout email carrying the PDF
// receipt.
func OrderConfirmation(to, nombre string, orderID uint64, pdf []byte) Message {
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; color: #333;">
  <h1>¡Gracias por tu compra, %s!</h1>
  <p>Tu pedido <strong>#%d</strong> ha sido confirmado exitosamente.</p>
  <p>Adjunto encontrarás tu nota de compra en formato PDF.</p>
  <hr>
  <p>Atentamente,<br>El equipo de Tech-Up</p>
</div>`, nombre, orderID)
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Confirmación de Pedido #%d - Tech-Up", orderID),
		HTML:    html,
		Attachments: []Attachment{
			{Filename: fmt.Sprintf("Nota_Compra_%d.pdf", orderID), Content: pdf},
		},
	}
}

// ContactMessage forwards a storefront contact-form submission to the
// team inbox. Reply-To is not modelled; the sender's address is embedded
// in the body instead.
func ContactMessage(teamEmail, nombre, email, asunto, mensaje string) Message {
	if asunto == "" {
		asunto = "Consulta general"
	}
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; color: #333;">
  <h2>Nuevo mensaje de contacto</h2>
  <p><strong>Nombre:</strong> %s</p>
  <p><strong>Email:</strong> %s</p>
  <p><strong>Asunto:</strong> %s</p>
  <hr>
  <p>%s</p>
</div>`, nombre, email, asunto, mensaje)
	return Message{To: teamEmail, Subject: fmt.Sprintf("Contacto: %s", asunto), HTML: html}
}

// PasswordReset builds the reset-link email.
func PasswordReset(to, token string) Message {
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; color: #333;">
  <h1>Restablecer contraseña</h1>
  <p>Recibimos una solicitud para restablecer tu contraseña. Usa este token
  dentro de la próxima hora:</p>
  <h2 style="text-align: center;">%s</h2>
  <p>Si no solicitaste el cambio, ignora este correo.</p>
</div>`, token)
	return Message{To: to, Subject: "Restablecer contraseña - Tech-Up", HTML: html}
}
