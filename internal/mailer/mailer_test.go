package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tech-up/commerce-api/internal/config"
)

func TestSendWithoutCredentialsShortCircuits(t *testing.T) {
	s := New(config.MailConfig{Host: "smtp.example.com", Port: 465}, zerolog.Nop())
	err := s.Send(context.Background(), Message{To: "a@b.com", Subject: "x", HTML: "y"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestSendHonoursCancelledContext(t *testing.T) {
	s := New(config.MailConfig{User: "u", Pass: "p", Host: "smtp.example.com", Port: 465}, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Send(ctx, Message{To: "a@b.com"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestAdminAddressFallsBackToAccount(t *testing.T) {
	s := New(config.MailConfig{User: "store@techup.mx", Pass: "p"}, zerolog.Nop())
	if got := s.AdminAddress(); got != "store@techup.mx" {
		t.Errorf("AdminAddress() = %q", got)
	}
	s = New(config.MailConfig{User: "store@techup.mx", Pass: "p", AdminEmail: "admin@techup.mx"}, zerolog.Nop())
	if got := s.AdminAddress(); got != "admin@techup.mx" {
		t.Errorf("AdminAddress() = %q", got)
	}
}

func TestOrderConfirmationCarriesAttachment(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	m := OrderConfirmation("ana@example.com", "Ana", 7, pdf)
	if len(m.Attachments) != 1 {
		t.Fatalf("attachments = %d, want 1", len(m.Attachments))
	}
	if m.Attachments[0].Filename != "Nota_Compra_7.pdf" {
		t.Errorf("filename = %q", m.Attachments[0].Filename)
	}
	if !strings.Contains(m.HTML, "Ana") || !strings.Contains(m.Subject, "#7") {
		t.Errorf("message not personalised: %q / %q", m.Subject, m.HTML)
	}
}

func TestPromotionMessageOmitsOptionalBlocks(t *testing.T) {
	m := PromotionMessage("a@b.com", Promotion{Title: "Hot Sale", Description: "Todo en oferta"})
	if strings.Contains(m.HTML, "<img") {
		t.Error("image block present without ImageURL")
	}
	if strings.Contains(m.HTML, "finalizar tu compra") {
		t.Error("discount block present without DiscountCode")
	}
	m = PromotionMessage("a@b.com", Promotion{Title: "T", Description: "D", DiscountCode: "TECH10", ImageURL: "http://x/y.png"})
	if !strings.Contains(m.HTML, "TECH10") || !strings.Contains(m.HTML, "<img") {
		t.Error("optional blocks missing when provided")
	}
}

func TestAdminSubscriptionNoticeMentionsSubscriber(t *testing.T) {
	m := AdminSubscriptionNotice("admin@techup.mx", "nuevo@example.com", time.Now())
	if m.To != "admin@techup.mx" || !strings.Contains(m.HTML, "nuevo@example.com") {
		t.Errorf("unexpected notice: %+v", m)
	}
}
