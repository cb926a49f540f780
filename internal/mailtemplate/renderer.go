// Package mailtemplate renders the order-confirmation email body. Rendering
// is a pure function of the OrderConfirmation view model: no I/O, no clock,
// identical input produces identical output.
package mailtemplate

import (
	"fmt"
	"html"
	"strings"

	"github.com/ahmedkucuk23/balance-notifications/internal/domain"
)

// Styles are inlined because many email clients strip or ignore <head> CSS.
const (
	bodyStyle    = "margin:0;padding:0;background-color:#f4f4f5;font-family:Arial,Helvetica,sans-serif;color:#1f2933;"
	cardStyle    = "max-width:560px;margin:24px auto;background-color:#ffffff;border-radius:8px;overflow:hidden;"
	headerStyle  = "background-color:#0f172a;color:#ffffff;padding:24px 32px;"
	sectionStyle = "padding:24px 32px;"
	labelStyle   = "padding:8px 0;color:#64748b;font-size:14px;"
	valueStyle   = "padding:8px 0;text-align:right;font-size:14px;"
	totalStyle   = "padding:12px 0;border-top:2px solid #0f172a;font-size:16px;font-weight:bold;"
	footerStyle  = "padding:16px 32px;background-color:#f8fafc;color:#94a3b8;font-size:12px;text-align:center;"
)

// RenderOrderConfirmation produces a complete, self-contained HTML document
// for one confirmed ticket purchase. Amounts are shown with exactly two
// decimals in the order's own currency; the discount row appears only when a
// discount was actually applied.
func RenderOrderConfirmation(c domain.OrderConfirmation) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html lang="bs">` + "\n")
	b.WriteString("<head>\n")
	b.WriteString(`<meta charset="utf-8">` + "\n")
	b.WriteString("<title>Potvrda narudžbe " + html.EscapeString(c.OrderNumber) + "</title>\n")
	b.WriteString("</head>\n")
	b.WriteString(`<body style="` + bodyStyle + `">` + "\n")

	b.WriteString(`<div style="` + cardStyle + `">` + "\n")

	b.WriteString(`<div style="` + headerStyle + `">` + "\n")
	b.WriteString(`<h1 style="margin:0;font-size:20px;">Balance Conference</h1>` + "\n")
	b.WriteString(`<p style="margin:4px 0 0;font-size:14px;color:#cbd5e1;">Potvrda narudžbe</p>` + "\n")
	b.WriteString("</div>\n")

	b.WriteString(`<div style="` + sectionStyle + `">` + "\n")
	b.WriteString("<p>Poštovani/a <strong>" + html.EscapeString(c.BuyerName) + "</strong>,</p>\n")
	b.WriteString("<p>Vaša uplata je uspješno primljena. Hvala što ste uz nas!</p>\n")
	b.WriteString(`<p style="color:#64748b;font-size:14px;">Broj narudžbe: <strong>` +
		html.EscapeString(c.OrderNumber) + "</strong><br>Datum konferencije: " +
		html.EscapeString(c.EventDate) + "</p>\n")
	b.WriteString("</div>\n")

	b.WriteString(`<div style="` + sectionStyle + `">` + "\n")
	b.WriteString(`<table width="100%" cellpadding="0" cellspacing="0" role="presentation">` + "\n")

	ticket := html.EscapeString(c.TicketName)
	if c.TicketDescription != "" {
		ticket += `<br><span style="color:#94a3b8;font-size:12px;">` +
			html.EscapeString(c.TicketDescription) + "</span>"
	}
	row(&b, labelStyle, valueStyle, ticket, fmt.Sprintf("%dx", c.Quantity))
	row(&b, labelStyle, valueStyle, "Iznos", amount(c.Subtotal, c.Currency))
	if c.Discount > 0 {
		row(&b, labelStyle, valueStyle, "Popust", "-"+amount(c.Discount, c.Currency))
	}
	row(&b, labelStyle, valueStyle, "PDV", amount(c.Tax, c.Currency))
	row(&b, totalStyle, totalStyle+"text-align:right;", "Ukupno", amount(c.TotalPrice, c.Currency))

	b.WriteString("</table>\n")
	b.WriteString("</div>\n")

	b.WriteString(`<div style="` + footerStyle + `">` + "\n")
	b.WriteString("<p>Ulaznice će Vam biti uručene na ulazu uz ovaj broj narudžbe.</p>\n")
	b.WriteString("<p>Balance Conference &middot; Sarajevo</p>\n")
	b.WriteString("</div>\n")

	b.WriteString("</div>\n")
	b.WriteString("</body>\n</html>\n")

	return b.String()
}

func row(b *strings.Builder, leftStyle, rightStyle, label, value string) {
	b.WriteString(`<tr><td style="` + leftStyle + `">` + label +
		`</td><td style="` + rightStyle + `">` + value + "</td></tr>\n")
}

// amount formats a monetary value for display. Two decimals always, using
// the value's own precision; zero-decimal currencies are not special-cased.
func amount(v float64, currency string) string {
	return fmt.Sprintf("%.2f %s", v, html.EscapeString(currency))
}
