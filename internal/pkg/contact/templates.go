package contact

import (
	"fmt"
	"html"
	"strings"
)

// RequestMeta carries the per-request metadata echoed into the notification
// mail for abuse tracing.
type RequestMeta struct {
	IP        string
	UserAgent string
}

func orNotProvided(v string) string {
	if strings.TrimSpace(v) == "" {
		return "Not provided"
	}
	return v
}

// NotificationText renders the plain-text body for the operator inbox.
func NotificationText(s Submission, meta RequestMeta) string {
	var b strings.Builder

	b.WriteString("New Contact Form Submission - TaskSher\n\n")
	b.WriteString("=====================================\n")
	b.WriteString("CONTACT DETAILS\n")
	b.WriteString("=====================================\n")
	fmt.Fprintf(&b, "Name: %s\n", s.Name)
	fmt.Fprintf(&b, "Email: %s\n", s.Email)
	fmt.Fprintf(&b, "Company: %s\n", orNotProvided(s.Company))
	fmt.Fprintf(&b, "Inquiry Type: %s\n\n", s.InquiryType)
	b.WriteString("=====================================\n")
	b.WriteString("MESSAGE\n")
	b.WriteString("=====================================\n")
	fmt.Fprintf(&b, "Subject: %s\n\n", s.Subject)
	fmt.Fprintf(&b, "%s\n\n", s.Message)
	b.WriteString("=====================================\n")
	b.WriteString("METADATA\n")
	b.WriteString("=====================================\n")
	fmt.Fprintf(&b, "Submitted: %s\n", s.Timestamp)
	fmt.Fprintf(&b, "IP Address: %s\n", meta.IP)
	fmt.Fprintf(&b, "User Agent: %s\n\n", meta.UserAgent)
	b.WriteString("This message was sent through the TaskSher contact form.\n")
	fmt.Fprintf(&b, "Please respond to: %s\n", s.Email)

	return b.String()
}

// NotificationHTML renders the HTML body for the operator inbox. All
// user-controlled fields are escaped here, not at intake.
func NotificationHTML(s Submission, meta RequestMeta) string {
	name := html.EscapeString(s.Name)
	email := html.EscapeString(s.Email)
	company := html.EscapeString(orNotProvided(s.Company))
	subject := html.EscapeString(s.Subject)
	message := strings.ReplaceAll(html.EscapeString(s.Message), "\n", "<br>")

	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: linear-gradient(135deg, #D4AF37, #B8941F); padding: 20px; text-align: center;">
    <h1 style="color: white; margin: 0;">🦁 TaskSher</h1>
    <p style="color: white; margin: 5px 0 0 0;">New Contact Form Submission</p>
  </div>
  <div style="padding: 30px; background: #f9f9f9;">
    <h2 style="color: #333; border-bottom: 2px solid #D4AF37; padding-bottom: 10px;">Contact Details</h2>
    <table style="width: 100%%; margin-bottom: 20px;">
      <tr><td style="padding: 5px 0; font-weight: bold;">Name:</td><td style="padding: 5px 0;">%s</td></tr>
      <tr><td style="padding: 5px 0; font-weight: bold;">Email:</td><td style="padding: 5px 0;"><a href="mailto:%s">%s</a></td></tr>
      <tr><td style="padding: 5px 0; font-weight: bold;">Company:</td><td style="padding: 5px 0;">%s</td></tr>
      <tr><td style="padding: 5px 0; font-weight: bold;">Inquiry Type:</td><td style="padding: 5px 0; text-transform: capitalize;">%s</td></tr>
    </table>
    <h2 style="color: #333; border-bottom: 2px solid #D4AF37; padding-bottom: 10px;">Message</h2>
    <div style="background: white; padding: 20px; border-radius: 5px; margin-bottom: 20px;">
      <h3 style="color: #D4AF37; margin-top: 0;">%s</h3>
      <p style="line-height: 1.6; color: #333;">%s</p>
    </div>
    <div style="background: #e9e9e9; padding: 15px; border-radius: 5px; font-size: 12px; color: #666;">
      <strong>Submission Details:</strong><br>
      Time: %s<br>
      IP: %s<br>
      User Agent: %s
    </div>
  </div>
  <div style="background: #333; color: white; padding: 20px; text-align: center;">
    <p style="margin: 0;">Reply directly to this email to respond to %s</p>
    <p style="margin: 5px 0 0 0; font-size: 12px; opacity: 0.8;">This message was sent through the TaskSher contact form</p>
  </div>
</div>`,
		name, email, email, company, html.EscapeString(s.InquiryType),
		subject, message,
		html.EscapeString(s.Timestamp), html.EscapeString(meta.IP), html.EscapeString(meta.UserAgent),
		name,
	)
}

// AutoReplyHTML renders the automated thank-you sent back to the submitter.
func AutoReplyHTML(s Submission, owner, inbox, clientBaseURL string) string {
	name := html.EscapeString(s.Name)
	subject := html.EscapeString(s.Subject)
	base := strings.TrimRight(clientBaseURL, "/")

	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: linear-gradient(135deg, #D4AF37, #B8941F); padding: 20px; text-align: center;">
    <h1 style="color: white; margin: 0;">🦁 TaskSher</h1>
    <p style="color: white; margin: 5px 0 0 0;">Thank you for reaching out!</p>
  </div>
  <div style="padding: 30px;">
    <h2 style="color: #333;">Hi %s,</h2>
    <p style="line-height: 1.6; color: #333;">
      Thank you for contacting TaskSher! I've received your message about "<strong>%s</strong>"
      and I'll get back to you within 24 hours.
    </p>
    <div style="background: #f0f8ff; border-left: 4px solid #D4AF37; padding: 15px; margin: 20px 0;">
      <p style="margin: 0; color: #333;">
        <strong>What happens next?</strong><br>
        • I'll review your inquiry personally<br>
        • You'll receive a detailed response within 2-4 hours<br>
        • For urgent matters, feel free to email me directly
      </p>
    </div>
    <p style="line-height: 1.6; color: #333;">
      In the meantime, feel free to explore our <a href="%s/guide" style="color: #D4AF37;">getting started guide</a>
      or check out our <a href="%s/#features" style="color: #D4AF37;">features</a>.
    </p>
    <p style="line-height: 1.6; color: #333;">
      Best regards,<br>
      <strong>%s</strong><br>
      Founder &amp; CEO, TaskSher<br>
      <a href="mailto:%s" style="color: #D4AF37;">%s</a>
    </p>
  </div>
  <div style="background: #f9f9f9; padding: 20px; text-align: center; border-top: 1px solid #eee;">
    <p style="margin: 0; font-size: 12px; color: #666;">
      This is an automated response. Please don't reply to this email.
    </p>
  </div>
</div>`,
		name, subject, base, base,
		html.EscapeString(owner), inbox, inbox,
	)
}
