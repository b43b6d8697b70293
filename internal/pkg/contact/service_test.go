package contact

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sweatandcode/tasksher/internal/pkg/mail"
)

type fakeSender struct {
	sent    []mail.Message
	failOn  int // 1-based index of the send that should fail; 0 = never
	failErr error
}

func (f *fakeSender) Send(msg mail.Message) error {
	if f.failOn > 0 && len(f.sent)+1 == f.failOn {
		return f.failErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

func testConfig() ServiceConfig {
	return ServiceConfig{
		Inbox:         "contactsweatandcode@gmail.com",
		Owner:         "Kartik Singh",
		ClientBaseURL: "https://tasksher.com",
	}
}

func TestDeliverSendsNotificationThenAutoReply(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(sender, testConfig())

	sub := validSubmission()
	err := svc.Deliver(sub, RequestMeta{IP: "203.0.113.7", UserAgent: "curl/8"})
	assert.NoError(t, err)
	assert.Len(t, sender.sent, 2)

	notification := sender.sent[0]
	assert.Equal(t, "contactsweatandcode@gmail.com", notification.To)
	assert.Equal(t, "a@b.com", notification.ReplyTo)
	assert.Equal(t, "[TaskSher Contact] Hi there", notification.Subject)
	assert.NotEmpty(t, notification.Text)
	assert.NotEmpty(t, notification.HTML)

	autoReply := sender.sent[1]
	assert.Equal(t, "a@b.com", autoReply.To)
	assert.Empty(t, autoReply.ReplyTo, "auto-reply is automated, no Reply-To")
	assert.Equal(t, "Thank you for contacting TaskSher!", autoReply.Subject)
	assert.Empty(t, autoReply.Text)
}

func TestDeliverStopsWhenNotificationFails(t *testing.T) {
	sender := &fakeSender{failOn: 1, failErr: errors.New("relay refused")}
	svc := NewService(sender, testConfig())

	err := svc.Deliver(validSubmission(), RequestMeta{})
	assert.Error(t, err)
	assert.Empty(t, sender.sent, "auto-reply must not be attempted after a failed notification")
}

func TestDeliverReportsAutoReplyFailure(t *testing.T) {
	sender := &fakeSender{failOn: 2, failErr: errors.New("mailbox full")}
	svc := NewService(sender, testConfig())

	err := svc.Deliver(validSubmission(), RequestMeta{})
	assert.Error(t, err)
	assert.Len(t, sender.sent, 1, "notification went out before the auto-reply failed")
}

func TestSiteInfo(t *testing.T) {
	info := SiteInfo("contactsweatandcode@gmail.com", "Kartik Singh")
	assert.Equal(t, "contactsweatandcode@gmail.com", info.Email)
	assert.Equal(t, "Kartik Singh", info.Owner)
	assert.Equal(t, "TaskSher", info.Company)
	assert.Equal(t, "2-4 hours", info.ResponseTime)
}
