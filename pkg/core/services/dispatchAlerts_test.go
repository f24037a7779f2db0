package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/altamoda/agencyboard/pkg/core/alerts"
	"github.com/altamoda/agencyboard/pkg/core/model"
)

type fakeEmailSender struct {
	sent []string // "recipient|subject"
	err  error
}

func (f *fakeEmailSender) SendEmail(to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to+"|"+subject)
	return nil
}

type fakeSlackSender struct {
	posted []string
	err    error
}

func (f *fakeSlackSender) PostMessage(ctx context.Context, webhookURL, text string) error {
	if f.err != nil {
		return f.err
	}
	f.posted = append(f.posted, webhookURL)
	return nil
}

func triggerPair() alerts.Trigger {
	return alerts.Trigger{
		Rule: model.AlertRule{
			ID:              "rule-1",
			Name:            "option check-in",
			Enabled:         true,
			Trigger:         model.AlertTrigger{EventType: model.EventOption, Timing: model.TimingBefore, Value: 7, Unit: model.UnitDays},
			Channels:        []model.AlertChannel{model.ChannelEmail, model.ChannelSlack},
			EmailRecipients: "booker@agency.test, director@agency.test",
			SlackWebhookURL: "https://hooks.slack.test/T123",
		},
		Event: model.CalendarEvent{
			ID:         "ev-1",
			ModelID:    "model-1",
			EventType:  model.EventOption,
			StartDate:  "2025-06-12",
			Title:      "Editorial hold",
			ClientName: "Vogue",
		},
	}
}

func TestDispatchAlerts_RecordsAndDelivers(t *testing.T) {
	mock := &mockStore{
		profiles: []model.Profile{
			{ID: "model-1", FirstName: "Maya", LastName: "Lund"},
		},
	}
	email := &fakeEmailSender{}
	slack := &fakeSlackSender{}

	result, err := DispatchAlerts(context.Background(), mock, email, slack, zap.NewNop(), []alerts.Trigger{triggerPair()})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Recorded)
	assert.Equal(t, 3, result.Sent) // Two email recipients plus one slack post
	assert.Empty(t, result.Failures)

	require.Len(t, mock.notifications, 1)
	notification := mock.notifications[0]
	assert.Equal(t, "rule-1", notification.RuleID)
	assert.Equal(t, "ev-1", notification.EventID)
	assert.Contains(t, notification.Message, "Editorial hold for Maya Lund is in 7 days")
	assert.Contains(t, notification.Message, "client Vogue")

	assert.Equal(t, []string{
		"booker@agency.test|[Agency Board] option check-in",
		"director@agency.test|[Agency Board] option check-in",
	}, email.sent)
	assert.Equal(t, []string{"https://hooks.slack.test/T123"}, slack.posted)
}

func TestDispatchAlerts_UnknownModelFallsBackToID(t *testing.T) {
	mock := &mockStore{}

	result, err := DispatchAlerts(context.Background(), mock, nil, nil, zap.NewNop(), []alerts.Trigger{triggerPair()})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Recorded)
	assert.Zero(t, result.Sent) // Nil senders record without delivering
	require.Len(t, mock.notifications, 1)
	assert.Contains(t, mock.notifications[0].Message, "for model-1")
}

func TestDispatchAlerts_DeliveryFailuresAreCollected(t *testing.T) {
	mock := &mockStore{
		profiles: []model.Profile{{ID: "model-1", FirstName: "Maya"}},
	}
	email := &fakeEmailSender{err: fmt.Errorf("smtp timeout")}
	slack := &fakeSlackSender{}

	result, err := DispatchAlerts(context.Background(), mock, email, slack, zap.NewNop(), []alerts.Trigger{triggerPair()})
	require.NoError(t, err)

	// The notification is still recorded and slack still goes out
	assert.Equal(t, 1, result.Recorded)
	assert.Equal(t, 1, result.Sent)
	require.Len(t, result.Failures, 2) // One per email recipient
	assert.Equal(t, model.ChannelEmail, result.Failures[0].Channel)
}

func TestDispatchAlerts_RecordFailureIsFatal(t *testing.T) {
	mock := &mockStore{notifyErr: fmt.Errorf("disk full")}

	_, err := DispatchAlerts(context.Background(), mock, nil, nil, zap.NewNop(), []alerts.Trigger{triggerPair()})
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk full")
}

func TestDispatchAlerts_NoTriggers(t *testing.T) {
	mock := &mockStore{}

	result, err := DispatchAlerts(context.Background(), mock, nil, nil, zap.NewNop(), nil)
	require.NoError(t, err)
	assert.Zero(t, result.Recorded)
	assert.Zero(t, result.Sent)
}

func TestSplitRecipients(t *testing.T) {
	assert.Equal(t, []string{"a@x.test", "b@x.test"}, splitRecipients("a@x.test, b@x.test"))
	assert.Equal(t, []string{"a@x.test"}, splitRecipients(" a@x.test ,, "))
	assert.Nil(t, splitRecipients(""))
}
