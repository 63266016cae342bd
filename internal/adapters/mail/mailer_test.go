package mail

import (
	"context"
	"testing"

	"hr-selfservice/internal/config"
	"hr-selfservice/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FallsBackToLogMailer(t *testing.T) {
	m := New(config.MailConfig{})
	_, ok := m.(*LogMailer)
	assert.True(t, ok)

	m = New(config.MailConfig{Host: "smtp.example.com", Port: 587, User: "hr@example.com"})
	_, ok = m.(*SMTPMailer)
	assert.True(t, ok)
}

func TestLogMailer_RecordsMessages(t *testing.T) {
	m := NewLogMailer()
	require.NoError(t, m.Send(context.Background(), domain.Email{To: []string{"a@example.com"}, Subject: "Hi"}))

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Hi", sent[0].Subject)
}

func TestSMTPMailer_RejectsBadAddresses(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{Host: "smtp.example.com", Port: 587, User: "hr@example.com"})

	err := m.Send(context.Background(), domain.Email{Subject: "x"})
	assert.Error(t, err)

	err = m.Send(context.Background(), domain.Email{To: []string{"not an address"}, Subject: "x"})
	assert.ErrorContains(t, err, "invalid recipient")
}
