package mail

import (
	"strings"
	"testing"

	"bidding/internal/app/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetBody(t *testing.T) {
	body, err := resetBody("482915")
	require.NoError(t, err)

	assert.Contains(t, body, "482915")
	assert.Contains(t, body, "24 Hours")
	assert.Contains(t, body, "Password Reset OTP")
}

func TestBuildMessage(t *testing.T) {
	cfg := config.SMTPConfig{
		From:     "noreply@bidding.ru",
		FromName: "Bidding App",
	}

	msg := buildMessage(cfg, "ivan@test.ru", resetSubject, "<p>тело</p>")

	assert.True(t, strings.HasPrefix(msg, "From: Bidding App <noreply@bidding.ru>\r\n"))
	assert.Contains(t, msg, "To: ivan@test.ru\r\n")
	assert.Contains(t, msg, "Subject: "+resetSubject+"\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=\"UTF-8\"\r\n")
	// пустая строка отделяет заголовки от тела
	assert.Contains(t, msg, "\r\n\r\n<p>тело</p>")
}
