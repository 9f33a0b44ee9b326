package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payhr/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRecipient(t *testing.T) {
	assert.Equal(t, "user.name@example.com", NormalizeRecipient("  User.Name@Example.COM "))
}

func TestValidRecipient(t *testing.T) {
	valid := []string{"a@b.co", "user.name@example.com", "x+tag@sub.domain.io"}
	for _, v := range valid {
		assert.True(t, ValidRecipient(v), v)
	}

	invalid := []string{"", "not-an-email", "a@b", "a b@c.de", "@example.com", "user@"}
	for _, v := range invalid {
		assert.False(t, ValidRecipient(v), v)
	}
}

func TestSend_InvalidRecipientNoNetworkCall(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	d := NewDispatcher(func() Config {
		return Config{APIKey: "key", Sender: "hr@corp.co", Endpoint: server.URL}
	})

	_, err := d.Send(context.Background(), "not-an-email", "subject", "<p>hi</p>", nil)
	assert.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidInput, apperror.ToHTTP(err).Code)
	assert.Zero(t, calls)
}

func TestSend_MissingAPIKeyConfigurationErrorNoNetworkCall(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	d := NewDispatcher(func() Config {
		return Config{APIKey: "", Sender: "hr@corp.co", Endpoint: server.URL}
	})

	_, err := d.Send(context.Background(), "user@example.com", "subject", "<p>hi</p>", nil)
	assert.Error(t, err)

	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, apperror.CodeConfigurationError, httpErr.Code)
	assert.Contains(t, httpErr.Message, "EMAIL_API_KEY")
	assert.Zero(t, calls)
}

func TestSend_NormalizesRecipientAndCarriesAttachment(t *testing.T) {
	var got providerRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "msg_abc123"})
	}))
	defer server.Close()

	d := NewDispatcher(func() Config {
		return Config{APIKey: "secret", Sender: "hr@corp.co", Endpoint: server.URL}
	})

	result, err := d.Send(
		context.Background(),
		"  User.Name@Example.COM ",
		"Payslip",
		"<p>body</p>",
		[]Attachment{{Filename: "payslip.pdf", Content: "JVBERi0="}},
	)

	assert.NoError(t, err)
	assert.Equal(t, "msg_abc123", result.MessageID)
	assert.Equal(t, []string{"user.name@example.com"}, got.To)
	assert.Equal(t, "hr@corp.co", got.From)
	assert.Len(t, got.Attachments, 1)
	assert.Equal(t, "payslip.pdf", got.Attachments[0].Filename)
}

func TestSend_ProviderErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "sender domain not verified"})
	}))
	defer server.Close()

	d := NewDispatcher(func() Config {
		return Config{APIKey: "secret", Sender: "hr@corp.co", Endpoint: server.URL}
	})

	_, err := d.Send(context.Background(), "user@example.com", "s", "<p>b</p>", nil)
	assert.Error(t, err)

	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
	assert.Equal(t, apperror.CodeUpstreamError, httpErr.Code)
	assert.Equal(t, "sender domain not verified", httpErr.Message)
}

func TestSend_FallbackMessageIDWhenProviderOmitsOne(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	d := NewDispatcher(func() Config {
		return Config{APIKey: "secret", Sender: "hr@corp.co", Endpoint: server.URL}
	})

	result, err := d.Send(context.Background(), "user@example.com", "s", "<p>b</p>", nil)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.MessageID, "msg-"))
}

func TestPayslipAttachment_FallbackPDF(t *testing.T) {
	att, err := PayslipAttachment("Gaji Agustus\nTotal: 5.000.000", "", "")
	assert.NoError(t, err)
	assert.Equal(t, "payslip.pdf", att.Filename)
	assert.NotEmpty(t, att.Content)

	att, err = PayslipAttachment("ignored", "JVBERi0=", "custom.pdf")
	assert.NoError(t, err)
	assert.Equal(t, "custom.pdf", att.Filename)
	assert.Equal(t, "JVBERi0=", att.Content)
}
