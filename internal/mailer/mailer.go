package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go-payhr/internal/shared/apperror"
	"go-payhr/internal/shared/contextutil"

	"go.uber.org/zap"
)

// Regex permisif: cukup bentuk local@domain.tld. Validasi penuh
// diserahkan ke provider.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Attachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"` // base64; diteruskan apa adanya ke provider
}

type SendResult struct {
	MessageID string
}

//go:generate mockgen -source=mailer.go -destination=mock/mailer_mock.go -package=mock
type Dispatcher interface {
	Send(ctx context.Context, to, subject, htmlBody string, attachments []Attachment) (SendResult, error)
}

type dispatcher struct {
	loadConfig func() Config
	httpClient *http.Client
	logger     *zap.Logger
}

func NewDispatcher(loadConfig func() Config, logger ...*zap.Logger) Dispatcher {
	if loadConfig == nil {
		loadConfig = ConfigFromEnv
	}
	l := zap.L().Named("mailer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mailer")
	}
	return &dispatcher{
		loadConfig: loadConfig,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     l,
	}
}

// NormalizeRecipient: trim whitespace lalu lowercase.
func NormalizeRecipient(to string) string {
	return strings.ToLower(strings.TrimSpace(to))
}

func ValidRecipient(to string) bool {
	return emailPattern.MatchString(to)
}

type providerRequest struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTML        string       `json:"html"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type providerResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (d *dispatcher) Send(ctx context.Context, to, subject, htmlBody string, attachments []Attachment) (SendResult, error) {
	log := contextutil.GetLogger(ctx, d.logger)

	recipient := NormalizeRecipient(to)
	if !ValidRecipient(recipient) {
		return SendResult{}, apperror.New(apperror.CodeInvalidInput, "Invalid recipient email address", http.StatusBadRequest)
	}

	// Konfigurasi dicek sebelum network call apapun.
	cfg := d.loadConfig()
	if err := cfg.Validate(); err != nil {
		return SendResult{}, err
	}

	payload, err := json.Marshal(providerRequest{
		From:        cfg.Sender,
		To:          []string{recipient},
		Subject:     subject,
		HTML:        htmlBody,
		Attachments: attachments,
	})
	if err != nil {
		return SendResult{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to encode email payload", http.StatusInternalServerError)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return SendResult{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to build provider request", http.StatusInternalServerError)
	}
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return SendResult{}, apperror.Wrap(err, apperror.CodeUpstreamError, "Email provider is unreachable", http.StatusBadGateway)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var parsed providerResponse
	_ = json.Unmarshal(body, &parsed)

	if resp.StatusCode >= 400 {
		// Pesan provider dipakai kalau ada; status code-nya diteruskan.
		log.Warn("email provider returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("provider_message", parsed.Message),
		)
		return SendResult{}, apperror.Upstream(parsed.Message, resp.StatusCode)
	}

	messageID := parsed.ID
	if messageID == "" {
		// Fallback id hanya untuk korelasi log, bukan jaminan unik global.
		messageID = fmt.Sprintf("msg-%d", time.Now().UnixNano())
	}

	log.Info("email dispatched",
		zap.String("to", recipient),
		zap.String("message_id", messageID),
		zap.Int("attachments", len(attachments)),
	)

	return SendResult{MessageID: messageID}, nil
}
