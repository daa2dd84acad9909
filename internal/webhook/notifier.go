// Package webhook delivers failure notifications to the operations channel.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Notifier posts error messages to a configured webhook URL.
type Notifier struct {
	url    string
	client *http.Client
	log    *slog.Logger
}

func NewNotifier(url string, timeout time.Duration, log *slog.Logger) *Notifier {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

func makeMessage(message string) string {
	return "Estimado equipo, se ha presentado un error en el sistema: " + message
}

// Notify posts the message. A non-2xx response is returned as an error;
// callers log it and move on, delivery failures never affect the document
// response.
func (n *Notifier) Notify(ctx context.Context, message string) error {
	reqID := uuid.New().String()

	payload, err := json.Marshal(map[string]string{"text": makeMessage(message)})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.log.Error("webhook.send_error", "req_id", reqID, "error", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		n.log.Error("webhook.rejected", "req_id", reqID, "status", resp.StatusCode)
		return fmt.Errorf("webhook status %d: %s", resp.StatusCode, string(body))
	}
	n.log.Info("webhook.sent", "req_id", reqID)
	return nil
}
