// Copyright (c) 2026 F-Students App. All rights reserved.

package password

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier delivers credential-recovery messages to the account owner.
type Notifier interface {
	// SendPasswordReset dispatches the reset token to the notification
	// channel. The caller treats failures as best-effort.
	SendPasswordReset(ctx context.Context, email, fullName, token string) error
}

// HTTPNotifier posts reset notifications to the notification microservice.
//
// The notification service owns templating and delivery; this client only
// hands over the recipient and the token. Built on net/http directly since
// the contract is a single fire-and-forget POST.
type HTTPNotifier struct {
	baseURL string
	client  *http.Client
}

// NewHTTPNotifier constructs an [HTTPNotifier] targeting the given base URL.
func NewHTTPNotifier(baseURL string) *HTTPNotifier {
	return &HTTPNotifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// SendPasswordReset posts the reset payload to the notification service.
func (notifier *HTTPNotifier) SendPasswordReset(ctx context.Context, email, fullName, token string) error {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"fullName": fullName,
		"token":    token,
	})
	if err != nil {
		return fmt.Errorf("notifier_marshal_failed: %w", err)
	}

	url := notifier.baseURL + "/api/v1/notifications/password-reset"
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("notifier_request_failed: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := notifier.client.Do(request)
	if err != nil {
		return fmt.Errorf("notifier_dispatch_failed: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode >= 400 {
		return fmt.Errorf("notifier_dispatch_rejected: status %d", response.StatusCode)
	}

	return nil
}
