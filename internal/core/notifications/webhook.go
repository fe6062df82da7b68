package notifications

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"
)

// SendWebhook posts a JSON payload to a subscriber URL. The body is signed
// with HMAC-SHA256 so the receiver can verify origin.
func SendWebhook(url string, payload []byte, secret string) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "BankingAccount-Webhook/1.0")
	req.Header.Set("X-Signature", hex.EncodeToString(mac.Sum(nil)))

	// Slow subscribers must not block the worker.
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return fmt.Errorf("subscriber returned status %d", resp.StatusCode)
}
