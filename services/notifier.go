package services

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"pokerclub/models"
)

var notifyClient = &http.Client{Timeout: 10 * time.Second}

// NotifyPrizeApplied posts a prize-won event to the mail service webhook.
// Fire-and-forget: failures are logged and never affect the committed prize.
func NotifyPrizeApplied(user models.User, spin models.SpinRecord, prize models.PrizeDefinition) {
	url := os.Getenv("NOTIFY_WEBHOOK_URL")
	if url == "" {
		return
	}

	payload := map[string]any{
		"event":      "roulette_prize_applied",
		"user_id":    user.ID,
		"username":   user.Username,
		"spin_id":    spin.ID,
		"ref_id":     spin.RefID,
		"spin_type":  spin.SpinType,
		"prize_id":   prize.ID,
		"prize_name": prize.Name,
		"behavior":   prize.PrizeBehavior,
		"value":      prize.PrizeValue,
		"applied_at": spin.ValidatedAt,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("⚠️  Failed to encode prize notification: %v", err)
		return
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		log.Printf("⚠️  Failed to build prize notification request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := notifyClient.Do(req)
	if err != nil {
		log.Printf("⚠️  Prize notification failed for spin %s: %v", spin.RefID, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("⚠️  Prize notification rejected for spin %s: status %d", spin.RefID, resp.StatusCode)
	}
}
