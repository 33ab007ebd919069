package utils

import (
	"net/http"
	"sync"
	"time"
)

// HealthStatus represents current reachability of the booking backend.
type HealthStatus struct {
	Backend   bool      `json:"backend"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic backend reachability checks and
// updates in-memory state. The probe only cares that the backend answers
// HTTP at all, not what it answers.
func StartHealthMonitor(backendURL string) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		client := &http.Client{Timeout: 5 * time.Second}

		for range ticker.C {
			reachable := false
			resp, err := client.Get(backendURL)
			if err == nil {
				resp.Body.Close()
				reachable = true
			}

			mu.Lock()
			currentHealth = HealthStatus{
				Backend:   reachable,
				CheckedAt: time.Now(),
			}
			mu.Unlock()
		}
	}()
}
