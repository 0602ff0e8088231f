package syncqueue

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shenikar/fyren/internal/config"
	"github.com/shenikar/fyren/internal/models"
	"github.com/shenikar/fyren/internal/service"
	"github.com/sirupsen/logrus"
)

const signatureHeader = "X-Sync-Signature"

// Dispatcher выполняет созревшую задачу синхронизации: отправляет инцидент
// на удаленную точку (если она настроена) и помечает его синхронизированным
type Dispatcher struct {
	syncer     service.SyncService
	logger     *logrus.Logger
	cfg        *config.Config
	httpClient *http.Client
}

func NewDispatcher(syncer service.SyncService, logger *logrus.Logger, cfg *config.Config) *Dispatcher {
	return &Dispatcher{
		syncer: syncer,
		logger: logger,
		cfg:    cfg,
		httpClient: &http.Client{
			Timeout: cfg.SyncTimeout,
		},
	}
}

// Dispatch обрабатывает задачу. Устаревшая задача (инцидент изменен или удален) пропускается.
func (d *Dispatcher) Dispatch(ctx context.Context, task models.SyncTask) error {
	log := d.logger.WithFields(logrus.Fields{
		"incident_id": task.IncidentID,
		"version":     task.Version,
	})
	log.Debug("Processing sync task...")

	incident, err := d.syncer.Snapshot(ctx, task.IncidentID)
	if err != nil {
		if errors.Is(err, models.ErrIncidentNotFound) {
			log.Warn("Incident not found, dropping sync task")
			return nil
		}
		return fmt.Errorf("failed to load incident for sync: %w", err)
	}

	if incident.Version != task.Version || incident.SyncStatus != models.SyncPending {
		log.WithField("current_version", incident.Version).Debug("Sync task is stale, skipping")
		return nil
	}

	if d.cfg.SyncEndpointURL != "" {
		if err := d.deliver(ctx, log, incident); err != nil {
			return err
		}
	}

	if _, err := d.syncer.CompleteSync(ctx, task); err != nil {
		return fmt.Errorf("failed to complete sync: %w", err)
	}
	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, log *logrus.Entry, incident *models.Incident) error {
	payload, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for sync: %w", err)
	}

	maxRetries := d.cfg.SyncMaxRetries
	baseDelay := d.cfg.SyncBaseDelay

	for i := 0; i < maxRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.SyncEndpointURL, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("failed to create sync request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")

		// Добавляем HMAC подпись, если SYNC_SECRET задан
		if d.cfg.SyncSecret != "" {
			req.Header.Set(signatureHeader, generateHMACSHA256(payload, d.cfg.SyncSecret))
		}

		resp, err := d.httpClient.Do(req)
		if err != nil {
			log.WithError(err).Warnf("Failed to send incident to sync endpoint. Retrying in %v. Retries left: %d", baseDelay, maxRetries-1-i)
		} else {
			resp.Body.Close()
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				log.Info("Incident delivered to sync endpoint")
				return nil
			}
			log.Warnf("Sync endpoint responded with status code %d. Retrying in %v. Retries left: %d", resp.StatusCode, baseDelay, maxRetries-1-i)
		}

		if i == maxRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(baseDelay):
		}
		baseDelay *= 2 // Экспоненциальная задержка
	}

	return fmt.Errorf("failed to deliver incident %s after %d attempts", incident.ID, maxRetries)
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
