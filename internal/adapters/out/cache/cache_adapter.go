package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/dental-slots-engine/internal/config"
	"github.com/suchimauz/dental-slots-engine/internal/core/domain"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
	"github.com/suchimauz/dental-slots-engine/internal/core/ports/out"
)

// Ключ кэша снимков: записи врача на конкретную дату
type snapshotKey string

func newSnapshotKey(doctorID uuid.UUID, date json_types.Date) snapshotKey {
	return snapshotKey(fmt.Sprintf("%s|%s", doctorID, date))
}

type SnapshotCacheEntry struct {
	Appointments []domain.Appointment
	StoredAt     time.Time
}

type doctorCacheEntry struct {
	doctor    domain.Doctor
	timestamp time.Time
}

type doctorsCache struct {
	entries map[uuid.UUID]*doctorCacheEntry
	ttl     time.Duration
}

type CacheAdapter struct {
	snapshots *lru.Cache[snapshotKey, *SnapshotCacheEntry]
	doctors   *doctorsCache
	mu        sync.RWMutex
	logger    out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	snapshots, err := lru.New[snapshotKey, *SnapshotCacheEntry](cfg.Cache.SnapshotsSize)
	if err != nil {
		logger.Error("cache.snapshots.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.SnapshotsSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		snapshots: snapshots,
		doctors: &doctorsCache{
			entries: make(map[uuid.UUID]*doctorCacheEntry),
			ttl:     30 * time.Minute,
		},
		logger: logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *CacheAdapter) GetAppointments(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.Appointment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.snapshots.Get(newSnapshotKey(doctorID, date))
	if !exists {
		c.logger.Debug("cache.snapshots.get.miss", out.LogFields{
			"doctorId": doctorID,
			"date":     date.String(),
		})
		return nil, false
	}

	c.logger.Debug("cache.snapshots.get.hit", out.LogFields{
		"doctorId":          doctorID,
		"date":              date.String(),
		"appointmentsCount": len(entry.Appointments),
	})
	return entry.Appointments, true
}

func (c *CacheAdapter) StoreAppointments(ctx context.Context, doctorID uuid.UUID, date json_types.Date, appointments []domain.Appointment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.snapshots.store", out.LogFields{
		"doctorId":          doctorID,
		"date":              date.String(),
		"appointmentsCount": len(appointments),
	})

	c.snapshots.Add(newSnapshotKey(doctorID, date), &SnapshotCacheEntry{
		Appointments: appointments,
		StoredAt:     time.Now(),
	})
}

func (c *CacheAdapter) InvalidateAppointments(ctx context.Context, doctorID uuid.UUID, date json_types.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshots.Remove(newSnapshotKey(doctorID, date))
}

func (c *CacheAdapter) InvalidateAllAppointments(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshots.Purge()
}

// Кэширование карточек врачей

func (c *CacheAdapter) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*domain.Doctor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.doctors.entries[doctorID]
	if !exists || time.Since(entry.timestamp) > c.doctors.ttl {
		return nil, false
	}

	doctor := entry.doctor
	return &doctor, true
}

func (c *CacheAdapter) StoreDoctor(ctx context.Context, doctor domain.Doctor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.doctors.entries[doctor.ID] = &doctorCacheEntry{
		doctor:    doctor,
		timestamp: time.Now(),
	}
}

func (c *CacheAdapter) InvalidateDoctor(ctx context.Context, doctorID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.doctors.entries, doctorID)
}
