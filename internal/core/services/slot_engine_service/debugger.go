package slot_engine_service

import (
	"sync"

	"github.com/suchimauz/dental-slots-engine/internal/core/domain"
)

type SlotEngineServiceDebug struct {
	mu   sync.Mutex
	data []domain.DebugInfo
}

func (d *SlotEngineServiceDebug) AddDebugInfo(info domain.DebugInfo) {
	d.mu.Lock()
	d.data = append(d.data, info)
	d.mu.Unlock()
}
