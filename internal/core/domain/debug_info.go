package domain

import "time"

// DebugInfo - замер длительности этапа обработки запроса.
// Отдается в ответе API только в локальном окружении
type DebugInfo struct {
	Event     string            `json:"event"`
	ElapsedMs int64             `json:"elapsedMs"`
	StartTime time.Time         `json:"-"`
	Options   map[string]string `json:"options,omitempty"`
}

func (d *DebugInfo) Start() {
	d.StartTime = time.Now()
}

func (d *DebugInfo) Elapse() {
	d.ElapsedMs = time.Since(d.StartTime).Milliseconds()
}

func (d *DebugInfo) AddOption(key string, value string) {
	if d.Options == nil {
		d.Options = make(map[string]string)
	}
	d.Options[key] = value
}
