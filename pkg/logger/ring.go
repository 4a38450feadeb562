package logger

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Entry evento de log retenido en memoria.
type Entry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Logger    string         `json:"logger,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// RingBuffer FIFO acotado de eventos de log. Al superar la capacidad se descarta el más antiguo.
// Implementa zerolog.LevelWriter; se conecta al logger vía Config.Buffer.
type RingBuffer struct {
	mu      sync.Mutex
	entries []Entry
	start   int // índice del más antiguo
	size    int
	now     func() time.Time
}

var _ zerolog.LevelWriter = (*RingBuffer)(nil)

// NewRingBuffer crea un buffer con la capacidad indicada (1000 si es <= 0).
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 1000
	}
	return &RingBuffer{entries: make([]Entry, capacity), now: time.Now}
}

// Write recibe un evento JSON de zerolog sin nivel explícito.
func (b *RingBuffer) Write(p []byte) (int, error) {
	return b.WriteLevel(zerolog.NoLevel, p)
}

// WriteLevel decodifica el evento y lo agrega al buffer. Nunca falla: un evento ilegible se guarda como texto.
func (b *RingBuffer) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	e := Entry{Level: level.String()}
	fields := map[string]any{}
	if err := json.Unmarshal(p, &fields); err != nil {
		e.Message = string(p)
		e.Timestamp = b.now()
	} else {
		e.Message, _ = fields[zerolog.MessageFieldName].(string)
		e.Logger, _ = fields["component"].(string)
		if ts, ok := fields[zerolog.TimestampFieldName].(string); ok {
			e.Timestamp, _ = time.Parse(zerolog.TimeFieldFormat, ts)
		}
		if e.Timestamp.IsZero() {
			e.Timestamp = b.now()
		}
		if lv, ok := fields[zerolog.LevelFieldName].(string); ok && level == zerolog.NoLevel {
			e.Level = lv
		}
		delete(fields, zerolog.MessageFieldName)
		delete(fields, zerolog.TimestampFieldName)
		delete(fields, zerolog.LevelFieldName)
		delete(fields, "component")
		if len(fields) > 0 {
			e.Fields = fields
		}
	}
	b.push(e)
	return len(p), nil
}

func (b *RingBuffer) push(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	capacity := len(b.entries)
	if b.size < capacity {
		b.entries[(b.start+b.size)%capacity] = e
		b.size++
		return
	}
	b.entries[b.start] = e
	b.start = (b.start + 1) % capacity
}

// newestFirst copia del contenido, el más reciente primero. Requiere el lock.
func (b *RingBuffer) newestFirst() []Entry {
	out := make([]Entry, 0, b.size)
	capacity := len(b.entries)
	for i := b.size - 1; i >= 0; i-- {
		out = append(out, b.entries[(b.start+i)%capacity])
	}
	return out
}

// Recent devuelve hasta limit eventos, el más reciente primero (limit <= 0: todos).
func (b *RingBuffer) Recent(limit int) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	all := b.newestFirst()
	if limit > 0 && limit < len(all) {
		return all[:limit]
	}
	return all
}

// Since eventos con timestamp posterior a t, el más reciente primero.
func (b *RingBuffer) Since(t time.Time) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Entry
	for _, e := range b.newestFirst() {
		if e.Timestamp.After(t) {
			out = append(out, e)
		}
	}
	return out
}

// ByLevel eventos del nivel indicado (sin distinguir mayúsculas), hasta limit.
func (b *RingBuffer) ByLevel(level string, limit int) []Entry {
	lvl, err := zerolog.ParseLevel(level)
	want := level
	if err == nil {
		want = lvl.String()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Entry
	for _, e := range b.newestFirst() {
		if e.Level == want {
			out = append(out, e)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

// Count cantidad de eventos retenidos.
func (b *RingBuffer) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Capacity capacidad máxima.
func (b *RingBuffer) Capacity() int {
	return len(b.entries)
}

// Clear vacía el buffer.
func (b *RingBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.entries {
		b.entries[i] = Entry{}
	}
	b.start, b.size = 0, 0
}
