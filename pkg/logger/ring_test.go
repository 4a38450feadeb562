package logger

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *RingBuffer) zerolog.Logger {
	return zerolog.New(buf).With().Timestamp().Logger()
}

func TestRingBuffer_DescartaElMasAntiguo(t *testing.T) {
	buf := NewRingBuffer(3)
	zl := newTestLogger(buf)
	for _, msg := range []string{"uno", "dos", "tres", "cuatro"} {
		zl.Info().Msg(msg)
	}

	require.Equal(t, 3, buf.Count())
	assert.Equal(t, 3, buf.Capacity())
	recent := buf.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "cuatro", recent[0].Message, "el más reciente primero")
	assert.Equal(t, "dos", recent[2].Message, "'uno' fue desalojado")
}

func TestRingBuffer_RecentLimit(t *testing.T) {
	buf := NewRingBuffer(10)
	zl := newTestLogger(buf)
	zl.Info().Msg("a")
	zl.Info().Msg("b")
	zl.Info().Msg("c")

	recent := buf.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].Message)
	assert.Equal(t, "b", recent[1].Message)
}

func TestRingBuffer_ByLevelYCampos(t *testing.T) {
	buf := NewRingBuffer(10)
	zl := newTestLogger(buf)
	zl.Info().Msg("ok")
	zl.Warn().Str("order_id", "o-1").Msg("pedido no encontrado")
	zl.Error().Msg("falló")

	warns := buf.ByLevel("WARN", 0)
	require.Len(t, warns, 1)
	assert.Equal(t, "pedido no encontrado", warns[0].Message)
	assert.Equal(t, "o-1", warns[0].Fields["order_id"])
	assert.Len(t, buf.ByLevel("error", 1), 1)
}

func TestRingBuffer_Since(t *testing.T) {
	buf := NewRingBuffer(10)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	buf.now = func() time.Time { return base }
	_, _ = buf.Write([]byte("texto plano viejo"))
	buf.now = func() time.Time { return base.Add(time.Minute) }
	_, _ = buf.Write([]byte("texto plano nuevo"))

	got := buf.Since(base)
	require.Len(t, got, 1)
	assert.Equal(t, "texto plano nuevo", got[0].Message)
}

func TestRingBuffer_Clear(t *testing.T) {
	buf := NewRingBuffer(2)
	zl := newTestLogger(buf)
	zl.Info().Msg("x")
	buf.Clear()
	assert.Equal(t, 0, buf.Count())
	assert.Empty(t, buf.Recent(0))

	zl.Info().Msg("y")
	assert.Equal(t, "y", buf.Recent(1)[0].Message)
}

func TestNew_EscribeEnBuffer(t *testing.T) {
	buf := NewRingBuffer(5)
	l := New(Config{Env: "production", Level: "warn", Buffer: buf})
	l.Info().Msg("filtrado por nivel")
	l.Named("orders").Warn().Msg("visible")

	require.Equal(t, 1, buf.Count())
	e := buf.Recent(1)[0]
	assert.Equal(t, "visible", e.Message)
	assert.Equal(t, "warn", e.Level)
	assert.Equal(t, "orders", e.Logger)
}
