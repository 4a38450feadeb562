// Package scheduler ejecuta tareas periódicas de mantenimiento.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Carnes-api/pkg/logger"
)

// OverdueMarker marca como vencidas las facturas impagas.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context) (int64, error)
}

// Scheduler administra las tareas programadas (cron de 5 campos).
type Scheduler struct {
	cron    *cron.Cron
	overdue OverdueMarker
	spec    string
	log     *logger.Logger
}

// New construye el scheduler. spec vacío desactiva la tarea de vencimientos.
func New(spec string, overdue OverdueMarker, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		overdue: overdue,
		spec:    spec,
		log:     log.Named("scheduler"),
	}
}

// Start registra las tareas y arranca el cron.
func (s *Scheduler) Start() error {
	if s.spec == "" {
		s.log.Info().Msg("tarea de vencimientos desactivada")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.markOverdue); err != nil {
		return fmt.Errorf("programar vencimientos %q: %w", s.spec, err)
	}
	s.log.Info().Str("cron", s.spec).Msg("scheduler iniciado")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que terminen las tareas en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) markOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.overdue.MarkOverdue(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("tarea de vencimientos fallida")
		return
	}
	s.log.Debug().Int64("invoices", n).Msg("tarea de vencimientos completada")
}
