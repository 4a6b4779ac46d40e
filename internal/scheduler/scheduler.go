// Package scheduler tareas periódicas de la farmacia.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// AlertScanner revisión de alertas de stock (usecase.AlertUseCase).
type AlertScanner interface {
	Scan() (map[string]int, error)
}

// Scheduler gestiona las tareas programadas.
type Scheduler struct {
	cron   *cron.Cron
	alerts AlertScanner
	spec   string
	log    *logger.Logger
}

// New crea el scheduler. spec es una expresión cron estándar de 5 campos;
// vacía deshabilita la revisión de alertas.
func New(spec string, alerts AlertScanner, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron:   cron.New(),
		alerts: alerts,
		spec:   spec,
		log:    log.Component("scheduler"),
	}
}

// Start registra las tareas y arranca el cron.
func (s *Scheduler) Start() error {
	if s.spec == "" {
		s.log.Info().Msg("revisión de alertas deshabilitada")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.scanAlerts); err != nil {
		return fmt.Errorf("scheduler: programar alertas %q: %w", s.spec, err)
	}
	s.log.Info().Str("cron", s.spec).Msg("scheduler iniciado")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine la tarea en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler detenido")
}

// Entries cantidad de tareas registradas.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) scanAlerts() {
	if _, err := s.alerts.Scan(); err != nil {
		s.log.Error().Err(err).Msg("revisión de alertas fallida")
	}
}
