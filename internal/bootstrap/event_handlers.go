package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/harukigames/gamecore/internal/event"
	"github.com/harukigames/gamecore/internal/eventlog"
	"github.com/harukigames/gamecore/internal/metrics"
)

// RegisterEventHandlers wires the standing event subscribers:
// the metrics collector (event-driven gameplay counters) and the event
// logger (persists every game event to the audit table).
func RegisterEventHandlers(bus event.Bus, eventLogService eventlog.Service) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	eventLogService.Subscribe(bus)
	slog.Info(LogMsgEventLoggerInitialized)

	return nil
}
