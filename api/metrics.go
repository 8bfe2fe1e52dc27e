package api

import (
	"time"

	log "github.com/sirupsen/logrus"
)

type dataRequestMetrics struct {
	logger           *log.Logger
	start            time.Time
	loadDuration     time.Duration
	saveDuration     time.Duration
	encodeDuration   time.Duration
	overviewComputed bool
	errorStage       string
}

func newDataRequestMetrics(logger *log.Logger) *dataRequestMetrics {
	return &dataRequestMetrics{
		logger: logger,
		start:  time.Now(),
	}
}

func (m *dataRequestMetrics) ObserveLoad(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.loadDuration = duration
}

func (m *dataRequestMetrics) ObserveSave(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.saveDuration = duration
}

func (m *dataRequestMetrics) ObserveEncode(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.encodeDuration = duration
}

func (m *dataRequestMetrics) SetOverviewComputed(computed bool) {
	m.overviewComputed = computed
}

func (m *dataRequestMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

func (m *dataRequestMetrics) Log(status int, err error) {
	if m == nil || m.logger == nil {
		return
	}

	fields := log.Fields{
		"route":             "/data",
		"status":            status,
		"total_ms":          durationToMillis(time.Since(m.start)),
		"overview_computed": m.overviewComputed,
	}

	if m.loadDuration > 0 {
		fields["load_ms"] = durationToMillis(m.loadDuration)
	}
	if m.saveDuration > 0 {
		fields["save_ms"] = durationToMillis(m.saveDuration)
	}
	if m.encodeDuration > 0 {
		fields["encode_ms"] = durationToMillis(m.encodeDuration)
	}
	if m.errorStage != "" {
		fields["error_stage"] = m.errorStage
	}

	entry := m.logger.WithFields(fields)
	if err != nil {
		entry.WithError(err).Warn("data request failed")
		return
	}
	entry.Debug("data request served")
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
