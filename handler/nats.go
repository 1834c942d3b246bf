package handler

import (
	"encoding/json"
	"log"
	"time"

	"trends-service/metrics"
	"trends-service/model"

	"github.com/nats-io/nats.go"
)

// ReportSubject is the subject report summaries are published on.
const ReportSubject = "trends.report.generated"

// ReportPublisher publishes compact sweep summaries to NATS so downstream
// services can react without polling. It is fire-and-forget; publish
// failures never affect the HTTP response.
type ReportPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewReportPublisher connects to NATS at the given URL.
func NewReportPublisher(url, subject string) (*ReportPublisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}

	return &ReportPublisher{
		conn:    nc,
		subject: subject,
	}, nil
}

// Close closes the NATS connection.
func (rp *ReportPublisher) Close() {
	if rp.conn != nil {
		rp.conn.Close()
	}
}

// PublishReport publishes a summary of one successful sweep.
func (rp *ReportPublisher) PublishReport(report model.TrendReport) error {
	message := ReportMessage{
		GeneratedAt: report.GeneratedAt,
		Signals:     report.PrimarySignals,
		VideoCount:  len(report.SpotlightVideos),
		Timestamp:   time.Now(),
		Source:      "trends-service",
		Version:     "1.0",
	}

	data, err := json.Marshal(message)
	if err != nil {
		metrics.NatsMessagesPublished.WithLabelValues(rp.subject, "error").Inc()
		return err
	}

	if err := rp.conn.Publish(rp.subject, data); err != nil {
		metrics.NatsMessagesPublished.WithLabelValues(rp.subject, "error").Inc()
		return err
	}

	metrics.NatsMessagesPublished.WithLabelValues(rp.subject, "success").Inc()
	log.Printf("Published trend report to NATS: category=%s, videos=%d",
		report.PrimarySignals.Category, len(report.SpotlightVideos))
	return nil
}

// ReportMessage represents the structure sent to NATS
type ReportMessage struct {
	GeneratedAt time.Time            `json:"generatedAt"`
	Signals     model.PrimarySignals `json:"signals"`
	VideoCount  int                  `json:"videoCount"`
	Timestamp   time.Time            `json:"timestamp"`
	Source      string               `json:"source"`
	Version     string               `json:"version"`
}
