// Package events publishes session progress to NATS so venue dashboards
// and scoreboards can subscribe without touching the game server.
package events

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"wamserver/internal/game"
)

const (
	subjectRound    = "wam.round"
	subjectFinished = "wam.session.finished"
)

// Publisher forwards session snapshots onto NATS subjects. It implements
// game.Observer; publish failures are logged and never fatal, since the
// match does not depend on the dashboard bus.
type Publisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

// NewPublisher connects to the NATS server at url.
func NewPublisher(url string, logger *zap.Logger) (*Publisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	nc, err := nats.Connect(url, nats.Name("wam-server"))
	if err != nil {
		return nil, err
	}
	logger.Info("connected to NATS", zap.String("url", url))
	return &Publisher{nc: nc, logger: logger}, nil
}

// OnRoundUpdate publishes the round snapshot.
func (p *Publisher) OnRoundUpdate(s game.Snapshot) {
	p.publish(subjectRound, s)
}

// OnSessionFinished publishes the final outcome.
func (p *Publisher) OnSessionFinished(s game.Snapshot) {
	p.publish(subjectFinished, s)
}

func (p *Publisher) publish(subject string, s game.Snapshot) {
	data, err := json.Marshal(s)
	if err != nil {
		p.logger.Error("failed to encode snapshot", zap.Error(err))
		return
	}
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Warn("NATS publish failed", zap.String("subject", subject), zap.Error(err))
	}
}

// Close drains the connection.
func (p *Publisher) Close() {
	if err := p.nc.Drain(); err != nil {
		p.logger.Warn("NATS drain failed", zap.Error(err))
	}
}
