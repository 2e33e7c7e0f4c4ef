package billing

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type stubProvider struct {
	delay time.Duration
	log   *slog.Logger
}

// NewStub returns a provider that approves every charge after a fixed delay.
// There is no real payment integration; this stands in for one.
func NewStub(delay time.Duration, log *slog.Logger) Provider {
	return &stubProvider{delay: delay, log: log}
}

func (p *stubProvider) Charge(ctx context.Context, req ChargeReq) (*ChargeResp, error) {
	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	id := uuid.NewString()
	if p.log != nil {
		p.log.Info("stub charge approved",
			"charge_id", id,
			"external_id", req.ExternalID,
			"amount", req.Amount,
		)
	}
	return &ChargeResp{ChargeID: id, Status: "PAID"}, nil
}
