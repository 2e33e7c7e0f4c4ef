package billing

import "context"

type ChargeReq struct {
	ExternalID   string
	Amount       float64
	PayerContact string
	Description  string
}

type ChargeResp struct {
	ChargeID string
	Status   string
}

// Provider is the payment processor boundary. The service only ever talks to
// this interface; a real processor replaces the stub without touching callers.
type Provider interface {
	Charge(ctx context.Context, req ChargeReq) (*ChargeResp, error)
}
