package paymentsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"digitallibrary/model"
	"digitallibrary/repository/billing"
	sessionrepo "digitallibrary/repository/session"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotLoggedIn ErrCode = "NOT_LOGGED_IN"
	ErrUnknownPlan ErrCode = "UNKNOWN_PLAN"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts the error code, or "" for plain errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

const (
	PlanPremium = "premium"
	PlanBook    = "book"
)

// planPrices are display prices for the stub processor.
var planPrices = map[string]float64{
	PlanPremium: 9.99,
	PlanBook:    2.99,
}

type Service interface {
	// Upgrade charges the plan via the billing provider. For PlanPremium the
	// session's premium flag is set and persisted immediately; once set it is
	// never auto-revoked. PlanBook is a one-off unlock charge with no
	// persistent effect.
	Upgrade(ctx context.Context, sessionID, plan string) (*model.User, error)
}

type service struct {
	sr sessionrepo.Repo
	p  billing.Provider
}

func New(sr sessionrepo.Repo, p billing.Provider) Service {
	return &service{sr: sr, p: p}
}

func (s *service) Upgrade(ctx context.Context, sessionID, plan string) (*model.User, error) {
	price, ok := planPrices[plan]
	if !ok {
		return nil, makeErr(ErrUnknownPlan)
	}

	u, err := s.sr.ByID(ctx, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, makeErr(ErrNotLoggedIn)
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.p.Charge(ctx, billing.ChargeReq{
		ExternalID:   fmt.Sprintf("upgrade:%s:%d", u.ID, time.Now().UnixNano()),
		Amount:       price,
		PayerContact: u.Contact(),
		Description:  "Digital Library " + plan + " plan",
	}); err != nil {
		return nil, err
	}

	if plan == PlanPremium && !u.IsPremium {
		if err := s.sr.SetPremium(ctx, u.ID, true); err != nil {
			return nil, err
		}
		u.IsPremium = true
	}
	return u, nil
}
