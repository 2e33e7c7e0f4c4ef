package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"digitallibrary/model"
	sessionrepo "digitallibrary/repository/session"
	jwtutil "digitallibrary/util/jwt"
	"digitallibrary/util/random"
)

// errors used by controllers

type ErrCode string

const (
	ErrBadContact  ErrCode = "BAD_CONTACT"
	ErrNoChallenge ErrCode = "NO_CHALLENGE"
	ErrCodeExpired ErrCode = "CODE_EXPIRED"
	ErrCodeInvalid ErrCode = "CODE_INVALID"
	ErrNotFound    ErrCode = "SESSION_NOT_FOUND"
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

// challengeTTL bounds how long an issued code stays valid. Retries within the
// window are unlimited; there is no lockout.
const challengeTTL = 5 * time.Minute

const tokenTTLHours = 24

// Notifier delivers a one-time code over the chosen channel. The production
// wiring uses LogNotifier, which only logs; a real SMS/email sender slots in
// behind the same interface.
type Notifier interface {
	Send(ctx context.Context, channel, contact, code string) error
}

type Service interface {
	// RequestOTP issues a 6-digit code for the contact and hands it to the
	// notifier. Only a hash of the code is stored.
	RequestOTP(ctx context.Context, req model.RequestOTPReq) error

	// VerifyOTP checks the submitted code against the stored challenge. On
	// success it creates (or re-hydrates) the session record and returns it
	// with a signed token. Only the code actually issued verifies; there is
	// no bypass value.
	VerifyOTP(ctx context.Context, req model.VerifyOTPReq) (*model.User, string, error)

	// Current resolves a session ID to its persisted record.
	Current(ctx context.Context, sessionID string) (*model.User, error)

	// Logout destroys the persisted session record.
	Logout(ctx context.Context, sessionID string) error
}

type service struct {
	sr       sessionrepo.Repo
	notifier Notifier
	secret   string
}

func New(sr sessionrepo.Repo, n Notifier, secret string) Service {
	return &service{sr: sr, notifier: n, secret: secret}
}

func (s *service) RequestOTP(ctx context.Context, req model.RequestOTPReq) error {
	contact := strings.TrimSpace(model.ContactFor(req.Channel, req.Email, req.Phone))
	if contact == "" {
		return makeErr(ErrBadContact)
	}

	code := random.Code()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.sr.UpsertChallenge(ctx, contact, string(hash), time.Now().Add(challengeTTL)); err != nil {
		return err
	}

	return s.notifier.Send(ctx, req.Channel, contact, code)
}

func (s *service) VerifyOTP(ctx context.Context, req model.VerifyOTPReq) (*model.User, string, error) {
	contact := strings.TrimSpace(model.ContactFor(req.Channel, req.Email, req.Phone))
	if contact == "" {
		return nil, "", makeErr(ErrBadContact)
	}

	hash, expires, err := s.sr.ChallengeByContact(ctx, contact)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", makeErr(ErrNoChallenge)
	}
	if err != nil {
		return nil, "", err
	}

	if time.Now().After(expires) {
		_ = s.sr.DeleteChallenge(ctx, contact)
		return nil, "", makeErr(ErrCodeExpired)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Code)) != nil {
		// Challenge stays; the user may retry until it expires.
		return nil, "", makeErr(ErrCodeInvalid)
	}

	u, err := s.sessionFor(ctx, req.Channel, contact)
	if err != nil {
		return nil, "", err
	}

	_ = s.sr.DeleteChallenge(ctx, contact)

	token, err := jwtutil.Issue(s.secret, u.ID, tokenTTLHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// sessionFor re-uses the stored record for a returning contact, creating one
// on first login. A concurrent first login hitting the unique index is
// resolved by re-reading.
func (s *service) sessionFor(ctx context.Context, channel, contact string) (*model.User, error) {
	u, err := s.sr.ByContact(ctx, contact)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	u = &model.User{ID: uuid.NewString()}
	if channel == "phone" {
		u.Phone = contact
	} else {
		u.Email = contact
	}

	if err := s.sr.Create(ctx, u); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return s.sr.ByContact(ctx, contact)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Current(ctx context.Context, sessionID string) (*model.User, error) {
	u, err := s.sr.ByID(ctx, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, makeErr(ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	return s.sr.Delete(ctx, sessionID)
}
