package session

import (
	"context"
	"database/sql"
	"time"

	"digitallibrary/model"
)

// Repo persists session records and pending OTP challenges. Sessions are the
// durable analog of the original client's saved login state.
type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByID(ctx context.Context, id string) (*model.User, error)
	ByContact(ctx context.Context, contact string) (*model.User, error)
	SetPremium(ctx context.Context, id string, premium bool) error
	Delete(ctx context.Context, id string) error

	UpsertChallenge(ctx context.Context, contact, codeHash string, expiresAt time.Time) error
	ChallengeByContact(ctx context.Context, contact string) (codeHash string, expiresAt time.Time, err error)
	DeleteChallenge(ctx context.Context, contact string) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO sessions(id, email, phone, is_premium)
		VALUES ($1,$2,$3,$4)
		RETURNING join_date`,
		u.ID, u.Email, u.Phone, u.IsPremium,
	).Scan(&u.JoinDate)
}

func (r *repo) ByID(ctx context.Context, id string) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, phone, is_premium, join_date
		FROM sessions
		WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &u.Phone, &u.IsPremium, &u.JoinDate)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) ByContact(ctx context.Context, contact string) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, phone, is_premium, join_date
		FROM sessions
		WHERE (email <> '' AND lower(email) = lower($1))
		   OR (phone <> '' AND phone = $1)`,
		contact,
	).Scan(&u.ID, &u.Email, &u.Phone, &u.IsPremium, &u.JoinDate)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) SetPremium(ctx context.Context, id string, premium bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sessions SET is_premium = $1 WHERE id = $2`,
		premium, id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (r *repo) UpsertChallenge(ctx context.Context, contact, codeHash string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO otp_challenges(contact, code_hash, expires_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (contact) DO UPDATE
		SET code_hash = EXCLUDED.code_hash, expires_at = EXCLUDED.expires_at`,
		contact, codeHash, expiresAt,
	)
	return err
}

func (r *repo) ChallengeByContact(ctx context.Context, contact string) (string, time.Time, error) {
	var hash string
	var expires time.Time
	err := r.db.QueryRowContext(ctx, `
		SELECT code_hash, expires_at FROM otp_challenges WHERE contact = $1`,
		contact,
	).Scan(&hash, &expires)
	if err != nil {
		return "", time.Time{}, err
	}
	return hash, expires, nil
}

func (r *repo) DeleteChallenge(ctx context.Context, contact string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM otp_challenges WHERE contact = $1`, contact)
	return err
}
