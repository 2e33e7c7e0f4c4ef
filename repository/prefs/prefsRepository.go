// repository/prefs/prefsRepository.go
package prefs

import (
	"context"
	"database/sql"
	"errors"

	"digitallibrary/model"
)

// Repo stores per-session UI preferences (theme, view). The original kept these
// in browser localStorage; here they live in Postgres keyed by session ID.
type Repo interface {
	Get(ctx context.Context, sessionID string) (model.Prefs, error)
	Upsert(ctx context.Context, sessionID string, p model.Prefs) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Get(ctx context.Context, sessionID string) (model.Prefs, error) {
	var p model.Prefs
	err := r.db.QueryRowContext(ctx, `
		SELECT theme, view_preference FROM user_prefs WHERE session_id = $1`,
		sessionID,
	).Scan(&p.Theme, &p.View)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultPrefs(), nil
	}
	if err != nil {
		return model.Prefs{}, err
	}
	return p, nil
}

func (r *repo) Upsert(ctx context.Context, sessionID string, p model.Prefs) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_prefs(session_id, theme, view_preference)
		VALUES ($1,$2,$3)
		ON CONFLICT (session_id) DO UPDATE
		SET theme = EXCLUDED.theme, view_preference = EXCLUDED.view_preference`,
		sessionID, p.Theme, p.View,
	)
	return err
}
