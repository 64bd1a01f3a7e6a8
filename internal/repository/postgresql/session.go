package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/personnel-web/internal/domain/auth"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/database"
)

const sessionSchema = `
	CREATE TABLE IF NOT EXISTS console_sessions (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		role        TEXT NOT NULL,
		payload     JSONB NOT NULL,
		ip_address  TEXT,
		user_agent  TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expires_at  TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS console_sessions_expires_at_idx ON console_sessions (expires_at);
`

type SessionRepository interface {
	auth.SessionRepository
	auth.SessionPruner
	EnsureSchema(ctx context.Context) error
}

type sessionRepositoryImpl struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

func (r *sessionRepositoryImpl) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, sessionSchema); err != nil {
		return fmt.Errorf("create session table: %w", err)
	}
	return nil
}

// Save upserts the session and drops expired rows in the same transaction.
func (r *sessionRepositoryImpl) Save(ctx context.Context, session *auth.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if _, err := q.Exec(ctx, `DELETE FROM console_sessions WHERE expires_at <= NOW()`); err != nil {
			return fmt.Errorf("prune sessions: %w", err)
		}

		query := `
			INSERT INTO console_sessions (id, user_id, role, payload, ip_address, user_agent, created_at, expires_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE
			SET payload = EXCLUDED.payload, expires_at = EXCLUDED.expires_at
		`
		createdAt := session.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		_, err := q.Exec(ctx, query,
			session.ID,
			session.User.ID,
			string(session.User.Role),
			payload,
			session.IPAddress,
			session.UserAgent,
			createdAt.UTC(),
			session.ExpiresAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		return nil
	})
}

func (r *sessionRepositoryImpl) Get(ctx context.Context, id string) (*auth.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT payload
		FROM console_sessions
		WHERE id = $1 AND expires_at > NOW()
	`
	var payload []byte
	err := q.QueryRow(ctx, query, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, auth.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var s auth.Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (r *sessionRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	if _, err := q.Exec(ctx, `DELETE FROM console_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *sessionRepositoryImpl) PruneExpired(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM console_sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
