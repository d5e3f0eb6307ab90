package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"presto-auth/internal/db"

	"github.com/google/uuid"
)

// maxDocumentBytes caps downloaded documents at 16 MiB; photo IDs are
// a few hundred KiB in practice.
const maxDocumentBytes = 16 << 20

// PGStore downloads documents over HTTP and persists them in Postgres.
type PGStore struct {
	db     *db.DB
	q      db.Querier
	client *http.Client
}

func NewPGStore(database *db.DB) *PGStore {
	return &PGStore{
		db:     database,
		q:      database.DB,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithQuerier returns a copy of the store that writes through q,
// typically the login transaction, so the stored document commits and
// rolls back together with its owning user row.
func (s *PGStore) WithQuerier(q db.Querier) *PGStore {
	return &PGStore{db: s.db, q: q, client: s.client}
}

func (s *PGStore) FetchAndStore(ctx context.Context, url, userID, kind string) (*Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d from %s", ErrFetch, resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	rec := &Record{
		ID:          uuid.NewString(),
		UserID:      userID,
		Kind:        kind,
		SourceURL:   url,
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}

	row := s.q.QueryRowContext(ctx, `
		INSERT INTO user_media (id, user_id, kind, source_url, content_type, data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, rec.ID, rec.UserID, rec.Kind, rec.SourceURL, rec.ContentType, rec.Data)

	if err := row.Scan(&rec.CreatedAt); err != nil {
		return nil, err
	}

	return rec, nil
}
