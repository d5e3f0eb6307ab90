package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"presto-auth/internal/db"
)

// PGStore is the Postgres-backed user store.
type PGStore struct {
	db *db.DB
	q  db.Querier
}

func NewPGStore(database *db.DB) *PGStore {
	return &PGStore{db: database, q: database.DB}
}

// WithQuerier returns a copy of the store that issues its statements
// through q, typically a transaction.
func (s *PGStore) WithQuerier(q db.Querier) *PGStore {
	return &PGStore{db: s.db, q: q}
}

const userColumns = `
	id, email, email_verified, full_name,
	license_verified_by, license_verified_at, presto_license_number,
	medical_license_upload_completed_at, license_initial_upload_completed_at,
	profile, provider_state,
	first_login_at, last_login_at,
	created_at, updated_at`

func scanUser(row *sql.Row) (*User, error) {
	var (
		u            User
		profileRaw   []byte
		stateRaw     []byte
		verifiedBy   sql.NullString
		verifiedAt   sql.NullTime
		medicalAt    sql.NullTime
		initialAt    sql.NullTime
		firstLoginAt sql.NullTime
		lastLoginAt  sql.NullTime
	)

	err := row.Scan(
		&u.ID, &u.Email, &u.EmailVerified, &u.FullName,
		&verifiedBy, &verifiedAt, &u.PrestoLicenseNumber,
		&medicalAt, &initialAt,
		&profileRaw, &stateRaw,
		&firstLoginAt, &lastLoginAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if verifiedBy.Valid {
		u.LicenseVerifiedBy = &verifiedBy.String
	}
	if verifiedAt.Valid {
		u.LicenseVerifiedAt = &verifiedAt.Time
	}
	if medicalAt.Valid {
		u.MedicalLicenseUploadCompletedAt = &medicalAt.Time
	}
	if initialAt.Valid {
		u.LicenseInitialUploadCompletedAt = &initialAt.Time
	}
	if firstLoginAt.Valid {
		u.FirstLoginAt = &firstLoginAt.Time
	}
	if lastLoginAt.Valid {
		u.LastLoginAt = &lastLoginAt.Time
	}

	if err := json.Unmarshal(profileRaw, &u.Profile); err != nil {
		return nil, fmt.Errorf("user: decode profile: %w", err)
	}
	if err := json.Unmarshal(stateRaw, &u.ProviderState); err != nil {
		return nil, fmt.Errorf("user: decode provider state: %w", err)
	}

	return &u, nil
}

func (s *PGStore) FindOrCreateByEmail(ctx context.Context, email string) (*User, bool, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)

	u, err := scanUser(row)
	if err == nil {
		return u, false, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, err
	}

	row = s.q.QueryRowContext(ctx, `
		INSERT INTO users (email, email_verified)
		VALUES ($1, true)
		RETURNING `+userColumns+`
	`, email)

	u, err = scanUser(row)
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func (s *PGStore) FindByID(ctx context.Context, id string) (*User, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *PGStore) Save(ctx context.Context, u *User) error {
	profileRaw, err := json.Marshal(u.Profile)
	if err != nil {
		return fmt.Errorf("user: encode profile: %w", err)
	}
	stateRaw, err := json.Marshal(u.ProviderState)
	if err != nil {
		return fmt.Errorf("user: encode provider state: %w", err)
	}

	_, err = s.q.ExecContext(ctx, `
		UPDATE users SET
			full_name = $2,
			license_verified_by = $3,
			license_verified_at = $4,
			presto_license_number = $5,
			medical_license_upload_completed_at = $6,
			license_initial_upload_completed_at = $7,
			profile = $8,
			provider_state = $9,
			first_login_at = $10,
			last_login_at = $11,
			updated_at = NOW()
		WHERE id = $1
	`,
		u.ID,
		u.FullName,
		u.LicenseVerifiedBy,
		u.LicenseVerifiedAt,
		u.PrestoLicenseNumber,
		u.MedicalLicenseUploadCompletedAt,
		u.LicenseInitialUploadCompletedAt,
		profileRaw,
		stateRaw,
		u.FirstLoginAt,
		u.LastLoginAt,
	)
	return err
}

func (s *PGStore) LinkIdentity(ctx context.Context, userID, provider, providerUserID string) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO identities (user_id, provider, provider_user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT identities_provider_unique DO NOTHING
	`, userID, provider, providerUserID)
	return err
}
