package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"kyc-gateway/internal/issuer/models"
	id "kyc-gateway/pkg/domain"
	"kyc-gateway/pkg/platform/sentinel"
)

// PostgresStore persists issuers in PostgreSQL. Schema lives in
// migrations/002_issuers.sql.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const issuerColumns = `uuid, name, did, customer_uuid, issuer_uuid, api_key,
	signing_private_key, encryption_private_key, signing_key_id,
	encryption_key_id, auth_token, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, issuer *models.Issuer) error {
	now := time.Now()
	issuer.CreatedAt = now
	issuer.UpdatedAt = now
	_, err := s.db.ExecContext(ctx, `INSERT INTO issuers (`+issuerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		uuid.UUID(issuer.ID), issuer.Name, issuer.DID, issuer.CustomerUUID,
		issuer.IssuerUUID, issuer.APIKey, issuer.SigningPrivateKey,
		issuer.EncryptionPrivateKey, issuer.SigningKeyID, issuer.EncryptionKeyID,
		issuer.AuthToken, issuer.CreatedAt, issuer.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create issuer: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, issuerID id.IssuerID) (*models.Issuer, error) {
	return s.findOne(ctx, `SELECT `+issuerColumns+` FROM issuers WHERE uuid = $1`, uuid.UUID(issuerID))
}

func (s *PostgresStore) FindByDID(ctx context.Context, did string) (*models.Issuer, error) {
	return s.findOne(ctx, `SELECT `+issuerColumns+` FROM issuers WHERE did = $1`, did)
}

func (s *PostgresStore) SetAuthToken(ctx context.Context, issuerID id.IssuerID, oldToken, newToken string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE issuers SET auth_token = $3, updated_at = $4
		 WHERE uuid = $1 AND auth_token = $2`,
		uuid.UUID(issuerID), oldToken, newToken, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("set issuer auth token: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set issuer auth token rows affected: %w", err)
	}
	if affected == 1 {
		return nil
	}
	// Zero rows: either the issuer is gone or another writer rotated first.
	if _, err := s.FindByID(ctx, issuerID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("set issuer auth token: %w", err)
	}
	return sentinel.ErrConflict
}

func (s *PostgresStore) findOne(ctx context.Context, query string, arg any) (*models.Issuer, error) {
	row := s.db.QueryRowContext(ctx, query, arg)
	var issuer models.Issuer
	var rowID uuid.UUID
	err := row.Scan(&rowID, &issuer.Name, &issuer.DID, &issuer.CustomerUUID,
		&issuer.IssuerUUID, &issuer.APIKey, &issuer.SigningPrivateKey,
		&issuer.EncryptionPrivateKey, &issuer.SigningKeyID, &issuer.EncryptionKeyID,
		&issuer.AuthToken, &issuer.CreatedAt, &issuer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find issuer: %w", err)
	}
	issuer.ID = id.IssuerID(rowID)
	return &issuer, nil
}
