package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"kyc-gateway/internal/user/models"
	id "kyc-gateway/pkg/domain"
	"kyc-gateway/pkg/platform/sentinel"
)

// PostgresStore persists users in PostgreSQL. Schema lives in
// migrations/001_users.sql; did and user_code are nullable with partial
// unique indexes, so uniqueness only binds while the value is set.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `uuid, did, user_code,
	prove_phone, prove_dob, prove_ssn, prove_first_name, prove_last_name,
	doc_dob, doc_gender, doc_full_name, doc_address, doc_country, doc_type,
	doc_image, face_image, live_face, live_face_confidence, face_match,
	face_match_confidence, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	_, err := s.db.ExecContext(ctx, `INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22)`,
		uuid.UUID(user.ID), nullable(user.DID), nullable(user.UserCode),
		user.ProvePhone, user.ProveDob, user.ProveSsn, user.ProveFirstName, user.ProveLastName,
		user.DocDob, user.DocGender, user.DocFullName, user.DocAddress, user.DocCountry, user.DocType,
		user.DocImage, user.FaceImage, user.LiveFace, user.LiveFaceConfidence, user.FaceMatch,
		user.FaceMatchConfidence, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	return s.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE uuid = $1`, uuid.UUID(userID))
}

func (s *PostgresStore) FindByDID(ctx context.Context, did string) (*models.User, error) {
	if did == "" {
		return nil, sentinel.ErrNotFound
	}
	return s.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE did = $1`, did)
}

func (s *PostgresStore) FindByUserCode(ctx context.Context, userCode string) (*models.User, error) {
	if userCode == "" {
		return nil, sentinel.ErrNotFound
	}
	return s.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE user_code = $1`, userCode)
}

func (s *PostgresStore) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	if phone == "" {
		return nil, sentinel.ErrNotFound
	}
	return s.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE prove_phone = $1
		ORDER BY created_at DESC LIMIT 1`, phone)
}

func (s *PostgresStore) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	result, err := s.db.ExecContext(ctx, `UPDATE users SET
		did = $2, user_code = $3,
		prove_phone = $4, prove_dob = $5, prove_ssn = $6, prove_first_name = $7, prove_last_name = $8,
		doc_dob = $9, doc_gender = $10, doc_full_name = $11, doc_address = $12, doc_country = $13,
		doc_type = $14, doc_image = $15, face_image = $16, live_face = $17,
		live_face_confidence = $18, face_match = $19, face_match_confidence = $20,
		updated_at = $21
		WHERE uuid = $1`,
		uuid.UUID(user.ID), nullable(user.DID), nullable(user.UserCode),
		user.ProvePhone, user.ProveDob, user.ProveSsn, user.ProveFirstName, user.ProveLastName,
		user.DocDob, user.DocGender, user.DocFullName, user.DocAddress, user.DocCountry,
		user.DocType, user.DocImage, user.FaceImage, user.LiveFace,
		user.LiveFaceConfidence, user.FaceMatch, user.FaceMatchConfidence,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, query, arg)
	var user models.User
	var rowID uuid.UUID
	var did, userCode sql.NullString
	err := row.Scan(&rowID, &did, &userCode,
		&user.ProvePhone, &user.ProveDob, &user.ProveSsn, &user.ProveFirstName, &user.ProveLastName,
		&user.DocDob, &user.DocGender, &user.DocFullName, &user.DocAddress, &user.DocCountry,
		&user.DocType, &user.DocImage, &user.FaceImage, &user.LiveFace,
		&user.LiveFaceConfidence, &user.FaceMatch, &user.FaceMatchConfidence,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	user.ID = id.UserID(rowID)
	user.DID = did.String
	user.UserCode = userCode.String
	return &user, nil
}

func nullable(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
