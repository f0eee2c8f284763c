package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

// InquiryRepo implements ports.InquiryRepository with pgx.
type InquiryRepo struct {
	db *DB
}

// NewInquiryRepo creates a new InquiryRepo.
func NewInquiryRepo(db *DB) *InquiryRepo {
	return &InquiryRepo{db: db}
}

// Create inserts an inquiry. Re-delivered inquiries with the same id are ignored.
func (r *InquiryRepo) Create(ctx context.Context, inq *domain.Inquiry) error {
	payload, err := json.Marshal(inq)
	if err != nil {
		return fmt.Errorf("marshal inquiry: %w", err)
	}
	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO inquiries (id, kind, email, payload, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`, inq.ID, string(inq.Kind), inq.Email(), payload, string(inq.Status), inq.SubmittedAt)
	return err
}

// GetByID returns an inquiry with its current status.
func (r *InquiryRepo) GetByID(ctx context.Context, id string) (*domain.Inquiry, error) {
	var payload []byte
	var status string
	err := r.db.Pool.QueryRow(ctx, `
		SELECT payload, status FROM inquiries WHERE id = $1
	`, id).Scan(&payload, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInquiryNotFound
	}
	if err != nil {
		return nil, err
	}

	var inq domain.Inquiry
	if err := json.Unmarshal(payload, &inq); err != nil {
		return nil, fmt.Errorf("unmarshal inquiry %s: %w", id, err)
	}
	inq.Status = domain.InquiryStatus(status)
	return &inq, nil
}

// UpdateStatus records the follow-up status.
func (r *InquiryRepo) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE inquiries SET status = $2, updated_at = now() WHERE id = $1
	`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInquiryNotFound
	}
	return nil
}
