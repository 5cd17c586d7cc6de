package inquiry

import (
	"context"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"wardrobe-storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, in domain.Inquiry) (*domain.Inquiry, error) {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	const q = `
INSERT INTO inquiries (id, name, email, subject, message, type)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at
`
	out := in
	if err := r.pool.QueryRow(ctx, q, in.ID, in.Name, in.Email, in.Subject, in.Message, in.Type).Scan(&out.CreatedAt); err != nil {
		r.logger.Printf("inquiry repo: create type=%s error=%v", in.Type, err)
		return nil, err
	}
	r.logger.Printf("inquiry repo: created id=%s type=%s", out.ID, out.Type)
	return &out, nil
}
