package facet

import (
	"context"
	"io"
	"log"

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

func (r *postgresRepo) List(ctx context.Context, kind domain.FacetKind) ([]domain.Facet, error) {
	const q = `
SELECT kind, name, position
FROM catalog_facets
WHERE kind = $1
ORDER BY position ASC, name ASC
`
	rows, err := r.pool.Query(ctx, q, string(kind))
	if err != nil {
		r.logger.Printf("facet repo: list kind=%s error=%v", kind, err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.Facet{}
	for rows.Next() {
		var f pgFacet
		if err := rows.Scan(&f.kind, &f.name, &f.position); err != nil {
			return nil, err
		}
		result = append(result, f.domain())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, f domain.Facet) (*domain.Facet, error) {
	switch f.Kind {
	case domain.FacetCategory, domain.FacetLocation:
	default:
		return nil, domain.Invalid("unknown facet kind " + string(f.Kind))
	}
	if f.Name == "" {
		return nil, domain.Invalid("facet name required")
	}
	const q = `
INSERT INTO catalog_facets (kind, name, position)
VALUES ($1, $2, $3)
ON CONFLICT (kind, name) DO UPDATE
SET position = EXCLUDED.position
RETURNING kind, name, position
`
	var out pgFacet
	if err := r.pool.QueryRow(ctx, q, string(f.Kind), f.Name, f.Position).Scan(&out.kind, &out.name, &out.position); err != nil {
		r.logger.Printf("facet repo: upsert kind=%s name=%q error=%v", f.Kind, f.Name, err)
		return nil, err
	}
	res := out.domain()
	return &res, nil
}

type pgFacet struct {
	kind     string
	name     string
	position int
}

func (f pgFacet) domain() domain.Facet {
	return domain.Facet{Kind: domain.FacetKind(f.kind), Name: f.name, Position: f.position}
}
