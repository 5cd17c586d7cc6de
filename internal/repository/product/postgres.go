package product

import (
	"context"
	"io"
	"log"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"wardrobe-storefront/internal/db"
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

const selectColumns = `
SELECT id, name, description, images, category,
       buy_price::text, rent_price::text, security_deposit::text,
       vendor, vendor_id, rating, reviews, tags, availability, location, rental_type,
       position, created_at
FROM products
`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, selectColumns+`ORDER BY position ASC, id ASC`)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("product repo: list count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, selectColumns+`WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("product repo: get id=%s name=%q", id, p.Name)
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}
	const q = `
INSERT INTO products (id, name, description, images, category, buy_price, rent_price, security_deposit,
                      vendor, vendor_id, rating, reviews, tags, availability, location, rental_type, position)
VALUES ($1, $2, $3, COALESCE($4, '{}'::text[]), $5, $6::numeric, $7::numeric, $8::numeric,
        $9, $10, $11, $12, COALESCE($13, '{}'::text[]), $14, $15, $16, $17)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    images = EXCLUDED.images,
    category = EXCLUDED.category,
    buy_price = EXCLUDED.buy_price,
    rent_price = EXCLUDED.rent_price,
    security_deposit = EXCLUDED.security_deposit,
    vendor = EXCLUDED.vendor,
    vendor_id = EXCLUDED.vendor_id,
    rating = EXCLUDED.rating,
    reviews = EXCLUDED.reviews,
    tags = EXCLUDED.tags,
    availability = EXCLUDED.availability,
    location = EXCLUDED.location,
    rental_type = EXCLUDED.rental_type,
    position = EXCLUDED.position
RETURNING created_at
`
	res := product
	err := r.pool.QueryRow(ctx, q,
		product.ID,
		product.Name,
		product.Description,
		product.Images,
		product.Category,
		numericArg(product.BuyPrice),
		numericArg(product.RentPrice),
		numericArg(product.SecurityDeposit),
		product.Vendor,
		product.VendorID,
		product.Rating,
		product.Reviews,
		product.Tags,
		string(product.Availability),
		product.Location,
		string(product.RentalType),
		product.Position,
	).Scan(&res.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert id=%s error=%v", product.ID, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted id=%s position=%d", res.ID, res.Position)
	return &res, nil
}

// numericArg renders an optional price as NUMERIC text, nil meaning NULL.
func numericArg(p decimal.NullDecimal) *string {
	if !p.Valid {
		return nil
	}
	s := p.Decimal.String()
	return &s
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p                        domain.Product
		buy, rent, deposit       *string
		availability, rentalType string
	)
	if err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Images, &p.Category,
		&buy, &rent, &deposit,
		&p.Vendor, &p.VendorID, &p.Rating, &p.Reviews, &p.Tags, &availability, &p.Location, &rentalType,
		&p.Position, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.Availability = domain.Availability(availability)
	p.RentalType = domain.RentalType(rentalType)

	var err error
	if p.BuyPrice, err = db.NullNumeric(buy); err != nil {
		return nil, err
	}
	if p.RentPrice, err = db.NullNumeric(rent); err != nil {
		return nil, err
	}
	if p.SecurityDeposit, err = db.NullNumeric(deposit); err != nil {
		return nil, err
	}
	return &p, nil
}
