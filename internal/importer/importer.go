package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"wardrobe-storefront/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type FacetWriter interface {
	Upsert(ctx context.Context, f domain.Facet) (*domain.Facet, error)
}

// CSVImporter reads vendor listing exports and inserts/updates products.
// Categories and locations met along the way are registered as facets.
type CSVImporter struct {
	reader    *csv.Reader
	products  ProductWriter
	facets    FacetWriter
	position  int
	seenFacet map[domain.Facet]struct{}
	facetPos  map[domain.FacetKind]int
}

// NewCSVImporter reads from r. facets may be nil to skip facet registration.
// Imported products are positioned after startPosition in catalog order.
func NewCSVImporter(r io.Reader, products ProductWriter, facets FacetWriter, startPosition int) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:    csvr,
		products:  products,
		facets:    facets,
		position:  startPosition,
		seenFacet: map[domain.Facet]struct{}{},
		facetPos:  map[domain.FacetKind]int{},
	}
}

type csvRow struct {
	line            int
	ID              string
	Name            string
	Desc            string
	Category        string
	BuyPrice        string
	RentPrice       string
	SecurityDeposit string
	Vendor          string
	VendorID        string
	Rating          string
	Reviews         string
	Tags            []string
	Availability    string
	Location        string
	RentalType      string
	ImageURLs       []string
}

// Run parses CSV rows and upserts products grouped by product id. A row
// without an id continues the previous product with another image.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, errors.Wrap(err, "read headers")
	}
	index := headerIndex(headers)

	var (
		current  *csvRow
		imported int
		line     = 1
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, errors.Wrap(err, "read row")
		}
		line++

		row := parseRow(record, index)
		if row == nil {
			continue
		}
		row.line = line

		if row.ID != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		if current != nil && len(row.ImageURLs) > 0 {
			current.ImageURLs = append(current.ImageURLs, row.ImageURLs...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	p, err := row.product()
	if err != nil {
		return errors.Wrapf(err, "line %d: product %q", row.line, row.ID)
	}
	p.Position = i.position
	if err := p.Validate(); err != nil {
		return errors.Wrapf(err, "line %d: product %q", row.line, row.ID)
	}

	if err := i.registerFacet(ctx, domain.FacetCategory, p.Category); err != nil {
		return err
	}
	if err := i.registerFacet(ctx, domain.FacetLocation, p.Location); err != nil {
		return err
	}
	if _, err := i.products.Upsert(ctx, p); err != nil {
		return errors.Wrapf(err, "upsert product %q", row.ID)
	}
	i.position++
	return nil
}

func (i *CSVImporter) registerFacet(ctx context.Context, kind domain.FacetKind, name string) error {
	if i.facets == nil || name == "" {
		return nil
	}
	key := domain.Facet{Kind: kind, Name: name}
	if _, ok := i.seenFacet[key]; ok {
		return nil
	}
	f := key
	f.Position = i.facetPos[kind]
	if _, err := i.facets.Upsert(ctx, f); err != nil {
		return errors.Wrapf(err, "upsert %s %q", kind, name)
	}
	i.seenFacet[key] = struct{}{}
	i.facetPos[kind]++
	return nil
}

func (r *csvRow) product() (domain.Product, error) {
	p := domain.Product{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Desc,
		Images:       r.ImageURLs,
		Category:     r.Category,
		Vendor:       r.Vendor,
		VendorID:     r.VendorID,
		Tags:         r.Tags,
		Availability: domain.Availability(strings.ToLower(r.Availability)),
		Location:     r.Location,
		RentalType:   domain.RentalType(strings.ToLower(r.RentalType)),
	}
	if p.Availability == "" {
		p.Availability = domain.AvailabilityAvailable
	}

	var err error
	if p.BuyPrice, err = optionalPrice("buyPrice", r.BuyPrice); err != nil {
		return p, err
	}
	if p.RentPrice, err = optionalPrice("rentPrice", r.RentPrice); err != nil {
		return p, err
	}
	if p.SecurityDeposit, err = optionalPrice("securityDeposit", r.SecurityDeposit); err != nil {
		return p, err
	}
	if r.Rating != "" {
		if p.Rating, err = strconv.ParseFloat(r.Rating, 64); err != nil {
			return p, domain.Invalid("rating must be a number")
		}
	}
	if r.Reviews != "" {
		if p.Reviews, err = strconv.Atoi(r.Reviews); err != nil {
			return p, domain.Invalid("reviews must be a whole number")
		}
	}
	return p, nil
}

func optionalPrice(field, v string) (decimal.NullDecimal, error) {
	if v == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.NullDecimal{}, domain.Invalid(fmt.Sprintf("%s must be a number", field))
	}
	return domain.Price(d), nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	id := pick(record, index, "id")
	imageURL := pick(record, index, "image")

	if id == "" && imageURL == "" {
		return nil
	}

	row := &csvRow{
		ID:              id,
		Name:            pick(record, index, "name"),
		Desc:            pick(record, index, "description"),
		Category:        pick(record, index, "category"),
		BuyPrice:        pick(record, index, "buyPrice"),
		RentPrice:       pick(record, index, "rentPrice"),
		SecurityDeposit: pick(record, index, "securityDeposit"),
		Vendor:          pick(record, index, "vendor"),
		VendorID:        pick(record, index, "vendorId"),
		Rating:          pick(record, index, "rating"),
		Reviews:         pick(record, index, "reviews"),
		Tags:            splitList(pick(record, index, "tags")),
		Availability:    pick(record, index, "availability"),
		Location:        pick(record, index, "location"),
		RentalType:      pick(record, index, "rentalType"),
	}
	if imageURL != "" {
		row.ImageURLs = []string{imageURL}
	}
	return row
}

// splitList reads a semicolon separated cell.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
