package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domproduct "github.com/JoelVR2k/InventoryManager/internal/domain/product"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = "id, name, category, unit_price, quantity_in_stock, expiration_date"

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	err := r.pool.QueryRow(ctx, `
        INSERT INTO products (name, category, unit_price, quantity_in_stock, expiration_date)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, p.Name, string(p.Category), p.UnitPrice, p.QuantityInStock, p.ExpirationDate).Scan(&p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	tag, err := r.pool.Exec(ctx, `
        UPDATE products SET name = $1, category = $2, unit_price = $3, quantity_in_stock = $4, expiration_date = $5
        WHERE id = $6
    `, p.Name, string(p.Category), p.UnitPrice, p.QuantityInStock, p.ExpirationDate, p.ID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domproduct.ErrProductNotFound
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domproduct.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context, filter domproduct.ListFilter) (*domproduct.Page, error) {
	where, args := buildWhere(filter)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	size := filter.Size
	if size <= 0 {
		size = domproduct.DefaultPageSize
	}
	page := filter.Page
	if page < 0 {
		page = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		productColumns, where, orderClause(filter.SortKey, filter.Desc), len(args)+1, len(args)+2)
	listArgs := append(append([]any{}, args...), size, page*size)

	rows, err := r.pool.Query(ctx, query, listArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	content := make([]*domproduct.Product, 0, size)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		content = append(content, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domproduct.Page{
		Content:       content,
		TotalElements: total,
		TotalPages:    int((total + int64(size) - 1) / int64(size)),
		Number:        page,
		Size:          size,
	}, nil
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]*domproduct.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domproduct.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func buildWhere(filter domproduct.ListFilter) (string, []any) {
	var clauses []string
	var args []any

	next := func() int { return len(args) + 1 }

	if filter.Name != "" {
		clauses = append(clauses, fmt.Sprintf("name ILIKE $%d", next()))
		args = append(args, "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		aliases := domproduct.CategoryAliases(domproduct.NormalizeCategory(filter.Category))
		clauses = append(clauses, fmt.Sprintf("LOWER(category) = ANY($%d)", next()))
		args = append(args, aliases)
	}
	switch filter.Available {
	case domproduct.AvailableIn:
		clauses = append(clauses, "quantity_in_stock > 0")
	case domproduct.AvailableOut:
		clauses = append(clauses, "quantity_in_stock <= 0")
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// orderClause maps the whitelisted sort keys to column expressions. Missing
// expiration dates always sort last, matching domproduct.Sort.
func orderClause(key string, desc bool) string {
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	switch key {
	case domproduct.SortByName:
		return "LOWER(name) " + dir
	case domproduct.SortByCategory:
		return "LOWER(category) " + dir
	case domproduct.SortByPrice:
		return "unit_price " + dir
	case domproduct.SortByStock:
		return "quantity_in_stock " + dir
	case domproduct.SortByExpiry:
		return "expiration_date " + dir + " NULLS LAST"
	case domproduct.SortByID:
		return "id " + dir
	}
	return "id ASC"
}

func scanProduct(row pgx.Row) (*domproduct.Product, error) {
	var (
		p        domproduct.Product
		category string
	)
	if err := row.Scan(&p.ID, &p.Name, &category, &p.UnitPrice, &p.QuantityInStock, &p.ExpirationDate); err != nil {
		return nil, err
	}
	p.Category = domproduct.Category(category)
	return &p, nil
}
