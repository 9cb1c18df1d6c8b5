package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	domproduct "github.com/JoelVR2k/InventoryManager/internal/domain/product"
)

// ProductRepository persists products in MySQL. The DSN must carry
// parseTime=true so DATE columns scan into time.Time.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = "id, name, category, unit_price, quantity_in_stock, expiration_date"

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO products (name, category, unit_price, quantity_in_stock, expiration_date)
        VALUES (?, ?, ?, ?, ?)
    `, p.Name, string(p.Category), p.UnitPrice, p.QuantityInStock, p.ExpirationDate)
	if err != nil {
		return nil, err
	}
	p.ID, _ = res.LastInsertId()
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE products SET name = ?, category = ?, unit_price = ?, quantity_in_stock = ?, expiration_date = ?
        WHERE id = ?
    `, p.Name, string(p.Category), p.UnitPrice, p.QuantityInStock, p.ExpirationDate, p.ID)
	if err != nil {
		return nil, err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		// MySQL reports zero affected rows for a no-op update too, so make
		// sure the product actually is gone before claiming not found.
		if _, err := r.GetByID(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domproduct.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context, filter domproduct.ListFilter) (*domproduct.Page, error) {
	where, args := buildWhere(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM products` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
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

	query := `SELECT ` + productColumns + ` FROM products` + where +
		` ORDER BY ` + orderClause(filter.SortKey, filter.Desc) + ` LIMIT ? OFFSET ?`
	listArgs := append(append([]any{}, args...), size, page*size)

	rows, err := r.db.QueryContext(ctx, query, listArgs...)
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
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
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

	if filter.Name != "" {
		clauses = append(clauses, "LOWER(name) LIKE ?")
		args = append(args, fmt.Sprintf("%%%s%%", strings.ToLower(filter.Name)))
	}
	if filter.Category != "" {
		aliases := domproduct.CategoryAliases(domproduct.NormalizeCategory(filter.Category))
		placeholders := strings.Repeat(",?", len(aliases))[1:]
		clauses = append(clauses, "LOWER(category) IN ("+placeholders+")")
		for _, alias := range aliases {
			args = append(args, alias)
		}
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
		return "expiration_date IS NULL ASC, expiration_date " + dir
	case domproduct.SortByID:
		return "id " + dir
	}
	return "id ASC"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domproduct.Product, error) {
	var (
		p        domproduct.Product
		category string
		expiry   sql.NullTime
	)
	if err := row.Scan(&p.ID, &p.Name, &category, &p.UnitPrice, &p.QuantityInStock, &expiry); err != nil {
		return nil, err
	}
	p.Category = domproduct.Category(category)
	if expiry.Valid {
		d := expiry.Time
		p.ExpirationDate = &d
	}
	return &p, nil
}
