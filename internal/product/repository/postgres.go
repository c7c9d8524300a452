package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/fekuna/omnipos-mall-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

const insertProduct = `
        INSERT INTO products (
            id, merchant_id, store_id, parent_id, sku, name, description,
            mrp, selling_price, gst_percentage, quantity, weight,
            image_url, is_active, created_at, updated_at
        )
        VALUES (
            :id, :merchant_id, :store_id, :parent_id, :sku, :name, :description,
            :mrp, :selling_price, :gst_percentage, :quantity, :weight,
            :image_url, :is_active, :created_at, :updated_at
        )
    `

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	_, err := r.DB.NamedExecContext(ctx, insertProduct, p)
	return err
}

// CreateMany inserts all products in one transaction; any failure rolls back the batch.
func (r *PGRepository) CreateMany(ctx context.Context, products []*model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range products {
		if _, err := tx.NamedExecContext(ctx, insertProduct, p); err != nil {
			return fmt.Errorf("insert product %s: %w", p.SKU, err)
		}
	}
	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MerchantID != "" {
		conditions = append(conditions, "merchant_id = :merchant_id")
		args["merchant_id"] = f.MerchantID
	}
	if f.StoreID != "" {
		conditions = append(conditions, "store_id = :store_id")
		args["store_id"] = f.StoreID
	}
	if f.ParentID != nil {
		if *f.ParentID == "" {
			conditions = append(conditions, "parent_id IS NULL")
		} else {
			conditions = append(conditions, "parent_id = :parent_id")
			args["parent_id"] = *f.ParentID
		}
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR sku ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			rows.Close()
			return nil, 0, err
		}
	}
	rows.Close()

	orderBy := "created_at DESC"
	if f.SortBy != "" {
		// whitelist, never interpolate user input
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "price":
			orderBy = "selling_price"
		default:
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s", whereClause, orderBy)

	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *PGRepository) FindFamily(ctx context.Context, merchantID, rootID string) ([]model.Product, error) {
	var products []model.Product
	query := `
        SELECT * FROM products
        WHERE merchant_id = $1 AND (id = $2 OR parent_id = $2)
        ORDER BY (parent_id IS NOT NULL), created_at, id
    `
	if err := r.DB.SelectContext(ctx, &products, query, merchantID, rootID); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET store_id = :store_id,
            sku = :sku,
            name = :name,
            description = :description,
            mrp = :mrp,
            selling_price = :selling_price,
            gst_percentage = :gst_percentage,
            quantity = :quantity,
            weight = :weight,
            image_url = :image_url,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id AND merchant_id = :merchant_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

// Delete removes the product and, for a root, its variants.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1 OR parent_id = $1", id)
	return err
}

func (r *PGRepository) IsSKUUnique(ctx context.Context, merchantID, sku, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE merchant_id = $1 AND sku = $2`
	args := []interface{}{merchantID, sku}
	if excludeID != "" {
		query += ` AND id != $3`
		args = append(args, excludeID)
	}

	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count == 0, nil
}
