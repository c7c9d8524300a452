package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/fekuna/omnipos-mall-service/internal/store/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, s *model.Store) error {
	query := `
        INSERT INTO stores (id, merchant_id, name, category, description, logo_url, delivery_enabled, pickup_enabled,
            delivery_radius_km, min_order_value, geofence, is_active, created_at, updated_at)
        VALUES (:id, :merchant_id, :name, :category, :description, :logo_url, :delivery_enabled, :pickup_enabled,
            :delivery_radius_km, :min_order_value, :geofence, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, s)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Store, error) {
	var s model.Store
	err := r.DB.GetContext(ctx, &s, `SELECT * FROM stores WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.StoreFilters) ([]model.Store, int, error) {
	stores := []model.Store{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MerchantID != "" {
		conditions = append(conditions, "merchant_id = :merchant_id")
		args["merchant_id"] = f.MerchantID
	}
	if f.Category != "" {
		conditions = append(conditions, "category = :category")
		args["category"] = f.Category
	}
	if f.DeliveryEnabled != nil {
		conditions = append(conditions, "delivery_enabled = :delivery_enabled")
		args["delivery_enabled"] = *f.DeliveryEnabled
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM stores"+whereClause, args)
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

	query := "SELECT * FROM stores" + whereClause + " ORDER BY name ASC"
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

	if err := nstmt.SelectContext(ctx, &stores, args); err != nil {
		return nil, 0, err
	}
	return stores, count, nil
}

func (r *PGRepository) Update(ctx context.Context, s *model.Store) error {
	query := `
        UPDATE stores
        SET name = :name,
            category = :category,
            description = :description,
            logo_url = :logo_url,
            delivery_enabled = :delivery_enabled,
            pickup_enabled = :pickup_enabled,
            delivery_radius_km = :delivery_radius_km,
            min_order_value = :min_order_value,
            geofence = :geofence,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id AND merchant_id = :merchant_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, s)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, merchantID, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM stores WHERE id = $1 AND merchant_id = $2", id, merchantID)
	return err
}
