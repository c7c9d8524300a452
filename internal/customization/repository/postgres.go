package repository

import (
	"context"

	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ListGroups(ctx context.Context, productID string) ([]model.CustomizationGroup, error) {
	groups := []model.CustomizationGroup{}
	query := `SELECT * FROM customization_groups WHERE product_id = $1 ORDER BY position`
	if err := r.DB.SelectContext(ctx, &groups, query, productID); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *PGRepository) ListCustomizations(ctx context.Context, productID string) ([]model.Customization, error) {
	items := []model.Customization{}
	query := `SELECT * FROM customizations WHERE product_id = $1 ORDER BY position`
	if err := r.DB.SelectContext(ctx, &items, query, productID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGRepository) ReplaceGroups(ctx context.Context, productID string, groups []model.CustomizationGroup) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM customization_groups WHERE product_id = $1`, productID); err != nil {
		return err
	}

	ids := make([]string, 0, len(groups))
	for i := range groups {
		g := &groups[i]
		g.ProductID = productID
		g.Position = i
		ids = append(ids, g.ID)
		_, err := tx.NamedExecContext(ctx, `
            INSERT INTO customization_groups (id, product_id, name, seq, min_select, max_select, position, created_at, updated_at)
            VALUES (:id, :product_id, :name, :seq, :min_select, :max_select, :position, :created_at, :updated_at)
        `, g)
		if err != nil {
			return err
		}
	}

	if len(ids) == 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM customizations WHERE product_id = $1`, productID); err != nil {
			return err
		}
		return tx.Commit()
	}

	query, args, err := sqlx.In(`DELETE FROM customizations WHERE product_id = ? AND parent_group_id NOT IN (?)`, productID, ids)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return err
	}
	// options that unlocked a removed group no longer unlock anything
	query, args, err = sqlx.In(`UPDATE customizations SET child_group_id = NULL WHERE product_id = ? AND child_group_id NOT IN (?)`, productID, ids)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PGRepository) ReplaceCustomizations(ctx context.Context, productID string, items []model.Customization) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM customizations WHERE product_id = $1`, productID); err != nil {
		return err
	}
	for i := range items {
		c := &items[i]
		c.ProductID = productID
		c.Position = i
		_, err := tx.NamedExecContext(ctx, `
            INSERT INTO customizations (id, product_id, parent_group_id, child_group_id, name, price, is_default, position, created_at, updated_at)
            VALUES (:id, :product_id, :parent_group_id, :child_group_id, :name, :price, :is_default, :position, :created_at, :updated_at)
        `, c)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
