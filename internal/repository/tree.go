package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/assembly/internal/domain"
)

type TreeRepository interface {
	SaveTree(ctx context.Context, productID, skuID string, tree map[string]*domain.OptionGroup) error
	DeleteTreesForProduct(ctx context.Context, productID string) error
}

type treeRepository struct {
	db *pgxpool.Pool
}

func NewTreeRepository(db *pgxpool.Pool) TreeRepository {
	return &treeRepository{
		db: db,
	}
}

func (r *treeRepository) SaveTree(ctx context.Context, productID, skuID string, tree map[string]*domain.OptionGroup) error {
	query := `
	INSERT INTO assembly_trees (sku_id, product_id, tree)
	VALUES ($1, $2, $3)
	ON CONFLICT (sku_id)
	DO UPDATE SET product_id = $2, tree = $3, updated_at = now()`
	_, err := r.db.Exec(ctx, query, skuID, productID, tree)
	if err != nil {
		return fmt.Errorf("failed to save assembly tree for sku %s: %w", skuID, err)
	}

	return nil
}

// DeleteTreesForProduct removes trees of SKUs that no longer carry assembly
// options after a resync.
func (r *treeRepository) DeleteTreesForProduct(ctx context.Context, productID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM assembly_trees WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete assembly trees for product %s: %w", productID, err)
	}
	return nil
}
