package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"oferta-studio/db"
	"oferta-studio/layout"
	"oferta-studio/models"
)

// ProductRepository stores products as jsonb documents, ordered by an
// explicit position so slide order survives round trips.
// Implements ProductRepositoryInterface
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

// decodeProductRow runs a stored document through the migration guard.
// An unrecognizable document is replaced by a default product keeping the
// row id, so a corrupt row never changes the slide count.
func decodeProductRow(id string, raw []byte) *models.Product {
	p, err := layout.ProductFromJSON(raw)
	if err != nil {
		log.Printf("⚠️  Product %s has an invalid document, replacing with default: %v", id, err)
		p = models.DefaultProduct()
	}
	p.ID = id
	return p
}

// List returns all products in slide order. Documents pass through the
// migration guard on the way out.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	query := `SELECT id, doc FROM products ORDER BY position ASC, created_at ASC`
	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			log.Printf("❌ Error scanning product row: %v", err)
			continue
		}
		products = append(products, *decodeProductRow(id, raw))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	log.Printf("✓ Loaded %d products", len(products))
	return products, nil
}

// GetByID retrieves one product.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var raw []byte
	query := `SELECT doc FROM products WHERE id = $1`
	err := db.DB.QueryRowContext(ctx, query, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return decodeProductRow(id, raw), nil
}

// Insert stores a new product at the end of the slide order, assigning
// an id if the caller did not.
func (r *ProductRepository) Insert(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	raw, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to encode product: %w", err)
	}

	query := `
		INSERT INTO products (id, doc, position, created_at)
		VALUES ($1, $2, COALESCE((SELECT MAX(position) + 1 FROM products), 0), NOW())
	`
	if _, err := db.DB.ExecContext(ctx, query, product.ID, raw); err != nil {
		log.Printf("❌ Error inserting product %s: %v", product.Name, err)
		return fmt.Errorf("failed to insert product: %w", err)
	}

	log.Printf("💾 Product inserted: %s (%s)", product.Name, product.ID)
	return nil
}

// Update replaces a product's document.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to encode product: %w", err)
	}

	result, err := db.DB.ExecContext(ctx, `UPDATE products SET doc = $1 WHERE id = $2`, raw, product.ID)
	if err != nil {
		log.Printf("❌ Error updating product %s: %v", product.ID, err)
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("⚠️  Warning: Could not get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product %s not found", product.ID)
	}

	log.Printf("💾 Product updated: %s", product.ID)
	return nil
}

// Delete removes a product.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("⚠️  Warning: Could not get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product %s not found", id)
	}

	log.Printf("🗑️  Product deleted: %s", id)
	return nil
}

// SaveAll replaces the whole product list in one transaction, taking
// slide order from the slice order.
func (r *ProductRepository) SaveAll(ctx context.Context, products []models.Product) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	for i := range products {
		if products[i].ID == "" {
			products[i].ID = uuid.NewString()
		}
		raw, err := json.Marshal(&products[i])
		if err != nil {
			return fmt.Errorf("failed to encode product %s: %w", products[i].Name, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO products (id, doc, position, created_at) VALUES ($1, $2, $3, NOW())`,
			products[i].ID, raw, i)
		if err != nil {
			return fmt.Errorf("failed to insert product %s: %w", products[i].Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit products: %w", err)
	}

	log.Printf("💾 Saved %d products", len(products))
	return nil
}
