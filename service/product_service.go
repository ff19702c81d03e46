package service

import (
	"context"
	"fmt"
	"log"

	"oferta-studio/layout"
	"oferta-studio/models"
	"oferta-studio/repository"
	"oferta-studio/utils"
)

// ProductService owns the session product list: loads it through the
// migration guard, validates edits and keeps storage in sync.
type ProductService struct {
	repo repository.ProductRepositoryInterface
}

// NewProductService creates a new ProductService
func NewProductService(repo repository.ProductRepositoryInterface) *ProductService {
	return &ProductService{repo: repo}
}

// Load hydrates the session product list from storage.
func (s *ProductService) Load(ctx context.Context, session *Session) error {
	products, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	for i := range products {
		layout.EnsureProduct(&products[i])
	}
	session.Products = products
	log.Printf("✓ Session loaded with %d products", len(products))
	return nil
}

// validate rejects products the renderer cannot price.
func (s *ProductService) validate(p *models.Product) error {
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if _, err := utils.ParseDecimal(p.Price); err != nil {
		return fmt.Errorf("invalid price %q: %w", p.Price, err)
	}
	if p.OldPrice != "" {
		if _, err := utils.ParseDecimal(p.OldPrice); err != nil {
			return fmt.Errorf("invalid old price %q: %w", p.OldPrice, err)
		}
	}
	if p.WholesalePrice != "" {
		if _, err := utils.ParseDecimal(p.WholesalePrice); err != nil {
			return fmt.Errorf("invalid wholesale price %q: %w", p.WholesalePrice, err)
		}
	}
	return nil
}

// Add appends a product to the offer.
func (s *ProductService) Add(ctx context.Context, session *Session, p *models.Product) (*models.Product, error) {
	if err := s.validate(p); err != nil {
		return nil, err
	}
	if p.Unit == "" {
		p.Unit = "un"
	}
	layout.EnsureProduct(p)

	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}
	session.Products = append(session.Products, *p)
	log.Printf("✓ Product added: %s", p.Name)
	return p, nil
}

// Update replaces an existing product in place.
func (s *ProductService) Update(ctx context.Context, session *Session, p *models.Product) (*models.Product, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("product id is required")
	}
	if err := s.validate(p); err != nil {
		return nil, err
	}
	layout.EnsureProduct(p)

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	for i := range session.Products {
		if session.Products[i].ID == p.ID {
			session.Products[i] = *p
			return p, nil
		}
	}
	// Persisted but not in the session list; reload keeps them aligned.
	log.Printf("⚠️  Updated product %s was not in the session, reloading", p.ID)
	if err := s.Load(ctx, session); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a product from the offer.
func (s *ProductService) Delete(ctx context.Context, session *Session, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	for i := range session.Products {
		if session.Products[i].ID == id {
			session.Products = append(session.Products[:i], session.Products[i+1:]...)
			break
		}
	}
	return nil
}

// Reorder rewrites the slide order from a list of product ids. Every id
// must belong to the session and every session product must appear once.
func (s *ProductService) Reorder(ctx context.Context, session *Session, ids []string) error {
	if len(ids) != len(session.Products) {
		return fmt.Errorf("reorder needs all %d product ids, got %d", len(session.Products), len(ids))
	}

	byID := make(map[string]*models.Product, len(session.Products))
	for i := range session.Products {
		byID[session.Products[i].ID] = &session.Products[i]
	}

	ordered := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return fmt.Errorf("unknown product id %q in reorder", id)
		}
		ordered = append(ordered, *p)
		delete(byID, id)
	}

	if err := s.repo.SaveAll(ctx, ordered); err != nil {
		return err
	}
	session.Products = ordered
	log.Printf("🔄 Products reordered")
	return nil
}
