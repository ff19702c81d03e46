package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oferta-studio/models"
)

// stubProductRepo is an in-memory ProductRepositoryInterface.
type stubProductRepo struct {
	products []models.Product
	saveAll  [][]string // ids of each SaveAll call, in order
	failNext error
}

func (r *stubProductRepo) take() error {
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *stubProductRepo) List(context.Context) ([]models.Product, error) {
	if err := r.take(); err != nil {
		return nil, err
	}
	return models.CloneProducts(r.products), nil
}

func (r *stubProductRepo) GetByID(_ context.Context, id string) (*models.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			return r.products[i].Clone(), nil
		}
	}
	return nil, errors.New("product not found")
}

func (r *stubProductRepo) Insert(_ context.Context, p *models.Product) error {
	if err := r.take(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = fmt.Sprintf("p%d", len(r.products)+1)
	}
	r.products = append(r.products, *p.Clone())
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, p *models.Product) error {
	if err := r.take(); err != nil {
		return err
	}
	for i := range r.products {
		if r.products[i].ID == p.ID {
			r.products[i] = *p.Clone()
			return nil
		}
	}
	return errors.New("product not found")
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return errors.New("product not found")
}

func (r *stubProductRepo) SaveAll(_ context.Context, products []models.Product) error {
	if err := r.take(); err != nil {
		return err
	}
	ids := make([]string, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	r.saveAll = append(r.saveAll, ids)
	r.products = models.CloneProducts(products)
	return nil
}

func TestProductServiceAdd(t *testing.T) {
	repo := &stubProductRepo{}
	svc := NewProductService(repo)
	session := NewSession()

	added, err := svc.Add(context.Background(), session, &models.Product{
		Name:  "Tomate Italiano",
		Price: "7,99",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "un", added.Unit, "unit defaults to un")
	require.Len(t, session.Products, 1)

	for _, id := range models.FormatIDs() {
		layout, ok := added.Layouts[id]
		require.True(t, ok, "missing layout for %s", id)
		assert.Equal(t, 1.0, layout.Image.Scale)
	}
}

func TestProductServiceAddRejectsInvalid(t *testing.T) {
	svc := NewProductService(&stubProductRepo{})
	session := NewSession()

	tests := []struct {
		name    string
		product models.Product
	}{
		{"empty name", models.Product{Price: "1.00"}},
		{"bad price", models.Product{Name: "Banana", Price: "abc"}},
		{"bad old price", models.Product{Name: "Banana", Price: "1.00", OldPrice: "x"}},
		{"bad wholesale price", models.Product{Name: "Banana", Price: "1.00", WholesalePrice: "//"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), session, &tt.product)
			assert.Error(t, err)
		})
	}
	assert.Empty(t, session.Products, "rejected products must not enter the session")
}

func TestProductServiceUpdate(t *testing.T) {
	repo := &stubProductRepo{products: []models.Product{
		{ID: "p1", Name: "Banana", Price: "3.99", Unit: "kg"},
	}}
	svc := NewProductService(repo)
	session := NewSession()
	require.NoError(t, svc.Load(context.Background(), session))

	updated, err := svc.Update(context.Background(), session, &models.Product{
		ID: "p1", Name: "Banana Prata", Price: "4,49", Unit: "kg",
	})
	require.NoError(t, err)
	assert.Equal(t, "Banana Prata", updated.Name)
	assert.Equal(t, "Banana Prata", session.Products[0].Name)
}

func TestProductServiceUpdateRequiresID(t *testing.T) {
	svc := NewProductService(&stubProductRepo{})
	_, err := svc.Update(context.Background(), NewSession(), &models.Product{Name: "Banana", Price: "1.00"})
	assert.Error(t, err)
}

func TestProductServiceDelete(t *testing.T) {
	repo := &stubProductRepo{products: []models.Product{
		{ID: "p1", Name: "Banana", Price: "3.99"},
		{ID: "p2", Name: "Maçã", Price: "5.99"},
	}}
	svc := NewProductService(repo)
	session := NewSession()
	require.NoError(t, svc.Load(context.Background(), session))

	require.NoError(t, svc.Delete(context.Background(), session, "p1"))
	require.Len(t, session.Products, 1)
	assert.Equal(t, "p2", session.Products[0].ID)
}

func TestProductServiceReorder(t *testing.T) {
	repo := &stubProductRepo{products: []models.Product{
		{ID: "p1", Name: "Banana", Price: "3.99"},
		{ID: "p2", Name: "Maçã", Price: "5.99"},
		{ID: "p3", Name: "Uva", Price: "9.99"},
	}}
	svc := NewProductService(repo)
	session := NewSession()
	require.NoError(t, svc.Load(context.Background(), session))

	require.NoError(t, svc.Reorder(context.Background(), session, []string{"p3", "p1", "p2"}))

	got := []string{session.Products[0].ID, session.Products[1].ID, session.Products[2].ID}
	assert.Equal(t, []string{"p3", "p1", "p2"}, got)
	require.Len(t, repo.saveAll, 1)
	assert.Equal(t, []string{"p3", "p1", "p2"}, repo.saveAll[0])
}

func TestProductServiceReorderRejectsMismatch(t *testing.T) {
	repo := &stubProductRepo{products: []models.Product{
		{ID: "p1", Name: "Banana", Price: "3.99"},
		{ID: "p2", Name: "Maçã", Price: "5.99"},
	}}
	svc := NewProductService(repo)
	session := NewSession()
	require.NoError(t, svc.Load(context.Background(), session))

	assert.Error(t, svc.Reorder(context.Background(), session, []string{"p1"}), "short list")
	assert.Error(t, svc.Reorder(context.Background(), session, []string{"p1", "px"}), "unknown id")
	assert.Error(t, svc.Reorder(context.Background(), session, []string{"p1", "p1"}), "duplicate id")

	got := []string{session.Products[0].ID, session.Products[1].ID}
	assert.Equal(t, []string{"p1", "p2"}, got, "failed reorder must not touch the session")
}
