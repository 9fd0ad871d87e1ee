package services

import (
	"context"
	"encoding/json"
	"time"

	"inventory/internal/catalog"
	"inventory/internal/models"
	"inventory/internal/query"
	"inventory/internal/repositories"
	"inventory/pkg/clock"
	"inventory/pkg/logger"
)

// Routing keys for product events.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductEvent is the message published after every successful write.
type ProductEvent struct {
	Event string    `json:"event"`
	ID    string    `json:"id"`
	Name  string    `json:"name,omitempty"`
	Price string    `json:"price,omitempty"`
	Stock int64     `json:"stock"`
	At    time.Time `json:"at"`
}

// ProductEventPublisher sends product events to a broker.
type ProductEventPublisher interface {
	PublishProductEvent(routingKey string, body []byte) error
}

// ProductService runs the product write pipeline (validate, normalize,
// timestamp, persist) and the named read queries.
type ProductService struct {
	repo      repositories.ProductRepository
	validator *catalog.Validator
	clock     clock.Clock
	events    ProductEventPublisher
	log       *logger.Logger
}

// NewProductService creates a new ProductService. events may be nil, in which
// case nothing is published.
func NewProductService(repo repositories.ProductRepository, clk clock.Clock, events ProductEventPublisher, log *logger.Logger) *ProductService {
	if clk == nil {
		clk = clock.System
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProductService{
		repo:      repo,
		validator: catalog.NewValidator(),
		clock:     clk,
		events:    events,
		log:       log,
	}
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ListProducts returns every product in the given order.
func (s *ProductService) ListProducts(ctx context.Context, order query.Sort) ([]models.Product, error) {
	return s.repo.Query(ctx, nil, []query.Sort{order})
}

// FindAvailable returns the products with stock left, newest first.
func (s *ProductService) FindAvailable(ctx context.Context) ([]models.Product, error) {
	return s.repo.Query(ctx, []query.Filter{query.Available()}, []query.Sort{query.ByRecency()})
}

// CreateProduct validates and normalizes c, then stores it as a new product.
// Validation failures are returned as *catalog.ValidationError.
func (s *ProductService) CreateProduct(ctx context.Context, c catalog.Candidate) (*models.Product, error) {
	rec, err := s.validator.Validate(c)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	product := &models.Product{CreatedAt: now, UpdatedAt: now}
	catalog.Normalize(rec).Apply(product)

	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, err
	}
	s.publish(EventProductCreated, product)
	return product, nil
}

// UpdateProduct applies the fields set in patch to the stored product. The
// merged result is validated as a whole before anything is written.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch catalog.Candidate) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rec, err := s.validator.Validate(catalog.CandidateFrom(*product).Merge(patch))
	if err != nil {
		return nil, err
	}
	catalog.Normalize(rec).Apply(product)

	product.UpdatedAt = s.clock.Now()
	if product.UpdatedAt.Before(product.CreatedAt) {
		product.UpdatedAt = product.CreatedAt
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.publish(EventProductUpdated, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(EventProductDeleted, &models.Product{ID: id})
	return nil
}

// publish never fails the write that triggered it; problems are logged.
func (s *ProductService) publish(event string, p *models.Product) {
	if s.events == nil {
		return
	}
	msg := ProductEvent{
		Event: event,
		ID:    p.ID,
		Name:  p.Name,
		Stock: p.Stock,
		At:    s.clock.Now(),
	}
	if event != EventProductDeleted {
		msg.Price = p.Price.StringFixed(catalog.PricePlaces)
	}
	body, err := json.Marshal(msg)
	if err != nil {
		s.log.Error().Err(err).Str("event", event).Msg("failed to marshal product event")
		return
	}
	if err := s.events.PublishProductEvent(event, body); err != nil {
		s.log.Warn().Err(err).Str("event", event).Str("product_id", p.ID).Msg("failed to publish product event")
		return
	}
	s.log.Debug().Str("event", event).Str("product_id", p.ID).Msg("published product event")
}
