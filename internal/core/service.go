package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JonMunkholm/catalog-admin/internal/config"
)

// LoadTimeout bounds the initial catalog fetch.
var LoadTimeout = 60 * time.Second

// Service is the application controller. It owns the catalog view model and
// coordinates the remote client, validation, the mutation limiter and the
// audit log. Every user-facing operation returns a Notification.
type Service struct {
	client      CatalogClient
	audit       AuditStore
	vm          *ViewModel
	limiter     *MutationLimiter
	placeholder string
}

// NewService creates a new Service. audit may be nil, in which case entries
// are discarded.
func NewService(client CatalogClient, audit AuditStore, cfg *config.Config) (*Service, error) {
	if client == nil {
		return nil, errors.New("catalog client is required")
	}
	if audit == nil {
		audit = NopAuditStore{}
	}

	return &Service{
		client:      client,
		audit:       audit,
		vm:          NewViewModel(cfg.View.PageSize, cfg.View.PageSizes),
		limiter:     NewMutationLimiter(cfg.Mutation.MaxConcurrent, cfg.Mutation.MaxWaitTime),
		placeholder: cfg.View.PlaceholderImage,
	}, nil
}

// Load fetches categories and products and replaces the working copy.
// A categories failure is logged and loading continues with none; a products
// failure leaves the previous state untouched.
func (s *Service) Load(ctx context.Context) (Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, LoadTimeout)
	defer cancel()

	categories, err := s.client.ListCategories(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to load categories", "error", err)
		categories = nil
	}

	products, err := s.client.ListProducts(ctx)
	if err != nil {
		return Failure(err, "Could not load data"), fmt.Errorf("load catalog: %w", err)
	}

	if dropped := s.vm.Load(products, categories); dropped > 0 {
		slog.WarnContext(ctx, "dropped duplicate product ids", "dropped", dropped)
	}

	slog.InfoContext(ctx, "catalog loaded",
		"products", len(products),
		"categories", len(categories),
	)
	return Notification{}, nil
}

// Loaded reports whether the catalog has been fetched.
func (s *Service) Loaded() bool {
	return s.vm.Loaded()
}

// Dispatch applies a view command and reports whether the view changed.
func (s *Service) Dispatch(cmd Command) bool {
	changed := s.vm.Dispatch(cmd)
	if !changed {
		slog.Debug("view command ignored", "command", cmd.Kind.String())
	}
	return changed
}

// View renders the current table screen.
func (s *Service) View() View {
	return Render(s.vm.Snapshot(), RenderOptions{
		Loaded:      s.vm.Loaded(),
		PageSizes:   s.vm.PageSizes(),
		Placeholder: s.placeholder,
	})
}

// Detail returns the edit form model for product id.
func (s *Service) Detail(id int) (ProductDetail, error) {
	p, ok := s.vm.Find(id)
	if !ok {
		return ProductDetail{}, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	return NewProductDetail(p, s.vm.Categories(), s.placeholder), nil
}

// Categories returns the loaded categories.
func (s *Service) Categories() []Category {
	return s.vm.Categories()
}

// Placeholder returns the image URL used for missing images.
func (s *Service) Placeholder() string {
	return s.placeholder
}

// Create validates the form, posts it to the catalog and prepends the
// returned record. Validation failures never reach the network.
func (s *Service) Create(ctx context.Context, form ProductForm) (Product, Notification, error) {
	const fallback = "Could not create the product. Check the details and try again."

	in, err := ValidateCreate(form)
	if err != nil {
		return Product{}, Failure(err, ""), err
	}
	if !s.vm.Loaded() {
		return Product{}, Failure(ErrNotLoaded, ""), ErrNotLoaded
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return Product{}, Failure(err, fallback), fmt.Errorf("create product: %w", err)
	}
	defer s.limiter.Release()

	created, err := s.client.CreateProduct(ctx, in)
	if err != nil {
		return Product{}, Failure(err, fallback), fmt.Errorf("create product: %w", err)
	}

	if err := s.vm.Prepend(created); err != nil {
		return Product{}, Failure(err, fallback), fmt.Errorf("create product: %w", err)
	}

	s.recordAudit(ctx, ActionCreate, created)
	slog.InfoContext(ctx, "product created", "product_id", created.ID)
	return created, Success("New product created!"), nil
}

// Update validates the form, puts it to the catalog and merges the returned
// fields into the local record. Updates of one id are serialized.
func (s *Service) Update(ctx context.Context, id int, form ProductForm) (Product, Notification, error) {
	const fallback = "Could not update the product. Check the details and try again."

	in, err := ValidateUpdate(form, s.placeholder)
	if err != nil {
		return Product{}, Failure(err, ""), err
	}
	if _, ok := s.vm.Find(id); !ok {
		err := fmt.Errorf("%w: id %d", ErrProductNotFound, id)
		return Product{}, Failure(err, fallback), err
	}

	release, err := s.limiter.AcquireRecord(ctx, id)
	if err != nil {
		return Product{}, Failure(err, fallback), fmt.Errorf("update product %d: %w", id, err)
	}
	defer release()

	patch, err := s.client.UpdateProduct(ctx, id, in)
	if err != nil {
		return Product{}, Failure(err, fallback), fmt.Errorf("update product %d: %w", id, err)
	}

	merged, err := s.vm.Merge(id, patch)
	if err != nil {
		return Product{}, Failure(err, fallback), fmt.Errorf("update product %d: %w", id, err)
	}

	s.recordAudit(ctx, ActionUpdate, merged)
	slog.InfoContext(ctx, "product updated", "product_id", id)
	return merged, Success("Product updated!"), nil
}

// recordAudit writes an audit entry. Failures are logged only.
func (s *Service) recordAudit(ctx context.Context, action AuditAction, p Product) {
	if _, err := s.audit.Log(ctx, auditParamsFromContext(ctx, action, p)); err != nil {
		slog.ErrorContext(ctx, "failed to write audit entry",
			"action", action,
			"product_id", p.ID,
			"error", err,
		)
	}
}

// ExportResult is a ready-to-download CSV file.
type ExportResult struct {
	Filename string
	Data     []byte
	Count    int
}

// Export serializes the visible page. An empty page yields ErrNothingToExport
// with an info notification.
func (s *Service) Export(now time.Time) (ExportResult, Notification, error) {
	items := s.vm.VisibleItems()

	data, err := ExportCSV(items)
	if err != nil {
		if errors.Is(err, ErrNothingToExport) {
			return ExportResult{}, Info("No data to export"), err
		}
		return ExportResult{}, Failure(err, "Export failed"), err
	}

	res := ExportResult{
		Filename: ExportFilename(now),
		Data:     data,
		Count:    len(items),
	}
	return res, Success(fmt.Sprintf("Exported %d products", res.Count)), nil
}

// AuditEnabled reports whether audit entries are persisted.
func (s *Service) AuditEnabled() bool {
	_, nop := s.audit.(NopAuditStore)
	return !nop
}

// AuditLog returns the most recent audit entries.
func (s *Service) AuditLog(ctx context.Context, limit int) ([]AuditEntry, error) {
	entries, err := s.audit.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	return entries, nil
}

// MutationStatus returns the mutation limiter state for health reporting.
func (s *Service) MutationStatus() MutationStatus {
	return s.limiter.Status()
}

// WaitForMutations blocks until in-flight mutations finish or ctx is done.
func (s *Service) WaitForMutations(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
