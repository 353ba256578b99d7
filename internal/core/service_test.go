package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/JonMunkholm/catalog-admin/internal/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu         sync.Mutex
	products   []Product
	categories []Category
	listErr    error
	catErr     error
	createErr  error
	updateErr  error
	nextID     int
	calls      int
	patch      *ProductPatch
	gotInput   ProductInput
}

func (f *fakeClient) ListProducts(context.Context) ([]Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.products, f.listErr
}

func (f *fakeClient) ListCategories(context.Context) ([]Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.categories, f.catErr
}

func (f *fakeClient) CreateProduct(_ context.Context, in ProductInput) (Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotInput = in
	if f.createErr != nil {
		return Product{}, f.createErr
	}
	f.nextID++
	return Product{
		ID:          f.nextID,
		Title:       in.Title,
		Price:       in.Price,
		Description: in.Description,
		Category:    &Category{ID: in.CategoryID, Name: "Assigned"},
		Images:      in.Images,
	}, nil
}

func (f *fakeClient) UpdateProduct(_ context.Context, _ int, in ProductInput) (ProductPatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotInput = in
	if f.updateErr != nil {
		return ProductPatch{}, f.updateErr
	}
	if f.patch != nil {
		return *f.patch, nil
	}
	return ProductPatch{Title: &in.Title, Price: &in.Price, Description: &in.Description, Images: &in.Images}, nil
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type memAuditStore struct {
	mu      sync.Mutex
	entries []AuditEntry
	err     error
}

func (m *memAuditStore) Log(_ context.Context, p AuditLogParams) (*AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	e := AuditEntry{Action: p.Action, ProductID: p.ProductID, Title: p.Title, IPAddress: p.IPAddress, UserAgent: p.UserAgent, RequestID: p.RequestID, CreatedAt: time.Now()}
	m.entries = append(m.entries, e)
	return &e, nil
}

func (m *memAuditStore) Recent(_ context.Context, limit int) ([]AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]AuditEntry, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

func (m *memAuditStore) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []AuditEntry
	for _, e := range m.entries {
		if !e.CreatedAt.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	purged := int64(len(m.entries) - len(kept))
	m.entries = kept
	return purged, nil
}

func testConfig() *config.Config {
	return &config.Config{
		View: config.ViewConfig{
			PageSize:         10,
			PageSizes:        []int{5, 10, 20, 50},
			PlaceholderImage: testPlaceholder,
		},
		Mutation: config.MutationConfig{MaxConcurrent: 2, MaxWaitTime: time.Second},
	}
}

func newTestService(t *testing.T, client *fakeClient) (*Service, *memAuditStore) {
	t.Helper()
	audit := &memAuditStore{}
	svc, err := NewService(client, audit, testConfig())
	require.NoError(t, err)
	return svc, audit
}

func loadedService(t *testing.T, n int) (*Service, *fakeClient, *memAuditStore) {
	t.Helper()
	client := &fakeClient{products: numbered(n), categories: []Category{{ID: 1, Name: "Clothes"}}, nextID: 1000}
	svc, audit := newTestService(t, client)
	_, err := svc.Load(context.Background())
	require.NoError(t, err)
	return svc, client, audit
}

func TestNewServiceRequiresClient(t *testing.T) {
	_, err := NewService(nil, nil, testConfig())
	assert.Error(t, err)
}

func TestServiceLoad(t *testing.T) {
	svc, _, _ := loadedService(t, 25)

	assert.True(t, svc.Loaded())
	assert.Equal(t, []Category{{ID: 1, Name: "Clothes"}}, svc.Categories())

	v := svc.View()
	assert.Equal(t, "Showing 1-10 of 25 products", v.Summary)
	assert.Equal(t, []int{5, 10, 20, 50}, v.PageSizes)
}

func TestServiceLoadFailure(t *testing.T) {
	client := &fakeClient{listErr: &RemoteError{Op: OpListProducts, Err: errors.New("dial tcp: connection refused")}}
	svc, _ := newTestService(t, client)

	n, err := svc.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, LevelError, n.Level)
	assert.Equal(t, "API001", n.Code)
	assert.False(t, svc.Loaded())
	assert.Empty(t, svc.View().Rows)
}

func TestServiceLoadCategoriesFailureIsTolerated(t *testing.T) {
	client := &fakeClient{products: numbered(3), catErr: errors.New("boom")}
	svc, _ := newTestService(t, client)

	_, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, svc.Loaded())
	assert.Empty(t, svc.Categories())
	assert.Len(t, svc.View().Rows, 3)
}

func TestServiceCreate(t *testing.T) {
	svc, client, audit := loadedService(t, 25)
	svc.Dispatch(GoToPage(3))

	ctx := ContextWithRequestMeta(context.Background(), RequestMeta{IPAddress: "10.0.0.1", RequestID: "req-1"})
	created, n, err := svc.Create(ctx, validForm())
	require.NoError(t, err)

	assert.Equal(t, 1001, created.ID)
	assert.Equal(t, LevelSuccess, n.Level)
	assert.NotEmpty(t, n.ID)

	v := svc.View()
	assert.Equal(t, 1, v.Pagination.Current)
	assert.Equal(t, 1001, v.Rows[0].ID)
	assert.Equal(t, 26, v.Total)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, ActionCreate, audit.entries[0].Action)
	assert.Equal(t, "10.0.0.1", audit.entries[0].IPAddress)
	assert.Equal(t, "req-1", audit.entries[0].RequestID)
	assert.Equal(t, 3, client.gotInput.CategoryID)
}

func TestServiceCreateValidationSkipsNetwork(t *testing.T) {
	svc, client, _ := loadedService(t, 5)
	before := client.callCount()

	for _, mutate := range []func(*ProductForm){
		func(f *ProductForm) { f.Title = "" },
		func(f *ProductForm) { f.Price = "0" },
		func(f *ProductForm) { f.Images = "ftp://x" },
		func(f *ProductForm) { f.Images = "" },
	} {
		f := validForm()
		mutate(&f)

		_, n, err := svc.Create(context.Background(), f)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, LevelError, n.Level)
		assert.Equal(t, "Validation error", n.Title)
	}

	assert.Equal(t, before, client.callCount(), "no network calls on validation failure")
	assert.Equal(t, 5, svc.View().Total)
}

func TestServiceCreateRemoteFailure(t *testing.T) {
	svc, client, audit := loadedService(t, 5)

	client.createErr = &RemoteError{Op: OpCreateProduct, Status: 400, Message: "categoryId must be a number"}
	_, n, err := svc.Create(context.Background(), validForm())
	require.Error(t, err)
	assert.Equal(t, "categoryId must be a number", n.Message)

	client.createErr = &RemoteError{Op: OpCreateProduct, Status: 400}
	_, n, _ = svc.Create(context.Background(), validForm())
	assert.Equal(t, "Could not create the product. Check the details and try again.", n.Message)

	assert.Equal(t, 5, svc.View().Total, "local state unchanged")
	assert.Empty(t, audit.entries)
}

func TestServiceCreateBeforeLoad(t *testing.T) {
	client := &fakeClient{}
	svc, _ := newTestService(t, client)

	_, _, err := svc.Create(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.Zero(t, client.callCount())
}

func TestServiceUpdate(t *testing.T) {
	svc, client, audit := loadedService(t, 25)
	svc.Dispatch(Filter("item"))
	svc.Dispatch(GoToPage(2))

	title := "Server Title"
	client.patch = &ProductPatch{Title: &title}

	form := validForm()
	form.Images = ""
	merged, n, err := svc.Update(context.Background(), 12, form)
	require.NoError(t, err)

	assert.Equal(t, LevelSuccess, n.Level)
	assert.Equal(t, "Server Title", merged.Title)
	assert.Equal(t, "12", merged.Price.String(), "fields absent from the response are kept")
	assert.Equal(t, []string{testPlaceholder}, client.gotInput.Images)

	v := svc.View()
	assert.Equal(t, 2, v.Pagination.Current)
	assert.Equal(t, "item", v.Query)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, ActionUpdate, audit.entries[0].Action)
	assert.Equal(t, 12, audit.entries[0].ProductID)
}

func TestServiceUpdateUnknownID(t *testing.T) {
	svc, client, _ := loadedService(t, 3)
	before := client.callCount()

	_, n, err := svc.Update(context.Background(), 99, validForm())
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Equal(t, "MUT002", n.Code)
	assert.Equal(t, before, client.callCount())
}

func TestServiceUpdateRemoteFailureKeepsRecord(t *testing.T) {
	svc, client, _ := loadedService(t, 3)
	client.updateErr = &RemoteError{Op: OpUpdateProduct, Status: 500}

	_, n, err := svc.Update(context.Background(), 2, validForm())
	require.Error(t, err)
	assert.Equal(t, "Could not update the product. Check the details and try again.", n.Message)

	d, err := svc.Detail(2)
	require.NoError(t, err)
	assert.Equal(t, "Item 02", d.Title)
}

func TestServiceAuditFailureDoesNotFailMutation(t *testing.T) {
	svc, _, audit := loadedService(t, 3)
	audit.err = errors.New("db down")

	_, _, err := svc.Create(context.Background(), validForm())
	assert.NoError(t, err)
}

func TestServiceExport(t *testing.T) {
	svc, _, _ := loadedService(t, 25)
	svc.Dispatch(GoToPage(3))

	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	res, n, err := svc.Export(now)
	require.NoError(t, err)
	assert.Equal(t, "products_2024-01-02.csv", res.Filename)
	assert.Equal(t, 5, res.Count)
	assert.Equal(t, "Exported 5 products", n.Message)

	svc.Dispatch(Filter("no such product"))
	_, n, err = svc.Export(now)
	assert.ErrorIs(t, err, ErrNothingToExport)
	assert.Equal(t, LevelInfo, n.Level)
}

func TestServiceDetail(t *testing.T) {
	svc, _, _ := loadedService(t, 3)

	d, err := svc.Detail(1)
	require.NoError(t, err)
	assert.Equal(t, 1, d.ID)
	assert.Equal(t, []Category{{ID: 1, Name: "Clothes"}}, d.Categories)

	_, err = svc.Detail(42)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestServiceAuditRetention(t *testing.T) {
	svc, _, audit := loadedService(t, 1)
	audit.entries = []AuditEntry{
		{ProductID: 1, CreatedAt: time.Now().AddDate(0, 0, -200)},
		{ProductID: 2, CreatedAt: time.Now()},
	}

	svc.runRetentionJob(context.Background(), RetentionConfig{RetentionDays: 90}.withDefaults(), time.Now())

	entries, err := svc.AuditLog(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].ProductID)
}

func TestServiceConcurrentUpdatesSameRecord(t *testing.T) {
	svc, _, _ := loadedService(t, 3)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.Update(context.Background(), 1, validForm())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Zero(t, svc.MutationStatus().Active)
	require.NoError(t, svc.WaitForMutations(context.Background()))

	d, err := svc.Detail(1)
	require.NoError(t, err)
	assert.Equal(t, "Classic Tee", d.Title)
	assert.Equal(t, decimal.RequireFromString("19.99").String(), d.Price)
}
