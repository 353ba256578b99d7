package core

// viewmodel.go holds the in-memory working copy of the catalog plus the
// filter/sort/page cursor, and derives the visible page from them.
//
// ViewState is a plain value: its derivation methods are pure and safe to call
// on a snapshot. ViewModel wraps one ViewState behind a mutex because HTTP
// handlers run concurrently; every command runs to completion under the lock.

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// DefaultPageSize is used when no valid page size is configured.
const DefaultPageSize = 10

// ViewState is the full product list plus the view cursor.
type ViewState struct {
	Products []Product
	Query    string
	SortKey  SortField
	SortDir  SortDir
	Page     int
	PageSize int
}

// Filtered returns the products whose title contains the query
// (case-insensitive), stably sorted by the current sort key.
// The returned slice is a fresh copy; Products is never reordered.
func (s ViewState) Filtered() []Product {
	q := strings.ToLower(strings.TrimSpace(s.Query))

	out := make([]Product, 0, len(s.Products))
	for _, p := range s.Products {
		if q == "" || strings.Contains(strings.ToLower(p.Title), q) {
			out = append(out, p)
		}
	}

	if s.SortKey != SortNone {
		slices.SortStableFunc(out, s.compare)
	}
	return out
}

func (s ViewState) compare(a, b Product) int {
	var c int
	switch s.SortKey {
	case SortPrice:
		c = a.Price.Cmp(b.Price)
	case SortTitle:
		c = strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	}
	if s.SortDir == SortDesc {
		return -c
	}
	return c
}

// TotalPages returns ceil(n / PageSize).
func (s ViewState) TotalPages(n int) int {
	size := max(s.PageSize, 1)
	return (n + size - 1) / size
}

// CurrentPage returns Page clamped into [1, TotalPages(n)].
func (s ViewState) CurrentPage(n int) int {
	total := s.TotalPages(n)
	if total == 0 {
		return 1
	}
	return min(max(s.Page, 1), total)
}

// Bounds returns the [start, end) indexes of the current page within a
// filtered list of length n.
func (s ViewState) Bounds(n int) (start, end int) {
	size := max(s.PageSize, 1)
	start = (s.CurrentPage(n) - 1) * size
	end = min(start+size, n)
	return min(start, n), end
}

// PageItems returns the visible slice of the filtered list.
func (s ViewState) PageItems() []Product {
	filtered := s.Filtered()
	start, end := s.Bounds(len(filtered))
	return filtered[start:end]
}

// ViewModel owns the catalog working copy for the application.
type ViewModel struct {
	mu         sync.RWMutex
	state      ViewState
	categories []Category
	pageSizes  []int
	loaded     bool
}

// NewViewModel creates an empty view model. pageSize must be one of pageSizes;
// otherwise the first selectable size is used.
func NewViewModel(pageSize int, pageSizes []int) *ViewModel {
	if len(pageSizes) == 0 {
		pageSizes = []int{DefaultPageSize}
	}
	if !slices.Contains(pageSizes, pageSize) {
		pageSize = pageSizes[0]
	}
	return &ViewModel{
		state: ViewState{
			SortDir:  SortAsc,
			Page:     1,
			PageSize: pageSize,
		},
		pageSizes: slices.Clone(pageSizes),
	}
}

// Snapshot returns a copy of the current state that is safe to use without
// holding the lock.
func (vm *ViewModel) Snapshot() ViewState {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	s := vm.state
	s.Products = slices.Clone(vm.state.Products)
	return s
}

// PageSizes returns the selectable page sizes.
func (vm *ViewModel) PageSizes() []int {
	return slices.Clone(vm.pageSizes)
}

// Categories returns the loaded category list.
func (vm *ViewModel) Categories() []Category {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return slices.Clone(vm.categories)
}

// Loaded reports whether the product list has been fetched successfully.
func (vm *ViewModel) Loaded() bool {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.loaded
}

// Load replaces the full list and category data. Cursor fields are kept and
// the page is reset to 1. Ids must be unique: later duplicates are dropped and
// their count returned.
func (vm *ViewModel) Load(products []Product, categories []Category) (dropped int) {
	seen := make(map[int]struct{}, len(products))
	unique := make([]Product, 0, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			dropped++
			continue
		}
		seen[p.ID] = struct{}{}
		unique = append(unique, p)
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.state.Products = unique
	vm.state.Page = 1
	vm.categories = slices.Clone(categories)
	vm.loaded = true
	return dropped
}

// Find returns the product with the given id from the full list.
func (vm *ViewModel) Find(id int) (Product, bool) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	i := vm.indexOf(id)
	if i < 0 {
		return Product{}, false
	}
	return vm.state.Products[i], true
}

func (vm *ViewModel) indexOf(id int) int {
	return slices.IndexFunc(vm.state.Products, func(p Product) bool { return p.ID == id })
}

// Prepend adds a newly created product to the front of the full list and
// resets the view to page 1.
func (vm *ViewModel) Prepend(p Product) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.indexOf(p.ID) >= 0 {
		return fmt.Errorf("%w: id %d", ErrDuplicateProduct, p.ID)
	}

	vm.state.Products = slices.Insert(vm.state.Products, 0, p)
	vm.state.Page = 1
	return nil
}

// Merge shallow-merges patch into the product with the given id, keeping the
// current filter, sort, and page. Returns the merged record.
func (vm *ViewModel) Merge(id int, patch ProductPatch) (Product, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	i := vm.indexOf(id)
	if i < 0 {
		return Product{}, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}

	merged := vm.state.Products[i].Apply(patch)
	vm.state.Products[i] = merged
	return merged, nil
}

// VisibleItems returns the products on the current page.
func (vm *ViewModel) VisibleItems() []Product {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.state.PageItems()
}
