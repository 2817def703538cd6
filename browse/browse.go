// Package browse keeps the product-list view state for a browsing session:
// the active search term, category/tag filter and the matching products.
// Fetches are guarded by a monotonically increasing generation token so a
// slow response can never overwrite the results of a newer request, and
// search input is debounced before it triggers a fetch at all.
package browse

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"storefront-service/models"
)

// Fetcher is the slice of the catalog client the browse state needs.
type Fetcher interface {
	Products(ctx context.Context, page, pageSize int, search string) ([]models.Product, error)
	ProductsByCategoryTags(ctx context.Context, category, tag string) ([]models.Product, error)
}

const (
	defaultPage     = 1
	defaultPageSize = 100
	fetchTimeout    = 15 * time.Second
)

// State is a snapshot of the view.
type State struct {
	Search   string           `json:"search"`
	Category string           `json:"category"`
	Tag      string           `json:"tag"`
	Loading  bool             `json:"loading"`
	Products []models.Product `json:"products"`
}

// Service holds one session's browse state.
type Service struct {
	fetcher  Fetcher
	debounce time.Duration
	logger   *zap.Logger

	mu    sync.Mutex
	state State
	gen   uint64
	timer *time.Timer
}

func NewService(fetcher Fetcher, debounce time.Duration, logger *zap.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		debounce: debounce,
		logger:   logger,
	}
}

// SetSearch updates the search term. The fetch fires only after the
// debounce window passes without another edit.
func (s *Service) SetSearch(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Search = query
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.refresh)
}

// SetFilter updates the category/tag filter and refetches immediately.
// Selecting a filter leaves search mode.
func (s *Service) SetFilter(category, tag string) {
	s.mu.Lock()
	s.state.Category = category
	s.state.Tag = tag
	s.state.Search = ""
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.refresh()
}

// Refresh forces a fetch with the current state, e.g. on first load.
func (s *Service) Refresh() {
	s.refresh()
}

// Snapshot returns a copy of the current view state.
func (s *Service) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Products = append([]models.Product(nil), s.state.Products...)
	return st
}

func (s *Service) refresh() {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	search := s.state.Search
	category := s.state.Category
	tag := s.state.Tag
	s.state.Loading = true
	s.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		var products []models.Product
		var err error
		if strings.TrimSpace(search) != "" {
			products, err = s.fetcher.Products(ctx, defaultPage, defaultPageSize, search)
		} else if category != "" || tag != "" {
			products, err = s.fetcher.ProductsByCategoryTags(ctx, category, tag)
		} else {
			products, err = s.fetcher.Products(ctx, defaultPage, defaultPageSize, "")
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen {
			// A newer request was issued while this one was in flight;
			// its response owns the state now.
			return
		}
		s.state.Loading = false
		if err != nil {
			s.logger.Warn("Browse fetch failed", zap.Error(err))
			s.state.Products = []models.Product{}
			return
		}
		if products == nil {
			products = []models.Product{}
		}
		s.state.Products = products
	}()
}
