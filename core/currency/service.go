package currency

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/academia/core"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrUnknownCurrency = errors.New("unknown currency")

	suggestMinRatio = .6
)

type (
	Repository interface {
		QueryCurrencies(ctx context.Context) ([]Currency, error)
	}

	// Service serves the currency catalog of the backend, cached for a while.
	Service struct {
		repo       Repository
		normalizer *Normalizer
		ttl        time.Duration

		mu        sync.RWMutex
		catalog   []Currency
		fetchedAt time.Time
	}

	// UnknownCurrencyError is returned when a currency name is not found in the catalog.
	UnknownCurrencyError struct {
		Name       string
		Suggestion string
	}
)

func (err UnknownCurrencyError) Error() string {
	if err.Suggestion != "" {
		return "unknown currency " + strings.TrimSpace(err.Name) + ", did you mean " + err.Suggestion + "?"
	}
	return "unknown currency " + strings.TrimSpace(err.Name)
}

func (err UnknownCurrencyError) Unwrap() error { return ErrUnknownCurrency }

func NewService(repo Repository, conf *core.Config) *Service {
	return &Service{
		repo:       repo,
		normalizer: NewNormalizer(conf.Currency.BaseCode, conf.Currency.LegacyBaseNames),
		ttl:        conf.Currency.CacheTTL,
	}
}

func (svc *Service) Normalizer() *Normalizer {
	return svc.normalizer
}

func (svc *Service) cached() ([]Currency, bool) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	if svc.catalog == nil || NowFunc().Sub(svc.fetchedAt) >= svc.ttl {
		return nil, false
	}
	return svc.catalog, true
}

// Query returns the catalog, optionally ordered by id, name or code.
func (svc *Service) Query(ctx context.Context, ordering ...core.Ordering) ([]Currency, error) {
	catalog, ok := svc.cached()
	if !ok {
		fetched, err := svc.repo.QueryCurrencies(ctx)
		if err != nil {
			return nil, err
		}
		svc.mu.Lock()
		svc.catalog = fetched
		svc.fetchedAt = NowFunc()
		svc.mu.Unlock()
		catalog = fetched
	}

	// never hand out the cached slice
	currencies := make([]Currency, len(catalog))
	copy(currencies, catalog)
	Sort(currencies, ordering)
	return currencies, nil
}

// Invalidate drops the cached catalog.
func (svc *Service) Invalidate() {
	svc.mu.Lock()
	svc.catalog = nil
	svc.mu.Unlock()
}

func (svc *Service) GetByID(ctx context.Context, id int) (Currency, error) {
	currencies, err := svc.Query(ctx)
	if err != nil {
		return Currency{}, err
	}
	for _, c := range currencies {
		if c.ID == id {
			return c, nil
		}
	}
	return Currency{}, ErrUnknownCurrency
}

// GetByName looks a currency up by ISO code or display name (case & accent insensitive).
func (svc *Service) GetByName(ctx context.Context, name string) (Currency, error) {
	currencies, err := svc.Query(ctx)
	if err != nil {
		return Currency{}, err
	}
	folded := FoldName(name)
	for _, c := range currencies {
		if (c.Code != "" && strings.EqualFold(c.Code, strings.TrimSpace(name))) || FoldName(c.Name) == folded {
			return c, nil
		}
	}
	return Currency{}, &UnknownCurrencyError{Name: name, Suggestion: Suggest(name, currencies)}
}

// Suggest returns the name of the closest currency to `name`, if any is close enough.
func Suggest(name string, currencies []Currency) string {
	folded := FoldName(name)
	if folded == "" {
		return ""
	}
	var (
		best      string
		bestRatio float64
	)
	for _, c := range currencies {
		ratio := difflib.NewMatcher(strings.Split(folded, ""), strings.Split(FoldName(c.Name), "")).Ratio()
		if ratio >= suggestMinRatio && ratio > bestRatio {
			best, bestRatio = c.Name, ratio
		}
	}
	return best
}

// Sort sorts currencies in place following ordering; unknown fields are ignored.
func Sort(currencies []Currency, ordering []core.Ordering) {
	if len(ordering) == 0 {
		return
	}
	sort.SliceStable(currencies, func(i, j int) bool {
		a, b := currencies[i], currencies[j]
		for _, ord := range ordering {
			var cmp int
			switch ord.Field {
			case "id":
				cmp = a.ID - b.ID
			case "name":
				cmp = strings.Compare(FoldName(a.Name), FoldName(b.Name))
			case "code":
				cmp = strings.Compare(a.Code, b.Code)
			}
			if cmp == 0 {
				continue
			}
			if ord.Ascending {
				return cmp < 0
			}
			return cmp > 0
		}
		return false
	})
}
