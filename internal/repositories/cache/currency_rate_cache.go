package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_ledger/internal/apperrors"
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/expense_ledger/internal/middleware"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// DefaultVersionKeyPrefix prefixes the per-organization Redis key whose value
// is bumped on every rate write.
const DefaultVersionKeyPrefix = "expense_ledger:rates:version:"

// CachedCurrencyRateRepository keeps each organization's rate table in an
// in-process TTL cache. Writes go straight to the wrapped repository and drop
// the organization's entry.
//
// Without Redis an entry dropped by a write is only dropped in the writing
// process; other replicas keep serving their copy until the TTL expires. With
// WithRedisInvalidation every write also bumps a shared version key, and an
// entry is only served while its version matches the key.
type CachedCurrencyRateRepository struct {
	next     portsrepo.CurrencyRateRepositoryFacade
	store    *gocache.Cache
	versions redis.Cmdable
	prefix   string
}

type cachedTable struct {
	version string
	rates   []domain.CurrencyRate
}

// Option configures a CachedCurrencyRateRepository.
type Option func(*CachedCurrencyRateRepository)

// WithRedisInvalidation shares invalidations across processes through a
// version key per organization.
func WithRedisInvalidation(client redis.Cmdable, prefix string) Option {
	return func(c *CachedCurrencyRateRepository) {
		if prefix == "" {
			prefix = DefaultVersionKeyPrefix
		}
		c.versions = client
		c.prefix = prefix
	}
}

// NewCurrencyRateRepository wraps next with a cache whose entries live for ttl.
func NewCurrencyRateRepository(next portsrepo.CurrencyRateRepositoryFacade, ttl time.Duration, opts ...Option) *CachedCurrencyRateRepository {
	c := &CachedCurrencyRateRepository{
		next:  next,
		store: gocache.New(ttl, 2*ttl),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ portsrepo.CurrencyRateRepositoryFacade = (*CachedCurrencyRateRepository)(nil)

// ListRates returns the cached table, loading it on a miss. Callers get their own copy.
// When the version key cannot be read the cache is bypassed.
func (c *CachedCurrencyRateRepository) ListRates(ctx context.Context, organizationID string) ([]domain.CurrencyRate, error) {
	version, err := c.version(ctx, organizationID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Rate cache version unavailable, reading through",
			slog.String("organization_id", organizationID),
			slog.String("error", err.Error()))
		return c.next.ListRates(ctx, organizationID)
	}

	if cached, ok := c.store.Get(organizationID); ok {
		entry := cached.(cachedTable)
		if entry.version == version {
			return cloneRates(entry.rates), nil
		}
	}
	rates, err := c.next.ListRates(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	c.store.SetDefault(organizationID, cachedTable{version: version, rates: cloneRates(rates)})
	return rates, nil
}

// FindRate answers from the cached table.
func (c *CachedCurrencyRateRepository) FindRate(ctx context.Context, organizationID, currency string) (*domain.CurrencyRate, error) {
	rates, err := c.ListRates(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	for i := range rates {
		if rates[i].ToCurrency == currency {
			return &rates[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError("currency rate " + currency)
}

func (c *CachedCurrencyRateRepository) UpsertRate(ctx context.Context, rate domain.CurrencyRate) error {
	defer c.Invalidate(ctx, rate.OrganizationID)
	return c.next.UpsertRate(ctx, rate)
}

func (c *CachedCurrencyRateRepository) DeleteRate(ctx context.Context, organizationID, currency string) error {
	defer c.Invalidate(ctx, organizationID)
	return c.next.DeleteRate(ctx, organizationID, currency)
}

// Invalidate drops the cached table of one organization and, when Redis is
// configured, bumps its version so other processes reload too.
func (c *CachedCurrencyRateRepository) Invalidate(ctx context.Context, organizationID string) {
	c.store.Delete(organizationID)
	if c.versions == nil {
		return
	}
	if err := c.versions.Incr(ctx, c.prefix+organizationID).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to bump rate cache version",
			slog.String("organization_id", organizationID),
			slog.String("error", err.Error()))
	}
}

func (c *CachedCurrencyRateRepository) version(ctx context.Context, organizationID string) (string, error) {
	if c.versions == nil {
		return "", nil
	}
	v, err := c.versions.Get(ctx, c.prefix+organizationID).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func cloneRates(rates []domain.CurrencyRate) []domain.CurrencyRate {
	out := make([]domain.CurrencyRate, len(rates))
	copy(out, rates)
	return out
}
