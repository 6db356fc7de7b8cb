package exchange

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/infigaming-com/xe-bot/cache"
	"github.com/infigaming-com/xe-bot/lock"
	"go.uber.org/zap"
)

// PreferenceStore keeps each user's default currency pair and precision.
// Reads never fail: a missing key, a store error or an unparsable value all
// fall back to the package defaults.
type PreferenceStore struct {
	lg     *zap.Logger
	store  cache.Cache
	locker lock.Lock
}

// NewPreferenceStore builds a store over kv. locker may be nil, in which
// case concurrent SetDefaults calls for one user are not serialised.
func NewPreferenceStore(lg *zap.Logger, kv cache.Cache, locker lock.Lock) *PreferenceStore {
	return &PreferenceStore{
		lg:     lg,
		store:  kv,
		locker: locker,
	}
}

func currencyFromKey(user string) string {
	return fmt.Sprintf("%s:currency_from", user)
}

func currencyToKey(user string) string {
	return fmt.Sprintf("%s:currency_to", user)
}

func precisionKey(user string) string {
	return fmt.Sprintf("%s:currency_precision", user)
}

func preferencesLockKey(user string) string {
	return fmt.Sprintf("lock:preferences:%s", user)
}

func (s *PreferenceStore) DefaultFrom(ctx context.Context, user string) string {
	if v, ok := s.get(ctx, currencyFromKey(user)); ok {
		return v
	}
	return DefaultFrom
}

func (s *PreferenceStore) DefaultTo(ctx context.Context, user string) string {
	if v, ok := s.get(ctx, currencyToKey(user)); ok {
		return v
	}
	return DefaultTo
}

func (s *PreferenceStore) DefaultPrecision(ctx context.Context, user string) uint {
	if v, ok := s.get(ctx, precisionKey(user)); ok {
		if p, ok := parsePrecision(v); ok {
			return p
		}
	}
	return DefaultPrecision
}

// Load reads all three preferences in one round trip.
func (s *PreferenceStore) Load(ctx context.Context, user string) UserPreferences {
	prefs := defaultPreferences()

	values, err := s.store.Gets(ctx, []string{currencyFromKey(user), currencyToKey(user), precisionKey(user)})
	if err != nil {
		s.lg.Warn("failed to load preferences, using defaults", zap.String("user", user), zap.Error(err))
		return prefs
	}

	if v := values[currencyFromKey(user)]; v != "" {
		prefs.CurrencyFrom = v
	}
	if v := values[currencyToKey(user)]; v != "" {
		prefs.CurrencyTo = v
	}
	if p, ok := parsePrecision(values[precisionKey(user)]); ok {
		prefs.Precision = p
	}
	return prefs
}

// SetDefaults stores the user's preferences. The three keys are written
// independently, so a failure can leave them partially updated.
func (s *PreferenceStore) SetDefaults(ctx context.Context, user, from, to string, precision uint) error {
	return lock.WithLock(ctx, s.locker, preferencesLockKey(user), func(ctx context.Context) error {
		err := s.store.Sets(ctx, map[string]string{
			currencyFromKey(user): from,
			currencyToKey(user):   to,
			precisionKey(user):    strconv.FormatUint(uint64(precision), 10),
		}, 0)
		if err != nil {
			return ErrStoreWrite.Wrap(err)
		}
		return nil
	})
}

func (s *PreferenceStore) get(ctx context.Context, key string) (string, bool) {
	v, err := s.store.Get(ctx, key)
	if err != nil {
		if !stderrors.Is(err, cache.ErrKeyNotFound) {
			s.lg.Warn("failed to read preference, using default", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	if v == "" {
		return "", false
	}
	return v, true
}

func parsePrecision(s string) (uint, bool) {
	p, err := strconv.ParseUint(strings.TrimSpace(s), 10, 0)
	if err != nil {
		return 0, false
	}
	return uint(p), true
}
