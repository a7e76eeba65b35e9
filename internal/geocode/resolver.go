package geocode

import (
	"context"
	"sync"
	"time"

	"github.com/shenikar/resqalert/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

type Geocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (*Place, error)
}

// Cache - внешний кэш населенных пунктов, общий для нескольких экземпляров сервиса.
// Пустая строка без ошибки означает промах.
type Cache interface {
	GetLocality(ctx context.Context, key string) (string, error)
	SetLocality(ctx context.Context, key, locality string) error
}

// Resolver определяет населенный пункт по координатам. Результат (в том числе
// "Unknown") запоминается на все время жизни процесса, поэтому неудачные
// координаты не запрашиваются повторно. Одинаковые одновременные запросы
// объединяются, промахи кэша идут в геокодер не чаще одного раза за delay.
type Resolver struct {
	geocoder Geocoder
	cache    Cache
	limiter  *rate.Limiter
	timeout  time.Duration
	logger   *logrus.Logger

	group singleflight.Group
	mu    sync.RWMutex
	memo  map[string]string
}

func NewResolver(geocoder Geocoder, cache Cache, delay, timeout time.Duration, logger *logrus.Logger) *Resolver {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Resolver{
		geocoder: geocoder,
		cache:    cache,
		limiter:  rate.NewLimiter(limit, 1),
		timeout:  timeout,
		logger:   logger,
		memo:     make(map[string]string),
	}
}

// ResolveLocality никогда не возвращает ошибку: при любом сбое результат - "Unknown".
// Если ctx вызывающего отменен, поиск доводится до конца в фоне и попадает в кэш,
// а вызывающий сразу получает "Unknown".
func (r *Resolver) ResolveLocality(ctx context.Context, lat, lng float64) string {
	key := models.CoordinateKey(lat, lng)
	if v, ok := r.cached(key); ok {
		return v
	}

	ch := r.group.DoChan(key, func() (any, error) {
		return r.lookup(context.WithoutCancel(ctx), key, lat, lng), nil
	})
	select {
	case res := <-ch:
		return res.Val.(string)
	case <-ctx.Done():
		return models.UnknownLocality
	}
}

func (r *Resolver) cached(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.memo[key]
	return v, ok
}

func (r *Resolver) remember(key, value string) {
	r.mu.Lock()
	r.memo[key] = value
	r.mu.Unlock()
}

func (r *Resolver) lookup(ctx context.Context, key string, lat, lng float64) string {
	log := r.logger.WithField("coordinates", key)

	if v, ok := r.cached(key); ok {
		return v
	}
	if r.cache != nil {
		v, err := r.cache.GetLocality(ctx, key)
		if err != nil {
			log.WithError(err).Warn("Failed to read locality cache")
		}
		if v != "" {
			r.remember(key, v)
			return v
		}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	// Очередь к геокодеру длиннее timeout: координаты не запрашивались,
	// поэтому "Unknown" не запоминается и следующий вызов повторит поиск
	if err := r.limiter.Wait(ctx); err != nil {
		log.WithError(err).Warn("Geocode rate limiter wait failed")
		return models.UnknownLocality
	}

	locality := models.UnknownLocality
	if place, err := r.geocoder.Reverse(ctx, lat, lng); err != nil {
		log.WithError(err).Warn("Reverse geocoding failed")
	} else {
		locality = ExtractLocality(place)
	}

	r.remember(key, locality)
	if r.cache != nil {
		if err := r.cache.SetLocality(context.WithoutCancel(ctx), key, locality); err != nil {
			log.WithError(err).Warn("Failed to write locality cache")
		}
	}
	return locality
}
