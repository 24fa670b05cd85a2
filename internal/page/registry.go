package page

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/mmeshcher/golden-hive/internal/markup"
	"github.com/mmeshcher/golden-hive/internal/storage"
)

const (
	// DefaultMaxPages — сколько страниц посетителей держится в памяти одновременно.
	DefaultMaxPages = 10000
	// DefaultIdleTTL — через сколько после последнего обращения страница вытесняется.
	DefaultIdleTTL = 30 * time.Minute
)

// VisitorPrefix возвращает префикс ключей хранилища для посетителя.
func VisitorPrefix(visitorID string) string {
	return "visitor:" + visitorID + ":"
}

// Options задаёт параметры страниц и реестра. Нулевые поля заменяются значениями по умолчанию.
type Options struct {
	CloseDelay time.Duration
	MaxPages   int
	IdleTTL    time.Duration
}

func (o Options) withDefaults() Options {
	if o.CloseDelay <= 0 {
		o.CloseDelay = DefaultCloseDelay
	}
	if o.MaxPages <= 0 {
		o.MaxPages = DefaultMaxPages
	}
	if o.IdleTTL <= 0 {
		o.IdleTTL = DefaultIdleTTL
	}
	return o
}

// Registry лениво создаёт страницы посетителей и держит их в LRU-кэше
// ограниченного размера. Страница, к которой не обращались дольше IdleTTL,
// вытесняется. Вытеснение сбрасывает только состояние интерфейса:
// аккаунт, сессия, брони и отзывы остаются в хранилище.
type Registry struct {
	mu    sync.Mutex
	pages *expirable.LRU[string, *Page]

	store      *storage.Store
	content    *markup.Content
	closeDelay time.Duration
	logger     *zap.Logger
}

// NewRegistry создаёт реестр страниц.
func NewRegistry(store *storage.Store, content *markup.Content, opts Options, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = opts.withDefaults()

	r := &Registry{
		store:      store,
		content:    content,
		closeDelay: opts.CloseDelay,
		logger:     logger,
	}
	r.pages = expirable.NewLRU[string, *Page](opts.MaxPages, r.onEvict, opts.IdleTTL)
	return r
}

func (r *Registry) onEvict(visitorID string, p *Page) {
	p.Release()
	r.logger.Debug("page evicted", zap.String("visitor", visitorID))
}

// Get возвращает страницу посетителя, создавая её при первом обращении.
// Каждое обращение продлевает срок жизни страницы.
func (r *Registry) Get(visitorID string) *Page {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pages.Get(visitorID)
	if !ok {
		// Просроченная запись ещё может лежать в кэше до очистки.
		r.pages.Remove(visitorID)
		p = New(
			r.store.Scoped(VisitorPrefix(visitorID)),
			r.content,
			r.closeDelay,
			r.logger.With(zap.String("visitor", visitorID)),
		)
	}
	r.pages.Add(visitorID, p)
	return p
}

// Len возвращает число страниц в памяти.
func (r *Registry) Len() int {
	return r.pages.Len()
}
