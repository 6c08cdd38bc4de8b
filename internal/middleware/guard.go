package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/meridianpay/dashboard/internal/activity"
	"github.com/meridianpay/dashboard/internal/credstore"
	"github.com/meridianpay/dashboard/internal/guard"
	"github.com/meridianpay/dashboard/internal/upstream"
)

const (
	evictionPrefix = "session:v1:"
	evictionSuffix = ":evicted"
	evictionTTL    = 5 * time.Minute
	checkTimeout   = 10 * time.Second
)

// GuardDeps aggregates what the session guard needs at the HTTP boundary.
type GuardDeps struct {
	Cache    *redis.Client
	Client   *upstream.Client
	Stores   credstore.Factory
	Activity activity.Repository
	Logger   *slog.Logger
}

func (d GuardDeps) evictionKey(sid string) string {
	return evictionPrefix + sid + evictionSuffix
}

// NewGuard builds the guard instance for one session. The rejection effect
// marks the session evicted and records the event; it never touches the
// credential store itself.
func (d GuardDeps) NewGuard(sid string) *guard.Guard {
	store := d.Stores(sid)
	return guard.New(store, d.Client.WithStore(store), func(string) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if d.Cache != nil {
			if err := d.Cache.Set(ctx, d.evictionKey(sid), "1", evictionTTL).Err(); err != nil {
				d.Logger.Warn("mark session evicted", "session_id", sid, "error", err)
			}
		}
		if d.Activity != nil {
			_ = d.Activity.Record(ctx, activity.Event{
				ID:        uuid.NewString(),
				SessionID: sid,
				Kind:      activity.KindRejected,
				CreatedAt: time.Now().UTC(),
			})
		}
	}, d.Logger)
}

// Evicted reports whether a previous guard run rejected the session.
func (d GuardDeps) Evicted(ctx context.Context, sid string) bool {
	if d.Cache == nil {
		return false
	}
	v, err := d.Cache.Get(ctx, d.evictionKey(sid)).Result()
	return err == nil && v == "1"
}

// ClearEviction removes the rejection marker; the public entry route calls
// this so a fresh sign-in starts clean.
func (d GuardDeps) ClearEviction(ctx context.Context, sid string) {
	if d.Cache == nil {
		return
	}
	_ = d.Cache.Del(ctx, d.evictionKey(sid)).Err()
}

// Guard protects page routes. The page is served immediately and the
// identity check runs fire-and-forget; a rejection lands as an eviction
// marker and redirects the NEXT request to the public entry route. The
// window where protected content is visible before rejection completes is
// deliberate. Each request runs its own check, so simultaneous page loads
// duplicate identity-check calls; known inefficiency, kept as is.
func Guard(d GuardDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := SessionID(c)

		if d.Evicted(c.UserContext(), sid) {
			return c.Redirect(guard.PublicEntryRoute, fiber.StatusFound)
		}

		g := d.NewGuard(sid)
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		go func() {
			defer cancel()
			g.Run(ctx)
		}()

		return c.Next()
	}
}
