package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/lovemypet/backend/internal/config"
	"github.com/lovemypet/backend/internal/handlers"
	"github.com/lovemypet/backend/internal/metrics"
	"github.com/lovemypet/backend/internal/middleware"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/services"
	"github.com/lovemypet/backend/internal/storage"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health        *handlers.HealthHandler
	Session       *handlers.SessionHandler
	Members       *handlers.MemberHandler
	Pets          *handlers.PetHandler
	HealthRecords *handlers.HealthRecordHandler
	Stories       *handlers.StoryHandler
	Moderation    *handlers.ModerationHandler
	Posts         *handlers.PostHandler
	Pins          *handlers.PinHandler
	Feed          *handlers.FeedHandler
	Ads           *handlers.AdHandler
	Policies      *handlers.PolicyHandler
	Settings      *handlers.SettingsHandler
	Notifications *handlers.NotificationHandler
	Assist        *handlers.AssistHandler
	Chats         *handlers.ChatHandler
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	users storage.Repository[models.User],
	settings *services.SettingsService,
	h Handlers,
) {
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		Next:              func(c *fiber.Ctx) bool { return c.Path() == "/api/notifications/stream" },
	}))
	api.Use(
		middleware.OptionalJWT(cfg),
		middleware.LoadMember(users),
		middleware.ResolveAdmin(cfg),
		middleware.Maintenance(settings),
	)

	api.Get("/health", h.Health.Check)
	api.Get("/settings", h.Settings.Get)

	// Session: stricter limit of 10 req/min per IP
	authLimit := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	api.Post("/session", authLimit, h.Session.Login)
	api.Post("/signup", authLimit, h.Session.Signup)

	// Public reads
	api.Get("/policies", h.Policies.List)
	api.Get("/policies/:id", h.Policies.Get)
	api.Get("/legal/:id", h.Policies.Page)
	api.Get("/feed", h.Feed.Home)
	api.Get("/alerts", h.Feed.Alerts)
	api.Get("/found", h.Feed.Found)
	api.Get("/stories", h.Stories.List)
	api.Get("/stories/:id/comments", h.Stories.Comments)
	api.Get("/pets/:id", h.Pets.Get)
	api.Get("/members/:id", h.Members.Get)

	// Finder testimonial links work without an account
	api.Get("/finder-testimonial/:token", h.Stories.FinderLookup)
	api.Post("/finder-testimonial/:token", h.Stories.FinderRedeem)

	api.Get("/notifications", h.Notifications.List)
	api.Get("/notifications/stream", h.Notifications.Stream)

	// Member routes
	member := middleware.MemberRequired()
	api.Get("/me", member, h.Session.Me)
	api.Put("/me", member, h.Session.UpdateMe)
	api.Get("/me/pets", member, h.Session.MyPets)
	api.Delete("/notifications/:id", member, h.Notifications.Dismiss)

	api.Post("/pets", member, h.Pets.Create)
	api.Put("/pets/:id", member, h.Pets.Update)
	api.Delete("/pets/:id", member, h.Pets.Delete)
	api.Post("/pets/:id/missing", member, h.Pets.ReportMissing)
	api.Post("/pets/:id/safe", member, h.Pets.MarkSafe)
	api.Post("/pets/:id/reunion", member, h.Pets.SubmitReunion)

	api.Get("/pets/:id/health", member, h.HealthRecords.List)
	api.Post("/pets/:id/health", member, h.HealthRecords.Create)
	api.Put("/pets/:id/health/:recordId", member, h.HealthRecords.Update)
	api.Delete("/pets/:id/health/:recordId", member, h.HealthRecords.Delete)

	api.Post("/posts", member, h.Posts.Create)
	api.Post("/posts/:id/like", member, h.Posts.Like)
	api.Post("/stories/:id/like", member, h.Stories.Like)
	api.Post("/stories/:id/comments", member, h.Stories.AddComment)

	api.Get("/chats", member, h.Chats.Inbox)
	api.Post("/chats", member, h.Chats.Start)
	api.Get("/chats/:id/messages", member, h.Chats.Messages)
	api.Post("/chats/:id/messages", member, h.Chats.Send)

	assist := api.Group("/assist", member)
	assist.Post("/description", h.Assist.Description)
	assist.Post("/keywords", h.Assist.Keywords)
	assist.Post("/missing-message", h.Assist.MissingMessage)
	assist.Post("/owner-testimonial", h.Assist.OwnerTestimonial)
	assist.Post("/finder-testimonial", h.Assist.FinderTestimonial)

	// Admin panel
	admin := api.Group("/admin", middleware.AdminRequired())

	admin.Get("/members", h.Members.List)
	admin.Put("/members/:id", h.Members.Update)
	admin.Get("/vetting", h.Members.PendingVetting)
	admin.Post("/vetting/:id/approve", h.Members.ApproveVetting)
	admin.Post("/vetting/:id/reject", h.Members.RejectVetting)

	admin.Get("/pets", h.Pets.AdminList)
	admin.Post("/pets/:id/archive", h.Pets.Archive)
	admin.Post("/pets/:id/restore", h.Pets.Restore)

	admin.Get("/moderation", h.Moderation.Queue)
	admin.Get("/moderation/finder", h.Moderation.FinderQueue)
	admin.Post("/moderation/:id/approve", h.Moderation.Approve)
	admin.Post("/moderation/:id/reject", h.Moderation.Reject)
	admin.Post("/moderation/:id/approve-finder", h.Moderation.ApproveFinder)

	admin.Get("/posts", h.Posts.AdminList)
	admin.Post("/posts", h.Posts.AdminCreate)
	admin.Put("/posts/:id", h.Posts.AdminUpdate)

	admin.Get("/pins", h.Pins.List)
	admin.Post("/pins", h.Pins.Pin)
	admin.Delete("/pins/:type/:itemId", h.Pins.Unpin)

	admin.Get("/advertisers", h.Ads.ListAdvertisers)
	admin.Post("/advertisers", h.Ads.CreateAdvertiser)
	admin.Put("/advertisers/:id", h.Ads.UpdateAdvertiser)
	admin.Get("/adverts", h.Ads.ListAdverts)
	admin.Post("/adverts", h.Ads.CreateAdvert)
	admin.Put("/adverts/:id", h.Ads.UpdateAdvert)
	admin.Put("/adverts/:id/status", h.Ads.SetAdvertStatus)

	admin.Get("/policies", h.Policies.AdminList)
	admin.Put("/policies/:id", h.Policies.Update)
	admin.Put("/policies/:id/status", h.Policies.SetStatus)

	admin.Put("/settings", h.Settings.Update)
}
