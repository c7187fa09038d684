package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/homeboardhq/homeboard-backend/api/controllers"
	"github.com/homeboardhq/homeboard-backend/api/middleware"
	"github.com/homeboardhq/homeboard-backend/internal/auth"
	"github.com/homeboardhq/homeboard-backend/internal/content"
	inventorysvc "github.com/homeboardhq/homeboard-backend/internal/inventory"
	jokesvc "github.com/homeboardhq/homeboard-backend/internal/jokes"
	socialsvc "github.com/homeboardhq/homeboard-backend/internal/social"
	votersvc "github.com/homeboardhq/homeboard-backend/internal/voters"
	"github.com/homeboardhq/homeboard-backend/pkg/auth/session"
	"github.com/homeboardhq/homeboard-backend/pkg/config"
	"github.com/homeboardhq/homeboard-backend/pkg/db"
	"github.com/homeboardhq/homeboard-backend/pkg/logger"
	"github.com/homeboardhq/homeboard-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          redis.Pinger
	SessionManager sessionManager
	Registry       *prometheus.Registry

	AuthService     auth.Service
	RegisterService auth.RegisterService
	Inventory       inventorysvc.Service
	Voters          votersvc.Service
	Social          socialsvc.Service
	Jokes           jokesvc.Service
	Quotes          *content.Quotes
	Restaurant      *content.Restaurant
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(deps.RegisterService, deps.AuthService, logg))
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.SessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.SessionManager, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public reads.
		r.Route("/jokes", func(r chi.Router) {
			r.Get("/", controllers.JokeList(deps.Jokes, logg))
			r.Get("/random", controllers.JokeRandom(deps.Jokes, logg))
			r.Get("/{jokeId}", controllers.JokeDetail(deps.Jokes, logg))
		})
		r.Route("/pictures", func(r chi.Router) {
			r.Get("/", controllers.PictureList(deps.Jokes, logg))
			r.Get("/random", controllers.PictureRandom(deps.Jokes, logg))
			r.Get("/{pictureId}", controllers.PictureDetail(deps.Jokes, logg))
		})
		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", controllers.QuoteAll(deps.Quotes))
			r.Get("/random", controllers.QuoteRandom(deps.Quotes))
		})
		r.Route("/restaurant", func(r chi.Router) {
			r.Get("/menu", controllers.RestaurantMenu(deps.Restaurant))
			r.Post("/orders", controllers.RestaurantOrder(deps.Restaurant, logg))
		})
		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", controllers.ProfileList(deps.Social, logg))
			r.Get("/{profileId}", controllers.ProfileDetail(deps.Social, logg))
		})
		r.Get("/posts/{postId}", controllers.PostDetail(deps.Social, logg))

		// Authenticated surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))

			r.Post("/jokes", controllers.JokeCreate(deps.Jokes, logg))
			r.Post("/pictures", controllers.PictureCreate(deps.Jokes, logg))

			r.Route("/inventory", func(r chi.Router) {
				r.Route("/categories", func(r chi.Router) {
					r.Get("/", controllers.CategoryList(deps.Inventory, logg))
					r.Post("/", controllers.CategoryCreate(deps.Inventory, logg))
					r.Get("/{categoryId}", controllers.CategoryDetail(deps.Inventory, logg))
					r.Patch("/{categoryId}", controllers.CategoryUpdate(deps.Inventory, logg))
					r.Delete("/{categoryId}", controllers.CategoryDelete(deps.Inventory, logg))
				})
				r.Route("/items", func(r chi.Router) {
					r.Get("/", controllers.ItemList(deps.Inventory, logg))
					r.Post("/", controllers.ItemCreate(deps.Inventory, logg))
					r.Get("/{itemId}", controllers.ItemDetail(deps.Inventory, logg))
					r.Patch("/{itemId}", controllers.ItemUpdate(deps.Inventory, logg))
					r.Delete("/{itemId}", controllers.ItemDelete(deps.Inventory, logg))
					r.Get("/{itemId}/purchases", controllers.PurchaseList(deps.Inventory, logg))
					r.Post("/{itemId}/purchases", controllers.PurchaseCreate(deps.Inventory, logg))
					r.Get("/{itemId}/usages", controllers.UsageList(deps.Inventory, logg))
					r.Post("/{itemId}/usages", controllers.UsageCreate(deps.Inventory, logg))
				})
				r.Route("/purchases/{purchaseId}", func(r chi.Router) {
					r.Patch("/", controllers.PurchaseMutation(deps.Inventory, logg))
					r.Delete("/", controllers.PurchaseMutation(deps.Inventory, logg))
				})
				r.Route("/usages/{usageId}", func(r chi.Router) {
					r.Patch("/", controllers.UsageMutation(deps.Inventory, logg))
					r.Delete("/", controllers.UsageMutation(deps.Inventory, logg))
				})
			})

			r.Route("/voters", func(r chi.Router) {
				r.Get("/", controllers.VoterList(deps.Voters, logg))
				r.Get("/graphs", controllers.VoterGraphs(deps.Voters, logg))
				r.Get("/{voterId}", controllers.VoterDetail(deps.Voters, logg))
			})

			r.Post("/profiles", controllers.ProfileCreate(deps.Social, logg))
			r.Patch("/profiles/me", controllers.ProfileUpdate(deps.Social, logg))
			r.Post("/profiles/{profileId}/follow", controllers.FollowCreate(deps.Social, logg))
			r.Delete("/profiles/{profileId}/follow", controllers.FollowDelete(deps.Social, logg))

			r.Post("/posts", controllers.PostCreate(deps.Social, logg))
			r.Delete("/posts/{postId}", controllers.PostDelete(deps.Social, logg))
			r.Post("/posts/{postId}/like", controllers.LikeCreate(deps.Social, logg))
			r.Delete("/posts/{postId}/like", controllers.LikeDelete(deps.Social, logg))
			r.Post("/posts/{postId}/comments", controllers.CommentCreate(deps.Social, logg))

			r.Get("/feed", controllers.Feed(deps.Social, logg))
		})
	})

	return r
}
