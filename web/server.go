package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/flowershop/config"
	"github.com/flowershop/database"
	"github.com/flowershop/notify"
	"github.com/flowershop/web/handlers"
	"github.com/flowershop/web/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:embed templates static
var assets embed.FS

// Server represents the web server
type Server struct {
	app     *fiber.App
	handler *handlers.Handler
}

// NewServer creates a new Fiber server for the storefront
func NewServer(cfg *config.Config, db *gorm.DB, publisher notify.Publisher) (*Server, error) {
	templates, err := fs.Sub(assets, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to open templates: %w", err)
	}
	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static files: %w", err)
	}

	engine := html.NewFileSystem(http.FS(templates), ".html")
	addTemplateFuncs(engine)

	sessions := session.New(session.Config{
		Expiration:     cfg.App.SessionTTL,
		KeyLookup:      "cookie:session_id",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.App.SessionCookieSecure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})

	h := handlers.New(db, sessions, publisher, database.SQLLogger, cfg.App)

	app := fiber.New(fiber.Config{
		Views:                 engine,
		AppName:               cfg.App.SiteName,
		DisableStartupMessage: cfg.App.Environment == "production",
		ErrorHandler:          h.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.App.Debug,
	}))
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format: "${status} - ${latency} ${method} ${path} ${error}\n",
		Output: logrus.StandardLogger().Writer(),
	}))
	if cfg.App.Debug {
		app.Use(middleware.SQLDebugMiddleware(database.SQLLogger))
	}

	// Static files
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(static),
		MaxAge: 3600,
	}))

	setupRoutes(app, h, cfg.App.Debug)

	return &Server{app: app, handler: h}, nil
}

// App exposes the underlying Fiber app, mainly for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the server
func (s *Server) Start(port string) error {
	logrus.Infof("Server starting on http://localhost:%s", port)
	return s.app.Listen(":" + port)
}

// Shutdown stops accepting connections and waits for running requests
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// setupRoutes configures all application routes. Route names are used by the
// handlers to build links, so they must stay in sync with the handlers.
func setupRoutes(app *fiber.App, h *handlers.Handler, debug bool) {
	// Main page and the informational pages
	app.Get("/", h.MainPage).Name("mainpage.index")
	app.Get("/about", h.Filler(handlers.AboutUsPage)).Name(handlers.AboutUsPage.Route)
	app.Get("/delivery", h.Filler(handlers.AboutDeliveryPage)).Name(handlers.AboutDeliveryPage.Route)
	app.Get("/contact", h.Filler(handlers.ContactUsPage)).Name(handlers.ContactUsPage.Route)
	app.Get("/faq", h.Filler(handlers.FAQPage)).Name(handlers.FAQPage.Route)

	// Legal pages
	app.Get("/agb", h.Conditions(handlers.AGBPage)).Name(handlers.AGBPage.Route)
	app.Get("/privacy-and-policy", h.Conditions(handlers.PrivacyAndPolicyPage)).Name(handlers.PrivacyAndPolicyPage.Route)
	app.Get("/impressum", h.Conditions(handlers.ImpressumPage)).Name(handlers.ImpressumPage.Route)
	app.Get("/return-policy", h.Conditions(handlers.ReturnPolicyPage)).Name(handlers.ReturnPolicyPage.Route)

	// The handler answers other methods itself with a JSON 405
	app.All("/individual-order", h.IndividualOrder).Name("mainpage.individual-order-negotiate")

	// Catalogue
	catalogue := app.Group("/catalogue")
	catalogue.Get("/products/:category_slug", h.CategoryList(handlers.ProductListing)).Name(handlers.ProductListing.CategoryRoute)
	catalogue.Get("/products/:category_slug/:subcategory_slug", h.SubcategoryList(handlers.ProductListing)).Name("catalogue.products-subcategory")
	catalogue.Get("/bouquets/:category_slug", h.CategoryList(handlers.BouquetListing)).Name(handlers.BouquetListing.CategoryRoute)
	catalogue.Get("/bouquets/:category_slug/:subcategory_slug", h.SubcategoryList(handlers.BouquetListing)).Name("catalogue.bouquets-subcategory")

	// Session carts
	carts := app.Group("/cart")
	carts.Get("/:kind", h.CartDetail).Name("cart.detail")
	carts.Post("/:kind/add", h.CartAdd).Name("cart.add")
	carts.Post("/:kind/remove", h.CartRemove).Name("cart.remove")
	carts.Post("/:kind/clear", h.CartClear).Name("cart.clear")

	// Debug endpoint for SQL logs
	if debug {
		app.Get("/api/debug/sql", h.GetSQLLogs)
		app.Delete("/api/debug/sql", h.ClearSQLLogs)
	}
}

func addTemplateFuncs(engine *html.Engine) {
	engine.AddFunc("money", func(d decimal.Decimal) string {
		return d.StringFixed(2) + " €"
	})
	engine.AddFunc("formatDate", func(t time.Time) string {
		return t.Format("02.01.2006")
	})
	engine.AddFunc("formatDuration", func(d time.Duration) string {
		if d < time.Millisecond {
			return fmt.Sprintf("%.2fµs", float64(d.Nanoseconds())/1000)
		}
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1000000)
	})
	// content and meta tags are edited by the shop staff and trusted
	engine.AddFunc("safeHTML", func(s string) template.HTML {
		return template.HTML(s)
	})
	engine.AddFunc("jsonLD", func(v interface{}) template.JS {
		switch raw := v.(type) {
		case datatypes.JSON:
			return template.JS(raw)
		case string:
			return template.JS(raw)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return "{}"
		}
		return template.JS(b)
	})
	engine.AddFunc("dict", func(pairs ...interface{}) (map[string]interface{}, error) {
		if len(pairs)%2 != 0 {
			return nil, fmt.Errorf("dict needs key/value pairs, got %d values", len(pairs))
		}
		m := make(map[string]interface{}, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			key, ok := pairs[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
			}
			m[key] = pairs[i+1]
		}
		return m, nil
	})
	engine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	engine.AddFunc("sub", func(a, b int) int {
		return a - b
	})
}
