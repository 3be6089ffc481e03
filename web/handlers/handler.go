package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/flowershop/cart"
	"github.com/flowershop/config"
	"github.com/flowershop/database"
	"github.com/flowershop/models"
	"github.com/flowershop/notify"
	"github.com/flowershop/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Handler serves every storefront page. It holds what the pages share:
// the database, the session store and the order publisher.
type Handler struct {
	DB        *gorm.DB
	Sessions  *session.Store
	Publisher notify.Publisher
	QueryLog  *database.QueryLogger
	Settings  config.AppConfig
}

// New creates a Handler
func New(db *gorm.DB, sessions *session.Store, publisher notify.Publisher, queryLog *database.QueryLogger, settings config.AppConfig) *Handler {
	if publisher == nil {
		publisher = notify.NopPublisher{}
	}
	return &Handler{
		DB:        db,
		Sessions:  sessions,
		Publisher: publisher,
		QueryLog:  queryLog,
		Settings:  settings,
	}
}

// Breadcrumb is one step of the page trail. An empty URL marks the current page.
type Breadcrumb struct {
	Name string
	URL  string
}

// carts holds both session carts of the visitor
type carts struct {
	sess     *session.Session
	products *cart.Cart
	bouquets *cart.Cart
}

func (h *Handler) loadCarts(c *fiber.Ctx) (*carts, error) {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	products, err := cart.Load(sess, models.KindProducts)
	if err != nil {
		return nil, err
	}
	bouquets, err := cart.Load(sess, models.KindBouquets)
	if err != nil {
		return nil, err
	}
	return &carts{sess: sess, products: products, bouquets: bouquets}, nil
}

func (cs *carts) of(kind models.Kind) *cart.Cart {
	if kind == models.KindBouquets {
		return cs.bouquets
	}
	return cs.products
}

// commonContext builds the values every HTML page renders: site name, cart
// counters and the SQL debug panel.
func (h *Handler) commonContext(c *fiber.Ctx, cs *carts) fiber.Map {
	ctx := fiber.Map{
		"SiteName":    h.Settings.SiteName,
		"Year":        time.Now().Year(),
		"CurrentPath": c.Path(),
		"Debug":       h.Settings.Debug,
	}
	if cs != nil {
		ctx["ProductsCartCount"] = cs.products.Count()
		ctx["BouquetsCartCount"] = cs.bouquets.Count()
	}
	if h.Settings.Debug && h.QueryLog != nil {
		queries := h.sqlQueries(c)
		ctx["SQLQueries"] = queries
		ctx["TotalSQLQueries"] = len(queries)
	}
	return ctx
}

// sqlQueries returns the statements run since the request started
func (h *Handler) sqlQueries(c *fiber.Ctx) []database.QueryLog {
	mark, ok := c.Locals("SQLMark").(int)
	if !ok {
		return nil
	}
	return h.QueryLog.Since(mark)
}

// mergeContext adds data on top of the common context. Values in data win.
func (h *Handler) mergeContext(c *fiber.Ctx, cs *carts, data fiber.Map) fiber.Map {
	ctx := h.commonContext(c, cs)
	for k, v := range data {
		ctx[k] = v
	}
	return ctx
}

// render renders a page into the base layout
func (h *Handler) render(c *fiber.Ctx, cs *carts, name string, data fiber.Map) error {
	return c.Render(name, h.mergeContext(c, cs, data), "layouts/base")
}

// routeURL reverses a named route
func routeURL(c *fiber.Ctx, name string, params fiber.Map) (string, error) {
	if c.App().GetRoute(name).Name != name {
		return "", fmt.Errorf("no route named %q", name)
	}
	return c.GetRouteURL(name, params)
}

// absoluteURL reverses a named route into an absolute URL of this request's host
func absoluteURL(c *fiber.Ctx, name string, params fiber.Map) (string, error) {
	path, err := routeURL(c, name, params)
	if err != nil {
		return "", err
	}
	return c.BaseURL() + path, nil
}

// httpError maps store errors to HTTP errors
func httpError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.ErrNotFound
	}
	return err
}

func logger(c *fiber.Ctx) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	})
}
