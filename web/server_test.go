package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/flowershop/config"
	"github.com/flowershop/database/databasetest"
	"github.com/flowershop/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishIndividualOrder(ctx context.Context, order *models.IndividualOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

func newTestApp(t *testing.T, cfg *config.Config, db *gorm.DB, publisher *mockPublisher) *fiber.App {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	if db == nil {
		db = databasetest.Seeded(t)
	}
	var srv *Server
	var err error
	if publisher != nil {
		srv, err = NewServer(cfg, db, publisher)
	} else {
		srv, err = NewServer(cfg, db, nil)
	}
	require.NoError(t, err)
	return srv.App()
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func postForm(t *testing.T, app *fiber.App, target string, form url.Values, cookies ...*http.Cookie) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func itemID(t *testing.T, db *gorm.DB, slug string) uint {
	t.Helper()
	var item models.Item
	require.NoError(t, db.Where("slug = ?", slug).First(&item).Error)
	return item.ID
}

func TestMainPage(t *testing.T) {
	app := newTestApp(t, nil, nil, nil)

	resp, body := get(t, app, "/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Contains(t, body, "Spring collection")
	assert.NotContains(t, body, "Winter collection")
	assert.Contains(t, body, "Red roses, 25 stems")
	assert.Contains(t, body, "Belgian pralines")
	assert.Contains(t, body, "Flower delivery")
	assert.Contains(t, body, `<meta name="description" content="Fresh flowers and gifts delivered the same day.">`)
	assert.Contains(t, body, `href="http://example.com/contact"`)
	assert.Contains(t, body, `href="http://example.com/delivery"`)
	assert.Contains(t, body, `action="http://example.com/individual-order"`)
	assert.Contains(t, body, `/catalogue/bouquets/bouquets/roses`)
}

func TestMainPageWithoutRecordIsNotFound(t *testing.T) {
	app := newTestApp(t, nil, databasetest.New(t), nil)

	resp, _ := get(t, app, "/")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestFillerPages(t *testing.T) {
	app := newTestApp(t, nil, nil, nil)

	cases := map[string]string{
		"/about":    "About us",
		"/delivery": "Delivery",
		"/contact":  "Contacts",
		"/faq":      "FAQ",
	}
	for path, title := range cases {
		t.Run(path, func(t *testing.T) {
			resp, body := get(t, app, path)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Contains(t, body, "<h1>"+title+"</h1>")
			assert.Contains(t, body, `data-url="`+path+`"`)
			assert.Contains(t, body, `<script type="application/ld+json">`)
			assert.Contains(t, body, `"@type":"WebPage"`)
		})
	}
}

func TestConditionsPagesUseFixedTitles(t *testing.T) {
	app := newTestApp(t, nil, nil, nil)

	resp, body := get(t, app, "/impressum")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<h1>Contact information</h1>")
	assert.NotContains(t, body, "<h1>Imprint</h1>")
	assert.Contains(t, body, "Last updated:")

	for _, path := range []string{"/agb", "/privacy-and-policy", "/return-policy"} {
		resp, _ := get(t, app, path)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}

func TestContentPageMissingIsNotFound(t *testing.T) {
	db := databasetest.Seeded(t)
	require.NoError(t, db.Where("kind = ?", models.PageFAQ).Delete(&models.ContentPage{}).Error)
	app := newTestApp(t, nil, db, nil)

	resp, body := get(t, app, "/faq")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Back to the main page")
}

func TestCategoryList(t *testing.T) {
	app := newTestApp(t, nil, nil, nil)

	resp, body := get(t, app, "/catalogue/bouquets/bouquets")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<h1>Bouquets</h1>")
	assert.Contains(t, body, "<span>Bouquets</span>")
	assert.Contains(t, body, "Pink peonies")
	assert.NotContains(t, body, "Bridal cascade")
}

func TestSubcategoryListBreadcrumbs(t *testing.T) {
	app := newTestApp(t, nil, nil, nil)

	resp, body := get(t, app, "/catalogue/bouquets/bouquets/roses")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<h1>Roses</h1>")
	assert.Contains(t, body, `<a href="/catalogue/bouquets/bouquets">Bouquets</a>`)
	assert.Contains(t, body, "<span>Roses</span>")
	assert.Contains(t, body, "White roses, 15 stems")
	assert.NotContains(t, body, "Spring tulips mix")
}

func TestListingOrdering(t *testing.T) {
	app := newTestApp(t, nil, nil, nil)

	_, body := get(t, app, "/catalogue/bouquets/bouquets/tulips?ordering=price")
	assert.Less(t, strings.Index(body, "Yellow tulips"), strings.Index(body, "Spring tulips mix"))

	_, body = get(t, app, "/catalogue/bouquets/bouquets/tulips?ordering=bogus")
	assert.Less(t, strings.Index(body, "Spring tulips mix"), strings.Index(body, "Yellow tulips"))
}

func TestListingNotFound(t *testing.T) {
	app := newTestApp(t, nil, nil, nil)

	cases := []string{
		"/catalogue/bouquets/unknown",
		"/catalogue/products/bouquets",
		"/catalogue/bouquets/occasions/roses",
		"/catalogue/products/gifts/roses",
		"/catalogue/bouquets/bouquets/roses?page=2",
		"/catalogue/bouquets/bouquets/roses?page=0",
		"/catalogue/bouquets/bouquets/roses?page=abc",
	}
	for _, target := range cases {
		t.Run(target, func(t *testing.T) {
			resp, _ := get(t, app, target)
			assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		})
	}
}

func TestListingPagination(t *testing.T) {
	cfg := config.Default()
	cfg.App.CataloguePageSize = 2
	app := newTestApp(t, cfg, nil, nil)

	resp, body := get(t, app, "/catalogue/bouquets/bouquets/roses?page=2")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Page 2 of 2")
	assert.Contains(t, body, "Spray roses in a box")
	assert.Contains(t, body, `rel="prev"`)
	assert.NotContains(t, body, `rel="next"`)
}

func validOrderForm() url.Values {
	return url.Values{
		"name":           {"Anna"},
		"phone":          {"+49 170 1234567"},
		"email":          {"anna@example.com"},
		"contact_method": {"email"},
		"budget":         {"80"},
		"description":    {"Pastel bouquet for a wedding anniversary"},
	}
}

func TestIndividualOrderCreated(t *testing.T) {
	db := databasetest.Seeded(t)
	publisher := new(mockPublisher)
	publisher.On("PublishIndividualOrder", mock.Anything, mock.AnythingOfType("*models.IndividualOrder")).Return(nil).Once()
	app := newTestApp(t, nil, db, publisher)

	resp, body := postForm(t, app, "/individual-order", validOrderForm())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "We will contact you soon. Meanwhile, have a cup of tea 😊", body["detail"])

	var orders []models.IndividualOrder
	require.NoError(t, db.Find(&orders).Error)
	require.Len(t, orders, 1)
	assert.Equal(t, "Anna", orders[0].Name)
	assert.NotEmpty(t, orders[0].Reference)
	publisher.AssertExpectations(t)
}

func TestIndividualOrderPublishFailureStillSucceeds(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("PublishIndividualOrder", mock.Anything, mock.Anything).Return(assert.AnError)
	app := newTestApp(t, nil, nil, publisher)

	resp, _ := postForm(t, app, "/individual-order", validOrderForm())
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestIndividualOrderInvalid(t *testing.T) {
	db := databasetest.Seeded(t)
	app := newTestApp(t, nil, db, nil)

	form := validOrderForm()
	form.Del("name")
	form.Set("contact_method", "pigeon")

	resp, body := postForm(t, app, "/individual-order", form)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "The form was filled in incorrectly:", body["detail"])
	assert.EqualValues(t, fiber.StatusBadRequest, body["status"])

	raw, ok := body["errors"].(string)
	require.True(t, ok, "errors is sent as a JSON string")
	var errs map[string][]map[string]string
	require.NoError(t, json.Unmarshal([]byte(raw), &errs))
	assert.Equal(t, "required", errs["name"][0]["code"])
	assert.Equal(t, "invalid_choice", errs["contact_method"][0]["code"])

	var count int64
	require.NoError(t, db.Model(&models.IndividualOrder{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestIndividualOrderMethodNotAllowed(t *testing.T) {
	app := newTestApp(t, nil, nil, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/individual-order", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, fiber.MethodPost, resp.Header.Get(fiber.HeaderAllow))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Method not allowed. Use POST.", body["detail"])
	assert.EqualValues(t, fiber.StatusMethodNotAllowed, body["status"])
}

func sendOrder(t *testing.T, app *fiber.App, contentType string, body io.Reader) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/individual-order", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestIndividualOrderJSON(t *testing.T) {
	db := databasetest.Seeded(t)
	app := newTestApp(t, nil, db, nil)

	resp, _ := sendOrder(t, app, fiber.MIMEApplicationJSON, strings.NewReader(
		`{"name":"Anna","phone":"+49 170 1234567","description":"Sunflowers","budget":150}`))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var order models.IndividualOrder
	require.NoError(t, db.First(&order).Error)
	require.NotNil(t, order.Budget)
	assert.Equal(t, "150.00", order.Budget.StringFixed(2))
	assert.Equal(t, models.ContactPhone, order.ContactMethod)
}

func TestIndividualOrderJSONBudgetTooLarge(t *testing.T) {
	db := databasetest.Seeded(t)
	app := newTestApp(t, nil, db, nil)

	resp, body := sendOrder(t, app, fiber.MIMEApplicationJSON, strings.NewReader(
		`{"name":"Anna","phone":"+49 170 1234567","description":"x","budget":"1e20"}`))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var errs map[string][]map[string]string
	require.NoError(t, json.Unmarshal([]byte(body["errors"].(string)), &errs))
	assert.Equal(t, "max_digits", errs["budget"][0]["code"])

	var count int64
	require.NoError(t, db.Model(&models.IndividualOrder{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestIndividualOrderMultipart(t *testing.T) {
	db := databasetest.Seeded(t)
	app := newTestApp(t, nil, db, nil)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, values := range validOrderForm() {
		require.NoError(t, w.WriteField(key, values[0]))
	}
	require.NoError(t, w.Close())

	resp, body := sendOrder(t, app, w.FormDataContentType(), &buf)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "success", body["status"])

	var order models.IndividualOrder
	require.NoError(t, db.First(&order).Error)
	assert.Equal(t, "anna@example.com", order.Email)
	require.NotNil(t, order.Budget)
	assert.Equal(t, "80.00", order.Budget.StringFixed(2))
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestCartRoundTrip(t *testing.T) {
	db := databasetest.Seeded(t)
	app := newTestApp(t, nil, db, nil)
	roses := strconv.Itoa(int(itemID(t, db, "white-roses-15")))
	tulips := strconv.Itoa(int(itemID(t, db, "yellow-tulips")))

	resp, body := postForm(t, app, "/cart/bouquets/add", url.Values{"item_id": {roses}, "quantity": {"2"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := sessionCookie(t, resp)
	cart := body["cart"].(map[string]interface{})
	assert.EqualValues(t, 2, cart["count"])
	assert.Equal(t, "79.8", cart["total"])

	resp, body = postForm(t, app, "/cart/bouquets/add", url.Values{"item_id": {tulips}}, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cart = body["cart"].(map[string]interface{})
	assert.EqualValues(t, 3, cart["count"])

	// The other kind has its own cart
	req := httptest.NewRequest(http.MethodGet, "/cart/products", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var products map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	assert.EqualValues(t, 0, products["cart"].(map[string]interface{})["count"])

	// Cart counters show up on pages
	req = httptest.NewRequest(http.MethodGet, "/catalogue/bouquets/bouquets/roses", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), `<span class="cart-count" data-kind="bouquets">3</span>`)
	assert.Contains(t, string(page), "In cart")

	resp, body = postForm(t, app, "/cart/bouquets/remove", url.Values{"item_id": {roses}}, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["cart"].(map[string]interface{})["count"])

	resp, body = postForm(t, app, "/cart/bouquets/clear", url.Values{}, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["cart"].(map[string]interface{})["count"])
}

func TestCartRejectsBadRequests(t *testing.T) {
	db := databasetest.Seeded(t)
	app := newTestApp(t, nil, db, nil)
	pralines := strconv.Itoa(int(itemID(t, db, "belgian-pralines")))

	resp, body := postForm(t, app, "/cart/flowers/add", url.Values{"item_id": {pralines}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.EqualValues(t, fiber.StatusNotFound, body["status"])

	// an item of the other kind is unknown to this cart
	resp, _ = postForm(t, app, "/cart/bouquets/add", url.Values{"item_id": {pralines}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = postForm(t, app, "/cart/products/add", url.Values{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = postForm(t, app, "/cart/products/add", url.Values{"item_id": {pralines}, "quantity": {"500"}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDebugRoutes(t *testing.T) {
	app := newTestApp(t, nil, nil, nil)
	resp, _ := get(t, app, "/api/debug/sql")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	cfg := config.Default()
	cfg.App.Debug = true
	app = newTestApp(t, cfg, nil, nil)

	resp, body := get(t, app, "/about")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-SQL-Queries"))
	assert.Contains(t, body, "SQL queries:")

	resp, _ = get(t, app, "/api/debug/sql")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestStaticFiles(t *testing.T) {
	app := newTestApp(t, nil, nil, nil)

	resp, body := get(t, app, "/static/js/storefront.js")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "add-to-cart")
}
