package store_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/flowershop/database/databasetest"
	"github.com/flowershop/models"
	"github.com/flowershop/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentPage(t *testing.T) {
	db := databasetest.Seeded(t)

	for _, kind := range models.PageKinds() {
		page, err := store.ContentPage(db, kind)
		require.NoError(t, err, kind)
		assert.Equal(t, kind, page.Kind)

		var ld map[string]string
		require.NoError(t, json.Unmarshal(page.JSONLD, &ld))
		assert.Equal(t, "WebPage", ld["@type"])
	}

	_, err := store.ContentPage(databasetest.New(t), models.PageFAQ)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMainPageRecords(t *testing.T) {
	db := databasetest.Seeded(t)

	page, err := store.MainPage(db)
	require.NoError(t, err)
	assert.NotEmpty(t, page.MetaTags)

	block, err := store.SeoBlock(db)
	require.NoError(t, err)
	require.NotNil(t, block)
	assert.Equal(t, "Flower delivery", block.Title)

	slides, err := store.SliderImages(db)
	require.NoError(t, err)
	assert.Len(t, slides, 2)
	assert.Equal(t, "/static/media/slider/spring.jpg", slides[0].Image)

	empty := databasetest.New(t)
	_, err = store.MainPage(empty)
	assert.ErrorIs(t, err, store.ErrNotFound)
	block, err = store.SeoBlock(empty)
	assert.NoError(t, err)
	assert.Nil(t, block)
}

func TestCreateIndividualOrder(t *testing.T) {
	db := databasetest.New(t)
	budget := decimal.RequireFromString("120.50")

	order := &models.IndividualOrder{
		Name:          "Anna",
		Phone:         "+49 151 2345678",
		ContactMethod: models.ContactTelegram,
		Budget:        &budget,
		Description:   "White and blue, no lilies",
	}
	require.NoError(t, store.CreateIndividualOrder(db, order))
	assert.NotZero(t, order.ID)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", order.Reference.String())

	orders, err := store.IndividualOrdersSince(db, order.CreatedAt.Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.Reference, orders[0].Reference)
	require.NotNil(t, orders[0].Budget)
	assert.True(t, budget.Equal(*orders[0].Budget))
}
