package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jkariuki/lapstore/internal/catalog"
	"github.com/jkariuki/lapstore/internal/pricing"
)

func intQuery(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}

func int64Query(c *gin.Context, name string) int64 {
	v, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// conditionFilter maps the public filter values to stored conditions.
func conditionFilter(v string) string {
	switch v {
	case "new":
		return catalog.ConditionNew
	case "refurb", "refurbished":
		return catalog.ConditionRefurbished
	}
	return ""
}

func productView(p *catalog.Product, now time.Time) gin.H {
	eff := pricing.EffectivePrice(p, now)
	return gin.H{
		"product":                 p,
		"effective_price":         eff,
		"effective_price_display": pricing.Display(eff),
		"on_sale":                 eff != p.PriceAmount,
	}
}

// listProductsHandler godoc
// @Summary List products
// @Tags catalog
// @Produce json
// @Param category query string false "category slug"
// @Param filter query string false "new or refurb"
// @Param min query int false "minimum price, minor units"
// @Param max query int false "maximum price, minor units"
// @Param sort query string false "newest, price_asc or price_desc"
// @Success 200 {object} catalog.ListResponse
// @Router /api/products [get]
func listProductsHandler(products catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := catalog.Query{
			Category:  c.Query("category"),
			Condition: conditionFilter(c.Query("filter")),
			MinPrice:  int64Query(c, "min"),
			MaxPrice:  int64Query(c, "max"),
			Sort:      c.Query("sort"),
			Limit:     intQuery(c, "limit", 24),
			Offset:    intQuery(c, "offset", 0),
		}
		items, err := products.List(c.Request.Context(), q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load products"})
			return
		}
		if items == nil {
			items = []catalog.Product{}
		}
		c.JSON(http.StatusOK, catalog.ListResponse{
			Category: q.Category,
			Sort:     q.Sort,
			Limit:    q.Limit,
			Offset:   q.Offset,
			Items:    items,
		})
	}
}

// getProductHandler godoc
// @Summary Product detail by slug
// @Tags catalog
// @Produce json
// @Param slug path string true "product slug"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/products/{slug} [get]
func getProductHandler(products catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := products.GetBySlug(c.Request.Context(), c.Param("slug"))
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load product"})
			return
		}
		c.JSON(http.StatusOK, productView(p, time.Now()))
	}
}

// listCategoriesHandler godoc
// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/categories [get]
func listCategoriesHandler(products catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := products.ListCategories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load categories"})
			return
		}
		if cats == nil {
			cats = []catalog.Category{}
		}
		c.JSON(http.StatusOK, gin.H{"items": cats})
	}
}

// trendingHandler godoc
// @Summary Best sellers
// @Tags catalog
// @Produce json
// @Param limit query int false "number of products, default 4"
// @Success 200 {object} map[string]any
// @Router /api/trending [get]
func trendingHandler(products catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := products.Trending(c.Request.Context(), intQuery(c, "limit", 4))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load products"})
			return
		}
		if items == nil {
			items = []catalog.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}
