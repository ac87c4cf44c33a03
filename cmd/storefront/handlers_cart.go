package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jkariuki/lapstore/internal/cart"
	"github.com/jkariuki/lapstore/internal/catalog"
	"github.com/jkariuki/lapstore/internal/httpx"
	"github.com/jkariuki/lapstore/internal/pricing"
)

// returnTo sanitizes the post-action redirect target from the form. Only
// local paths are allowed.
func returnTo(c *gin.Context) string {
	to := c.PostForm("returnTo")
	if !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") {
		return "/cart"
	}
	return to
}

func redirectWithError(c *gin.Context, to, code string) {
	sep := "?"
	if strings.Contains(to, "?") {
		sep = "&"
	}
	c.Redirect(http.StatusSeeOther, to+sep+"error="+code)
}

// cartCountHandler godoc
// @Summary Cart badge count
// @Description Total units in the cart. Anonymous visitors get zero.
// @Tags cart
// @Produce json
// @Success 200 {object} map[string]int
// @Router /api/cart/count [get]
func cartCountHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := httpx.CurrentSession(c)
		if sess == nil {
			c.JSON(http.StatusOK, gin.H{"count": 0})
			return
		}
		n, err := carts.Count(c.Request.Context(), sess.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": n})
	}
}

// cartSummaryHandler godoc
// @Summary Cart contents priced at current effective prices
// @Tags cart
// @Produce json
// @Success 200 {object} cart.Summary
// @Router /api/cart [get]
func cartSummaryHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := httpx.CurrentSession(c)
		if sess == nil {
			c.JSON(http.StatusOK, gin.H{
				"items": []cart.SummaryItem{}, "subtotal": 0, "count": 0,
			})
			return
		}
		sum, err := carts.Summary(c.Request.Context(), sess.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":            sum.Items,
			"subtotal":         sum.Subtotal,
			"subtotal_display": pricing.Display(sum.Subtotal),
			"count":            sum.Count,
		})
	}
}

type addToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// addToCartAPIHandler godoc
// @Summary Add a product to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param body body addToCartRequest true "product and quantity"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/cart/items [post]
func addToCartAPIHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := httpx.CurrentSession(c)
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		}
		err := carts.Add(c.Request.Context(), sess.UserID, req.ProductID, req.Quantity)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		case errors.Is(err, cart.ErrOutOfStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Out of stock"})
		case errors.Is(err, cart.ErrExceedsStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Exceeds available stock"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update cart"})
		default:
			n, err := carts.Count(c.Request.Context(), sess.UserID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cart"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "count": n})
		}
	}
}

// addToCartFormHandler is the browser flow: same rules as the API handler
// but failures redirect back with an error code in the query string.
func addToCartFormHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := httpx.CurrentSession(c)
		productID := c.PostForm("productId")
		qty, _ := strconv.Atoi(c.PostForm("quantity"))
		to := returnTo(c)

		if productID == "" {
			redirectWithError(c, to, "badrequest")
			return
		}
		err := carts.Add(c.Request.Context(), sess.UserID, productID, qty)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			redirectWithError(c, to, "notfound")
		case errors.Is(err, cart.ErrOutOfStock):
			redirectWithError(c, to, "outofstock")
		case errors.Is(err, cart.ErrExceedsStock):
			redirectWithError(c, to, "stock")
		case err != nil:
			redirectWithError(c, to, "internal")
		default:
			c.Redirect(http.StatusSeeOther, to)
		}
	}
}

func updateCartItemHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := httpx.CurrentSession(c)
		itemID := c.PostForm("itemId")
		qty, _ := strconv.Atoi(c.PostForm("quantity"))
		to := returnTo(c)

		err := carts.Update(c.Request.Context(), sess.UserID, itemID, qty)
		switch {
		case errors.Is(err, cart.ErrItemNotFound):
			redirectWithError(c, to, "notfound")
		case err != nil:
			redirectWithError(c, to, "internal")
		default:
			c.Redirect(http.StatusSeeOther, to)
		}
	}
}

func removeCartItemHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := httpx.CurrentSession(c)
		to := returnTo(c)

		err := carts.Remove(c.Request.Context(), sess.UserID, c.PostForm("itemId"))
		switch {
		case errors.Is(err, cart.ErrItemNotFound):
			redirectWithError(c, to, "notfound")
		case err != nil:
			redirectWithError(c, to, "internal")
		default:
			c.Redirect(http.StatusSeeOther, to)
		}
	}
}
