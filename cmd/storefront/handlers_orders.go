package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jkariuki/lapstore/internal/httpx"
	"github.com/jkariuki/lapstore/internal/order"
	"github.com/jkariuki/lapstore/internal/pricing"
	"github.com/jkariuki/lapstore/internal/user"
)

// checkoutHandler godoc
// @Summary Place an order from the current cart
// @Description Validates the shipping form, snapshots prices, decrements stock
// @Description atomically and clears the cart. Browser flow, responds with redirects.
// @Tags orders
// @Accept x-www-form-urlencoded
// @Success 303
// @Failure 422 {object} map[string]any
// @Router /checkout [post]
func checkoutHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := httpx.CurrentSession(c)
		var form order.CheckoutForm
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		_, err := orders.Place(c.Request.Context(), sess.UserID, form)
		var verr *order.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "Please fix the highlighted fields",
				"fields": verr.Fields,
			})
		case errors.Is(err, order.ErrEmptyCart):
			c.Redirect(http.StatusSeeOther, "/cart")
		case errors.Is(err, order.ErrInsufficientStock):
			c.Redirect(http.StatusSeeOther, "/cart?error=stock")
		case err != nil:
			log.Printf("[checkout] place failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not place order"})
		default:
			c.Redirect(http.StatusSeeOther, "/orders?success=1")
		}
	}
}

func orderView(o *order.Order) gin.H {
	return gin.H{
		"order":            o,
		"subtotal_display": pricing.Display(o.Subtotal),
		"shipping_display": pricing.Display(o.Shipping),
		"total_display":    pricing.Display(o.Total),
	}
}

// listOrdersHandler godoc
// @Summary The caller's order history, newest first
// @Tags orders
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/orders [get]
func listOrdersHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := httpx.CurrentSession(c)
		list, err := orders.ListForUser(c.Request.Context(), sess.UserID,
			intQuery(c, "limit", 20), intQuery(c, "offset", 0))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load orders"})
			return
		}
		items := make([]gin.H, 0, len(list))
		for i := range list {
			items = append(items, orderView(&list[i]))
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// getOrderHandler returns one order with its line items. Customers only see
// their own orders; an order belonging to someone else looks like a 404, not
// a 403, so order ids cannot be probed. Admins see everything.
func getOrderHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := httpx.CurrentSession(c)
		o, items, err := orders.Get(c.Request.Context(), c.Param("id"))
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load order"})
			return
		}
		if o.UserID != sess.UserID && sess.Role != user.RoleAdmin {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		v := orderView(o)
		v["items"] = items
		c.JSON(http.StatusOK, v)
	}
}
