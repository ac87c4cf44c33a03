package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jkariuki/lapstore/internal/catalog"
	"github.com/jkariuki/lapstore/internal/order"
)

// createProductHandler godoc
// @Summary Create a product
// @Tags admin
// @Accept json
// @Produce json
// @Param body body catalog.CreateProductRequest true "product"
// @Success 201 {object} catalog.Product
// @Failure 400 {object} map[string]string
// @Router /api/admin/products [post]
func createProductHandler(products catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.Slug == "" || req.Title == "" || req.Brand == "" || req.Model == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slug, title, brand and model are required"})
			return
		}
		if req.PriceAmount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price_amount must be positive"})
			return
		}
		condition := catalog.ConditionNew
		if req.Condition != "" {
			if !catalog.ValidCondition(req.Condition) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown condition"})
				return
			}
			condition = req.Condition
		}
		status := catalog.StatusDraft
		if req.Status != "" {
			if !catalog.ValidStatus(req.Status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
				return
			}
			status = req.Status
		}

		var categoryIDs []string
		if len(req.Categories) > 0 {
			cats, err := products.CategoriesBySlugs(c.Request.Context(), req.Categories)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve categories"})
				return
			}
			if len(cats) != len(req.Categories) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category slug"})
				return
			}
			for _, cat := range cats {
				categoryIDs = append(categoryIDs, cat.ID)
			}
		}

		p := &catalog.Product{
			ID:               uuid.NewString(),
			Slug:             req.Slug,
			Title:            req.Title,
			Brand:            req.Brand,
			Model:            req.Model,
			Description:      req.Description,
			Condition:        condition,
			Status:           status,
			PriceAmount:      req.PriceAmount,
			SalePriceAmount:  req.SalePriceAmount,
			SaleStart:        req.SaleStart,
			SaleEnd:          req.SaleEnd,
			StockRemaining:   req.StockRemaining,
			WarrantyMonths:   req.WarrantyMonths,
			ReturnPolicyDays: req.ReturnPolicyDays,
		}
		if err := products.Create(c.Request.Context(), p, categoryIDs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create product"})
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// updateProductHandler merges the request into the stored product. Unset
// fields keep their current value, including the sale window: clearing a sale
// means sending explicit nulls is not supported here, archive and recreate.
func updateProductHandler(products catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		p, err := products.GetByID(c.Request.Context(), c.Param("id"))
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load product"})
			return
		}

		if req.Title != "" {
			p.Title = req.Title
		}
		if req.Brand != "" {
			p.Brand = req.Brand
		}
		if req.Model != "" {
			p.Model = req.Model
		}
		if req.Description != "" {
			p.Description = req.Description
		}
		if req.Condition != "" {
			if !catalog.ValidCondition(req.Condition) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown condition"})
				return
			}
			p.Condition = req.Condition
		}
		if req.Status != "" {
			if !catalog.ValidStatus(req.Status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
				return
			}
			p.Status = req.Status
		}
		if req.PriceAmount != nil {
			if *req.PriceAmount <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price_amount must be positive"})
				return
			}
			p.PriceAmount = *req.PriceAmount
		}
		if req.SalePriceAmount != nil {
			p.SalePriceAmount = req.SalePriceAmount
		}
		if req.SaleStart != nil {
			p.SaleStart = req.SaleStart
		}
		if req.SaleEnd != nil {
			p.SaleEnd = req.SaleEnd
		}
		if req.StockRemaining != nil {
			if *req.StockRemaining < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "stock_remaining must not be negative"})
				return
			}
			p.StockRemaining = *req.StockRemaining
		}
		if req.WarrantyMonths != nil {
			p.WarrantyMonths = *req.WarrantyMonths
		}
		if req.ReturnPolicyDays != nil {
			p.ReturnPolicyDays = *req.ReturnPolicyDays
		}

		if err := products.Update(c.Request.Context(), p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update product"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// archiveProductHandler hides a product from the shop. Existing orders keep
// their snapshots, existing cart lines fail at checkout.
func archiveProductHandler(products catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := products.SetStatus(c.Request.Context(), c.Param("id"), catalog.StatusArchived)
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not archive product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// updateOrderStatusHandler godoc
// @Summary Transition an order's status
// @Description Cancelling a PENDING order restocks the purchased quantities.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param body body order.UpdateStatusRequest true "target status"
// @Success 200 {object} map[string]bool
// @Failure 409 {object} map[string]string
// @Router /api/admin/orders/{id}/status [patch]
func updateOrderStatusHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		err := orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
		switch {
		case errors.Is(err, order.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		case errors.Is(err, order.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, order.ErrBadTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "only pending orders can be cancelled"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update order"})
		default:
			c.JSON(http.StatusOK, gin.H{"success": true})
		}
	}
}

func markOrderPaidHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := orders.MarkPaid(c.Request.Context(), c.Param("id"))
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
