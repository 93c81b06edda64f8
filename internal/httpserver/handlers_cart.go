package httpserver

import (
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/gateway"
	"github.com/gin-gonic/gin"
)

type addToCartRequest struct {
	ProductID string      `json:"product_id" binding:"required"`
	Size      domain.Size `json:"size" binding:"required"`
	Quantity  int         `json:"quantity"`
}

type updateCartRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func cartHandler(gw Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := gw.CartItems(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			writeError(c, err)
			return
		}
		respond(c, http.StatusOK, res, toCartResponse(res.Value))
	}
}

func cartCountHandler(gw Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := gw.CartCount(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			writeError(c, err)
			return
		}
		respond(c, http.StatusOK, res, gin.H{"count": res.Value})
	}
}

func addToCartHandler(gw Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		res, err := gw.AddToCart(c.Request.Context(), gateway.AddToCartInput{
			UserID:    currentUser(c).ID,
			ProductID: req.ProductID,
			Size:      req.Size,
			Quantity:  req.Quantity,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		respond(c, http.StatusCreated, res, res.Value)
	}
}

func updateCartItemHandler(gw Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		res, err := gw.UpdateCartItem(c.Request.Context(), currentUser(c).ID, c.Param("id"), *req.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Header("X-Data-Source", string(res.Source))
		c.Status(http.StatusNoContent)
	}
}

func removeCartItemHandler(gw Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := gw.RemoveCartItem(c.Request.Context(), currentUser(c).ID, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.Header("X-Data-Source", string(res.Source))
		c.Status(http.StatusNoContent)
	}
}
