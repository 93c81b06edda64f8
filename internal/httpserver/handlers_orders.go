package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/gateway"
	"github.com/gin-gonic/gin"
)

const idempotencyHeader = "Idempotency-Key"

// createOrderRequest names the shipping address either as free text or by an
// address book id.
type createOrderRequest struct {
	ShippingAddress string `json:"shipping_address"`
	AddressID       string `json:"address_id"`
	Total           *int64 `json:"total" binding:"required"`
}

func listOrdersHandler(gw Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := gw.ListOrders(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			writeError(c, err)
			return
		}
		respond(c, http.StatusOK, res, gin.H{"orders": res.Value})
	}
}

func getOrderHandler(gw Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := gw.GetOrder(c.Request.Context(), currentUser(c).ID, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		respond(c, http.StatusOK, res, res.Value)
	}
}

func createOrderHandler(gw Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		user := currentUser(c)
		shipTo := strings.TrimSpace(req.ShippingAddress)
		if req.AddressID != "" {
			line, err := addressLine(c, gw, user.ID, req.AddressID)
			if err != nil {
				writeError(c, err)
				return
			}
			shipTo = line
		}

		res, err := gw.CreateOrder(c.Request.Context(), gateway.CheckoutInput{
			UserID:          user.ID,
			ShippingAddress: shipTo,
			Total:           *req.Total,
			IdempotencyKey:  strings.TrimSpace(c.GetHeader(idempotencyHeader)),
		})
		if err != nil {
			writeError(c, err)
			return
		}
		respond(c, http.StatusCreated, res, res.Value)
	}
}

func addressLine(c *gin.Context, gw Storefront, userID, addressID string) (string, error) {
	res, err := gw.Addresses(c.Request.Context(), userID)
	if err != nil {
		return "", err
	}
	for _, a := range res.Value {
		if a.ID == addressID {
			return a.Line(), nil
		}
	}
	return "", fmt.Errorf("%w: address %s", domain.ErrNotFound, addressID)
}
