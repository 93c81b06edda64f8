package httpserver

import (
	"net/http"

	"storefront/internal/gateway"
	"storefront/internal/mode"
	"github.com/gin-gonic/gin"
)

type addressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	IsDefault  bool   `json:"is_default"`
}

type modeRequest struct {
	Mock *bool `json:"mock" binding:"required"`
}

func meHandler(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func listAddressesHandler(gw Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := gw.Addresses(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			writeError(c, err)
			return
		}
		respond(c, http.StatusOK, res, gin.H{"addresses": res.Value})
	}
}

func saveAddressHandler(gw Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		id := c.Param("id")
		res, err := gw.SaveAddress(c.Request.Context(), gateway.AddressInput{
			ID:         id,
			UserID:     currentUser(c).ID,
			Street:     req.Street,
			City:       req.City,
			State:      req.State,
			PostalCode: req.PostalCode,
			IsDefault:  req.IsDefault,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		status := http.StatusOK
		if id == "" {
			status = http.StatusCreated
		}
		respond(c, status, res, res.Value)
	}
}

func deleteAddressHandler(gw Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := gw.DeleteAddress(c.Request.Context(), currentUser(c).ID, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.Header("X-Data-Source", string(res.Source))
		c.Status(http.StatusNoContent)
	}
}

func setDefaultAddressHandler(gw Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := gw.SetDefaultAddress(c.Request.Context(), currentUser(c).ID, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.Header("X-Data-Source", string(res.Source))
		c.Status(http.StatusNoContent)
	}
}

func modeStatusHandler(state *mode.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := state.Status(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, n)
	}
}

// setModeHandler persists the override. The running process keeps its mode;
// the notice tells the caller whether a restart is needed.
func setModeHandler(state *mode.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req modeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		n, err := state.SetOverride(c.Request.Context(), *req.Mock)
		if err != nil {
			writeError(c, err)
			return
		}
		status := http.StatusOK
		if n.ReloadRequired {
			status = http.StatusAccepted
		}
		c.JSON(status, n)
	}
}
