package httpserver

import (
	"net/http"

	"storefront/internal/catalog"
	"storefront/internal/gateway"
	"github.com/gin-gonic/gin"
)

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func listProductsHandler(gw Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		spec := catalog.ParseFilter(c.Request.URL.Query())
		res, err := gw.ListProducts(c.Request.Context(), spec)
		if err != nil {
			writeError(c, err)
			return
		}
		respond(c, http.StatusOK, res, productListResponse{Products: toProductList(res.Value), Count: len(res.Value)})
	}
}

func featuredProductsHandler(gw Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := gw.FeaturedProducts(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		respond(c, http.StatusOK, res, productListResponse{Products: toProductList(res.Value), Count: len(res.Value)})
	}
}

func getProductHandler(gw Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := gw.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		respond(c, http.StatusOK, res, toProductResponse(*res.Value))
	}
}

func productReviewsHandler(gw Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := gw.ProductReviews(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		respond(c, http.StatusOK, res, toReviewList(res.Value))
	}
}

func addReviewHandler(gw Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		user := currentUser(c)
		res, err := gw.AddReview(c.Request.Context(), gateway.ReviewInput{
			UserID:    user.ID,
			UserName:  user.DisplayName(),
			ProductID: c.Param("id"),
			Rating:    req.Rating,
			Comment:   req.Comment,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		respond(c, http.StatusCreated, res, res.Value)
	}
}

func updateReviewHandler(gw Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		res, err := gw.UpdateReview(c.Request.Context(), gateway.ReviewUpdate{
			UserID:   currentUser(c).ID,
			ReviewID: c.Param("id"),
			Rating:   req.Rating,
			Comment:  req.Comment,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		respond(c, http.StatusOK, res, res.Value)
	}
}
