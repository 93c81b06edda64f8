package httpserver

import (
	"storefront/internal/domain"
)

type productResponse struct {
	domain.Product
	PrimaryImage    string `json:"primary_image"`
	DiscountPercent int    `json:"discount_percent,omitempty"`
}

func toProductResponse(p domain.Product) productResponse {
	resp := productResponse{Product: p, PrimaryImage: p.PrimaryImage()}
	if p.IsSale && p.OriginalPrice != nil && *p.OriginalPrice > p.Price {
		orig := *p.OriginalPrice
		resp.DiscountPercent = int((orig - p.Price) * 100 / orig)
	}
	return resp
}

func toProductList(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

type productListResponse struct {
	Products []productResponse `json:"products"`
	Count    int               `json:"count"`
}

type reviewListResponse struct {
	Reviews       []domain.Review `json:"reviews"`
	Count         int             `json:"count"`
	AverageRating float64         `json:"average_rating"`
}

func toReviewList(reviews []domain.Review) reviewListResponse {
	resp := reviewListResponse{Reviews: reviews, Count: len(reviews)}
	if len(reviews) == 0 {
		resp.Reviews = []domain.Review{}
		return resp
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	resp.AverageRating = float64(sum*10/len(reviews)) / 10
	return resp
}

type cartResponse struct {
	Items []domain.CartItem `json:"items"`
	Total int64             `json:"total"`
	Count int               `json:"count"`
}

func toCartResponse(items []domain.CartItem) cartResponse {
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return cartResponse{Items: items, Total: domain.CartTotal(items), Count: count}
}
