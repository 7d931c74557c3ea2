package cache

import (
	"context"
	"encoding/json"
	"time"

	"redolic_back_end/internal/database"
	"redolic_back_end/internal/models"
)

const (
	ProductCacheTTL = 10 * time.Minute

	productListKey = "products:all"
)

// GetProductList lit le catalogue depuis Redis ; (nil, false) en cas de
// miss ou d'entrée illisible.
func GetProductList(ctx context.Context) ([]models.Product, bool) {
	val, err := database.Redis.Get(ctx, productListKey).Result()
	if err != nil || val == "" {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(val), &products); err != nil {
		return nil, false
	}
	return products, true
}

func SetProductList(ctx context.Context, products []models.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, productListKey, data, ProductCacheTTL)
}

// InvalidateProducts vide le cache catalogue après toute écriture produit.
func InvalidateProducts(ctx context.Context) {
	database.Redis.Del(ctx, productListKey)
}
