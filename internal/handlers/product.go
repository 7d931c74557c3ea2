package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"redolic_back_end/internal/cache"
	"redolic_back_end/internal/database"
	"redolic_back_end/internal/models"
	"redolic_back_end/internal/services"
	"redolic_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxProductImages = 5

func productStore() *store.ProductStore {
	return store.NewProductStore(database.MongoStoreDB)
}

// parseSizes accepte un tableau JSON ("[\"S\",\"M\"]") ou une liste CSV
// ("S, M, L") — le front envoie les deux selon l'écran.
func parseSizes(raw string) []string {
	if raw == "" {
		return nil
	}

	var sizes []string
	if err := json.Unmarshal([]byte(raw), &sizes); err == nil {
		return sizes
	}

	for _, s := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			sizes = append(sizes, trimmed)
		}
	}
	return sizes
}

func parsePrice(raw string) float64 {
	v, _ := strconv.ParseFloat(raw, 64)
	return v
}

// uploadFormImages pousse les images du formulaire multipart vers MinIO et
// renvoie leurs URLs publiques.
func uploadFormImages(c *gin.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil // pas de multipart = pas de nouvelles images
	}

	files := form.File["images"]
	if len(files) > maxProductImages {
		files = files[:maxProductImages]
	}

	var urls []string
	for _, fh := range files {
		url, err := services.UploadProductImage(c.Request.Context(), fh)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// === POST /api/products ===
func CreateProduct(c *gin.Context) {
	imageURLs, err := uploadFormImages(c)
	if err != nil {
		log.Println("❌ Erreur upload MinIO:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product"})
		return
	}

	p := models.Product{
		Name:          c.PostForm("name"),
		Description:   c.PostForm("description"),
		Price:         parsePrice(c.PostForm("price")),
		OriginalPrice: parsePrice(c.PostForm("originalPrice")),
		Sizes:         parseSizes(c.PostForm("sizes")),
		Images:        imageURLs,
	}

	if p.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product name is required"})
		return
	}

	stored, err := productStore().Insert(c.Request.Context(), p)
	if err != nil {
		log.Println("❌ Erreur création produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product"})
		return
	}

	// 🔄 Indexation Elasticsearch
	go services.IndexProduct(stored)
	cache.InvalidateProducts(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"success": true, "product": stored})
}

// === PUT /api/products/:id ===
func UpdateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	st := productStore()
	p, err := st.GetByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product"})
		return
	}

	p.Name = c.PostForm("name")
	p.Description = c.PostForm("description")
	p.Price = parsePrice(c.PostForm("price"))
	p.OriginalPrice = parsePrice(c.PostForm("originalPrice"))
	p.Sizes = parseSizes(c.PostForm("sizes"))

	// Images conservées par le front + nouveaux uploads
	kept := c.PostFormArray("existingImages")
	newImages, err := uploadFormImages(c)
	if err != nil {
		log.Println("❌ Erreur upload MinIO:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product"})
		return
	}
	p.Images = append(kept, newImages...)

	stored, err := st.Update(c.Request.Context(), p)
	if err != nil {
		log.Println("❌ Erreur mise à jour produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product"})
		return
	}

	go services.IndexProduct(stored)
	cache.InvalidateProducts(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"success": true, "product": stored})
}

// === GET /api/products ===
func GetAllProducts(c *gin.Context) {
	ctx := c.Request.Context()

	// ✅ Vérifie le cache Redis
	if cached, ok := cache.GetProductList(ctx); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := productStore().ListByRecency(ctx)
	if err != nil {
		log.Println("❌ Erreur lecture produits:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	cache.SetProductList(ctx, products)
	c.JSON(http.StatusOK, products)
}

// === GET /api/products/:id ===
func GetProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	p, err := productStore().GetByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// === DELETE /api/products/:id ===
func DeleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	p, err := productStore().Delete(c.Request.Context(), id)
	if errors.Is(err, store.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur suppression produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product"})
		return
	}

	// Nettoyage best effort du stockage et de l'index
	go func(p models.Product) {
		ctx := context.Background()
		for _, img := range p.Images {
			services.RemoveProductImage(ctx, img)
		}
		services.RemoveProduct(p.ID.Hex())
	}(p)
	cache.InvalidateProducts(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}

// === GET /api/products/search?q= ===
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing 'q' parameter"})
		return
	}

	results, err := services.SearchProducts(query)
	if err != nil {
		log.Println("⚠️ Recherche indisponible:", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "Search unavailable"})
		return
	}

	c.JSON(http.StatusOK, results)
}
