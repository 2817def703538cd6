package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-service/browse"
	"storefront-service/catalog"
)

type StorefrontController struct {
	Catalog *catalog.Client
	Browse  *browse.Manager
}

func NewStorefrontController(client *catalog.Client, manager *browse.Manager) *StorefrontController {
	return &StorefrontController{Catalog: client, Browse: manager}
}

// ListProducts is the one-shot product listing. Search takes precedence
// over the category/tag filter; with neither, all products are returned.
func (sc *StorefrontController) ListProducts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "100"))
	if err != nil || pageSize <= 0 {
		pageSize = 100
	}

	search := c.Query("search")
	category := c.Query("category")
	tag := c.Query("tag")

	var products any
	var fetchErr error
	if search != "" {
		products, fetchErr = sc.Catalog.Products(c, page, pageSize, search)
	} else if category != "" || tag != "" {
		products, fetchErr = sc.Catalog.ProductsByCategoryTags(c, category, tag)
	} else {
		products, fetchErr = sc.Catalog.Products(c, page, pageSize, "")
	}
	if fetchErr != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products})
}

// ListCategories returns all categories with their tags.
func (sc *StorefrontController) ListCategories(c *gin.Context) {
	categories, err := sc.Catalog.Categories(c)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// GetProduct returns one product by slug with all relations.
func (sc *StorefrontController) GetProduct(c *gin.Context) {
	product, err := sc.Catalog.ProductBySlug(c, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch product"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}

type browseRequest struct {
	Search   *string `json:"search,omitempty"`
	Category *string `json:"category,omitempty"`
	Tag      *string `json:"tag,omitempty"`
}

// UpdateBrowse feeds an edit into the session's browse state. Search edits
// are debounced; filter changes refetch immediately.
func (sc *StorefrontController) UpdateBrowse(c *gin.Context) {
	var req browseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	svc := sc.Browse.Get(session(c))
	if req.Search != nil {
		svc.SetSearch(*req.Search)
	}
	if req.Category != nil || req.Tag != nil {
		var category, tag string
		if req.Category != nil {
			category = *req.Category
		}
		if req.Tag != nil {
			tag = *req.Tag
		}
		svc.SetFilter(category, tag)
	}

	c.JSON(http.StatusAccepted, svc.Snapshot())
}

// GetBrowse returns the session's current browse snapshot.
func (sc *StorefrontController) GetBrowse(c *gin.Context) {
	c.JSON(http.StatusOK, sc.Browse.Get(session(c)).Snapshot())
}
