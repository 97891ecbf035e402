package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gomart/internal/models"
	"gomart/internal/services"
)

type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

type createCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// @Summary      List products
// @Tags         Products
// @Security     BearerAuth
// @Produce      json
// @Param        q            query     string  false  "Name fragment"
// @Param        category_id  query     int     false  "Category filter"
// @Param        limit        query     int     false  "Page size"
// @Param        offset       query     int     false  "Page offset"
// @Success      200          {object}  map[string]interface{}
// @Router       /api/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	categoryID := 0
	if v, err := strconv.Atoi(c.DefaultQuery("category_id", "0")); err == nil && v > 0 {
		categoryID = v
	}
	products, total, err := h.productService.List(c.Query("q"), categoryID, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{
		"products": products,
		"total":    total,
	})
}

// @Summary      Get a product
// @Tags         Products
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	product, err := h.productService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"product": product})
}

// @Summary      Create a product
// @Tags         Products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        product  body      models.ProductRequest  true  "Product data"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]interface{}
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := h.productService.Create(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Product created", gin.H{"product": product})
}

// @Summary      Update a product
// @Tags         Products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                    true  "Product ID"
// @Param        product  body      models.ProductRequest  true  "Product data"
// @Success      200      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]interface{}
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := h.productService.Update(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Product updated", gin.H{"product": product})
}

// @Summary      Delete a product
// @Tags         Products
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.productService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Product deleted", nil)
}

// @Summary      List categories
// @Tags         Products
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/categories [get]
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.productService.ListCategories()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"categories": categories})
}

// @Summary      Create a category
// @Tags         Products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        category  body      createCategoryRequest  true  "Category name"
// @Success      201       {object}  map[string]interface{}
// @Router       /api/categories [post]
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := h.productService.CreateCategory(req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Category created", gin.H{"category": category})
}
