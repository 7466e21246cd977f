package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/virtualvault/storefront/internal/core/domain"
	"github.com/virtualvault/storefront/internal/core/ports"
)

const (
	photoTooLargeMessage = "photo is Required and should be less then 1mb"
	negativePriceMessage = "Price must not be negative"
)

type ProductHandler struct {
	service ports.ProductService
	log     zerolog.Logger
}

func NewProductHandler(service ports.ProductService, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{service: service, log: log}
}

// productForm is the multipart body of create and update. The photo part is
// read separately.
type productForm struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description" validate:"required"`
	Price       string `form:"price" validate:"required,numeric"`
	Category    string `form:"category" validate:"required"`
	Quantity    string `form:"quantity" validate:"required,numeric"`
	Shipping    string `form:"shipping"`
}

var productFormMessages = map[string]string{
	"name":        "Name is Required",
	"description": "Description is Required",
	"price":       "Price is Required",
	"category":    "Category is Required",
	"quantity":    "Quantity is Required",
}

type productFilterRequest struct {
	Checked []string          `json:"checked"`
	Radio   []decimal.Decimal `json:"radio"`
}

// readProductForm binds and validates the multipart form. On failure it
// returns the message to send back under "error".
func readProductForm(c echo.Context) (ports.ProductInput, string) {
	var form productForm
	if err := c.Bind(&form); err != nil {
		return ports.ProductInput{}, "invalid form"
	}
	if err := c.Validate(&form); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			first := ve.First()
			if first.Tag == "required" {
				return ports.ProductInput{}, productFormMessages[first.Field]
			}
			return ports.ProductInput{}, first.Message
		}
		return ports.ProductInput{}, err.Error()
	}

	price, err := decimal.NewFromString(form.Price)
	if err != nil {
		return ports.ProductInput{}, "price must be a number"
	}
	if price.IsNegative() {
		return ports.ProductInput{}, negativePriceMessage
	}
	quantity, err := strconv.Atoi(form.Quantity)
	if err != nil {
		return ports.ProductInput{}, "quantity must be a whole number"
	}
	shipping, _ := strconv.ParseBool(form.Shipping)

	in := ports.ProductInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		CategoryID:  form.Category,
		Quantity:    quantity,
		Shipping:    shipping,
	}

	fh, err := c.FormFile("photo")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return in, ""
	case err != nil:
		return ports.ProductInput{}, "invalid form"
	case fh.Size >= domain.MaxPhotoBytes:
		return ports.ProductInput{}, photoTooLargeMessage
	}
	photo, err := readPhoto(fh)
	if err != nil {
		return ports.ProductInput{}, "invalid photo"
	}
	in.Photo = photo
	return in, ""
}

func readPhoto(fh *multipart.FileHeader) (*domain.Photo, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, domain.MaxPhotoBytes))
	if err != nil {
		return nil, err
	}
	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &domain.Photo{Data: data, ContentType: contentType}, nil
}

// Create
//
// @Summary      Create a product
// @Tags         products
// @Accept       mpfd
// @Produce      json
// @Security     TokenAuth
// @Param        name         formData  string  true   "Name"
// @Param        description  formData  string  true   "Description"
// @Param        price        formData  number  true   "Price"
// @Param        category     formData  string  true   "Category id"
// @Param        quantity     formData  int     true   "Quantity"
// @Param        shipping     formData  bool    false  "Ships"
// @Param        photo        formData  file    false  "Photo under 1MB"
// @Success      201          {object}  map[string]any
// @Failure      401          {object}  map[string]any
// @Failure      500          {object}  map[string]any
// @Router       /product/create-product [post]
func (h *ProductHandler) Create(c echo.Context) error {
	in, problem := readProductForm(c)
	if problem != "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": problem})
	}

	product, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrPhotoTooLarge) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": photoTooLargeMessage})
		}
		h.log.Error().Err(err).Str("name", in.Name).Msg("create product failed")
		return failure(c, http.StatusInternalServerError, "Error in creating product", err)
	}
	return success(c, http.StatusCreated, "Product Created Successfully", echo.Map{"products": product})
}

// Update replaces a product's fields. The stored photo is kept unless a new
// one is uploaded.
//
// @Summary      Update a product
// @Tags         products
// @Accept       mpfd
// @Produce      json
// @Security     TokenAuth
// @Param        pid          path      string  true   "Product id"
// @Param        name         formData  string  true   "Name"
// @Param        description  formData  string  true   "Description"
// @Param        price        formData  number  true   "Price"
// @Param        category     formData  string  true   "Category id"
// @Param        quantity     formData  int     true   "Quantity"
// @Param        shipping     formData  bool    false  "Ships"
// @Param        photo        formData  file    false  "Photo under 1MB"
// @Success      201          {object}  map[string]any
// @Failure      404          {object}  map[string]any
// @Failure      500          {object}  map[string]any
// @Router       /product/update-product/{pid} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	in, problem := readProductForm(c)
	if problem != "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": problem})
	}

	product, err := h.service.Update(c.Request().Context(), c.Param("pid"), in)
	switch {
	case errors.Is(err, domain.ErrPhotoTooLarge):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": photoTooLargeMessage})
	case errors.Is(err, domain.ErrProductNotFound):
		return failure(c, http.StatusNotFound, "Product not found", nil)
	case err != nil:
		h.log.Error().Err(err).Str("product_id", c.Param("pid")).Msg("update product failed")
		return failure(c, http.StatusInternalServerError, "Error in Update product", err)
	}
	return success(c, http.StatusCreated, "Product Updated Successfully", echo.Map{"products": product})
}

// Delete removes a product; an unknown id still succeeds.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     TokenAuth
// @Param        pid  path      string  true  "Product id"
// @Success      200  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /product/delete-product/{pid} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("pid")); err != nil {
		h.log.Error().Err(err).Str("product_id", c.Param("pid")).Msg("delete product failed")
		return failure(c, http.StatusInternalServerError, "Error while deleting product", err)
	}
	return success(c, http.StatusOK, "Product Deleted successfully", nil)
}

// Latest returns the newest products.
//
// @Summary      Latest products
// @Tags         products
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /product/get-product [get]
func (h *ProductHandler) Latest(c echo.Context) error {
	products, err := h.service.Latest(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list products failed")
		return failure(c, http.StatusInternalServerError, "Error in getting products", err)
	}
	products = nonNilProducts(products)
	return success(c, http.StatusOK, "All Products", echo.Map{"counTotal": len(products), "products": products})
}

// Single
//
// @Summary      Get a product by slug
// @Tags         products
// @Produce      json
// @Param        slug  path      string  true  "Product slug"
// @Success      200   {object}  map[string]any
// @Failure      500   {object}  map[string]any
// @Router       /product/get-product/{slug} [get]
func (h *ProductHandler) Single(c echo.Context) error {
	product, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		h.log.Error().Err(err).Str("slug", c.Param("slug")).Msg("get product failed")
		return failure(c, http.StatusInternalServerError, "Error while getting single product", err)
	}
	return success(c, http.StatusOK, "Single Product Fetched", echo.Map{"product": product})
}

// Photo streams the stored photo bytes.
//
// @Summary      Product photo
// @Tags         products
// @Produce      image/jpeg,image/png
// @Param        pid  path  string  true  "Product id"
// @Success      200
// @Failure      404  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /product/product-photo/{pid} [get]
func (h *ProductHandler) Photo(c echo.Context) error {
	photo, err := h.service.Photo(c.Request().Context(), c.Param("pid"))
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return failure(c, http.StatusNotFound, "Product not found", nil)
	case err != nil:
		h.log.Error().Err(err).Str("product_id", c.Param("pid")).Msg("get photo failed")
		return failure(c, http.StatusInternalServerError, "Error while getting photo", err)
	case photo == nil || len(photo.Data) == 0:
		return failure(c, http.StatusNotFound, "Photo not found", nil)
	}
	return c.Blob(http.StatusOK, photo.ContentType, photo.Data)
}

// Filter narrows products by category ids and an inclusive [min, max]
// price range.
//
// @Summary      Filter products
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      productFilterRequest  true  "Filters"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Router       /product/product-filters [post]
func (h *ProductHandler) Filter(c echo.Context) error {
	var req productFilterRequest
	if err := c.Bind(&req); err != nil {
		return failure(c, http.StatusBadRequest, "Error While Filtering Products", err)
	}

	var price *ports.PriceRange
	if len(req.Radio) == 2 {
		price = &ports.PriceRange{Min: req.Radio[0], Max: req.Radio[1]}
	}

	products, err := h.service.Filter(c.Request().Context(), req.Checked, price)
	if err != nil {
		h.log.Error().Err(err).Msg("filter products failed")
		return failure(c, http.StatusBadRequest, "Error While Filtering Products", err)
	}
	return success(c, http.StatusOK, "", echo.Map{"products": nonNilProducts(products)})
}

// Count
//
// @Summary      Count products
// @Tags         products
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Router       /product/product-count [get]
func (h *ProductHandler) Count(c echo.Context) error {
	total, err := h.service.Count(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("count products failed")
		return failure(c, http.StatusBadRequest, "Error in product count", err)
	}
	return success(c, http.StatusOK, "", echo.Map{"total": total})
}

// Page returns one page of products, newest first.
//
// @Summary      Paged product list
// @Tags         products
// @Produce      json
// @Param        page  path      int  true  "Page, starting at 1"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Router       /product/product-list/{page} [get]
func (h *ProductHandler) Page(c echo.Context) error {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		page = 1
	}
	products, err := h.service.Page(c.Request().Context(), page)
	if err != nil {
		h.log.Error().Err(err).Int("page", page).Msg("page products failed")
		return failure(c, http.StatusBadRequest, "error in per page ctrl", err)
	}
	return success(c, http.StatusOK, "", echo.Map{"products": nonNilProducts(products)})
}

// Search answers with a bare array of matches.
//
// @Summary      Search products
// @Tags         products
// @Produce      json
// @Param        keyword  path      string  true  "Keyword"
// @Success      200      {array}   domain.Product
// @Failure      400      {object}  map[string]any
// @Router       /product/search/{keyword} [get]
func (h *ProductHandler) Search(c echo.Context) error {
	products, err := h.service.Search(c.Request().Context(), c.Param("keyword"))
	if err != nil {
		h.log.Error().Err(err).Str("keyword", c.Param("keyword")).Msg("search products failed")
		return failure(c, http.StatusBadRequest, "Error In Search Product API", err)
	}
	return c.JSON(http.StatusOK, nonNilProducts(products))
}

// Related
//
// @Summary      Related products
// @Tags         products
// @Produce      json
// @Param        pid  path      string  true  "Product id"
// @Param        cid  path      string  true  "Category id"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Router       /product/related-product/{pid}/{cid} [get]
func (h *ProductHandler) Related(c echo.Context) error {
	products, err := h.service.Related(c.Request().Context(), c.Param("pid"), c.Param("cid"))
	if err != nil {
		h.log.Error().Err(err).Str("product_id", c.Param("pid")).Msg("related products failed")
		return failure(c, http.StatusBadRequest, "error while getting related product", err)
	}
	return success(c, http.StatusOK, "", echo.Map{"products": nonNilProducts(products)})
}

// ByCategory
//
// @Summary      Products of a category
// @Tags         products
// @Produce      json
// @Param        slug  path      string  true  "Category slug"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Router       /product/product-category/{slug} [get]
func (h *ProductHandler) ByCategory(c echo.Context) error {
	category, products, err := h.service.ByCategory(c.Request().Context(), c.Param("slug"))
	if err != nil {
		h.log.Error().Err(err).Str("slug", c.Param("slug")).Msg("category products failed")
		return failure(c, http.StatusBadRequest, "Error While Getting products", err)
	}
	return success(c, http.StatusOK, "", echo.Map{"category": category, "products": nonNilProducts(products)})
}

func nonNilProducts(products []*domain.Product) []*domain.Product {
	if products == nil {
		return []*domain.Product{}
	}
	return products
}
