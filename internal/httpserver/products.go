package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"wardrobe-storefront/internal/cart"
	"wardrobe-storefront/internal/catalog"
	"wardrobe-storefront/internal/domain"
	"wardrobe-storefront/internal/validation"
)

type productListResponse struct {
	Total   int              `json:"total"`
	Results []domain.Product `json:"results"`
}

// filterSpecFromQuery reads browse parameters over the defaults. Unknown
// sort keys fall back to latest and unknown types to all.
func filterSpecFromQuery(c *gin.Context) (catalog.FilterSpec, error) {
	spec := catalog.DefaultFilterSpec()
	spec.Search = c.Query("search")
	if v := c.Query("category"); v != "" {
		spec.Category = v
	}
	if v := c.Query("location"); v != "" {
		spec.Location = v
	}
	if v := c.Query("type"); v != "" {
		spec.Type = catalog.ParseTypeFilter(v)
	}
	if v := c.Query("sort"); v != "" {
		spec.Sort = catalog.ParseSortKey(v)
	}

	var err error
	if v := c.Query("minPrice"); v != "" {
		if spec.MinPrice, err = decimal.NewFromString(v); err != nil {
			return spec, domain.Invalid("minPrice must be a number")
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if spec.MaxPrice, err = decimal.NewFromString(v); err != nil {
			return spec, domain.Invalid("maxPrice must be a number")
		}
	}
	if v := c.Query("minRating"); v != "" {
		if spec.MinRating, err = strconv.ParseFloat(v, 64); err != nil {
			return spec, domain.Invalid("minRating must be a number")
		}
	}
	return spec, nil
}

func (h *handlers) listProducts(c *gin.Context) {
	spec, err := filterSpecFromQuery(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	products, err := h.deps.ProductSvc.List(c.Request.Context(), spec)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, productListResponse{Total: len(products), Results: products})
}

func (h *handlers) suggestProducts(c *gin.Context) {
	suggestions, err := h.deps.ProductSvc.Suggest(c.Request.Context(), strings.TrimSpace(c.Query("q")))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.ProductSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type quoteQuery struct {
	Type         string `form:"type" json:"type" binding:"required"`
	Quantity     *int   `form:"quantity" json:"quantity"`
	DeliveryDate string `form:"deliveryDate" json:"deliveryDate"`
	ReturnDate   string `form:"returnDate" json:"returnDate"`
}

// quoteProduct prices a prospective line. Quantity defaults to one.
func (h *handlers) quoteProduct(c *gin.Context) {
	var q quoteQuery
	if err := validation.Translate(c.ShouldBindQuery(&q)); err != nil {
		h.writeError(c, err)
		return
	}
	req := cart.Request{Type: q.Type, Quantity: 1, DeliveryDate: q.DeliveryDate, ReturnDate: q.ReturnDate}
	if q.Quantity != nil {
		req.Quantity = *q.Quantity
	}

	quote, err := h.deps.ProductSvc.Quote(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *handlers) facets(c *gin.Context) {
	f, err := h.deps.ProductSvc.Facets(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}
