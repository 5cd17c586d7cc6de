package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"wardrobe-storefront/internal/cart"
	cartsvc "wardrobe-storefront/internal/service/cart"
)

type cartLineView struct {
	cart.Entry
	LineTotal decimal.Decimal `json:"lineTotal"`
	Complete  bool            `json:"complete"`
}

type cartView struct {
	Items  []cartLineView `json:"items"`
	Totals cart.Totals    `json:"totals"`
	Ready  bool           `json:"ready"`
}

// newCartView prices every line. Incomplete rentals show a zero line total.
func newCartView(s cart.State) cartView {
	totals := s.Totals()
	view := cartView{
		Items:  make([]cartLineView, 0, len(s.Entries)),
		Totals: totals,
		Ready:  totals.Ready(),
	}
	for _, e := range s.Entries {
		line := cartLineView{Entry: e, LineTotal: decimal.Zero, Complete: e.Complete()}
		if line.Complete {
			line.LineTotal = cart.EntryTotal(e)
		}
		view.Items = append(view.Items, line)
	}
	return view
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	cart.Request
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *handlers) getCart(c *gin.Context) {
	state, err := h.deps.CartSvc.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartView(state))
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}
	state, err := h.deps.CartSvc.AddItem(c.Request.Context(), sessionID(c), req.ProductID, req.Request)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartView(state))
}

func (h *handlers) setCartQuantity(c *gin.Context) {
	var req setQuantityRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}
	state, err := h.deps.CartSvc.SetQuantity(c.Request.Context(), sessionID(c), c.Param("productId"), c.Param("type"), *req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartView(state))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	state, err := h.deps.CartSvc.RemoveItem(c.Request.Context(), sessionID(c), c.Param("productId"), c.Param("type"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartView(state))
}

func (h *handlers) clearCart(c *gin.Context) {
	state, err := h.deps.CartSvc.Clear(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartView(state))
}

func (h *handlers) checkout(c *gin.Context) {
	var in cartsvc.CheckoutInput
	if err := bindJSON(c, &in); err != nil {
		h.writeError(c, err)
		return
	}
	order, err := h.deps.CartSvc.Checkout(c.Request.Context(), sessionID(c), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *handlers) listOrders(c *gin.Context) {
	orders, err := h.deps.CartSvc.Orders(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(orders), "results": orders})
}

func (h *handlers) getOrder(c *gin.Context) {
	order, err := h.deps.CartSvc.Order(c.Request.Context(), sessionID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
