package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	inquirysvc "wardrobe-storefront/internal/service/inquiry"
	vendorsvc "wardrobe-storefront/internal/service/vendor"
)

func (h *handlers) applyVendor(c *gin.Context) {
	var in vendorsvc.ApplyInput
	if err := bindJSON(c, &in); err != nil {
		h.writeError(c, err)
		return
	}
	app, err := h.deps.VendorSvc.Apply(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *handlers) getVendorApplication(c *gin.Context) {
	app, err := h.deps.VendorSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// payVendorFee settles the listing fee through the payment stub.
func (h *handlers) payVendorFee(c *gin.Context) {
	app, err := h.deps.VendorSvc.Pay(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *handlers) submitInquiry(c *gin.Context) {
	var in inquirysvc.SubmitInput
	if err := bindJSON(c, &in); err != nil {
		h.writeError(c, err)
		return
	}
	inq, err := h.deps.InquirySvc.Submit(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": inq.ID, "message": "Thanks for reaching out. We will get back to you soon."})
}
