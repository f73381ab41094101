package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"customer-service/internal/domain"
	"github.com/gin-gonic/gin"
)

// CustomerService is the resource logic behind the /Customer routes.
type CustomerService interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, id string, patch domain.CustomerPatch) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	Ready(ctx context.Context) error
}

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

var offeredFormats = []string{gin.MIMEJSON, gin.MIMEXML}

type customerHandler struct {
	svc CustomerService
}

func (h *customerHandler) list(c *gin.Context) {
	customers, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Negotiate(http.StatusOK, gin.Negotiate{
		Offered:  offeredFormats,
		JSONData: customers,
		XMLData:  domain.CustomerList{Customers: customers},
	})
}

func (h *customerHandler) get(c *gin.Context) {
	customer, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Negotiate(http.StatusOK, gin.Negotiate{
		Offered: offeredFormats,
		Data:    customer,
	})
}

func (h *customerHandler) create(c *gin.Context) {
	var in domain.Customer
	if !bindBody(c, &in) {
		return
	}
	created, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Location", customerLocation(created.ID))
	c.Status(http.StatusCreated)
}

func (h *customerHandler) update(c *gin.Context) {
	var patch domain.CustomerPatch
	if !bindBody(c, &patch) {
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Location", customerLocation(updated.ID))
	c.Status(http.StatusSeeOther)
}

func (h *customerHandler) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bindBody decodes the request body by its Content-Type. It writes the error
// response itself and reports whether the handler should continue.
func bindBody(c *gin.Context, dst any) bool {
	var err error
	switch c.ContentType() {
	case gin.MIMEJSON:
		err = c.ShouldBindJSON(dst)
	case gin.MIMEXML, gin.MIMEXML2:
		err = c.ShouldBindXML(dst)
	default:
		respondError(c, http.StatusUnsupportedMediaType, "content type must be application/json or application/xml")
		return false
	}
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "customer not found")
	case errors.Is(err, domain.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}

func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{StatusCode: status, Message: msg})
}

func customerLocation(id int64) string {
	return "/Customer/" + strconv.FormatInt(id, 10)
}
