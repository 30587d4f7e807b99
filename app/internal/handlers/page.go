package handlers

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gift-link/app/internal/models"
	"gift-link/app/internal/services"
	"gift-link/shared/config"
	"gift-link/shared/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Page states rendered by the link template.
const (
	pageFound    = "found"
	pageNotFound = "not_found"
	pageDegraded = "degraded"
	pageError    = "error"
)

type pageData struct {
	State   string
	Link    string
	Display string
}

// PageHandler resolves a token to its stored request and renders the
// copy-to-clipboard page.
type PageHandler struct {
	store   services.RequestStore
	baseURL string
	log     *logger.Logger
}

func NewPageHandler(store services.RequestStore, baseURL string, log *logger.Logger) *PageHandler {
	return &PageHandler{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

func (h *PageHandler) Resolve(c *gin.Context) {
	token := c.Param("token")

	if h.store == nil {
		// Degraded mode: persistence is not configured, so the page
		// shows the constructible URL without attempting a lookup.
		c.HTML(http.StatusOK, "link.html", pageData{
			State: pageDegraded,
			Link:  h.composeLink(token),
		})
		return
	}

	req, err := h.store.GetByToken(token)
	if errors.Is(err, services.ErrRequestNotFound) {
		c.HTML(http.StatusNotFound, "link.html", pageData{State: pageNotFound})
		return
	}
	if err != nil {
		h.log.Error("Failed to look up link request", "token", token, "error", err)
		c.HTML(http.StatusInternalServerError, "link.html", pageData{State: pageError})
		return
	}

	c.HTML(http.StatusOK, "link.html", pageData{
		State:   pageFound,
		Link:    req.Link,
		Display: displayValue(req),
	})
}

func (h *PageHandler) composeLink(token string) string {
	return fmt.Sprintf("%s/%s/%s", h.baseURL, config.LinkPathSegment, token)
}

// displayValue is the human-readable form of the stored value; star
// counts get a unit suffix.
func displayValue(req *models.Request) string {
	if req.Type == models.RequestTypeStars {
		return req.Value + " ⭐"
	}
	return req.Value
}
