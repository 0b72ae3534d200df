package handlers

import (
	"errors"
	"net/http"

	"ekoi-website/internal/middleware"
	"ekoi-website/internal/models"
	"ekoi-website/internal/service"
	"ekoi-website/pkg/lang"
	"ekoi-website/pkg/logger"
	"ekoi-website/pkg/navigation"

	"github.com/gin-gonic/gin"
)

const contactSentParam = "sent"

// fieldErrorKeys maps validation tags onto UI string keys.
var fieldErrorKeys = map[string]string{
	"required": "error_required",
	"email":    "error_email",
	"max":      "error_max",
	"no_html":  "error_no_html",
}

func (h *TemplateHandler) RenderContact(c *gin.Context) {
	if h.serveCached(c) {
		return
	}

	h.renderContact(c, http.StatusOK, gin.H{
		"Success": c.Query(contactSentParam) == "1",
	})
}

// SubmitContact handles the contact form. A valid submission redirects back
// to the form with a confirmation so a reload does not post it again.
func (h *TemplateHandler) SubmitContact(c *gin.Context) {
	locale := h.requestLocale(c)

	var req models.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderContact(c, http.StatusBadRequest, gin.H{"Form": req, "Failure": true})
		return
	}

	if h.contact == nil {
		h.renderContact(c, http.StatusServiceUnavailable, gin.H{"Form": req, "Failure": true})
		return
	}

	meta := models.InquiryMeta{
		Locale:    string(locale),
		IP:        c.ClientIP(),
		RequestID: c.GetString(middleware.RequestIDContextKey),
	}

	if _, err := h.contact.Submit(c.Request.Context(), req, meta); err != nil {
		var validationErr *service.InquiryValidationError
		switch {
		case errors.As(err, &validationErr):
			h.renderContact(c, http.StatusUnprocessableEntity, gin.H{
				"Form":   req,
				"Errors": h.localizeFieldErrors(locale, validationErr.Fields),
			})
		case errors.Is(err, service.ErrInquiryStoreUnavailable):
			logger.FromContext(c.Request.Context()).Warn("Contact form submitted but no inquiry store is configured")
			h.renderContact(c, http.StatusServiceUnavailable, gin.H{"Form": req, "Failure": true})
		default:
			logger.FromContext(c.Request.Context()).WithError(err).Error("Failed to submit contact inquiry")
			h.renderContact(c, http.StatusInternalServerError, gin.H{"Form": req, "Failure": true})
		}
		return
	}

	c.Redirect(http.StatusSeeOther, lang.Localize(locale, "/contact")+"?"+contactSentParam+"=1")
}

func (h *TemplateHandler) renderContact(c *gin.Context, status int, extra gin.H) {
	locale := h.requestLocale(c)
	heading := h.navLabel("/contact", "contact_intro", locale)

	data := h.basePageData(c, heading, "", gin.H{
		"Heading":     heading,
		"Intro":       h.translator(locale).Get("contact_intro"),
		"ContactPath": lang.Localize(locale, "/contact"),
		"Form":        models.ContactRequest{},
		"Errors":      map[string]string{},
		"Success":     false,
		"Failure":     false,
		"Breadcrumbs": h.breadcrumbs(locale, navigation.Item{Label: heading, Path: "/contact"}),
	})
	for k, v := range extra {
		data[k] = v
	}

	h.renderWithLayout(c, status, "base.html", "contact.html", data)
}

func (h *TemplateHandler) localizeFieldErrors(locale lang.Locale, fields map[string]string) map[string]string {
	t := h.translator(locale)
	messages := make(map[string]string, len(fields))
	for field, tag := range fields {
		key, ok := fieldErrorKeys[tag]
		if !ok {
			key = "error_invalid"
		}
		messages[field] = t.Get(key)
	}
	return messages
}
