package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/notify"
)

// SubmitContact records a public contact-form submission.
func (h *Handler) SubmitContact(c *gin.Context) {
	var params models.CreateContactSubmissionParams
	if err := c.ShouldBindJSON(&params); err != nil {
		invalid(c, "contact")
		return
	}
	sub, err := h.store.CreateContactSubmission(c.Request.Context(), params)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.publish(c, notify.NewEvent(notify.ContactSubmitted, sub.ID, sub))
	c.JSON(http.StatusOK, sub)
}

func (h *Handler) ListContacts(c *gin.Context) {
	items, err := h.store.ListContactSubmissions(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sub, err := h.store.GetContactSubmission(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "contact")
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *Handler) DeleteContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.store.DeleteContactSubmission(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if !deleted {
		notFound(c, "contact")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}
