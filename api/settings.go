package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HasanApplore/IndoSup-sub000/models"
)

// Site settings are keyed by their string key rather than a numeric id, so
// they get their own handlers instead of a resource.

// PublicSettings lists every setting.
func (h *Handler) PublicSettings(c *gin.Context) { h.ListSettings(c) }

// PublicSetting returns one setting by key.
func (h *Handler) PublicSetting(c *gin.Context) { h.GetSetting(c) }

func (h *Handler) ListSettings(c *gin.Context) {
	items, err := h.store.ListSiteSettings(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetSetting(c *gin.Context) {
	st, err := h.store.GetSiteSetting(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.fail(c, err, "setting")
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) CreateSetting(c *gin.Context) {
	var params models.CreateSiteSettingParams
	if err := c.ShouldBindJSON(&params); err != nil {
		invalid(c, "setting")
		return
	}
	st, err := h.store.CreateSiteSetting(c.Request.Context(), params)
	if err != nil {
		h.fail(c, err, "setting")
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) UpdateSetting(c *gin.Context) {
	var params models.UpdateSiteSettingParams
	if err := c.ShouldBindJSON(&params); err != nil {
		invalid(c, "setting")
		return
	}
	st, err := h.store.UpdateSiteSetting(c.Request.Context(), c.Param("key"), params)
	if err != nil {
		h.fail(c, err, "setting")
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) DeleteSetting(c *gin.Context) {
	deleted, err := h.store.DeleteSiteSetting(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.serverError(c, err)
		return
	}
	if !deleted {
		notFound(c, "setting")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Setting deleted successfully"})
}
