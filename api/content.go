package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

// ─────────────────────────────────────────────────────────────────────────────
// Catalogues
// ─────────────────────────────────────────────────────────────────────────────

func catalogueResource(h *Handler) resource[models.Catalogue, models.CreateCatalogueParams, models.UpdateCatalogueParams] {
	return resource[models.Catalogue, models.CreateCatalogueParams, models.UpdateCatalogueParams]{
		h:      h,
		entity: "catalogue",
		list:   listAll(h.store.ListCatalogues),
		get:    h.store.GetCatalogue,
		create: h.store.CreateCatalogue,
		update: h.store.UpdateCatalogue,
		remove: h.store.DeleteCatalogue,
	}
}

// PublicCatalogues lists active catalogues.
func (h *Handler) PublicCatalogues(c *gin.Context) {
	items, err := h.store.ListCatalogues(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, filter(items, func(v *models.Catalogue) bool { return v.IsActive }))
}

// ─────────────────────────────────────────────────────────────────────────────
// Products
// ─────────────────────────────────────────────────────────────────────────────

func productResource(h *Handler) resource[models.Product, models.CreateProductParams, models.UpdateProductParams] {
	return resource[models.Product, models.CreateProductParams, models.UpdateProductParams]{
		h:      h,
		entity: "product",
		list:   listAll(h.store.ListProducts),
		get:    h.store.GetProduct,
		create: h.store.CreateProduct,
		update: h.store.UpdateProduct,
		remove: h.store.DeleteProduct,
	}
}

// PublicProducts lists active products, optionally narrowed by ?category=.
func (h *Handler) PublicProducts(c *gin.Context) {
	items, err := h.store.ListProducts(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	category := c.Query("category")
	c.JSON(http.StatusOK, filter(items, func(v *models.Product) bool {
		return v.IsActive && (category == "" || v.Category == category)
	}))
}

// PublicProduct returns one active product.
func (h *Handler) PublicProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.store.GetProduct(c.Request.Context(), id)
	if err == nil && !p.IsActive {
		err = storage.ErrNotFound
	}
	if err != nil {
		h.fail(c, err, "product")
		return
	}
	c.JSON(http.StatusOK, p)
}

// ─────────────────────────────────────────────────────────────────────────────
// Media content
// ─────────────────────────────────────────────────────────────────────────────

func mediaResource(h *Handler) resource[models.MediaContent, models.CreateMediaContentParams, models.UpdateMediaContentParams] {
	return resource[models.MediaContent, models.CreateMediaContentParams, models.UpdateMediaContentParams]{
		h:      h,
		entity: "media",
		list:   listAll(h.store.ListMediaContent),
		get:    h.store.GetMediaContent,
		create: h.store.CreateMediaContent,
		update: h.store.UpdateMediaContent,
		remove: h.store.DeleteMediaContent,
	}
}

// listMediaByQuery honours ?type= on media listings.
func (h *Handler) listMediaByQuery(c *gin.Context) ([]*models.MediaContent, error) {
	if t := c.Query("type"); t != "" {
		return h.store.ListMediaContentByType(c.Request.Context(), t)
	}
	return h.store.ListMediaContent(c.Request.Context())
}

// PublicMedia lists published media, optionally narrowed by ?type=.
func (h *Handler) PublicMedia(c *gin.Context) {
	items, err := h.listMediaByQuery(c)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, filter(items, func(v *models.MediaContent) bool { return v.IsPublished }))
}

// PublicMediaItem returns one published item.
func (h *Handler) PublicMediaItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m, err := h.store.GetMediaContent(c.Request.Context(), id)
	if err == nil && !m.IsPublished {
		err = storage.ErrNotFound
	}
	if err != nil {
		h.fail(c, err, "media")
		return
	}
	c.JSON(http.StatusOK, m)
}
