package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HasanApplore/IndoSup-sub000/auth"
	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
	"github.com/HasanApplore/IndoSup-sub000/uploads"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Admin *models.AdminUser `json:"admin"`
	Token string            `json:"token,omitempty"`
}

// Login checks an email/password pair. An unknown email and a wrong password
// get the same 401.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "login")
		return
	}

	admin, err := h.store.GetAdminUserByEmail(c.Request.Context(), req.Email)
	if storage.IsNotFound(err) {
		abort(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}

	if err := auth.CheckPassword(admin.Password, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			abort(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.serverError(c, err)
		return
	}

	resp := loginResponse{Admin: admin}
	if h.tokens != nil {
		if resp.Token, err = h.tokens.Issue(admin); err != nil {
			h.serverError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the admin behind the bearer token.
func (h *Handler) Me(c *gin.Context) {
	claims, ok := adminClaims(c)
	if !ok {
		abort(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := claims.AdminID()
	if err != nil {
		abort(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	admin, err := h.store.GetAdminUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "admin")
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

// Upload stores an admin file (catalogue PDF, product image, media asset)
// and returns where it is served.
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		abort(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	category := c.DefaultPostForm("category", uploads.CategoryFiles)

	file, err := h.uploads.Save(fh, category, uploads.AdminExtensions)
	switch {
	case errors.Is(err, uploads.ErrExtension):
		abort(c, http.StatusBadRequest, "File type not allowed")
		return
	case errors.Is(err, uploads.ErrTooLarge):
		abort(c, http.StatusBadRequest, "File is too large")
		return
	case err != nil:
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, file)
}
