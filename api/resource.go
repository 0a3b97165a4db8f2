package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// resource wires the admin CRUD routes for one id-keyed entity. T is the
// record, C the create params and U the update params. A nil create leaves
// POST unregistered.
type resource[T, C, U any] struct {
	h      *Handler
	entity string // lower-case singular, used in messages

	list   func(c *gin.Context) ([]*T, error)
	get    func(ctx context.Context, id int64) (*T, error)
	create func(ctx context.Context, params C) (*T, error)
	update func(ctx context.Context, id int64, params U) (*T, error)
	remove func(ctx context.Context, id int64) (bool, error)

	// created runs after a successful create, e.g. to publish an event.
	created func(c *gin.Context, v *T)
}

func (r resource[T, C, U]) register(g *gin.RouterGroup, path string) {
	g.GET(path, r.handleList)
	if r.create != nil {
		g.POST(path, r.handleCreate)
	}
	g.GET(path+"/:id", r.handleGet)
	g.PUT(path+"/:id", r.handleUpdate)
	g.DELETE(path+"/:id", r.handleDelete)
}

func (r resource[T, C, U]) handleList(c *gin.Context) {
	items, err := r.list(c)
	if err != nil {
		r.h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (r resource[T, C, U]) handleGet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	v, err := r.get(c.Request.Context(), id)
	if err != nil {
		r.h.fail(c, err, r.entity)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (r resource[T, C, U]) handleCreate(c *gin.Context) {
	var params C
	if err := c.ShouldBindJSON(&params); err != nil {
		invalid(c, r.entity)
		return
	}
	v, err := r.create(c.Request.Context(), params)
	if err != nil {
		r.h.fail(c, err, r.entity)
		return
	}
	if r.created != nil {
		r.created(c, v)
	}
	c.JSON(http.StatusOK, v)
}

func (r resource[T, C, U]) handleUpdate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var params U
	if err := c.ShouldBindJSON(&params); err != nil {
		invalid(c, r.entity)
		return
	}
	v, err := r.update(c.Request.Context(), id, params)
	if err != nil {
		r.h.fail(c, err, r.entity)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (r resource[T, C, U]) handleDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := r.remove(c.Request.Context(), id)
	if err != nil {
		r.h.serverError(c, err)
		return
	}
	if !deleted {
		notFound(c, r.entity)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": capitalize(r.entity) + " deleted successfully"})
}

// listAll adapts a plain list method to resource.list.
func listAll[T any](fn func(context.Context) ([]*T, error)) func(*gin.Context) ([]*T, error) {
	return func(c *gin.Context) ([]*T, error) { return fn(c.Request.Context()) }
}
