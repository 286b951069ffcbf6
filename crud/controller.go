package crud

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/armature-dev/armature/respond"
	"github.com/armature-dev/armature/router"
)

// Controller wraps one Model and implements router.Resource. Every
// action calls the corresponding model operation and translates the
// outcome: success → 200/201 with payload, missing record → 404, read
// failure → 500, validation or write failure → 400. An unparseable or
// empty request body short-circuits to 400 before the model runs.
type Controller struct {
	Model *Model
}

// NewController returns a Controller over model.
func NewController(model *Model) *Controller {
	return &Controller{Model: model}
}

// Index handles GET /resource.
func (c *Controller) Index(ctx *router.Context) {
	records, err := c.Model.FindAll(ctx.Ctx)
	if err != nil {
		respond.Internal(ctx.Writer, "Failed to fetch records")
		return
	}
	respond.OK(ctx.Writer, "Records retrieved", records)
}

// Show handles GET /resource/{id}.
func (c *Controller) Show(ctx *router.Context) {
	record, err := c.Model.FindByID(ctx.Ctx, ctx.Param("id"))
	if errors.Is(err, ErrNotFound) {
		respond.NotFound(ctx.Writer, "Record not found")
		return
	}
	if err != nil {
		respond.Internal(ctx.Writer, "Failed to fetch record")
		return
	}
	respond.OK(ctx.Writer, "Record retrieved", record)
}

// Store handles POST /resource.
func (c *Controller) Store(ctx *router.Context) {
	data, ok := c.body(ctx)
	if !ok {
		return
	}
	record, err := c.Model.Create(ctx.Ctx, data)
	if err != nil {
		c.writeFailure(ctx, err, "Failed to create record")
		return
	}
	respond.Created(ctx.Writer, "Record created", record)
}

// Update handles PUT /resource/{id}.
func (c *Controller) Update(ctx *router.Context) {
	data, ok := c.body(ctx)
	if !ok {
		return
	}
	record, err := c.Model.Update(ctx.Ctx, ctx.Param("id"), data)
	if err != nil {
		c.writeFailure(ctx, err, "Failed to update record")
		return
	}
	respond.OK(ctx.Writer, "Record updated", record)
}

// Destroy handles DELETE /resource/{id}.
func (c *Controller) Destroy(ctx *router.Context) {
	err := c.Model.Delete(ctx.Ctx, ctx.Param("id"))
	if errors.Is(err, ErrNotFound) {
		respond.NotFound(ctx.Writer, "Record not found")
		return
	}
	if err != nil {
		respond.BadRequest(ctx.Writer, "Failed to delete record", err.Error())
		return
	}
	respond.OK(ctx.Writer, "Record deleted", nil)
}

// body parses the raw request body as a JSON object. On an empty body
// or parse failure it writes the 400 response itself and returns false.
func (c *Controller) body(ctx *router.Context) (Record, bool) {
	raw := bytes.TrimSpace(ctx.Request.Body)
	if len(raw) == 0 {
		respond.BadRequest(ctx.Writer, "Invalid JSON data", nil)
		return nil, false
	}
	var data Record
	if err := json.Unmarshal(raw, &data); err != nil {
		respond.BadRequest(ctx.Writer, "Invalid JSON data", nil)
		return nil, false
	}
	return data, true
}

// writeFailure maps a write-path error to its response: missing record
// 404, validation 400 with the field error bag, anything else 400 with
// the originating message.
func (c *Controller) writeFailure(ctx *router.Context, err error, message string) {
	if errors.Is(err, ErrNotFound) {
		respond.NotFound(ctx.Writer, "Record not found")
		return
	}
	if ve, ok := AsValidationError(err); ok {
		respond.BadRequest(ctx.Writer, "Validation failed", ve.Errors)
		return
	}
	respond.BadRequest(ctx.Writer, message, err.Error())
}
