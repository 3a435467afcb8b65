package handler

import (
	"errors"
	"log/slog"
	"math"
	"mime"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"rateanalysis/internal/http/header"
	"rateanalysis/internal/model"
	"rateanalysis/internal/repository"
	"rateanalysis/internal/service"
)

// MIMEMergePatchJSON is the only media type accepted by PATCH.
const MIMEMergePatchJSON = "application/merge-patch+json"

// Paging bounds the page size of paginated listings.
type Paging struct {
	DefaultSize int
	MaxSize     int
}

// ResourceOptions configures a Resource.
type ResourceOptions struct {
	// EntityName is the tag used in alert headers and error bodies.
	EntityName string
	// BasePath is the collection path, used for Location headers.
	BasePath string
	// Paginated selects the paginated listing.
	Paginated bool
	Alerts    header.Alerts
	Paging    Paging
	Logger    *slog.Logger
}

// Resource serves the CRUD operations of one entity kind over a persistence service.
// It holds no per-request state.
type Resource[D any, P model.Entity[D]] struct {
	svc    service.Service[D]
	opts   ResourceOptions
	guard  Guard
	logger *slog.Logger
}

// NewResource builds the handler group for one entity kind.
func NewResource[D any, P model.Entity[D]](svc service.Service[D], opts ResourceOptions) *Resource[D, P] {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Paging.DefaultSize <= 0 {
		opts.Paging.DefaultSize = service.DefaultPageSize
	}
	if opts.Paging.MaxSize < opts.Paging.DefaultSize {
		opts.Paging.MaxSize = opts.Paging.DefaultSize
	}
	return &Resource[D, P]{
		svc:    svc,
		opts:   opts,
		guard:  Guard{EntityName: opts.EntityName},
		logger: logger.With("entity", opts.EntityName),
	}
}

// Mount registers the six operations on router.
func (r *Resource[D, P]) Mount(router fiber.Router) {
	router.Post("", r.Create)
	router.Put("/:id", r.Update)
	router.Patch("/:id", r.PartialUpdate)
	router.Get("", r.List)
	router.Get("/:id", r.Get)
	router.Delete("/:id", r.Delete)
}

// Create stores a new record and answers 201 with its Location.
func (r *Resource[D, P]) Create(c *fiber.Ctx) error {
	var rec D
	if err := decodeBody(c, &rec); err != nil {
		return err
	}
	r.logger.Debug("REST request to save")

	if err := r.guard.CheckCreate(P(&rec).GetID()); err != nil {
		return err
	}
	if err := r.validate(model.Validate, &rec); err != nil {
		return err
	}

	saved, err := r.svc.Save(c.UserContext(), &rec)
	if err != nil {
		return err
	}

	id := formatID(P(saved).GetID())
	c.Location(r.opts.BasePath + "/" + id)
	setHeaders(c, r.opts.Alerts.Entity(r.opts.EntityName, header.Created, id))
	return c.Status(fiber.StatusCreated).JSON(saved)
}

// Update replaces a stored record.
func (r *Resource[D, P]) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var rec D
	if err := decodeBody(c, &rec); err != nil {
		return err
	}
	r.logger.Debug("REST request to update", "id", id)

	if err := r.guard.CheckIdentity(id, P(&rec).GetID()); err != nil {
		return err
	}
	if err := r.validate(model.Validate, &rec); err != nil {
		return err
	}
	if err := r.guard.CheckExists(c.UserContext(), id, r.svc.ExistsByID); err != nil {
		return err
	}

	saved, err := r.svc.Save(c.UserContext(), &rec)
	if err != nil {
		return err
	}

	setHeaders(c, r.opts.Alerts.Entity(r.opts.EntityName, header.Updated, strconv.FormatInt(id, 10)))
	return c.JSON(saved)
}

// PartialUpdate merges a merge-patch body into a stored record. A row that vanished
// after the existence check answers 404 with no body.
func (r *Resource[D, P]) PartialUpdate(c *fiber.Ctx) error {
	if !isMergePatch(c.Get(fiber.HeaderContentType)) {
		return fiber.ErrUnsupportedMediaType
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var rec D
	if err := decodeBody(c, &rec); err != nil {
		return err
	}
	r.logger.Debug("REST request to partial update", "id", id)

	if err := r.guard.CheckIdentity(id, P(&rec).GetID()); err != nil {
		return err
	}
	if err := r.validate(model.ValidatePatch, &rec); err != nil {
		return err
	}
	if err := r.guard.CheckExists(c.UserContext(), id, r.svc.ExistsByID); err != nil {
		return err
	}

	merged, err := r.svc.PartialUpdate(c.UserContext(), &rec)
	if err != nil {
		return err
	}
	if merged == nil {
		c.Status(fiber.StatusNotFound)
		return nil
	}

	setHeaders(c, r.opts.Alerts.Entity(r.opts.EntityName, header.Updated, strconv.FormatInt(id, 10)))
	return c.JSON(merged)
}

// Get answers the record or 404 with no body.
func (r *Resource[D, P]) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	r.logger.Debug("REST request to get", "id", id)

	rec, err := r.svc.FindOne(c.UserContext(), id)
	if err != nil {
		return err
	}
	if rec == nil {
		c.Status(fiber.StatusNotFound)
		return nil
	}
	return c.JSON(rec)
}

// List answers every record, or one page of them when the resource is paginated.
func (r *Resource[D, P]) List(c *fiber.Ctx) error {
	if !r.opts.Paginated {
		r.logger.Debug("REST request to get all")
		all, err := r.svc.FindAll(c.UserContext())
		if err != nil {
			return err
		}
		if all == nil {
			all = []D{}
		}
		return c.JSON(all)
	}

	pq := r.pageQuery(c)
	r.logger.Debug("REST request to get a page", "page", pq.Page, "size", pq.Size)

	res, err := r.svc.FindPage(c.UserContext(), pq)
	if err != nil {
		return err
	}

	reqURL, err := url.Parse(c.BaseURL() + c.OriginalURL())
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request URL")
	}
	setHeaders(c, header.Pagination(reqURL, res.Page, res.Size, res.Total))

	items := res.Items
	if items == nil {
		items = []D{}
	}
	return c.JSON(items)
}

// Delete removes the record. It answers 204 whether or not the record existed.
func (r *Resource[D, P]) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	r.logger.Debug("REST request to delete", "id", id)

	if err := r.svc.Delete(c.UserContext(), id); err != nil {
		return err
	}

	setHeaders(c, r.opts.Alerts.Entity(r.opts.EntityName, header.Deleted, strconv.FormatInt(id, 10)))
	return c.SendStatus(fiber.StatusNoContent)
}

func (r *Resource[D, P]) validate(fn func(any) error, rec *D) error {
	err := fn(rec)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return &PayloadError{ObjectName: r.opts.EntityName, Errs: errs}
	}
	return err
}

// pageQuery reads page, size and sort from the query string. Unusable page and size
// values fall back to the defaults; size is capped at Paging.MaxSize and page so that
// page*size fits in an int.
func (r *Resource[D, P]) pageQuery(c *fiber.Ctx) repository.PageQuery {
	page := c.QueryInt("page", 0)
	if page < 0 {
		page = 0
	}
	size := c.QueryInt("size", r.opts.Paging.DefaultSize)
	if size <= 0 {
		size = r.opts.Paging.DefaultSize
	}
	if size > r.opts.Paging.MaxSize {
		size = r.opts.Paging.MaxSize
	}
	// Past this page the offset no longer fits in an int; the page is empty anyway.
	if size > 0 && page > math.MaxInt/size {
		page = math.MaxInt / size
	}

	var raw []string
	for _, v := range c.Context().QueryArgs().PeekMulti("sort") {
		raw = append(raw, string(v))
	}
	return repository.PageQuery{Page: page, Size: size, Sort: parseSort(raw)}
}

// parseSort turns "prop[,prop...][,asc|desc]" values into orders. The direction
// applies to every property of its value and defaults to ascending.
func parseSort(values []string) []repository.Order {
	var orders []repository.Order
	for _, v := range values {
		parts := strings.Split(v, ",")
		dir := repository.Asc
		if n := len(parts); n > 1 {
			switch strings.ToLower(strings.TrimSpace(parts[n-1])) {
			case string(repository.Asc):
				parts = parts[:n-1]
			case string(repository.Desc):
				dir = repository.Desc
				parts = parts[:n-1]
			}
		}
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				orders = append(orders, repository.Order{Property: p, Direction: dir})
			}
		}
	}
	return orders
}

func decodeBody(c *fiber.Ctx, dst any) error {
	body := c.Body()
	if len(body) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "request body is required")
	}
	if err := c.App().Config().JSONDecoder(body, dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed JSON body")
	}
	return nil
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func isMergePatch(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && strings.EqualFold(mt, MIMEMergePatchJSON)
}

func formatID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func setHeaders(c *fiber.Ctx, headers map[string]string) {
	for k, v := range headers {
		c.Set(k, v)
	}
}
