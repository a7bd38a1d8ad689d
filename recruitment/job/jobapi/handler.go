package jobapi

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Abraxas-365/jobboard/pkg/iam"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job search
type Handlers struct {
	engine *jobsrv.SearchEngine
}

// NewHandlers creates a new job handlers instance
func NewHandlers(engine *jobsrv.SearchEngine) *Handlers {
	return &Handlers{
		engine: engine,
	}
}

// ListJobs searches listings from query parameters
// GET /api/jobs
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	spec, err := specFromQuery(c)
	if err != nil {
		return err
	}

	page, err := h.engine.Search(c.UserContext(), spec)
	if err != nil {
		return err
	}

	return c.JSON(page)
}

// SearchJobs searches listings from a JSON body
// POST /api/jobs/search
func (h *Handlers) SearchJobs(c *fiber.Ctx) error {
	spec := job.NewFilterSpec()
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&spec); err != nil {
			return job.ErrInvalidFilter(job.Violations{{
				Field:   "body",
				Rule:    "json",
				Message: "request body must be a JSON filter object",
			}})
		}
	}

	// company scope only comes from the company route
	spec.CompanyID = nil
	spec.Identity = identity(c)

	page, err := h.engine.Search(c.UserContext(), spec)
	if err != nil {
		return err
	}

	return c.JSON(page)
}

// TrendingJobs returns the most popular recent listings as a bare array
// GET /api/jobs/trending
func (h *Handlers) TrendingJobs(c *fiber.Ctx) error {
	limit := job.DefaultTrendingLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return job.ErrInvalidFilter(job.Violations{{
				Field:   "limit",
				Rule:    "integer",
				Message: "must be an integer",
			}})
		}
		limit = n
	}

	items, err := h.engine.Trending(c.UserContext(), limit)
	if err != nil {
		return err
	}

	return c.JSON(items)
}

// GetJobByID retrieves a single listing
// GET /api/jobs/:id
func (h *Handlers) GetJobByID(c *fiber.Ctx) error {
	jobID := kernel.NewJobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	listing, err := h.engine.GetListing(c.UserContext(), jobID, identity(c))
	if err != nil {
		return err
	}

	return c.JSON(listing)
}

// ListCompanyJobs searches one company's listings
// GET /api/companies/:companyId/jobs
func (h *Handlers) ListCompanyJobs(c *fiber.Ctx) error {
	spec, err := specFromQuery(c)
	if err != nil {
		return err
	}

	page, err := h.engine.ListByCompany(c.UserContext(), kernel.NewCompanyID(c.Params("companyId")), spec)
	if err != nil {
		return err
	}

	return c.JSON(page)
}

// specFromQuery decodes query parameters; parse failures are reported
// together with any other violation of the decoded spec
func specFromQuery(c *fiber.Ctx) (job.FilterSpec, error) {
	spec, bad := job.FilterSpecFromQuery(queryValues(c))
	if len(bad) > 0 {
		all := append(bad, spec.Normalize().Validate()...)
		return spec, job.ErrInvalidFilter(all)
	}
	spec.Identity = identity(c)
	return spec, nil
}

// queryValues keeps every value of a repeated key
func queryValues(c *fiber.Ctx) url.Values {
	q := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		q.Add(string(key), string(value))
	})
	return q
}

func identity(c *fiber.Ctx) *iam.Identity {
	id, _ := auth.GetIdentity(c)
	return id
}

// RegisterRoutes registers all job routes
func RegisterRoutes(app fiber.Router, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/jobs")

	// Public read routes; a valid token only adds applied/saved flags
	api.Get("/", authMiddleware.Optional(), handlers.ListJobs)
	api.Post("/search", authMiddleware.Optional(), handlers.SearchJobs)
	api.Get("/trending", handlers.TrendingJobs)
	api.Get("/:id", authMiddleware.Optional(), handlers.GetJobByID)

	app.Get("/api/companies/:companyId/jobs", authMiddleware.Optional(), handlers.ListCompanyJobs)
}
