package controllers

import (
	"net/http"
	"time"

	"github.com/prasetyadi/gerai/app/auth"
	"github.com/prasetyadi/gerai/app/models"
	"github.com/prasetyadi/gerai/app/repositories"
	"github.com/prasetyadi/gerai/pkg/cache"
	"github.com/prasetyadi/gerai/pkg/logger"
	"github.com/prasetyadi/gerai/pkg/view"
)

const (
	productCacheKey = "gerai:products"
	productCacheTTL = 5 * time.Minute
)

// PageController serves the home page, the role dashboards, the product
// catalogue and the static informational pages. cache may be nil, in
// which case every listing hits the database.
type PageController struct {
	products *repositories.ProductRepository
	cache    *cache.Cache
	view     *view.Renderer
}

func NewPageController(products *repositories.ProductRepository, c *cache.Cache, renderer *view.Renderer) *PageController {
	return &PageController{products: products, cache: c, view: renderer}
}

// Home greets by role. The route sits behind RequireAuth, so a user is
// always present here.
func (c *PageController) Home(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	message := "Selamat datang di Halaman Pembeli!"
	if user != nil && user.Role == models.RoleAdmin {
		message = "Selamat datang di Dashboard Admin!"
	}
	c.view.Render(w, r, "index", user, view.Map{"Message": message})
}

// AdminDashboard is gated by RequireRole(RoleAdmin) in the route table.
func (c *PageController) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	c.view.Render(w, r, "admin_dashboard", user, nil)
}

// UserDashboard is gated by RequireRole(RoleUser) in the route table.
func (c *PageController) UserDashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	c.view.Render(w, r, "user_dashboard", user, nil)
}

// ProductList serves both /product and /product_list. Listings are
// read-through cached; the catalogue changes rarely.
func (c *PageController) ProductList(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	var products []models.Product
	if !c.cache.Get(r.Context(), productCacheKey, &products) {
		var err error
		products, err = c.products.All()
		if err != nil {
			logger.WithCtx(r.Context()).Error("product listing failed", "error", err)
			products = nil
		} else if err := c.cache.Set(r.Context(), productCacheKey, products, productCacheTTL); err != nil {
			logger.WithCtx(r.Context()).Warn("product cache store failed", "error", err)
		}
	}
	c.view.Render(w, r, "product_list", user, view.Map{"Products": products})
}

// ProductDetail renders the single-product page.
func (c *PageController) ProductDetail(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	c.view.Render(w, r, "product_detail", user, nil)
}

// Static returns a handler that renders the named template as-is. Used
// for the informational pages that carry no dynamic data.
func (c *PageController) Static(page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := auth.CurrentUser(r)
		c.view.Render(w, r, page, user, nil)
	}
}
