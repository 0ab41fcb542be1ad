// Package routes declares the application's HTTP surface: which paths
// exist, which handler serves each, and which access gate guards it.
package routes

import (
	"github.com/prasetyadi/gerai/app/auth"
	"github.com/prasetyadi/gerai/app/controllers"
	"github.com/prasetyadi/gerai/app/models"
	"github.com/prasetyadi/gerai/pkg/metrics"
	"github.com/prasetyadi/gerai/pkg/router"
)

// Controllers bundles everything the route table dispatches to.
type Controllers struct {
	Auth    *controllers.AuthController
	Account *controllers.AccountController
	Order   *controllers.OrderController
	Page    *controllers.PageController
}

// Register mounts every route on r. Global middleware (sessions, identity,
// logging) is expected to be installed by the caller before this runs.
func Register(r *router.Router, c Controllers) {
	r.Get("/", "home", c.Page.Home, auth.RequireAuth)

	r.Get("/login", "login", c.Auth.ShowLogin)
	r.Post("/login", "login.submit", c.Auth.Login)
	r.Get("/register", "register", c.Auth.ShowRegister)
	r.Post("/register", "register.submit", c.Auth.Register)
	r.Get("/logout", "logout", c.Auth.Logout, auth.RequireAuth)

	r.Get("/my_account", "account", c.Account.MyAccount, auth.RequireAuth)
	r.Post("/update_account", "account.update", c.Account.UpdateAccount, auth.RequireAuth)
	r.Post("/change_password", "account.password", c.Account.ChangePassword, auth.RequireAuth)

	r.Get("/reservation", "reservation", c.Order.Show)
	r.Post("/reservation", "reservation.submit", c.Order.Submit)

	r.Get("/admin", "dashboard.admin", c.Page.AdminDashboard, auth.RequireAuth, auth.RequireRole(models.RoleAdmin))
	r.Get("/user", "dashboard.user", c.Page.UserDashboard, auth.RequireAuth, auth.RequireRole(models.RoleUser))

	r.Get("/product", "product", c.Page.ProductList)
	r.Get("/product_list", "product.list", c.Page.ProductList)
	r.Get("/product_detail", "product.detail", c.Page.ProductDetail)

	r.Get("/contact", "contact", c.Page.Static("contact"))
	r.Get("/cart", "cart", c.Page.Static("cart"))
	r.Get("/checkout", "checkout", c.Page.Static("checkout"))
	r.Get("/wishlist", "wishlist", c.Page.Static("wishlist"))
	r.Get("/about", "about", c.Page.Static("about"))
	r.Get("/privacy", "privacy", c.Page.Static("privacy"))
	r.Get("/terms", "terms", c.Page.Static("terms"))
	r.Get("/payment_policy", "policy.payment", c.Page.Static("payment_policy"))
	r.Get("/shipping_policy", "policy.shipping", c.Page.Static("shipping_policy"))
	r.Get("/return_policy", "policy.return", c.Page.Static("return_policy"))

	r.Handle("/metrics", metrics.Handler())
}

// Table mounts the route set on a throwaway router and returns it. Used by
// the route:list command, which only needs names and paths.
func Table() []router.Route {
	r := router.New()
	Register(r, Controllers{
		Auth:    &controllers.AuthController{},
		Account: &controllers.AccountController{},
		Order:   &controllers.OrderController{},
		Page:    &controllers.PageController{},
	})
	return r.Routes()
}
