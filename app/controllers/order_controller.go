package controllers

import (
	"net/http"

	"github.com/prasetyadi/gerai/app/auth"
	"github.com/prasetyadi/gerai/app/services"
	"github.com/prasetyadi/gerai/pkg/form"
	"github.com/prasetyadi/gerai/pkg/logger"
	"github.com/prasetyadi/gerai/pkg/metrics"
	"github.com/prasetyadi/gerai/pkg/session"
	"github.com/prasetyadi/gerai/pkg/view"
)

// OrderController serves the reservation form. Both routes are open;
// anyone can submit a reservation.
type OrderController struct {
	orders *services.OrderService
	view   *view.Renderer
}

func NewOrderController(orderService *services.OrderService, renderer *view.Renderer) *OrderController {
	return &OrderController{orders: orderService, view: renderer}
}

type orderInput struct {
	Nama       string  `form:"nama" validate:"required"`
	Email      string  `form:"email" validate:"required"`
	Tanggal    string  `form:"tanggal" validate:"required"`
	Jumlah     int     `form:"jumlah" validate:"required,gt=0"`
	Produk     string  `form:"produk" validate:"required"`
	Harga      float64 `form:"harga" validate:"required,gte=0"`
	TotalHarga float64 `form:"Totalharga" validate:"required,gte=0"`
	Pesan      string  `form:"pesan"`
}

// Show renders the reservation form.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	c.view.Render(w, r, "reservation", user, nil)
}

// Submit persists the reservation. Only missing fields and numeric parse
// failures reject a submission; text fields, the email included, are
// stored as received and the totals are never recomputed server-side. A
// successful submission redirects home without a flash.
func (c *OrderController) Submit(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)

	input := orderInput{}
	if errs := form.Bind(r, &input); len(errs) > 0 {
		sess.Flash(session.LevelDanger, errs.First())
		http.Redirect(w, r, "/reservation", http.StatusSeeOther)
		return
	}

	order, err := c.orders.Submit(services.Submission{
		Nama:       input.Nama,
		Email:      input.Email,
		Tanggal:    input.Tanggal,
		Jumlah:     input.Jumlah,
		Produk:     input.Produk,
		Harga:      input.Harga,
		TotalHarga: input.TotalHarga,
		Pesan:      input.Pesan,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("order submit failed", "error", err)
		sess.Flash(session.LevelDanger, "Terjadi kesalahan saat menyimpan pesanan. Silakan coba lagi.")
		http.Redirect(w, r, "/reservation", http.StatusSeeOther)
		return
	}

	metrics.OrdersCreated.Inc()
	logger.Audit(r.Context(), "order created", "order_id", order.ID, "produk", order.Produk, "jumlah", order.Jumlah)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
