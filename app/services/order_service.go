package services

import (
	"fmt"

	"github.com/prasetyadi/gerai/app/models"
	"github.com/prasetyadi/gerai/app/repositories"
)

// OrderService persists reservation submissions. Numeric fields arrive
// already parsed; the submitted total is stored verbatim without being
// recomputed from quantity and unit price.
type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService(orders *repositories.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// Submission carries the reservation form after parsing.
type Submission struct {
	Nama       string
	Email      string
	Tanggal    string
	Jumlah     int
	Produk     string
	Harga      float64
	TotalHarga float64
	Pesan      string
}

// Submit stores the reservation and returns the persisted order.
func (s *OrderService) Submit(in Submission) (*models.Order, error) {
	order := &models.Order{
		Nama:       in.Nama,
		Email:      in.Email,
		Tanggal:    in.Tanggal,
		Jumlah:     in.Jumlah,
		Produk:     in.Produk,
		Harga:      in.Harga,
		TotalHarga: in.TotalHarga,
		Pesan:      in.Pesan,
	}

	if err := s.orders.Create(order); err != nil {
		return nil, fmt.Errorf("submit reservation: %w", err)
	}
	return order, nil
}
