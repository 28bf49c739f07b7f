// ABOUTME: Dashboard, user, and order accessors
// ABOUTME: List endpoints are paginated; detail endpoints carry related records

package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/markalston/moto-admin/internal/gateway"
	"github.com/markalston/moto-admin/internal/pagination"
)

type DashboardService service

// Statistics loads the headline numbers and the latest orders
func (s *DashboardService) Statistics(ctx context.Context) (Dashboard, error) {
	payload, err := s.c.get(ctx, "/admin/dashboard", nil)
	if err != nil {
		return Dashboard{}, err
	}
	stats, err := decodeOne[Statistics](payload, "statistics")
	if err != nil {
		return Dashboard{}, err
	}
	recent, err := decodeList[Order](payload, "recent_orders")
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{Statistics: stats, RecentOrders: recent}, nil
}

type UsersService service

// UserFilter narrows the user listing
type UserFilter struct {
	pagination.Params
	Search         string
	MembershipType string
	EmailVerified  *bool
}

func (s *UsersService) List(ctx context.Context, f UserFilter) (Page[User], error) {
	q := query(f.Params, "search", f.Search, "membership_type", f.MembershipType)
	if f.EmailVerified != nil {
		q.Set("email_verified", strconv.FormatBool(*f.EmailVerified))
	}
	payload, err := s.c.get(ctx, "/admin/users", q)
	if err != nil {
		return Page[User]{}, err
	}
	return decodePage[User](payload, "users")
}

func (s *UsersService) Get(ctx context.Context, id ID) (UserDetail, error) {
	payload, err := s.c.get(ctx, itemPath("/admin/users", id), nil)
	if err != nil {
		return UserDetail{}, err
	}

	var d UserDetail
	if d.User, err = decodeOne[User](payload, "user"); err != nil {
		return UserDetail{}, err
	}
	if d.Orders, err = decodeList[Order](payload, "orders"); err != nil {
		return UserDetail{}, err
	}
	if d.OrderItems, err = decodeList[OrderItem](payload, "orderItems"); err != nil {
		return UserDetail{}, err
	}
	if d.Payments, err = decodeList[Payment](payload, "payments"); err != nil {
		return UserDetail{}, err
	}
	return d, nil
}

// MembershipUpdate changes a user's membership tier
type MembershipUpdate struct {
	MembershipType   string `json:"membership_type" validate:"required"`
	MembershipPoints *int   `json:"membership_points,omitempty" validate:"omitempty,gte=0"`
}

func (s *UsersService) UpdateMembership(ctx context.Context, id ID, in MembershipUpdate) error {
	if err := required("id", string(id)); err != nil {
		return err
	}
	if err := check(in); err != nil {
		return err
	}
	_, err := s.c.do(ctx, http.MethodPut, itemPath("/admin/users", id)+"/membership", nil, gateway.JSON(in))
	return err
}

// Order statuses accepted by the backend
var OrderStatuses = []string{"pending", "paid", "shipped", "delivered", "cancelled"}

type OrdersService service

// OrderFilter narrows the order listing
type OrderFilter struct {
	pagination.Params
	Status        string
	PaymentStatus string
	UserID        ID
}

func (s *OrdersService) List(ctx context.Context, f OrderFilter) (Page[Order], error) {
	q := query(f.Params, "status", f.Status, "payment_status", f.PaymentStatus, "user_id", string(f.UserID))
	payload, err := s.c.get(ctx, "/admin/orders", q)
	if err != nil {
		return Page[Order]{}, err
	}
	return decodePage[Order](payload, "orders")
}

func (s *OrdersService) Get(ctx context.Context, id ID) (OrderDetail, error) {
	payload, err := s.c.get(ctx, itemPath("/admin/orders", id), nil)
	if err != nil {
		return OrderDetail{}, err
	}

	var d OrderDetail
	if d.Order, err = decodeOne[Order](payload, "order"); err != nil {
		return OrderDetail{}, err
	}
	if d.OrderItems, err = decodeList[OrderItem](payload, "orderItems"); err != nil {
		return OrderDetail{}, err
	}
	if d.Payments, err = decodeList[Payment](payload, "payments"); err != nil {
		return OrderDetail{}, err
	}
	if d.ShippingAddress, err = decodeField[*Address](payload, "shippingAddress"); err != nil {
		return OrderDetail{}, err
	}
	return d, nil
}

// StatusUpdate moves an order through fulfillment
type StatusUpdate struct {
	Status         string `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

func (s *OrdersService) UpdateStatus(ctx context.Context, id ID, in StatusUpdate) error {
	if err := required("id", string(id)); err != nil {
		return err
	}
	if err := check(in); err != nil {
		return err
	}
	_, err := s.c.do(ctx, http.MethodPut, itemPath("/admin/orders", id)+"/status", nil, gateway.JSON(in))
	return err
}
