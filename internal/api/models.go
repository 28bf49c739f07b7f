// ABOUTME: Domain records returned by the admin backend
// ABOUTME: Money fields are decimals; every record exposes a stable row id

package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Statistics is the dashboard headline block
type Statistics struct {
	TotalUsers    int             `json:"total_users"`
	TotalOrders   int             `json:"total_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalProducts int             `json:"total_products"`
}

// Dashboard is the response of the dashboard endpoint
type Dashboard struct {
	Statistics   Statistics
	RecentOrders []Order
}

// User is a customer account
type User struct {
	ID               ID              `json:"id"`
	FullName         string          `json:"full_name"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	MembershipType   string          `json:"membership_type"`
	MembershipPoints int             `json:"membership_points"`
	EmailVerified    Flag            `json:"email_verified"`
	PhoneVerified    Flag            `json:"phone_verified"`
	OrderCount       int             `json:"order_count"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
	CreatedAt        Timestamp       `json:"created_at"`
}

func (u User) RowID() string { return string(u.ID) }

// UserDetail is a user with their order history
type UserDetail struct {
	User       User
	Orders     []Order
	OrderItems []OrderItem
	Payments   []Payment
}

// TotalSpent sums the order totals
func (d UserDetail) TotalSpent() decimal.Decimal {
	sum := decimal.Zero
	for _, o := range d.Orders {
		sum = sum.Add(o.TotalAmount)
	}
	return sum
}

// Order is one customer order
type Order struct {
	ID             ID              `json:"id"`
	OrderNumber    string          `json:"order_number"`
	UserID         ID              `json:"user_id"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Status         string          `json:"status"`
	PaymentStatus  string          `json:"payment_status"`
	TrackingNumber string          `json:"tracking_number"`
	CreatedAt      Timestamp       `json:"created_at"`
}

func (o Order) RowID() string { return string(o.ID) }

// OrderItem is a line of an order
type OrderItem struct {
	ID              ID              `json:"id"`
	OrderID         ID              `json:"order_id"`
	ProductType     string          `json:"product_type"`
	PartName        string          `json:"part_name"`
	MerchandiseName string          `json:"merchandise_name"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
}

func (i OrderItem) RowID() string { return string(i.ID) }

// Name is the part or merchandise name, whichever the line refers to
func (i OrderItem) Name() string {
	if i.PartName != "" {
		return i.PartName
	}
	return i.MerchandiseName
}

// LineTotal is price times quantity
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Payment is a payment attempt against an order
type Payment struct {
	ID        ID              `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Status    string          `json:"status"`
	CreatedAt Timestamp       `json:"created_at"`
}

func (p Payment) RowID() string { return string(p.ID) }

// Address is a shipping address
type Address struct {
	Label      string `json:"label"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// OrderDetail is an order with its items, payments, and shipping address
type OrderDetail struct {
	Order           Order
	OrderItems      []OrderItem
	Payments        []Payment
	ShippingAddress *Address
}

// ItemsTotal sums the line totals
func (d OrderDetail) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range d.OrderItems {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// Product types in the unified product listing
const (
	ProductTypePart  = "part"
	ProductTypeMerch = "merch"
)

// Product is a row of the unified parts and merchandise listing
type Product struct {
	ID           ID              `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Price        decimal.Decimal `json:"price"`
	MerchPrice   decimal.Decimal `json:"merch_price"`
	Quantity     int             `json:"quantity"`
	IsActive     Flag            `json:"is_active"`
	BrandName    string          `json:"brand_name"`
	CategoryName string          `json:"category_name"`
}

func (p Product) RowID() string { return string(p.ID) }

// DisplayPrice is the part price for parts and the merchandise price otherwise
func (p Product) DisplayPrice() decimal.Decimal {
	if p.Type == ProductTypePart {
		return p.Price
	}
	return p.MerchPrice
}

// Part is a catalog part
type Part struct {
	ID            ID              `json:"id"`
	BrandID       ID              `json:"brand_id"`
	CategoryID    ID              `json:"category_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Quantity      int             `json:"quantity"`
	Weight        decimal.Decimal `json:"weight"`
	Images        StringList      `json:"images"`
	ColorOptions  StringList      `json:"color_options"`
	Compatibility StringList      `json:"compatibility"`
}

func (p Part) RowID() string { return string(p.ID) }

// Merchandise is a branded merchandise item
type Merchandise struct {
	ID           ID              `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Images       StringList      `json:"images"`
	SizeOptions  StringList      `json:"size_options"`
	ColorOptions StringList      `json:"color_options"`
}

func (m Merchandise) RowID() string { return string(m.ID) }

// Brand is a part brand or a motorcycle manufacturer; both share one shape
type Brand struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	LogoURL     string    `json:"logo_url"`
	CreatedAt   Timestamp `json:"created_at"`
}

func (b Brand) RowID() string { return string(b.ID) }

// Category is a product category
type Category struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ParentID    ID        `json:"parent_id"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   Timestamp `json:"created_at"`
}

func (c Category) RowID() string { return string(c.ID) }

// Model is a motorcycle model of a given make
type Model struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	MakeName string `json:"make_name"`
	Year     int    `json:"year"`
}

func (m Model) RowID() string { return string(m.ID) }

// Feedback is a customer feedback submission
type Feedback struct {
	ID           ID        `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	FeedbackType string    `json:"feedback_type"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	CreatedAt    Timestamp `json:"created_at"`
}

func (f Feedback) RowID() string { return string(f.ID) }

// Ambassador is a brand ambassador application
type Ambassador struct {
	ID               ID              `json:"id"`
	FullName         string          `json:"full_name"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	Status           string          `json:"status"`
	SocialMediaLinks json.RawMessage `json:"social_media_links"`
	Motivation       string          `json:"motivation"`
	AdminNotes       string          `json:"admin_notes"`
	CreatedAt        Timestamp       `json:"created_at"`
}

func (a Ambassador) RowID() string { return string(a.ID) }

// Partner is a business partner shown on the storefront
type Partner struct {
	ID           ID        `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	AboutPage    string    `json:"about_page"`
	WebsiteURL   string    `json:"website_url"`
	ContactEmail string    `json:"contact_email"`
	LogoURL      string    `json:"logo_url"`
	IsActive     Flag      `json:"is_active"`
	CreatedAt    Timestamp `json:"created_at"`
}

func (p Partner) RowID() string { return string(p.ID) }
