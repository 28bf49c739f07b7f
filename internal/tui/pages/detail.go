// ABOUTME: Detail screens for a single user and a single order
// ABOUTME: Both reload after a successful edit made from the screen

package pages

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/moto-admin/internal/api"
	"github.com/markalston/moto-admin/internal/tui/datatable"
	"github.com/markalston/moto-admin/internal/tui/forms"
	"github.com/markalston/moto-admin/internal/tui/styles"
	"github.com/markalston/moto-admin/internal/tui/widgets"
)

const labelWidth = 16

// byID adapts a by-id getter to a loader fetch
func byID[T any](id api.ID, get func(context.Context, api.ID) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		return get(ctx, id)
	}
}

func field(name, value string) string {
	if value == "" {
		value = "-"
	}
	return styles.LabelStyle.Width(labelWidth).Render(name+":") + " " + value
}

func verified(f api.Flag) string {
	if f {
		return widgets.StatusText("verified", widgets.StatusOK)
	}
	return styles.Faint.Render("unverified")
}

func section(title string) string {
	return styles.Selected.Render(title)
}

func paymentColumns() []datatable.Column[api.Payment] {
	return []datatable.Column[api.Payment]{
		{Key: "amount", Label: "Amount", Render: func(_ any, p api.Payment) datatable.Cell {
			return text(Money(p.Amount))
		}},
		{Key: "method", Label: "Method"},
		{Key: "status", Label: "Status", Render: func(_ any, p api.Payment) datatable.Cell {
			return status(p.Status)
		}},
		{Key: "created_at", Label: "Date", Render: func(_ any, p api.Payment) datatable.Cell {
			return text(When(p.CreatedAt))
		}},
	}
}

// UserDetail shows one customer with their orders
type UserDetail struct {
	client   *api.Client
	id       api.ID
	data     *loader[api.UserDetail]
	orders   *datatable.Table[api.Order]
	payments *datatable.Table[api.Payment]
}

// NewUserDetail creates the user detail page
func NewUserDetail(c *api.Client, id api.ID, opts Options) *UserDetail {
	p := &UserDetail{client: c, id: id}
	p.data = newLoader(byID(id, c.Users.Get))

	p.orders = datatable.New([]datatable.Column[api.Order]{
		{Key: "order_number", Label: "Order #"},
		{Key: "total_amount", Label: "Amount", Render: func(_ any, o api.Order) datatable.Cell {
			return text(Money(o.TotalAmount))
		}},
		{Key: "status", Label: "Status", Render: func(_ any, o api.Order) datatable.Cell {
			return status(o.Status)
		}},
		{Key: "payment_status", Label: "Payment", HideOnMedium: true, Render: func(_ any, o api.Order) datatable.Cell {
			return status(o.PaymentStatus)
		}},
		{Key: "created_at", Label: "Date", HideOnCompact: true, Render: func(_ any, o api.Order) datatable.Cell {
			return text(When(o.CreatedAt))
		}},
	}).
		WithEmptyMessage("No orders yet").
		WithBreakpoints(opts.CompactWidth, opts.WideWidth).
		OnRowClick(func(o api.Order) tea.Cmd { return Navigate(RouteOrder, o.ID) })

	p.payments = datatable.New(paymentColumns()).
		WithEmptyMessage("No payments").
		WithBreakpoints(opts.CompactWidth, opts.WideWidth)
	return p
}

func (p *UserDetail) Init() tea.Cmd {
	return p.data.start()
}

func (p *UserDetail) Title() string {
	if p.data.loaded {
		return p.data.value.User.FullName
	}
	return "User"
}

func (p *UserDetail) Capturing() bool {
	return false
}

func (p *UserDetail) SetSize(width, height int) {
	p.orders.SetWidth(width)
	p.payments.SetWidth(width)
}

func (p *UserDetail) Help() []string {
	return []string{"↑↓ Select", "Enter Open order", "m Membership", "r Refresh", "Esc Back"}
}

func (p *UserDetail) Update(msg tea.Msg) tea.Cmd {
	if changed, cmd := p.data.update(msg); changed || cmd != nil {
		if changed {
			p.orders.SetRecords(p.data.value.Orders)
			p.payments.SetRecords(p.data.value.Payments)
		}
		return cmd
	}

	switch msg := msg.(type) {
	case MutationMsg:
		if msg.Err != nil {
			return msg.Outcome()
		}
		return tea.Batch(msg.Outcome(), p.data.start())

	case tea.MouseMsg:
		msg.Y -= lipgloss.Height(p.top())
		return p.orders.Update(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return p.data.start()
		case "m":
			if !p.data.loaded {
				return nil
			}
			u := p.data.value.User
			return forms.Open(forms.Membership(u, func(in api.MembershipUpdate) tea.Cmd {
				return Mutate("Membership updated", func(ctx context.Context) error {
					return p.client.Users.UpdateMembership(ctx, u.ID, in)
				})
			}))
		}
		return p.orders.Update(msg)
	}
	return nil
}

func (p *UserDetail) top() string {
	var b strings.Builder
	b.WriteString(styles.ValueStyle.Render(p.Title()))
	if s := p.data.status(); s != "" {
		b.WriteString("   " + s)
	}
	b.WriteString("\n\n")

	if p.data.loaded {
		d := p.data.value
		u := d.User
		membership := label(u.MembershipType)
		if membership != "" {
			membership = widgets.StatusStyle(u.MembershipType).Render(membership) + fmt.Sprintf(" (%s points)", Count(u.MembershipPoints))
		}
		for _, line := range []string{
			field("Email", u.Email) + "  " + verified(u.EmailVerified),
			field("Phone", u.Phone) + "  " + verified(u.PhoneVerified),
			field("Membership", membership),
			field("Joined", When(u.CreatedAt)),
			field("Orders", Count(len(d.Orders))),
			field("Total spent", Money(d.TotalSpent())),
		} {
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(section("Orders"))
	return b.String()
}

func (p *UserDetail) View() string {
	return p.top() + "\n" + p.orders.View() + "\n\n" + section("Payments") + "\n" + p.payments.View()
}

// OrderDetail shows one order with its lines and payments
type OrderDetail struct {
	client   *api.Client
	id       api.ID
	data     *loader[api.OrderDetail]
	items    *datatable.Table[api.OrderItem]
	payments *datatable.Table[api.Payment]
}

// NewOrderDetail creates the order detail page
func NewOrderDetail(c *api.Client, id api.ID, opts Options) *OrderDetail {
	p := &OrderDetail{client: c, id: id}
	p.data = newLoader(byID(id, c.Orders.Get))

	p.items = datatable.New([]datatable.Column[api.OrderItem]{
		{Key: "name", Label: "Item", Render: func(_ any, it api.OrderItem) datatable.Cell {
			return text(it.Name())
		}},
		{Key: "product_type", Label: "Type", HideOnMedium: true, Render: func(_ any, it api.OrderItem) datatable.Cell {
			return text(label(it.ProductType))
		}},
		{Key: "price", Label: "Price", Render: func(_ any, it api.OrderItem) datatable.Cell {
			return text(Money(it.Price))
		}},
		{Key: "quantity", Label: "Qty", Render: func(_ any, it api.OrderItem) datatable.Cell {
			return text(strconv.Itoa(it.Quantity))
		}},
		{Key: "line_total", Label: "Total", Render: func(_ any, it api.OrderItem) datatable.Cell {
			return text(Money(it.LineTotal()))
		}},
	}).
		WithEmptyMessage("No items").
		WithBreakpoints(opts.CompactWidth, opts.WideWidth)

	p.payments = datatable.New(paymentColumns()).
		WithEmptyMessage("No payments").
		WithBreakpoints(opts.CompactWidth, opts.WideWidth)
	return p
}

func (p *OrderDetail) Init() tea.Cmd {
	return p.data.start()
}

func (p *OrderDetail) Title() string {
	if p.data.loaded && p.data.value.Order.OrderNumber != "" {
		return "Order #" + p.data.value.Order.OrderNumber
	}
	return "Order"
}

func (p *OrderDetail) Capturing() bool {
	return false
}

func (p *OrderDetail) SetSize(width, height int) {
	p.items.SetWidth(width)
	p.payments.SetWidth(width)
}

func (p *OrderDetail) Help() []string {
	return []string{"s Status", "u Customer", "r Refresh", "Esc Back"}
}

func (p *OrderDetail) Update(msg tea.Msg) tea.Cmd {
	if changed, cmd := p.data.update(msg); changed || cmd != nil {
		if changed {
			p.items.SetRecords(p.data.value.OrderItems)
			p.payments.SetRecords(p.data.value.Payments)
		}
		return cmd
	}

	switch msg := msg.(type) {
	case MutationMsg:
		if msg.Err != nil {
			return msg.Outcome()
		}
		return tea.Batch(msg.Outcome(), p.data.start())

	case tea.KeyMsg:
		if !p.data.loaded {
			if msg.String() == "r" {
				return p.data.start()
			}
			return nil
		}
		o := p.data.value.Order
		switch msg.String() {
		case "r":
			return p.data.start()
		case "s":
			return statusDialog(p.client, o)
		case "u":
			if o.UserID != "" {
				return Navigate(RouteUser, o.UserID)
			}
		}
	}
	return nil
}

func (p *OrderDetail) View() string {
	var b strings.Builder
	b.WriteString(styles.ValueStyle.Render(p.Title()))
	if s := p.data.status(); s != "" {
		b.WriteString("   " + s)
	}
	b.WriteString("\n\n")
	if !p.data.loaded {
		return b.String()
	}

	d := p.data.value
	o := d.Order
	for _, line := range []string{
		field("Status", status(o.Status).Style.Render(label(o.Status))),
		field("Payment", status(o.PaymentStatus).Style.Render(label(o.PaymentStatus))),
		field("Customer", o.FullName),
		field("Email", o.Email),
		field("Tracking", o.TrackingNumber),
		field("Placed", When(o.CreatedAt)+"  "+styles.Faint.Render(Ago(o.CreatedAt))),
		field("Order total", Money(o.TotalAmount)),
	} {
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + section("Items") + "\n")
	b.WriteString(p.items.View())
	itemsTotal := d.ItemsTotal()
	b.WriteString("\n" + field("Items total", Money(itemsTotal)))
	if !itemsTotal.Equal(o.TotalAmount) && len(d.OrderItems) > 0 {
		b.WriteString("  " + widgets.StatusText("differs from order total", widgets.StatusWarning))
	}
	b.WriteString("\n")

	b.WriteString("\n" + section("Payments") + "\n")
	b.WriteString(p.payments.View())
	b.WriteString("\n\n" + section("Shipping address") + "\n")
	if a := d.ShippingAddress; a != nil {
		for _, line := range []string{a.Label, a.Street, strings.TrimSpace(a.PostalCode + " " + a.City), a.Country} {
			if line != "" {
				b.WriteString("  " + line + "\n")
			}
		}
	} else {
		b.WriteString(styles.Faint.Render("  No shipping address") + "\n")
	}
	return b.String()
}

var (
	_ Page = (*UserDetail)(nil)
	_ Page = (*OrderDetail)(nil)
	_ Page = (*ListPage[api.User])(nil)
)
