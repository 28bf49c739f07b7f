// ABOUTME: Column sets and fetchers for every list screen
// ABOUTME: Row actions open modal forms; writes reload the list on success

package pages

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/markalston/moto-admin/internal/api"
	"github.com/markalston/moto-admin/internal/tui/datatable"
	"github.com/markalston/moto-admin/internal/tui/forms"
	"github.com/markalston/moto-admin/internal/tui/widgets"
)

type col[T any] = datatable.Column[T]

func text(s string) datatable.Cell {
	return datatable.Text(s)
}

func status(s string) datatable.Cell {
	return datatable.Styled(label(s), widgets.StatusStyle(s))
}

func active(f api.Flag) datatable.Cell {
	if f {
		return status("active")
	}
	return datatable.Styled("Inactive", widgets.Foreground(widgets.StatusNeutral))
}

func action(name string, cmd func() tea.Cmd) datatable.Action {
	return datatable.Action{Label: name, Run: cmd}
}

func open(d *forms.Dialog) func() tea.Cmd {
	return func() tea.Cmd { return forms.Open(d) }
}

// NewUsers lists customer accounts
func NewUsers(c *api.Client, opts Options) *ListPage[api.User] {
	membership := func(u api.User) tea.Cmd {
		return forms.Open(forms.Membership(u, func(in api.MembershipUpdate) tea.Cmd {
			return Mutate("Membership updated", func(ctx context.Context) error {
				return c.Users.UpdateMembership(ctx, u.ID, in)
			})
		}))
	}

	return NewList(ListConfig[api.User]{
		Title: "Users",
		Columns: []col[api.User]{
			{Key: "full_name", Label: "Name"},
			{Key: "email", Label: "Email"},
			{Key: "membership_type", Label: "Membership", HideOnMedium: true, Render: func(_ any, u api.User) datatable.Cell {
				return status(u.MembershipType)
			}},
			{Key: "order_count", Label: "Orders", HideOnCompact: true},
			{Key: "total_spent", Label: "Total Spent", Render: func(_ any, u api.User) datatable.Cell {
				return text(Money(u.TotalSpent))
			}},
			{Key: "created_at", Label: "Joined", HideOnCompact: true, HideOnMedium: true, Render: func(_ any, u api.User) datatable.Cell {
				return text(When(u.CreatedAt))
			}},
		},
		EmptyMessage: "No users found",
		SearchLabel:  "Name or email",
		Fetch: func(ctx context.Context, q Query) (api.Page[api.User], error) {
			return c.Users.List(ctx, api.UserFilter{Params: q.Params(), Search: q.Search})
		},
		OnSelect: func(u api.User) tea.Cmd { return Navigate(RouteUser, u.ID) },
		Keys:     []KeyAction[api.User]{{Key: "m", Help: "Membership", Run: membership}},
	}, opts)
}

// statusDialog opens the order status form for o
func statusDialog(c *api.Client, o api.Order) tea.Cmd {
	return forms.Open(forms.OrderStatus(o, func(in api.StatusUpdate) tea.Cmd {
		return Mutate("Order status updated", func(ctx context.Context) error {
			return c.Orders.UpdateStatus(ctx, o.ID, in)
		})
	}))
}

func orderColumns() []col[api.Order] {
	return []col[api.Order]{
		{Key: "order_number", Label: "Order #"},
		{Key: "full_name", Label: "Customer"},
		{Key: "email", Label: "Email", HideOnCompact: true, HideOnMedium: true},
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
	}
}

// NewOrders lists orders with a status filter
func NewOrders(c *api.Client, opts Options) *ListPage[api.Order] {
	return NewList(ListConfig[api.Order]{
		Title:        "Orders",
		Columns:      orderColumns(),
		EmptyMessage: "No orders found",
		FilterLabel:  "Status",
		Filters:      append([]string{""}, api.OrderStatuses...),
		Fetch: func(ctx context.Context, q Query) (api.Page[api.Order], error) {
			return c.Orders.List(ctx, api.OrderFilter{Params: q.Params(), Status: q.Filter})
		},
		OnSelect: func(o api.Order) tea.Cmd { return Navigate(RouteOrder, o.ID) },
		Keys: []KeyAction[api.Order]{{Key: "s", Help: "Status", Run: func(o api.Order) tea.Cmd {
			return statusDialog(c, o)
		}}},
	}, opts)
}

// NewProducts lists parts and merchandise together
func NewProducts(c *api.Client, opts Options) *ListPage[api.Product] {
	remove := func(p api.Product) tea.Cmd {
		return forms.Open(forms.Confirm(fmt.Sprintf("Delete %q?", p.Name), func() tea.Cmd {
			return Mutate("Product deleted", func(ctx context.Context) error {
				if p.Type == api.ProductTypePart {
					return c.Parts.Delete(ctx, p.ID)
				}
				return c.Merchandise.Delete(ctx, p.ID)
			})
		}))
	}

	return NewList(ListConfig[api.Product]{
		Title: "Products",
		Columns: []col[api.Product]{
			{Key: "name", Label: "Name"},
			{Key: "type", Label: "Type", Render: func(_ any, p api.Product) datatable.Cell {
				if p.Type == api.ProductTypePart {
					return datatable.Styled("Part", widgets.Foreground(widgets.StatusInfo))
				}
				return datatable.Styled("Merch", widgets.Foreground(widgets.StatusOK))
			}},
			{Key: "brand_name", Label: "Brand", HideOnCompact: true, HideOnMedium: true},
			{Key: "category_name", Label: "Category", HideOnCompact: true, HideOnMedium: true},
			{Key: "price", Label: "Price", Render: func(_ any, p api.Product) datatable.Cell {
				return text(Money(p.DisplayPrice()))
			}},
			{Key: "quantity", Label: "Stock", Render: func(_ any, p api.Product) datatable.Cell {
				return text(strconv.Itoa(p.Quantity))
			}},
			{Key: "is_active", Label: "Status", HideOnMedium: true, Render: func(_ any, p api.Product) datatable.Cell {
				return active(p.IsActive)
			}},
		},
		EmptyMessage: "No products found",
		FilterLabel:  "Type",
		Filters:      []string{"", api.ProductTypePart, api.ProductTypeMerch},
		SearchLabel:  "Name",
		Fetch: func(ctx context.Context, q Query) (api.Page[api.Product], error) {
			return c.Products.List(ctx, api.ProductFilter{Params: q.Params(), Type: q.Filter, Search: q.Search})
		},
		Keys: []KeyAction[api.Product]{{Key: "d", Help: "Delete", Run: remove}},
	}, opts)
}

// NewBrands lists brands or manufacturers, depending on svc
func NewBrands(svc *api.BrandsService, kind string, opts Options) *ListPage[api.Brand] {
	edit := func(b *api.Brand) tea.Cmd {
		return forms.Open(forms.Brand(kind, b, func(in api.BrandInput) tea.Cmd {
			if b == nil {
				return Mutate(label(kind)+" created", func(ctx context.Context) error {
					_, err := svc.Create(ctx, in)
					return err
				})
			}
			return Mutate(label(kind)+" updated", func(ctx context.Context) error {
				return svc.Update(ctx, b.ID, in)
			})
		}))
	}
	remove := func(b api.Brand) tea.Cmd {
		return forms.Open(forms.Confirm(fmt.Sprintf("Delete %q?", b.Name), func() tea.Cmd {
			return Mutate(label(kind)+" deleted", func(ctx context.Context) error {
				return svc.Delete(ctx, b.ID)
			})
		}))
	}

	return NewList(ListConfig[api.Brand]{
		Title: label(kind) + "s",
		Columns: []col[api.Brand]{
			{Key: "name", Label: "Name"},
			{Key: "description", Label: "Description", HideOnCompact: true, MaxWidth: 50},
			{Key: "created_at", Label: "Created", HideOnMedium: true, Render: func(_ any, b api.Brand) datatable.Cell {
				return text(When(b.CreatedAt))
			}},
			{Key: datatable.ActionsKey, Label: "Actions", Render: func(_ any, b api.Brand) datatable.Cell {
				return datatable.Actions(
					action("Edit", func() tea.Cmd { return edit(&b) }),
					action("Delete", func() tea.Cmd { return remove(b) }),
				)
			}},
		},
		EmptyMessage: "No " + kind + "s found",
		Fetch: func(ctx context.Context, _ Query) (api.Page[api.Brand], error) {
			return single(svc.List(ctx))
		},
		Create: func() tea.Cmd { return edit(nil) },
		Keys: []KeyAction[api.Brand]{
			{Key: "e", Help: "Edit", Run: func(b api.Brand) tea.Cmd { return edit(&b) }},
			{Key: "d", Help: "Delete", Run: remove},
		},
	}, opts)
}

// NewCategories lists product categories
func NewCategories(c *api.Client, opts Options) *ListPage[api.Category] {
	edit := func(cat *api.Category) tea.Cmd {
		return forms.Open(forms.Category(cat, func(in api.CategoryInput) tea.Cmd {
			if cat == nil {
				return Mutate("Category created", func(ctx context.Context) error {
					_, err := c.Categories.Create(ctx, in)
					return err
				})
			}
			return Mutate("Category updated", func(ctx context.Context) error {
				return c.Categories.Update(ctx, cat.ID, in)
			})
		}))
	}
	remove := func(cat api.Category) tea.Cmd {
		return forms.Open(forms.Confirm(fmt.Sprintf("Delete %q?", cat.Name), func() tea.Cmd {
			return Mutate("Category deleted", func(ctx context.Context) error {
				return c.Categories.Delete(ctx, cat.ID)
			})
		}))
	}

	return NewList(ListConfig[api.Category]{
		Title: "Categories",
		Columns: []col[api.Category]{
			{Key: "name", Label: "Name"},
			{Key: "description", Label: "Description", HideOnCompact: true, MaxWidth: 50},
			{Key: "created_at", Label: "Created", HideOnMedium: true, Render: func(_ any, cat api.Category) datatable.Cell {
				return text(When(cat.CreatedAt))
			}},
			{Key: datatable.ActionsKey, Label: "Actions", Render: func(_ any, cat api.Category) datatable.Cell {
				return datatable.Actions(
					action("Edit", func() tea.Cmd { return edit(&cat) }),
					action("Delete", func() tea.Cmd { return remove(cat) }),
				)
			}},
		},
		EmptyMessage: "No categories found",
		Fetch: func(ctx context.Context, _ Query) (api.Page[api.Category], error) {
			return single(c.Categories.List(ctx))
		},
		Create: func() tea.Cmd { return edit(nil) },
		Keys: []KeyAction[api.Category]{
			{Key: "e", Help: "Edit", Run: func(cat api.Category) tea.Cmd { return edit(&cat) }},
			{Key: "d", Help: "Delete", Run: remove},
		},
	}, opts)
}

// NewFeedback lists customer feedback, optionally narrowed to one type
func NewFeedback(c *api.Client, opts Options) *ListPage[api.Feedback] {
	triage := func(f api.Feedback) tea.Cmd {
		return forms.Open(forms.FeedbackStatus(f, func(in api.FeedbackUpdate) tea.Cmd {
			return Mutate("Feedback updated", func(ctx context.Context) error {
				return c.Feedback.Update(ctx, f.ID, in)
			})
		}))
	}

	return NewList(ListConfig[api.Feedback]{
		Title: "Feedback",
		Columns: []col[api.Feedback]{
			{Key: "full_name", Label: "Name"},
			{Key: "email", Label: "Email", HideOnCompact: true, HideOnMedium: true},
			{Key: "feedback_type", Label: "Type", Render: func(_ any, f api.Feedback) datatable.Cell {
				return datatable.Styled(f.FeedbackType, widgets.Foreground(widgets.StatusInfo))
			}},
			{Key: "message", Label: "Message", MaxWidth: 60},
			{Key: "created_at", Label: "Date", HideOnCompact: true, Render: func(_ any, f api.Feedback) datatable.Cell {
				return text(When(f.CreatedAt))
			}},
		},
		EmptyMessage: "No feedback yet",
		SearchLabel:  "Feedback type",
		Fetch: func(ctx context.Context, q Query) (api.Page[api.Feedback], error) {
			return c.Feedback.List(ctx, api.FeedbackFilter{Params: q.Params(), FeedbackType: q.Search})
		},
		OnSelect: triage,
		Keys:     []KeyAction[api.Feedback]{{Key: "s", Help: "Status", Run: triage}},
	}, opts)
}

// NewAmbassadors lists ambassador applications with a review action
func NewAmbassadors(c *api.Client, opts Options) *ListPage[api.Ambassador] {
	review := func(a api.Ambassador) tea.Cmd {
		return forms.Open(forms.AmbassadorReview(a, func(in api.AmbassadorReview) tea.Cmd {
			return Mutate("Ambassador "+in.Status, func(ctx context.Context) error {
				return c.Ambassadors.UpdateStatus(ctx, a.ID, in)
			})
		}))
	}

	return NewList(ListConfig[api.Ambassador]{
		Title: "Ambassadors",
		Columns: []col[api.Ambassador]{
			{Key: "full_name", Label: "Name"},
			{Key: "email", Label: "Email", HideOnMedium: true},
			{Key: "phone", Label: "Phone", HideOnCompact: true, HideOnMedium: true},
			{Key: "status", Label: "Status", Render: func(_ any, a api.Ambassador) datatable.Cell {
				return status(a.Status)
			}},
			{Key: "created_at", Label: "Applied", HideOnCompact: true, Render: func(_ any, a api.Ambassador) datatable.Cell {
				return text(When(a.CreatedAt))
			}},
			{Key: datatable.ActionsKey, Label: "Actions", Render: func(_ any, a api.Ambassador) datatable.Cell {
				if a.Status != "pending" {
					return text("")
				}
				return datatable.Actions(action("Review", func() tea.Cmd { return review(a) }))
			}},
		},
		EmptyMessage: "No ambassador applications",
		FilterLabel:  "Status",
		Filters:      append([]string{"all"}, api.AmbassadorStatuses...),
		Fetch: func(ctx context.Context, q Query) (api.Page[api.Ambassador], error) {
			return c.Ambassadors.List(ctx, api.AmbassadorFilter{Params: q.Params(), Status: q.Filter})
		},
		OnSelect: review,
		Keys:     []KeyAction[api.Ambassador]{{Key: "s", Help: "Review", Run: review}},
	}, opts)
}

// NewPartners lists storefront partners
func NewPartners(c *api.Client, opts Options) *ListPage[api.Partner] {
	edit := func(p *api.Partner) tea.Cmd {
		return forms.Open(forms.Partner(p, func(in api.PartnerInput) tea.Cmd {
			if p == nil {
				return Mutate("Partner created", func(ctx context.Context) error {
					_, err := c.Partners.Create(ctx, in)
					return err
				})
			}
			return Mutate("Partner updated", func(ctx context.Context) error {
				return c.Partners.Update(ctx, p.ID, in)
			})
		}))
	}
	remove := func(p api.Partner) tea.Cmd {
		return forms.Open(forms.Confirm(fmt.Sprintf("Delete %q?", p.Name), func() tea.Cmd {
			return Mutate("Partner deleted", func(ctx context.Context) error {
				return c.Partners.Delete(ctx, p.ID)
			})
		}))
	}

	return NewList(ListConfig[api.Partner]{
		Title: "Partners",
		Columns: []col[api.Partner]{
			{Key: "name", Label: "Name"},
			{Key: "logo_url", Label: "Logo", HideOnCompact: true, HideOnMedium: true, Render: func(_ any, p api.Partner) datatable.Cell {
				if p.LogoURL == "" {
					return text("")
				}
				return text("✓")
			}},
			{Key: "website_url", Label: "Website", HideOnMedium: true},
			{Key: "contact_email", Label: "Email", HideOnCompact: true},
			{Key: "is_active", Label: "Status", Render: func(_ any, p api.Partner) datatable.Cell {
				return active(p.IsActive)
			}},
			{Key: "created_at", Label: "Created", HideOnCompact: true, HideOnMedium: true, Render: func(_ any, p api.Partner) datatable.Cell {
				return text(When(p.CreatedAt))
			}},
			{Key: datatable.ActionsKey, Label: "Actions", Render: func(_ any, p api.Partner) datatable.Cell {
				return datatable.Actions(
					action("Edit", func() tea.Cmd { return edit(&p) }),
					action("Delete", func() tea.Cmd { return remove(p) }),
				)
			}},
		},
		EmptyMessage: "No partners yet",
		Fetch: func(ctx context.Context, _ Query) (api.Page[api.Partner], error) {
			return single(c.Partners.List(ctx))
		},
		Create: func() tea.Cmd { return edit(nil) },
		Keys: []KeyAction[api.Partner]{
			{Key: "e", Help: "Edit", Run: func(p api.Partner) tea.Cmd { return edit(&p) }},
			{Key: "d", Help: "Delete", Run: remove},
		},
	}, opts)
}
