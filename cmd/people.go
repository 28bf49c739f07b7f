// ABOUTME: User and order commands
// ABOUTME: list, get, and the membership and fulfillment status writes

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/markalston/moto-admin/internal/api"
	"github.com/markalston/moto-admin/internal/tui/datatable"
	"github.com/markalston/moto-admin/internal/tui/pages"
	"github.com/markalston/moto-admin/internal/tui/widgets"
	"github.com/spf13/cobra"
)

var (
	usersList      listFlags
	usersSearch    string
	usersTier      string
	usersVerified  string
	membershipType string
	membershipPts  string

	ordersList     listFlags
	ordersStatus   string
	ordersPayment  string
	ordersUser     string
	orderNewStatus string
	orderTracking  string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Customer accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		return runUsersList(ctx, w, e)
	}),
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a customer with their orders and payments",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, e *env, args []string) int {
		return runUserGet(ctx, w, e, idArg(args))
	}),
}

var usersMembershipCmd = &cobra.Command{
	Use:   "membership <id>",
	Short: "Change a customer's membership tier and points",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, e *env, args []string) int {
		return runMembership(ctx, w, e, idArg(args))
	}),
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Customer orders",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		return runOrdersList(ctx, w, e)
	}),
}

var ordersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show an order with its items, payments, and shipping address",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, e *env, args []string) int {
		return runOrderGet(ctx, w, e, idArg(args))
	}),
}

var ordersStatusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Move an order to a new fulfillment status",
	Long: fmt.Sprintf(`Move an order to a new fulfillment status.

Valid statuses: %s`, strings.Join(api.OrderStatuses, ", ")),
	Args: cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, e *env, args []string) int {
		return runOrderStatus(ctx, w, e, idArg(args))
	}),
}

func addListFlags(cmd *cobra.Command, f *listFlags) {
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Records per page (default: MOTO_ADMIN_PAGE_SIZE)")
}

func init() {
	rootCmd.AddCommand(usersCmd, ordersCmd)
	usersCmd.AddCommand(usersListCmd, usersGetCmd, usersMembershipCmd)
	ordersCmd.AddCommand(ordersListCmd, ordersGetCmd, ordersStatusCmd)

	addListFlags(usersListCmd, &usersList)
	usersListCmd.Flags().StringVar(&usersSearch, "search", "", "Match name or email")
	usersListCmd.Flags().StringVar(&usersTier, "membership", "", "Only this membership type")
	usersListCmd.Flags().StringVar(&usersVerified, "verified", "", "Only verified (true) or unverified (false) emails")

	usersMembershipCmd.Flags().StringVar(&membershipType, "type", "", "Membership type (required)")
	usersMembershipCmd.Flags().StringVar(&membershipPts, "points", "", "Membership points")
	_ = usersMembershipCmd.MarkFlagRequired("type")

	addListFlags(ordersListCmd, &ordersList)
	ordersListCmd.Flags().StringVar(&ordersStatus, "status", "", "Only this order status")
	ordersListCmd.Flags().StringVar(&ordersPayment, "payment-status", "", "Only this payment status")
	ordersListCmd.Flags().StringVar(&ordersUser, "user", "", "Only orders of this user ID")

	ordersStatusCmd.Flags().StringVar(&orderNewStatus, "status", "", "New status (required)")
	ordersStatusCmd.Flags().StringVar(&orderTracking, "tracking", "", "Tracking number")
	_ = ordersStatusCmd.MarkFlagRequired("status")
}

// pageParams applies the configured page size when --limit is not given
func pageParams(e *env, f listFlags) listFlags {
	if f.limit <= 0 {
		f.limit = e.cfg.PageSize
	}
	return f
}

func textCell[T any](get func(T) string) func(any, T) datatable.Cell {
	return func(_ any, rec T) datatable.Cell { return datatable.Text(get(rec)) }
}

func statusCell[T any](get func(T) string) func(any, T) datatable.Cell {
	return func(_ any, rec T) datatable.Cell {
		s := get(rec)
		return datatable.Styled(s, widgets.StatusStyle(s))
	}
}

func dateCell[T any](get func(T) api.Timestamp) func(any, T) datatable.Cell {
	return func(_ any, rec T) datatable.Cell { return datatable.Text(pages.When(get(rec))) }
}

func userColumns() []datatable.Column[api.User] {
	return []datatable.Column[api.User]{
		{Key: "id", Label: "ID"},
		{Key: "full_name", Label: "Name"},
		{Key: "email", Label: "Email"},
		{Key: "membership_type", Label: "Membership", HideOnCompact: true, Render: statusCell(func(u api.User) string { return u.MembershipType })},
		{Key: "order_count", Label: "Orders", HideOnMedium: true},
		{Key: "total_spent", Label: "Total Spent", Render: textCell(func(u api.User) string { return pages.Money(u.TotalSpent) })},
		{Key: "created_at", Label: "Joined", HideOnMedium: true, Render: dateCell(func(u api.User) api.Timestamp { return u.CreatedAt })},
	}
}

func orderColumns() []datatable.Column[api.Order] {
	return []datatable.Column[api.Order]{
		{Key: "id", Label: "ID"},
		{Key: "order_number", Label: "Order"},
		{Key: "full_name", Label: "Customer"},
		{Key: "email", Label: "Email", HideOnMedium: true},
		{Key: "total_amount", Label: "Total", Render: textCell(func(o api.Order) string { return pages.Money(o.TotalAmount) })},
		{Key: "status", Label: "Status", Render: statusCell(func(o api.Order) string { return o.Status })},
		{Key: "payment_status", Label: "Payment", HideOnCompact: true, Render: statusCell(func(o api.Order) string { return o.PaymentStatus })},
		{Key: "created_at", Label: "Placed", HideOnMedium: true, Render: dateCell(func(o api.Order) api.Timestamp { return o.CreatedAt })},
	}
}

func paymentColumns() []datatable.Column[api.Payment] {
	return []datatable.Column[api.Payment]{
		{Key: "id", Label: "ID"},
		{Key: "amount", Label: "Amount", Render: textCell(func(p api.Payment) string { return pages.Money(p.Amount) })},
		{Key: "method", Label: "Method"},
		{Key: "status", Label: "Status", Render: statusCell(func(p api.Payment) string { return p.Status })},
		{Key: "created_at", Label: "Date", Render: dateCell(func(p api.Payment) api.Timestamp { return p.CreatedAt })},
	}
}

func runUsersList(ctx context.Context, w io.Writer, e *env) int {
	if !requireSession(ctx, w, e) {
		return exitSession
	}
	f := api.UserFilter{
		Params:         pageParams(e, usersList).params(),
		Search:         usersSearch,
		MembershipType: usersTier,
	}
	if usersVerified != "" {
		v, err := strconv.ParseBool(usersVerified)
		if err != nil {
			return fail(w, usageError{fmt.Errorf("--verified must be true or false, got %q", usersVerified)})
		}
		f.EmailVerified = &v
	}

	page, err := e.client.Users.List(ctx, f)
	if err != nil {
		return fail(w, err)
	}
	return list(w, userColumns(), page.Items, &page.Meta, "users")
}

func runUserGet(ctx context.Context, w io.Writer, e *env, id api.ID) int {
	if !requireSession(ctx, w, e) {
		return exitSession
	}
	d, err := e.client.Users.Get(ctx, id)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, map[string]any{
			"user":        d.User,
			"orders":      orEmpty(d.Orders),
			"order_items": orEmpty(d.OrderItems),
			"payments":    orEmpty(d.Payments),
		})
		return exitOK
	}

	u := d.User
	printFields(w, []field{
		{"Name", u.FullName},
		{"Email", fmt.Sprintf("%s (verified: %s)", u.Email, widgets.YesNo(bool(u.EmailVerified)))},
		{"Phone", phone(u)},
		{"Membership", fmt.Sprintf("%s (%s points)", statusText(u.MembershipType), pages.Count(u.MembershipPoints))},
		{"Joined", pages.When(u.CreatedAt)},
		{"Orders", pages.Count(len(d.Orders))},
		{"Total spent", pages.Money(d.TotalSpent())},
	})
	heading(w, "Orders")
	list(w, orderColumns(), d.Orders, nil, "orders")
	heading(w, "Payments")
	return list(w, paymentColumns(), d.Payments, nil, "payments")
}

func phone(u api.User) string {
	if u.Phone == "" {
		return ""
	}
	return fmt.Sprintf("%s (verified: %s)", u.Phone, widgets.YesNo(bool(u.PhoneVerified)))
}

func runMembership(ctx context.Context, w io.Writer, e *env, id api.ID) int {
	points, err := optInt("points", membershipPts)
	if err != nil {
		return fail(w, err)
	}
	if !requireSession(ctx, w, e) {
		return exitSession
	}
	in := api.MembershipUpdate{MembershipType: strings.TrimSpace(membershipType), MembershipPoints: points}
	if err := e.client.Users.UpdateMembership(ctx, id, in); err != nil {
		return fail(w, err)
	}
	return done(w, fmt.Sprintf("Membership of user %s set to %s", id, in.MembershipType), nil)
}

func runOrdersList(ctx context.Context, w io.Writer, e *env) int {
	if !requireSession(ctx, w, e) {
		return exitSession
	}
	page, err := e.client.Orders.List(ctx, api.OrderFilter{
		Params:        pageParams(e, ordersList).params(),
		Status:        ordersStatus,
		PaymentStatus: ordersPayment,
		UserID:        api.ID(ordersUser),
	})
	if err != nil {
		return fail(w, err)
	}
	return list(w, orderColumns(), page.Items, &page.Meta, "orders")
}

func runOrderGet(ctx context.Context, w io.Writer, e *env, id api.ID) int {
	if !requireSession(ctx, w, e) {
		return exitSession
	}
	d, err := e.client.Orders.Get(ctx, id)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, map[string]any{
			"order":            d.Order,
			"order_items":      orEmpty(d.OrderItems),
			"payments":         orEmpty(d.Payments),
			"shipping_address": d.ShippingAddress,
		})
		return exitOK
	}

	o := d.Order
	printFields(w, []field{
		{"Order", o.OrderNumber},
		{"Status", statusText(o.Status)},
		{"Payment", statusText(o.PaymentStatus)},
		{"Customer", o.FullName},
		{"Email", o.Email},
		{"Tracking", o.TrackingNumber},
		{"Placed", strings.TrimSpace(pages.When(o.CreatedAt) + " " + keyLabel(pages.Ago(o.CreatedAt)))},
		{"Order total", pages.Money(o.TotalAmount)},
	})

	heading(w, "Items")
	list(w, itemColumns(), d.OrderItems, nil, "items")
	total := d.ItemsTotal()
	line := "Items total: " + pages.Money(total)
	if !total.Equal(o.TotalAmount) {
		line += " " + warnLabel("(differs from order total)")
	}
	fmt.Fprintln(w, line)

	heading(w, "Payments")
	list(w, paymentColumns(), d.Payments, nil, "payments")

	heading(w, "Shipping address")
	if a := d.ShippingAddress; a != nil {
		for _, l := range []string{a.Label, a.Street, strings.TrimSpace(a.PostalCode + " " + a.City), a.Country} {
			if l != "" {
				fmt.Fprintln(w, l)
			}
		}
	} else {
		fmt.Fprintln(w, keyLabel("No shipping address"))
	}
	return exitOK
}

func itemColumns() []datatable.Column[api.OrderItem] {
	return []datatable.Column[api.OrderItem]{
		{Key: "name", Label: "Item", Render: func(_ any, it api.OrderItem) datatable.Cell { return datatable.Text(it.Name()) }},
		{Key: "product_type", Label: "Type"},
		{Key: "price", Label: "Price", Render: textCell(func(it api.OrderItem) string { return pages.Money(it.Price) })},
		{Key: "quantity", Label: "Qty"},
		{Key: "line_total", Label: "Total", Render: textCell(func(it api.OrderItem) string { return pages.Money(it.LineTotal()) })},
	}
}

func runOrderStatus(ctx context.Context, w io.Writer, e *env, id api.ID) int {
	if !requireSession(ctx, w, e) {
		return exitSession
	}
	in := api.StatusUpdate{Status: strings.ToLower(strings.TrimSpace(orderNewStatus)), TrackingNumber: strings.TrimSpace(orderTracking)}
	if err := e.client.Orders.UpdateStatus(ctx, id, in); err != nil {
		return fail(w, err)
	}
	return done(w, fmt.Sprintf("Order %s is now %s", id, in.Status), nil)
}
