// ABOUTME: Tests for the typed resource accessors
// ABOUTME: A fake backend built on httptest records the requests it receives

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/markalston/moto-admin/internal/gateway"
	"github.com/markalston/moto-admin/internal/pagination"
	"github.com/markalston/moto-admin/internal/session"
	"github.com/shopspring/decimal"
)

type recorded struct {
	Method      string
	Path        string
	Query       string
	ContentType string
	Body        string
}

// fakeBackend answers from a route table keyed by "METHOD /path"
type fakeBackend struct {
	t      *testing.T
	mu     sync.Mutex
	routes map[string]func(w http.ResponseWriter, r *http.Request)
	calls  []recorded
}

func newFakeBackend(t *testing.T) *fakeBackend {
	return &fakeBackend{t: t, routes: map[string]func(http.ResponseWriter, *http.Request){}}
}

func (f *fakeBackend) on(route string, status int, body string) {
	f.routes[route] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, recorded{
		Method:      r.Method,
		Path:        r.URL.Path,
		Query:       r.URL.RawQuery,
		ContentType: r.Header.Get("Content-Type"),
		Body:        string(data),
	})
	h, ok := f.routes[r.Method+" "+r.URL.Path]
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"not found"}`)
		return
	}
	h(w, r)
}

func (f *fakeBackend) count(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Method+" "+c.Path == route {
			n++
		}
	}
	return n
}

func (f *fakeBackend) last() recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		f.t.Fatal("no calls recorded")
	}
	return f.calls[len(f.calls)-1]
}

func newTestClient(t *testing.T, backend *fakeBackend) (*Client, *session.Manager) {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	mgr := session.NewManager(session.NewMemoryStore(), nil)
	if err := mgr.Establish(context.Background(), "tok", &session.User{ID: "1"}); err != nil {
		t.Fatal(err)
	}
	gw := gateway.New(mgr, gateway.Options{BaseURL: server.URL, Timeout: 2 * time.Second})
	c := New(gw, time.Minute)
	t.Cleanup(c.Close)
	return c, mgr
}

func TestUsersList_QueryAndPagination(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on("GET /admin/users", 200, `{
		"users": [{"id": 5, "full_name": "Ada", "total_spent": "120.50", "email_verified": 1, "created_at": "2024-03-01 10:00:00"}],
		"pagination": {"page": 2, "limit": 20, "total": 45}
	}`)
	c, _ := newTestClient(t, backend)

	verified := true
	page, err := c.Users.List(context.Background(), UserFilter{
		Params:        pagination.Params{Page: 2, Limit: 20},
		Search:        "ada",
		EmailVerified: &verified,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q := backend.last().Query; q != "email_verified=true&limit=20&page=2&search=ada" {
		t.Errorf("unexpected query %q", q)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 user, got %d", len(page.Items))
	}
	u := page.Items[0]
	if u.ID != "5" || !bool(u.EmailVerified) || !u.TotalSpent.Equal(decimal.RequireFromString("120.5")) {
		t.Errorf("unexpected user %+v", u)
	}
	if u.CreatedAt.Date() == "" {
		t.Error("expected SQL datetime to parse")
	}
	want := pagination.Meta{Page: 2, Limit: 20, Total: 45, Pages: 3}
	if page.Meta != want {
		t.Errorf("meta = %+v, want %+v", page.Meta, want)
	}
}

func TestList_MissingOrNonArrayIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing", `{}`},
		{"null", `{"orders": null}`},
		{"object", `{"orders": {"id": 1}}`},
		{"string", `{"orders": "nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newFakeBackend(t)
			backend.on("GET /admin/orders", 200, tt.body)
			c, _ := newTestClient(t, backend)

			page, err := c.Orders.List(context.Background(), OrderFilter{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if page.Items == nil || len(page.Items) != 0 {
				t.Errorf("expected empty non-nil slice, got %#v", page.Items)
			}
			if page.Meta.Pages != 0 {
				t.Errorf("expected no pages, got %d", page.Meta.Pages)
			}
		})
	}
}

func TestOrdersGet_Detail(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on("GET /admin/orders/o-1", 200, `{
		"order": {"id": "o-1", "order_number": "SBR-1001", "total_amount": 59.9, "status": "paid"},
		"orderItems": [
			{"id": 1, "part_name": "Chain", "price": "19.95", "quantity": 2},
			{"id": 2, "merchandise_name": "Cap", "price": 20, "quantity": 1}
		],
		"payments": [{"id": 9, "amount": "59.90", "method": "card", "status": "completed"}],
		"shippingAddress": {"street": "1 Main St", "city": "Austin"}
	}`)
	c, _ := newTestClient(t, backend)

	d, err := c.Orders.Get(context.Background(), "o-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Order.OrderNumber != "SBR-1001" {
		t.Errorf("unexpected order %+v", d.Order)
	}
	if got := d.ItemsTotal().StringFixed(2); got != "59.90" {
		t.Errorf("items total = %s", got)
	}
	if d.OrderItems[1].Name() != "Cap" {
		t.Errorf("expected merchandise name fallback, got %q", d.OrderItems[1].Name())
	}
	if d.ShippingAddress == nil || d.ShippingAddress.City != "Austin" {
		t.Errorf("unexpected address %+v", d.ShippingAddress)
	}
}

func TestOrdersGet_MissingEntityIsMalformed(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on("GET /admin/orders/o-1", 200, `{"orderItems": []}`)
	c, _ := newTestClient(t, backend)

	if _, err := c.Orders.Get(context.Background(), "o-1"); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestOrdersUpdateStatus_ValidatesBeforeSending(t *testing.T) {
	backend := newFakeBackend(t)
	c, _ := newTestClient(t, backend)

	err := c.Orders.UpdateStatus(context.Background(), "o-1", StatusUpdate{Status: "lost"})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "status must be one of") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if len(backend.calls) != 0 {
		t.Error("expected no request")
	}
}

func TestOrdersList_ForbiddenInvalidatesSession(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on("GET /admin/orders", 403, `{"error":"Admin access required"}`)
	c, mgr := newTestClient(t, backend)

	_, err := c.Orders.List(context.Background(), OrderFilter{})
	if !gateway.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if mgr.HasToken(context.Background()) {
		t.Error("expected token to be cleared")
	}
	if mgr.Validity() != session.Invalid {
		t.Errorf("expected Invalid, got %s", mgr.Validity())
	}
}

func TestDashboardStatistics(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on("GET /admin/dashboard", 200, `{
		"statistics": {"total_users": 10, "total_orders": 4, "total_revenue": "1234.5", "total_products": 7},
		"recent_orders": [{"id": 1, "order_number": "A1", "total_amount": 10}]
	}`)
	c, _ := newTestClient(t, backend)

	d, err := c.Dashboard.Statistics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Statistics.TotalUsers != 10 || d.Statistics.TotalRevenue.StringFixed(2) != "1234.50" {
		t.Errorf("unexpected statistics %+v", d.Statistics)
	}
	if len(d.RecentOrders) != 1 {
		t.Errorf("expected 1 recent order, got %d", len(d.RecentOrders))
	}
}

func TestBrandsCreate_RequiresID(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"with id", `{"brand": {"id": "b1", "name": "Brembo"}}`, nil},
		{"numeric id", `{"brand": {"id": 3, "name": "Brembo"}}`, nil},
		{"missing id", `{"brand": {"name": "Brembo"}}`, ErrMalformedResponse},
		{"missing entity", `{"message": "created"}`, ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newFakeBackend(t)
			backend.on("POST /admin/brands", 201, tt.body)
			c, _ := newTestClient(t, backend)

			_, err := c.Brands.Create(context.Background(), BrandInput{Name: "Brembo"})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBrandsCreate_LogoUsesMultipart(t *testing.T) {
	logo := t.TempDir() + "/logo.png"
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 0x49, 0x48, 0x44, 0x52}
	if err := writeFile(logo, png); err != nil {
		t.Fatal(err)
	}

	backend := newFakeBackend(t)
	backend.on("POST /admin/manufacturers", 201, `{"manufacturer": {"id": "m1"}}`)
	c, _ := newTestClient(t, backend)

	if _, err := c.Manufacturers.Create(context.Background(), BrandInput{Name: "Ducati", LogoFile: logo}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct := backend.last().ContentType; !strings.HasPrefix(ct, "multipart/form-data") {
		t.Errorf("expected multipart, got %q", ct)
	}

	if _, err := c.Brands.Create(context.Background(), BrandInput{Name: "Brembo"}); err == nil {
		t.Error("expected 404 from unrouted brands endpoint")
	}
	if ct := backend.last().ContentType; ct != "application/json" {
		t.Errorf("expected JSON without a logo, got %q", ct)
	}
}

func TestCatalogRefs_CachedUntilMutation(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on("GET /products/brands", 200, `{"brands": [{"id": 1, "name": "Brembo"}]}`)
	backend.on("GET /products/categories", 200, `{"categories": [{"id": 2, "name": "Brakes"}]}`)
	backend.on("POST /admin/brands", 201, `{"brand": {"id": 3, "name": "EBC"}}`)
	c, _ := newTestClient(t, backend)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		refs, err := c.CatalogRefs(ctx)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if len(refs.Brands) != 1 || len(refs.Categories) != 1 {
			t.Fatalf("unexpected refs %+v", refs)
		}
	}
	if n := backend.count("GET /products/brands"); n != 1 {
		t.Errorf("expected 1 brands fetch before mutation, got %d", n)
	}

	if _, err := c.Brands.Create(ctx, BrandInput{Name: "EBC"}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.CatalogRefs(ctx); err != nil {
		t.Fatal(err)
	}
	if n := backend.count("GET /products/brands"); n != 2 {
		t.Errorf("expected refetch after mutation, got %d fetches", n)
	}
}

func TestCreatePart_StopsWhenBrandCreationFails(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on("POST /admin/brands", 409, `{"error":"Brand already exists"}`)
	backend.on("POST /admin/categories", 201, `{"category": {"id": "c1"}}`)
	backend.on("POST /admin/parts", 201, `{"part": {"id": "p1"}}`)
	c, _ := newTestClient(t, backend)

	_, err := c.CreatePart(context.Background(),
		RefChoice{NewName: "Brembo"}, RefChoice{NewName: "Brakes"},
		PartInput{Name: "Pads"})
	if err == nil || !strings.Contains(err.Error(), "Brand already exists") {
		t.Fatalf("expected brand failure, got %v", err)
	}
	if backend.count("POST /admin/categories") != 0 || backend.count("POST /admin/parts") != 0 {
		t.Error("expected no further requests after brand creation failed")
	}
}

func TestCreatePart_StopsWhenCreatedCategoryHasNoID(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on("POST /admin/categories", 201, `{"category": {"name": "Brakes"}}`)
	backend.on("POST /admin/parts", 201, `{"part": {"id": "p1"}}`)
	c, _ := newTestClient(t, backend)

	_, err := c.CreatePart(context.Background(),
		RefChoice{ID: "b1"}, RefChoice{NewName: "Brakes"},
		PartInput{Name: "Pads"})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	if backend.count("POST /admin/parts") != 0 {
		t.Error("part must not be created")
	}
}

func TestCreatePart_Success(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on("POST /admin/brands", 201, `{"brand": {"id": "b9"}}`)
	backend.on("POST /admin/parts", 201, `{"part": {"id": "p1", "name": "Pads"}}`)
	c, _ := newTestClient(t, backend)

	price := decimal.RequireFromString("49.99")
	part, err := c.CreatePart(context.Background(),
		RefChoice{NewName: "Brembo"}, RefChoice{ID: "c1"},
		PartInput{Name: "Pads", SellingPrice: &price, Images: []string{"https://x/p.png"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if part.ID != "p1" {
		t.Errorf("unexpected part %+v", part)
	}

	var sent map[string]any
	if err := json.Unmarshal([]byte(backend.last().Body), &sent); err != nil {
		t.Fatal(err)
	}
	if sent["brand_id"] != "b9" || sent["category_id"] != "c1" {
		t.Errorf("unexpected references %v", sent)
	}
	if sent["selling_price"] != 49.99 {
		t.Errorf("expected numeric price, got %#v", sent["selling_price"])
	}
}

func TestCreatePart_NegativePriceRejected(t *testing.T) {
	backend := newFakeBackend(t)
	c, _ := newTestClient(t, backend)

	price := decimal.NewFromInt(-1)
	_, err := c.Parts.Create(context.Background(), PartInput{BrandID: "b", CategoryID: "c", Name: "x", SellingPrice: &price})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(backend.calls) != 0 {
		t.Error("expected no request")
	}
}

func TestPartnersUpdate_KeepsLogoURL(t *testing.T) {
	backend := newFakeBackend(t)
	var logoURL string
	backend.routes["PUT /admin/partners/p1"] = func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"partner": {"id": "p1"}}`))
	}
	c, _ := newTestClient(t, backend)

	in := EditOf(Partner{ID: "p1", Name: "Moto Club", LogoURL: "/uploads/club.png", IsActive: true})
	if err := c.Partners.Update(context.Background(), "p1", in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := backend.last()
	if !strings.HasPrefix(last.ContentType, "multipart/form-data") {
		t.Fatalf("expected multipart, got %q", last.ContentType)
	}
	req, _ := http.NewRequest(http.MethodPut, "/", strings.NewReader(last.Body))
	req.Header.Set("Content-Type", last.ContentType)
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatal(err)
	}
	logoURL = req.FormValue("logo_url")
	if logoURL != "/uploads/club.png" {
		t.Errorf("expected logo_url to be retained, got %q", logoURL)
	}
	if req.FormValue("is_active") != "true" {
		t.Errorf("expected is_active=true, got %q", req.FormValue("is_active"))
	}
}

func TestPartnersCreate_RejectsNonImageLogo(t *testing.T) {
	logo := t.TempDir() + "/logo.txt"
	if err := writeFile(logo, []byte("just text")); err != nil {
		t.Fatal(err)
	}
	backend := newFakeBackend(t)
	c, _ := newTestClient(t, backend)

	_, err := c.Partners.Create(context.Background(), PartnerInput{Name: "Club", LogoFile: logo})
	if err == nil || !strings.Contains(err.Error(), gateway.ErrNotImage.Error()) {
		t.Fatalf("expected not-image error, got %v", err)
	}
	if len(backend.calls) != 0 {
		t.Error("expected no request")
	}
}

func TestAmbassadorsList_AllStatusOmitted(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on("GET /admin/ambassadors", 200, `{"ambassadors": []}`)
	c, _ := newTestClient(t, backend)

	if _, err := c.Ambassadors.List(context.Background(), AmbassadorFilter{Status: "all"}); err != nil {
		t.Fatal(err)
	}
	if q := backend.last().Query; q != "" {
		t.Errorf("expected no query, got %q", q)
	}
}

func TestModelsByMake_EscapesName(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on("GET /products/models/make-name/Harley Davidson", 200, `{"models": [{"id": 1, "name": "Sportster"}]}`)
	c, _ := newTestClient(t, backend)

	models, err := c.Models.ByMake(context.Background(), "Harley Davidson")
	if err != nil {
		t.Fatal(err)
	}
	if len(models) != 1 || models[0].Name != "Sportster" {
		t.Errorf("unexpected models %+v", models)
	}
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"http://localhost:3000/api", "/uploads/a.png", "http://localhost:3000/uploads/a.png"},
		{"http://localhost:3000/api", "uploads/a.png", "http://localhost:3000/uploads/a.png"},
		{"http://localhost:3000/api", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"http://localhost:3000/api", "", ""},
	}
	for _, tt := range tests {
		if got := ImageURL(tt.base, tt.path); got != tt.want {
			t.Errorf("ImageURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o600)
}
