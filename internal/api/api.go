// ABOUTME: Typed accessors for the admin backend, one service per resource
// ABOUTME: Every call goes through the request gateway

package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/markalston/moto-admin/internal/cache"
	"github.com/markalston/moto-admin/internal/gateway"
	"github.com/markalston/moto-admin/internal/pagination"
)

// Client groups the resource services
type Client struct {
	gw   *gateway.Gateway
	refs *cache.Cache[CatalogRefs]

	Dashboard     *DashboardService
	Users         *UsersService
	Orders        *OrdersService
	Products      *ProductsService
	Parts         *PartsService
	Merchandise   *MerchandiseService
	Brands        *BrandsService
	Manufacturers *BrandsService
	Categories    *CategoriesService
	Models        *ModelsService
	Feedback      *FeedbackService
	Ambassadors   *AmbassadorsService
	Partners      *PartnersService
}

type service struct {
	c *Client
}

// New creates a client. cacheTTL bounds how long brand and category lists are reused.
func New(gw *gateway.Gateway, cacheTTL time.Duration) *Client {
	c := &Client{
		gw:   gw,
		refs: cache.New[CatalogRefs](cacheTTL),
	}
	s := service{c: c}

	c.Dashboard = (*DashboardService)(&s)
	c.Users = (*UsersService)(&s)
	c.Orders = (*OrdersService)(&s)
	c.Products = (*ProductsService)(&s)
	c.Parts = (*PartsService)(&s)
	c.Merchandise = (*MerchandiseService)(&s)
	c.Categories = (*CategoriesService)(&s)
	c.Models = (*ModelsService)(&s)
	c.Feedback = (*FeedbackService)(&s)
	c.Ambassadors = (*AmbassadorsService)(&s)
	c.Partners = (*PartnersService)(&s)
	c.Brands = &BrandsService{c: c, listPath: "/products/brands", adminPath: "/admin/brands", plural: "brands", singular: "brand"}
	c.Manufacturers = &BrandsService{c: c, listPath: "/products/manufacturers", adminPath: "/admin/manufacturers", plural: "manufacturers", singular: "manufacturer"}
	return c
}

// Gateway returns the underlying gateway
func (c *Client) Gateway() *gateway.Gateway {
	return c.gw
}

// Close releases the reference cache
func (c *Client) Close() {
	c.refs.Close()
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, q, nil)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body gateway.Body) ([]byte, error) {
	env := c.gw.Do(ctx, gateway.Request{Method: method, Path: path, Query: q, Body: body})
	if err := env.AsError(); err != nil {
		return nil, err
	}
	return env.Payload, nil
}

// query builds list query values, skipping empty filters
func query(p pagination.Params, kv ...string) url.Values {
	q := url.Values{}
	p.Apply(q)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			q.Set(kv[i], kv[i+1])
		}
	}
	return q
}

func itemPath(base string, id ID) string {
	return base + "/" + url.PathEscape(string(id))
}

// ImageURL resolves a stored image path against the API host
func ImageURL(apiBase, path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	u, err := url.Parse(apiBase)
	if err != nil || u.Host == "" {
		return path
	}
	return u.Scheme + "://" + u.Host + "/" + strings.TrimLeft(path, "/")
}
