// ABOUTME: Product catalog accessors: products, parts, merchandise, brands, categories, models
// ABOUTME: Brand and category lists are cached and refreshed after any mutation of either

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/markalston/moto-admin/internal/gateway"
	"github.com/markalston/moto-admin/internal/pagination"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

func init() {
	// The backend expects prices as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

const catalogRefsKey = "catalog-refs"

type ProductsService service

// ProductFilter narrows the unified product listing
type ProductFilter struct {
	pagination.Params
	Type       string
	Search     string
	BrandID    ID
	CategoryID ID
}

func (s *ProductsService) List(ctx context.Context, f ProductFilter) (Page[Product], error) {
	q := query(f.Params, "type", f.Type, "search", f.Search, "brand_id", string(f.BrandID), "category_id", string(f.CategoryID))
	payload, err := s.c.get(ctx, "/admin/products", q)
	if err != nil {
		return Page[Product]{}, err
	}
	return decodePage[Product](payload, "products")
}

// PartInput creates a part. Image files turn the request into a multipart upload.
type PartInput struct {
	BrandID       ID               `json:"brand_id" validate:"required"`
	CategoryID    ID               `json:"category_id" validate:"required"`
	Name          string           `json:"name" validate:"required"`
	Description   string           `json:"description,omitempty"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	SellingPrice  *decimal.Decimal `json:"selling_price,omitempty"`
	Quantity      *int             `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Weight        *decimal.Decimal `json:"weight,omitempty"`
	Images        []string         `json:"images,omitempty"`
	ColorOptions  []string         `json:"color_options,omitempty"`
	Compatibility []string         `json:"compatibility,omitempty"`
	ImageFiles    []string         `json:"-"`
}

func (in PartInput) validate() error {
	if err := check(in); err != nil {
		return err
	}
	return nonNegative(map[string]*decimal.Decimal{
		"original_price": in.OriginalPrice,
		"selling_price":  in.SellingPrice,
		"weight":         in.Weight,
	})
}

func (in PartInput) body() gateway.Body {
	if len(in.ImageFiles) == 0 {
		return gateway.JSON(in)
	}
	form := gateway.NewForm().
		Set("brand_id", string(in.BrandID)).
		Set("category_id", string(in.CategoryID)).
		Set("name", in.Name).
		SetIf("description", in.Description).
		SetIf("original_price", decimalString(in.OriginalPrice)).
		SetIf("selling_price", decimalString(in.SellingPrice)).
		SetIf("quantity", intString(in.Quantity)).
		SetIf("weight", decimalString(in.Weight)).
		SetIf("image_urls", jsonList(in.Images)).
		SetIf("color_options", jsonList(in.ColorOptions)).
		SetIf("compatibility", jsonList(in.Compatibility))
	for _, path := range in.ImageFiles {
		form.Attach("images", path, true)
	}
	return form
}

// PartUpdate edits a part; unset fields are left alone
type PartUpdate struct {
	Name          string           `json:"name" validate:"required"`
	Description   string           `json:"description,omitempty"`
	SellingPrice  *decimal.Decimal `json:"selling_price,omitempty"`
	Quantity      *int             `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Images        []string         `json:"images,omitempty"`
	ColorOptions  []string         `json:"color_options,omitempty"`
	Compatibility []string         `json:"compatibility,omitempty"`
}

type PartsService service

func (s *PartsService) Create(ctx context.Context, in PartInput) (Part, error) {
	if err := in.validate(); err != nil {
		return Part{}, err
	}
	payload, err := s.c.do(ctx, http.MethodPost, "/admin/parts", nil, in.body())
	if err != nil {
		return Part{}, err
	}
	return decodeCreated[Part](payload, "part")
}

func (s *PartsService) Get(ctx context.Context, id ID) (Part, error) {
	payload, err := s.c.get(ctx, itemPath("/admin/parts", id), nil)
	if err != nil {
		return Part{}, err
	}
	return decodeOne[Part](payload, "part")
}

func (s *PartsService) Update(ctx context.Context, id ID, in PartUpdate) error {
	if err := required("id", string(id)); err != nil {
		return err
	}
	if err := check(in); err != nil {
		return err
	}
	if err := nonNegative(map[string]*decimal.Decimal{"selling_price": in.SellingPrice}); err != nil {
		return err
	}
	_, err := s.c.do(ctx, http.MethodPut, itemPath("/admin/parts", id), nil, gateway.JSON(in))
	return err
}

func (s *PartsService) Delete(ctx context.Context, id ID) error {
	if err := required("id", string(id)); err != nil {
		return err
	}
	_, err := s.c.do(ctx, http.MethodDelete, itemPath("/admin/parts", id), nil, nil)
	return err
}

// MerchandiseInput creates or edits a merchandise item
type MerchandiseInput struct {
	Name         string           `json:"name" validate:"required"`
	Description  string           `json:"description,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Quantity     *int             `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Images       []string         `json:"images,omitempty"`
	SizeOptions  []string         `json:"size_options,omitempty"`
	ColorOptions []string         `json:"color_options,omitempty"`
}

func (in MerchandiseInput) validate() error {
	if err := check(in); err != nil {
		return err
	}
	return nonNegative(map[string]*decimal.Decimal{"price": in.Price})
}

type MerchandiseService service

func (s *MerchandiseService) Create(ctx context.Context, in MerchandiseInput) (Merchandise, error) {
	if err := in.validate(); err != nil {
		return Merchandise{}, err
	}
	payload, err := s.c.do(ctx, http.MethodPost, "/admin/merchandise", nil, gateway.JSON(in))
	if err != nil {
		return Merchandise{}, err
	}
	return decodeCreated[Merchandise](payload, "merchandise")
}

func (s *MerchandiseService) Get(ctx context.Context, id ID) (Merchandise, error) {
	payload, err := s.c.get(ctx, itemPath("/admin/merchandise", id), nil)
	if err != nil {
		return Merchandise{}, err
	}
	return decodeOne[Merchandise](payload, "merchandise")
}

func (s *MerchandiseService) Update(ctx context.Context, id ID, in MerchandiseInput) error {
	if err := required("id", string(id)); err != nil {
		return err
	}
	if err := in.validate(); err != nil {
		return err
	}
	_, err := s.c.do(ctx, http.MethodPut, itemPath("/admin/merchandise", id), nil, gateway.JSON(in))
	return err
}

func (s *MerchandiseService) Delete(ctx context.Context, id ID) error {
	if err := required("id", string(id)); err != nil {
		return err
	}
	_, err := s.c.do(ctx, http.MethodDelete, itemPath("/admin/merchandise", id), nil, nil)
	return err
}

// BrandInput creates or edits a brand or manufacturer. A logo file switches to multipart.
type BrandInput struct {
	Name        string `json:"name,omitempty" validate:"required"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logo_url,omitempty" validate:"omitempty,url"`
	LogoFile    string `json:"-"`
}

func (in BrandInput) body() gateway.Body {
	if in.LogoFile == "" {
		return gateway.JSON(in)
	}
	return gateway.NewForm().
		SetIf("name", in.Name).
		SetIf("description", in.Description).
		SetIf("logo_url", in.LogoURL).
		Attach("logo", in.LogoFile, true)
}

// BrandsService serves brands and manufacturers, which differ only in paths and keys
type BrandsService struct {
	c         *Client
	listPath  string
	adminPath string
	plural    string
	singular  string
}

func (s *BrandsService) List(ctx context.Context) ([]Brand, error) {
	payload, err := s.c.get(ctx, s.listPath, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Brand](payload, s.plural)
}

func (s *BrandsService) Create(ctx context.Context, in BrandInput) (Brand, error) {
	if err := check(in); err != nil {
		return Brand{}, err
	}
	payload, err := s.c.do(ctx, http.MethodPost, s.adminPath, nil, in.body())
	if err != nil {
		return Brand{}, err
	}
	s.c.refs.Purge()
	return decodeCreated[Brand](payload, s.singular)
}

// Update edits a brand; an empty name keeps the current one
func (s *BrandsService) Update(ctx context.Context, id ID, in BrandInput) error {
	if err := required("id", string(id)); err != nil {
		return err
	}
	if err := checkExcept(in, "Name"); err != nil {
		return err
	}
	_, err := s.c.do(ctx, http.MethodPut, itemPath(s.adminPath, id), nil, in.body())
	if err == nil {
		s.c.refs.Purge()
	}
	return err
}

func (s *BrandsService) Delete(ctx context.Context, id ID) error {
	if err := required("id", string(id)); err != nil {
		return err
	}
	_, err := s.c.do(ctx, http.MethodDelete, itemPath(s.adminPath, id), nil, nil)
	if err == nil {
		s.c.refs.Purge()
	}
	return err
}

// CategoryInput creates or edits a category
type CategoryInput struct {
	Name        string `json:"name,omitempty" validate:"required"`
	Description string `json:"description,omitempty"`
	ParentID    ID     `json:"parent_id,omitempty"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
}

type CategoriesService service

func (s *CategoriesService) List(ctx context.Context) ([]Category, error) {
	payload, err := s.c.get(ctx, "/products/categories", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Category](payload, "categories")
}

func (s *CategoriesService) Create(ctx context.Context, in CategoryInput) (Category, error) {
	if err := check(in); err != nil {
		return Category{}, err
	}
	payload, err := s.c.do(ctx, http.MethodPost, "/admin/categories", nil, gateway.JSON(in))
	if err != nil {
		return Category{}, err
	}
	s.c.refs.Purge()
	return decodeCreated[Category](payload, "category")
}

// Update edits a category; an empty name keeps the current one
func (s *CategoriesService) Update(ctx context.Context, id ID, in CategoryInput) error {
	if err := required("id", string(id)); err != nil {
		return err
	}
	if err := checkExcept(in, "Name"); err != nil {
		return err
	}
	_, err := s.c.do(ctx, http.MethodPut, itemPath("/admin/categories", id), nil, gateway.JSON(in))
	if err == nil {
		s.c.refs.Purge()
	}
	return err
}

func (s *CategoriesService) Delete(ctx context.Context, id ID) error {
	if err := required("id", string(id)); err != nil {
		return err
	}
	_, err := s.c.do(ctx, http.MethodDelete, itemPath("/admin/categories", id), nil, nil)
	if err == nil {
		s.c.refs.Purge()
	}
	return err
}

type ModelsService service

// ByMake lists the models of one manufacturer
func (s *ModelsService) ByMake(ctx context.Context, makeName string) ([]Model, error) {
	if err := required("make", makeName); err != nil {
		return nil, err
	}
	payload, err := s.c.get(ctx, "/products/models/make-name/"+url.PathEscape(makeName), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Model](payload, "models")
}

// CatalogRefs are the brand and category choices offered when editing parts
type CatalogRefs struct {
	Brands     []Brand
	Categories []Category
}

// CatalogRefs loads brands and categories concurrently, reusing a cached copy while fresh
func (c *Client) CatalogRefs(ctx context.Context) (CatalogRefs, error) {
	return c.refs.GetOrLoad(ctx, catalogRefsKey, func(ctx context.Context) (CatalogRefs, error) {
		var refs CatalogRefs
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			brands, err := c.Brands.List(gctx)
			if err != nil {
				return fmt.Errorf("failed to load brands: %w", err)
			}
			refs.Brands = brands
			return nil
		})
		g.Go(func() error {
			categories, err := c.Categories.List(gctx)
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}
			refs.Categories = categories
			return nil
		})
		if err := g.Wait(); err != nil {
			return CatalogRefs{}, err
		}
		return refs, nil
	})
}

// RefChoice picks an existing reference by ID or names a new one to create
type RefChoice struct {
	ID      ID
	NewName string
}

// EnsureBrandAndCategory resolves both choices to IDs, creating new entries first.
// Nothing further is attempted once a creation fails.
func (c *Client) EnsureBrandAndCategory(ctx context.Context, brand, category RefChoice) (brandID, categoryID ID, err error) {
	if brand.ID == "" && brand.NewName == "" {
		return "", "", &ValidationError{Field: "brand_id", Rule: "required"}
	}
	if category.ID == "" && category.NewName == "" {
		return "", "", &ValidationError{Field: "category_id", Rule: "required"}
	}

	brandID = brand.ID
	if brand.NewName != "" {
		created, err := c.Brands.Create(ctx, BrandInput{Name: brand.NewName})
		if err != nil {
			return "", "", fmt.Errorf("failed to create brand: %w", err)
		}
		brandID = created.ID
	}

	categoryID = category.ID
	if category.NewName != "" {
		created, err := c.Categories.Create(ctx, CategoryInput{Name: category.NewName})
		if err != nil {
			return "", "", fmt.Errorf("failed to create category: %w", err)
		}
		categoryID = created.ID
	}
	return brandID, categoryID, nil
}

// CreatePart resolves brand and category choices and then creates the part
func (c *Client) CreatePart(ctx context.Context, brand, category RefChoice, in PartInput) (Part, error) {
	in.BrandID, in.CategoryID = "", ""
	if err := checkExcept(in, "BrandID", "CategoryID"); err != nil {
		return Part{}, err
	}
	brandID, categoryID, err := c.EnsureBrandAndCategory(ctx, brand, category)
	if err != nil {
		return Part{}, err
	}
	in.BrandID, in.CategoryID = brandID, categoryID
	return c.Parts.Create(ctx, in)
}

func nonNegative(fields map[string]*decimal.Decimal) error {
	for name, d := range fields {
		if d != nil && d.IsNegative() {
			return &ValidationError{Field: name, Rule: "gte", Param: "0"}
		}
	}
	return nil
}

func decimalString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func intString(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func jsonList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	data, _ := json.Marshal(items)
	return string(data)
}
