// ABOUTME: Catalog commands for products, parts, merchandise, brands, and categories
// ABOUTME: Writes purge the cached brand and category lists through the client

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/markalston/moto-admin/internal/api"
	"github.com/markalston/moto-admin/internal/tui/datatable"
	"github.com/markalston/moto-admin/internal/tui/forms"
	"github.com/markalston/moto-admin/internal/tui/pages"
	"github.com/markalston/moto-admin/internal/tui/widgets"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	productsList   listFlags
	productsType   string
	productsSearch string
	productsBrand  string
	productsCat    string

	assumeYes bool

	modelsMake string
)

// partFlags holds the part create and update inputs. Empty strings leave a value unset.
var partFlags struct {
	brand, newBrand       string
	category, newCategory string
	name, description     string
	originalPrice, price  string
	quantity, weight      string
	images, colors        string
	compatibility         string
	imageFiles            []string
}

var merchFlags struct {
	name, description string
	price, quantity   string
	images, sizes     string
	colors            string
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Parts and merchandise in one listing",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List parts and merchandise",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		return runProductsList(ctx, w, e)
	}),
}

var partsCmd = &cobra.Command{
	Use:   "parts",
	Short: "Motorcycle parts",
}

var partsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a part, optionally creating its brand and category",
	Long: `Create a part.

Pass --brand and --category with existing IDs, or --new-brand and
--new-category to create them first. Image files given with --image-file
are uploaded and must be real images.`,
	Args: cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		return runPartCreate(ctx, w, e)
	}),
}

var partsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a part",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, e *env, args []string) int {
		return runPartGet(ctx, w, e, idArg(args))
	}),
}

var partsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a part; flags not given keep their current values",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, e *env, args []string) int {
		return runPartUpdate(ctx, w, e, idArg(args))
	}),
}

var partsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a part",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, e *env, args []string) int {
		return runDelete(ctx, w, e, "part", idArg(args), e.client.Parts.Delete)
	}),
}

var merchCmd = &cobra.Command{
	Use:     "merchandise",
	Aliases: []string{"merch"},
	Short:   "Branded merchandise",
}

var merchCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a merchandise item",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		return runMerchCreate(ctx, w, e)
	}),
}

var merchGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a merchandise item",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, e *env, args []string) int {
		return runMerchGet(ctx, w, e, idArg(args))
	}),
}

var merchUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a merchandise item; flags not given keep their current values",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, e *env, args []string) int {
		return runMerchUpdate(ctx, w, e, idArg(args))
	}),
}

var merchDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a merchandise item",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, e *env, args []string) int {
		return runDelete(ctx, w, e, "merchandise item", idArg(args), e.client.Merchandise.Delete)
	}),
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the motorcycle models of a manufacturer",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		return runModels(ctx, w, e)
	}),
}

func init() {
	rootCmd.AddCommand(productsCmd, partsCmd, merchCmd, modelsCmd)
	rootCmd.AddCommand(
		brandCommand("brands", "Part brands", "brand", func(c *api.Client) *api.BrandsService { return c.Brands }),
		brandCommand("manufacturers", "Motorcycle manufacturers", "manufacturer", func(c *api.Client) *api.BrandsService { return c.Manufacturers }),
		categoriesCommand(),
	)
	productsCmd.AddCommand(productsListCmd)
	partsCmd.AddCommand(partsCreateCmd, partsGetCmd, partsUpdateCmd, partsDeleteCmd)
	merchCmd.AddCommand(merchCreateCmd, merchGetCmd, merchUpdateCmd, merchDeleteCmd)

	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation before deleting")

	addListFlags(productsListCmd, &productsList)
	productsListCmd.Flags().StringVar(&productsType, "type", "", "Only part or merch")
	productsListCmd.Flags().StringVar(&productsSearch, "search", "", "Match product name")
	productsListCmd.Flags().StringVar(&productsBrand, "brand", "", "Only this brand ID")
	productsListCmd.Flags().StringVar(&productsCat, "category", "", "Only this category ID")

	for _, c := range []*cobra.Command{partsCreateCmd, partsUpdateCmd} {
		c.Flags().StringVar(&partFlags.name, "name", "", "Part name")
		c.Flags().StringVar(&partFlags.description, "description", "", "Description")
		c.Flags().StringVar(&partFlags.price, "price", "", "Selling price")
		c.Flags().StringVar(&partFlags.quantity, "quantity", "", "Quantity in stock")
		c.Flags().StringVar(&partFlags.images, "images", "", "Comma-separated image URLs")
		c.Flags().StringVar(&partFlags.colors, "colors", "", "Comma-separated color options")
		c.Flags().StringVar(&partFlags.compatibility, "compatibility", "", "Comma-separated compatible models")
	}
	f := partsCreateCmd.Flags()
	f.StringVar(&partFlags.brand, "brand", "", "Existing brand ID")
	f.StringVar(&partFlags.newBrand, "new-brand", "", "Create a brand with this name")
	f.StringVar(&partFlags.category, "category", "", "Existing category ID")
	f.StringVar(&partFlags.newCategory, "new-category", "", "Create a category with this name")
	f.StringVar(&partFlags.originalPrice, "original-price", "", "Original price")
	f.StringVar(&partFlags.weight, "weight", "", "Weight")
	f.StringArrayVar(&partFlags.imageFiles, "image-file", nil, "Image file to upload (repeatable)")
	partsCreateCmd.MarkFlagsMutuallyExclusive("brand", "new-brand")
	partsCreateCmd.MarkFlagsMutuallyExclusive("category", "new-category")

	for _, c := range []*cobra.Command{merchCreateCmd, merchUpdateCmd} {
		c.Flags().StringVar(&merchFlags.name, "name", "", "Item name")
		c.Flags().StringVar(&merchFlags.description, "description", "", "Description")
		c.Flags().StringVar(&merchFlags.price, "price", "", "Price")
		c.Flags().StringVar(&merchFlags.quantity, "quantity", "", "Quantity in stock")
		c.Flags().StringVar(&merchFlags.images, "images", "", "Comma-separated image URLs")
		c.Flags().StringVar(&merchFlags.sizes, "sizes", "", "Comma-separated size options")
		c.Flags().StringVar(&merchFlags.colors, "colors", "", "Comma-separated color options")
	}

	modelsCmd.Flags().StringVar(&modelsMake, "make", "", "Manufacturer name (required)")
	_ = modelsCmd.MarkFlagRequired("make")
}

// confirm asks before a destructive write. Without a terminal --yes is required.
func confirm(question string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, usageError{errors.New("refusing to delete without --yes when not running in a terminal")}
	}
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(question).Affirmative("Delete").Negative("Cancel").Value(&ok),
	)).WithTheme(forms.Theme())
	err := form.Run()
	return ok, err
}

func runDelete(ctx context.Context, w io.Writer, e *env, what string, id api.ID, del func(context.Context, api.ID) error) int {
	if !requireSession(ctx, w, e) {
		return exitSession
	}
	ok, err := confirm(fmt.Sprintf("Delete %s %s?", what, id))
	if err != nil {
		return fail(w, err)
	}
	if !ok {
		fmt.Fprintln(w, "Cancelled")
		return exitOK
	}
	if err := del(ctx, id); err != nil {
		return fail(w, err)
	}
	return done(w, fmt.Sprintf("Deleted %s %s", what, id), nil)
}

func productColumns() []datatable.Column[api.Product] {
	return []datatable.Column[api.Product]{
		{Key: "id", Label: "ID"},
		{Key: "name", Label: "Name"},
		{Key: "type", Label: "Type"},
		{Key: "brand_name", Label: "Brand", HideOnCompact: true},
		{Key: "category_name", Label: "Category", HideOnMedium: true},
		{Key: "price", Label: "Price", Render: textCell(func(p api.Product) string { return pages.Money(p.DisplayPrice()) })},
		{Key: "quantity", Label: "Stock"},
		{Key: "is_active", Label: "Active", HideOnCompact: true, Render: textCell(func(p api.Product) string { return widgets.YesNo(bool(p.IsActive)) })},
	}
}

func runProductsList(ctx context.Context, w io.Writer, e *env) int {
	if !requireSession(ctx, w, e) {
		return exitSession
	}
	typ := strings.ToLower(productsType)
	if typ != "" && typ != api.ProductTypePart && typ != api.ProductTypeMerch {
		return fail(w, usageError{fmt.Errorf("--type must be %s or %s, got %q", api.ProductTypePart, api.ProductTypeMerch, productsType)})
	}
	page, err := e.client.Products.List(ctx, api.ProductFilter{
		Params:     pageParams(e, productsList).params(),
		Type:       typ,
		Search:     productsSearch,
		BrandID:    api.ID(productsBrand),
		CategoryID: api.ID(productsCat),
	})
	if err != nil {
		return fail(w, err)
	}
	return list(w, productColumns(), page.Items, &page.Meta, "products")
}

func runPartCreate(ctx context.Context, w io.Writer, e *env) int {
	in := api.PartInput{
		Name:          strings.TrimSpace(partFlags.name),
		Description:   partFlags.description,
		Images:        api.SplitList(partFlags.images),
		ColorOptions:  api.SplitList(partFlags.colors),
		Compatibility: api.SplitList(partFlags.compatibility),
		ImageFiles:    partFlags.imageFiles,
	}
	var err error
	if in.OriginalPrice, err = optDecimal("original-price", partFlags.originalPrice); err != nil {
		return fail(w, err)
	}
	if in.SellingPrice, err = optDecimal("price", partFlags.price); err != nil {
		return fail(w, err)
	}
	if in.Weight, err = optDecimal("weight", partFlags.weight); err != nil {
		return fail(w, err)
	}
	if in.Quantity, err = optInt("quantity", partFlags.quantity); err != nil {
		return fail(w, err)
	}
	if !requireSession(ctx, w, e) {
		return exitSession
	}

	brand := api.RefChoice{ID: api.ID(partFlags.brand), NewName: strings.TrimSpace(partFlags.newBrand)}
	category := api.RefChoice{ID: api.ID(partFlags.category), NewName: strings.TrimSpace(partFlags.newCategory)}
	part, err := e.client.CreatePart(ctx, brand, category, in)
	if err != nil {
		return fail(w, err)
	}
	return done(w, fmt.Sprintf("Created part %s (%s)", part.Name, part.ID), map[string]any{"part": part})
}

func runPartGet(ctx context.Context, w io.Writer, e *env, id api.ID) int {
	if !requireSession(ctx, w, e) {
		return exitSession
	}
	p, err := e.client.Parts.Get(ctx, id)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, map[string]any{"part": p})
		return exitOK
	}
	printFields(w, []field{
		{"ID", p.ID.String()},
		{"Name", p.Name},
		{"Brand ID", p.BrandID.String()},
		{"Category ID", p.CategoryID.String()},
		{"Description", p.Description},
		{"Original price", pages.Money(p.OriginalPrice)},
		{"Selling price", pages.Money(p.SellingPrice)},
		{"Quantity", pages.Count(p.Quantity)},
		{"Weight", p.Weight.String()},
		{"Colors", p.ColorOptions.String()},
		{"Compatibility", p.Compatibility.String()},
		{"Images", p.Images.String()},
	})
	return exitOK
}

func runPartUpdate(ctx context.Context, w io.Writer, e *env, id api.ID) int {
	price, err := optDecimal("price", partFlags.price)
	if err != nil {
		return fail(w, err)
	}
	qty, err := optInt("quantity", partFlags.quantity)
	if err != nil {
		return fail(w, err)
	}
	if !requireSession(ctx, w, e) {
		return exitSession
	}

	cur, err := e.client.Parts.Get(ctx, id)
	if err != nil {
		return fail(w, err)
	}
	in := api.PartUpdate{
		Name:          keep(partFlags.name, cur.Name),
		Description:   keep(partFlags.description, cur.Description),
		SellingPrice:  price,
		Quantity:      qty,
		Images:        keepList(partFlags.images, cur.Images),
		ColorOptions:  keepList(partFlags.colors, cur.ColorOptions),
		Compatibility: keepList(partFlags.compatibility, cur.Compatibility),
	}
	if in.SellingPrice == nil {
		in.SellingPrice = ptr(cur.SellingPrice)
	}
	if in.Quantity == nil {
		in.Quantity = ptr(cur.Quantity)
	}
	if err := e.client.Parts.Update(ctx, id, in); err != nil {
		return fail(w, err)
	}
	return done(w, fmt.Sprintf("Updated part %s", id), nil)
}

func keep(flag, current string) string {
	if v := strings.TrimSpace(flag); v != "" {
		return v
	}
	return current
}

func keepList(flag string, current api.StringList) []string {
	if strings.TrimSpace(flag) != "" {
		return api.SplitList(flag)
	}
	return current
}

func ptr[T any](v T) *T {
	return &v
}

func merchInput() (api.MerchandiseInput, error) {
	in := api.MerchandiseInput{
		Name:         strings.TrimSpace(merchFlags.name),
		Description:  merchFlags.description,
		Images:       api.SplitList(merchFlags.images),
		SizeOptions:  api.SplitList(merchFlags.sizes),
		ColorOptions: api.SplitList(merchFlags.colors),
	}
	var err error
	if in.Price, err = optDecimal("price", merchFlags.price); err != nil {
		return in, err
	}
	in.Quantity, err = optInt("quantity", merchFlags.quantity)
	return in, err
}

func runMerchCreate(ctx context.Context, w io.Writer, e *env) int {
	in, err := merchInput()
	if err != nil {
		return fail(w, err)
	}
	if !requireSession(ctx, w, e) {
		return exitSession
	}
	m, err := e.client.Merchandise.Create(ctx, in)
	if err != nil {
		return fail(w, err)
	}
	return done(w, fmt.Sprintf("Created merchandise %s (%s)", m.Name, m.ID), map[string]any{"merchandise": m})
}

func runMerchGet(ctx context.Context, w io.Writer, e *env, id api.ID) int {
	if !requireSession(ctx, w, e) {
		return exitSession
	}
	m, err := e.client.Merchandise.Get(ctx, id)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, map[string]any{"merchandise": m})
		return exitOK
	}
	printFields(w, []field{
		{"ID", m.ID.String()},
		{"Name", m.Name},
		{"Description", m.Description},
		{"Price", pages.Money(m.Price)},
		{"Quantity", pages.Count(m.Quantity)},
		{"Sizes", m.SizeOptions.String()},
		{"Colors", m.ColorOptions.String()},
		{"Images", m.Images.String()},
	})
	return exitOK
}

func runMerchUpdate(ctx context.Context, w io.Writer, e *env, id api.ID) int {
	in, err := merchInput()
	if err != nil {
		return fail(w, err)
	}
	if !requireSession(ctx, w, e) {
		return exitSession
	}
	cur, err := e.client.Merchandise.Get(ctx, id)
	if err != nil {
		return fail(w, err)
	}
	in.Name = keep(in.Name, cur.Name)
	in.Description = keep(in.Description, cur.Description)
	in.Images = keepList(merchFlags.images, cur.Images)
	in.SizeOptions = keepList(merchFlags.sizes, cur.SizeOptions)
	in.ColorOptions = keepList(merchFlags.colors, cur.ColorOptions)
	if in.Price == nil {
		in.Price = ptr(cur.Price)
	}
	if in.Quantity == nil {
		in.Quantity = ptr(cur.Quantity)
	}
	if err := e.client.Merchandise.Update(ctx, id, in); err != nil {
		return fail(w, err)
	}
	return done(w, fmt.Sprintf("Updated merchandise %s", id), nil)
}

func runModels(ctx context.Context, w io.Writer, e *env) int {
	if !requireSession(ctx, w, e) {
		return exitSession
	}
	models, err := e.client.Models.ByMake(ctx, strings.TrimSpace(modelsMake))
	if err != nil {
		return fail(w, err)
	}
	return list(w, []datatable.Column[api.Model]{
		{Key: "id", Label: "ID"},
		{Key: "name", Label: "Model"},
		{Key: "make_name", Label: "Make"},
		{Key: "year", Label: "Year"},
	}, models, nil, "models")
}

// brandFlags are per-command so brands and manufacturers do not share state
type brandFlags struct {
	name, description string
	logoURL, logoFile string
}

func brandCommand(use, short, singular string, svc func(*api.Client) *api.BrandsService) *cobra.Command {
	var f brandFlags
	parent := &cobra.Command{Use: use, Short: short}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List " + use,
		Args:  cobra.NoArgs,
		Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
			if !requireSession(ctx, w, e) {
				return exitSession
			}
			items, err := svc(e.client).List(ctx)
			if err != nil {
				return fail(w, err)
			}
			return list(w, brandColumns(), items, nil, use)
		}),
	}
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + singular,
		Args:  cobra.NoArgs,
		Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
			if !requireSession(ctx, w, e) {
				return exitSession
			}
			b, err := svc(e.client).Create(ctx, f.input())
			if err != nil {
				return fail(w, err)
			}
			return done(w, fmt.Sprintf("Created %s %s (%s)", singular, b.Name, b.ID), map[string]any{singular: b})
		}),
	}
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a " + singular + "; an omitted name keeps the current one",
		Args:  cobra.ExactArgs(1),
		Run: run(func(ctx context.Context, w io.Writer, e *env, args []string) int {
			if !requireSession(ctx, w, e) {
				return exitSession
			}
			if err := svc(e.client).Update(ctx, idArg(args), f.input()); err != nil {
				return fail(w, err)
			}
			return done(w, fmt.Sprintf("Updated %s %s", singular, idArg(args)), nil)
		}),
	}
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + singular,
		Args:  cobra.ExactArgs(1),
		Run: run(func(ctx context.Context, w io.Writer, e *env, args []string) int {
			return runDelete(ctx, w, e, singular, idArg(args), svc(e.client).Delete)
		}),
	}

	for _, c := range []*cobra.Command{createCmd, updateCmd} {
		c.Flags().StringVar(&f.name, "name", "", "Name")
		c.Flags().StringVar(&f.description, "description", "", "Description")
		c.Flags().StringVar(&f.logoURL, "logo-url", "", "Logo URL")
		c.Flags().StringVar(&f.logoFile, "logo-file", "", "Logo image to upload")
	}
	parent.AddCommand(listCmd, createCmd, updateCmd, deleteCmd)
	return parent
}

func (f brandFlags) input() api.BrandInput {
	return api.BrandInput{
		Name:        strings.TrimSpace(f.name),
		Description: f.description,
		LogoURL:     strings.TrimSpace(f.logoURL),
		LogoFile:    f.logoFile,
	}
}

func brandColumns() []datatable.Column[api.Brand] {
	return []datatable.Column[api.Brand]{
		{Key: "id", Label: "ID"},
		{Key: "name", Label: "Name"},
		{Key: "description", Label: "Description", HideOnCompact: true, MaxWidth: 50},
		{Key: "created_at", Label: "Created", HideOnMedium: true, Render: dateCell(func(b api.Brand) api.Timestamp { return b.CreatedAt })},
	}
}

func categoriesCommand() *cobra.Command {
	var name, description, parentID, imageURL string
	input := func() api.CategoryInput {
		return api.CategoryInput{
			Name:        strings.TrimSpace(name),
			Description: description,
			ParentID:    api.ID(strings.TrimSpace(parentID)),
			ImageURL:    strings.TrimSpace(imageURL),
		}
	}
	parent := &cobra.Command{Use: "categories", Short: "Product categories"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
			if !requireSession(ctx, w, e) {
				return exitSession
			}
			items, err := e.client.Categories.List(ctx)
			if err != nil {
				return fail(w, err)
			}
			return list(w, []datatable.Column[api.Category]{
				{Key: "id", Label: "ID"},
				{Key: "name", Label: "Name"},
				{Key: "parent_id", Label: "Parent", HideOnCompact: true},
				{Key: "description", Label: "Description", HideOnCompact: true, MaxWidth: 50},
				{Key: "created_at", Label: "Created", HideOnMedium: true, Render: dateCell(func(c api.Category) api.Timestamp { return c.CreatedAt })},
			}, items, nil, "categories")
		}),
	}
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
			if !requireSession(ctx, w, e) {
				return exitSession
			}
			c, err := e.client.Categories.Create(ctx, input())
			if err != nil {
				return fail(w, err)
			}
			return done(w, fmt.Sprintf("Created category %s (%s)", c.Name, c.ID), map[string]any{"category": c})
		}),
	}
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a category; an omitted name keeps the current one",
		Args:  cobra.ExactArgs(1),
		Run: run(func(ctx context.Context, w io.Writer, e *env, args []string) int {
			if !requireSession(ctx, w, e) {
				return exitSession
			}
			if err := e.client.Categories.Update(ctx, idArg(args), input()); err != nil {
				return fail(w, err)
			}
			return done(w, fmt.Sprintf("Updated category %s", idArg(args)), nil)
		}),
	}
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		Run: run(func(ctx context.Context, w io.Writer, e *env, args []string) int {
			return runDelete(ctx, w, e, "category", idArg(args), e.client.Categories.Delete)
		}),
	}

	for _, c := range []*cobra.Command{createCmd, updateCmd} {
		c.Flags().StringVar(&name, "name", "", "Name")
		c.Flags().StringVar(&description, "description", "", "Description")
		c.Flags().StringVar(&parentID, "parent", "", "Parent category ID")
		c.Flags().StringVar(&imageURL, "image-url", "", "Image URL")
	}
	parent.AddCommand(listCmd, createCmd, updateCmd, deleteCmd)
	return parent
}
