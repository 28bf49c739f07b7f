// ABOUTME: Feedback, ambassador, and partner commands
// ABOUTME: Partner edits start from the stored record so the logo is kept

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/markalston/moto-admin/internal/api"
	"github.com/markalston/moto-admin/internal/gateway"
	"github.com/markalston/moto-admin/internal/tui/datatable"
	"github.com/markalston/moto-admin/internal/tui/widgets"
	"github.com/spf13/cobra"
)

var (
	feedbackList   listFlags
	feedbackType   string
	feedbackStatus string

	ambassadorsList   listFlags
	ambassadorsFilter string
	ambassadorStatus  string
	ambassadorNotes   string
)

var partnerFlags struct {
	name, description string
	aboutPage         string
	website, email    string
	active            string
	logoFile          string
}

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Customer feedback",
}

var feedbackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List feedback",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		return runFeedbackList(ctx, w, e)
	}),
}

var feedbackUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Record triage progress on a feedback entry",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, e *env, args []string) int {
		if !requireSession(ctx, w, e) {
			return exitSession
		}
		id := idArg(args)
		in := api.FeedbackUpdate{Status: strings.TrimSpace(feedbackStatus)}
		if err := e.client.Feedback.Update(ctx, id, in); err != nil {
			return fail(w, err)
		}
		return done(w, fmt.Sprintf("Feedback %s marked %s", id, in.Status), nil)
	}),
}

var ambassadorsCmd = &cobra.Command{
	Use:   "ambassadors",
	Short: "Brand ambassador applications",
}

var ambassadorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		return runAmbassadorsList(ctx, w, e)
	}),
}

var ambassadorsStatusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Approve or reject an application",
	Long: fmt.Sprintf(`Approve or reject an application.

Valid statuses: %s`, strings.Join(api.AmbassadorStatuses, ", ")),
	Args: cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, e *env, args []string) int {
		if !requireSession(ctx, w, e) {
			return exitSession
		}
		id := idArg(args)
		in := api.AmbassadorReview{Status: strings.ToLower(strings.TrimSpace(ambassadorStatus)), AdminNotes: ambassadorNotes}
		if err := e.client.Ambassadors.UpdateStatus(ctx, id, in); err != nil {
			return fail(w, err)
		}
		return done(w, fmt.Sprintf("Ambassador application %s is now %s", id, in.Status), nil)
	}),
}

var partnersCmd = &cobra.Command{
	Use:   "partners",
	Short: "Business partners shown on the storefront",
}

var partnersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List partners",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		if !requireSession(ctx, w, e) {
			return exitSession
		}
		items, err := e.client.Partners.List(ctx)
		if err != nil {
			return fail(w, err)
		}
		return list(w, partnerColumns(), items, nil, "partners")
	}),
}

var partnersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a partner",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		in, err := partnerInput(api.PartnerInput{IsActive: true})
		if err != nil {
			return fail(w, err)
		}
		if !requireSession(ctx, w, e) {
			return exitSession
		}
		p, err := e.client.Partners.Create(ctx, in)
		if err != nil {
			return fail(w, err)
		}
		return done(w, fmt.Sprintf("Created partner %s (%s)", p.Name, p.ID), map[string]any{"partner": p})
	}),
}

var partnersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a partner; flags not given keep their current values",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, e *env, args []string) int {
		return runPartnerUpdate(ctx, w, e, idArg(args))
	}),
}

var partnersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a partner",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, e *env, args []string) int {
		return runDelete(ctx, w, e, "partner", idArg(args), e.client.Partners.Delete)
	}),
}

func init() {
	rootCmd.AddCommand(feedbackCmd, ambassadorsCmd, partnersCmd)
	feedbackCmd.AddCommand(feedbackListCmd, feedbackUpdateCmd)
	ambassadorsCmd.AddCommand(ambassadorsListCmd, ambassadorsStatusCmd)
	partnersCmd.AddCommand(partnersListCmd, partnersCreateCmd, partnersUpdateCmd, partnersDeleteCmd)

	addListFlags(feedbackListCmd, &feedbackList)
	feedbackListCmd.Flags().StringVar(&feedbackType, "type", "", "Only this feedback type")
	feedbackUpdateCmd.Flags().StringVar(&feedbackStatus, "status", "", "New status, e.g. reviewed (required)")
	_ = feedbackUpdateCmd.MarkFlagRequired("status")

	addListFlags(ambassadorsListCmd, &ambassadorsList)
	ambassadorsListCmd.Flags().StringVar(&ambassadorsFilter, "status", "all", "Only this status, or all")
	ambassadorsStatusCmd.Flags().StringVar(&ambassadorStatus, "status", "", "New status (required)")
	ambassadorsStatusCmd.Flags().StringVar(&ambassadorNotes, "notes", "", "Admin notes")
	_ = ambassadorsStatusCmd.MarkFlagRequired("status")

	for _, c := range []*cobra.Command{partnersCreateCmd, partnersUpdateCmd} {
		c.Flags().StringVar(&partnerFlags.name, "name", "", "Partner name")
		c.Flags().StringVar(&partnerFlags.description, "description", "", "Description")
		c.Flags().StringVar(&partnerFlags.aboutPage, "about", "", "About page text")
		c.Flags().StringVar(&partnerFlags.website, "website", "", "Website URL")
		c.Flags().StringVar(&partnerFlags.email, "email", "", "Contact email")
		c.Flags().StringVar(&partnerFlags.active, "active", "", "Show on the storefront (true or false)")
		c.Flags().StringVar(&partnerFlags.logoFile, "logo-file", "", "Logo image to upload")
	}
}

func feedbackColumns() []datatable.Column[api.Feedback] {
	return []datatable.Column[api.Feedback]{
		{Key: "id", Label: "ID"},
		{Key: "full_name", Label: "Name"},
		{Key: "email", Label: "Email", HideOnCompact: true},
		{Key: "feedback_type", Label: "Type"},
		{Key: "status", Label: "Status", Render: statusCell(func(f api.Feedback) string { return f.Status })},
		{Key: "message", Label: "Message", MaxWidth: 60},
		{Key: "created_at", Label: "Received", HideOnMedium: true, Render: dateCell(func(f api.Feedback) api.Timestamp { return f.CreatedAt })},
	}
}

func runFeedbackList(ctx context.Context, w io.Writer, e *env) int {
	if !requireSession(ctx, w, e) {
		return exitSession
	}
	page, err := e.client.Feedback.List(ctx, api.FeedbackFilter{
		Params:       pageParams(e, feedbackList).params(),
		FeedbackType: feedbackType,
	})
	if err != nil {
		return fail(w, err)
	}
	return list(w, feedbackColumns(), page.Items, &page.Meta, "feedback")
}

func ambassadorColumns() []datatable.Column[api.Ambassador] {
	return []datatable.Column[api.Ambassador]{
		{Key: "id", Label: "ID"},
		{Key: "full_name", Label: "Name"},
		{Key: "email", Label: "Email"},
		{Key: "phone", Label: "Phone", HideOnMedium: true},
		{Key: "status", Label: "Status", Render: statusCell(func(a api.Ambassador) string { return a.Status })},
		{Key: "created_at", Label: "Applied", HideOnCompact: true, Render: dateCell(func(a api.Ambassador) api.Timestamp { return a.CreatedAt })},
	}
}

func runAmbassadorsList(ctx context.Context, w io.Writer, e *env) int {
	if !requireSession(ctx, w, e) {
		return exitSession
	}
	page, err := e.client.Ambassadors.List(ctx, api.AmbassadorFilter{
		Params: pageParams(e, ambassadorsList).params(),
		Status: strings.ToLower(ambassadorsFilter),
	})
	if err != nil {
		return fail(w, err)
	}
	return list(w, ambassadorColumns(), page.Items, &page.Meta, "ambassadors")
}

func partnerColumns() []datatable.Column[api.Partner] {
	return []datatable.Column[api.Partner]{
		{Key: "id", Label: "ID"},
		{Key: "name", Label: "Name"},
		{Key: "website_url", Label: "Website", HideOnCompact: true},
		{Key: "contact_email", Label: "Contact", HideOnMedium: true},
		{Key: "logo_url", Label: "Logo", HideOnMedium: true, Render: textCell(func(p api.Partner) string { return widgets.YesNo(p.LogoURL != "") })},
		{Key: "is_active", Label: "Active", Render: textCell(func(p api.Partner) string { return widgets.YesNo(bool(p.IsActive)) })},
	}
}

// partnerInput overlays the given flags on base
func partnerInput(base api.PartnerInput) (api.PartnerInput, error) {
	in := base
	in.Name = keep(partnerFlags.name, in.Name)
	in.Description = keep(partnerFlags.description, in.Description)
	in.AboutPage = keep(partnerFlags.aboutPage, in.AboutPage)
	in.WebsiteURL = keep(partnerFlags.website, in.WebsiteURL)
	in.ContactEmail = keep(partnerFlags.email, in.ContactEmail)
	in.LogoFile = strings.TrimSpace(partnerFlags.logoFile)
	switch strings.ToLower(strings.TrimSpace(partnerFlags.active)) {
	case "":
	case "true", "yes", "1":
		in.IsActive = true
	case "false", "no", "0":
		in.IsActive = false
	default:
		return in, usageError{fmt.Errorf("--active must be true or false, got %q", partnerFlags.active)}
	}
	return in, nil
}

func runPartnerUpdate(ctx context.Context, w io.Writer, e *env, id api.ID) int {
	if !requireSession(ctx, w, e) {
		return exitSession
	}
	partners, err := e.client.Partners.List(ctx)
	if err != nil {
		return fail(w, err)
	}
	var cur *api.Partner
	for i := range partners {
		if partners[i].ID == id {
			cur = &partners[i]
			break
		}
	}
	if cur == nil {
		return fail(w, &gateway.Error{Status: 404, Message: fmt.Sprintf("partner %s not found", id)})
	}

	in, err := partnerInput(api.EditOf(*cur))
	if err != nil {
		return fail(w, err)
	}
	if err := e.client.Partners.Update(ctx, id, in); err != nil {
		return fail(w, err)
	}
	return done(w, fmt.Sprintf("Updated partner %s", id), nil)
}
