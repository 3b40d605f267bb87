package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/outreach-cli/internal/outreach"
)

var deepdiveCmd = &cobra.Command{
	Use:   "deepdive",
	Short: "Draft an opener grounded in the lead's website",
	Long: `Fetches the company homepage, pulls its title and first meaningful paragraph,
and asks Claude for a hyper-personalized opener. If the site cannot be read
the opener is written from the company details alone.`,
	RunE: runDeepDive,
}

func init() {
	f := deepdiveCmd.Flags()
	f.String("company", "", "company name")
	f.String("industry", "", "company industry")
	f.String("location", "", "company location")
	f.String("url", "", "company website")
	f.String("sales-goal", "", "product or goal to frame the opener (default from config)")
	for _, name := range []string{"company", "industry", "location", "url"} {
		_ = deepdiveCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(deepdiveCmd)
}

func runDeepDive(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("deepdive"); err != nil {
		return err
	}

	in := outreach.DeepDiveInput{SalesGoal: salesGoal(cmd)}
	in.CompanyName, _ = cmd.Flags().GetString("company")
	in.Industry, _ = cmd.Flags().GetString("industry")
	in.Location, _ = cmd.Flags().GetString("location")
	in.WebsiteURL, _ = cmd.Flags().GetString("url")

	opener, err := newGenerator().DeepDiveOpener(ctx, in)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), opener)
	return nil
}
