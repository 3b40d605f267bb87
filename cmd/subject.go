package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/outreach"
)

var subjectCmd = &cobra.Command{
	Use:   "subject",
	Short: "Draft a subject line for an opener",
	Long: `Asks Claude for a subject line that fits an already written opener. Falls back
to "Following up with <company>" when generation fails. With --email the
prefilled mailto: link is printed as well.`,
	RunE: runSubject,
}

func init() {
	f := subjectCmd.Flags()
	f.String("company", "", "company name")
	f.String("industry", "", "company industry")
	f.String("opener", "", "opening line of the email body")
	f.String("email", "", "recipient address for the mailto: link")
	f.String("sales-goal", "", "product or goal to frame the subject (default from config)")
	for _, name := range []string{"company", "industry", "opener"} {
		_ = subjectCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(subjectCmd)
}

func runSubject(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("subject"); err != nil {
		return err
	}

	lead := model.Lead{OpenerStatus: model.OpenerGenerated}
	lead.CompanyName, _ = cmd.Flags().GetString("company")
	lead.Industry, _ = cmd.Flags().GetString("industry")
	lead.AIOpener, _ = cmd.Flags().GetString("opener")
	lead.OwnerEmail, _ = cmd.Flags().GetString("email")

	subject := newBatch(newGenerator()).GenerateSubject(ctx, &lead, salesGoal(cmd))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, subject)
	if lead.OwnerEmail != "" {
		fmt.Fprintln(out, outreach.MailtoURL(lead, subject))
	}
	return nil
}
