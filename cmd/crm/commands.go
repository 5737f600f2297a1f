package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spachava753/crm/config"
	"github.com/spachava753/crm/contacts"
	"github.com/spachava753/crm/mail"
	"github.com/spachava753/crm/views"
)

// execute runs root and always releases what the app opened, including when
// the command or its setup failed.
func execute(root *cobra.Command, a *app) error {
	err := root.Execute()
	return errors.Join(err, a.close())
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:           "crm",
		Short:         "Manage contacts, tags and simulated emails on this device",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultConfigPath, "path to the TOML config file")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (overrides the configured storage)")

	root.AddCommand(
		newAddCmd(a),
		newEditCmd(a),
		newRemoveCmd(a),
		newShowCmd(a),
		newListCmd(a),
		newTagsCmd(a),
		newByTagCmd(a),
		newStatsCmd(a),
		newEmailCmd(a),
	)
	return root, a
}

func newAddCmd(a *app) *cobra.Command {
	var draft contacts.Draft
	var tags string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft.Tags = contacts.ParseTags(tags)
			if err := draft.Validate(); err != nil {
				return fmt.Errorf("first name and email are required: %w", err)
			}
			created, err := a.repo.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contact added: %s\n", created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&draft.FirstName, "first", "", "first name (required)")
	cmd.Flags().StringVar(&draft.LastName, "last", "", "last name")
	cmd.Flags().StringVar(&draft.Email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags, e.g. \"vip, lead\"")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var first, last, email, tags string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a contact; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var changes contacts.Changes
			flags := cmd.Flags()
			if flags.Changed("first") {
				changes.FirstName = &first
			}
			if flags.Changed("last") {
				changes.LastName = &last
			}
			if flags.Changed("email") {
				changes.Email = &email
			}
			if flags.Changed("tags") {
				parsed := contacts.ParseTags(tags)
				changes.Tags = &parsed
			}
			if changes.IsEmpty() {
				return fmt.Errorf("nothing to change: pass at least one of --first, --last, --email, --tags")
			}
			if err := changes.Validate(); err != nil {
				return fmt.Errorf("first name and email are required: %w", err)
			}

			if _, err := a.repo.Update(cmd.Context(), args[0], changes); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Contact updated.")
			return nil
		},
	}
	cmd.Flags().StringVar(&first, "first", "", "first name")
	cmd.Flags().StringVar(&last, "last", "", "last name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags; replaces all tags")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a contact",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.repo.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Contact deleted.")
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contact, err := a.repo.Get(args[0])
			if err != nil {
				return err
			}
			printContact(cmd.OutOrStdout(), contact)
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var filter views.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts, optionally filtered by text and tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := a.repo.List()
			if err != nil {
				return err
			}
			printTable(cmd, views.Apply(snapshot, filter))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter.Query, "search", "s", "", "match first name, last name or email (case-insensitive)")
	cmd.Flags().StringVarP(&filter.Tag, "tag", "t", views.TagAll, "only contacts with this exact tag")
	return cmd
}

func newTagsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List all tags in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tags, err := a.repo.AllTags()
			if err != nil {
				return err
			}
			for _, tag := range tags {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}

func newByTagCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "by-tag <tag>",
		Short: "List contacts carrying a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matched, err := a.repo.ContactsByTag(args[0])
			if err != nil {
				return err
			}
			printTable(cmd, matched)
			return nil
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard: totals and contacts per tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := a.repo.List()
			if err != nil {
				return err
			}
			summary := views.Summarize(snapshot)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Contacts:    %d\n", summary.TotalContacts)
			fmt.Fprintf(out, "Unique tags: %d\n", summary.UniqueTags)
			switch {
			case summary.TotalContacts == 0:
				fmt.Fprintln(out, "No contacts yet. Add some to see statistics.")
			case len(summary.PerTag) == 0:
				fmt.Fprintln(out, "Add tags to your contacts to see statistics.")
			default:
				fmt.Fprintln(out, "\nContacts per tag:")
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				for _, bar := range summary.PerTag {
					fmt.Fprintf(tw, "  %s\t%d\n", bar.Tag, bar.Count)
				}
				tw.Flush()
			}
			return nil
		},
	}
}

func newEmailCmd(a *app) *cobra.Command {
	var subject, body string

	cmd := &cobra.Command{
		Use:   "email <id>",
		Short: "Send a simulated email to a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contact, err := a.repo.Get(args[0])
			if err != nil {
				return err
			}
			out, err := a.mailer.Send(cmd.Context(), mail.SendInput{To: contact, Subject: subject, Body: body})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Email sent (simulated)\nTo: %s\nSubject: %s\n", out.Recipient, subject)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "subject line (required)")
	cmd.Flags().StringVar(&body, "body", "", "message body (required)")
	return cmd
}

func printTable(cmd *cobra.Command, list []contacts.Contact) {
	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No contacts found.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFIRST NAME\tLAST NAME\tEMAIL\tTAGS")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.FirstName, c.LastName, c.Email, contacts.FormatTags(c.Tags))
	}
	tw.Flush()
}
