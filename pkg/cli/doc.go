/*
Package cli provides command-line helpers for the tabula command.

Output Formatting:

Listings are rendered as an aligned text table, JSON or CSV:

	table := cli.Table{Headers: []string{"ID", "NAME"}}
	table.Append(doc.ID, doc.Name)
	formatter, err := cli.NewFormatter(cli.FormatText)
	if err != nil {
		return err
	}
	return formatter.FormatTo(os.Stdout, table)

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler()
	defer stop()

Exit Codes:

ExitCode maps command errors to process exit statuses.
*/
package cli
