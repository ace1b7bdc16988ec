package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
)

// Files lists the account's documents, optionally only those of one reminder.
func (a *App) Files(ctx context.Context, args []string) error {
	var reminderID *int64
	if len(args) > 0 {
		id, err := idArg(args, "files [reminderId]")
		if err != nil {
			return err
		}
		reminderID = &id
	}

	list, err := a.fileService.List(ctx, reminderID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No files")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tREMINDER\tNAME\tTYPE\tSIZE")
	for _, f := range list {
		rem := "-"
		if f.ReminderID != nil {
			rem = fmt.Sprint(*f.ReminderID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", f.ID, rem, f.FileName, f.MimeType, f.SizeBytes)
	}
	return tw.Flush()
}

// Upload sends a prescription document and files it under a new reminder.
func (a *App) Upload(ctx context.Context, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		var err error
		if path, err = getSimpleText(a.reader, "Path to the prescription", a.out); err != nil {
			return err
		}
	}
	if path == "" {
		return fmt.Errorf("%w, usage: upload <path>", ErrMissingArgument)
	}

	res, err := a.prescriptionService.Upload(ctx, path)
	if err != nil {
		return err
	}

	if res.File != nil {
		fmt.Fprintf(a.out, "Uploaded %s as file %d\n", res.File.FileName, res.File.ID)
	} else {
		fmt.Fprintf(a.out, "Uploaded %s\n", path)
	}
	if res.ReminderID != nil {
		fmt.Fprintf(a.out, "Linked to reminder %d\n", *res.ReminderID)
	} else {
		fmt.Fprintln(a.out, "No reminder was created for it")
	}
	if res.Media != nil {
		fmt.Fprintf(a.out, "Stored at %s\n", res.Media.URL)
	}
	return nil
}
