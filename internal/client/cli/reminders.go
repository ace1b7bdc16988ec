package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/medreminder/internal/client/models"
)

func (a *App) Reminders(ctx context.Context) error {
	list, err := a.reminderService.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No reminders")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tSTATE\tTITLE")
	now := a.now()
	for _, r := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, formatTime(r.ReminderTime), reminderState(r, now), r.Title)
	}
	return tw.Flush()
}

func (a *App) ShowReminder(ctx context.Context, args []string) error {
	id, err := idArg(args, "reminder <id>")
	if err != nil {
		return err
	}
	r, err := a.reminderService.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printReminder(r)
	return nil
}

func (a *App) AddReminder(ctx context.Context) error {
	in, err := a.readReminderInput(nil)
	if err != nil {
		return err
	}
	r, err := a.reminderService.Create(ctx, *in)
	if err != nil {
		return err
	}
	if r == nil {
		fmt.Fprintln(a.out, "Reminder created")
		return nil
	}
	fmt.Fprintf(a.out, "Reminder %d created\n", r.ID)
	return nil
}

// EditReminder shows the current values as defaults; an empty answer keeps them.
func (a *App) EditReminder(ctx context.Context, args []string) error {
	id, err := idArg(args, "editreminder <id>")
	if err != nil {
		return err
	}
	cur, err := a.reminderService.Get(ctx, id)
	if err != nil {
		return err
	}
	in, err := a.readReminderInput(cur)
	if err != nil {
		return err
	}
	if _, err := a.reminderService.Update(ctx, id, *in); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Reminder %d updated\n", id)
	return nil
}

func (a *App) CompleteReminder(ctx context.Context, args []string) error {
	id, err := idArg(args, "complete <id>")
	if err != nil {
		return err
	}
	if _, err := a.reminderService.Complete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Reminder %d completed\n", id)
	return nil
}

func (a *App) DeleteReminder(ctx context.Context, args []string) error {
	id, err := idArg(args, "deletereminder <id>")
	if err != nil {
		return err
	}
	if err := a.reminderService.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Reminder %d deleted\n", id)
	return nil
}

func (a *App) readReminderInput(cur *models.Reminder) (*models.ReminderInput, error) {
	var in models.ReminderInput
	if cur != nil {
		in = models.ReminderInput{
			Title:        cur.Title,
			Description:  cur.Description,
			ReminderTime: models.NewTimestamp(cur.ReminderTime),
			IsCompleted:  cur.IsCompleted,
		}
		if cur.CompletedAt != nil {
			ts := models.NewTimestamp(*cur.CompletedAt)
			in.CompletedAt = &ts
		}
	}

	title, err := getSimpleText(a.reader, withDefault("Title", in.Title), a.out)
	if err != nil {
		return nil, err
	}
	if title != "" {
		in.Title = title
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title", ErrMissingArgument)
	}

	desc, err := GetMultiline(a.reader, withDefault("Description", in.Description), a.out)
	if err != nil {
		return nil, err
	}
	if desc != "" {
		in.Description = desc
	}

	var curWhen string
	if cur != nil {
		curWhen = cur.ReminderTime.Local().Format(InputTimeLayout)
	}
	when, err := getSimpleText(a.reader, withDefault("When ("+InputTimeLayout+")", curWhen), a.out)
	if err != nil {
		return nil, err
	}
	if when != "" {
		t, err := ParseLocalTime(when, time.Local)
		if err != nil {
			return nil, err
		}
		in.ReminderTime = models.NewTimestamp(t)
	}
	if in.ReminderTime.IsZero() {
		return nil, fmt.Errorf("%w: reminder time", ErrMissingArgument)
	}

	return &in, nil
}

func (a *App) printReminder(r *models.Reminder) {
	fmt.Fprintf(a.out, "#%d %s\n", r.ID, r.Title)
	fmt.Fprintf(a.out, "When:  %s\n", formatTime(r.ReminderTime))
	fmt.Fprintf(a.out, "State: %s\n", reminderState(*r, a.now()))
	if r.CompletedAt != nil {
		fmt.Fprintf(a.out, "Done:  %s\n", formatTime(*r.CompletedAt))
	}
	if r.Description != "" {
		fmt.Fprintln(a.out, strings.TrimSpace(r.Description))
	}
}

func reminderState(r models.Reminder, now time.Time) string {
	switch {
	case r.IsCompleted:
		return "done"
	case r.Due(now):
		return "pending"
	default:
		return "overdue"
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(InputTimeLayout)
}

func withDefault(prompt, def string) string {
	if def == "" {
		return prompt
	}
	return fmt.Sprintf("%s [%s]", prompt, def)
}
