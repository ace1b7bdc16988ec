package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/medreminder/internal/client/models"
)

func (a *App) Pharmacies(ctx context.Context) error {
	list, err := a.pharmacyService.List(ctx)
	if err != nil {
		return err
	}
	return printPharmacies(a.out, list, false)
}

// Nearby takes the coordinates as arguments or prompts for them.
func (a *App) Nearby(ctx context.Context, args []string) error {
	var latText, longText string
	if len(args) >= 2 {
		latText, longText = args[0], args[1]
	} else {
		var err error
		if latText, err = getSimpleText(a.reader, "Latitude", a.out); err != nil {
			return err
		}
		if longText, err = getSimpleText(a.reader, "Longitude", a.out); err != nil {
			return err
		}
	}

	lat, err := floatArg(latText)
	if err != nil {
		return err
	}
	long, err := floatArg(longText)
	if err != nil {
		return err
	}

	list, err := a.pharmacyService.Nearby(ctx, lat, long)
	if err != nil {
		return err
	}
	return printPharmacies(a.out, list, true)
}

func (a *App) AddPharmacy(ctx context.Context) error {
	var in models.PharmacyInput

	texts := []struct {
		dst    *string
		prompt string
	}{
		{&in.Name, "Name"},
		{&in.Address, "Address"},
		{&in.City, "City"},
		{&in.State, "State"},
		{&in.Country, "Country"},
		{&in.Phone, "Phone"},
	}
	for _, t := range texts {
		v, err := getSimpleText(a.reader, t.prompt, a.out)
		if err != nil {
			return err
		}
		*t.dst = v
	}
	if in.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingArgument)
	}

	for _, c := range []struct {
		dst    *float64
		prompt string
	}{
		{&in.Latitude, "Latitude"},
		{&in.Longitude, "Longitude"},
	} {
		v, err := getSimpleText(a.reader, c.prompt, a.out)
		if err != nil {
			return err
		}
		if *c.dst, err = floatArg(v); err != nil {
			return err
		}
	}

	p, err := a.pharmacyService.Create(ctx, in)
	if err != nil {
		return err
	}
	if p == nil {
		fmt.Fprintln(a.out, "Pharmacy created")
		return nil
	}
	fmt.Fprintf(a.out, "Pharmacy %d created\n", p.ID)
	return nil
}

func printPharmacies(w io.Writer, list []models.Pharmacy, withDistance bool) error {
	if len(list) == 0 {
		fmt.Fprintln(w, "No pharmacies")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if withDistance {
		fmt.Fprintln(tw, "ID\tKM\tNAME\tADDRESS\tPHONE")
	} else {
		fmt.Fprintln(tw, "ID\tNAME\tADDRESS\tPHONE")
	}
	for _, p := range list {
		addr := p.Address
		if p.City != "" {
			addr += ", " + p.City
		}
		if withDistance {
			fmt.Fprintf(tw, "%d\t%.1f\t%s\t%s\t%s\n", p.ID, p.DistanceKM, p.Name, addr, p.Phone)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Name, addr, p.Phone)
		}
	}
	return tw.Flush()
}
