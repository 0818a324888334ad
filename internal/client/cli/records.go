package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"motoreg/internal/server/services"
)

// promptID asks for a record id and parses it.
func (a *App) promptID(ctx context.Context) (int64, error) {
	text, err := getSimpleText(a.reader, "Enter id", os.Stdout)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be an integer")
	}
	return id, nil
}

// promptFields asks for every record field in order and returns the flat
// field map the server validates.
func (a *App) promptFields(ctx context.Context) (map[string]string, error) {
	fields := map[string]string{}
	for _, k := range services.RequiredFields {
		v, err := getSimpleText(a.reader, "Enter "+k, os.Stdout)
		if err != nil {
			return nil, err
		}
		fields[k] = v
	}
	return fields, nil
}

// List fetches and prints all records, with an optional search filter.
func (a *App) List(ctx context.Context) error {
	search, err := getSimpleText(a.reader, "Search (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	list, err := a.api.ListMotorcycles(ctx, search)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No motorcycles found")
		return nil
	}
	for _, m := range list {
		fmt.Printf("%d: %s %s (%d, %dcc, %s)\n", m.ID, m.Make, m.Model, m.Year, m.EngineCC, m.Color)
	}
	return nil
}

// Show prints a single record by id.
func (a *App) Show(ctx context.Context) error {
	id, err := a.promptID(ctx)
	if err != nil {
		return err
	}

	m, err := a.api.GetMotorcycle(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("ID:        %d\n", m.ID)
	fmt.Printf("Make:      %s\n", m.Make)
	fmt.Printf("Model:     %s\n", m.Model)
	fmt.Printf("Year:      %d\n", m.Year)
	fmt.Printf("Engine cc: %d\n", m.EngineCC)
	fmt.Printf("Color:     %s\n", m.Color)
	return nil
}

// Add prompts for all fields and creates a record.
func (a *App) Add(ctx context.Context) error {
	fields, err := a.promptFields(ctx)
	if err != nil {
		return err
	}

	if err := a.api.AddMotorcycle(ctx, fields); err != nil {
		return err
	}

	fmt.Println("Motorcycle added!")
	return nil
}

// Update prompts for an id and all fields and replaces the record.
func (a *App) Update(ctx context.Context) error {
	id, err := a.promptID(ctx)
	if err != nil {
		return err
	}
	fields, err := a.promptFields(ctx)
	if err != nil {
		return err
	}

	if err := a.api.UpdateMotorcycle(ctx, id, fields); err != nil {
		return err
	}

	fmt.Println("Motorcycle updated!")
	return nil
}

// Delete removes a record by id.
func (a *App) Delete(ctx context.Context) error {
	id, err := a.promptID(ctx)
	if err != nil {
		return err
	}

	if err := a.api.DeleteMotorcycle(ctx, id); err != nil {
		return err
	}

	fmt.Println("Motorcycle deleted!")
	return nil
}
