package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fieldscope/internal/api"
	"fieldscope/internal/geometry"
)

var (
	fieldName   string
	fieldCrop   string
	fieldPoints []string
)

// fieldsCmd is the parent command for field management
var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Manage registered fields",
	Long: `List and register fields.

Available subcommands:
  list - List all your registered fields
  add  - Register a new field with a polygon boundary`,
}

var fieldsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered fields",
	RunE:  runFieldsList,
}

var fieldsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new field",
	Long: `Register a field with a polygon boundary. Supply each boundary
vertex as a repeated --point flag in "lat,lon" order; at least 3 are
required.

Example:
  fieldscope fields add --name "North paddock" --crop wheat \
    --point "52.10,5.20" --point "52.11,5.20" --point "52.11,5.22"`,
	RunE: runFieldsAdd,
}

func init() {
	fieldsAddCmd.Flags().StringVar(&fieldName, "name", "", "Field name (required)")
	fieldsAddCmd.Flags().StringVar(&fieldCrop, "crop", "", "Crop type")
	fieldsAddCmd.Flags().StringArrayVar(&fieldPoints, "point", nil, `Boundary vertex as "lat,lon" (repeat, at least 3)`)
	_ = fieldsAddCmd.MarkFlagRequired("name")

	fieldsCmd.AddCommand(fieldsListCmd)
	fieldsCmd.AddCommand(fieldsAddCmd)
}

func runFieldsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	fields, err := a.client.ListFields(context.Background())
	if err != nil {
		if api.IsUnauthorized(err) {
			return fmt.Errorf("not logged in — run 'fieldscope login'")
		}
		return fmt.Errorf("failed to list fields: %w", err)
	}

	if len(fields) == 0 {
		fmt.Println("No fields registered yet")
		return nil
	}

	fmt.Printf("%-6s %-24s %-16s %s\n", "ID", "NAME", "CROP", "CREATED")
	for _, f := range fields {
		fmt.Printf("%-6d %-24s %-16s %s\n", f.ID, f.Name, f.CropType, f.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// parsePointFlag parses one --point value. Same "lat,lon" order as the
// dashboard's point entry line.
func parsePointFlag(raw string) (geometry.Point, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return geometry.Point{}, fmt.Errorf("point %q: expected \"lat,lon\"", raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("point %q: bad latitude", raw)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("point %q: bad longitude", raw)
	}
	return geometry.Point{Lat: lat, Lon: lon}, nil
}

func runFieldsAdd(cmd *cobra.Command, args []string) error {
	builder := geometry.NewBuilder()
	for _, raw := range fieldPoints {
		p, err := parsePointFlag(raw)
		if err != nil {
			return err
		}
		builder.AddPoint(p)
	}

	// Rejected locally before anything goes on the wire.
	polygon, err := builder.Serialize()
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	field, err := a.client.CreateField(context.Background(), api.CreateFieldRequest{
		Name:            fieldName,
		CropType:        fieldCrop,
		PolygonGeometry: polygon,
	})
	if err != nil {
		if api.IsUnauthorized(err) {
			return fmt.Errorf("not logged in — run 'fieldscope login'")
		}
		return fmt.Errorf("failed to create field: %w", err)
	}

	logger.Info("field created",
		zap.Int("id", field.ID),
		zap.String("name", field.Name),
		zap.Int("points", builder.Count()))
	fmt.Printf("Field %q registered with ID %d (%d boundary points)\n",
		field.Name, field.ID, builder.Count())
	return nil
}
