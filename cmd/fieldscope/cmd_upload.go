package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fieldscope/internal/api"
)

var (
	uploadFieldID int
	uploadLat     float64
	uploadLon     float64
)

// uploadCmd submits a crop image for stress analysis
var uploadCmd = &cobra.Command{
	Use:   "upload <image-path>",
	Short: "Upload a crop image for analysis",
	Long: `Upload an image to the service for stress analysis. The result is
printed once the service has processed the image; the whole call is
synchronous.

Example:
  fieldscope upload leaf.jpg --field 3 --lat 52.105 --lon 5.21`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().IntVar(&uploadFieldID, "field", 0, "Target field ID (required)")
	uploadCmd.Flags().Float64Var(&uploadLat, "lat", 0, "Capture latitude")
	uploadCmd.Flags().Float64Var(&uploadLon, "lon", 0, "Capture longitude")
	_ = uploadCmd.MarkFlagRequired("field")
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploadFieldID <= 0 {
		return fmt.Errorf("--field must be a positive field ID")
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	result, err := a.client.UploadFile(context.Background(), args[0], uploadFieldID, uploadLat, uploadLon)
	if err != nil {
		if api.IsUnauthorized(err) {
			return fmt.Errorf("not logged in — run 'fieldscope login'")
		}
		return fmt.Errorf("upload failed: %w", err)
	}

	logger.Info("image analyzed",
		zap.Int("analysis_id", result.ID),
		zap.Int("field_id", result.FieldID),
		zap.String("stress_level", result.StressLevel))

	fmt.Printf("Analysis #%d — field %d, stress: %s", result.ID, result.FieldID, result.StressLevel)
	if result.Confidence > 0 {
		fmt.Printf(" (%.0f%% confidence)", result.Confidence*100)
	}
	fmt.Println()
	return nil
}
