package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"surveillance-map/be/models"
	"surveillance-map/be/services"
)

var (
	newCamera  services.CameraInput
	newLat     float64
	newLng     float64
	newDir     int
	updateSets []string
	typeFilter string
)

var camerasCmd = &cobra.Command{
	Use:   "cameras",
	Short: "List and edit cameras",
}

var camerasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cameras",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient(false)
		if err != nil {
			return err
		}
		res, err := api.ListCameras(cmd.Context())
		if err != nil {
			return fmt.Errorf("error fetching cameras: %w", err)
		}

		cameras := res.Cameras
		if typeFilter != "" {
			cameras = filterByType(cameras, typeFilter)
		}
		if jsonOutput {
			return printJSON(os.Stdout, cameras)
		}
		printCameraTable(os.Stdout, cameras)
		return nil
	},
}

var camerasGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one camera",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient(false)
		if err != nil {
			return err
		}
		cam, err := api.GetCamera(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(os.Stdout, cam)
	},
}

var camerasCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Add a camera",
	Example: `  camctl cameras create --lat -31.95 --lng 115.86 --type "Private" --suburb Perth`,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient(true)
		if err != nil {
			return err
		}

		in := newCamera
		in.Lat = &newLat
		in.Lng = &newLng
		if cmd.Flags().Changed("direction") {
			in.Direction = &newDir
		}

		cam, err := api.CreateCamera(cmd.Context(), in)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(os.Stdout, cam)
		}
		fmt.Printf("Created camera %s\n", cam.ID)
		return nil
	},
}

var camerasUpdateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Change fields on a camera",
	Example: `  camctl cameras update USER-1761643800000 --set suburb=Northbridge --set direction=90`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := parseAssignments(updateSets)
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			return fmt.Errorf("nothing to update, pass at least one --set key=value")
		}

		api, err := apiClient(true)
		if err != nil {
			return err
		}
		cam, err := api.UpdateCamera(cmd.Context(), args[0], fields)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(os.Stdout, cam)
		}
		fmt.Printf("Updated camera %s\n", cam.ID)
		return nil
	},
}

var camerasDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a camera",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient(true)
		if err != nil {
			return err
		}
		if err := api.DeleteCamera(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted camera %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(camerasCmd)
	camerasCmd.AddCommand(camerasListCmd, camerasGetCmd, camerasCreateCmd, camerasUpdateCmd, camerasDeleteCmd)

	camerasListCmd.Flags().StringVar(&typeFilter, "type", "", "Only show cameras of this type")

	f := camerasCreateCmd.Flags()
	f.Float64Var(&newLat, "lat", 0, "Latitude (WGS84)")
	f.Float64Var(&newLng, "lng", 0, "Longitude (WGS84)")
	f.StringVar(&newCamera.Type, "type", "", "Camera type, e.g. Private or Public Safety")
	f.StringVar(&newCamera.CameraNumber, "number", "", "Camera number")
	f.StringVar(&newCamera.Owner, "owner", "", "Owner")
	f.StringVar(&newCamera.Network, "network", "", "Network")
	f.StringVar(&newCamera.Purpose, "purpose", "", "Purpose")
	f.StringVar(&newCamera.Suburb, "suburb", "", "Suburb")
	f.StringVar(&newCamera.Location, "location", "", "Street location")
	f.StringVar(&newCamera.Coverage, "coverage", "", `Coverage, "360" for omnidirectional`)
	f.IntVar(&newDir, "direction", 0, "Facing bearing in degrees, 0-359")
	f.StringSliceVar(&newCamera.DetectionTypes, "detects", nil, "Detection types, comma separated")
	_ = camerasCreateCmd.MarkFlagRequired("lat")
	_ = camerasCreateCmd.MarkFlagRequired("lng")
	_ = camerasCreateCmd.MarkFlagRequired("type")

	camerasUpdateCmd.Flags().StringArrayVar(&updateSets, "set", nil, "Field assignment key=value, repeatable")
}

// parseAssignments turns key=value pairs into a JSON patch. Values that parse
// as JSON (numbers, null, arrays) keep their type, anything else is a string.
func parseAssignments(sets []string) (map[string]any, error) {
	fields := make(map[string]any, len(sets))
	for _, s := range sets {
		key, raw, ok := strings.Cut(s, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q, expected key=value", s)
		}

		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		fields[key] = v
	}
	return fields, nil
}

func filterByType(cameras []models.Camera, kind string) []models.Camera {
	out := cameras[:0:0]
	for _, c := range cameras {
		if strings.EqualFold(c.Type, kind) {
			out = append(out, c)
		}
	}
	return out
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printCameraTable(out io.Writer, cameras []models.Camera) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tSUBURB\tLAT\tLNG\tDIRECTION")
	fmt.Fprintln(w, "--\t----\t------\t---\t---\t---------")
	for _, c := range cameras {
		dir := "-"
		if c.Direction != nil {
			dir = strconv.Itoa(*c.Direction)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.6f\t%.6f\t%s\n", c.ID, c.Type, c.Suburb, c.Lat, c.Lng, dir)
	}
	w.Flush()
	fmt.Fprintf(out, "\n%d cameras\n", len(cameras))
}
