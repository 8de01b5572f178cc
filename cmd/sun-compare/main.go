// Command sun-compare runs the solar engine over a range of UTC days and
// reports its sunrise, sunset, declination and elevation differences
// against independent reference implementations.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.ngs.io/solar-api/internal/domain"
	"go.ngs.io/solar-api/internal/reference"
)

func main() {
	var (
		lat      float64
		lon      float64
		alt      float64
		startStr string
		endStr   string
		verbose  bool
	)
	flag.Float64Var(&lat, "lat", 35.6812, "Latitude in degrees")
	flag.Float64Var(&lon, "lon", 139.7671, "Longitude in degrees")
	flag.Float64Var(&alt, "alt", 0, "Altitude in metres")
	flag.StringVar(&startStr, "start", "2025-01-01", "First UTC day (YYYY-MM-DD)")
	flag.StringVar(&endStr, "end", "2025-12-31", "Last UTC day (YYYY-MM-DD)")
	flag.BoolVar(&verbose, "v", false, "Print one line per day")
	flag.Parse()

	start, err := domain.ParseCalendarDay(startStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	end, err := domain.ParseCalendarDay(endStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	loc := domain.Location{LatitudeDeg: lat, LongitudeDeg: lon, AltitudeM: alt}
	days, sum, err := reference.Compare(loc, start, end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if verbose {
		fmt.Println("date        sunrise   ref       diff[s]  sunset    ref       diff[s]  ddec[deg]  delev[deg]")
		for _, d := range days {
			if d.Skipped {
				fmt.Printf("%s  (no sunrise/sunset)                                       %9.4f  %9.4f\n",
					d.Day, d.DeclinationDiffDeg, d.ElevationDiffDeg)
				continue
			}
			fmt.Printf("%s  %s  %s  %7.1f  %s  %s  %7.1f  %9.4f  %9.4f\n",
				d.Day,
				clock(d.Sunrise), clock(d.RefSunrise), d.SunriseDiff.Seconds(),
				clock(d.Sunset), clock(d.RefSunset), d.SunsetDiff.Seconds(),
				d.DeclinationDiffDeg, d.ElevationDiffDeg)
		}
		fmt.Println()
	}

	fmt.Printf("Location: %.4f, %.4f (%.0f m)\n", lat, lon, alt)
	fmt.Printf("Days: %d (skipped %d)\n", sum.Days, sum.Skipped)
	printStats("Sunrise (engine-ref) [min]", sum.Sunrise)
	printStats("Sunset (engine-ref) [min]", sum.Sunset)
	printStats("Declination [deg]", sum.Declination)
	printStats("Noon elevation [deg]", sum.Elevation)
}

func printStats(label string, s reference.Stats) {
	if s.N == 0 {
		fmt.Printf("%-28s no samples\n", label+":")
		return
	}
	fmt.Printf("%-28s mean %8.4f  rmse %8.4f  max %8.4f  (n=%d)\n", label+":", s.Mean, s.RMSE, s.Max, s.N)
}

func clock(t time.Time) string {
	return t.UTC().Format("15:04:05")
}
