package locations

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Location is a named coordinate pair resolved from one of the CLI forms.
type Location struct {
	Name string
	Lat  float64
	Lon  float64
}

// ParseInline parses a comma-separated list of name=lat,lon tokens into an
// ordered location set. Tokens without a '=' are skipped with a warning;
// tokens with unparsable coordinates abort the run.
func ParseInline(arg string) ([]Location, error) {
	var locs []Location
	index := make(map[string]int)

	tokens := strings.Split(arg, ",")
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if !strings.Contains(token, "=") {
			log.Warn().Str("token", token).Msg("Skipping invalid location token")
			continue
		}

		parts := strings.SplitN(token, "=", 2)
		name := strings.TrimSpace(parts[0])

		// The longitude is the next comma-separated token.
		if i+1 >= len(tokens) {
			return nil, fmt.Errorf("location %q: missing longitude", name)
		}
		latStr := parts[1]
		lonStr := tokens[i+1]
		i++

		lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		if err != nil {
			return nil, fmt.Errorf("location %q: invalid latitude %q", name, latStr)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
		if err != nil {
			return nil, fmt.Errorf("location %q: invalid longitude %q", name, lonStr)
		}

		loc := Location{Name: name, Lat: lat, Lon: lon}
		if err := validate(loc); err != nil {
			return nil, err
		}

		if at, seen := index[name]; seen {
			locs[at] = loc
			continue
		}
		index[name] = len(locs)
		locs = append(locs, loc)
	}

	return locs, nil
}

// LoadFile reads a JSON object mapping location names to [lat, lon] pairs.
// Key order in the file is preserved, which fixes the processing order of
// the run.
func LoadFile(path string) ([]Location, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open locations file: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse locations file: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parse locations file: expected a JSON object")
	}

	var locs []Location
	index := make(map[string]int)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse locations file: %w", err)
		}
		name := tok.(string)

		var coords []float64
		if err := dec.Decode(&coords); err != nil {
			return nil, fmt.Errorf("location %q: %w", name, err)
		}
		if len(coords) != 2 {
			return nil, fmt.Errorf("location %q: expected [lat, lon], got %d values", name, len(coords))
		}

		loc := Location{Name: name, Lat: coords[0], Lon: coords[1]}
		if err := validate(loc); err != nil {
			return nil, err
		}

		if at, seen := index[name]; seen {
			locs[at] = loc
			continue
		}
		index[name] = len(locs)
		locs = append(locs, loc)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse locations file: %w", err)
	}

	return locs, nil
}

// Single builds the one-location set used by the --location CLI form.
func Single(name string, lat, lon float64) ([]Location, error) {
	loc := Location{Name: name, Lat: lat, Lon: lon}
	if err := validate(loc); err != nil {
		return nil, err
	}
	return []Location{loc}, nil
}

func validate(loc Location) error {
	if loc.Name == "" {
		return fmt.Errorf("location name cannot be empty")
	}
	if loc.Lat < -90 || loc.Lat > 90 {
		return fmt.Errorf("location %q: latitude %v out of range [-90, 90]", loc.Name, loc.Lat)
	}
	if loc.Lon < -180 || loc.Lon > 180 {
		return fmt.Errorf("location %q: longitude %v out of range [-180, 180]", loc.Name, loc.Lon)
	}
	return nil
}
