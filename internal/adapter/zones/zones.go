// Package zones loads the agro-climatic zone registry from disk.
package zones

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/agorai/climate-profiler/internal/domain"
)

// registryFile mirrors the on-disk shape: {"zones": {id: zone}}.
type registryFile struct {
	Zones map[string]domain.Zone `json:"zones"`
}

// Load reads and validates the zone registry at path.
func Load(path string) (map[string]domain.Zone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zone registry: %w", err)
	}

	var f registryFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse zone registry: %w", err)
	}
	if len(f.Zones) == 0 {
		return nil, errors.New("zone registry is empty")
	}

	for id, zone := range f.Zones {
		if err := validate(zone); err != nil {
			return nil, fmt.Errorf("zone %q: %w", id, err)
		}
	}
	return f.Zones, nil
}

func validate(zone domain.Zone) error {
	if zone.Name == "" {
		return errors.New("missing name")
	}
	pt := zone.RepresentativePoint
	if pt.Lat < -90 || pt.Lat > 90 {
		return fmt.Errorf("latitude %v out of range", pt.Lat)
	}
	if pt.Lon < -180 || pt.Lon > 180 {
		return fmt.Errorf("longitude %v out of range", pt.Lon)
	}
	return nil
}
