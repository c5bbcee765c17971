package wing

import (
	"fmt"
	"os"
	"sort"

	"github.com/titanous/json5"
)

// Keys every parameter file must set. The rest fall back to Default.
var requiredKeys = []string{
	"semi_span", "yehudi_break", "fuselage_section",
	"central_ribs", "yehudi_ribs", "semispan_ribs",
	"spars", "front_spar", "rear_spar",
	"root_cap_left", "root_cap_right", "tip_cap_left", "tip_cap_right",
	"stringers", "stringer_tolerance", "rib_stiffener_width",
	"mesh",
}

// LoadFromFile reads a parameter file (JSON5, comments allowed) and validates it
func LoadFromFile(filename string) (*Parameters, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read parameter file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON5 parameter document and validates it
func Parse(data []byte) (*Parameters, error) {
	var raw map[string]interface{}
	if err := json5.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse parameter file: %w", err)
	}
	var missing []string
	for _, k := range requiredKeys {
		if _, ok := raw[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &ValidationError{fmt.Sprintf("missing required parameters: %v", missing)}
	}

	p := Default()
	if err := json5.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse parameter file: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
