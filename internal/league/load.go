package league

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadTeamsFile reads reference teams from a JSON array on disk. File
// runs use this; service runs read the same rows from the warehouse.
func LoadTeamsFile(path string) ([]Team, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading teams file: %w", err)
	}

	var teams []Team
	if err := json.Unmarshal(data, &teams); err != nil {
		return nil, fmt.Errorf("parsing teams file %s: %w", path, err)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("teams file %s holds no teams", path)
	}
	return teams, nil
}
