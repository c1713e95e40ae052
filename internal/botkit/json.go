package botkit

import "encoding/json"

// ParseJSON decodes command arguments supplied as a JSON object.
func ParseJSON[T any](src string) (T, error) {
	var args T
	if err := json.Unmarshal([]byte(src), &args); err != nil {
		return args, err
	}
	return args, nil
}
