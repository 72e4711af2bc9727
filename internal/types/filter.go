package types

// PathFilterConfig contains glob patterns used to narrow the registry.
type PathFilterConfig struct {
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
}
