// Package types defines all data structures shared by the registry tool.
package types

// RawDocument is the untyped tree produced by the loader.
type RawDocument = map[string]any

// ExampleType is the kind of an example project.
type ExampleType string

const (
	TypeSolidity ExampleType = "solidity"
	TypeFrontend ExampleType = "frontend"
)

// AllowedTypes lists the recognized example types in the order they are reported.
var AllowedTypes = []ExampleType{TypeSolidity, TypeFrontend}

type (
	// Example is a single validated registry entry.
	Example struct {
		Path        string       `json:"path"`
		Type        ExampleType  `json:"type"`
		Description string       `json:"description"`
		Foundry     FoundryFlags `json:"foundry"`
		Hardhat     HardhatFlags `json:"hardhat"`
	}

	// FoundryFlags selects the forge actions run for an example.
	FoundryFlags struct {
		Fmt     bool `json:"fmt"`
		Build   bool `json:"build"`
		Test    bool `json:"test"`
		Lint    bool `json:"lint"`
		Offline bool `json:"offline"`
	}

	// HardhatFlags selects the hardhat actions run for an example.
	HardhatFlags struct {
		Compile bool `json:"compile"`
		Test    bool `json:"test"`
		Lint    bool `json:"lint"`
	}
)

// IsAllowed reports whether t is a recognized example type.
func (t ExampleType) IsAllowed() bool {
	for _, allowed := range AllowedTypes {
		if t == allowed {
			return true
		}
	}
	return false
}
