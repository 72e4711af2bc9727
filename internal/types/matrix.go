package types

type (
	// MatrixEntry is one job of the per-example CI matrix.
	MatrixEntry struct {
		Path           string      `json:"path"`
		Type           ExampleType `json:"type"`
		FoundryOffline bool        `json:"foundry_offline"`
	}

	// GroupedMatrixEntry is one job covering every example under a top-level directory.
	GroupedMatrixEntry struct {
		Group          string      `json:"group"`
		Paths          string      `json:"paths"` // space separated
		Type           ExampleType `json:"type"`
		FoundryOffline bool        `json:"foundry_offline"`
	}

	// Matrix is the GitHub Actions matrix document.
	Matrix[T any] struct {
		Include []T `json:"include"`
	}

	// PathsSummary collapses the whole registry into a single job description.
	PathsSummary struct {
		Paths          string      `json:"paths"` // space separated
		Type           ExampleType `json:"type"`
		FoundryOffline bool        `json:"foundry_offline"`
	}
)
