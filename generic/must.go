package generic

import "fmt"

// Must panics if err is not nil, for failures during package initialisation that can only be programming errors.
func Must(err error) {
	if err != nil {
		panic(fmt.Errorf("must: %w", err))
	}
}
