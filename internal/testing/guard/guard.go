// Package guard switches the binaries into test mode. Import it for side
// effects from tests that exercise a main package.
package guard

import (
	"os"
	"sync"
)

const testModeEnv = "CATALOG_TEST_MODE"

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv(testModeEnv) == "" {
			_ = os.Setenv(testModeEnv, "1")
		}
	})
}
