package app

import (
	"bytes"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/vk/gsaopt/internal/hclconfig"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance for system testing. The clock is
// fixed to now, so the output directory name is predictable.
func SetupAppTest(t *testing.T, appConfig *Config, now time.Time) (*App, *bytes.Buffer, *SafeBuffer) {
	t.Helper()

	out := &bytes.Buffer{}
	logBuffer := &SafeBuffer{}
	appConfig.LogLevel = "debug"
	appConfig.NoColor = true
	testApp, err := NewApp(out, logBuffer, appConfig, hclconfig.NewLoader())
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	testApp.now = func() time.Time { return now }

	t.Cleanup(func() {
		if os.Getenv("GSAOPT_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, out, logBuffer
}
