package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFullVersion(t *testing.T) {
	assert.Equal(t, "dev", GetFullVersion())

	old := Version
	t.Cleanup(func() { Version = old })
	Version = "1.2.0"
	GitCommit = "abc123"
	BuildDate = "2026-10-19"
	assert.Equal(t, "1.2.0 (commit abc123, built 2026-10-19)", GetFullVersion())
	assert.Equal(t, "1.2.0", GetVersion())
}
