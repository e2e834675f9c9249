package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	defer func() { Version, Commit, Date = oldVersion, oldCommit, oldDate }()

	Version, Commit, Date = "1.2.3", "abc123", "2024-03-05"
	assert.Equal(t, "1.2.3 (commit abc123, built 2024-03-05)", String())
}
