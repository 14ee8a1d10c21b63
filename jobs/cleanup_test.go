package jobs

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecentlyStored(t *testing.T) {
	fresh := fmt.Sprintf("team-x/%d-abc123.pdf", time.Now().UnixMilli())
	assert.True(t, recentlyStored(fresh))

	old := fmt.Sprintf("team-x/%d-abc123.pdf", time.Now().Add(-2*time.Hour).UnixMilli())
	assert.False(t, recentlyStored(old))

	// Paths the sweeper cannot date are left alone.
	assert.True(t, recentlyStored("team-x/no-timestamp.pdf"))
	assert.True(t, recentlyStored("team-x/plainname.pdf"))
}
