package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchedulerValidation(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{name: "every_five_minutes", spec: "*/5 * * * *"},
		{name: "descriptor", spec: "@hourly"},
		{name: "interval", spec: "@every 30s"},
		{name: "empty", spec: "  ", wantErr: true},
		{name: "six_fields", spec: "0 */5 * * * *", wantErr: true},
		{name: "garbage", spec: "sometimes", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewScheduler(tc.spec, func() {})
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			s.Start()
			s.Stop()
		})
	}
}

func TestSchedulerRunsJob(t *testing.T) {
	ran := make(chan struct{}, 1)
	s, err := NewScheduler("@every 1s", func() {
		select {
		case ran <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled job did not run")
	}
}

func TestTrackerChanged(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "A-MIB.txt")
	b := filepath.Join(dir, "B-MIB.txt")
	require.NoError(t, os.WriteFile(a, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("b"), 0o644))

	tr := NewTracker([]string{a, b, filepath.Join(dir, "missing.txt")})
	assert.Empty(t, tr.Changed())

	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(b, later, later))
	assert.Equal(t, []string{b}, tr.Changed())
	assert.Empty(t, tr.Changed())
}
