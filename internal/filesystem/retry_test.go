package filesystem

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"recents-server/internal/metrics"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{MaxRetries: 3, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}
}

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", config.MaxRetries)
	}
	if config.InitialBackoff != 50*time.Millisecond {
		t.Errorf("InitialBackoff = %v, want 50ms", config.InitialBackoff)
	}
	if config.MaxBackoff != 500*time.Millisecond {
		t.Errorf("MaxBackoff = %v, want 500ms", config.MaxBackoff)
	}
}

func TestIsNFSStaleError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "ESTALE error", err: syscall.ESTALE, want: true},
		{name: "wrapped ESTALE", err: &os.PathError{Op: "open", Path: "/x", Err: syscall.ESTALE}, want: true},
		{name: "ENOENT error", err: syscall.ENOENT, want: false},
		{name: "generic error", err: os.ErrNotExist, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNFSStaleError(tt.err); got != tt.want {
				t.Errorf("isNFSStaleError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithRetry_RecoversFromStaleHandle(t *testing.T) {
	before := testutil.ToFloat64(metrics.FilesystemRetriesTotal.WithLabelValues("test", "recovered"))

	calls := 0
	err := withRetry("test", "/nfs/list.wpl", fastRetryConfig(), func() error {
		calls++
		if calls < 3 {
			return syscall.ESTALE
		}
		return nil
	})

	if err != nil {
		t.Fatalf("withRetry() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if got := testutil.ToFloat64(metrics.FilesystemRetriesTotal.WithLabelValues("test", "recovered")); got != before+1 {
		t.Errorf("recovered counter = %v, want %v", got, before+1)
	}
}

func TestWithRetry_GivesUp(t *testing.T) {
	calls := 0
	err := withRetry("test", "/nfs/list.wpl", fastRetryConfig(), func() error {
		calls++
		return syscall.ESTALE
	})

	if !errors.Is(err, syscall.ESTALE) {
		t.Errorf("withRetry() error = %v, want ESTALE", err)
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 4 (1 + MaxRetries)", calls)
	}
}

func TestWithRetry_OtherErrorsFailFast(t *testing.T) {
	calls := 0
	err := withRetry("test", "/x", fastRetryConfig(), func() error {
		calls++
		return syscall.EACCES
	})

	if !errors.Is(err, syscall.EACCES) {
		t.Errorf("withRetry() error = %v, want EACCES", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestReadFileWithRetry_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.wpl")
	content := []byte("<?wpl version=\"1.0\"?>\n<smil></smil>")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	data, err := ReadFileWithRetry(path, DefaultRetryConfig())
	if err != nil {
		t.Fatalf("ReadFileWithRetry() error = %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("data = %q, want %q", data, content)
	}
}

func TestReadFileWithRetry_NotExist(t *testing.T) {
	start := time.Now()
	_, err := ReadFileWithRetry(filepath.Join(t.TempDir(), "missing.wpl"), DefaultRetryConfig())
	elapsed := time.Since(start)

	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFileWithRetry() error = %v, want ErrNotExist", err)
	}
	if elapsed > 40*time.Millisecond {
		t.Errorf("ReadFileWithRetry took %v, should fail fast for non-ESTALE errors", elapsed)
	}
}
