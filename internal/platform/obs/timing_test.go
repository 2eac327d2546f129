package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
)

func TestTimeLogsRequestIDAndError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	ctx := WithRequestID(context.Background(), "abc")
	err := errors.New("boom")
	Time(ctx, "op.test")(&err)

	line := buf.String()
	for _, want := range []string{"req_id=abc", "op=op.test", "err=boom"} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %q", line, want)
		}
	}
}

func TestWithRequestIDIgnoresEmpty(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	if got := RequestID(ctx); got != "" {
		t.Fatalf("request id = %q, want empty", got)
	}
}
