package httptesting

import (
	"net/http"
	"os"
	"testing"
)

// RecordEnvVar enables recording against the live API when set to "1".
const RecordEnvVar = "GLASSNODE_TEST_RECORD"

// RunHttpTestWithRecorder swaps the transport of client. When recording is enabled the
// requests go to the live API and are saved to recordFile by the returned function;
// otherwise recordFile is played back. It reports whether it is recording.
func RunHttpTestWithRecorder(t *testing.T, client *http.Client, recordFile string) (bool, func()) {
	t.Helper()

	if os.Getenv(RecordEnvVar) == "1" {
		recorder := NewRecorder(http.DefaultTransport)
		client.Transport = recorder
		return true, func() {
			if err := recorder.Save(recordFile); err != nil {
				t.Errorf("failed to save recorded requests: %v", err)
			}
		}
	}

	recorder := NewRecorder(nil)
	if err := recorder.Load(recordFile); err != nil {
		t.Fatalf("failed to load recorded requests: %v", err)
	}

	mockTransport := &MockTransport{}
	if err := mockTransport.LoadFromRecorder(recorder); err != nil {
		t.Fatalf("failed to load recordings: %v", err)
	}

	client.Transport = mockTransport
	return false, func() {}
}
