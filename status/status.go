// Package status implements the status reporter client (spec §4.8): a
// process-wide, lazily-initialized client stub to a well-known
// service-manager endpoint, grounded on
// _examples/original_source/userspace/libs/libsm-rs/src/lib.rs's
// get_service_manager/report_service_status pair. Reads the token from
// MOS_SERVICE_TOKEN; a missing token or a send failure is logged to stderr
// and never fatal (spec §4.8/§7).
package status

import (
	"os"
	"sync"

	"github.com/moodyhunter/virtiod/client"
	"github.com/moodyhunter/virtiod/internal/obslog"
	"github.com/moodyhunter/virtiod/schema"
)

// UnitStateReceiverService is the well-known service-manager endpoint name
// (spec §6).
const UnitStateReceiverService = "mos.service_manager.unit_state_receiver"

const reportStatusFunctionID = 1

var (
	once       sync.Once
	mu         sync.Mutex
	stub       *client.Stub
	dialErr    error
)

func getStub() (*client.Stub, error) {
	once.Do(func() {
		stub, dialErr = client.Dial(UnitStateReceiverService)
	})
	return stub, dialErr
}

// Report sends a lifecycle transition to the service manager: {token,
// is_active = status != Stopped, status, message} as a schema-message call
// (spec §4.8). The token is read from MOS_SERVICE_TOKEN. Neither a missing
// token nor a transport failure is fatal — both are logged to stderr, per
// spec §4.8/§7's "Missing token or send failures are logged to stderr,
// never fatal."
func Report(st schema.LifecycleStatus, message string) {
	token, ok := os.LookupEnv("MOS_SERVICE_TOKEN")
	if !ok {
		obslog.Warn("status: MOS_SERVICE_TOKEN not set, skipping report", "status", st)
		return
	}

	mu.Lock()
	defer mu.Unlock()

	s, err := getStub()
	if err != nil {
		obslog.Warn("status: failed to connect to service manager", "error", err)
		return
	}

	req := &schema.ReportStatusRequest{
		Token:    token,
		IsActive: st != schema.StatusStopped,
		Status:   st,
		Message:  message,
	}
	var resp schema.ReportStatusResponse
	if err := client.PBCall(s, reportStatusFunctionID, req, &resp); err != nil {
		obslog.Warn("status: report failed", "status", st, "error", err)
		return
	}
	if !resp.Result.Success {
		obslog.Warn("status: service manager rejected report", "status", st, "error", resp.Result.Error)
	}
}
