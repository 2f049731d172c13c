// Command virtiod hosts a single VirtIO device (block, GPU, or network) as
// an RPC server, per spec §1/§2/§4.7. It parses its PCI location and MMIO
// base from the command line (spec §6), brings up the DMA/MMIO HAL, opens
// the device's PCI resources, negotiates the VirtIO transport, registers
// with the matching manager service, then serves schema-message RPC calls
// until the transport shuts down.
package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/pflag"

	"github.com/moodyhunter/virtiod/client"
	"github.com/moodyhunter/virtiod/device"
	"github.com/moodyhunter/virtiod/hal"
	"github.com/moodyhunter/virtiod/internal/obslog"
	"github.com/moodyhunter/virtiod/pci"
	"github.com/moodyhunter/virtiod/schema"
	"github.com/moodyhunter/virtiod/server"
	"github.com/moodyhunter/virtiod/status"
	"github.com/moodyhunter/virtiod/transport"
	"github.com/moodyhunter/virtiod/virtio"
)

const (
	blockManagerService   = "mos.blockdev-manager"
	networkManagerService = "mos.networkd"
	gpuManagerService     = "mos.gpu-manager"

	defaultMMIOBase  = 0xe0000000
	defaultBARIndex  = 0
	registrationFnID = 1
	// readFunctionID/writeFunctionID, etc., are arbitrary but fixed
	// function_ids this binary's own servers use (spec §3's "function_id
	// is unique within a server" — the numbering scheme is a local
	// implementation detail, not part of the wire contract).
	blockReadFunctionID  = 1
	blockWriteFunctionID = 2

	gpuQueryFunctionID      = 1
	gpuPostBufferFunctionID = 2
	gpuMoveCursorFunctionID = 3

	netGetMacFunctionID = 1
)

// deviceMu is the single mutex protecting the device handle for the
// process (spec §4.7(c)/§5): exactly one SchemaDispatcher is ever
// constructed per run, so one shared lock suffices.
var deviceMu sync.Mutex

func main() {
	var (
		bus, dev, fn       uint32
		vendorID, deviceID uint32
		location           uint32
		mmioBase           uint64
		kind               string
		hasLegacyLocation  bool
	)

	flags := pflag.NewFlagSet("virtiod", pflag.ContinueOnError)
	flags.VarP(newHexU32Value(0, &bus), "bus", "", "PCI bus number")
	flags.VarP(newHexU32Value(0, &dev), "dev", "", "PCI device number")
	flags.VarP(newHexU32Value(0, &fn), "func", "", "PCI function number")
	flags.VarP(newHexU64Value(defaultMMIOBase, &mmioBase), "mmio-base", "m", "MMIO base address")
	flags.VarP(newHexU32Value(0x1af4, &vendorID), "vendor-id", "", "PCI vendor id (legacy)")
	flags.VarP(newHexU32Value(0, &deviceID), "device-id", "", "PCI device id (legacy)")
	flags.VarP(newHexU32Value(0, &location), "location", "", "packed bus<<16|dev<<8|func (legacy)")
	flags.StringVar(&kind, "kind", "", "device kind to host: block, gpu, or net (required — the upstream VirtIO library that would auto-detect this from the negotiated transport is out of scope, see virtio.Open*)")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "virtiod:", err)
		os.Exit(1)
	}

	hasLegacyLocation = flags.Changed("location")

	loc := pci.Location{Bus: bus, Dev: dev, Func: fn}
	if hasLegacyLocation {
		loc = pci.Unpack(location)
	}

	if kind == "" {
		fmt.Fprintln(os.Stderr, "virtiod: --kind (block|gpu|net) is required")
		os.Exit(1)
	}

	obslog.Info("virtiod starting",
		"location", loc.String(), "mmio_base", fmt.Sprintf("%#x", mmioBase), "kind", kind,
		"vendor_id", fmt.Sprintf("%#x", vendorID), "device_id", fmt.Sprintf("%#x", deviceID))
	status.Report(schema.StatusStarting, "initializing")

	if err := run(loc, mmioBase, kind); err != nil {
		obslog.Error("virtiod: fatal startup error", "error", err)
		status.Report(schema.StatusFailed, err.Error())
		os.Exit(1)
	}

	status.Report(schema.StatusStopped, "clean shutdown")
}

// run brings up the device named by kind at loc. mmioBase is accepted per
// spec §6's CLI surface but unused on this build: the host backend reaches
// PCI config space and BARs through sysfs (pci.OpenConfigSpace/OpenBAR)
// rather than mapping raw ECAM physical memory the way the target
// microkernel backend's ECAM PciRoot would, so there is no raw physical
// address for the HAL to map here.
func run(loc pci.Location, mmioBase uint64, kind string) error {
	_ = mmioBase
	h := hal.NewCHal()
	if err := h.Init(); err != nil {
		return fmt.Errorf("hal init: %w", err)
	}
	defer h.Exit()

	cfg, err := pci.OpenConfigSpace(loc)
	if err != nil {
		return fmt.Errorf("open config space: %w", err)
	}
	defer cfg.Close()

	if err := pci.EnableDevice(cfg); err != nil {
		return fmt.Errorf("enable device: %w", err)
	}

	bar, err := pci.OpenBAR(loc, defaultBARIndex)
	if err != nil {
		return fmt.Errorf("open BAR%d: %w", defaultBARIndex, err)
	}
	defer bar.Close()

	switch virtio.Kind(kind) {
	case virtio.KindBlock:
		return runBlock(loc, bar, h)
	case virtio.KindGPU:
		return runGPU(loc, bar, h)
	case virtio.KindNet:
		return runNet(loc, bar, h)
	default:
		return fmt.Errorf("unrecognized --kind %q (want block, gpu, or net)", kind)
	}
}

func runBlock(loc pci.Location, bar *pci.BAR, h hal.Hal) error {
	dev, err := virtio.OpenBlockDevice(loc, bar, h)
	if err != nil {
		return fmt.Errorf("negotiate block device: %w", err)
	}
	defer dev.Close()

	name := pci.DeviceName("blockdev.virtio", loc)
	var regResp schema.RegisterBlockDeviceResponse
	if err := registerWith(blockManagerService, &schema.RegisterBlockDeviceRequest{Name: name}, &regResp); err != nil {
		return fmt.Errorf("register block device: %w", err)
	}
	if !regResp.Result.Success {
		return fmt.Errorf("%s rejected registration of %s: %s", blockManagerService, name, regResp.Result.Error)
	}

	srv, err := transport.Bind(name)
	if err != nil {
		return fmt.Errorf("bind %s: %w", name, err)
	}
	defer srv.Close()

	blockSrv := device.NewBlockServer(dev)
	d := server.NewSchemaDispatcher(&deviceMu)
	blockSrv.Register(d, blockReadFunctionID, blockWriteFunctionID)

	status.Report(schema.StatusRunning, "serving "+name)
	return d.Serve(srv)
}

func runGPU(loc pci.Location, bar *pci.BAR, h hal.Hal) error {
	dev, err := virtio.OpenGPUDevice(loc, bar, h)
	if err != nil {
		return fmt.Errorf("negotiate GPU device: %w", err)
	}
	defer dev.Close()

	const name = "gpu.virtio"
	var regResp schema.RegisterGPUDeviceResponse
	if err := registerWith(gpuManagerService, &schema.RegisterGPUDeviceRequest{Name: name}, &regResp); err != nil {
		return fmt.Errorf("register GPU device: %w", err)
	}
	if !regResp.Result.Success {
		return fmt.Errorf("%s rejected registration of %s: %s", gpuManagerService, name, regResp.Result.Error)
	}

	srv, err := transport.Bind(name)
	if err != nil {
		return fmt.Errorf("bind %s: %w", name, err)
	}
	defer srv.Close()

	gpuSrv, err := device.NewGPUServer(dev)
	if err != nil {
		return fmt.Errorf("create GPU server: %w", err)
	}
	d := server.NewSchemaDispatcher(&deviceMu)
	gpuSrv.Register(d, gpuQueryFunctionID, gpuPostBufferFunctionID, gpuMoveCursorFunctionID)

	status.Report(schema.StatusRunning, "serving "+name)
	return d.Serve(srv)
}

func runNet(loc pci.Location, bar *pci.BAR, h hal.Hal) error {
	dev, err := virtio.OpenNetDevice(loc, bar, h)
	if err != nil {
		return fmt.Errorf("negotiate network device: %w", err)
	}
	defer dev.Close()

	mac, err := dev.MACAddress()
	if err != nil {
		return fmt.Errorf("read MAC address: %w", err)
	}

	name := pci.DeviceName("netdev.virtio", loc)
	var regResp schema.RegisterNetworkDeviceResponse
	if err := registerWith(networkManagerService, &schema.RegisterNetworkDeviceRequest{Name: name, Mac: mac}, &regResp); err != nil {
		return fmt.Errorf("register network device: %w", err)
	}
	if !regResp.Result.Success {
		return fmt.Errorf("%s rejected registration of %s: %s", networkManagerService, name, regResp.Result.Error)
	}

	srv, err := transport.Bind(name)
	if err != nil {
		return fmt.Errorf("bind %s: %w", name, err)
	}
	defer srv.Close()

	netSrv := device.NewNetworkServer(dev)
	d := server.NewSchemaDispatcher(&deviceMu)
	netSrv.Register(d, netGetMacFunctionID)

	status.Report(schema.StatusRunning, "serving "+name)
	return d.Serve(srv)
}

// registerWith sends req to managerService over a fresh connection and
// decodes the response into resp. Callers check resp's own Result field:
// spec §4.7 says "a non-success status is converted to a driver startup
// error", which requires looking inside the schema-specific response type
// since there's no common interface across the three registration
// responses beyond their shared Result envelope.
func registerWith(managerService string, req schema.Message, resp schema.Message) error {
	stub, err := client.Dial(managerService)
	if err != nil {
		return fmt.Errorf("dial %s: %w", managerService, err)
	}
	defer stub.Close()

	return client.PBCall(stub, registrationFnID, req, resp)
}
