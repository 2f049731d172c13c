package pci

// PCI configuration-space command register, offset 0x04, and the bits this
// driver needs set before touching a device's BARs or issuing DMA,
// grounded on
// _examples/original_source/userspace/drivers/virtiod/src/main.rs's
// `pci_root.set_command(Command::IO_SPACE | Command::MEMORY_SPACE |
// Command::BUS_MASTER)`.
const (
	commandOffset  = 0x04
	cmdIOSpace     = 1 << 0
	cmdMemorySpace = 1 << 1
	cmdBusMaster   = 1 << 2
)

// EnableDevice sets the I/O space, memory space, and bus-master bits in
// cfg's command register, the minimum needed for a driver to read BARs and
// issue DMA.
func EnableDevice(cfg *ConfigSpace) error {
	var buf [2]byte
	if err := cfg.ReadAt(buf[:], commandOffset); err != nil {
		return err
	}
	cmd := uint16(buf[0]) | uint16(buf[1])<<8
	cmd |= cmdIOSpace | cmdMemorySpace | cmdBusMaster
	buf[0] = byte(cmd)
	buf[1] = byte(cmd >> 8)
	return cfg.WriteAt(buf[:], commandOffset)
}
