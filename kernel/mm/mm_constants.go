package mm

const (
	// PageShift is equal to log2(PageSize). The hypervisor uses the 4K
	// translation granule on arm64.
	PageShift = 12

	// PageSize defines the system's page size in bytes.
	PageSize = uintptr(1 << PageShift)

	// PageOffsetMask extracts the offset of an address inside its page
	// (page size minus one). addr &^ PageOffsetMask yields the page base.
	PageOffsetMask = PageSize - 1
)
