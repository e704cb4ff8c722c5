//go:build earlyprintk

package kmain

import "github.com/freedeaths/RT-Xen/kernel/kfmt/early"

func consoleAddr() uintptr { return early.UARTVirtAddr }
