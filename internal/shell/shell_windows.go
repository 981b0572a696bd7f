//go:build windows

package shell

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// SHARD_PATHW: the pv argument is a NUL-terminated UTF-16 path.
const shardPathW = 0x00000003

var (
	shell32               = windows.NewLazySystemDLL("shell32.dll")
	procSHAddToRecentDocs = shell32.NewProc("SHAddToRecentDocs")
)

func platformAddToRecentDocs(path string) error {
	if err := procSHAddToRecentDocs.Find(); err != nil {
		return err
	}
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	// SHAddToRecentDocs returns void; there is no error to inspect.
	_, _, _ = procSHAddToRecentDocs.Call(shardPathW, uintptr(unsafe.Pointer(p)))
	return nil
}
