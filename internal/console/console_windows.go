//go:build windows

// Package console detects whether the program was started from a terminal
// and installs a Ctrl+C handler that keeps working while SDL holds the
// locked OS thread.
package console

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sys/windows"
)

var (
	kernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procGetConsoleWindow      = kernel32.NewProc("GetConsoleWindow")
	procAllocConsole          = kernel32.NewProc("AllocConsole")
	procFreeConsole           = kernel32.NewProc("FreeConsole")
	procSetConsoleCtrlHandler = kernel32.NewProc("SetConsoleCtrlHandler")
)

const (
	ctrlCEvent     = 0
	ctrlBreakEvent = 1
)

// FromTerminal reports whether the program runs from a terminal. A
// double-clicked console build frees its auto-created console window; a
// GUI build launched from a terminal gets its own console.
func FromTerminal() bool {
	explorer := launchedFromExplorer()

	if hasConsoleWindow() {
		if explorer {
			procFreeConsole.Call()
			return false
		}
		return true
	}
	if explorer {
		return false
	}

	procAllocConsole.Call()
	redirectStdStreams()
	return true
}

func hasConsoleWindow() bool {
	hwnd, _, _ := procGetConsoleWindow.Call()
	return hwnd != 0
}

// redirectStdStreams points os.Stdout/Stderr/Stdin at a freshly allocated
// console.
func redirectStdStreams() {
	stdout, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil || stdout == 0 {
		return
	}
	stderr, err := windows.GetStdHandle(windows.STD_ERROR_HANDLE)
	if err != nil || stderr == 0 {
		return
	}
	os.Stdout = os.NewFile(uintptr(stdout), "/dev/stdout")
	os.Stderr = os.NewFile(uintptr(stderr), "/dev/stderr")
	if stdin, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE); err == nil && stdin != 0 {
		os.Stdin = os.NewFile(uintptr(stdin), "/dev/stdin")
	}
}

func launchedFromExplorer() bool {
	name := processImageName(uint32(os.Getppid()))
	return strings.EqualFold(filepath.Base(name), "explorer.exe")
}

func processImageName(pid uint32) string {
	if pid == 0 {
		return ""
	}
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(h)

	var buf [windows.MAX_PATH]uint16
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return ""
	}
	return windows.UTF16ToString(buf[:size])
}

var (
	handlerMu sync.Mutex
	handlerFn func()
	handlerCb uintptr
	fireOnce  sync.Once
)

// OnInterrupt calls fn once on the first Ctrl+C or Ctrl+Break. SDL installs
// its own console handler during init, so call the returned function
// afterwards to put ours back in front.
func OnInterrupt(fn func(), logger *slog.Logger) (reregister func()) {
	handlerMu.Lock()
	handlerFn = fn
	if handlerCb == 0 {
		handlerCb = windows.NewCallback(func(ctrlType uint32) uintptr {
			if ctrlType != ctrlCEvent && ctrlType != ctrlBreakEvent {
				return 0
			}
			handlerMu.Lock()
			f := handlerFn
			handlerMu.Unlock()
			if f != nil {
				fireOnce.Do(f)
			}
			return 1
		})
	}
	cb := handlerCb
	handlerMu.Unlock()

	register := func() {
		if ret, _, err := procSetConsoleCtrlHandler.Call(cb, 1); ret == 0 {
			logger.Warn("Failed to set console control handler", "error", err)
		}
	}
	register()
	return register
}
