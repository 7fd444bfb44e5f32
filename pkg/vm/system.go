package vm

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"runtime"
	"time"
)

//go:generate mockgen -write_package_comment=false -package=$GOPACKAGE -destination=mock_system_test.go github.com/zurustar/basilc/pkg/vm System

// System is the host boundary used by the yolo and naptime commands.
type System interface {
	// Run executes command through the host shell. A non-zero exit status is
	// not an error; only a failure to start the shell is.
	Run(ctx context.Context, command string, stdout, stderr io.Writer) error

	// Sleep blocks for d or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
}

// HostSystem runs commands through the operating system's shell.
type HostSystem struct{}

// Run implements System.
func (HostSystem) Run(ctx context.Context, command string, stdout, stderr io.Writer) error {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", command)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", command)
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}

// Sleep implements System.
func (HostSystem) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
