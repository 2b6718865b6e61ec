package api

import (
	"io"
	"os"

	"github.com/sarchlab/mdgen/config"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	opts   config.Options
	target *config.Target
	fs     FileSystem
	stdout io.Writer
	stderr io.Writer
}

// WithOptions sets the options of the run.
func (b DriverBuilder) WithOptions(opts config.Options) DriverBuilder {
	b.opts = opts
	return b
}

// WithTarget sets the target profile. The default target is used if none is
// given.
func (b DriverBuilder) WithTarget(target *config.Target) DriverBuilder {
	b.target = target
	return b
}

// WithFileSystem sets where the description is read from and the generated
// files are written to.
func (b DriverBuilder) WithFileSystem(fs FileSystem) DriverBuilder {
	b.fs = fs
	return b
}

// WithStdout sets where token and tree dumps go.
func (b DriverBuilder) WithStdout(w io.Writer) DriverBuilder {
	b.stdout = w
	return b
}

// WithStderr sets where the issue report goes.
func (b DriverBuilder) WithStderr(w io.Writer) DriverBuilder {
	b.stderr = w
	return b
}

// Build creates a driver.
func (b DriverBuilder) Build() Driver {
	d := &driverImpl{
		opts:   b.opts,
		target: b.target,
		fs:     b.fs,
		stdout: b.stdout,
		stderr: b.stderr,
	}

	if d.target == nil {
		d.target = config.DefaultTarget()
	}
	if d.fs == nil {
		d.fs = OSFileSystem{}
	}
	if d.stdout == nil {
		d.stdout = os.Stdout
	}
	if d.stderr == nil {
		d.stderr = os.Stderr
	}

	return d
}
