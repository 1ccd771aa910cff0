//go:build !opencl

package waves

import "errors"

// OpenCLExecutor is unavailable without the opencl build tag.
type OpenCLExecutor struct{}

func NewOpenCLExecutor() (*OpenCLExecutor, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (e *OpenCLExecutor) Dispatch(*Launch) error {
	return errors.New("OpenCL executor unavailable")
}

func (e *OpenCLExecutor) Name() string { return "OpenCL (disabled)" }

func (e *OpenCLExecutor) Close() error { return nil }
