package solc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

//go:generate go run github.com/matryer/moq -out compiler_generated_mock.go -rm -stub -with-resets . Compiler

// Compiler is a loaded, runnable compiler.
type Compiler interface {
	// FullVersion returns the version with build metadata, e.g. "v0.8.20+commit.a1b79de6".
	FullVersion() string
	Compile(ctx context.Context, input *CompilerJsonInput) (*CompilerJsonOutput, error)
}

// Binary is a native solc executable.
type Binary struct {
	path    string
	release *Release
}

var _ Compiler = (*Binary)(nil)

func NewBinary(path string, release *Release) *Binary {
	return &Binary{path: path, release: release}
}

func (b *Binary) Path() string {
	return b.path
}

func (b *Binary) FullVersion() string {
	return b.release.FullVersion()
}

// Probe runs `solc --version` and checks that the binary is the expected build.
func (b *Binary) Probe(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, b.path, "--version")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to execute `%s --version`: %w\n%s", b.path, err, output)
	}
	if !strings.Contains(string(output), b.release.LongVersion) {
		return fmt.Errorf("unexpected compiler version, want %s, got: %s",
			b.release.LongVersion, strings.TrimSpace(string(output)))
	}
	return nil
}

// Compile runs solc in standard-json mode with the input passed via stdin.
func (b *Binary) Compile(ctx context.Context, input *CompilerJsonInput) (*CompilerJsonOutput, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal compiler input: %w", err)
	}

	cmd := exec.CommandContext(ctx, b.path, "--standard-json")
	cmd.Stdin = bytes.NewReader(data)

	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to execute `%s --standard-json`: %w\n%s", b.path, err, stderrBuf.String())
	}

	var res CompilerJsonOutput
	if err := json.Unmarshal(output, &res); err != nil {
		return nil, fmt.Errorf("failed to unmarshal compiler output: %w", err)
	}
	return &res, nil
}
