// Package syso wraps an ICO container into a COFF resource object that the Go
// linker picks up on Windows builds.
package syso

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/tc-hib/winres"
)

// IconName is the RT_GROUP_ICON resource name of the application icon.
const IconName = "APP"

var ErrUnsupportedArch = errors.New("❌ unsupported target architecture")

var arches = map[string]winres.Arch{
	"386":   winres.ArchI386,
	"amd64": winres.ArchAMD64,
	"arm":   winres.ArchARM,
	"arm64": winres.ArchARM64,
}

// Build returns a .syso object carrying icoData as the application icon for
// the GOARCH-style arch name.
func Build(icoData []byte, arch string, logger hclog.Logger) ([]byte, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	target, ok := arches[arch]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedArch, arch)
	}

	icon, err := winres.LoadICO(bytes.NewReader(icoData))
	if err != nil {
		return nil, fmt.Errorf("failed to load ICO: %w", err)
	}

	rs := &winres.ResourceSet{}
	if err := rs.SetIcon(winres.Name(IconName), icon); err != nil {
		return nil, fmt.Errorf("failed to set icon resource: %w", err)
	}

	var buf bytes.Buffer
	if err := rs.WriteObject(&buf, target); err != nil {
		return nil, fmt.Errorf("failed to write COFF object: %w", err)
	}

	logger.Info("✅ Built resource object", "arch", arch, "ico_bytes", len(icoData), "bytes", buf.Len())
	return buf.Bytes(), nil
}
