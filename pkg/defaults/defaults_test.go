package defaults_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rising-Edge-Group/ectf-public/pkg/defaults"
)

func TestVersionIsSemver(t *testing.T) {
	semverPattern := regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9]+)?$`)
	assert.Regexp(t, semverPattern, defaults.Version)
}

func TestExitCodesDistinct(t *testing.T) {
	codes := map[string]int{
		"ExitSuccess":         defaults.ExitSuccess,
		"ExitClaimRejected":   defaults.ExitClaimRejected,
		"ExitUserError":       defaults.ExitUserError,
		"ExitNetworkError":    defaults.ExitNetworkError,
		"ExitInternalError":   defaults.ExitInternalError,
		"ExitUnknownResponse": defaults.ExitUnknownResponse,
	}
	seen := make(map[int]string)
	for name, code := range codes {
		if prev, ok := seen[code]; ok {
			t.Errorf("%s and %s share exit code %d", prev, name, code)
		}
		seen[code] = name
	}
	assert.Equal(t, 0, defaults.ExitSuccess)
}

func TestConfigFileModeIsOwnerOnly(t *testing.T) {
	assert.Zero(t, defaults.ConfigFileMode&0o077, "group/other bits must be clear")
}
