package provision_test

import (
	"context"
	"strings"
	"testing"

	"github.com/albertony/wslkit/pkg/config"
	"github.com/albertony/wslkit/pkg/filesystem"
	"github.com/albertony/wslkit/pkg/provision"
	"github.com/albertony/wslkit/pkg/testutil"
	"github.com/albertony/wslkit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bootstrapFixtureFS(t *testing.T) types.FS {
	t.Helper()
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/etc", 0755))
	require.NoError(t, fs.WriteFile("/etc/locale.gen", []byte(localeGenFixture), 0644))
	require.NoError(t, fs.WriteFile("/etc/pacman.d/mirrorlist", []byte(mirrorlistFixture), 0644))
	return fs
}

func testProvisionConfig(t *testing.T) *config.ProvisionConfig {
	t.Helper()
	cfg, err := config.LoadFrom("")
	require.NoError(t, err)
	return &cfg.Provision
}

func stepNames(steps []provision.Step) []string {
	names := make([]string, 0, len(steps))
	for _, step := range steps {
		names = append(names, step.Name)
	}
	return names
}

func TestBootstrapStepsArch(t *testing.T) {
	fs := bootstrapFixtureFS(t)
	runner := testutil.NewRecordingRunner()
	cfg := testProvisionConfig(t)

	steps, err := provision.BootstrapSteps(provision.DistroArch, cfg, fs, runner)
	require.NoError(t, err)

	names := stepNames(steps)
	assert.Contains(t, names, "enable pacman mirrors")
	assert.Contains(t, names, "refresh pacman package databases")
	assert.Contains(t, names, "install base packages")
	assert.Contains(t, names, "grant sudo to group wheel")

	results, err := provision.NewRunner(provision.RunnerOptions{}).Execute(context.Background(), steps)
	require.NoError(t, err)
	assert.Len(t, results, len(steps))

	lines := runner.CommandLines()
	assert.Contains(t, lines, "pacman -Sy --noconfirm")
	assert.Contains(t, lines, "pacman -Syu --noconfirm")
	assert.Contains(t, lines, "locale-gen")
}

func TestBootstrapStepsFedoraSkipsFileEdits(t *testing.T) {
	fs := bootstrapFixtureFS(t)
	runner := testutil.NewRecordingRunner()
	cfg := testProvisionConfig(t)

	steps, err := provision.BootstrapSteps(provision.DistroFedora, cfg, fs, runner)
	require.NoError(t, err)

	names := stepNames(steps)
	assert.NotContains(t, names, "enable pacman mirrors")
	assert.NotContains(t, names, "generate locale en_US.UTF-8")
	assert.NotContains(t, names, "grant sudo to group wheel")
	assert.Contains(t, names, "install base packages")
}

func TestBootstrapStepsDebian(t *testing.T) {
	fs := bootstrapFixtureFS(t)
	runner := testutil.NewRecordingRunner()
	cfg := testProvisionConfig(t)

	steps, err := provision.BootstrapSteps(provision.DistroDebian, cfg, fs, runner)
	require.NoError(t, err)

	results, err := provision.NewRunner(provision.RunnerOptions{}).Execute(context.Background(), steps)
	require.NoError(t, err)
	assert.Len(t, results, len(steps))

	lines := runner.CommandLines()
	assert.Contains(t, lines, "apt-get update")
	assert.Contains(t, lines,
		"env DEBIAN_FRONTEND=noninteractive apt-get install -y -q "+strings.Join(cfg.Debian.Packages, " "))
}

func TestBootstrapStepsUnknownDistro(t *testing.T) {
	fs := bootstrapFixtureFS(t)
	runner := testutil.NewRecordingRunner()
	cfg := testProvisionConfig(t)

	_, err := provision.BootstrapSteps(provision.DistroUnknown, cfg, fs, runner)
	assert.Error(t, err)
}
