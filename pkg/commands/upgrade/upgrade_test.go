package upgrade_test

import (
	"context"
	"testing"

	"github.com/albertony/wslkit/pkg/commands/upgrade"
	"github.com/albertony/wslkit/pkg/errors"
	"github.com/albertony/wslkit/pkg/filesystem"
	"github.com/albertony/wslkit/pkg/provision"
	"github.com/albertony/wslkit/pkg/testutil"
	"github.com/albertony/wslkit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedConfirmer struct {
	approve bool
	prompts []string
}

func (c *scriptedConfirmer) Confirm(prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.approve
}

func fedoraFS(t *testing.T, version string) types.FS {
	t.Helper()
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/etc/os-release", []byte("ID=fedora\nVERSION_ID="+version+"\n"), 0644))
	return fs
}

func TestUpgradeReleaseRunsDistroSync(t *testing.T) {
	runner := testutil.NewRecordingRunner()
	confirmer := &scriptedConfirmer{approve: true}

	status, err := upgrade.UpgradeRelease(context.Background(), upgrade.Options{
		Source:    provision.StaticVersion("41"),
		Confirmer: confirmer,
		FS:        fedoraFS(t, "40"),
		Runner:    runner,
	})
	require.NoError(t, err)

	assert.True(t, status.Upgraded)
	assert.Equal(t, provision.UpgradeAvailable, status.Decision)
	assert.Len(t, confirmer.prompts, 1)
	assert.Contains(t, runner.CommandLines(), "dnf --releasever=41 distro-sync -y")
}

func TestUpgradeReleaseUpToDate(t *testing.T) {
	runner := testutil.NewRecordingRunner()
	confirmer := &scriptedConfirmer{approve: true}

	status, err := upgrade.UpgradeRelease(context.Background(), upgrade.Options{
		Source:    provision.StaticVersion("40"),
		Confirmer: confirmer,
		FS:        fedoraFS(t, "40"),
		Runner:    runner,
	})
	require.NoError(t, err)

	assert.False(t, status.Upgraded)
	assert.Equal(t, provision.UpToDate, status.Decision)
	assert.Empty(t, confirmer.prompts, "no confirmation needed when up to date")
	assert.Empty(t, runner.Calls)
}

func TestUpgradeReleaseRefusesDowngrade(t *testing.T) {
	_, err := upgrade.UpgradeRelease(context.Background(), upgrade.Options{
		Source: provision.StaticVersion("39"),
		FS:     fedoraFS(t, "40"),
		Runner: testutil.NewRecordingRunner(),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestUpgradeReleaseDeclined(t *testing.T) {
	runner := testutil.NewRecordingRunner()
	confirmer := &scriptedConfirmer{approve: false}

	status, err := upgrade.UpgradeRelease(context.Background(), upgrade.Options{
		Source:    provision.StaticVersion("41"),
		Confirmer: confirmer,
		FS:        fedoraFS(t, "40"),
		Runner:    runner,
	})
	require.NoError(t, err)

	assert.True(t, status.Declined)
	assert.False(t, status.Upgraded)
	assert.Empty(t, runner.Calls, "declined upgrade must not touch packages")
}

func TestUpgradeReleaseAutoApproveWithoutConfirmer(t *testing.T) {
	runner := testutil.NewRecordingRunner()

	status, err := upgrade.UpgradeRelease(context.Background(), upgrade.Options{
		Source: provision.StaticVersion("41"),
		FS:     fedoraFS(t, "40"),
		Runner: runner,
	})
	require.NoError(t, err)
	assert.True(t, status.Upgraded)
}

func TestUpgradeReleaseNonFedora(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/etc/os-release", []byte("ID=arch\n"), 0644))

	_, err := upgrade.UpgradeRelease(context.Background(), upgrade.Options{
		Source: provision.StaticVersion("41"),
		FS:     fs,
		Runner: testutil.NewRecordingRunner(),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDistroUnknown))
}

func TestUpgradeReleaseDryRun(t *testing.T) {
	runner := testutil.NewRecordingRunner()

	status, err := upgrade.UpgradeRelease(context.Background(), upgrade.Options{
		Source: provision.StaticVersion("41"),
		FS:     fedoraFS(t, "40"),
		Runner: runner,
		DryRun: true,
	})
	require.NoError(t, err)

	assert.False(t, status.Upgraded)
	assert.Empty(t, runner.Calls)
}
