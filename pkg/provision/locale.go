package provision

import (
	"context"
	"strings"

	"github.com/albertony/wslkit/pkg/errors"
	"github.com/albertony/wslkit/pkg/types"
)

const localeGenPath = "/etc/locale.gen"

// EnsureLocale uncomments the line for the given locale in /etc/locale.gen
// and runs locale-gen when the file changed. Already-active locales leave
// the file untouched.
func EnsureLocale(ctx context.Context, fsys types.FS, runner types.CommandRunner, locale string) (bool, error) {
	data, err := fsys.ReadFile(localeGenPath)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", localeGenPath)
	}

	lines := strings.Split(string(data), "\n")
	changed := false
	found := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		uncommented := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		if !strings.HasPrefix(uncommented, locale+" ") && uncommented != locale {
			continue
		}
		found = true
		if !strings.HasPrefix(trimmed, "#") {
			// Already active.
			continue
		}
		lines[i] = uncommented
		changed = true
	}
	if !found {
		// Distros ship locale.gen fully commented; a missing entry is
		// appended rather than treated as an error.
		lines = append(lines, locale+" UTF-8")
		changed = true
	}
	if !changed {
		return false, nil
	}

	if err := fsys.WriteFile(localeGenPath, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", localeGenPath)
	}
	if err := runner.Run(ctx, "locale-gen"); err != nil {
		return true, errors.Wrap(err, errors.ErrCommandRun, "locale-gen failed")
	}
	return true, nil
}
