package materialize

import (
	"io/fs"
	"sort"

	"github.com/arthur-debert/templater/pkg/condition"
	"github.com/arthur-debert/templater/pkg/directive"
	"github.com/arthur-debert/templater/pkg/logging"
)

// ScanConditions walks the whole template tree and collects every flag
// name mentioned by any directive condition, sorted. It is lenient:
// conditions that fail to parse are skipped, since the scan only feeds
// the unused-flag suggestions.
func ScanConditions(src fs.FS) ([]string, error) {
	logger := logging.GetLogger("materialize.scan")
	seen := make(map[string]struct{})

	err := fs.WalkDir(src, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}

		data, err := fs.ReadFile(src, path)
		if err != nil {
			return err
		}

		lines, _, _ := splitLines(string(data))
		for i, line := range lines {
			dir, ok := directive.Scan(line, i+1)
			if !ok || dir.Kind == directive.BlockEnd {
				continue
			}
			expr, err := condition.Parse(dir.Condition)
			if err != nil {
				continue
			}
			for _, flag := range expr.Flags() {
				seen[flag] = struct{}{}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	logger.Debug().Int("flags", len(names)).Msg("Scanned template conditions")
	return names, nil
}
