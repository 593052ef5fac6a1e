package monitor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/markusressel/hpfan/internal/util"
)

// Export writes fanN_input, fanN_label, fanN_target and fanN_max for every
// channel into the export directory. N starts at 1.
func (m *Monitor) Export() error {
	dir := m.options.ExportPath
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	max := m.source.MaxSpeed()
	for _, channel := range m.source.Channels() {
		var input int64
		if stats, ok := m.Stats(channel.Index); ok {
			input = stats.Last
		}

		attributes := map[string]string{
			"input":  fmt.Sprintf("%d\n", input),
			"label":  fmt.Sprintf("%s\n", channel.Label),
			"target": fmt.Sprintf("%d\n", m.source.Target(channel.Index)),
			"max":    fmt.Sprintf("%d\n", max),
		}
		for name, value := range attributes {
			path := filepath.Join(dir, fmt.Sprintf("fan%d_%s", channel.Index+1, name))
			if err := util.WriteTextFileAtomic(path, value); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
		}
	}
	return nil
}
