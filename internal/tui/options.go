package tui

import "time"

// Option defines a functional option for model configuration.
type Option func(*Model)

// WithClipboard overrides the OS clipboard used for copy and paste.
func WithClipboard(clip Clipboard) Option {
	return func(m *Model) {
		if clip != nil {
			m.clip = clip
		}
	}
}

// WithDataDir sets the directory snapshots and reports are written to.
func WithDataDir(dir string) Option {
	return func(m *Model) {
		if dir != "" {
			m.dataDir = dir
		}
	}
}

// WithReportsDir sets the directory exported reports and charts land in.
func WithReportsDir(dir string) Option {
	return func(m *Model) {
		if dir != "" {
			m.reportsDir = dir
		}
	}
}

// WithChartSize sets the pixel dimensions of exported charts.
func WithChartSize(width, height int) Option {
	return func(m *Model) {
		if width > 0 {
			m.chartWidth = width
		}
		if height > 0 {
			m.chartHeight = height
		}
	}
}

// WithHelpBar toggles the bottom help bar.
func WithHelpBar(show bool) Option {
	return func(m *Model) {
		m.showHelpBar = show
	}
}

// WithStatsLine toggles the category averages line under the result grid.
func WithStatsLine(show bool) Option {
	return func(m *Model) {
		m.showStatsLine = show
	}
}

// WithNow overrides the report timestamp source.
func WithNow(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}
