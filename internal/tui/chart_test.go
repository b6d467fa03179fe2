package tui

import (
	"strings"
	"testing"
	"time"
)

func TestChartModel_RenderProgressBar(t *testing.T) {
	cases := []struct {
		name     string
		width    int
		progress float64
		want     []string
		absent   []string
	}{
		{"empty bar at zero", 50, 0.0, []string{"░", "0.0%"}, nil},
		{"half filled", 50, 0.5, []string{"█", "░", "50.0%"}, nil},
		{"full bar", 50, 1.0, []string{"█", "100.0%"}, nil},
		{"too narrow to draw", 10, 0.5, nil, []string{"%"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chart := NewChartModel()
			chart.SetSize(tc.width, 10)
			chart.AddDataPoint(tc.progress, tc.progress, 10*time.Second)

			bar := chart.renderProgressBar()
			for _, want := range tc.want {
				if !strings.Contains(bar, want) {
					t.Errorf("bar %q missing %q", bar, want)
				}
			}
			for _, absent := range tc.absent {
				if strings.Contains(bar, absent) {
					t.Errorf("bar %q should not contain %q", bar, absent)
				}
			}
		})
	}
}

func TestChartModel_Lifecycle(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(56, 12)

	chart.AddDataPoint(0.2, 0.2, 40*time.Second)
	chart.AddDataPoint(0.9, 0.9, 5*time.Second)
	if chart.averageProgress != 0.9 {
		t.Errorf("averageProgress = %f, want the latest value 0.9", chart.averageProgress)
	}

	chart.UpdateSysStats(20.0, 55.0)
	chart.UpdateSysStats(35.0, 58.0)
	if chart.cpuHistory.Len() != 2 || chart.memHistory.Len() != 2 {
		t.Errorf("history lengths = %d/%d, want 2/2", chart.cpuHistory.Len(), chart.memHistory.Len())
	}
	if chart.cpuHistory.Last() != 35.0 {
		t.Errorf("last cpu sample = %f, want 35.0", chart.cpuHistory.Last())
	}
	if chart.memHistory.Last() != 58.0 {
		t.Errorf("last mem sample = %f, want 58.0", chart.memHistory.Last())
	}

	chart.Reset()
	if chart.averageProgress != 0 {
		t.Errorf("averageProgress = %f after Reset, want 0", chart.averageProgress)
	}
	if chart.cpuHistory.Len() != 0 || chart.memHistory.Len() != 0 {
		t.Error("sample histories should be empty after Reset")
	}
}

func TestChartModel_View(t *testing.T) {
	t.Run("running state shows title, bar and ETA", func(t *testing.T) {
		chart := NewChartModel()
		chart.SetSize(50, 15)
		chart.AddDataPoint(0.65, 0.65, 5*time.Second)

		view := chart.View()
		for _, want := range []string{"Progress Chart", "ETA:", "█", "65.0%"} {
			if !strings.Contains(view, want) {
				t.Errorf("view missing %q", want)
			}
		}
	})

	t.Run("done state swaps ETA for elapsed", func(t *testing.T) {
		chart := NewChartModel()
		chart.SetSize(50, 15)
		chart.AddDataPoint(1.0, 1.0, 0)
		chart.SetDone(3 * time.Second)

		view := chart.View()
		if !strings.Contains(view, "Done in:") {
			t.Error("view should show the final elapsed label once done")
		}
		if strings.Contains(view, "ETA:") {
			t.Error("view should not show an ETA once done")
		}
	})

	t.Run("sparklines appear when tall enough", func(t *testing.T) {
		chart := NewChartModel()
		chart.SetSize(50, 15)
		chart.UpdateSysStats(50.0, 75.0)

		view := chart.View()
		if !strings.Contains(view, "CPU") || !strings.Contains(view, "MEM") {
			t.Error("view should label both sparkline rows")
		}
	})

	t.Run("sparklines hidden below ten rows", func(t *testing.T) {
		chart := NewChartModel()
		chart.SetSize(50, 8)
		chart.UpdateSysStats(50.0, 75.0)

		if strings.Contains(chart.View(), "CPU") {
			t.Error("sparklines should be hidden in a short panel")
		}
	})
}

func TestChartModel_SetSize(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(60, 15)

	wantCap := 60 - sparklineWidth
	if chart.cpuHistory.Cap() != wantCap {
		t.Errorf("cpu buffer cap = %d, want %d", chart.cpuHistory.Cap(), wantCap)
	}
	if chart.memHistory.Cap() != wantCap {
		t.Errorf("mem buffer cap = %d, want %d", chart.memHistory.Cap(), wantCap)
	}
}
