package components

import (
	"testing"

	"github.com/sadopc/dux/internal/scanner"
	"github.com/sadopc/dux/internal/ui/style"
	"github.com/sadopc/dux/internal/views"
)

func TestRenderHelp_SmallWidth(t *testing.T) {
	theme := style.DefaultTheme()
	for _, w := range []int{0, 1, 2, 5} {
		t.Run("", func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("RenderHelp panicked at width=%d: %v", w, r)
				}
			}()
			RenderHelp(theme, w, 10)
		})
	}
}

func TestRenderConfirmDialog_SmallWidth(t *testing.T) {
	theme := style.DefaultTheme()
	items := []ConfirmItem{{Name: "test.txt", Path: "/tmp/test.txt", Size: 100}}
	for _, w := range []int{0, 1, 2, 5} {
		t.Run("", func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("RenderConfirmDialog panicked at width=%d: %v", w, r)
				}
			}()
			RenderConfirmDialog(theme, items, w, 10)
		})
	}
}

func TestRenderScanProgress_SmallWidth(t *testing.T) {
	theme := style.DefaultTheme()
	c := scanner.Counters{}
	for _, w := range []int{0, 1, 2, 5} {
		t.Run("", func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("RenderScanProgress panicked at width=%d: %v", w, r)
				}
			}()
			RenderScanProgress(theme, c, false, w, 10)
		})
	}
}

func TestRenderMultiDeleteProgress_SmallWidth(t *testing.T) {
	theme := style.DefaultTheme()
	p := MultiDeleteProgress{Total: 3, Completed: 1}
	for _, w := range []int{0, 1, 2, 5} {
		t.Run("", func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("RenderMultiDeleteProgress panicked at width=%d: %v", w, r)
				}
			}()
			RenderMultiDeleteProgress(theme, p, w, 10)
		})
	}
}

func TestRenderFileTypes_SmallWidth(t *testing.T) {
	theme := style.DefaultTheme()
	entries := []views.FileTypeEntry{{Category: "Code", FileCount: 3, TotalSize: 100, Percentage: 100}}
	for _, w := range []int{0, 1, 2, 5} {
		t.Run("", func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("RenderFileTypes panicked at width=%d: %v", w, r)
				}
			}()
			RenderFileTypes(theme, entries, style.NewLayout(w, 10))
		})
	}
}

func TestRenderLargeFiles_Empty(t *testing.T) {
	theme := style.DefaultTheme()
	out := RenderLargeFiles(theme, nil, 0, 0, style.NewLayout(80, 24))
	if out == "" {
		t.Fatal("expected a rendered empty-state line, got empty string")
	}
}

func TestRenderArtifacts_Empty(t *testing.T) {
	theme := style.DefaultTheme()
	out := RenderArtifacts(theme, nil, "7d", 0, 0, style.NewLayout(80, 24))
	if out == "" {
		t.Fatal("expected a rendered empty-state line, got empty string")
	}
}
