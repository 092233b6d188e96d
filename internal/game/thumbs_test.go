package game

import (
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltInThumbnailsDecode(t *testing.T) {
	fsys := thumbFS("")
	for _, v := range defaultContent.Videos {
		f, err := fsys.Open(v.Thumb)
		if err != nil {
			t.Errorf("open %s: %v", v.Thumb, err)
			continue
		}
		img, format, err := image.Decode(f)
		f.Close()
		if err != nil {
			t.Errorf("decode %s: %v", v.Thumb, err)
			continue
		}
		if format != "png" || img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
			t.Errorf("%s: format %s, bounds %v", v.Thumb, format, img.Bounds())
		}
	}
}

func TestThumbDirOverridesBuiltIns(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "custom.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	fsys := thumbFS(dir)
	if _, err := fs.Stat(fsys, "custom.png"); err != nil {
		t.Errorf("configured dir not used: %v", err)
	}
	if _, err := fs.Stat(fsys, "pokhara.png"); err == nil {
		t.Error("built-in thumbnail visible through a configured dir")
	}
}
