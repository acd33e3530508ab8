package utils

import (
	"path/filepath"
	"testing"
)

func TestFileOperations(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("CreateDir", func(t *testing.T) {
		path := filepath.Join(tmpDir, "test", "nested", "dir")
		if err := CreateDir(path); err != nil {
			t.Errorf("CreateDir() error = %v", err)
		}
		if !DirExists(path) {
			t.Error("Directory was not created")
		}
	})

	t.Run("WriteFile", func(t *testing.T) {
		path := filepath.Join(tmpDir, "reports", "graph.mmd")
		content := []byte("flowchart TD")
		if err := WriteFile(path, content); err != nil {
			t.Errorf("WriteFile() error = %v", err)
		}
		if !FileExists(path) {
			t.Error("File was not created")
		}

		readContent, err := ReadFile(path)
		if err != nil {
			t.Errorf("ReadFile() error = %v", err)
		}
		if string(readContent) != "flowchart TD" {
			t.Errorf("ReadFile() = %s, want 'flowchart TD'", string(readContent))
		}
	})

	t.Run("FileExists", func(t *testing.T) {
		nonExistent := filepath.Join(tmpDir, "nonexistent.json")
		if FileExists(nonExistent) {
			t.Error("FileExists() returned true for non-existent file")
		}

		existent := filepath.Join(tmpDir, "existent.json")
		WriteFile(existent, []byte("{}"))
		if !FileExists(existent) {
			t.Error("FileExists() returned false for existing file")
		}
	})
}
