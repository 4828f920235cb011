// Package bundle packages a completed run's artifacts into a downloadable zip.
package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/umukozihr/resume-tailor/internal/artifacts"
	"github.com/umukozihr/resume-tailor/internal/types"
)

// Error indicates packaging was attempted on a run that has no bundleable
// artifact set (non-terminal or failed run).
type Error struct {
	RunID   uuid.UUID
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("bundle error for run %s: %s", e.RunID, e.Message)
}

// Bundler packages per-run artifacts into a single zip keyed by run id.
type Bundler struct {
	store *artifacts.Store
}

// New creates a Bundler writing bundles into the given artifact store.
func New(store *artifacts.Store) *Bundler {
	return &Bundler{store: store}
}

// Bundle packages the artifacts of a completed run into one zip and returns
// its URL. Bundling is idempotent: re-bundling the same completed run returns
// the same stable reference without rewriting the archive.
func (b *Bundler) Bundle(run *types.GenerationRun) (string, error) {
	if run == nil {
		return "", &Error{Message: "run is nil"}
	}
	if run.State != types.RunCompleted {
		return "", &Error{RunID: run.ID, Message: fmt.Sprintf("run is %s, only completed runs can be bundled", run.State)}
	}
	if len(run.Artifacts) == 0 {
		return "", &Error{RunID: run.ID, Message: "completed run has no artifacts"}
	}

	name := fmt.Sprintf("run_%s.zip", run.ID)
	if b.store.Exists(name) {
		return artifacts.BasePath + "/" + name, nil
	}

	path := b.store.Path(name)
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("failed to create bundle: %w", err)
	}

	zw := zip.NewWriter(f)
	for _, art := range run.Artifacts {
		for _, srcURL := range []string{art.ResumeSourceURL, art.CoverLetterSrcURL, art.ResumePDFURL, art.CoverLetterPDFURL} {
			if srcURL == "" {
				continue
			}
			if err := b.addFile(zw, filepath.Base(srcURL)); err != nil {
				zw.Close()
				f.Close()
				os.Remove(tmp)
				return "", fmt.Errorf("failed to bundle %s: %w", srcURL, err)
			}
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize bundle: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to close bundle: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to publish bundle: %w", err)
	}

	return artifacts.BasePath + "/" + name, nil
}

// addFile copies one stored artifact into the archive. The entry header omits
// the file modification time so repeated bundling is byte-stable.
func (b *Bundler) addFile(zw *zip.Writer, name string) error {
	src, err := os.Open(b.store.Path(name))
	if err != nil {
		return err
	}
	defer src.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
