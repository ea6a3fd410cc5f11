package session

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	_ "github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/Ahmed-Fekry07/YOLO-Annotator/config"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/annotation"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/editor"
)

// ErrNoImage is returned by operations that need an open image.
var ErrNoImage = errors.New("no image open")

// ErrNoLabelsDir is returned by Export when no labels directory has been
// chosen yet. The host prompts for one and retries; if the prompt is
// cancelled the export is abandoned.
var ErrNoLabelsDir = errors.New("labels directory not set")

// ErrNothingToExport is returned by Export when the document has no
// boxes. A zero-box set is represented by file absence, never a
// zero-byte file.
var ErrNothingToExport = errors.New("nothing to export")

// imageExts are the file extensions scanned when opening a directory.
var imageExts = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".bmp": {},
	".tif": {}, ".tiff": {}, ".webp": {},
}

// Session is the lifecycle around one open image: it owns the class
// registry (which survives image switches), the document and interaction
// machine for the current image, and the file I/O at the engine boundary.
// Switching images tears down and rebuilds the document and machine; the
// registry and labels directory persist.
type Session struct {
	logger   *slog.Logger
	registry *annotation.ClassRegistry

	doc     *annotation.Document
	machine *editor.Machine
	img     image.Image
	imgPath string

	files []string
	index int

	labelsDir string
	classFile string
	dirty     bool
}

// NewSession creates an empty session. The labels directory is seeded
// from config when set there.
func NewSession(cfg *config.Config, logger *slog.Logger) *Session {
	s := &Session{
		logger:   logger,
		registry: annotation.NewClassRegistry(),
	}
	if cfg != nil {
		s.labelsDir = cfg.LabelsDir
	}
	return s
}

// Registry returns the session-wide class registry.
func (s *Session) Registry() *annotation.ClassRegistry { return s.registry }

// Document returns the document for the open image, nil before the first
// OpenImage/OpenDirectory.
func (s *Session) Document() *annotation.Document { return s.doc }

// Machine returns the interaction machine for the open image, nil before
// the first open.
func (s *Session) Machine() *editor.Machine { return s.machine }

// Image returns the decoded image currently open.
func (s *Session) Image() image.Image { return s.img }

// ImagePath returns the path of the open image, empty when none.
func (s *Session) ImagePath() string { return s.imgPath }

// Files returns the workspace image list in display order.
func (s *Session) Files() []string { return append([]string(nil), s.files...) }

// Index returns the position of the open image within Files.
func (s *Session) Index() int { return s.index }

// Dirty reports whether the document has unsaved changes.
func (s *Session) Dirty() bool { return s.dirty }

// MarkDirty flags the document as having unsaved changes. Presenters call
// it after every committed mutation.
func (s *Session) MarkDirty() { s.dirty = true }

// LabelsDir returns the chosen labels directory, empty when unset.
func (s *Session) LabelsDir() string { return s.labelsDir }

// SetLabelsDir records the labels directory for subsequent saves and
// exports.
func (s *Session) SetLabelsDir(dir string) { s.labelsDir = dir }

// OpenImage opens a single image file as a one-entry workspace.
func (s *Session) OpenImage(path string) error {
	if err := s.loadImage(path); err != nil {
		return err
	}
	s.files = []string{path}
	s.index = 0
	return nil
}

// OpenDirectory scans dir for image files, loads an adjacent classes.txt
// when present, and opens the first image. The file list is sorted by
// path so navigation order is stable.
func (s *Session) OpenDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := imageExts[strings.ToLower(filepath.Ext(e.Name()))]; ok {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no image files found in %s", dir)
	}
	sort.Strings(files)

	if cf := filepath.Join(dir, "classes.txt"); fileExists(cf) {
		s.classFile = cf
		if err := s.loadClasses(cf); err != nil && s.logger != nil {
			s.logger.Warn("class file load failed", "path", cf, "error", err)
		}
	}

	if err := s.loadImage(files[0]); err != nil {
		return err
	}
	s.files = files
	s.index = 0
	if s.logger != nil {
		s.logger.Info("workspace opened", "dir", dir, "images", len(files))
	}
	return nil
}

// Next opens the next image in the workspace, wrapping at the end. With
// no workspace it is a no-op.
func (s *Session) Next() error {
	if len(s.files) == 0 {
		return nil
	}
	i := (s.index + 1) % len(s.files)
	if err := s.loadImage(s.files[i]); err != nil {
		return err
	}
	s.index = i
	return nil
}

// Prev opens the previous image, wrapping at the start.
func (s *Session) Prev() error {
	if len(s.files) == 0 {
		return nil
	}
	i := (s.index - 1 + len(s.files)) % len(s.files)
	if err := s.loadImage(s.files[i]); err != nil {
		return err
	}
	s.index = i
	return nil
}

// loadImage decodes path and rebuilds the document and machine around it.
// Any in-progress gesture on the old image is force-resolved first;
// history never crosses images.
func (s *Session) loadImage(path string) error {
	if s.machine != nil {
		s.machine.Abort()
	}
	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("open image %s: %w", path, err)
	}
	b := img.Bounds()
	s.img = img
	s.imgPath = path
	s.doc = annotation.NewDocument(b.Dx(), b.Dy(), s.registry, s.logger)
	s.machine = editor.NewMachine(s.doc, s.logger)
	s.dirty = false
	s.loadAnnotations()
	return nil
}

// AnnotationPath returns where the open image's annotation file lives:
// inside the labels directory when one is set, else next to the image.
func (s *Session) AnnotationPath() string {
	if s.imgPath == "" {
		return ""
	}
	if s.labelsDir != "" {
		return filepath.Join(s.labelsDir, stem(s.imgPath)+".txt")
	}
	ext := filepath.Ext(s.imgPath)
	return strings.TrimSuffix(s.imgPath, ext) + ".txt"
}

// loadAnnotations reads the annotation file for the open image if one
// exists. Malformed lines are skipped with a warning, never aborting the
// rest of the file. Load failure leaves the document empty.
func (s *Session) loadAnnotations() {
	path := s.AnnotationPath()
	if path == "" || !fileExists(path) {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("annotation load failed", "path", path, "error", err)
		}
		return
	}
	w, h := s.doc.ImageSize()
	var boxes []annotation.Box
	for n, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b, err := annotation.DecodeLine(line, w, h)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("skipping malformed annotation line", "path", path, "line", n+1, "error", err)
			}
			continue
		}
		b.ClassName = s.registry.DisplayName(b.ClassID)
		boxes = append(boxes, b)
	}
	s.doc.Load(boxes)
	if s.logger != nil {
		s.logger.Info("annotations loaded", "path", path, "boxes", len(boxes))
	}
}

// Save writes the open image's annotations to AnnotationPath. A document
// with zero boxes is represented by file absence, so an existing file is
// deleted instead of truncated.
func (s *Session) Save() error {
	if s.doc == nil {
		return ErrNoImage
	}
	path := s.AnnotationPath()
	if s.doc.Len() == 0 {
		if fileExists(path) {
			if err := os.Remove(path); err != nil {
				return err
			}
		}
		s.dirty = false
		return nil
	}
	if s.labelsDir != "" {
		if err := os.MkdirAll(s.labelsDir, 0o755); err != nil {
			return fmt.Errorf("create labels directory: %w", err)
		}
	}
	if err := writeLines(path, s.doc.EncodeAll()); err != nil {
		return err
	}
	s.dirty = false
	if s.logger != nil {
		s.logger.Info("annotations saved", "path", path, "boxes", s.doc.Len())
	}
	return nil
}

// Export writes the boxes at the given indices (all boxes when indices is
// empty) into the labels directory, which must have been chosen first.
func (s *Session) Export(indices []int) error {
	if s.doc == nil {
		return ErrNoImage
	}
	// Refused before the labels-dir check so an empty document never
	// triggers the choose-directory prompt.
	if s.doc.Len() == 0 {
		return ErrNothingToExport
	}
	if s.labelsDir == "" {
		return ErrNoLabelsDir
	}
	lines := s.doc.EncodeAll()
	if len(indices) > 0 {
		var err error
		if lines, err = s.doc.EncodeIndices(indices); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(s.labelsDir, 0o755); err != nil {
		return fmt.Errorf("create labels directory: %w", err)
	}
	path := filepath.Join(s.labelsDir, stem(s.imgPath)+".txt")
	if err := writeLines(path, lines); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Info("annotations exported", "path", path, "boxes", len(lines))
	}
	return nil
}

// AddClass registers a class and rewrites the class file when one is
// known.
func (s *Session) AddClass(id int, name string, color *annotation.Color) error {
	if err := s.registry.Add(id, name, color); err != nil {
		return err
	}
	return s.persistClasses()
}

// RemoveClass removes a class. With cascade set, the boxes referencing it
// are deleted as one undoable step; otherwise they keep the dangling id
// and render under the synthesized class_<id> name. The affected box
// indices are returned either way.
func (s *Session) RemoveClass(id int, cascade bool) ([]int, error) {
	if s.doc == nil {
		s.registry.Remove(id)
		return nil, s.persistClasses()
	}
	orphans := s.doc.RemoveClass(id)
	if cascade && len(orphans) > 0 {
		if err := s.doc.Delete(orphans); err != nil {
			return orphans, err
		}
		s.dirty = true
	}
	return orphans, s.persistClasses()
}

// SaveClasses writes the class list to path and remembers it as the class
// file for subsequent automatic rewrites.
func (s *Session) SaveClasses(path string) error {
	if err := WriteClassFile(path, s.registry); err != nil {
		return err
	}
	s.classFile = path
	return nil
}

func (s *Session) persistClasses() error {
	if s.classFile == "" {
		return nil
	}
	return WriteClassFile(s.classFile, s.registry)
}

func (s *Session) loadClasses(path string) error {
	classes, err := ReadClassFile(path)
	if err != nil {
		return err
	}
	for _, id := range s.registry.IDs() {
		s.registry.Remove(id)
	}
	ids := make([]int, 0, len(classes))
	for id := range classes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if err := s.registry.Add(id, classes[id], nil); err != nil && s.logger != nil {
			s.logger.Warn("skipping class entry", "id", id, "name", classes[id], "error", err)
		}
	}
	return nil
}

// Undo reverts the last committed gesture on the open image. Any gesture
// still in progress is resolved first so machine and document agree.
func (s *Session) Undo() bool {
	if s.doc == nil {
		return false
	}
	s.machine.Abort()
	if !s.doc.Undo() {
		return false
	}
	s.dirty = true
	return true
}

// Redo is the mirror of Undo.
func (s *Session) Redo() bool {
	if s.doc == nil {
		return false
	}
	s.machine.Abort()
	if !s.doc.Redo() {
		return false
	}
	s.dirty = true
	return true
}

// Close force-resolves any in-progress gesture.
func (s *Session) Close() {
	if s.machine != nil {
		s.machine.Abort()
	}
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func writeLines(path string, lines []string) error {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
