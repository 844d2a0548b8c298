// Package registry lists prototype folders and serves their screenshots.
//
// The prototypes root holds one folder per prototype, each with a
// prototype.json manifest and usually a screenshot. The folder name is the
// prototype ID. The reserved folder "main" holds the featured prototype and
// is never part of the listing. Every call re-reads the disk; nothing is
// cached and nothing is ever written.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"
)

var (
	// ErrNotFound is wrapped by every not-found error of this package.
	ErrNotFound = errors.New("not found")
	// ErrPrototypeNotFound is returned when the prototype folder does not exist.
	ErrPrototypeNotFound = fmt.Errorf("prototype %w", ErrNotFound)
	// ErrManifestNotFound is returned when the folder has no usable manifest.
	ErrManifestNotFound = fmt.Errorf("manifest %w", ErrNotFound)
	// ErrScreenshotNotFound is returned when the referenced image is missing.
	ErrScreenshotNotFound = fmt.Errorf("screenshot %w", ErrNotFound)
)

// Registry reads prototypes from a directory tree.
type Registry struct {
	fsys fs.FS
	root string
}

// New returns a Registry over the directory root. The directory does not
// need to exist; a missing root lists as empty.
func New(root string) *Registry {
	r := NewFS(os.DirFS(root))
	r.root = root
	return r
}

// NewFS returns a Registry over an arbitrary file system.
func NewFS(fsys fs.FS) *Registry {
	return &Registry{fsys: fsys}
}

// List returns every prototype of the root except the main one, sorted by
// priority and then by most recent update.
//
// A missing root yields an empty list. Folders with a missing or malformed
// manifest are logged and skipped. Folders other than "main" whose manifest
// claims to be the main prototype are skipped too.
func (r *Registry) List(ctx context.Context) ([]*Prototype, error) {
	entries, err := fs.ReadDir(r.fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.DebugContext(ctx, "Prototypes directory not found", "root", r.root)
			return []*Prototype{}, nil
		}
		return nil, fmt.Errorf("failed to read prototypes directory: %w", err)
	}

	out := make([]*Prototype, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if !isFolder(r.fsys, entry) || name == MainFolder || strings.HasPrefix(name, ".") {
			continue
		}
		p, err := r.read(ctx, name)
		if err != nil {
			switch {
			case errors.Is(err, ErrManifestNotFound):
				slog.DebugContext(ctx, "Skipping folder without manifest", "folder", name)
				continue
			case isParseError(err):
				slog.WarnContext(ctx, "Skipping malformed manifest", "folder", name, "err", err)
				continue
			default:
				return nil, err
			}
		}
		if p.IsMainPrototype {
			slog.WarnContext(ctx, "Skipping non-main folder claiming to be the main prototype", "folder", name)
			continue
		}
		out = append(out, p)
	}
	Sort(out)
	return out, nil
}

// Main returns the prototype in the reserved "main" folder, or nil when it is
// absent or unparsable.
func (r *Registry) Main(ctx context.Context) (*Prototype, error) {
	p, err := r.read(ctx, MainFolder)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, nil
		case isParseError(err):
			slog.WarnContext(ctx, "Ignoring malformed main manifest", "err", err)
			return nil, nil
		default:
			return nil, err
		}
	}
	return p, nil
}

// Get returns the prototype stored in folder id, including the main one.
func (r *Registry) Get(ctx context.Context, id string) (*Prototype, error) {
	if !validID(id) {
		return nil, ErrPrototypeNotFound
	}
	if _, err := r.folder(id); err != nil {
		return nil, err
	}
	p, err := r.read(ctx, id)
	if err != nil {
		if isParseError(err) {
			slog.WarnContext(ctx, "Malformed manifest", "folder", id, "err", err)
			return nil, fmt.Errorf("%w: %w", ErrManifestNotFound, err)
		}
		return nil, err
	}
	return p, nil
}

// Image is a screenshot ready to be served.
type Image struct {
	Name     string
	MimeType string
	ModTime  time.Time
	Data     []byte
}

// Screenshot loads the image referenced by the manifest of prototype id.
func (r *Registry) Screenshot(ctx context.Context, id string) (*Image, error) {
	if !validID(id) {
		return nil, ErrPrototypeNotFound
	}
	if _, err := r.folder(id); err != nil {
		return nil, err
	}
	m, err := r.manifest(ctx, id)
	if err != nil {
		if isParseError(err) {
			slog.WarnContext(ctx, "Malformed manifest", "folder", id, "err", err)
			return nil, fmt.Errorf("%w: %w", ErrManifestNotFound, err)
		}
		return nil, err
	}
	name := m.Screenshot
	if name == "" || path.Base(name) != name || !fs.ValidPath(name) || name == "." {
		return nil, ErrScreenshotNotFound
	}
	p := path.Join(id, name)
	info, err := fs.Stat(r.fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrScreenshotNotFound
		}
		return nil, fmt.Errorf("failed to stat screenshot: %w", err)
	}
	if info.IsDir() {
		return nil, ErrScreenshotNotFound
	}
	data, err := fs.ReadFile(r.fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrScreenshotNotFound
		}
		return nil, fmt.Errorf("failed to read screenshot: %w", err)
	}
	return &Image{
		Name:     name,
		MimeType: ImageMimeType(name),
		ModTime:  info.ModTime(),
		Data:     data,
	}, nil
}

// read loads the manifest of folder and turns it into a Prototype.
func (r *Registry) read(ctx context.Context, folder string) (*Prototype, error) {
	m, err := r.manifest(ctx, folder)
	if err != nil {
		return nil, err
	}
	p := &Prototype{ID: folder, Manifest: *m}
	if p.Screenshot != "" {
		p.Screenshot = ScreenshotURL(folder)
	}
	return p, nil
}

// manifest decodes the manifest of folder. A field of the wrong JSON type is
// left empty and logged; the rest of the manifest is kept.
func (r *Registry) manifest(ctx context.Context, folder string) (*Manifest, error) {
	data, err := fs.ReadFile(r.fsys, path.Join(folder, ManifestName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrManifestNotFound
		}
		return nil, fmt.Errorf("failed to read manifest of %s: %w", folder, err)
	}
	m := &Manifest{}
	if err := json.Unmarshal(data, m); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, &parseError{folder: folder, err: err}
		}
		slog.WarnContext(ctx, "Ignoring mistyped manifest field", "folder", folder, "field", typeErr.Field, "err", err)
	}
	return m, nil
}

func (r *Registry) folder(id string) (fs.FileInfo, error) {
	info, err := fs.Stat(r.fsys, id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrPrototypeNotFound
		}
		return nil, fmt.Errorf("failed to stat prototype %s: %w", id, err)
	}
	if !info.IsDir() {
		return nil, ErrPrototypeNotFound
	}
	return info, nil
}

// parseError reports a manifest that is not valid JSON for a Manifest.
type parseError struct {
	folder string
	err    error
}

func (e *parseError) Error() string {
	return fmt.Sprintf("failed to parse manifest of %s: %v", e.folder, e.err)
}

func (e *parseError) Unwrap() error {
	return e.err
}

func isParseError(err error) bool {
	var pe *parseError
	return errors.As(err, &pe)
}

// validID rejects IDs that are not a single folder name.
func validID(id string) bool {
	return id != "" && id != "." && id != ".." && fs.ValidPath(id) && !strings.Contains(id, "/") && !strings.Contains(id, `\`)
}

// isFolder follows symlinks so linked prototype checkouts are listed too.
func isFolder(fsys fs.FS, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := fs.Stat(fsys, entry.Name())
	return err == nil && info.IsDir()
}
