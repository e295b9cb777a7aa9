package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/yungbote/linguaflow-backend/internal/lesson"
	"github.com/yungbote/linguaflow-backend/internal/pkg/errs"
	"github.com/yungbote/linguaflow-backend/internal/platform/ctxutil"
	"github.com/yungbote/linguaflow-backend/internal/platform/logger"
)

const (
	manifestName     = "manifest.json"
	audioExt         = "mp3"
	previewMaxLen    = 160
	maxAllocAttempts = 1000
)

// SessionSummary is the list() projection of a session.
type SessionSummary struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	RawText string `json:"rawText"`
	Preview string `json:"preview"`
}

// Session is a fully loaded lesson with audio rehydrated into memory.
type Session struct {
	ID       int              `json:"id"`
	Title    string           `json:"title"`
	RawText  string           `json:"rawText"`
	Segments []lesson.Segment `json:"segments"`
}

// SessionStore persists lessons as one directory per session: a manifest
// document plus one audio file per segment/vocab audio field. Storage is the
// sole source of truth; every list/load re-reads disk. A directory is a valid
// session iff it holds a readable manifest.
type SessionStore struct {
	log  *logger.Logger
	root string
}

func NewSessionStore(log *logger.Logger, root string) (*SessionStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("session store root required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, &errs.StorageError{Op: "mkdir", Path: root, Err: err}
	}
	return &SessionStore{
		log:  log.With("service", "SessionStore"),
		root: root,
	}, nil
}

// Create persists a new session and returns its id. Ids are allocated with an
// exclusive-mkdir-or-retry loop so concurrent creates cannot collide; ids are
// not globally monotonic (deleting every session resets allocation to 1).
// Any write failure removes the whole directory before the error surfaces.
func (s *SessionStore) Create(ctx context.Context, rawText, title string, segments []lesson.Segment) (int, error) {
	_ = ctxutil.Default(ctx)

	id, dir, err := s.allocateDir()
	if err != nil {
		return 0, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = fmt.Sprintf("Lesson %d", id)
	}

	if err := s.writeSession(dir, rawText, title, segments); err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			s.log.Warn("cleanup of partial session failed", "dir", dir, "error", rmErr)
		}
		return 0, err
	}

	s.log.Info("session created", "id", id, "segments", len(segments))
	return id, nil
}

func (s *SessionStore) allocateDir() (int, string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return 0, "", &errs.StorageError{Op: "readdir", Path: s.root, Err: err}
	}

	next := 1
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if n, convErr := strconv.Atoi(e.Name()); convErr == nil && n >= next {
			next = n + 1
		}
	}

	for i := 0; i < maxAllocAttempts; i++ {
		dir := filepath.Join(s.root, strconv.Itoa(next))
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return next, dir, nil
		}
		if os.IsExist(err) {
			next++
			continue
		}
		return 0, "", &errs.StorageError{Op: "mkdir", Path: dir, Err: err}
	}
	return 0, "", &errs.StorageError{Op: "mkdir", Path: s.root, Err: fmt.Errorf("id allocation exhausted after %d attempts", maxAllocAttempts)}
}

func (s *SessionStore) writeSession(dir, rawText, title string, segments []lesson.Segment) error {
	doc := manifestDoc{
		Title:    title,
		RawText:  rawText,
		Segments: make([]manifestSegment, 0, len(segments)),
	}

	writeAudio := func(name string, blob []byte) (string, error) {
		if len(blob) == 0 {
			return "", nil
		}
		if err := os.WriteFile(filepath.Join(dir, name), blob, 0o644); err != nil {
			return "", &errs.StorageError{Op: "write", Path: filepath.Join(dir, name), Err: err}
		}
		return name, nil
	}

	for i, seg := range segments {
		ms := manifestSegment{
			ID:       seg.ID,
			French:   seg.French,
			English:  seg.English,
			KeyVocab: make([]manifestVocab, 0, len(seg.KeyVocab)),
		}

		var err error
		if ms.AudioFrFile, err = writeAudio(fmt.Sprintf("segment_%03d_fr.%s", i, audioExt), seg.AudioFr); err != nil {
			return err
		}
		if ms.AudioEnFile, err = writeAudio(fmt.Sprintf("segment_%03d_en.%s", i, audioExt), seg.AudioEn); err != nil {
			return err
		}

		for j, v := range seg.KeyVocab {
			mv := manifestVocab{ID: v.ID, French: v.French, English: v.English}
			if mv.AudioFrFile, err = writeAudio(fmt.Sprintf("segment_%03d_kv_%03d_fr.%s", i, j, audioExt), v.AudioFr); err != nil {
				return err
			}
			if mv.AudioEnFile, err = writeAudio(fmt.Sprintf("segment_%03d_kv_%03d_en.%s", i, j, audioExt), v.AudioEn); err != nil {
				return err
			}
			ms.KeyVocab = append(ms.KeyVocab, mv)
		}
		doc.Segments = append(doc.Segments, ms)
	}

	return s.writeManifest(dir, &doc)
}

// writeManifest writes to a temp file and renames so a crash mid-write never
// leaves a truncated manifest behind.
func (s *SessionStore) writeManifest(dir string, doc *manifestDoc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &errs.StorageError{Op: "encode", Path: filepath.Join(dir, manifestName), Err: err}
	}
	tmp := filepath.Join(dir, manifestName+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &errs.StorageError{Op: "write", Path: tmp, Err: err}
	}
	final := filepath.Join(dir, manifestName)
	if err := os.Rename(tmp, final); err != nil {
		return &errs.StorageError{Op: "rename", Path: final, Err: err}
	}
	return nil
}

func (s *SessionStore) readManifest(dir string) (*manifestDoc, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.ErrNotFound
		}
		return nil, &errs.StorageError{Op: "read", Path: filepath.Join(dir, manifestName), Err: err}
	}
	var doc manifestDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &errs.StorageError{Op: "decode", Path: filepath.Join(dir, manifestName), Err: err}
	}
	return &doc, nil
}

// List returns session summaries sorted by id descending (newest first).
// Directories without a readable manifest are skipped, not errors.
func (s *SessionStore) List(ctx context.Context) ([]SessionSummary, error) {
	_ = ctxutil.Default(ctx)

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &errs.StorageError{Op: "readdir", Path: s.root, Err: err}
	}

	summaries := make([]SessionSummary, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		id, convErr := strconv.Atoi(e.Name())
		if convErr != nil || id <= 0 {
			continue
		}
		doc, mErr := s.readManifest(filepath.Join(s.root, e.Name()))
		if mErr != nil {
			s.log.Debug("skipping session without readable manifest", "id", id, "error", mErr)
			continue
		}
		summaries = append(summaries, SessionSummary{
			ID:      id,
			Title:   doc.Title,
			RawText: doc.RawText,
			Preview: previewText(doc.RawText),
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID > summaries[j].ID })
	return summaries, nil
}

// previewText collapses internal whitespace and truncates to 160 characters.
func previewText(raw string) string {
	collapsed := strings.Join(strings.Fields(raw), " ")
	runes := []rune(collapsed)
	if len(runes) <= previewMaxLen {
		return collapsed
	}
	return string(runes[:previewMaxLen])
}

// Load reads a session and rehydrates every audio file into memory.
func (s *SessionStore) Load(ctx context.Context, id int) (*Session, error) {
	_ = ctxutil.Default(ctx)

	dir := filepath.Join(s.root, strconv.Itoa(id))
	doc, err := s.readManifest(dir)
	if err != nil {
		return nil, err
	}

	readAudio := func(name string) ([]byte, error) {
		if name == "" {
			return nil, nil
		}
		blob, rErr := os.ReadFile(filepath.Join(dir, name))
		if rErr != nil {
			if os.IsNotExist(rErr) {
				return nil, nil
			}
			return nil, &errs.StorageError{Op: "read", Path: filepath.Join(dir, name), Err: rErr}
		}
		return blob, nil
	}

	sess := &Session{
		ID:       id,
		Title:    doc.Title,
		RawText:  doc.RawText,
		Segments: make([]lesson.Segment, 0, len(doc.Segments)),
	}
	for _, ms := range doc.Segments {
		seg := lesson.Segment{
			ID:       ms.ID,
			French:   ms.French,
			English:  ms.English,
			KeyVocab: make([]lesson.VocabEntry, 0, len(ms.KeyVocab)),
		}
		if seg.AudioFr, err = readAudio(ms.AudioFrFile); err != nil {
			return nil, err
		}
		if seg.AudioEn, err = readAudio(ms.AudioEnFile); err != nil {
			return nil, err
		}
		for _, mv := range ms.KeyVocab {
			v := lesson.VocabEntry{ID: mv.ID, French: mv.French, English: mv.English}
			if v.AudioFr, err = readAudio(mv.AudioFrFile); err != nil {
				return nil, err
			}
			if v.AudioEn, err = readAudio(mv.AudioEnFile); err != nil {
				return nil, err
			}
			seg.KeyVocab = append(seg.KeyVocab, v)
		}
		sess.Segments = append(sess.Segments, seg)
	}
	return sess, nil
}

// Rename updates a session's title. The stored title is untouched when the
// new one is empty after trimming.
func (s *SessionStore) Rename(ctx context.Context, id int, title string) error {
	_ = ctxutil.Default(ctx)

	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title must not be empty", errs.ErrInvalidArgument)
	}

	dir := filepath.Join(s.root, strconv.Itoa(id))
	doc, err := s.readManifest(dir)
	if err != nil {
		return err
	}
	doc.Title = title
	return s.writeManifest(dir, doc)
}

// Delete removes the entire session directory.
func (s *SessionStore) Delete(ctx context.Context, id int) error {
	_ = ctxutil.Default(ctx)

	dir := filepath.Join(s.root, strconv.Itoa(id))
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return errs.ErrNotFound
		}
		return &errs.StorageError{Op: "stat", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return errs.ErrNotFound
	}
	if err := os.RemoveAll(dir); err != nil {
		return &errs.StorageError{Op: "remove", Path: dir, Err: err}
	}
	s.log.Info("session deleted", "id", id)
	return nil
}
