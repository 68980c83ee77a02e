package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"bzl/internal/bazel"
)

// recordVersion is bumped whenever the on-disk record shape changes;
// records from other versions read as misses.
const recordVersion = 1

// keyHexLen is the truncated hash length used for cache filenames.
const keyHexLen = 16

// Logger is the minimal interface the store logs diagnostics through.
type Logger interface {
	Printf(format string, v ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

// record is the JSON document persisted for one (host, scope, kinds)
// tuple. Timestamp is epoch seconds.
type record struct {
	Version   int                 `json:"version"`
	Host      string              `json:"host"`
	Scope     string              `json:"scope"`
	Kinds     []string            `json:"kinds"`
	Timestamp float64             `json:"timestamp"`
	Targets   map[string][]string `json:"targets"`
}

// Entry wraps cached query results with their capture time.
type Entry struct {
	Targets   bazel.Index
	Timestamp time.Time
}

// nowFunc is swapped out by tests.
var nowFunc = time.Now

// Age returns how long ago the entry was captured.
func (e *Entry) Age() time.Duration {
	return nowFunc().Sub(e.Timestamp)
}

// AgeString renders the entry age for humans: "42s ago", "5m ago",
// "2h 10m ago", "3d ago", "1w 2d ago".
func (e *Entry) AgeString() string {
	s := int(e.Age().Seconds())
	switch {
	case s < 60:
		return fmt.Sprintf("%ds ago", s)
	case s < 3600:
		return fmt.Sprintf("%dm ago", s/60)
	case s < 86400:
		return fmt.Sprintf("%dh %dm ago", s/3600, (s%3600)/60)
	}
	days := s / 86400
	if days < 7 {
		return fmt.Sprintf("%dd ago", days)
	}
	return fmt.Sprintf("%dw %dd ago", days/7, days%7)
}

// Store is a disk cache of parsed query results, one JSON file per
// (host, scope, kinds) identity under Dir. Reads and writes are
// best-effort: corruption and I/O failures degrade to cache misses and
// dropped writes, never errors. Concurrent writers race last-writer-wins;
// staleness is bounded by the TTL, not by locking.
type Store struct {
	Dir    string
	Logger Logger
}

func (s Store) logf(format string, v ...any) {
	logger := s.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	logger.Printf(format, v...)
}

// Key derives the stable cache filename stem for an identity tuple. Kind
// order does not matter.
func Key(host, scope string, kinds []string) string {
	if host == "" {
		host = "local"
	}
	sorted := append([]string(nil), kinds...)
	sort.Strings(sorted)
	raw := host + ":" + scope + ":" + strings.Join(sorted, ",")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])[:keyHexLen]
}

func (s Store) path(host, scope string, kinds []string) string {
	return filepath.Join(s.Dir, Key(host, scope, kinds)+".json")
}

// Load returns the cached entry for the identity tuple, or nil when the
// caller opted out (ttl <= 0), no record exists, the record's version
// mismatches, the record expired, or the file cannot be decoded.
func (s Store) Load(host, scope string, kinds []string, ttl time.Duration) *Entry {
	if ttl <= 0 {
		return nil
	}

	path := s.path(host, scope, kinds)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logf("cache: ignoring unreadable record %s: %v", path, err)
		return nil
	}
	if rec.Version != recordVersion {
		s.logf("cache: ignoring record %s with version %d", path, rec.Version)
		return nil
	}

	captured := time.Unix(0, int64(rec.Timestamp*float64(time.Second)))
	if nowFunc().Sub(captured) > ttl {
		return nil
	}

	return &Entry{Targets: bazel.Index(rec.Targets), Timestamp: captured}
}

// Save persists the parsed index for the identity tuple, creating the
// cache directory on first use. Failures are swallowed; caching is an
// optimization, not a correctness requirement.
func (s Store) Save(host, scope string, kinds []string, targets bazel.Index) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		s.logf("cache: create dir: %v", err)
		return
	}

	hostField := host
	if hostField == "" {
		hostField = "local"
	}
	rec := record{
		Version:   recordVersion,
		Host:      hostField,
		Scope:     scope,
		Kinds:     kinds,
		Timestamp: float64(nowFunc().UnixNano()) / float64(time.Second),
		Targets:   targets,
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		s.logf("cache: encode record: %v", err)
		return
	}
	if err := os.WriteFile(s.path(host, scope, kinds), data, 0o644); err != nil {
		s.logf("cache: write record: %v", err)
	}
}

// Bust removes the record for the identity tuple. A missing file is not
// an error.
func (s Store) Bust(host, scope string, kinds []string) {
	if err := os.Remove(s.path(host, scope, kinds)); err != nil && !os.IsNotExist(err) {
		s.logf("cache: bust record: %v", err)
	}
}

// Stat returns the entry regardless of age, for status display. Same
// miss semantics as Load otherwise.
func (s Store) Stat(host, scope string, kinds []string) *Entry {
	return s.Load(host, scope, kinds, 1<<62)
}
