// Package mapping reads controller mapping databases in the SDL
// gamecontrollerdb.txt format:
//
//	GUID,Name,a:b0,b:b1,...,platform:Linux,
//
// Lines starting with '#' and blank lines are ignored.
package mapping

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMappingLoad wraps every failure to read a mapping database.
var ErrMappingLoad = errors.New("mapping database load failed")

// Binding is one "target:source" pair of a mapping line.
type Binding struct {
	Target string
	Source string
}

// Entry is a single device mapping.
type Entry struct {
	GUID     string
	Name     string
	Platform string
	Bindings []Binding
}

// VendorID decodes the USB vendor ID embedded in the GUID. It returns 0
// for GUIDs that do not carry one.
func (e Entry) VendorID() uint16 {
	return e.guidWord(4)
}

// ProductID decodes the USB product ID embedded in the GUID.
func (e Entry) ProductID() uint16 {
	return e.guidWord(8)
}

// guidWord reads the little-endian uint16 at byte offset off.
func (e Entry) guidWord(off int) uint16 {
	raw, err := hex.DecodeString(e.GUID)
	if err != nil || len(raw) != 16 {
		return 0
	}
	return uint16(raw[off]) | uint16(raw[off+1])<<8
}

// String renders the entry back into a mapping line.
func (e Entry) String() string {
	var sb strings.Builder
	sb.WriteString(e.GUID)
	sb.WriteByte(',')
	sb.WriteString(e.Name)
	sb.WriteByte(',')
	for _, b := range e.Bindings {
		sb.WriteString(b.Target)
		sb.WriteByte(':')
		sb.WriteString(b.Source)
		sb.WriteByte(',')
	}
	if e.Platform != "" {
		sb.WriteString("platform:")
		sb.WriteString(e.Platform)
		sb.WriteByte(',')
	}
	return sb.String()
}

// Join renders entries as a newline separated mapping list, the form SDL
// accepts in its SDL_GAMECONTROLLERCONFIG hint.
func Join(entries []Entry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}

// DB is an ordered set of mapping entries.
type DB struct {
	Entries []Entry
	// Skipped counts lines that could not be parsed.
	Skipped int
}

// Load reads the database at path.
func Load(path string) (*DB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMappingLoad, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a database from r. Malformed lines are skipped and counted.
func Parse(r io.Reader) (*DB, error) {
	db := &DB{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		e, ok := parseLine(line)
		if !ok {
			db.Skipped++
			continue
		}
		db.Entries = append(db.Entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMappingLoad, err)
	}
	return db, nil
}

func parseLine(line string) (Entry, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < 3 {
		return Entry{}, false
	}
	guid := strings.TrimSpace(fields[0])
	if len(guid) != 32 {
		return Entry{}, false
	}
	if _, err := hex.DecodeString(guid); err != nil {
		return Entry{}, false
	}

	e := Entry{GUID: strings.ToLower(guid), Name: strings.TrimSpace(fields[1])}
	for _, f := range fields[2:] {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		target, source, ok := strings.Cut(f, ":")
		if !ok {
			return Entry{}, false
		}
		if target == "platform" {
			e.Platform = source
			continue
		}
		e.Bindings = append(e.Bindings, Binding{Target: target, Source: source})
	}
	return e, true
}

// PlatformName maps a GOOS value to the platform tag used in the database.
func PlatformName(goos string) string {
	switch goos {
	case "windows":
		return "Windows"
	case "darwin":
		return "Mac OS X"
	case "linux":
		return "Linux"
	case "android":
		return "Android"
	case "ios":
		return "iOS"
	}
	return ""
}

// ForPlatform returns the entries usable on goos. Entries without a
// platform tag apply everywhere.
func (db *DB) ForPlatform(goos string) []Entry {
	if db == nil {
		return nil
	}
	want := PlatformName(goos)
	var out []Entry
	for _, e := range db.Entries {
		if e.Platform == "" || e.Platform == want {
			out = append(out, e)
		}
	}
	return out
}

// ByDevice returns the first entry on goos whose GUID carries the given
// vendor and product IDs.
func (db *DB) ByDevice(goos string, vendorID, productID uint16) (Entry, bool) {
	if vendorID == 0 && productID == 0 {
		return Entry{}, false
	}
	for _, e := range db.ForPlatform(goos) {
		if e.VendorID() == vendorID && e.ProductID() == productID {
			return e, true
		}
	}
	return Entry{}, false
}
