package mapping_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soar/GamepadTest/internal/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDB = `# Game Controller DB for SDL
# Source: https://github.com/mdqinc/SDL_GameControllerDB

# Windows
030000005e0400008e02000000007801,XInput Controller,a:b0,b:b1,back:b6,guide:b10,x:b2,y:b3,platform:Windows,

# Linux
030000005e0400008e02000014010000,Xbox 360 Controller,a:b0,b:b1,back:b6,dpdown:h0.4,guide:b8,leftx:a0,lefty:a1,platform:Linux,
050000004c050000cc09000000810000,PS4 Controller,a:b0,b:b1,x:b3,y:b2,platform:Linux,
not-a-guid,Broken,a:b0,platform:Linux,
03000000c82d00000090000011010000,8BitDo FC30 Pro,a:b1,b:b0,
030000005e0400008e02000014010000,Short
`

func TestParse(t *testing.T) {
	db, err := mapping.Parse(strings.NewReader(sampleDB))
	require.NoError(t, err)
	require.Len(t, db.Entries, 4)
	assert.Equal(t, 2, db.Skipped)

	xbox := db.Entries[1]
	assert.Equal(t, "Xbox 360 Controller", xbox.Name)
	assert.Equal(t, "Linux", xbox.Platform)
	assert.Equal(t, uint16(0x045e), xbox.VendorID())
	assert.Equal(t, uint16(0x028e), xbox.ProductID())
	assert.Contains(t, xbox.Bindings, mapping.Binding{Target: "guide", Source: "b8"})
	assert.Contains(t, xbox.Bindings, mapping.Binding{Target: "dpdown", Source: "h0.4"})

	noPlatform := db.Entries[3]
	assert.Empty(t, noPlatform.Platform)
	assert.Equal(t, uint16(0x2dc8), noPlatform.VendorID())
}

func TestEntryStringRoundTrip(t *testing.T) {
	line := "030000005e0400008e02000014010000,Xbox 360 Controller,a:b0,b:b1,guide:b8,platform:Linux,"
	db, err := mapping.Parse(strings.NewReader(line))
	require.NoError(t, err)
	require.Len(t, db.Entries, 1)
	assert.Equal(t, line, db.Entries[0].String())
}

func TestForPlatform(t *testing.T) {
	db, err := mapping.Parse(strings.NewReader(sampleDB))
	require.NoError(t, err)

	linux := db.ForPlatform("linux")
	require.Len(t, linux, 3)
	for _, e := range linux {
		assert.Contains(t, []string{"Linux", ""}, e.Platform)
	}

	windows := db.ForPlatform("windows")
	require.Len(t, windows, 2)
	assert.Equal(t, "XInput Controller", windows[0].Name)

	assert.Len(t, db.ForPlatform("plan9"), 1)

	var nilDB *mapping.DB
	assert.Nil(t, nilDB.ForPlatform("linux"))
}

func TestByDevice(t *testing.T) {
	db, err := mapping.Parse(strings.NewReader(sampleDB))
	require.NoError(t, err)

	e, ok := db.ByDevice("linux", 0x054c, 0x09cc)
	require.True(t, ok)
	assert.Equal(t, "PS4 Controller", e.Name)

	e, ok = db.ByDevice("windows", 0x045e, 0x028e)
	require.True(t, ok)
	assert.Equal(t, "XInput Controller", e.Name)

	_, ok = db.ByDevice("linux", 0x1234, 0x5678)
	assert.False(t, ok)
	_, ok = db.ByDevice("linux", 0, 0)
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamecontrollerdb.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleDB), 0o644))

	db, err := mapping.Load(path)
	require.NoError(t, err)
	assert.Len(t, db.Entries, 4)

	_, err = mapping.Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, mapping.ErrMappingLoad)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPlatformName(t *testing.T) {
	assert.Equal(t, "Linux", mapping.PlatformName("linux"))
	assert.Equal(t, "Mac OS X", mapping.PlatformName("darwin"))
	assert.Equal(t, "Windows", mapping.PlatformName("windows"))
	assert.Empty(t, mapping.PlatformName("plan9"))
}

func TestJoin(t *testing.T) {
	db, err := mapping.Parse(strings.NewReader(sampleDB))
	require.NoError(t, err)

	entries := db.ForPlatform("linux")
	joined := mapping.Join(entries)
	lines := strings.Split(joined, "\n")
	require.Len(t, lines, len(entries))
	for i, e := range entries {
		assert.Equal(t, e.String(), lines[i])
	}
	assert.NotContains(t, joined, "XInput Controller")

	assert.Empty(t, mapping.Join(nil))
}
