package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdt3213/tcplite/socket"
)

func TestSetupDefaults(t *testing.T) {
	require.NoError(t, Setup(""))
	assert.Equal(t, "0.0.0.0", Properties.Bind)
	assert.Equal(t, uint16(7379), Properties.Port)
	assert.Equal(t, 5, Properties.Backlog)
	assert.Equal(t, 1024, Properties.BufferSize)
	assert.True(t, Properties.StrictAddress)
}

func TestSetupFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tcplite.yaml")
	content := "bind: 127.0.0.1\nport: 9000\nbacklog: 10\nbuffer-size: 2048\nstrict-address: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	require.NoError(t, Setup(path))
	assert.Equal(t, "127.0.0.1", Properties.Bind)
	assert.Equal(t, uint16(9000), Properties.Port)
	assert.Equal(t, 10, Properties.Backlog)
	assert.Equal(t, 2048, Properties.BufferSize)
	assert.False(t, Properties.StrictAddress)
}

func TestSetupMissingFile(t *testing.T) {
	assert.Error(t, Setup(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestValidateStrictRejectsBadAddress(t *testing.T) {
	p := &ServerProperties{
		Bind:          "999.1.2.3",
		Port:          7379,
		Backlog:       5,
		BufferSize:    1024,
		StrictAddress: true,
	}
	err := Validate(p)
	require.Error(t, err)
	var invalid *socket.InvalidAddressError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "999.1.2.3", invalid.Addr)
}

func TestValidateWildcardFallback(t *testing.T) {
	p := &ServerProperties{
		Bind:          "not-an-ip",
		Port:          7379,
		Backlog:       5,
		BufferSize:    1024,
		StrictAddress: false,
	}
	require.NoError(t, Validate(p))
	assert.Equal(t, "0.0.0.0", p.Bind)
}

func TestValidateBounds(t *testing.T) {
	p := &ServerProperties{Bind: "127.0.0.1", Backlog: -1, BufferSize: 1024}
	assert.Error(t, Validate(p), "negative backlog")

	p = &ServerProperties{Bind: "127.0.0.1", Backlog: 0, BufferSize: 1}
	assert.Error(t, Validate(p), "buffer too small for an exchange")

	p = &ServerProperties{Bind: "127.0.0.1", Backlog: 0, BufferSize: 2}
	assert.NoError(t, Validate(p))
}
