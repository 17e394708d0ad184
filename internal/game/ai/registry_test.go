package ai_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/creature-battle/internal/game/ai"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := ai.NewRegistry()
	require.NoError(t, reg.Register(&ai.Profile{ID: "trainer", Tier: ai.Smart}))
	require.NoError(t, reg.Register(&ai.Profile{ID: "wild", Tier: ai.SmartRandom}))

	p, ok := reg.Get("trainer")
	require.True(t, ok)
	assert.Equal(t, ai.Smart, p.Tier)
	_, ok = reg.Get("missing")
	assert.False(t, ok)

	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "trainer", all[0].ID)
}

func TestRegistry_RejectsCollisionAndInvalid(t *testing.T) {
	reg := ai.NewRegistry()
	require.NoError(t, reg.Register(&ai.Profile{ID: "wild"}))
	assert.Error(t, reg.Register(&ai.Profile{ID: "wild"}))
	assert.Error(t, reg.Register(&ai.Profile{}))
	assert.Error(t, reg.Register(&ai.Profile{ID: "bad", Tier: ai.Tier(9)}))
}

func TestLoadProfileFromBytes(t *testing.T) {
	p, err := ai.LoadProfileFromBytes([]byte("profile:\n  id: boss\n  tier: smart\n"))
	require.NoError(t, err)
	assert.Equal(t, "boss", p.ID)
	assert.Equal(t, ai.Smart, p.Tier)
	assert.Equal(t, "smart", p.Tier.String())

	_, err = ai.LoadProfileFromBytes([]byte("profile:\n  id: boss\n  tier: genius\n"))
	assert.Error(t, err)
	_, err = ai.LoadProfileFromBytes([]byte("profile:\n  id: boss\n  level: 3\n"))
	assert.Error(t, err, "unknown fields are rejected")
	_, err = ai.LoadProfileFromBytes([]byte("id: boss\n"))
	assert.Error(t, err)
}

func TestLoadProfiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wild.yaml"), []byte("profile:\n  id: wild\n  tier: smart_random\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	profiles, err := ai.LoadProfiles(dir)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, ai.SmartRandom, profiles[0].Tier)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("profile:\n  tier: smart\n"), 0o644))
	_, err = ai.LoadProfiles(dir)
	assert.Error(t, err)

	_, err = ai.LoadProfiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
