package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unmute-configurator-golang/internal/domain/unmute"
)

func TestLookup(t *testing.T) {
	p, err := Lookup(Female)
	require.NoError(t, err)
	assert.Equal(t, "Female", p.VoiceName)
	assert.Equal(t, "unmute-prod-website/ex04_narration_longform_00001.wav", p.Voice)

	p, err = Lookup("")
	require.NoError(t, err)
	assert.Equal(t, Female, p.ID)

	p, err = Lookup(Male)
	require.NoError(t, err)
	assert.Equal(t, "unmute-prod-website/developer-1.mp3", p.Voice)

	_, err = Lookup("robot")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestIDsStable(t *testing.T) {
	assert.Equal(t, []ID{Female, Male}, IDs())

	ids := IDs()
	ids[0] = "mutated"
	assert.Equal(t, Female, IDs()[0])

	all := All()
	require.Len(t, all, 2)
	assert.Equal(t, Male, all[1].ID)
}

func TestApplyOverridesEverything(t *testing.T) {
	p, err := Lookup(Female)
	require.NoError(t, err)

	inputs := []unmute.UnmuteConfig{
		unmute.DefaultUnmuteConfig(),
		{},
		{
			Instructions:         unmute.Constant("talk like a pirate", unmute.LanguageFr),
			Voice:                "custom.wav",
			VoiceName:            "Custom",
			IsCustomInstructions: true,
		},
	}

	want := unmute.UnmuteConfig{
		Instructions:         unmute.Preset(unmute.InstructionsSanofiPharma, unmute.LanguageEn),
		Voice:                "unmute-prod-website/ex04_narration_longform_00001.wav",
		VoiceName:            "Female",
		IsCustomInstructions: false,
	}
	for _, in := range inputs {
		assert.Equal(t, want, p.Apply(in))
	}
}

func TestSample(t *testing.T) {
	for _, p := range All() {
		s := p.Sample()
		require.NoError(t, s.Validate())
		assert.Equal(t, p.Voice, s.Source.PathOnServer())
		assert.Equal(t, p.VoiceName, *s.Name)
		assert.True(t, s.Good)
	}
}
