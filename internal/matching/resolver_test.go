package matching

import (
	"errors"
	"testing"

	"github.com/jonathan/vacancy-matching/internal/lookup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageResolver_Compatible(t *testing.T) {
	r := NewLanguageResolver(lookup.DefaultCodes())

	tests := []struct {
		code string
		want []string
	}{
		{"BI", []string{"BILINGUAL"}},
		{"BNI", []string{"BILINGUAL"}},
		{"EE", []string{"ENGLISH"}},
		{"FE", []string{"FRENCH"}},
		{"EEAE", []string{"ENGLISH", "FRENCH"}},
		{"VAR", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := r.Compatible(tt.code)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLanguageResolver_UnknownCode(t *testing.T) {
	r := NewLanguageResolver(lookup.DefaultCodes())

	got, err := r.Compatible("XX")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
	assert.True(t, errors.Is(err, ErrUnknownLanguageRequirement))
}

func TestLanguageResolver_UsesConfiguredCodes(t *testing.T) {
	codes := lookup.DefaultCodes()
	codes.LanguageRequirements.EnglishEssential = "ENG-ESS"
	codes.LanguageReferralTypes.English = "EN"
	r := NewLanguageResolver(codes)

	got, err := r.Compatible("ENG-ESS")
	require.NoError(t, err)
	assert.Equal(t, []string{"EN"}, got)

	_, err = r.Compatible("EE")
	assert.Error(t, err)
}

func TestLanguageResolver_ReturnsCopy(t *testing.T) {
	r := NewLanguageResolver(lookup.DefaultCodes())

	got, err := r.Compatible("EEAE")
	require.NoError(t, err)
	got[0] = "MUTATED"

	again, err := r.Compatible("EEAE")
	require.NoError(t, err)
	assert.Equal(t, []string{"ENGLISH", "FRENCH"}, again)
}
