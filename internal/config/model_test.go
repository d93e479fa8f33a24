package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckFormatVersion(t *testing.T) {
	testCases := []struct {
		version   string
		expectErr bool
	}{
		{version: ""},
		{version: "1"},
		{version: "1.0.0"},
		{version: "1.4.2"},
		{version: "v1.2"},
		{version: "0.9.0", expectErr: true},
		{version: "2.0.0", expectErr: true},
		{version: "not-a-version", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.version, func(t *testing.T) {
			err := CheckFormatVersion(tc.version)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDocument_Merge(t *testing.T) {
	d := &Document{Graphs: []*Graph{{Name: "a"}}}
	d.Merge(&Document{
		Settings: []*SettingDefinition{{Name: "lens"}},
		Graphs:   []*Graph{{Name: "b"}},
	})
	require.Len(t, d.Graphs, 2)
	require.Equal(t, "b", d.Graphs[1].Name)
	require.Len(t, d.Settings, 1)
}
