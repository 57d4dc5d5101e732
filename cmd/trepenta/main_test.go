package main

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "json", want: "json"},
		{in: "JSON", want: "json"},
		{in: " json ", want: "json"},
		{in: "console", want: "console"},
		{in: "", want: "console"},
		{in: "pretty", want: "console"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, logFormat(tt.in), "format %q", tt.in)
	}
}

func TestParseWithUnknownLogFormatFromEnvironment(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("trepenta"),
		kong.Vars{
			"version":        "test",
			"redis_addr":     "localhost:6379",
			"redis_password": "",
			"redis_db":       "0",
			"key_prefix":     "trepenta:",
			"log_level":      "warn",
			"log_format":     logFormat("pretty"),
		},
	)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"rules"})
	require.NoError(t, err)
	assert.Equal(t, "console", cli.LogFormat)
}
