package main

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLayersConfiguration(t *testing.T) {
	// Arrange
	directory := t.TempDir()

	configPath := filepath.Join(directory, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"students": 40, "tests": 30, "testsPerStudent": 3, "seed": 4}`), 0666))

	t.Setenv("EXAMSCHED_TESTS", "") // Registers cleanup of the variable loaded from the dotenv file
	require.NoError(t, os.Unsetenv("EXAMSCHED_TESTS"))
	envPath := filepath.Join(directory, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("EXAMSCHED_TESTS=12\n"), 0666))

	out := filepath.Join(directory, "enrollment.txt")
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"generate", "--config", configPath, "--env", envPath, "--students", "7", "--out", out})

	// Act
	err := rootCmd.Execute()

	// Assert
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	assert.Len(t, lines, 7) // Flag wins over config.json
	for _, line := range lines {
		tokens := strings.Fields(line)
		assert.Len(t, tokens, 3) // config.json wins over the default
		for _, token := range tokens {
			test, err := strconv.Atoi(token)
			require.NoError(t, err)
			assert.Less(t, test, 12) // Dotenv wins over config.json
		}
	}
}
