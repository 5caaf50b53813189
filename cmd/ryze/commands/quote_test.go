package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ENV", "development")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestQuoteCommand(t *testing.T) {
	out, err := runCLI(t, "quote", "--data", "20", "--voice", "100", "--days", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Price:     198 BDT")
	assert.Contains(t, out, "Coins:     15840")
	assert.Contains(t, out, "Includes:  Toffee, Hoichoi")
}

func TestQuoteCommand_InvalidSelection(t *testing.T) {
	_, err := runCLI(t, "quote", "--data", "0", "--voice", "15", "--days", "7")
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)
}
