package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cp25sy5-modjot/subscription-parser/internal/domain"
	"github.com/cp25sy5-modjot/subscription-parser/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParse_StdinJSON(t *testing.T) {
	out, err := runCLI(t, `{"subject":"Your Netflix subscription receipt","from":"info@netflix.com","body":"You were charged $15.49 monthly"}`, "parse")
	require.NoError(t, err)

	var got []parseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "-", got[0].Source)
	assert.True(t, got[0].Result.Success)
	assert.Equal(t, domain.MethodPattern, got[0].Result.Method)
	assert.Equal(t, "Netflix", got[0].Result.Data.MerchantName)
	assert.Equal(t, "15.49", got[0].Result.Data.Amount)
}

func TestParse_HeaderFileAndArray(t *testing.T) {
	dir := t.TempDir()
	msg := filepath.Join(dir, "figma.eml")
	require.NoError(t, os.WriteFile(msg, []byte("Subject: Figma Professional receipt\r\nFrom: Figma <billing@figma.com>\r\n\r\nYou paid $144.00 billed yearly.\r\n"), 0o600))
	arr := filepath.Join(dir, "batch.json")
	require.NoError(t, os.WriteFile(arr, []byte(`[{"from":"Acme <a@acme.io>","body":"Charged $10"},{"from":"<noreply@x.com>","body":"hi"}]`), 0o600))

	out, err := runCLI(t, "", "parse", msg, arr)
	require.NoError(t, err)

	var got []parseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 3)

	assert.Equal(t, msg, got[0].Source)
	assert.Equal(t, "Figma", got[0].Result.Data.MerchantName)
	assert.Equal(t, "144.00", got[0].Result.Data.Amount)
	assert.Equal(t, domain.CycleAnnual, got[0].Result.Data.BillingCycle)

	assert.Equal(t, arr+"[0]", got[1].Source)
	assert.Equal(t, domain.MethodAI, got[1].Result.Method)

	assert.Equal(t, arr+"[1]", got[2].Source)
	assert.Equal(t, domain.MethodFailed, got[2].Result.Method)
}

func TestParse_MoreThanOneBatch(t *testing.T) {
	n := usecase.MaxBatchSize + 1
	items := make([]string, n)
	for i := range items {
		items[i] = `{"from":"info@netflix.com","body":"You were charged $15.49 monthly"}`
	}
	out, err := runCLI(t, "["+strings.Join(items, ",")+"]", "parse", "--concurrency", "16")
	require.NoError(t, err)

	var got []parseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, n)
	for _, o := range got {
		require.True(t, o.Result.Success)
		assert.Equal(t, "Netflix", o.Result.Data.MerchantName)
	}
}

func TestParse_AIRequiresConfig(t *testing.T) {
	_, err := runCLI(t, `{"from":"a@b.c","body":"x"}`, "parse", "--ai")
	assert.ErrorContains(t, err, "--ai")
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := runCLI(t, "   ", "parse")
	assert.Error(t, err)
}

func TestCategory(t *testing.T) {
	out, err := runCLI(t, "", "category", "OpenAI", "Acme Corp")
	require.NoError(t, err)
	assert.Equal(t, "OpenAI\tai_tools\nAcme Corp\tother\n", out)
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestDecodeEmails_PlainText(t *testing.T) {
	es, err := decodeEmails([]byte("just some text with $5.00"))
	require.NoError(t, err)
	require.Len(t, es, 1)
	assert.Equal(t, "just some text with $5.00", es[0].Body)
}
