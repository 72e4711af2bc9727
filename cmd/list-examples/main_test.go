package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/list-examples/internal/loader"
	"github.com/taigrr/list-examples/internal/registry"
)

const sampleRegistry = `version: 1
examples:
  - path: foundry_examples/token_example
    type: solidity
    description: ERC20 token with Foundry
    test:
      solidity:
        foundry:
          test:
            offline: true
  - path: foundry_examples/vault_example
    type: solidity
    description: Vault with Foundry
  - path: hardhat_examples/nft_example
    type: solidity
    description: NFT with Hardhat
    test:
      solidity:
        hardhat:
          compile: true
          test: true
  - path: hardhat_examples/dapp
    type: frontend
    description: Frontend next to Hardhat contracts
`

func setupRepo(t *testing.T, registryYAML string, dirs ...string) string {
	t.Helper()
	for _, key := range []string{envRoot, envFile, envFormat, envFallback, envRuby} {
		t.Setenv(key, "")
	}

	root := t.TempDir()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "examples.yaml"), []byte(registryYAML), 0o644))
	return root
}

func sampleRepo(t *testing.T) string {
	return setupRepo(t, sampleRegistry,
		"foundry_examples/token_example",
		"foundry_examples/vault_example",
		"hardhat_examples/nft_example",
		"hardhat_examples/dapp",
	)
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestList_JSONEndToEnd(t *testing.T) {
	root := setupRepo(t, "version: 1\nexamples:\n  - path: ex1\n    type: solidity\n    description: d\n", "ex1")

	stdout, stderr, err := execute(t, "--root", root)
	require.NoError(t, err)

	assert.JSONEq(t, `[{"path": "ex1", "type": "solidity", "description": "d",
		"foundry": {"fmt": true, "build": true, "test": true, "lint": true, "offline": false},
		"hardhat": {"compile": false, "test": false, "lint": false}}]`, stdout)
	assert.True(t, strings.HasSuffix(stdout, "\n"))
	assert.Empty(t, stderr)
}

func TestList_Matrix(t *testing.T) {
	root := sampleRepo(t)

	stdout, _, err := execute(t, "--root", root, "--format", "gha-matrix")
	require.NoError(t, err)

	assert.JSONEq(t, `{"include": [
		{"path": "foundry_examples/token_example", "type": "solidity", "foundry_offline": true},
		{"path": "foundry_examples/vault_example", "type": "solidity", "foundry_offline": false},
		{"path": "hardhat_examples/nft_example", "type": "solidity", "foundry_offline": false},
		{"path": "hardhat_examples/dapp", "type": "frontend", "foundry_offline": false}
	]}`, stdout)
}

func TestList_GroupedWarnsOnMixedTypes(t *testing.T) {
	root := sampleRepo(t)

	stdout, stderr, err := execute(t, "--root", root, "--format", "gha-matrix-grouped")
	require.NoError(t, err)

	assert.JSONEq(t, `{"include": [
		{"group": "foundry_examples", "paths": "foundry_examples/token_example foundry_examples/vault_example", "type": "solidity", "foundry_offline": true},
		{"group": "hardhat_examples", "paths": "hardhat_examples/nft_example hardhat_examples/dapp", "type": "solidity", "foundry_offline": false}
	]}`, stdout)
	assert.Contains(t, stderr, "Group hardhat_examples has mixed types: frontend, solidity")
	assert.Contains(t, stderr, "level=WARN")
}

func TestList_Filters(t *testing.T) {
	root := sampleRepo(t)

	stdout, _, err := execute(t, "--root", root, "--format", "paths", "--include", "foundry_examples/*")
	require.NoError(t, err)
	assert.JSONEq(t, `{"paths": "foundry_examples/token_example foundry_examples/vault_example", "type": "solidity", "foundry_offline": true}`, stdout)

	_, _, err = execute(t, "--root", root, "--exclude", "**")
	assert.ErrorIs(t, err, errNoMatch)
}

func TestList_InvalidFormat(t *testing.T) {
	root := sampleRepo(t)

	stdout, _, err := execute(t, "--root", root, "--format", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "csv"`)
	assert.Empty(t, stdout)
}

func TestList_SchemaError(t *testing.T) {
	root := setupRepo(t, "version: 1\nexamples:\n  - path: missing\n    type: solidity\n    description: d\n")

	stdout, _, err := execute(t, "--root", root)

	var se *registry.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "examples.yaml: examples[0].path does not exist: missing", err.Error())
	assert.Empty(t, stdout)
}

func TestList_LoadError(t *testing.T) {
	root := setupRepo(t, "- not\n- a mapping\n")

	_, _, err := execute(t, "--root", root)

	var le *loader.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, filepath.Join(root, "examples.yaml"), le.Path)
}

func TestList_CustomFile(t *testing.T) {
	root := setupRepo(t, "version: 2\n", "ex1")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ci"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ci", "registry.yaml"),
		[]byte("version: 1\nexamples:\n  - {path: ex1, type: frontend, description: d}\n"), 0o644))

	stdout, _, err := execute(t, "--root", root, "--file", "ci/registry.yaml", "--format", "gha-matrix")
	require.NoError(t, err)
	assert.JSONEq(t, `{"include": [{"path": "ex1", "type": "frontend", "foundry_offline": false}]}`, stdout)

	_, _, err = execute(t, "--root", root)
	require.Error(t, err)
	assert.Equal(t, "examples.yaml: `version` must be 1", err.Error())
}

func TestList_DotenvConfig(t *testing.T) {
	root := sampleRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("LIST_EXAMPLES_FORMAT=paths\n"), 0o644))

	stdout, _, err := execute(t, "--root", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"paths":"foundry_examples/token_example`)

	// Flags win over the environment.
	stdout, _, err = execute(t, "--root", root, "--format", "gha-matrix")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"include"`)
}

func TestList_EnvironmentWinsOverDotenv(t *testing.T) {
	root := sampleRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("LIST_EXAMPLES_FORMAT=paths\n"), 0o644))
	t.Setenv(envFormat, "gha-matrix")

	stdout, _, err := execute(t, "--root", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"include"`)
}

func TestList_RootFromEnvironment(t *testing.T) {
	root := sampleRepo(t)
	t.Setenv(envRoot, root)

	stdout, _, err := execute(t, "--format", "gha-matrix")
	require.NoError(t, err)
	assert.Contains(t, stdout, "foundry_examples/token_example")
}

func TestList_RejectsArguments(t *testing.T) {
	root := sampleRepo(t)

	_, _, err := execute(t, "--root", root, "extra")
	assert.Error(t, err)
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestList_FallbackFlags(t *testing.T) {
	requireShell(t)
	root := setupRepo(t, "version: [1\n")

	_, _, err := execute(t, "--root", root)
	var le *loader.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "invalid YAML", le.Reason, "fallback stays off unless requested")

	// sh cannot run the Ruby one-liner, so the fallback fails with its stderr.
	_, _, err = execute(t, "--root", root, "--fallback", "--ruby", "sh", "--fallback-timeout", "10s")
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "failed to parse YAML via sh", le.Reason)
	assert.NotEmpty(t, le.Stderr)
	assert.Equal(t, filepath.Join(root, "examples.yaml"), le.Path)
}

func TestList_FallbackFromEnvironment(t *testing.T) {
	requireShell(t)
	root := setupRepo(t, "version: [1\n")
	t.Setenv(envFallback, "1")
	t.Setenv(envRuby, "sh")

	_, _, err := execute(t, "--root", root)

	var le *loader.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "failed to parse YAML via sh", le.Reason)
	assert.NotEmpty(t, le.Stderr)
}

func TestList_FallbackFromDotenv(t *testing.T) {
	requireShell(t)
	root := setupRepo(t, "version: [1\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"),
		[]byte("LIST_EXAMPLES_FALLBACK=true\nRUBY=definitely-not-an-interpreter-xyz\n"), 0o644))

	_, _, err := execute(t, "--root", root)

	var le *loader.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "failed to run definitely-not-an-interpreter-xyz", le.Reason)
}

func TestReadDotenv(t *testing.T) {
	dir := t.TempDir()

	values, err := readDotenv(filepath.Join(dir, ".env"))
	require.NoError(t, err, "a missing .env is not an error")
	assert.Nil(t, values)

	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = readDotenv(filepath.Join(file, ".env"))
	require.Error(t, err, "stat failures other than not-exist are reported")
	assert.Contains(t, err.Error(), "failed to stat")

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LIST_EXAMPLES_FORMAT=paths\n"), 0o644))
	values, err = readDotenv(envFile)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"LIST_EXAMPLES_FORMAT": "paths"}, values)
}

func TestReadDotenv_Unreadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("RUBY=ruby\n"), 0o000))

	_, err := readDotenv(envFile)
	assert.Error(t, err)
}

func TestFilterExamples_NoPatterns(t *testing.T) {
	got, err := filterExamples(nil, nil, []string{" "})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, getVersion())
}
