package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"crudgen/internal/config"
	"crudgen/internal/dsl"
)

const clienteInput = "Cliente\n\nnome:String:100\n\npedidos:OneToMany:Pedido:cliente:cascade\n\n"

func runCLI(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(context.Background(), strings.NewReader(input), &out, &errOut, args)
	return out.String(), err
}

func TestRun_Version(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	require.Contains(t, out, "crudgen dev")
}

func TestRun_Help(t *testing.T) {
	out, err := runCLI(t, "", "-h")
	require.NoError(t, err)
	require.Contains(t, out, "Usage:")
	require.Contains(t, out, "--artifacts")
}

func TestRun_GeneratesSelectedArtifacts(t *testing.T) {
	// --- Arrange ---
	t.Chdir(t.TempDir())
	dir := filepath.Join(t.TempDir(), "gen")

	// --- Act ---
	out, err := runCLI(t, clienteInput,
		"--output", dir, "--package", "br.com.loja", "--artifacts", "entity,schema", "--yes")

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out, "2 arquivos gerados para Cliente")

	entity, err := os.ReadFile(filepath.Join(dir, "Cliente", "Cliente.java"))
	require.NoError(t, err)
	require.Contains(t, string(entity), "package br.com.loja.domain;")

	_, err = os.Stat(filepath.Join(dir, "Cliente", "Cliente.sql"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "Cliente", "ClienteService.java"))
	require.True(t, os.IsNotExist(err))
}

func TestRun_CancelIsClean(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()

	out, err := runCLI(t, clienteInput+"n\n", "--output", dir)
	require.NoError(t, err)
	require.Contains(t, out, "Operação cancelada")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRun_EmptyEntityNameFails(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := runCLI(t, "\n", "--output", t.TempDir())
	require.ErrorIs(t, err, dsl.ErrEntityNameRequired)
}

func TestRun_ConfigErrors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := runCLI(t, clienteInput, "--config", "missing.yaml")
	require.Error(t, err)

	_, err = runCLI(t, clienteInput, "--artifacts", "dao", "--yes")
	require.ErrorContains(t, err, `unknown artifact kind "dao"`)

	_, err = runCLI(t, clienteInput, "--apply", "--yes")
	require.ErrorContains(t, err, "apply_ddl requires db_url")
}

func TestRun_ConfigFileAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("crudgen.yaml", []byte("output_dir: from-file\npackage_base: org.file\n"), 0o644))

	flagOut := filepath.Join(dir, "from-flag")
	_, err := runCLI(t, clienteInput, "--config", "crudgen.yaml", "--output", flagOut, "--artifacts", "repository", "--yes")
	require.NoError(t, err)

	repo, err := os.ReadFile(filepath.Join(flagOut, "Cliente", "ClienteRepository.java"))
	require.NoError(t, err)
	require.Contains(t, string(repo), "package org.file.repository;")
	_, err = os.Stat("from-file")
	require.True(t, os.IsNotExist(err))
}

func TestServe_GracefulShutdown(t *testing.T) {
	cfg := config.Default()
	engine, err := newEngine(cfg)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, ln, cfg, engine, zaptest.NewLogger(t)) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(url)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
