package cli_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/interfaces/cli"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/jwt"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type cliEnv struct {
	dir string
	db  string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("BACKUP_DIR", filepath.Join(dir, "backups"))
	t.Setenv("EXPORT_DIR", filepath.Join(dir, "exports"))
	return &cliEnv{dir: dir, db: filepath.Join(dir, "inventory.db")}
}

func (e *cliEnv) exec(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3", BuildTime: "today"})
	root.SetArgs(append([]string{"--db", e.db}, args...))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *cliEnv) mustExec(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.exec(t, "", args...)
	require.NoError(t, err, "inventario %s", strings.Join(args, " "))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// product
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_AddAndList(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustExec(t, "product", "add", "--name", "Bolt", "--quantity", "10", "--price", "2.50", "--category", "Hardware")
	assert.Contains(t, out, "Producto 1 creado")

	out = env.mustExec(t, "product", "list")
	assert.Contains(t, out, "Bolt")
	assert.Contains(t, out, "Hardware")
	assert.Contains(t, out, "25.00")
	assert.Contains(t, out, "Página 1 de 1 (1 productos)")

	out = env.mustExec(t, "product", "list", "--search", "nut")
	assert.NotContains(t, out, "Bolt")
	assert.Contains(t, out, "(0 productos)")
}

func TestProduct_AddRejectsInvalidInput(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.exec(t, "", "product", "add", "--name", "Bolt", "--quantity", "ten")
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	_, err = env.exec(t, "", "product", "add", "--name", "Bolt", "--price", "1.2.3")
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	_, err = env.exec(t, "", "product", "add", "--name", "   ")
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestProduct_UpdateOnlyChangedFlags(t *testing.T) {
	env := newCLIEnv(t)
	env.mustExec(t, "product", "add", "--name", "Bolt", "--quantity", "10", "--price", "2.50", "--category", "Hardware")

	env.mustExec(t, "product", "update", "1", "--name", "Steel bolt")
	out := env.mustExec(t, "product", "show", "1")
	assert.Contains(t, out, "Steel bolt")
	assert.Contains(t, out, "Cantidad:    10")
	assert.Contains(t, out, "Categoría:   Hardware")

	env.mustExec(t, "product", "update", "1", "--quantity", "15")
	out = env.mustExec(t, "product", "show", "1")
	assert.Contains(t, out, "Cantidad:    15")
	assert.Contains(t, out, "Stock adjusted by 5 units")
	assert.Contains(t, out, "Libro: +15 -0 = 15 | Cantidad: 15 | OK")
}

func TestProduct_OutputAndMovements(t *testing.T) {
	env := newCLIEnv(t)
	env.mustExec(t, "product", "add", "--name", "Bolt", "--quantity", "10", "--price", "1")

	_, err := env.exec(t, "", "product", "output", "1", "--quantity", "11")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	out := env.mustExec(t, "product", "output", "1", "--quantity", "4", "--notes", "venta")
	assert.Contains(t, out, "Salida de 4 unidades")

	out = env.mustExec(t, "movements")
	assert.Contains(t, out, "OUTGOING")
	assert.Contains(t, out, "-4")
	assert.Contains(t, out, "+10")

	out = env.mustExec(t, "movements", "--type", "OUTGOING")
	assert.NotContains(t, out, "INCOMING")

	_, err = env.exec(t, "", "movements", "--type", "SIDEWAYS")
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestProduct_DeleteAndDuplicate(t *testing.T) {
	env := newCLIEnv(t)
	env.mustExec(t, "product", "add", "--name", "Bolt", "--quantity", "3", "--price", "1")

	out := env.mustExec(t, "product", "duplicate", "1")
	assert.Contains(t, out, "Producto 2 creado como copia de 1")
	out = env.mustExec(t, "product", "show", "2")
	assert.Contains(t, out, "Bolt (Copy)")

	env.mustExec(t, "product", "delete", "1")
	_, err := env.exec(t, "", "product", "show", "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.exec(t, "", "product", "delete", "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.exec(t, "", "product", "delete", "abc")
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	// los movimientos del producto borrado se conservan
	out = env.mustExec(t, "movements")
	assert.Contains(t, out, "Initial stock entry")
}

// ──────────────────────────────────────────────────────────────────────────────
// browse
// ──────────────────────────────────────────────────────────────────────────────

func TestBrowse_Navigation(t *testing.T) {
	env := newCLIEnv(t)
	for i := 1; i <= 12; i++ {
		env.mustExec(t, "product", "add", "--name", fmt.Sprintf("Item %02d", i), "--quantity", "1", "--price", "1")
	}

	script := strings.Join([]string{"z 5", "n", "l", "n", "s 1", "cats", "bogus", "x", "q"}, "\n")
	out, err := env.exec(t, script, "browse")
	require.NoError(t, err)

	assert.Contains(t, out, "Página 1 de 2 (12 productos)") // tamaño inicial 10
	assert.Contains(t, out, "Página 2 de 3 (12 productos)")
	assert.Contains(t, out, "Página 3 de 3 (12 productos)")
	// Item 01, 10, 11, 12
	assert.Contains(t, out, "Página 1 de 1 (4 productos)")
	assert.Contains(t, out, "All, No category")
	assert.Contains(t, out, `error: comando desconocido "bogus"`)
	assert.Contains(t, out, "[paginated]")
}

func TestBrowse_EndOfInput(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.exec(t, "", "browse")
	require.NoError(t, err)
	assert.Contains(t, out, "Página 1 de 1 (0 productos)")
}

// ──────────────────────────────────────────────────────────────────────────────
// export, backup, restore
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_WritesFiles(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.exec(t, "", "export", "xlsx")
	assert.ErrorIs(t, err, domain.ErrValidationFailed, "inventario vacío")

	env.mustExec(t, "product", "add", "--name", "Bolt", "--quantity", "3", "--price", "1")
	for _, format := range []string{"xlsx", "pdf"} {
		out := env.mustExec(t, "export", format)
		path := strings.TrimSpace(strings.TrimPrefix(out, "Exportado a "))
		assert.Equal(t, "."+format, filepath.Ext(path))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	_, err = env.exec(t, "", "export", "csv")
	assert.Error(t, err)
}

func TestBackupAndRestore(t *testing.T) {
	env := newCLIEnv(t)
	env.mustExec(t, "product", "add", "--name", "Bolt", "--quantity", "3", "--price", "1")

	out := env.mustExec(t, "backup")
	backupPath := strings.TrimSpace(strings.TrimPrefix(out, "Respaldo creado en "))
	require.FileExists(t, backupPath)

	env.mustExec(t, "product", "add", "--name", "Nut", "--quantity", "1", "--price", "1")
	env.mustExec(t, "restore", backupPath)

	out = env.mustExec(t, "product", "list")
	assert.Contains(t, out, "Bolt")
	assert.NotContains(t, out, "Nut")

	bogus := filepath.Join(env.dir, "bogus.db")
	require.NoError(t, os.WriteFile(bogus, []byte("not a database"), 0o600))
	_, err := env.exec(t, "", "restore", bogus)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

// ──────────────────────────────────────────────────────────────────────────────
// token, version
// ──────────────────────────────────────────────────────────────────────────────

func TestToken(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.exec(t, "", "token", "--operator", "ana")
	assert.Error(t, err, "sin JWT_SECRET")

	t.Setenv("JWT_SECRET", "s3cret")
	out := env.mustExec(t, "token", "--operator", "ana", "--scope", jwt.ScopeWrite)
	claims, err := jwt.Parse("s3cret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Operator)
	assert.Equal(t, jwt.ScopeWrite, claims.Scope)

	_, err = env.exec(t, "", "token", "--operator", "ana", "--scope", "admin")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	env := newCLIEnv(t)
	out := env.mustExec(t, "version")
	assert.Equal(t, "inventario version 1.2.3 (build: today)\n", out)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bootstrap + HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestNewHTTPApp_Health(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)
	dir := t.TempDir()
	cfg.DB.Path = filepath.Join(dir, "inventory.db")
	cfg.Files.BackupDir = filepath.Join(dir, "backups")
	cfg.Files.ExportDir = filepath.Join(dir, "exports")

	app, err := cli.Bootstrap(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close(context.Background()) })
	require.NotNil(t, app.Backup, "sqlite habilita respaldos")

	fiberApp := cli.NewHTTPApp(app)
	resp, err := fiberApp.Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = fiberApp.Test(httptest.NewRequest("GET", "/api/products", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
}

func TestBootstrap_UnknownDriver(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)
	cfg.DB.Driver = "oracle"

	_, err = cli.Bootstrap(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}
