// Package backup copia y reemplaza el archivo de la base de datos local.
// La copia se hace siempre con la conexión cerrada, nunca dentro de una transacción.
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// sqliteHeader primeros 16 bytes de todo archivo SQLite 3.
var sqliteHeader = []byte("SQLite format 3\x00")

// ErrUnsupported el almacenamiento activo no es un archivo local.
var ErrUnsupported = errors.New("respaldo disponible solo para almacenamiento sqlite")

// Service crea respaldos y restaura desde ellos.
type Service struct {
	store inventory.Store
	dir   string
	log   *logger.Logger
	now   func() time.Time
}

// NewService construye el servicio; dir es el directorio donde se guardan los respaldos.
func NewService(store inventory.Store, dir string, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{store: store, dir: dir, log: log.Component("backup"), now: time.Now}
}

// Create cierra la conexión, copia el archivo a inventory_backup_<fecha>.db y vuelve a abrir.
// Devuelve la ruta del respaldo.
func (s *Service) Create(ctx context.Context) (path string, err error) {
	src := s.store.Path()
	if src == "" {
		return "", ErrUnsupported
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("backup: crear directorio: %w", err)
	}
	dst := filepath.Join(s.dir, fmt.Sprintf("inventory_backup_%s.db", s.now().Format("20060102_150405")))

	if err := s.store.Close(ctx); err != nil {
		return "", err
	}
	defer func() {
		// La conexión se reabre aunque el contexto del llamador se cancele.
		if reopenErr := s.store.Reopen(context.WithoutCancel(ctx)); reopenErr != nil {
			err = errors.Join(err, reopenErr)
		}
	}()

	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("backup: copiar: %w", err)
	}
	s.log.Info().Str("path", dst).Msg("respaldo creado")
	return dst, nil
}

// Restore reemplaza la base de datos por el archivo backupPath.
// Si la base restaurada no abre, vuelve a la copia anterior.
func (s *Service) Restore(ctx context.Context, backupPath string) error {
	dst := s.store.Path()
	if dst == "" {
		return ErrUnsupported
	}
	if err := checkSQLiteFile(backupPath); err != nil {
		return err
	}

	if err := s.store.Close(ctx); err != nil {
		return err
	}

	// Reapertura y vuelta atrás no dependen de la cancelación del llamador.
	reopenCtx := context.WithoutCancel(ctx)

	previous := dst + ".restore-previous"
	hadPrevious := true
	if err := copyFile(dst, previous); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return errors.Join(fmt.Errorf("backup: preservar base actual: %w", err), s.store.Reopen(reopenCtx))
		}
		hadPrevious = false
	}
	defer os.Remove(previous)

	if err := copyFile(backupPath, dst); err != nil {
		return errors.Join(fmt.Errorf("backup: restaurar: %w", err), s.rollback(reopenCtx, previous, dst, hadPrevious))
	}
	if err := s.store.Reopen(reopenCtx); err != nil {
		s.log.Error().Err(err).Str("path", backupPath).Msg("la base restaurada no abre, se vuelve a la anterior")
		return errors.Join(fmt.Errorf("backup: abrir base restaurada: %w", err), s.rollback(reopenCtx, previous, dst, hadPrevious))
	}

	s.log.Info().Str("from", backupPath).Msg("base de datos restaurada")
	return nil
}

func (s *Service) rollback(ctx context.Context, previous, dst string, hadPrevious bool) error {
	if hadPrevious {
		if err := copyFile(previous, dst); err != nil {
			return fmt.Errorf("backup: volver a la base anterior: %w", err)
		}
	}
	return s.store.Reopen(ctx)
}

// checkSQLiteFile valida que path exista y tenga la cabecera de SQLite.
func checkSQLiteFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Validation("archivo de respaldo inexistente: %s", path)
		}
		return fmt.Errorf("backup: abrir respaldo: %w", err)
	}
	defer f.Close()

	head := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, head); err != nil || !bytes.Equal(head, sqliteHeader) {
		return domain.Validation("%s no es una base de datos SQLite", path)
	}
	return nil
}

// copyFile copia src a un temporal junto a dst y lo renombra, para no dejar dst a medias.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
